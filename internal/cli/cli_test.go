package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleASS = "[Events]\nFormat: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\nDialogue: 0,0:00:00.50,0:00:01.25,Default,,0,0,0,,hello\\Nworld\n"

func TestRootCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "srtworker", cmd.Use)
	for _, name := range []string{"config", "assets", "trace"} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, "", flag.DefValue)
	}
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "a.ass")
	require.NoError(t, os.WriteFile(source, []byte(sampleASS), 0644))
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("queueBuffer: 4\nassetBaseURL: file://"+filepath.Join(dir, "cfg-out")+"\n"), 0644))

	testCases := []struct {
		name         string
		options      *Options
		input        []string
		expectCode   int
		expectURLs   map[string]string // id -> output prefix
		expectErrors []string
	}{
		{
			name:    "converts and reports failures",
			options: &Options{AssetBaseURL: "file://" + filepath.Join(dir, "out")},
			input: []string{
				`{"action":"preloadDict","dict":null}`,
				`{"action":"addFile","id":1,"file":"` + source + `"}`,
				``,
				`{"action":"addFile","id":"two","file":"` + filepath.Join(dir, "missing.ass") + `"}`,
			},
			expectCode:   ExitSuccess,
			expectURLs:   map[string]string{"1": "file://" + filepath.Join(dir, "out")},
			expectErrors: []string{"two"},
		},
		{
			name:       "config file",
			options:    &Options{ConfigURL: configFile},
			input:      []string{`{"action":"addFile","id":"c","file":"` + source + `"}`},
			expectCode: ExitSuccess,
			expectURLs: map[string]string{"c": "file://" + filepath.Join(dir, "cfg-out")},
		},
		{
			name:       "unknown action",
			options:    &Options{},
			input:      []string{`{"action":"removeFile","id":"x"}`},
			expectCode: ExitProtocol,
		},
		{
			name:    "requests before a violation are answered",
			options: &Options{AssetBaseURL: "file://" + filepath.Join(dir, "before")},
			input: []string{
				`{"action":"addFile","id":"p1","file":"` + source + `"}`,
				`{"action":"addFile","id":"p2","file":"` + source + `"}`,
				`{"action":"addFile","id":"p3","file":"` + filepath.Join(dir, "missing.ass") + `"}`,
				`{"action":"renameFile","id":"p4"}`,
				`{"action":"addFile","id":"p5","file":"` + source + `"}`,
			},
			expectCode: ExitProtocol,
			expectURLs: map[string]string{
				"p1": "file://" + filepath.Join(dir, "before"),
				"p2": "file://" + filepath.Join(dir, "before"),
			},
			expectErrors: []string{"p3"},
		},
		{
			name:       "malformed line",
			options:    &Options{},
			input:      []string{`{"action":`},
			expectCode: ExitProtocol,
		},
		{
			name:       "missing config",
			options:    &Options{ConfigURL: filepath.Join(dir, "none.yaml")},
			expectCode: ExitCommandError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			out := &bytes.Buffer{}
			err := Serve(ctx, tc.options, strings.NewReader(strings.Join(tc.input, "\n")), out)
			require.Equal(t, tc.expectCode, ExitCode(err), "%v", err)
			if tc.expectCode == ExitCommandError {
				return
			}

			urls := map[string]string{}
			var failed []string
			decoder := json.NewDecoder(out)
			for decoder.More() {
				var response struct {
					ID     json.RawMessage `json:"id"`
					SrtURL string          `json:"srtUrl"`
					Error  string          `json:"error"`
				}
				require.NoError(t, decoder.Decode(&response))
				id := strings.Trim(string(response.ID), `"`)
				if response.Error != "" {
					failed = append(failed, id)
					continue
				}
				urls[id] = response.SrtURL
			}
			assert.ElementsMatch(t, tc.expectErrors, failed)
			require.Len(t, urls, len(tc.expectURLs))
			for id, prefix := range tc.expectURLs {
				assert.True(t, strings.HasPrefix(urls[id], prefix), urls[id])
				data, err := os.ReadFile(strings.TrimPrefix(urls[id], "file://"))
				require.NoError(t, err)
				assert.Equal(t, "1\r\n00:00:00,500 --> 00:00:01,250\r\nhello\r\nworld\r\n\r\n", string(data))
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitProtocol, ExitCode(wrapExitError(ExitProtocol, "x", nil)))
	assert.Equal(t, ExitCommandError, ExitCode(assert.AnError))
}
