package srtworker

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestLoadConfig(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	testCases := []struct {
		name      string
		document  string
		expect    *Config
		expectErr bool
	}{
		{
			name:     "defaults kept",
			document: "assetBaseURL: file:///tmp/srtworker/out\n",
			expect:   &Config{QueueBuffer: 100, AssetBaseURL: "file:///tmp/srtworker/out"},
		},
		{
			name: "tracing",
			document: `queueBuffer: 8
tracing:
  serviceName: srtworker
  serviceVersion: 1.0.0
`,
			expect: &Config{QueueBuffer: 8, AssetBaseURL: "mem://localhost/srtworker", Tracing: &TracingConfig{ServiceName: "srtworker", ServiceVersion: "1.0.0"}},
		},
		{
			name:      "invalid buffer",
			document:  "queueBuffer: -1\n",
			expectErr: true,
		},
		{
			name:      "tracing without name",
			document:  "tracing:\n  outputFile: x\n",
			expectErr: true,
		},
		{
			name:      "malformed",
			document:  "queueBuffer: [",
			expectErr: true,
		},
	}
	for i, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			URL := "mem://localhost/srtworker/config/" + string(rune('a'+i)) + ".yaml"
			require.NoError(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(tc.document))))
			config, err := LoadConfig(ctx, fs, URL)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, config)
		})
	}

	_, err := LoadConfig(ctx, fs, "mem://localhost/srtworker/config/missing.yaml")
	assert.Error(t, err)
}
