package dictionary

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// gatedLoader settles each load only when the test releases its URL.
type gatedLoader struct {
	mu    sync.Mutex
	gates map[string]chan string
	calls []string
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{gates: map[string]chan string{}}
}

func (l *gatedLoader) gate(URL string) chan string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.gates[URL]; !ok {
		l.gates[URL] = make(chan string, 1)
	}
	return l.gates[URL]
}

func (l *gatedLoader) Load(ctx context.Context, URL string) (string, error) {
	l.mu.Lock()
	l.calls = append(l.calls, URL)
	l.mu.Unlock()
	select {
	case text := <-l.gate(URL):
		if text == "!" {
			return "", errors.New("fail to download dict: 500")
		}
		return text, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func strPtr(s string) *string { return &s }

func TestCache_Preload(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(loader)
	ctx := waitCtx(t)

	assert.Nil(t, cache.Snapshot())
	text, err := cache.Snapshot().Wait(ctx)
	assert.NoError(t, err)
	assert.Nil(t, text)

	first := cache.Preload(ctx, strPtr("dict1"))
	require.NotNil(t, first)
	assert.Same(t, first, cache.Snapshot())
	assert.False(t, first.Settled())

	second := cache.Preload(ctx, strPtr("dict2"))
	assert.Same(t, second, cache.Snapshot())

	loader.gate("dict2") <- "content2"
	text, err = cache.Snapshot().Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "content2", *text)

	// a task holding the superseded future still sees its own outcome
	loader.gate("dict1") <- "content1"
	text, err = first.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "content1", *text)

	assert.Nil(t, cache.Preload(ctx, nil))
	assert.Nil(t, cache.Snapshot())
	assert.Nil(t, cache.Preload(ctx, strPtr("")))
	assert.Len(t, loader.calls, 2)
}

func TestCache_PreloadFailure(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(loader)
	ctx := waitCtx(t)

	failing := cache.Preload(ctx, strPtr("bad"))
	loader.gate("bad") <- "!"
	_, err := failing.Wait(ctx)
	assert.EqualError(t, err, "fail to download dict: 500")

	next := cache.Preload(ctx, strPtr("good"))
	loader.gate("good") <- "ok"
	text, err := next.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", *text)
}

func TestCache_PreloadOutlivesCaller(t *testing.T) {
	loader := newGatedLoader()
	cache := NewCache(loader)
	callerCtx, cancel := context.WithCancel(context.Background())
	future := cache.Preload(callerCtx, strPtr("dict"))
	cancel()
	loader.gate("dict") <- "content"
	text, err := future.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "content", *text)
}

func TestFuture(t *testing.T) {
	ctx := waitCtx(t)
	text, err := Resolved("abc").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", *text)

	cause := errors.New("boom")
	_, err = Failed(cause).Wait(ctx)
	assert.Same(t, cause, err)

	pending := newFuture("x")
	timeout, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pending.Wait(timeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pending.settle("first", nil)
	pending.settle("second", nil)
	text, err = pending.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", *text)
}

func TestService_Load(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/s2t.txt":
			_, _ = w.Write([]byte("汉\t漢\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fs := afs.New()
	ctx := context.Background()
	memURL := "mem://localhost/srtworker/dict/t2s.txt"
	require.NoError(t, fs.Upload(ctx, memURL, file.DefaultFileOsMode, bytes.NewReader([]byte("漢\t汉\n"))))

	loader := NewLoader(fs, server.Client())
	testCases := []struct {
		name      string
		URL       string
		expect    string
		expectErr string
	}{
		{name: "http success", URL: server.URL + "/s2t.txt", expect: "汉\t漢\n"},
		{name: "http not found", URL: server.URL + "/missing.txt", expectErr: "fail to download dict: 404"},
		{name: "storage success", URL: memURL, expect: "漢\t汉\n"},
		{name: "storage missing", URL: "mem://localhost/srtworker/dict/none.txt", expectErr: "fail to download dict"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := loader.Load(ctx, tc.URL)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, text)
		})
	}

	_, err := loader.Load(ctx, server.URL+"/missing.txt")
	var downloadErr *DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Equal(t, http.StatusNotFound, downloadErr.StatusCode)
}
