package asset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/srtworker/internal/idgen"
)

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	srv := New(afs.New(), "mem://localhost/srtworker/test-assets/")
	assert.Equal(t, "mem://localhost/srtworker/test-assets", srv.BaseURL())

	first, err := srv.Create(ctx, []byte("1\r\n"))
	require.NoError(t, err)
	second, err := srv.Create(ctx, []byte("2\r\n"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, ".srt"))

	data, err := srv.Open(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "1\r\n", string(data))

	require.NoError(t, srv.Revoke(ctx, first))
	assert.Error(t, srv.Revoke(ctx, first))
	_, err = srv.Open(ctx, first)
	assert.Error(t, err)

	data, err = srv.Open(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "2\r\n", string(data))

	_, err = srv.Open(ctx, "mem://localhost/elsewhere/x.srt")
	assert.Error(t, err)
}

func TestService_Naming(t *testing.T) {
	prev := idgen.NewFunc
	idgen.NewFunc = func() string { return "fixed" }
	defer func() { idgen.NewFunc = prev }()

	srv := New(nil, "", WithExtension("vtt"))
	handle, err := srv.Create(context.Background(), []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/fixed.vtt", handle)
	require.NoError(t, srv.Revoke(context.Background(), handle))
}
