// Package engine defines the call contract of a subtitle conversion engine.
// The dispatcher treats an engine as a single opaque, possibly failing
// operation: it imposes no timeout and never retries.
package engine

import (
	"context"
	"errors"

	"github.com/viant/srtworker/model"
)

// ErrNoEngine is reported by tasks when no engine was configured.
var ErrNoEngine = errors.New("conversion engine was not configured")

// Engine converts source subtitle bytes into output bytes.
type Engine interface {
	Convert(ctx context.Context, source []byte, options *model.Options) ([]byte, error)
}

// Func adapts a plain function to Engine.
type Func func(ctx context.Context, source []byte, options *model.Options) ([]byte, error)

// Convert calls f.
func (f Func) Convert(ctx context.Context, source []byte, options *model.Options) ([]byte, error) {
	return f(ctx, source, options)
}
