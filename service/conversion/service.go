// Package conversion runs a single addFile request: it resolves the captured
// dictionary, reads the source file, calls the engine and turns the output
// into a handle. Every run yields exactly one response.
package conversion

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/viant/afs"
	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/asset"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/engine"
	"github.com/viant/srtworker/tracing"
)

// Service executes conversion tasks.
type Service struct {
	fs     afs.Service
	engine engine.Engine
	assets asset.Store
}

// PanicError is reported when the engine (or any step) panics.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements error
func (e *PanicError) Error() string {
	return fmt.Sprintf("conversion panicked: %v", e.Value)
}

// Run executes one task. dict is the dictionary slot value captured by the
// dispatcher when the request was handled; nil means no dictionary.
func (s *Service) Run(ctx context.Context, id message.ID, request *message.AddFile, dict *dictionary.Future) (response *message.Response) {
	ctx, span := tracing.StartSpan(ctx, "conversion.run", tracing.KindInternal)
	span.WithAttributes(map[string]string{"request.id": id.String(), "request.file": request.File})
	defer func() {
		if r := recover(); r != nil {
			response = message.Failure(id, &PanicError{Value: r, Stack: debug.Stack()})
		}
		tracing.EndSpan(span, response.Err)
	}()

	handle, err := s.run(ctx, request, dict)
	if err != nil {
		return message.Failure(id, err)
	}
	return message.Success(id, handle)
}

func (s *Service) run(ctx context.Context, request *message.AddFile, dict *dictionary.Future) (string, error) {
	dictText, err := dict.Wait(ctx)
	if err != nil {
		return "", err
	}
	source, err := s.read(ctx, request.File)
	if err != nil {
		return "", err
	}
	options, err := request.ConversionOptions()
	if err != nil {
		return "", err
	}
	options = options.WithConvDict(dictText)
	if s.engine == nil {
		return "", engine.ErrNoEngine
	}
	output, err := s.engine.Convert(ctx, source, options)
	if err != nil {
		return "", err
	}
	return s.assets.Create(ctx, output)
}

func (s *Service) read(ctx context.Context, URL string) ([]byte, error) {
	if URL == "" {
		return nil, fmt.Errorf("file was empty")
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return data, nil
}

// New creates a conversion service
func New(fs afs.Service, anEngine engine.Engine, assets asset.Store) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, engine: anEngine, assets: assets}
}
