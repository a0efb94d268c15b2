package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/viant/afs"
	"github.com/viant/srtworker"
	"github.com/viant/srtworker/model/message"
	"golang.org/x/sync/errgroup"
)

const maxLineSize = 16 * 1024 * 1024

// Serve runs the dispatcher over a JSON lines stream until in is exhausted,
// a protocol violation stops it, or ctx is cancelled. Every spawned conversion
// has its response written before Serve returns.
func Serve(ctx context.Context, opts *Options, in io.Reader, out io.Writer) error {
	fs := afs.New()
	config, err := loadConfig(ctx, fs, opts)
	if err != nil {
		return wrapExitError(ExitCommandError, "failed to load config", err)
	}
	srv, err := srtworker.New(srtworker.WithConfig(config), srtworker.WithFs(fs))
	if err != nil {
		return wrapExitError(ExitCommandError, "failed to create dispatcher", err)
	}
	rt := srv.Runtime()
	if err = rt.Start(ctx); err != nil {
		return wrapExitError(ExitCommandError, "failed to start dispatcher", err)
	}

	encoder := json.NewEncoder(out)
	var writer errgroup.Group
	writer.Go(func() error {
		// responses keep being consumed after a write failure so that tasks never block on publish
		var writeErr error
		err := rt.Drain(context.WithoutCancel(ctx), func(response *message.Response) error {
			if writeErr == nil {
				writeErr = encoder.Encode(response)
			}
			return nil
		})
		if err != nil {
			return err
		}
		return writeErr
	})

	readErr := read(ctx, rt, in)
	// a rejected line is queued behind the requests read before it
	if flushErr := rt.Flush(ctx); readErr == nil {
		readErr = flushErr
	}
	if err = rt.Shutdown(context.WithoutCancel(ctx)); err != nil {
		log.Printf("srtworker: shutdown: %v", err)
	}
	drainErr := writer.Wait()

	if err = rt.Err(); err != nil {
		return wrapExitError(ExitProtocol, "dispatcher stopped", err)
	}
	if readErr != nil && !errors.Is(readErr, context.Canceled) {
		return wrapExitError(ExitCommandError, "failed to read requests", readErr)
	}
	if drainErr != nil {
		return wrapExitError(ExitCommandError, "failed to write responses", drainErr)
	}
	return nil
}

func loadConfig(ctx context.Context, fs afs.Service, opts *Options) (*srtworker.Config, error) {
	config := srtworker.DefaultConfig()
	if opts.ConfigURL != "" {
		var err error
		if config, err = srtworker.LoadConfig(ctx, fs, opts.ConfigURL); err != nil {
			return nil, err
		}
	}
	if opts.AssetBaseURL != "" {
		config.AssetBaseURL = opts.AssetBaseURL
	}
	if opts.TraceFile != "" {
		if config.Tracing == nil {
			config.Tracing = &srtworker.TracingConfig{ServiceName: "srtworker"}
		}
		config.Tracing.OutputFile = opts.TraceFile
	}
	return config, config.Validate()
}

// read submits one request per non-blank line. A line that is not a valid
// request stops both the reader and the dispatcher.
func read(ctx context.Context, rt *srtworker.Runtime, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := rt.SubmitJSON(ctx, line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
