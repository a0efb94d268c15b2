package srtworker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/asset"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/messaging"
	"github.com/viant/srtworker/service/processor"
)

// Runtime represents a running dispatcher
type Runtime struct {
	processor *processor.Service
	queue     messaging.Queue[message.Request]
	responses messaging.Queue[message.Response]
	cache     *dictionary.Cache
	assets    asset.Store
	submitted atomic.Int64
}

// Start starts the dispatch loop
func (r *Runtime) Start(ctx context.Context) error {
	return r.processor.Start(ctx)
}

// Shutdown stops consuming requests and waits until every spawned conversion
// has published its response, or ctx is done.
func (r *Runtime) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.processor.Shutdown()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit queues a typed request. Requests are not validated here: the
// dispatcher treats an invalid request as fatal when it reaches it.
func (r *Runtime) Submit(ctx context.Context, request *message.Request) error {
	if err := r.processor.Err(); err != nil {
		return fmt.Errorf("dispatcher stopped: %w", err)
	}
	if err := r.queue.Publish(ctx, request); err != nil {
		return err
	}
	r.submitted.Add(1)
	return nil
}

// Flush waits until every submitted request went through the dispatcher. It
// does not wait for the conversions those requests spawned.
func (r *Runtime) Flush(ctx context.Context) error {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for r.processor.Handled() < r.submitted.Load() {
		select {
		case <-r.processor.Done():
			return r.processor.Err()
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// SubmitJSON decodes a wire message and queues it. A message that does not
// match the request schema is queued as a rejected request: everything
// submitted before it is still dispatched, then the dispatcher stops. The
// violation is returned.
func (r *Runtime) SubmitJSON(ctx context.Context, data []byte) error {
	request, err := message.Decode(data)
	if err != nil {
		if submitErr := r.Submit(ctx, message.NewRejected(err)); submitErr != nil {
			r.processor.Abort(err)
		}
		return err
	}
	return r.Submit(ctx, request)
}

// Response waits for the next response, in completion order.
func (r *Runtime) Response(ctx context.Context) (*message.Response, error) {
	msg, err := r.responses.Consume(ctx)
	if err != nil {
		return nil, err
	}
	response := *msg.T()
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return &response, nil
}

// Drain hands every response to fn until all spawned tasks are accounted for
// once the dispatcher stopped, or ctx is done.
func (r *Runtime) Drain(ctx context.Context, fn func(response *message.Response) error) error {
	var handled int64
	for {
		select {
		case <-r.processor.Done():
			// no task is spawned once the loop stopped
			if handled >= r.processor.Spawned() {
				return nil
			}
		default:
		}
		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		response, err := r.Response(waitCtx)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		handled++
		if err = fn(response); err != nil {
			return err
		}
	}
}

// Done is closed once the dispatch loop stops.
func (r *Runtime) Done() <-chan struct{} {
	return r.processor.Done()
}

// Err returns the fatal error that stopped the dispatcher, if any.
func (r *Runtime) Err() error {
	return r.processor.Err()
}

// Dictionary returns the dictionary slot currently visible to new requests.
func (r *Runtime) Dictionary() *dictionary.Future {
	return r.cache.Snapshot()
}

// Assets returns the output handle store; callers revoke handles through it.
func (r *Runtime) Assets() asset.Store {
	return r.assets
}
