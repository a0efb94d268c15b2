package processor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/srtworker/internal/clock"
	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/conversion"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/messaging"
	"github.com/viant/srtworker/tracing"
)

// Service dispatches inbound requests
type Service struct {
	queue      messaging.Queue[message.Request]
	responses  messaging.Queue[message.Response]
	cache      *dictionary.Cache
	conversion *conversion.Service

	tasks   sync.WaitGroup
	spawned atomic.Int64
	handled atomic.Int64

	mu        sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// New creates a dispatcher
func New(options ...Option) (*Service, error) {
	s := &Service{done: make(chan struct{})}
	for _, opt := range options {
		opt(s)
	}
	if s.queue == nil {
		return nil, fmt.Errorf("message queue is required")
	}
	if s.responses == nil {
		return nil, fmt.Errorf("response queue is required")
	}
	if s.cache == nil {
		return nil, fmt.Errorf("dictionary cache is required")
	}
	if s.conversion == nil {
		return nil, fmt.Errorf("conversion service is required")
	}
	return s, nil
}

// Handle runs the synchronous part of one request. For addFile the current
// dictionary slot is captured and a conversion task spawned; for preloadDict
// the slot is replaced. Handle never waits for a conversion. A returned error
// is a protocol violation and must be treated as fatal.
//
// Handle must not be called concurrently.
func (s *Service) Handle(ctx context.Context, request *message.Request) error {
	if request == nil {
		return fmt.Errorf("%w: request was nil", message.ErrProtocol)
	}
	if err := request.Validate(); err != nil {
		return err
	}
	switch request.Action {
	case message.ActionAddFile:
		s.spawn(ctx, request.ID, request.AddFile, s.cache.Snapshot())
	case message.ActionPreloadDict:
		s.cache.Preload(ctx, request.PreloadDict.Dict)
	}
	return nil
}

func (s *Service) spawn(ctx context.Context, id message.ID, request *message.AddFile, dict *dictionary.Future) {
	s.tasks.Add(1)
	s.spawned.Add(1)
	taskCtx := context.WithoutCancel(ctx)
	go func() {
		defer s.tasks.Done()
		started := clock.Now()
		response := s.conversion.Run(taskCtx, id, request, dict)
		if !response.IsSuccess() {
			log.Printf("task %v: failed after %s: %v", id, clock.Since(started), response.Err)
		}
		if err := s.responses.Publish(taskCtx, response); err != nil {
			log.Printf("task %v: failed to publish response: %v", id, err)
		}
	}()
}

// Run consumes requests until ctx is cancelled (returns nil) or a protocol
// violation is met (returns the violation).
func (s *Service) Run(ctx context.Context) error {
	for {
		msg, err := s.queue.Consume(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Transient queue error; back off a bit.
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if msg == nil {
			continue
		}
		if err = s.dispatch(ctx, msg); err != nil {
			log.Printf("dispatcher: fatal: %v", err)
			return err
		}
	}
}

func (s *Service) dispatch(ctx context.Context, msg messaging.Message[message.Request]) error {
	request := msg.T()
	ctx, span := tracing.StartSpan(ctx, "dispatcher.handle", tracing.KindConsumer)
	span.WithAttributes(map[string]string{"request.action": string(request.Action), "request.id": request.ID.String()})
	err := s.Handle(ctx, request)
	tracing.EndSpan(span, err)
	if err != nil {
		_ = msg.Nack(err)
		return err
	}
	_ = msg.Ack()
	s.handled.Add(1)
	return nil
}

// Start runs the dispatch loop in the background.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return fmt.Errorf("processor already started")
	}
	if s.err != nil {
		return s.err
	}
	select {
	case <-s.done:
		return fmt.Errorf("processor was shut down")
	default:
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go func() {
		s.finish(s.Run(loopCtx))
	}()
	return nil
}

func (s *Service) finish(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
	s.closeOnce.Do(func() { close(s.done) })
}

// Abort stops the dispatch loop with a fatal error, e.g. an inbound message
// rejected before it could be queued.
func (s *Service) Abort(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		s.closeOnce.Do(func() { close(s.done) })
		return
	}
	cancel()
}

// Done is closed once the dispatch loop stops.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Err returns the fatal error that stopped the loop, if any.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Spawned returns the number of conversion tasks started so far.
func (s *Service) Spawned() int64 {
	return s.spawned.Load()
}

// Handled returns the number of requests dispatched without error.
func (s *Service) Handled() int64 {
	return s.handled.Load()
}

// Wait blocks until every spawned task has published its response.
func (s *Service) Wait() {
	s.tasks.Wait()
}

// Shutdown stops consuming requests and waits for in-flight tasks.
func (s *Service) Shutdown() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-s.done
	} else {
		s.closeOnce.Do(func() { close(s.done) })
	}
	s.tasks.Wait()
}
