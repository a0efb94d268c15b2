package dictionary

import (
	"context"
	"sync"
)

// Future is a settle-once dictionary load. Tasks that captured a future keep
// observing its outcome even after the cache slot has been replaced.
type Future struct {
	// URL is the dictionary reference the future loads.
	URL   string
	done  chan struct{}
	once  sync.Once
	value string
	err   error
}

func newFuture(URL string) *Future {
	return &Future{URL: URL, done: make(chan struct{})}
}

// Resolved returns an already settled future holding text.
func Resolved(text string) *Future {
	ret := newFuture("")
	ret.settle(text, nil)
	return ret
}

// Failed returns an already settled failed future.
func Failed(err error) *Future {
	ret := newFuture("")
	ret.settle("", err)
	return ret
}

func (f *Future) settle(value string, err error) {
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
	})
}

// Done returns a channel closed once the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Settled reports whether the load has finished.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait suspends until the future settles and returns the dictionary text.
// A nil future stands for an empty slot and resolves to absence (nil, nil).
func (f *Future) Wait(ctx context.Context) (*string, error) {
	if f == nil {
		return nil, nil
	}
	select {
	case <-f.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	value := f.value
	return &value, nil
}
