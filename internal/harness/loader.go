package harness

import (
	"context"
	"sync"
)

// InitFunc builds the module. It may block.
type InitFunc func(ctx context.Context) (Module, error)

// LoadResult is the outcome of an InitFunc.
type LoadResult struct {
	Module Module
	Err    error
}

// Loader invokes an initializer at most once.
type Loader struct {
	once sync.Once
}

// Load runs init in its own goroutine and hands the result to deliver,
// which should post it to the controller's loop. Calls after the first
// return false and do nothing.
func (l *Loader) Load(ctx context.Context, init InitFunc, deliver func(LoadResult)) bool {
	started := false
	l.once.Do(func() {
		started = true
		go func() {
			m, err := init(ctx)
			deliver(LoadResult{Module: m, Err: err})
		}()
	})
	return started
}
