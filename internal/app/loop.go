package app

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// DefaultLoopBuffer is the number of posted functions a Loop queues
// before Post blocks.
const DefaultLoopBuffer = 64

// Loop runs posted functions one at a time on the goroutine that calls
// Run. State owned by the loop, such as the output panel, is only touched
// from inside posted functions.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
	logger   *Logger
}

// NewLoop creates a loop. A non-positive buffer selects DefaultLoopBuffer.
func NewLoop(buffer int, logger *Logger) *Loop {
	if buffer <= 0 {
		buffer = DefaultLoopBuffer
	}
	if logger == nil {
		logger = NullLogger
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger.WithComponent("loop"),
	}
}

// Post schedules fn on the loop. It returns false once the loop has been
// stopped; fn is then never run.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted functions until Stop is called or ctx is done.
// Functions already queued when Stop is called still run.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	for {
		select {
		case fn := <-l.queue:
			l.call(fn)
		case <-l.done:
			l.drain()
			return nil
		case <-ctx.Done():
			l.Stop()
			l.drain()
			return ctx.Err()
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.queue:
			l.call(fn)
		default:
			return
		}
	}
}

// call runs fn, logging a panic instead of ending the loop.
func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			l.logger.Error("%v", NewRecoveredPanicError(r, string(stack[:n])))
		}
	}()
	fn()
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// IsRunning reports whether Run is active.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}
