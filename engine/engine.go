package engine

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/errors"
)

// invocation is one unit of posted work: the primitive it was posted
// through plus the opaque data handed to that primitive's trampoline.
type invocation struct {
	prim *Primitive
	data any
}

// Engine owns a goja runtime and the queue of callbacks posted to it.
// All runtime access happens on the single engine goroutine spawned by
// Start; everything else talks to the engine through Primitives.
type Engine struct {
	id   uint64
	name string
	log  *zap.Logger

	// Engine goroutine only.
	vm     *goja.Runtime
	access *Access
	refs   int
	locals map[*localKey]any

	mu     sync.Mutex
	queue  []invocation
	closed bool

	stop atomic.Bool
	wake chan struct{}
	done chan struct{}
}

var nextEngineID atomic.Uint64

// Start spawns the engine goroutine, constructs the goja runtime on it,
// and runs setup there before entering the loop. setup receives the
// engine's access token and is the place to create channels, install
// globals, and take initial keep-alive references. If setup returns an
// error the engine is torn down and Start fails.
//
// The loop runs until the keep-alive count reaches zero, ctx is canceled,
// or Close is called.
func Start(ctx context.Context, setup func(*Access) error, opts ...Option) (*Engine, error) {
	e := &Engine{
		id:   nextEngineID.Add(1),
		log:  Logger(),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}

	markRunning()

	started := make(chan error, 1)
	go e.run(ctx, setup, started)

	if err := <-started; err != nil {
		<-e.done
		return nil, errors.Startup(err)
	}
	return e, nil
}

// ID returns the engine's process-unique id. Ids increase monotonically
// in Start order.
func (e *Engine) ID() uint64 { return e.id }

// Name returns the name given via WithName, or "".
func (e *Engine) Name() string { return e.name }

// Done is closed after the loop has exited and every queued callback has
// been delivered its shutdown sentinel.
func (e *Engine) Done() <-chan struct{} { return e.done }

// Close requests eager teardown and waits for Done. Callbacks already
// queued are not executed; they are delivered the shutdown sentinel so
// their observers resolve instead of hanging. Close is idempotent and
// safe from any goroutine.
func (e *Engine) Close(ctx context.Context) error {
	e.stop.Store(true)
	select {
	case e.wake <- struct{}{}:
	default:
	}
	select {
	case <-e.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) run(ctx context.Context, setup func(*Access) error, started chan<- error) {
	// goja state is cheaper to keep thread-affine, and embedders commonly
	// assume the engine goroutine maps to one OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.vm = goja.New()
	e.access = &Access{eng: e}

	if setup != nil {
		if err := setup(e.access); err != nil {
			started <- err
			e.teardown()
			return
		}
	}
	started <- nil
	e.log.Debug("engine started", zap.Uint64("id", e.id), zap.String("name", e.name))

	for {
		for _, inv := range e.take() {
			e.deliver(inv, e.access)
		}

		if e.stop.Load() {
			break
		}

		e.mu.Lock()
		empty := len(e.queue) == 0
		e.mu.Unlock()
		if !empty {
			continue
		}
		if e.refs == 0 {
			// Nothing keeps the loop alive and the queue is drained.
			break
		}

		select {
		case <-e.wake:
		case <-ctx.Done():
			e.stop.Store(true)
		}
	}

	e.teardown()
}

// take swaps out the current queue batch.
func (e *Engine) take() []invocation {
	e.mu.Lock()
	batch := e.queue
	e.queue = nil
	e.mu.Unlock()
	return batch
}

// deliver invokes one trampoline, containing any panic so a misbehaving
// callback cannot take the loop down with it.
func (e *Engine) deliver(inv invocation, access *Access) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("trampoline panicked", zap.Uint64("engine", e.id), zap.Any("panic", r))
		}
	}()
	inv.prim.trampoline(access, inv.data)
}

// teardown closes the queue, delivers the shutdown sentinel to everything
// still in it, and clears the process running flag.
func (e *Engine) teardown() {
	e.mu.Lock()
	e.closed = true
	rest := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, inv := range rest {
		e.deliver(inv, nil)
	}

	markStopped()
	e.log.Debug("engine stopped", zap.Uint64("id", e.id))
	close(e.done)
}
