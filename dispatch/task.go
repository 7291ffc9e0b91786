package dispatch

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/engine"
)

// task is one unit of posted work, boxed so the trampoline can handle
// any result type.
type task interface {
	// run executes the closure on the engine goroutine. Exactly one of
	// run and abandon is invoked per task.
	run(access *engine.Access)
	// abandon resolves the task's observer as panicked without running
	// the closure.
	abandon()
}

// funcTask is a fire-and-forget task with no observer, used internally
// for handing engine-goroutine-only work (like unreference) across.
type funcTask func(access *engine.Access)

func (f funcTask) run(access *engine.Access) { f(access) }
func (f funcTask) abandon()                  {}

// result carries a delivered outcome through the one-shot channel. A
// closed channel with no result is the third outcome: panicked.
type result[T any] struct {
	value T
	exc   error
}

type oneshot[T any] struct {
	fn func(*engine.Access) (T, error)
	tx chan result[T]
}

func (t *oneshot[T]) run(access *engine.Access) {
	defer func() {
		if r := recover(); r != nil {
			Logger().Warn("dispatched task panicked", zap.Any("panic", r))
		}
		// Closing without a prior send is what JoinHandle reads as
		// panicked; after a send it just seals the channel.
		close(t.tx)
	}()

	v, err := t.fn(access)
	if err != nil {
		t.tx <- result[T]{exc: err}
		return
	}
	t.tx <- result[T]{value: v}
}

func (t *oneshot[T]) abandon() {
	close(t.tx)
}

// TrySend schedules fn to execute on the engine goroutine and returns a
// JoinHandle observing its outcome. It fails with SendError only when
// the engine has shut down and the primitive rejects new work; no
// JoinHandle exists in that case.
//
// fn returning a non-nil error is the script-exception outcome: the
// convention is that the error is (or wraps) a thrown JS exception. Only
// the fact and message cross back to the joining goroutine; rethrowing
// the actual exception has to happen on the engine goroutine.
func TrySend[T any](c *Channel, fn func(*engine.Access) (T, error)) (*JoinHandle[T], error) {
	c.ensureOpen()
	t := &oneshot[T]{fn: fn, tx: make(chan result[T], 1)}
	if err := c.state.prim.Call(t); err != nil {
		return nil, SendError{}
	}
	return &JoinHandle[T]{rx: t.tx}, nil
}

// Send is TrySend that panics when the task cannot be scheduled.
func Send[T any](c *Channel, fn func(*engine.Access) (T, error)) *JoinHandle[T] {
	h, err := TrySend(c, fn)
	if err != nil {
		panic(err)
	}
	return h
}

// JoinHandle is the owned permission to observe the outcome of one
// dispatched closure. Single consumer: once Join or JoinContext has
// resolved, the handle is spent. Discarding a JoinHandle without joining
// is harmless; the closure still runs.
type JoinHandle[T any] struct {
	rx     chan result[T]
	joined bool
}

// Join blocks until the associated closure finishes executing and
// returns its value, or a *JoinError if the closure panicked, threw, or
// was never delivered.
func (h *JoinHandle[T]) Join() (T, error) {
	h.consume()
	res, ok := <-h.rx
	return collapse(res, ok)
}

// JoinContext is the awaitable form of Join. On ctx cancellation it
// returns ctx.Err() and the handle stays joinable; the task itself is
// not cancelled.
func (h *JoinHandle[T]) JoinContext(ctx context.Context) (T, error) {
	h.consume()
	select {
	case res, ok := <-h.rx:
		return collapse(res, ok)
	case <-ctx.Done():
		h.joined = false
		var zero T
		return zero, ctx.Err()
	}
}

func (h *JoinHandle[T]) consume() {
	if h.joined {
		panic("dispatch: JoinHandle joined twice")
	}
	h.joined = true
}

// collapse folds the nested channel outcome (disconnected | delivered
// error | delivered value) into the three-way result callers see.
func collapse[T any](res result[T], ok bool) (T, error) {
	var zero T
	if !ok {
		return zero, &JoinError{Kind: KindPanicked}
	}
	if res.exc != nil {
		return zero, &JoinError{Kind: KindScriptException, cause: res.exc}
	}
	return res.value, nil
}
