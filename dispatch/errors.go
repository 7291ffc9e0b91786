package dispatch

// SendError indicates a closure could not be scheduled onto the engine
// goroutine. The only cause is engine shutdown; callers decide whether
// to retry elsewhere, ignore, or propagate.
type SendError struct{}

func (SendError) Error() string {
	return "dispatch: could not schedule task, engine is shutting down"
}

// JoinErrorKind is the closed set of join failures.
type JoinErrorKind int

const (
	// KindPanicked means the task's sender was dropped without ever
	// sending: the closure panicked, or the engine shut down before the
	// task was delivered. The two are intentionally indistinguishable.
	KindPanicked JoinErrorKind = iota

	// KindScriptException means the closure ran to completion but
	// produced a script-level exception instead of a value.
	KindScriptException
)

// JoinError is returned by JoinHandle.Join and JoinContext when the
// associated closure produced no value.
type JoinError struct {
	Kind JoinErrorKind

	// cause is advisory text only. Exception values belong to the engine
	// goroutine; their contents must not be touched from the joining
	// side.
	cause error
}

func (e *JoinError) Error() string {
	switch e.Kind {
	case KindScriptException:
		return "dispatch: task threw a script exception"
	default:
		return "dispatch: task panicked before returning a result"
	}
}

// Unwrap exposes the closure's error for message formatting. nil for
// KindPanicked.
func (e *JoinError) Unwrap() error { return e.cause }

// Panicked reports whether the join failed with KindPanicked.
func (e *JoinError) Panicked() bool { return e.Kind == KindPanicked }

// Thrown reports whether the join failed with KindScriptException.
func (e *JoinError) Thrown() bool { return e.Kind == KindScriptException }
