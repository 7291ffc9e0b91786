package engine

import "go.uber.org/zap"

// Option configures an Engine at Start time.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to the package logger,
// which is a nop unless SetLogger was called.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithName attaches a diagnostic name to the engine.
func WithName(name string) Option {
	return func(e *Engine) {
		e.name = name
	}
}
