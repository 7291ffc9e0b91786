// Package errors provides structured error types for the js-runtime
// library.
//
// Errors are categorized by Phase (which subsystem the error occurred in)
// and Kind (error category), with an optional human detail and cause
// chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseBuffer, errors.KindOutOfBounds).
//		Detail("region [%d, %d) exceeds memory size %d", off, end, size).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Shutdown("post callback")
//	err := errors.OutOfBounds(errors.PhaseBuffer, off, length, size)
//
// All errors implement the standard error interface and support
// errors.Is/As. The dispatch and borrow packages keep their own small,
// closed error types (SendError, JoinError, BorrowError) because callers
// branch on them; this package serves the diagnostic surfaces.
package errors
