// Package errors provides structured error types for the nbt module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes context: tag path, byte offset, observed and expected
// values, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindTagIDMismatch).
//		Path("root", "pos").
//		Mismatch(int8(3), int8(9)).
//		Offset(42).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownTagID(errors.PhaseLoad, 99)
//	err := errors.TruncatedBuffer(offset, 4, 1)
//
// Every kind has a phase-less sentinel for errors.Is:
//
//	if errors.Is(err, nbterrors.ErrTruncatedBuffer) { ... }
package errors
