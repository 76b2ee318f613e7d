// Package errors provides structured error types for the joltbridge module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a source position for generator diagnostics, a field path,
// the offending Go type and value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseGenerate, errors.KindSignature).
//		Pos("vtables.go:12:2").
//		Path("ContactListenerVTable", "OnContactAdded").
//		Detail("first parameter must be vtable.Self or vtable.SelfMut").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NilPointer(errors.PhaseConstruct, nil, "Shape")
//	err := errors.Positioned(errors.KindNaming, pos, "%s must end in VTable", name)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, and on GoType when the target sets one, so a
// bare &Error{Phase, Kind} works as a sentinel.
package errors
