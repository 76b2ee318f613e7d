// Package joltbridge lets Go code implement the callback interfaces of a
// foreign C++ style physics library and drive that library from Go.
//
// The foreign side dispatches through vtables: an object's first word
// points at a table of function pointers and the destructor sits in a
// fixed slot. Go types describe such a table as a struct of funcs, and a
// generator writes the glue that fills one from a Go type's methods.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	joltbridge/          Root package, documentation only
//	├── errors/          Structured error types for debugging
//	├── vtable/          Pair and Box, drop glue, per-platform padding
//	├── ref/             Foreign reference counted handles
//	├── foreign/         wazero host for the foreign library and its callbacks
//	├── physics/         Physics bindings: shapes, systems, filters, listeners
//	├── internal/
//	│   ├── vtablegen/   Signature splitting and glue generation
//	│   └── wasm/        Minimal wasm binary encoder for generated guests
//	├── cmd/vtablegen/   go:generate driver for internal/vtablegen
//	├── cmd/run/         Scene runner with an interactive TUI
//	└── examples/        Runnable examples
//
// # Quick Start
//
// Describe the listener, mark the implementing type and run go generate:
//
//	//vtable:impl physics.ContactListenerVTable
//	type Contacts struct{ added int }
//
//	func (c *Contacts) OnContactAdded(b1, b2 physics.BodyID, m physics.ContactManifold, s *physics.ContactSettings) {
//	    c.added++
//	}
//
//	// OnContactValidate, OnContactPersisted, OnContactRemoved ...
//
// Then hand it to a system:
//
//	if err := physics.Initialize(ctx, foreign.DefaultConfig()); err != nil {
//	    log.Fatal(err)
//	}
//	defer physics.Shutdown(ctx)
//
//	sys, err := physics.NewPhysicsSystem[Contacts, physics.NoopBodyActivationListener](ctx,
//	    physics.DefaultPhysicsSettings(), bpl, obpl, olp)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Release()
//
//	err = sys.SetContactListener(ctx, NewContactsBox(Contacts{}))
//
// # Ownership
//
// A Box handed to the library belongs to it until the library calls the
// Drop slot or the Go side takes it back. Reference counted handles in ref
// add one reference per Clone and remove one per Release; the object is
// freed on the foreign side when the last reference goes.
//
// # Thread Safety
//
// Handles and the foreign library are NOT thread-safe. Listener callbacks
// run on the goroutine that stepped the system and may call back into the
// library.
package joltbridge
