// Package physics binds a rigid body physics library to Go.
//
// The library itself runs inside the foreign package's wasm host; Go code
// sees it through counted handles (Shape, PhysicsMaterial, PhysicsSystem,
// BodyInterface) and supplies behavior through vtables: three layer
// filters that decide which bodies may collide, and optional contact and
// body activation listeners called back while the system steps.
//
//	physics.Initialize(ctx, foreign.DefaultConfig())
//	sys, err := physics.NewPhysicsSystem[Contacts, physics.NoopBodyActivationListener](ctx,
//		physics.DefaultPhysicsSettings(),
//		physics.NewGameBroadPhaseBroadPhaseLayerInterfaceBox(physics.GameBroadPhase{}),
//		physics.NewGameBroadPhaseObjectVsBroadPhaseLayerFilterBox(physics.GameBroadPhase{}),
//		physics.NewGameLayerPairsBox(physics.GameLayerPairs{}),
//	)
//	defer sys.Release()
//
// A Noop listener must never be called. If the library calls one anyway
// it aborts: every later call fails with ErrAborted until Shutdown and a
// new Initialize.
//
// Every type shared with the library is plain data of a fixed layout.
// Handles are not safe for concurrent use; the library is process wide
// and listeners run on the goroutine that called Update.
package physics
