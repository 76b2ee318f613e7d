package physics

import "github.com/wippyai/joltbridge/errors"

// Sentinels for errors.Is. Each matches the failure of one constructor.
var (
	ErrCreateShape    = &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindNilPointer, GoType: "Shape"}
	ErrCreateMaterial = &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindNilPointer, GoType: "PhysicsMaterial"}
	ErrCreateSystem   = &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindNilPointer, GoType: "PhysicsSystem"}
	ErrCreateBody     = &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindInvalidData, GoType: "Body"}
	ErrNotInitialized = &errors.Error{Phase: errors.PhaseBridge, Kind: errors.KindNotInitialized}
	ErrStaleHandles   = &errors.Error{Phase: errors.PhaseBridge, Kind: errors.KindStale}
	ErrAborted        = &errors.Error{Phase: errors.PhaseBridge, Kind: errors.KindAborted}
)
