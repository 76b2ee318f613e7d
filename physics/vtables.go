//go:build vtabledef

package physics

//go:generate go run github.com/wippyai/joltbridge/cmd/vtablegen

import (
	"structs"

	"github.com/wippyai/joltbridge/vtable"
)

// BroadPhaseLayerInterfaceVTable maps object layers onto broad phase layers.
//
//vtable:generate
type BroadPhaseLayerInterfaceVTable struct {
	_                      structs.HostLayout
	Drop                   func(self vtable.SelfMut)
	GetNumBroadPhaseLayers func(self vtable.Self) uint32
	GetBroadPhaseLayer     func(self vtable.Self, layer ObjectLayer) BroadPhaseLayer
}

// ObjectVsBroadPhaseLayerFilterVTable decides whether an object layer can
// collide with a broad phase layer.
//
//vtable:generate
type ObjectVsBroadPhaseLayerFilterVTable struct {
	_             structs.HostLayout
	Drop          func(self vtable.SelfMut)
	ShouldCollide func(self vtable.Self, layer1 ObjectLayer, layer2 BroadPhaseLayer) bool
}

// ObjectLayerPairFilterVTable decides whether two object layers can
// collide.
//
//vtable:generate
type ObjectLayerPairFilterVTable struct {
	_             structs.HostLayout
	Drop          func(self vtable.SelfMut)
	ShouldCollide func(self vtable.Self, layer1 ObjectLayer, layer2 ObjectLayer) bool
}

// BodyActivationListenerVTable is told when bodies go to sleep and wake up.
//
//vtable:generate allow_empty
type BodyActivationListenerVTable struct {
	_                 structs.HostLayout
	Drop              func(self vtable.SelfMut)
	OnBodyActivated   func(self vtable.SelfMut, body BodyID, userData uint64)
	OnBodyDeactivated func(self vtable.SelfMut, body BodyID, userData uint64)
}

// ContactListenerVTable follows contacts between bodies through their
// lifetime.
//
//vtable:generate allow_empty
type ContactListenerVTable struct {
	_    structs.HostLayout
	Drop func(self vtable.SelfMut)
	// OnContactValidate runs before a new contact is created.
	OnContactValidate func(self vtable.SelfMut, body1 BodyID, body2 BodyID, baseOffset Vec3, result CollideShapeResult) ValidateResult
	// OnContactAdded runs when two bodies start touching. Settings can be
	// changed.
	OnContactAdded func(self vtable.SelfMut, body1 BodyID, body2 BodyID, manifold ContactManifold, settings *ContactSettings)
	// OnContactPersisted runs every step the bodies keep touching.
	OnContactPersisted func(self vtable.SelfMut, body1 BodyID, body2 BodyID, manifold ContactManifold, settings *ContactSettings)
	OnContactRemoved   func(self vtable.SelfMut, pair SubShapeIDPair)
}
