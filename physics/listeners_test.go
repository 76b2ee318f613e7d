package physics

import (
	"fmt"
	"strings"
)

// events is what a recorder saw. Pairs copy their data, so recorders
// share it through a pointer.
type events struct {
	log      []string
	reject   map[BodyID]bool
	sensor   bool
	friction float32
	normalY  float32
	result   BodyID
	drops    int
}

func (e *events) add(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

func (e *events) count(prefix string) int {
	n := 0
	for _, l := range e.log {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func (e *events) reset() { e.log = e.log[:0] }

// recorder logs every listener callback.
//
//vtable:impl ContactListenerVTable
//vtable:impl BodyActivationListenerVTable
type recorder struct {
	ev *events
}

func (r *recorder) OnContactValidate(body1 BodyID, body2 BodyID, baseOffset Vec3, result CollideShapeResult) ValidateResult {
	r.ev.add("validate %d %d", body1, body2)
	r.ev.result = result.BodyID2
	if r.ev.reject[body2] {
		return RejectContact
	}
	return AcceptContact
}

func (r *recorder) OnContactAdded(body1 BodyID, body2 BodyID, manifold ContactManifold, settings *ContactSettings) {
	r.ev.add("added %d %d", body1, body2)
	r.ev.friction = settings.CombinedFriction
	r.ev.normalY = manifold.WorldSpaceNormal.Y()
	settings.IsSensor = r.ev.sensor
}

func (r *recorder) OnContactPersisted(body1 BodyID, body2 BodyID, manifold ContactManifold, settings *ContactSettings) {
	r.ev.add("persisted %d %d", body1, body2)
	settings.IsSensor = r.ev.sensor
}

func (r *recorder) OnContactRemoved(pair SubShapeIDPair) {
	r.ev.add("removed %d %d", pair.Body1, pair.Body2)
}

func (r *recorder) OnBodyActivated(body BodyID, userData uint64) {
	r.ev.add("activated %d %d", body, userData)
}

func (r *recorder) OnBodyDeactivated(body BodyID, userData uint64) {
	r.ev.add("deactivated %d %d", body, userData)
}

func (r *recorder) Drop() { r.ev.drops++ }

// countedBroadPhase is the game broad phase with a destruction counter.
//
//vtable:impl BroadPhaseLayerInterfaceVTable
//vtable:impl ObjectVsBroadPhaseLayerFilterVTable
type countedBroadPhase struct {
	GameBroadPhase
	drops *int
}

func (c *countedBroadPhase) Drop() { *c.drops++ }

// countedLayerPairs is the game pair filter with a destruction counter.
//
//vtable:impl ObjectLayerPairFilterVTable
type countedLayerPairs struct {
	GameLayerPairs
	drops *int
}

func (c *countedLayerPairs) Drop() { *c.drops++ }
