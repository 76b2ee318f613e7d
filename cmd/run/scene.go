package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/joltbridge/physics"
)

// eventLog collects listener output between two reads.
type eventLog struct {
	lines []string
}

func (l *eventLog) printf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// listener reports every callback of a running scene.
//
//vtable:impl physics.ContactListenerVTable
//vtable:impl physics.BodyActivationListenerVTable
type listener struct {
	log *eventLog
}

func (l *listener) OnContactValidate(body1, body2 physics.BodyID, baseOffset physics.Vec3, result physics.CollideShapeResult) physics.ValidateResult {
	return physics.AcceptContact
}

func (l *listener) OnContactAdded(body1, body2 physics.BodyID, manifold physics.ContactManifold, settings *physics.ContactSettings) {
	l.log.printf("contact added %d-%d", body1, body2)
}

func (l *listener) OnContactPersisted(body1, body2 physics.BodyID, manifold physics.ContactManifold, settings *physics.ContactSettings) {
}

func (l *listener) OnContactRemoved(pair physics.SubShapeIDPair) {
	l.log.printf("contact removed %d-%d", pair.Body1, pair.Body2)
}

func (l *listener) OnBodyActivated(body physics.BodyID, userData uint64) {
	l.log.printf("body %d activated", body)
}

func (l *listener) OnBodyDeactivated(body physics.BodyID, userData uint64) {
	l.log.printf("body %d deactivated", body)
}

var layerNames = map[string]physics.ObjectLayer{
	"static":  physics.LayerStatic,
	"dynamic": physics.LayerDynamic,
	"player":  physics.LayerBodyPlayer,
	"ally":    physics.LayerBodyAlly,
	"enemy":   physics.LayerBodyEnemy,
	"sensor":  physics.LayerSensorDynamic | physics.SensorAll,
	"target":  physics.LayerTarget | physics.TargetEnemy,
	"hit":     physics.LayerHit | physics.HitEnemy,
}

// parseLayer accepts a layer name or a number such as 0x0201.
func parseLayer(s string) (physics.ObjectLayer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l, ok := layerNames[s]; ok {
		return l, nil
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown layer %q", s)
	}
	return physics.ObjectLayer(v), nil
}

func layerName(l physics.ObjectLayer) string {
	for name, v := range layerNames {
		if v == l {
			return name
		}
	}
	return fmt.Sprintf("%#04x", uint32(l))
}

// scene is a physics system with one shared sphere shape and a listener
// that writes to log.
type scene struct {
	sys   physics.PhysicsSystem[listener, listener]
	itf   physics.BodyInterface
	shape physics.Shape
	log   *eventLog
	ids   []physics.BodyID
}

func newScene(ctx context.Context, settings physics.PhysicsSettings) (*scene, error) {
	sys, err := physics.NewPhysicsSystem[listener, listener](ctx, settings,
		physics.NewGameBroadPhaseBroadPhaseLayerInterfaceBox(physics.GameBroadPhase{}),
		physics.NewGameBroadPhaseObjectVsBroadPhaseLayerFilterBox(physics.GameBroadPhase{}),
		physics.NewGameLayerPairsBox(physics.GameLayerPairs{}),
	)
	if err != nil {
		return nil, err
	}
	s := &scene{sys: sys, log: &eventLog{}}

	if err := sys.SetContactListener(ctx, newListenerContactListenerBox(listener{log: s.log})); err != nil {
		s.close()
		return nil, err
	}
	if err := sys.SetBodyActivationListener(ctx, newListenerBodyActivationListenerBox(listener{log: s.log})); err != nil {
		s.close()
		return nil, err
	}
	if s.itf, err = sys.BodyInterface(ctx); err != nil {
		s.close()
		return nil, err
	}
	if s.shape, err = physics.NewSphere(ctx, 0.5); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *scene) add(ctx context.Context, layer physics.ObjectLayer) (physics.BodyID, error) {
	id, err := s.itf.CreateBody(ctx, physics.BodyCreationSettings{
		Shape:    s.shape,
		Layer:    layer,
		UserData: uint64(len(s.ids)),
	})
	if err != nil {
		return physics.InvalidBodyID, err
	}
	s.ids = append(s.ids, id)
	return id, nil
}

func (s *scene) remove(ctx context.Context, id physics.BodyID) error {
	if err := s.itf.RemoveBody(ctx, id); err != nil {
		return err
	}
	s.ids = slices.DeleteFunc(s.ids, func(v physics.BodyID) bool { return v == id })
	return nil
}

func (s *scene) step(ctx context.Context) (uint32, error) {
	return s.sys.Update(ctx, 1.0/60)
}

type bodyInfo struct {
	id    physics.BodyID
	layer physics.ObjectLayer
}

func (s *scene) bodies(ctx context.Context) ([]bodyInfo, error) {
	out := make([]bodyInfo, 0, len(s.ids))
	for _, id := range s.ids {
		l, err := s.itf.ObjectLayer(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, bodyInfo{id: id, layer: l})
	}
	return out, nil
}

// drain returns the events logged since the last call.
func (s *scene) drain() []string {
	lines := s.log.lines
	s.log.lines = nil
	return lines
}

func (s *scene) close() {
	s.shape.Release()
	s.itf.Release()
	s.sys.Release()
}
