package physics

import (
	"cmp"
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/physics/internal/guest"
	"github.com/wippyai/joltbridge/ref"
	"github.com/wippyai/joltbridge/vtable"
)

// PhysicsSettings configures a new system.
type PhysicsSettings struct {
	// MaxBodies bounds the number of live bodies, at most MaxBodiesLimit.
	MaxBodies uint32
	// Friction is the combined friction contacts start with.
	Friction float32
}

// MaxBodiesLimit is the largest system the library supports.
const MaxBodiesLimit = guest.MaxBodies

// DefaultPhysicsSettings returns settings for the largest system.
func DefaultPhysicsSettings() PhysicsSettings {
	return PhysicsSettings{MaxBodies: MaxBodiesLimit, Friction: 0.2}
}

// PhysicsSystem is a counted handle to a physics system. CL and BAL are
// the data types of the contact and body activation listeners it accepts;
// use NoopContactListener and NoopBodyActivationListener when a system
// never gets one.
//
// The system owns its three layer filters from creation on and every
// listener while installed. All of them are destroyed together with the
// system, which happens once the last handle, including those held by
// body interfaces, is released.
type PhysicsSystem[CL, BAL any] struct {
	ref.Ref[foreign.Ptr, systemTarget]
}

// NewPhysicsSystem creates a system around three layer filters. The boxes
// are handed over in every case: on failure they are destroyed.
func NewPhysicsSystem[CL, BAL, BPL, OBPL, OLP any](
	ctx context.Context,
	settings PhysicsSettings,
	bpl *vtable.Pair[BPL, BroadPhaseLayerInterfaceVTable],
	obpl *vtable.Pair[OBPL, ObjectVsBroadPhaseLayerFilterVTable],
	olp *vtable.Pair[OLP, ObjectLayerPairFilterVTable],
) (PhysicsSystem[CL, BAL], error) {
	var sys PhysicsSystem[CL, BAL]
	l, err := Library()
	if err != nil {
		return sys, err
	}
	if bpl == nil || obpl == nil || olp == nil {
		return sys, errors.New(errors.PhaseConstruct, errors.KindNilPointer).
			GoType("PhysicsSystem").
			Detail("all three layer filters are required").
			Build()
	}

	p0, err0 := foreign.IntoForeign(ctx, l, bpl)
	p1, err1 := foreign.IntoForeign(ctx, l, obpl)
	p2, err2 := foreign.IntoForeign(ctx, l, olp)
	// reclaim returns whatever reached the library and destroys all three.
	reclaim := func() {
		if b, _ := foreign.FromForeign[BPL, BroadPhaseLayerInterfaceVTable](ctx, l, p0); b != nil {
			b.Drop()
		}
		if b, _ := foreign.FromForeign[OBPL, ObjectVsBroadPhaseLayerFilterVTable](ctx, l, p1); b != nil {
			b.Drop()
		}
		if b, _ := foreign.FromForeign[OLP, ObjectLayerPairFilterVTable](ctx, l, p2); b != nil {
			b.Drop()
		}
		if p0 == 0 {
			bpl.Drop()
		}
		if p1 == 0 {
			obpl.Drop()
		}
		if p2 == 0 {
			olp.Drop()
		}
	}
	if err := cmp.Or(err0, err1, err2); err != nil {
		reclaim()
		return sys, err
	}

	r, err := create[systemTarget](ctx, "system_create",
		ptrArg(p0), ptrArg(p1), ptrArg(p2),
		api.EncodeU32(settings.MaxBodies), api.EncodeF32(settings.Friction))
	if err != nil {
		reclaim()
		return sys, err
	}

	Logger().Debug("physics system created",
		zap.Uint32("system", uint32(r.Raw())),
		zap.Uint32("max_bodies", settings.MaxBodies),
	)
	return PhysicsSystem[CL, BAL]{r}, nil
}

// Clone returns a second handle to the system.
func (s PhysicsSystem[CL, BAL]) Clone() PhysicsSystem[CL, BAL] {
	return PhysicsSystem[CL, BAL]{s.Ref.Clone()}
}

func (s PhysicsSystem[CL, BAL]) lib() (*foreign.Library, error) {
	if s.IsNil() {
		return nil, errors.NilPointer(errors.PhaseBridge, []string{"PhysicsSystem"}, "PhysicsSystem")
	}
	return Library()
}

// replaceListener installs listener in the listener field of sys and
// destroys the one it replaces. A listener the system never took is
// destroyed as well.
func replaceListener[D any, V any, PV interface {
	*V
	foreign.Described
}](ctx context.Context, l *foreign.Library, sys foreign.Ptr, field string, listener *vtable.Pair[D, V]) error {
	p, err := foreign.IntoForeign[D, V, PV](ctx, l, listener)
	if err != nil {
		return err
	}
	old, err := swap(ctx, l, sys, field, p)
	if err != nil {
		if back, ferr := foreign.FromForeign[D, V, PV](ctx, l, p); back != nil {
			back.Drop()
		} else if ferr != nil {
			Logger().Warn("listener not reclaimed", zap.String("field", field), zap.Error(ferr))
		}
		return err
	}
	prev, err := foreign.FromForeign[D, V, PV](ctx, l, old)
	if prev != nil {
		prev.Drop()
	}
	return err
}

// swap installs p in the listener field and returns the previous pointer.
func swap(ctx context.Context, l *foreign.Library, sys foreign.Ptr, field string, p foreign.Ptr) (foreign.Ptr, error) {
	res, err := l.Call(ctx, "system_"+field, ptrArg(sys))
	if err != nil {
		return 0, err
	}
	if _, err := l.Call(ctx, "system_set_"+field, ptrArg(sys), ptrArg(p)); err != nil {
		return 0, err
	}
	return ptrResult(res), nil
}

// SetContactListener installs listener, or removes the current one when
// listener is nil. A replaced listener is destroyed.
func (s PhysicsSystem[CL, BAL]) SetContactListener(ctx context.Context, listener *vtable.Pair[CL, ContactListenerVTable]) error {
	l, err := s.lib()
	if err != nil {
		return err
	}
	return replaceListener[CL, ContactListenerVTable](ctx, l, s.Raw(), "contact", listener)
}

// ContactListener gives access to the installed listener, nil if none.
// The system keeps owning it.
func (s PhysicsSystem[CL, BAL]) ContactListener(ctx context.Context) (*vtable.Pair[CL, ContactListenerVTable], error) {
	l, err := s.lib()
	if err != nil {
		return nil, err
	}
	res, err := l.Call(ctx, "system_contact", ptrArg(s.Raw()))
	if err != nil {
		return nil, err
	}
	return foreign.Borrow[CL, ContactListenerVTable](l, ptrResult(res))
}

// SetBodyActivationListener installs listener, or removes the current one
// when listener is nil. A replaced listener is destroyed.
func (s PhysicsSystem[CL, BAL]) SetBodyActivationListener(ctx context.Context, listener *vtable.Pair[BAL, BodyActivationListenerVTable]) error {
	l, err := s.lib()
	if err != nil {
		return err
	}
	return replaceListener[BAL, BodyActivationListenerVTable](ctx, l, s.Raw(), "activation", listener)
}

// BodyActivationListener gives access to the installed listener, nil if
// none. The system keeps owning it.
func (s PhysicsSystem[CL, BAL]) BodyActivationListener(ctx context.Context) (*vtable.Pair[BAL, BodyActivationListenerVTable], error) {
	l, err := s.lib()
	if err != nil {
		return nil, err
	}
	res, err := l.Call(ctx, "system_activation", ptrArg(s.Raw()))
	if err != nil {
		return nil, err
	}
	return foreign.Borrow[BAL, BodyActivationListenerVTable](l, ptrResult(res))
}

// BodyInterface returns a handle to the system's body interface. It keeps
// the system alive until released.
func (s PhysicsSystem[CL, BAL]) BodyInterface(ctx context.Context) (BodyInterface, error) {
	l, err := s.lib()
	if err != nil {
		return BodyInterface{}, err
	}
	res, err := l.Call(ctx, "system_body_interface", ptrArg(s.Raw()))
	if err != nil {
		return BodyInterface{}, err
	}
	sys := s.Ref.Clone()
	r, err := ref.New[bodyInterfaceRaw, bodyInterfaceTarget](bodyInterfaceRaw{Itf: ptrResult(res), System: sys.Raw()})
	if err != nil {
		sys.Release()
		return BodyInterface{}, err
	}
	return BodyInterface{r}, nil
}

// Update advances the system by delta seconds, running every listener
// callback on the calling goroutine. It returns the number of contacts
// that are not sensors.
func (s PhysicsSystem[CL, BAL]) Update(ctx context.Context, delta float32) (uint32, error) {
	l, err := s.lib()
	if err != nil {
		return 0, err
	}
	res, err := l.Call(ctx, "step", ptrArg(s.Raw()), api.EncodeF32(delta))
	if err != nil {
		return 0, err
	}
	return api.DecodeU32(res[0]), nil
}

// NumBodies reports the live bodies.
func (s PhysicsSystem[CL, BAL]) NumBodies(ctx context.Context) (uint32, error) {
	return s.u32(ctx, "system_bodies")
}

// MaxBodies reports the capacity the system was created with.
func (s PhysicsSystem[CL, BAL]) MaxBodies(ctx context.Context) (uint32, error) {
	return s.u32(ctx, "system_max_bodies")
}

func (s PhysicsSystem[CL, BAL]) u32(ctx context.Context, fn string) (uint32, error) {
	l, err := s.lib()
	if err != nil {
		return 0, err
	}
	res, err := l.Call(ctx, fn, ptrArg(s.Raw()))
	if err != nil {
		return 0, err
	}
	return api.DecodeU32(res[0]), nil
}
