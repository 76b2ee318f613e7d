package guest_test

import (
	"context"
	"math"
	"testing"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/physics"
	"github.com/wippyai/joltbridge/physics/internal/guest"
)

func interfaces() guest.Interfaces {
	return guest.Interfaces{
		BroadPhaseLayer:         (*physics.BroadPhaseLayerInterfaceVTable)(nil).ForeignInterface(),
		ObjectVsBroadPhaseLayer: (*physics.ObjectVsBroadPhaseLayerFilterVTable)(nil).ForeignInterface(),
		ObjectLayerPair:         (*physics.ObjectLayerPairFilterVTable)(nil).ForeignInterface(),
		BodyActivation:          (*physics.BodyActivationListenerVTable)(nil).ForeignInterface(),
		Contact:                 (*physics.ContactListenerVTable)(nil).ForeignInterface(),
	}
}

func open(t *testing.T) (context.Context, *foreign.Library) {
	t.Helper()
	ctx := context.Background()
	in := interfaces()
	bin, err := guest.Build(guest.MinPages, in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	lib, err := foreign.Open(ctx, foreign.DefaultConfig(), bin, guest.Order(in)...)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close(ctx) })
	return ctx, lib
}

func call(t *testing.T, ctx context.Context, lib *foreign.Library, fn string, args ...uint64) []uint64 {
	t.Helper()
	res, err := lib.Call(ctx, fn, args...)
	if err != nil {
		t.Fatalf("%s: %v", fn, err)
	}
	return res
}

func f32(v float32) uint64 { return api.EncodeF32(v) }

func TestBuild_Rejects(t *testing.T) {
	in := interfaces()
	if _, err := guest.Build(guest.MinPages-1, in); !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindInvalidInput}) {
		t.Errorf("too few pages: %v", err)
	}
	in.Contact = nil
	if _, err := guest.Build(guest.MinPages, in); !errors.Is(err, &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindNilPointer}) {
		t.Errorf("missing interface: %v", err)
	}
}

func TestOrder(t *testing.T) {
	in := interfaces()
	order := guest.Order(in)
	if len(order) != 5 || order[0] != in.BroadPhaseLayer || order[4] != in.Contact {
		t.Errorf("Order = %v", order)
	}
}

func TestRefcount(t *testing.T) {
	ctx, lib := open(t)

	p := call(t, ctx, lib, "shape_sphere", f32(1))[0]
	if p == 0 {
		t.Fatal("shape_sphere returned null")
	}
	if got := call(t, ctx, lib, "ref_add", p)[0]; got != p {
		t.Errorf("ref_add returned %d, want %d", got, p)
	}
	if n := call(t, ctx, lib, "ref_count", p)[0]; n != 2 {
		t.Errorf("count = %d, want 2", n)
	}

	before := call(t, ctx, lib, "frees")[0]
	call(t, ctx, lib, "ref_release", p)
	if got := call(t, ctx, lib, "frees")[0]; got != before {
		t.Error("freed with a reference left")
	}
	call(t, ctx, lib, "ref_release", p)
	if got := call(t, ctx, lib, "frees")[0]; got != before+1 {
		t.Errorf("frees = %d, want %d", got, before+1)
	}
}

func TestShapes(t *testing.T) {
	ctx, lib := open(t)
	nan := float32(math.NaN())

	tests := []struct {
		name string
		fn   string
		args []uint64
		form uint64
	}{
		{"sphere", "shape_sphere", []uint64{f32(0.5)}, guest.FormSphere},
		{"box", "shape_box", []uint64{f32(1), f32(2), f32(3)}, guest.FormBox},
		{"zero sphere", "shape_sphere", []uint64{f32(0)}, 0},
		{"nan sphere", "shape_sphere", []uint64{f32(nan)}, 0},
		{"negative box", "shape_box", []uint64{f32(1), f32(-2), f32(3)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := call(t, ctx, lib, tt.fn, tt.args...)[0]
			if tt.form == 0 {
				if p != 0 {
					t.Errorf("%s = %d, want null", tt.fn, p)
				}
				return
			}
			if p == 0 {
				t.Fatalf("%s returned null", tt.fn)
			}
			if n := call(t, ctx, lib, "ref_count", p)[0]; n != 1 {
				t.Errorf("new shape count = %d", n)
			}
			if form := call(t, ctx, lib, "shape_form", p)[0]; form != tt.form {
				t.Errorf("form = %d, want %d", form, tt.form)
			}
		})
	}
}

func TestMaterials(t *testing.T) {
	ctx, lib := open(t)

	p := call(t, ctx, lib, "material_create", f32(0.4), f32(0))[0]
	if p == 0 {
		t.Fatal("material_create returned null")
	}
	if f := api.DecodeF32(call(t, ctx, lib, "material_friction", p)[0]); f != 0.4 {
		t.Errorf("friction = %v", f)
	}
	if p := call(t, ctx, lib, "material_create", f32(0.4), f32(-1))[0]; p != 0 {
		t.Error("negative restitution accepted")
	}
}

func TestSystemCreate_Rejects(t *testing.T) {
	ctx, lib := open(t)
	ptr := api.EncodeU32(foreign.HeapBase)

	tests := []struct {
		name string
		args []uint64
	}{
		{"null filter", []uint64{ptr, 0, ptr, 8, f32(0)}},
		{"no bodies", []uint64{ptr, ptr, ptr, 0, f32(0)}},
		{"too many bodies", []uint64{ptr, ptr, ptr, guest.MaxBodies + 1, f32(0)}},
	}
	for _, tt := range tests {
		if p := call(t, ctx, lib, "system_create", tt.args...)[0]; p != 0 {
			t.Errorf("%s: system_create = %d, want null", tt.name, p)
		}
	}
}

func TestSystemLayout(t *testing.T) {
	ctx, lib := open(t)
	bpl, obpl, olp := api.EncodeU32(2000), api.EncodeU32(2008), api.EncodeU32(2016)

	sys := call(t, ctx, lib, "system_create", bpl, obpl, olp, 4, f32(0.5))[0]
	if sys == 0 {
		t.Fatal("system_create returned null")
	}
	if sys%8 != 0 {
		t.Errorf("system at %d is not 8-aligned", sys)
	}
	filters := call(t, ctx, lib, "system_filters", sys)
	if filters[0] != bpl || filters[1] != obpl || filters[2] != olp {
		t.Errorf("filters = %v", filters)
	}
	if n := call(t, ctx, lib, "system_max_bodies", sys)[0]; n != 4 {
		t.Errorf("max bodies = %d", n)
	}
	if n := call(t, ctx, lib, "system_bodies", sys)[0]; n != 0 {
		t.Errorf("bodies = %d", n)
	}

	itf := call(t, ctx, lib, "system_body_interface", sys)[0]
	back, ok := lib.Memory().ReadUint32Le(uint32(itf))
	if !ok || uint64(back) != sys {
		t.Errorf("body interface points at %d, want %d", back, sys)
	}

	call(t, ctx, lib, "system_set_contact", sys, api.EncodeU32(3000))
	if p := call(t, ctx, lib, "system_contact", sys)[0]; p != 3000 {
		t.Errorf("contact listener = %d", p)
	}
	if p := call(t, ctx, lib, "system_activation", sys)[0]; p != 0 {
		t.Errorf("activation listener = %d, want null", p)
	}

	// unknown bodies
	if l := api.DecodeI32(call(t, ctx, lib, "body_layer", itf, 0)[0]); l != -1 {
		t.Errorf("body_layer of an empty system = %d", l)
	}
	if ok := call(t, ctx, lib, "body_remove", itf, 3)[0]; ok != 0 {
		t.Error("body_remove of an unknown body succeeded")
	}
	if p := call(t, ctx, lib, "body_shape", itf, 0)[0]; p != 0 {
		t.Errorf("body_shape of an empty system = %d", p)
	}
}
