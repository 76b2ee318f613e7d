package physics

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/ref"
)

// ShapeForm tells shapes apart.
type ShapeForm uint32

const (
	FormSphere ShapeForm = 1
	FormBox    ShapeForm = 2
)

func (f ShapeForm) String() string {
	switch f {
	case FormSphere:
		return "Sphere"
	case FormBox:
		return "Box"
	default:
		return "Unknown"
	}
}

// Shape is a counted handle to a collision shape. Bodies hold their own
// reference, so a shape may be released once its bodies exist.
type Shape struct {
	ref.Ref[foreign.Ptr, shapeTarget]
}

// NewSphere creates a sphere. The radius must be positive.
func NewSphere(ctx context.Context, radius float32) (Shape, error) {
	r, err := create[shapeTarget](ctx, "shape_sphere", api.EncodeF32(radius))
	return Shape{r}, err
}

// NewBox creates a box from its half extents, all of which must be
// positive.
func NewBox(ctx context.Context, halfExtent mgl32.Vec3) (Shape, error) {
	r, err := create[shapeTarget](ctx, "shape_box",
		api.EncodeF32(halfExtent.X()), api.EncodeF32(halfExtent.Y()), api.EncodeF32(halfExtent.Z()))
	return Shape{r}, err
}

// Clone returns a second handle to the shape.
func (s Shape) Clone() Shape { return Shape{s.Ref.Clone()} }

// Form reports what kind of shape s is.
func (s Shape) Form(ctx context.Context) (ShapeForm, error) {
	res, err := call(ctx, "shape_form", ptrArg(s.Raw()))
	if err != nil {
		return 0, err
	}
	return ShapeForm(api.DecodeU32(res[0])), nil
}

// PhysicsMaterial is a counted handle to surface properties.
type PhysicsMaterial struct {
	ref.Ref[foreign.Ptr, materialTarget]
}

// NewPhysicsMaterial creates a material. Neither value may be negative.
func NewPhysicsMaterial(ctx context.Context, friction, restitution float32) (PhysicsMaterial, error) {
	r, err := create[materialTarget](ctx, "material_create", api.EncodeF32(friction), api.EncodeF32(restitution))
	return PhysicsMaterial{r}, err
}

// Clone returns a second handle to the material.
func (m PhysicsMaterial) Clone() PhysicsMaterial { return PhysicsMaterial{m.Ref.Clone()} }

// Friction reads the material's friction.
func (m PhysicsMaterial) Friction(ctx context.Context) (float32, error) {
	res, err := call(ctx, "material_friction", ptrArg(m.Raw()))
	if err != nil {
		return 0, err
	}
	return api.DecodeF32(res[0]), nil
}
