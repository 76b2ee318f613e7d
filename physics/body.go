package physics

import (
	"context"
	"strconv"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/joltbridge/errors"
	"github.com/wippyai/joltbridge/foreign"
	"github.com/wippyai/joltbridge/ref"
)

// bodyInterfaceRaw is the body interface together with the system that
// owns it. Its references are the system's.
type bodyInterfaceRaw struct {
	Itf    foreign.Ptr
	System foreign.Ptr
}

type bodyInterfaceTarget struct{}

func (bodyInterfaceTarget) Name() string { return "BodyInterface" }

func (bodyInterfaceTarget) Clone(r bodyInterfaceRaw) bodyInterfaceRaw {
	return bodyInterfaceRaw{Itf: r.Itf, System: counted{}.Clone(r.System)}
}

func (bodyInterfaceTarget) Drop(r bodyInterfaceRaw) { counted{}.Drop(r.System) }

func (bodyInterfaceTarget) Count(r bodyInterfaceRaw) uint32 { return counted{}.Count(r.System) }

// BodyInterface creates and removes the bodies of one system. It holds a
// reference to the system.
type BodyInterface struct {
	ref.Ref[bodyInterfaceRaw, bodyInterfaceTarget]
}

// BodyCreationSettings describes a new body.
type BodyCreationSettings struct {
	Shape    Shape
	Layer    ObjectLayer
	UserData uint64
}

// Clone returns a second handle, adding a reference to the system.
func (b BodyInterface) Clone() BodyInterface { return BodyInterface{b.Ref.Clone()} }

func (b BodyInterface) call(ctx context.Context, fn string, args ...uint64) ([]uint64, error) {
	if b.IsNil() {
		return nil, errors.NilPointer(errors.PhaseBridge, []string{"BodyInterface"}, "BodyInterface")
	}
	return call(ctx, fn, append([]uint64{ptrArg(b.Raw().Itf)}, args...)...)
}

// CreateBody adds a body. The body takes its own reference to the shape.
// The body activation listener, if any, hears about it before CreateBody
// returns.
func (b BodyInterface) CreateBody(ctx context.Context, settings BodyCreationSettings) (BodyID, error) {
	if settings.Shape.IsNil() {
		return InvalidBodyID, errors.NilPointer(errors.PhaseConstruct, []string{"BodyCreationSettings", "Shape"}, "Shape")
	}
	res, err := b.call(ctx, "body_create",
		ptrArg(settings.Shape.Raw()), api.EncodeU32(uint32(settings.Layer)), settings.UserData)
	if err != nil {
		return InvalidBodyID, err
	}
	id := BodyID(api.DecodeU32(res[0]))
	if !id.IsValid() {
		return InvalidBodyID, errors.New(errors.PhaseConstruct, errors.KindInvalidData).
			GoType("Body").
			Value(settings.Layer).
			Detail("system is full or layer %#x has no broad phase layer", uint32(settings.Layer)).
			Build()
	}
	return id, nil
}

// RemoveBody destroys a body and drops its shape reference.
func (b BodyInterface) RemoveBody(ctx context.Context, id BodyID) error {
	res, err := b.call(ctx, "body_remove", api.EncodeU32(uint32(id)))
	if err != nil {
		return err
	}
	if api.DecodeU32(res[0]) == 0 {
		return errors.NotFound(errors.PhaseBridge, "body", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// ObjectLayer reports the layer a body was created in.
func (b BodyInterface) ObjectLayer(ctx context.Context, id BodyID) (ObjectLayer, error) {
	res, err := b.call(ctx, "body_layer", api.EncodeU32(uint32(id)))
	if err != nil {
		return 0, err
	}
	if api.DecodeI32(res[0]) == -1 {
		return 0, errors.NotFound(errors.PhaseBridge, "body", strconv.FormatUint(uint64(id), 10))
	}
	return ObjectLayer(api.DecodeU32(res[0])), nil
}

// Shape returns a new handle to the shape of a body.
func (b BodyInterface) Shape(ctx context.Context, id BodyID) (Shape, error) {
	res, err := b.call(ctx, "body_shape", api.EncodeU32(uint32(id)))
	if err != nil {
		return Shape{}, err
	}
	p := ptrResult(res)
	if p == 0 {
		return Shape{}, errors.NotFound(errors.PhaseBridge, "body", strconv.FormatUint(uint64(id), 10))
	}
	r, err := ref.New[foreign.Ptr, shapeTarget](counted{}.Clone(p))
	return Shape{r}, err
}
