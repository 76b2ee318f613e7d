// Package ref holds handles to objects whose lifetime is governed by an
// intrusive reference count on the foreign side.
//
// A Ref is exactly as large as the raw value it wraps. Its zero value is
// the absent handle, which is how an optional reference is spelled: the
// null bit pattern of the raw value means "no object".
//
// What cloning, dropping and counting mean for a given kind of object is
// supplied statically by a zero-size Target type:
//
//	type shapeTarget struct{}
//
//	func (shapeTarget) Name() string               { return "Shape" }
//	func (shapeTarget) Clone(p Ptr) Ptr            { addRef(p); return p }
//	func (shapeTarget) Drop(p Ptr)                 { release(p) }
//	func (shapeTarget) Count(p Ptr) uint32         { return count(p) }
//
//	type Shape = ref.Ref[Ptr, shapeTarget]
//
// Clone and Release are not synchronized; share a Ref across goroutines only
// with external locking.
package ref

import (
	"fmt"

	"github.com/wippyai/joltbridge/errors"
)

// ErrNull matches every error reporting a null raw value.
var ErrNull = &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindNilPointer}

// Target describes how a kind of foreign object is reference counted.
// Implementations are zero-size types; their methods are resolved at
// compile time through the Ref type parameter.
type Target[R comparable] interface {
	// Name is used in diagnostics.
	Name() string
	// Clone adds one foreign reference and returns the raw value of the new one.
	Clone(raw R) R
	// Drop removes one foreign reference. At zero the foreign side frees the object.
	Drop(raw R)
	// Count reads the current foreign count.
	Count(raw R) uint32
}

// Ref owns one foreign reference.
type Ref[R comparable, K Target[R]] struct {
	raw R
}

// New adopts raw, which must already carry one reference for the caller.
func New[R comparable, K Target[R]](raw R) (Ref[R, K], error) {
	var zero R
	if raw == zero {
		var k K
		return Ref[R, K]{}, errors.New(errors.PhaseConstruct, errors.KindNilPointer).
			GoType(k.Name()).
			Detail("foreign side returned a null %s", k.Name()).
			Build()
	}
	return Ref[R, K]{raw: raw}, nil
}

// FromFactory calls a foreign constructor and adopts its result.
func FromFactory[R comparable, K Target[R]](factory func() R) (Ref[R, K], error) {
	return New[R, K](factory())
}

// Clone returns a second handle to the same object, adding exactly one
// foreign reference. Cloning an absent handle yields an absent handle.
func (r Ref[R, K]) Clone() Ref[R, K] {
	var zero R
	if r.raw == zero {
		return r
	}
	var k K
	return Ref[R, K]{raw: k.Clone(r.raw)}
}

// Release gives up this handle's reference. The handle becomes absent, so a
// second Release is a no-op.
func (r *Ref[R, K]) Release() {
	var zero R
	if r.raw == zero {
		return
	}
	var k K
	raw := r.raw
	r.raw = zero
	k.Drop(raw)
}

// Count reports the foreign reference count, or 0 for an absent handle.
func (r Ref[R, K]) Count() uint32 {
	var zero R
	if r.raw == zero {
		return 0
	}
	var k K
	return k.Count(r.raw)
}

// Raw exposes the raw value without affecting the count.
func (r Ref[R, K]) Raw() R {
	return r.raw
}

// IsNil reports whether the handle is absent.
func (r Ref[R, K]) IsNil() bool {
	var zero R
	return r.raw == zero
}

func (r Ref[R, K]) String() string {
	var k K
	if r.IsNil() {
		return k.Name() + "(nil)"
	}
	return fmt.Sprintf("%s(%v)", k.Name(), r.raw)
}
