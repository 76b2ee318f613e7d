package ref

import (
	"errors"
	"strings"
	"testing"
	"unsafe"
)

// heap is a stand-in for a foreign allocator with intrusive counts.
type heap struct {
	counts map[uintptr]uint32
	frees  int
	next   uintptr
}

var fake = &heap{counts: map[uintptr]uint32{}, next: 0x1000}

func (h *heap) alloc() uintptr {
	h.next += 16
	h.counts[h.next] = 1
	return h.next
}

func (h *heap) release(p uintptr) {
	h.counts[p]--
	if h.counts[p] == 0 {
		delete(h.counts, p)
		h.frees++
	}
}

type shapeTarget struct{}

func (shapeTarget) Name() string { return "Shape" }

func (shapeTarget) Clone(p uintptr) uintptr {
	fake.counts[p]++
	return p
}

func (shapeTarget) Drop(p uintptr) { fake.release(p) }

func (shapeTarget) Count(p uintptr) uint32 { return fake.counts[p] }

type shape = Ref[uintptr, shapeTarget]

func TestRef_CloneAndRelease(t *testing.T) {
	s, err := New[uintptr, shapeTarget](fake.alloc())
	if err != nil {
		t.Fatal(err)
	}
	if s.Count() != 1 {
		t.Fatalf("Count = %d, want 1", s.Count())
	}

	c := s.Clone()
	if s.Count() != 2 || c.Count() != 2 {
		t.Errorf("after clone Count = %d/%d, want 2", s.Count(), c.Count())
	}
	if c.Raw() != s.Raw() {
		t.Error("clone must point at the same object")
	}

	c.Release()
	if !c.IsNil() {
		t.Error("released handle should be absent")
	}
	if s.Count() != 1 {
		t.Errorf("after release Count = %d, want 1", s.Count())
	}

	c.Release()
	if s.Count() != 1 {
		t.Error("second Release on the same handle must not drop again")
	}
	s.Release()
}

func TestRef_FreedOnceAfterLastDrop(t *testing.T) {
	a, err := FromFactory[uintptr, shapeTarget](fake.alloc)
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()
	c := b.Clone()
	frees := fake.frees

	a.Release()
	b.Release()
	if fake.frees != frees {
		t.Fatal("object freed before the last handle went away")
	}
	c.Release()
	if fake.frees != frees+1 {
		t.Errorf("frees = %d, want %d", fake.frees, frees+1)
	}
}

func TestRef_Absent(t *testing.T) {
	var s shape
	if !s.IsNil() {
		t.Error("zero value must be absent")
	}
	if s.Raw() != 0 {
		t.Error("absent handle must have null bits")
	}
	if s.Count() != 0 {
		t.Error("absent handle count should be 0")
	}
	if c := s.Clone(); !c.IsNil() {
		t.Error("clone of absent handle should be absent")
	}
	s.Release()

	if unsafe.Sizeof(s) != unsafe.Sizeof(uintptr(0)) {
		t.Errorf("Ref size = %d, raw size = %d", unsafe.Sizeof(s), unsafe.Sizeof(uintptr(0)))
	}
}

func TestRef_NullFactory(t *testing.T) {
	s, err := FromFactory[uintptr, shapeTarget](func() uintptr { return 0 })
	if err == nil {
		t.Fatal("expected error for null factory result")
	}
	if !errors.Is(err, ErrNull) {
		t.Errorf("error %v does not match ErrNull", err)
	}
	if !strings.Contains(err.Error(), "Shape") {
		t.Errorf("error %q should name the target", err)
	}
	if !s.IsNil() {
		t.Error("failed construction must return an absent handle")
	}
}

func TestRef_String(t *testing.T) {
	var s shape
	if s.String() != "Shape(nil)" {
		t.Errorf("String = %q", s.String())
	}
	s, _ = New[uintptr, shapeTarget](fake.alloc())
	defer s.Release()
	if !strings.HasPrefix(s.String(), "Shape(") {
		t.Errorf("String = %q", s.String())
	}
}

// borrowed models a handle into an object owned by a container; its count
// is the container's.
type borrowed struct {
	itf       uintptr
	container uintptr
}

type borrowedTarget struct{}

func (borrowedTarget) Name() string { return "BodyInterface" }

func (borrowedTarget) Clone(b borrowed) borrowed {
	fake.counts[b.container]++
	return b
}

func (borrowedTarget) Drop(b borrowed) { fake.release(b.container) }

func (borrowedTarget) Count(b borrowed) uint32 { return fake.counts[b.container] }

func TestRef_BorrowedCountsContainer(t *testing.T) {
	sys, _ := New[uintptr, shapeTarget](fake.alloc())
	b, err := New[borrowed, borrowedTarget](borrowed{itf: sys.Raw() + 8, container: sys.Clone().Raw()})
	if err != nil {
		t.Fatal(err)
	}
	if sys.Count() != 2 {
		t.Fatalf("system count = %d, want 2", sys.Count())
	}

	c := b.Clone()
	if sys.Count() != 3 {
		t.Errorf("clone of borrowed handle should bump the container, count = %d", sys.Count())
	}
	c.Release()
	b.Release()
	if sys.Count() != 1 {
		t.Errorf("system count = %d, want 1", sys.Count())
	}
	sys.Release()

	var absent Ref[borrowed, borrowedTarget]
	if unsafe.Sizeof(absent) != unsafe.Sizeof(borrowed{}) {
		t.Error("borrowed Ref must be the size of its raw pair")
	}
}
