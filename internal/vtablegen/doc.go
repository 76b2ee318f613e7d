// Package vtablegen turns vtable descriptors into Go code.
//
// A descriptor is a struct of function fields in a file built only with the
// vtabledef tag:
//
//	//go:build vtabledef
//
//	// CounterVTable is called by the foreign counter registry.
//	//
//	//vtable:generate allow_empty
//	type CounterVTable struct {
//		_    structs.HostLayout
//		Drop func(self vtable.SelfMut)
//		Add  func(self vtable.SelfMut, n uint32) uint32
//		Get  func(self vtable.Self) uint32
//	}
//
// From it the generator emits, into zz_generated.vtable.go:
//
//   - the struct again, with a vtable.DropPadding field after Drop
//   - interface Counter with Add and Get, the receiver dropped
//   - NewCounterVTable[T], which fills Drop with vtable.DropGlue and every
//     other field with a trampoline forwarding to (*T).Add or (*T).Get
//   - a ForeignInterface method describing the slots to package foreign,
//     with adapters decoding guest arguments
//   - NoopCounter, when allow_empty is given
//
// An implementer type marked
//
//	//vtable:impl CounterVTable
//	type tally struct{ n uint32 }
//
// gets one package level table and NewTallyPair and NewTallyBox
// constructors. Directives in _test.go files go to
// zz_generated.vtable_test.go.
//
// The Drop field is the destructor. It must take only vtable.SelfMut. Every
// other field takes vtable.Self (read only) or vtable.SelfMut first, at most
// one result, and parameters of fixed-size kinds; see Kind.
package vtablegen
