//go:build windows

package vtable

import (
	"testing"
	"unsafe"
)

func TestDropPadding_Absent(t *testing.T) {
	var vt counterVTable
	word := unsafe.Sizeof(uintptr(0))

	if got := unsafe.Offsetof(vt.Get) - unsafe.Offsetof(vt.Drop); got != word {
		t.Errorf("first slot after Drop at +%d, want +%d", got, word)
	}
	if got := unsafe.Sizeof(vt); got != 3*word {
		t.Errorf("table size = %d, want %d", got, 3*word)
	}
}
