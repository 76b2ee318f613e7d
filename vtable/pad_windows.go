//go:build windows

package vtable

// DropPadding is empty on Windows, where the destructor occupies a single
// slot.
type DropPadding struct{}

// DropPaddingWords is the number of words DropPadding occupies.
const DropPaddingWords = 0
