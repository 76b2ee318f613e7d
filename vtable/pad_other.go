//go:build !windows

package vtable

// DropPadding reserves the word the foreign side places after the
// destructor slot on this platform.
type DropPadding uintptr

// DropPaddingWords is the number of words DropPadding occupies.
const DropPaddingWords = 1
