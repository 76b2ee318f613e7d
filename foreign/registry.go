package foreign

import (
	"sync"
	"unsafe"
)

// Handle identifies a host pair handed to the foreign library.
// Handle 0 is reserved and always invalid.
type Handle uint32

// entry keeps a released pair reachable while the guest refers to it.
// key is a nil *D for the data type of the pair, so lookups can tell
// implementers of one interface apart.
type entry struct {
	box   unsafe.Pointer
	iface *Interface
	key   any
	valid bool
}

// registry is a handle table with a free list. Handles are reused after
// removal, most recently freed first.
type registry struct {
	entries  []entry
	freeList []Handle
	mu       sync.RWMutex
}

func newRegistry() *registry {
	return &registry{
		entries:  make([]entry, 0, 16),
		freeList: make([]Handle, 0, 8),
	}
}

func (r *registry) insert(box unsafe.Pointer, iface *Interface, key any) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := entry{box: box, iface: iface, key: key, valid: true}

	if len(r.freeList) > 0 {
		h := r.freeList[len(r.freeList)-1]
		r.freeList = r.freeList[:len(r.freeList)-1]
		r.entries[h-1] = e
		return h
	}

	r.entries = append(r.entries, e)
	return Handle(len(r.entries))
}

func (r *registry) get(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := int(h) - 1
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return entry{}, false
	}
	return r.entries[idx], true
}

func (r *registry) remove(h Handle) (entry, bool) {
	if h == 0 {
		return entry{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := int(h) - 1
	if idx >= len(r.entries) || !r.entries[idx].valid {
		return entry{}, false
	}

	e := r.entries[idx]
	r.entries[idx] = entry{}
	r.freeList = append(r.freeList, h)
	return e, true
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) - len(r.freeList)
}

// drain removes every live entry and returns them.
func (r *registry) drain() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var live []entry
	for i := range r.entries {
		if r.entries[i].valid {
			live = append(live, r.entries[i])
		}
	}
	r.entries = r.entries[:0]
	r.freeList = r.freeList[:0]
	return live
}
