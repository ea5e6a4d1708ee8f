package vm

import (
	"sync"

	"github.com/chazu/jbridge/jni"
)

// ---------------------------------------------------------------------------
// LocalTable: per-Env local reference table
// ---------------------------------------------------------------------------

// Handles start well above zero so null never collides with a live entry,
// and advance by a pointer-sized step like real JNI handles. They are never
// reused, so a deleted handle stays detectably stale.
const (
	firstHandle = 0x1000
	handleStep  = 8
)

// LocalTable maps local reference handles to objects. It is bounded: once
// capacity handles are live, add fails.
type LocalTable struct {
	mu       sync.Mutex
	entries  map[jni.Object]*Object
	next     uintptr
	capacity int
	peak     int
}

func newLocalTable(capacity int) *LocalTable {
	return &LocalTable{
		entries:  make(map[jni.Object]*Object),
		next:     firstHandle,
		capacity: capacity,
	}
}

// add registers o and returns its new handle. ok is false when the table is
// full.
func (t *LocalTable) add(o *Object) (jni.Object, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.capacity > 0 && len(t.entries) >= t.capacity {
		return 0, false
	}
	h := jni.Object(t.next)
	t.next += handleStep
	t.entries[h] = o
	if len(t.entries) > t.peak {
		t.peak = len(t.entries)
	}
	return h, true
}

// get resolves a handle. ok is false for handles that were never issued or
// have been deleted.
func (t *LocalTable) get(h jni.Object) (*Object, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	o, ok := t.entries[h]
	return o, ok
}

// remove deletes a handle and reports whether it was live.
func (t *LocalTable) remove(h jni.Object) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[h]; !ok {
		return false
	}
	delete(t.entries, h)
	return true
}

// Len returns the number of live handles.
func (t *LocalTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Peak returns the largest number of handles ever live at once.
func (t *LocalTable) Peak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.peak
}

// Capacity returns the table bound; zero means unbounded.
func (t *LocalTable) Capacity() int { return t.capacity }
