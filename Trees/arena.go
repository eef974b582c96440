package Trees

import (
	"golang.org/x/exp/constraints"
)

// arena owns every node slot of a tree. Handles are indices into slots;
// handle 0 is slots[0], a permanent zero slot standing for null, so a
// zero-sized subtree reads as sz==0 without branching. Slots never move
// once written, so handles stay valid across growth; a handle is recycled
// only after release.
type arena[N any, S constraints.Unsigned] struct {
	slots []N
	free  []S
}

func newArena[N any, S constraints.Unsigned](hint S) arena[N, S] {
	return arena[N, S]{slots: make([]N, 1, hint+1)}
}

func (u *arena[N, S]) at(i S) *N {
	return &u.slots[i]
}

// alloc returns a handle whose slot contents are undefined; the caller
// initializes every field before publishing the handle into the tree.
// Recycled handles are handed out first; otherwise the slot vector doubles
// and the new tail handles go onto the free list in reverse, so the lowest
// one pops first.
func (u *arena[N, S]) alloc() S {
	if len(u.free) == 0 {
		grown := len(u.slots)
		u.slots = append(u.slots, make([]N, grown)...)
		for i := len(u.slots) - 1; i >= grown; i-- {
			u.free = append(u.free, S(i))
		}
	}
	h := u.free[len(u.free)-1]
	u.free = u.free[:len(u.free)-1]
	return h
}

// release h for reuse. No zeroing. h must no longer be reachable from the
// tree.
func (u *arena[N, S]) release(h S) {
	u.free = append(u.free, h)
}

// Len is the number of live slots: every slot ever created minus the
// sentinel and the free list.
func (u *arena[N, S]) Len() int {
	return len(u.slots) - 1 - len(u.free)
}

// freed reports whether every free handle is within bounds and distinct,
// for use by validators.
func (u *arena[N, S]) freed() (map[S]struct{}, bool) {
	fs := make(map[S]struct{}, len(u.free))
	for _, h := range u.free {
		if h == 0 || int(h) >= len(u.slots) {
			return nil, false
		}
		if _, in := fs[h]; in {
			return nil, false
		}
		fs[h] = struct{}{}
	}
	return fs, true
}
