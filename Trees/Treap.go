package Trees

import (
	"cmp"
	"math/rand"

	ReuseDist "github.com/darchr/reusedist"
	"golang.org/x/exp/constraints"
)

// A node in the Treap. l, r, sz are arena handles/sizes; pri is the
// max-heap key drawn once at creation. The zero value is the null
// sentinel: sz==0, children 0.
type tnode[T any, S constraints.Unsigned] struct {
	v    T
	pri  uint64
	l, r S
	sz   S
}

// Treap is a binary search tree on v that is simultaneously a max-heap on
// pri. Priorities are drawn uniformly from the full 64-bit range, so the
// shape is independent of insertion order and the expected depth D is
// O(log n). Every node carries its subtree size, which is what makes
// CountGreater/KLargest/RankOf O(D).
// S is the handle/size type; it should be a wide upper bound for the
// number of elements the treap will ever hold, and must leave the top bit
// of S unused by indices (any realistic workload does).
type Treap[T cmp.Ordered, S constraints.Unsigned] struct {
	arena[tnode[T, S], S]
	root S
	path []S        // descent scratch, reused across calls
	rng  *rand.Rand // nil means the process-wide runtime PRNG
}

// NewTreap with capacity hint. Priorities come from the runtime's
// process-wide PRNG.
func NewTreap[T cmp.Ordered, S constraints.Unsigned](hint S) *Treap[T, S] {
	return &Treap[T, S]{arena: newArena[tnode[T, S]](hint)}
}

// NewTreapSeeded pins a per-set PRNG so tests get deterministic shapes.
func NewTreapSeeded[T cmp.Ordered, S constraints.Unsigned](hint S, seed int64) *Treap[T, S] {
	return &Treap[T, S]{arena: newArena[tnode[T, S]](hint), rng: rand.New(rand.NewSource(seed))}
}

func (u *Treap[T, S]) nextPri() uint64 {
	if u.rng != nil {
		return u.rng.Uint64()
	}
	return ReuseDist.CheapRand64()
}

// rotateLeft the subtree whose handle is held in *ni. Sizes are
// recomputed on the demoted node first, then on the promoted one.
func (u *Treap[T, S]) rotateLeft(ni *S) {
	n := u.at(*ni)
	rci := n.r
	rc := u.at(rci)
	n.r = rc.l
	rc.l = *ni
	n.sz = u.at(n.l).sz + u.at(n.r).sz + 1
	rc.sz = u.at(rc.l).sz + u.at(rc.r).sz + 1
	*ni = rci
}

func (u *Treap[T, S]) rotateRight(ni *S) {
	n := u.at(*ni)
	lci := n.l
	lc := u.at(lci)
	n.l = lc.r
	lc.r = *ni
	n.sz = u.at(n.l).sz + u.at(n.r).sz + 1
	lc.sz = u.at(lc.l).sz + u.at(lc.r).sz + 1
	*ni = lci
}

// linkOf returns the slot holding cur: the root field when the path is
// empty, otherwise the child field of the last node on the path.
func (u *Treap[T, S]) linkOf(cur S) *S {
	if len(u.path) == 0 {
		return &u.root
	}
	p := u.at(u.path[len(u.path)-1])
	if p.l == cur {
		return &p.l
	}
	return &p.r
}

// Insert [OrderedSet.Insert].
// Time: O(D)
func (u *Treap[T, S]) Insert(v T) bool {
	u.path = u.path[:0]
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			u.path = append(u.path, cur)
			cur = n.l
		} else if v > n.v {
			u.path = append(u.path, cur)
			cur = n.r
		} else {
			return false
		}
	}
	h := u.alloc()
	*u.at(h) = tnode[T, S]{v: v, pri: u.nextPri(), sz: 1}
	if len(u.path) == 0 {
		u.root = h
		return true
	}
	if p := u.at(u.path[len(u.path)-1]); v < p.v {
		p.l = h
	} else {
		p.r = h
	}
	i := len(u.path) - 1
	for ; i >= 0; i-- {
		p := u.path[i]
		if u.at(h).pri <= u.at(p).pri {
			break
		}
		u.path = u.path[:i]
		slot := u.linkOf(p)
		if u.at(p).l == h {
			u.rotateRight(slot)
		} else {
			u.rotateLeft(slot)
		}
	}
	for ; i >= 0; i-- {
		u.at(u.path[i]).sz++
	}
	return true
}

// Remove [OrderedSet.Remove]. The victim is rotated down toward its
// smaller-priority child until it is a leaf, then detached; its handle
// goes back to the arena.
// Time: O(D)
func (u *Treap[T, S]) Remove(v T) bool {
	u.path = u.path[:0]
	cur := u.root
	for cur != 0 {
		n := u.at(cur)
		if v < n.v {
			u.path = append(u.path, cur)
			cur = n.l
		} else if v > n.v {
			u.path = append(u.path, cur)
			cur = n.r
		} else {
			break
		}
	}
	if cur == 0 {
		return false
	}
	for {
		n := u.at(cur)
		if n.l == 0 && n.r == 0 {
			break
		}
		slot := u.linkOf(cur)
		if n.l == 0 {
			u.rotateLeft(slot)
		} else if n.r == 0 {
			u.rotateRight(slot)
		} else if u.at(n.l).pri > u.at(n.r).pri {
			u.rotateRight(slot)
		} else {
			u.rotateLeft(slot)
		}
		u.path = append(u.path, *slot)
	}
	if len(u.path) == 0 {
		u.root = 0
	} else if p := u.at(u.path[len(u.path)-1]); p.l == cur {
		p.l = 0
	} else {
		p.r = 0
	}
	for _, a := range u.path {
		u.at(a).sz--
	}
	u.release(cur)
	return true
}

// Has [OrderedSet.Has].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Has(v T) bool {
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			cur = n.l
		} else if v > n.v {
			cur = n.r
		} else {
			return true
		}
	}
	return false
}

// Size [OrderedSet.Size].
// Time: O(1)
func (u *Treap[T, S]) Size() uint {
	return uint(u.at(u.root).sz)
}

// CountGreater [OrderedSet.CountGreater]: descend by key, charging the
// right subtree plus the node itself whenever the query key is smaller.
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) CountGreater(v T) uint {
	var c S
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			c += u.at(n.r).sz + 1
			cur = n.l
		} else if v > n.v {
			cur = n.r
		} else {
			return uint(c + u.at(n.r).sz)
		}
	}
	return uint(c)
}

// Minimum [OrderedSet.Minimum].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Minimum() (T, bool) {
	if cur := u.root; cur == 0 {
		return *new(T), false
	} else {
		for u.at(cur).l != 0 {
			cur = u.at(cur).l
		}
		return u.at(cur).v, true
	}
}

// Maximum [OrderedSet.Maximum].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Maximum() (T, bool) {
	if cur := u.root; cur == 0 {
		return *new(T), false
	} else {
		for u.at(cur).r != 0 {
			cur = u.at(cur).r
		}
		return u.at(cur).v, true
	}
}

// Predecessor [OrderedSet.Predecessor].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Predecessor(v T) (T, bool) {
	var p S
	for cur := u.root; cur != 0; {
		if v <= u.at(cur).v {
			cur = u.at(cur).l
		} else {
			p = cur
			cur = u.at(cur).r
		}
	}
	return u.at(p).v, p != 0
}

// Successor [OrderedSet.Successor].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) Successor(v T) (T, bool) {
	var p S
	for cur := u.root; cur != 0; {
		if v < u.at(cur).v {
			p = cur
			cur = u.at(cur).l
		} else {
			cur = u.at(cur).r
		}
	}
	return u.at(p).v, p != 0
}

// KLargest [OrderedSet.KLargest].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) KLargest(k uint) (T, bool) {
	if cur, t := u.root, S(k); t >= 1 && t <= u.at(cur).sz {
		for cur != 0 {
			if lsz := u.at(u.at(cur).l).sz; t < lsz+1 {
				cur = u.at(cur).l
			} else if t == lsz+1 {
				break
			} else {
				t -= lsz + 1
				cur = u.at(cur).r
			}
		}
		return u.at(cur).v, true
	}
	return *new(T), false
}

// RankOf [OrderedSet.RankOf].
// Time: O(D); Space: O(1)
func (u *Treap[T, S]) RankOf(v T) uint {
	var ra S
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			cur = n.l
		} else if v > n.v {
			ra += u.at(n.l).sz + 1
			cur = n.r
		} else {
			return uint(ra + u.at(n.l).sz + 1)
		}
	}
	return 0
}

// InOrder [OrderedSet.InOrder]. Iterative with a local stack.
func (u *Treap[T, S]) InOrder(f func(v T) bool) {
	st := make([]S, 0, 64)
	for cur := u.root; cur != 0; cur = u.at(cur).l {
		st = append(st, cur)
	}
	for len(st) > 0 {
		cur := st[len(st)-1]
		st = st[:len(st)-1]
		if !f(u.at(cur).v) {
			return
		}
		for cur = u.at(cur).r; cur != 0; cur = u.at(cur).l {
			st = append(st, cur)
		}
	}
}

// Validate [OrderedSet.Validate]: BST order, heap order on priorities,
// subtree sizes, free-list/arena accounting.
func (u *Treap[T, S]) Validate() bool {
	fs, ok := u.freed()
	if !ok {
		return false
	}
	var walk func(h S) (S, bool)
	walk = func(h S) (S, bool) {
		if h == 0 {
			return 0, true
		}
		if _, in := fs[h]; in {
			return 0, false
		}
		n := u.at(h)
		if n.l != 0 {
			if c := u.at(n.l); c.v >= n.v || c.pri > n.pri {
				return 0, false
			}
		}
		if n.r != 0 {
			if c := u.at(n.r); c.v <= n.v || c.pri > n.pri {
				return 0, false
			}
		}
		ls, ok := walk(n.l)
		if !ok {
			return 0, false
		}
		rs, ok := walk(n.r)
		if !ok {
			return 0, false
		}
		if n.sz != ls+rs+1 {
			return 0, false
		}
		return n.sz, true
	}
	total, ok := walk(u.root)
	return ok && int(total) == u.Len() && isAscending[T](u)
}
