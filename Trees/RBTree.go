package Trees

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// A node in the RBTree. pc packs the parent handle with the color in the
// most significant bit of S (set = red). Handles are arena indices, which
// can never reach the top bit of S, so the packing loses nothing. The
// zero value is the null sentinel: black, parentless, sz==0.
// sz is the subtree-size augmentation; it rides through every rotation
// and through the structural successor swap so CountGreater/KLargest/
// RankOf answer in O(D) exactly as on the Treap.
type rnode[T any, S constraints.Unsigned] struct {
	v    T
	pc   S
	l, r S
	sz   S
}

// direction of descent. reverse(d)==1-d, and child() dispatches on it, so
// each mirror-image pair of balancing cases is written once.
type dir byte

const (
	left  dir = 0
	right dir = 1
)

func (d dir) reverse() dir {
	return 1 - d
}

// RBTree is a red-black tree: root black, no red node has a red child,
// and every root-to-null path crosses the same number of black nodes, so
// the depth D is at most 2*log2(n+1).
// S is the handle/size type, as for Treap.
type RBTree[T cmp.Ordered, S constraints.Unsigned] struct {
	arena[rnode[T, S], S]
	root S
}

// NewRBTree with capacity hint.
func NewRBTree[T cmp.Ordered, S constraints.Unsigned](hint S) *RBTree[T, S] {
	return &RBTree[T, S]{arena: newArena[rnode[T, S]](hint)}
}

func msb[S constraints.Unsigned]() S {
	return ^(^S(0) >> 1)
}

func (u *RBTree[T, S]) parent(h S) S {
	return u.at(h).pc &^ msb[S]()
}

func (u *RBTree[T, S]) red(h S) bool {
	return u.at(h).pc&msb[S]() != 0
}

func (u *RBTree[T, S]) setParent(h, p S) {
	n := u.at(h)
	n.pc = n.pc&msb[S]() | p
}

func (u *RBTree[T, S]) setRed(h S, r bool) {
	n := u.at(h)
	if r {
		n.pc |= msb[S]()
	} else {
		n.pc &^= msb[S]()
	}
}

func (u *RBTree[T, S]) child(h S, d dir) *S {
	n := u.at(h)
	if d == left {
		return &n.l
	}
	return &n.r
}

// dirOf h within its parent p.
func (u *RBTree[T, S]) dirOf(p, h S) dir {
	if u.at(p).l == h {
		return left
	}
	return right
}

// rotate the subtree at h in direction d (d==left promotes h's right
// child), fixing parent pointers, the link above, and both subtree sizes,
// demoted node first. Returns the handle that now roots the subtree.
func (u *RBTree[T, S]) rotate(h S, d dir) S {
	c := *u.child(h, d.reverse())
	g := u.parent(h)
	gc := *u.child(c, d)
	*u.child(h, d.reverse()) = gc
	if gc != 0 {
		u.setParent(gc, h)
	}
	*u.child(c, d) = h
	u.setParent(h, c)
	u.setParent(c, g)
	if g == 0 {
		u.root = c
	} else {
		*u.child(g, u.dirOf(g, h)) = c
	}
	hn := u.at(h)
	hn.sz = u.at(hn.l).sz + u.at(hn.r).sz + 1
	cn := u.at(c)
	cn.sz = u.at(cn.l).sz + u.at(cn.r).sz + 1
	return c
}

// Insert [OrderedSet.Insert].
// Time: O(D)
func (u *RBTree[T, S]) Insert(v T) bool {
	var p S
	var d dir
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			p, d = cur, left
			cur = n.l
		} else if v > n.v {
			p, d = cur, right
			cur = n.r
		} else {
			return false
		}
	}
	h := u.alloc()
	*u.at(h) = rnode[T, S]{v: v, sz: 1}
	u.setParent(h, p)
	u.setRed(h, true)
	if p == 0 {
		u.root = h
	} else {
		*u.child(p, d) = h
	}
	for a := p; a != 0; a = u.parent(a) {
		u.at(a).sz++
	}
	u.insertFixup(h)
	return true
}

func (u *RBTree[T, S]) insertFixup(h S) {
	for {
		p := u.parent(h)
		if p == 0 {
			u.setRed(h, false)
			return
		}
		if !u.red(p) {
			return
		}
		g := u.parent(p)
		if g == 0 {
			u.setRed(p, false)
			return
		}
		d := u.dirOf(g, p)
		if un := *u.child(g, d.reverse()); u.red(un) {
			u.setRed(p, false)
			u.setRed(un, false)
			u.setRed(g, true)
			h = g
			continue
		}
		if *u.child(p, d.reverse()) == h {
			u.rotate(p, d)
			p = *u.child(g, d)
		}
		u.rotate(g, d.reverse())
		u.setRed(p, false)
		u.setRed(g, true)
		return
	}
}

func (u *RBTree[T, S]) find(v T) S {
	for cur := u.root; cur != 0; {
		n := u.at(cur)
		if v < n.v {
			cur = n.l
		} else if v > n.v {
			cur = n.r
		} else {
			return cur
		}
	}
	return 0
}

// swapWithSuccessor exchanges the tree positions of h and its in-order
// successor s==leftmost(h.r): colors, sizes, child links and parent links
// all travel with the position, only the stored values stay put in their
// slots. The successor being h's own right child is the one asymmetric
// case.
func (u *RBTree[T, S]) swapWithSuccessor(h, s S) {
	hn, sn := u.at(h), u.at(s)
	hp, sp := u.parent(h), u.parent(s)
	hred, sred := u.red(h), u.red(s)
	hl, hr := hn.l, hn.r
	sl, sr := sn.l, sn.r
	hn.sz, sn.sz = sn.sz, hn.sz
	if sp == h {
		sn.l, sn.r = hl, h
		hn.l, hn.r = sl, sr
		u.setParent(h, s)
	} else {
		sn.l, sn.r = hl, hr
		hn.l, hn.r = sl, sr
		u.setParent(h, sp)
		*u.child(sp, left) = h
	}
	u.setParent(s, hp)
	if hp == 0 {
		u.root = s
	} else {
		*u.child(hp, u.dirOf(hp, h)) = s
	}
	if hn.l != 0 {
		u.setParent(hn.l, h)
	}
	if hn.r != 0 {
		u.setParent(hn.r, h)
	}
	if sn.l != 0 {
		u.setParent(sn.l, s)
	}
	if sn.r != 0 {
		u.setParent(sn.r, s)
	}
	u.setRed(h, sred)
	u.setRed(s, hred)
}

// Remove [OrderedSet.Remove]. A two-child victim first swaps positions
// with its in-order successor; a red victim is then a leaf and unlinks, a
// black victim with a red child splices and recolors, and a black leaf
// leaves a deficient null slot that deleteFixup repairs. The handle goes
// back to the arena last.
// Time: O(D)
func (u *RBTree[T, S]) Remove(v T) bool {
	h := u.find(v)
	if h == 0 {
		return false
	}
	if n := u.at(h); n.l != 0 && n.r != 0 {
		s := n.r
		for u.at(s).l != 0 {
			s = u.at(s).l
		}
		u.swapWithSuccessor(h, s)
	}
	p := u.parent(h)
	for a := p; a != 0; a = u.parent(a) {
		u.at(a).sz--
	}
	n := u.at(h)
	if c := n.l | n.r; c != 0 {
		// black with a single red child: splice and blacken.
		u.setParent(c, p)
		u.setRed(c, false)
		if p == 0 {
			u.root = c
		} else {
			*u.child(p, u.dirOf(p, h)) = c
		}
	} else if p == 0 {
		u.root = 0
	} else {
		d := u.dirOf(p, h)
		*u.child(p, d) = 0
		if !u.red(h) {
			u.deleteFixup(p, d)
		}
	}
	u.release(h)
	return true
}

// deleteFixup repairs the missing black on the null slot at direction d
// under p. s is the sibling, c the close nephew, f the distant nephew.
func (u *RBTree[T, S]) deleteFixup(p S, d dir) {
	for {
		s := *u.child(p, d.reverse())
		if u.red(s) {
			// red sibling: rotate it above p and retry against the
			// new, black sibling.
			u.rotate(p, d)
			u.setRed(s, false)
			u.setRed(p, true)
			s = *u.child(p, d.reverse())
		}
		c, f := *u.child(s, d), *u.child(s, d.reverse())
		if u.red(f) {
			u.rotate(p, d)
			u.setRed(s, u.red(p))
			u.setRed(p, false)
			u.setRed(f, false)
			return
		}
		if u.red(c) {
			// close nephew red: rotate it to the distant position,
			// then resolve as above.
			u.rotate(s, d.reverse())
			u.setRed(s, true)
			u.setRed(c, false)
			s, f = c, s
			u.rotate(p, d)
			u.setRed(s, u.red(p))
			u.setRed(p, false)
			u.setRed(f, false)
			return
		}
		if u.red(p) {
			u.setRed(s, true)
			u.setRed(p, false)
			return
		}
		// everything black: the whole subtree at p is one black
		// short, move the deficiency up.
		u.setRed(s, true)
		pp := u.parent(p)
		if pp == 0 {
			return
		}
		d = u.dirOf(pp, p)
		p = pp
	}
}

// Has [OrderedSet.Has].
// Time: O(D); Space: O(1)
func (u *RBTree[T, S]) Has(v T) bool {
	return u.find(v) != 0
}

// Size [OrderedSet.Size].
// Time: O(1)
func (u *RBTree[T, S]) Size() uint {
	return uint(u.at(u.root).sz)
}

// CountGreater [OrderedSet.CountGreater]. Same descent as the Treap's,
// against the size augmentation.
// Time: O(D); Space: O(1)
func (u *RBTree[T, S]) CountGreater(v T) uint {
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
func (u *RBTree[T, S]) Minimum() (T, bool) {
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
func (u *RBTree[T, S]) Maximum() (T, bool) {
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
func (u *RBTree[T, S]) Predecessor(v T) (T, bool) {
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
func (u *RBTree[T, S]) Successor(v T) (T, bool) {
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
func (u *RBTree[T, S]) KLargest(k uint) (T, bool) {
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
func (u *RBTree[T, S]) RankOf(v T) uint {
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
func (u *RBTree[T, S]) InOrder(f func(v T) bool) {
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

// noRedRed reports that no red node at h or below has a red child.
func (u *RBTree[T, S]) noRedRed(h S) bool {
	if h == 0 {
		return true
	}
	n := u.at(h)
	if u.red(h) && (u.red(n.l) || u.red(n.r)) {
		return false
	}
	return u.noRedRed(n.l) && u.noRedRed(n.r)
}

// blackHeight of the subtree at h: the uniform count of black nodes on
// every path to a null descendant, or 0 on mismatch (a leafless null
// counts 1).
func (u *RBTree[T, S]) blackHeight(h S) uint {
	if h == 0 {
		return 1
	}
	n := u.at(h)
	lh := u.blackHeight(n.l)
	if lh == 0 || lh != u.blackHeight(n.r) {
		return 0
	}
	if !u.red(h) {
		lh++
	}
	return lh
}

// Validate [OrderedSet.Validate]: BST order, root black, no red-red,
// uniform black height, bidirectionally consistent parent links, subtree
// sizes, free-list/arena accounting.
func (u *RBTree[T, S]) Validate() bool {
	if u.red(u.root) || u.blackHeight(u.root) == 0 || !u.noRedRed(u.root) {
		return false
	}
	if u.root != 0 && u.parent(u.root) != 0 {
		return false
	}
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
		if n.l != 0 && (u.at(n.l).v >= n.v || u.parent(n.l) != h) {
			return 0, false
		}
		if n.r != 0 && (u.at(n.r).v <= n.v || u.parent(n.r) != h) {
			return 0, false
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
