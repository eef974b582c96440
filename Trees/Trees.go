package Trees

import "cmp"

// OrderedSet represents A set of distinct totally-ordered values backed by A
// balanced search tree. Receivers that have A bool as A second return value
// indicate whether the first return value is defined. For example, calling
// Minimum on an empty set returns (x T, false); the value of x is undefined
// in that case.
// All implementations here store nodes in an arena indexed by integer
// handles, so A set holds no interior pointers and steady-state
// insert/remove cycles allocate nothing.
// A set is single-owner: it must not be shared mutably across goroutines.
// Two independent sets in two goroutines are fine.
type OrderedSet[T cmp.Ordered] interface {
	//Insert v into the set. Returns true if v wasn't already present.
	Insert(v T) bool
	//Remove v from the set. Returns true if v was present.
	Remove(v T) bool
	//Has reports whether v is present.
	Has(v T) bool
	//Size of the set.
	Size() uint
	//CountGreater returns the number of stored values strictly greater
	//than v. v need not be present.
	CountGreater(v T) uint
	//Minimum element of the set.
	Minimum() (T, bool)
	//Maximum element of the set.
	Maximum() (T, bool)
	//Predecessor returns the greatest element less than v.
	Predecessor(v T) (T, bool)
	//Successor returns the smallest element greater than v.
	Successor(v T) (T, bool)
	//KLargest finds the k-th element in ascending order.
	//1<=k<=Size().
	KLargest(k uint) (T, bool)
	//RankOf v in the set according to in-order.
	//1<=r<=Size() when v is present, 0 otherwise.
	RankOf(v T) uint
	//InOrder calls f on every element in ascending order until f
	//returns false. The set must not be modified during the iteration.
	InOrder(f func(v T) bool)
	//Validate checks every structural invariant of the implementation.
	//A false return indicates corruption; the set doesn't self-repair.
	Validate() bool
}
