package Trees

import "cmp"

// isAscending reports that an in-order traversal yields strictly
// ascending values, which is the BST property plus no duplicates.
func isAscending[T cmp.Ordered](s OrderedSet[T]) bool {
	var prev T
	first, ok := true, true
	s.InOrder(func(v T) bool {
		if !first && v <= prev {
			ok = false
			return false
		}
		prev, first = v, false
		return true
	})
	return ok
}
