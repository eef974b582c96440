package HashSet

import "math"

// bucket of the table. dHash and dLink are relative offsets biased by
// MinInt8 so the zero value means absent; dHash points from a home bucket
// to the first element hashed there, dLink chains elements sharing a
// home.
type bucket[E comparable] struct {
	element      E
	dHash, dLink byte
}

func (e *bucket[E]) hashed() bool {
	return e.dHash != 0
}

func (e *bucket[E]) linked() bool {
	return e.dLink != 0
}

func (e *bucket[E]) clrLink() {
	e.dLink = 0
}

func (e *bucket[E]) deltaHash() int {
	return int(e.dHash) + math.MinInt8
}

func (e *bucket[E]) deltaLink() int {
	return int(e.dLink) + math.MinInt8
}

func (e *bucket[E]) useDeltaHash(d int) {
	e.dHash = offset(d)
}

func (e *bucket[E]) useDeltaLink(d int) {
	e.dLink = offset(d)
}

func offset(x int) byte {
	return byte(x - math.MinInt8)
}
