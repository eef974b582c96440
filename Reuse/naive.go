package Reuse

import (
	"github.com/darchr/reusedist/Sets/HashSet"
)

// Naive computes the same histogram as Compute by the defining O(n²)
// rescan: for every access, collect the distinct symbols strictly
// between it and the previous access to the same symbol. It exists as
// the reference the pipeline is checked against.
func Naive(trace []uint32) Histogram {
	hist := make(Histogram)
	last := make(map[uint32]int, 64)
	for t, s := range trace {
		if lt, in := last[s]; in {
			between := HashSet.New[uint32](16, 16, uint(t))
			for _, x := range trace[lt+1 : t] {
				between.Put(x)
			}
			hist[int(between.Size())]++
		} else {
			hist[Cold]++
		}
		last[s] = t
	}
	return hist
}
