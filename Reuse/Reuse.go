// Package Reuse computes reuse-distance histograms of access traces in a
// single streaming pass over an order-statistic balanced tree, instead of
// the quadratic rescan of the naive definition.
package Reuse

import (
	"github.com/darchr/reusedist/Maps/HopMap"
	"github.com/darchr/reusedist/Trees"
)

// Histogram counts accesses by reuse distance: the number of distinct
// symbols seen strictly between an access and the previous access to the
// same symbol. First sightings count under Cold.
type Histogram map[int]int

// Cold is the histogram key for first sightings.
const Cold = -1

// Total accesses recorded.
func (h Histogram) Total() int {
	t := 0
	for _, n := range h {
		t += n
	}
	return t
}

// pack a (time, symbol) pair into one word. Both halves are 32 bits, so
// integer order on the packed word is exactly lexicographic order on the
// pair.
func pack(t, s uint32) uint64 {
	return uint64(t)<<32 | uint64(s)
}

// Backend selects the ordered-set implementation driving the pipeline.
type Backend byte

const (
	TreapBackend Backend = iota
	RBBackend
)

type config struct {
	backend  Backend
	hint     uint32
	seed     int64
	seeded   bool
	progress *Progress
}

type Option func(*config)

// WithBackend selects the tree backend. The default is TreapBackend.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithCapacity hints the number of distinct symbols expected live at
// once, presizing the tree arena and the last-seen table.
func WithCapacity(hint uint32) Option {
	return func(c *config) {
		c.hint = hint
	}
}

// WithSeed pins the treap priority PRNG for deterministic runs. No
// effect on the red-black backend.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed, c.seeded = seed, true
	}
}

// WithProgress attaches a progress reporter.
func WithProgress(p *Progress) Option {
	return func(c *config) {
		c.progress = p
	}
}

func (c *config) newSet() Trees.OrderedSet[uint64] {
	if c.backend == RBBackend {
		return Trees.NewRBTree[uint64, uint32](c.hint)
	}
	if c.seeded {
		return Trees.NewTreapSeeded[uint64, uint32](c.hint, c.seed)
	}
	return Trees.NewTreap[uint64, uint32](c.hint)
}

// Compute the reuse-distance histogram of trace. The set holds one entry
// per currently-live symbol keyed by its last-use time, so the distance
// of an access is the count of stored keys strictly greater than the
// symbol's previous (time, symbol) entry. O(n log m) for m live symbols.
// Traces are limited to 2^32-1 accesses over 32-bit symbol ids.
func Compute(trace []uint32, opts ...Option) Histogram {
	i := 0
	return ComputeFunc(func() (uint32, bool) {
		if i == len(trace) {
			return 0, false
		}
		s := trace[i]
		i++
		return s, true
	}, opts...)
}

// ComputeFunc is Compute over a pull iterator: next returns the following
// symbol, or false when the trace is exhausted.
func ComputeFunc(next func() (uint32, bool), opts ...Option) Histogram {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	set := cfg.newSet()
	last := HopMap.New[uint32, uint32](int(cfg.hint), 16)
	hist := make(Histogram)
	t := uint32(0)
	for ; ; t++ {
		s, ok := next()
		if !ok {
			break
		}
		d := Cold
		if lt, in := last.Get(s); in {
			key := pack(lt, s)
			d = int(set.CountGreater(key))
			set.Remove(key)
		}
		hist[d]++
		set.Insert(pack(t, s))
		last.Put(s, t)
		cfg.progress.step(t, set.Size())
	}
	cfg.progress.done(t, set.Size())
	return hist
}
