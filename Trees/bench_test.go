package Trees

import (
	"testing"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
)

// Compares both backends with https://github.com/emirpasic/gods,
// https://github.com/petar/GoLLRB and https://github.com/google/btree on
// the insert/query/delete cycle the reuse pipeline drives. None of the
// three maintains subtree sizes, so only our backends are benchmarked on
// CountGreater.

const bN = 200000

func benchKeys() []int {
	keys := make([]int, bN)
	for i := range keys {
		keys[i] = rg.Int()
	}
	return keys
}

func BenchmarkTreapCycle(b *testing.B) {
	keys := benchKeys()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := NewTreap[int, uint32](bN)
		for _, v := range keys {
			tree.Insert(v)
		}
		for _, v := range keys {
			tree.Has(v)
		}
		for _, v := range keys {
			tree.Remove(v)
		}
	}
}

func BenchmarkRBCycle(b *testing.B) {
	keys := benchKeys()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := NewRBTree[int, uint32](bN)
		for _, v := range keys {
			tree.Insert(v)
		}
		for _, v := range keys {
			tree.Has(v)
		}
		for _, v := range keys {
			tree.Remove(v)
		}
	}
}

func BenchmarkGodsRBCycle(b *testing.B) {
	keys := benchKeys()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := rbt.NewWithIntComparator()
		for _, v := range keys {
			tree.Put(v, nil)
		}
		for _, v := range keys {
			tree.Get(v)
		}
		for _, v := range keys {
			tree.Remove(v)
		}
	}
}

func BenchmarkLLRBCycle(b *testing.B) {
	keys := benchKeys()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := llrb.New()
		for _, v := range keys {
			tree.ReplaceOrInsert(llrb.Int(v))
		}
		for _, v := range keys {
			tree.Has(llrb.Int(v))
		}
		for _, v := range keys {
			tree.Delete(llrb.Int(v))
		}
	}
}

func BenchmarkBTreeCycle(b *testing.B) {
	keys := benchKeys()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := btree.NewOrderedG[int](32)
		for _, v := range keys {
			tree.ReplaceOrInsert(v)
		}
		for _, v := range keys {
			tree.Has(v)
		}
		for _, v := range keys {
			tree.Delete(v)
		}
	}
}

var sideEff uint

func BenchmarkTreapCountGreater(b *testing.B) {
	keys := benchKeys()
	tree := NewTreap[int, uint32](bN)
	for _, v := range keys {
		tree.Insert(v)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range keys {
			sideEff = tree.CountGreater(v)
		}
	}
}

func BenchmarkRBCountGreater(b *testing.B) {
	keys := benchKeys()
	tree := NewRBTree[int, uint32](bN)
	for _, v := range keys {
		tree.Insert(v)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range keys {
			sideEff = tree.CountGreater(v)
		}
	}
}
