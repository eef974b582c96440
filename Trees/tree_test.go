package Trees

import (
	"math/rand"
	"slices"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

const (
	tAddN        = 40000
	tAddValRange = 80000
)

func backends() map[string]func(hint uint32) OrderedSet[int] {
	return map[string]func(hint uint32) OrderedSet[int]{
		"treap": func(hint uint32) OrderedSet[int] { return NewTreapSeeded[int, uint32](hint, 0) },
		"rb":    func(hint uint32) OrderedSet[int] { return NewRBTree[int, uint32](hint) },
	}
}

func TestSet_InsertRemoveContains(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(1)
			for i := 1; i <= 100; i++ {
				if !set.Insert(i) {
					t.Errorf("failed to insert key %v", i)
				}
			}
			if set.Size() != 100 {
				t.Errorf("set size is %d, want %d", set.Size(), 100)
			}
			for i := 1; i <= 100; i++ {
				if !set.Has(i) {
					t.Errorf("set does not have key %v", i)
				}
			}
			for i := 101; i <= 200; i++ {
				if set.Has(i) {
					t.Errorf("set has non existent key %v", i)
				}
			}
			if !set.Validate() {
				t.Error("corrupt after inserts")
			}

			evens := make([]int, 0, 50)
			for i := 2; i <= 100; i += 2 {
				evens = append(evens, i)
			}
			rg.Shuffle(len(evens), func(i, j int) {
				evens[i], evens[j] = evens[j], evens[i]
			})
			for _, v := range evens {
				if !set.Remove(v) {
					t.Errorf("failed to delete key %v", v)
				}
			}
			if set.Size() != 50 {
				t.Errorf("set size is %d, want %d", set.Size(), 50)
			}
			for i := 1; i <= 100; i++ {
				if i%2 == 1 && !set.Has(i) {
					t.Errorf("set does not have key %v", i)
				}
				if i%2 == 0 && set.Has(i) {
					t.Errorf("set has deleted key %v", i)
				}
			}
			if !set.Validate() {
				t.Error("corrupt after deletes")
			}

			for _, v := range evens {
				if set.Remove(v) {
					t.Errorf("can delete a second time key %v", v)
				}
			}
			if set.Size() != 50 || !set.Validate() {
				t.Error("second delete pass changed state")
			}
		})
	}
}

func TestSet_Empty(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(0)
			if set.Size() != 0 {
				t.Errorf("empty set size is %d", set.Size())
			}
			if set.Has(0) || set.Remove(0) {
				t.Error("empty set has a key")
			}
			if set.CountGreater(0) != 0 {
				t.Error("empty set counts keys")
			}
			if _, has := set.Minimum(); has {
				t.Error("empty set has a minimum")
			}
			if _, has := set.KLargest(1); has {
				t.Error("empty set has a 1st element")
			}
			if !set.Validate() {
				t.Error("empty set corrupt")
			}
			set.Insert(7)
			if !set.Remove(7) || set.Size() != 0 || set.Has(7) || !set.Validate() {
				t.Error("single element round trip failed")
			}
		})
	}
}

// Ascending runs are the pathological BST insertion order that the
// balancing exists to defeat.
func TestSet_AscendingRun(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(1)
			for i := 0; i < 4000; i++ {
				if !set.Insert(i) {
					t.Errorf("failed to insert key %v", i)
				}
				if i%400 == 0 && !set.Validate() {
					t.Fatalf("corrupt at key %v", i)
				}
			}
			if uint(set.Size()) != 4000 || !set.Validate() {
				t.Error("corrupt after ascending run")
			}
			for i := 0; i < 4000; i++ {
				if !set.Has(i) {
					t.Errorf("set does not have key %v", i)
				}
			}
		})
	}
}

func TestSet_InsertIdempotent(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(8)
			for i := 0; i < 100; i++ {
				set.Insert(rg.Intn(64))
			}
			sz := set.Size()
			for i := 0; i < 64; i++ {
				if set.Has(i) && set.Insert(i) {
					t.Errorf("reinserted key %v", i)
				}
			}
			if set.Size() != sz || !set.Validate() {
				t.Error("idempotent insert changed state")
			}
		})
	}
}

func TestSet_CountGreater(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(tAddN)
			content := make(map[int]struct{})
			for i := 0; i < tAddN; i++ {
				v := rg.Intn(tAddValRange)
				set.Insert(v)
				content[v] = struct{}{}
			}
			var sorted []int
			set.InOrder(func(v int) bool {
				sorted = append(sorted, v)
				return true
			})
			if len(sorted) != len(content) || !slices.IsSorted(sorted) {
				t.Fatal("in-order traversal broken")
			}
			for i := 0; i < 2000; i++ {
				q := rg.Intn(tAddValRange+2000) - 1000
				j, _ := slices.BinarySearch(sorted, q+1)
				want := uint(len(sorted) - j)
				if got := set.CountGreater(q); got != want {
					t.Fatalf("CountGreater(%d) = %d, want %d", q, got, want)
				}
			}
			// present keys too
			for _, v := range sorted[:200] {
				j, _ := slices.BinarySearch(sorted, v+1)
				if got := set.CountGreater(v); got != uint(len(sorted)-j) {
					t.Fatalf("CountGreater(%d) wrong for present key", v)
				}
			}
		})
	}
}

func TestSet_OrderQueries(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(1)
			content := make([]int, tAddN/4)
			for i := range content {
				content[i] = i * 2
			}
			rg.Shuffle(len(content), func(i, j int) {
				content[i], content[j] = content[j], content[i]
			})
			for _, v := range content {
				set.Insert(v)
			}
			slices.Sort(content)
			if mn, _ := set.Minimum(); mn != content[0] {
				t.Errorf("wrong minimum %d", mn)
			}
			if mx, _ := set.Maximum(); mx != content[len(content)-1] {
				t.Errorf("wrong maximum %d", mx)
			}
			for i, v := range content {
				if got, has := set.KLargest(uint(i + 1)); !has || got != v {
					t.Fatalf("wrong rank k %d, want %d has %d", i+1, v, got)
				}
				if r := set.RankOf(v); r != uint(i+1) {
					t.Fatalf("wrong rank %d of %d", r, v)
				}
				if r := set.RankOf(v + 1); r != 0 {
					t.Fatalf("rank of absent key %d is %d", v+1, r)
				}
				if i > 0 {
					if p, has := set.Predecessor(v); !has || p != content[i-1] {
						t.Fatalf("wrong predecessor %d of %d", p, v)
					}
				} else if _, has := set.Predecessor(v); has {
					t.Fatal("minimum has a predecessor")
				}
				if i < len(content)-1 {
					if s, has := set.Successor(v); !has || s != content[i+1] {
						t.Fatalf("wrong successor %d of %d", s, v)
					}
				} else if _, has := set.Successor(v); has {
					t.Fatal("maximum has a successor")
				}
			}
		})
	}
}

func TestSet_Stress(t *testing.T) {
	for name, mk := range backends() {
		t.Run(name, func(t *testing.T) {
			set := mk(64)
			content := make(map[int]struct{})
			for round := 0; round < 60; round++ {
				for i := 0; i < 500; i++ {
					v := rg.Intn(600)
					if rg.Intn(2) == 0 {
						_, in := content[v]
						if set.Insert(v) == in {
							t.Fatalf("insert of %v disagrees with ground truth", v)
						}
						content[v] = struct{}{}
					} else {
						_, in := content[v]
						if set.Remove(v) != in {
							t.Fatalf("remove of %v disagrees with ground truth", v)
						}
						delete(content, v)
					}
				}
				if uint(len(content)) != set.Size() {
					t.Fatalf("set size is %d, want %d", set.Size(), len(content))
				}
				for v := range content {
					if !set.Has(v) {
						t.Fatalf("set does not have key %v", v)
					}
				}
				if !set.Validate() {
					t.Fatalf("corrupt at round %d", round)
				}
			}
		})
	}
}
