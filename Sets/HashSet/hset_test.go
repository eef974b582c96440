package HashSet

import (
	"math/rand"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

func TestHashSet_All(t *testing.T) {
	S := New[int](16, 7, 0)
	for i := 0; i < 10; i++ {
		if !S.Put(i) {
			t.Error("wrong put 1")
		}
		if S.Put(i) {
			t.Error("wrong put 2")
		}
	}
	for i := 0; i < 10; i++ {
		if !S.Has(i) {
			t.Error("wrong has 1")
		}
	}
	for i := 0; i < 5; i++ {
		if !S.Remove(i) {
			t.Error("wrong remove 1")
		}
		if S.Remove(i) {
			t.Error("wrong remove 2")
		}
	}
	for i := 0; i < 5; i++ {
		if S.Has(i) {
			t.Error("wrong has 2")
		}
	}
	if S.Size() != 5 {
		t.Errorf("set size is %d, want %d", S.Size(), 5)
	}
}

func TestHashSet_Grow(t *testing.T) {
	S := New[uint64](16, 1, 42)
	content := make(map[uint64]struct{})
	for i := 0; i < 50000; i++ {
		v := rg.Uint64() % 80000
		_, in := content[v]
		if S.Put(v) == in {
			t.Fatalf("put of %v disagrees with ground truth", v)
		}
		content[v] = struct{}{}
	}
	if S.Size() != uint(len(content)) {
		t.Errorf("set size is %d, want %d", S.Size(), len(content))
	}
	n := 0
	S.Range(func(v uint64) bool {
		if _, in := content[v]; !in {
			t.Errorf("set has non existent key %v", v)
		}
		n++
		return true
	})
	if n != len(content) {
		t.Errorf("ranged over %d keys, want %d", n, len(content))
	}
}

func TestHashSet_RemoveReuse(t *testing.T) {
	S := New[int](16, 1024, 7)
	for i := 0; i < 1024; i++ {
		S.Put(i)
	}
	for i := 0; i < 1024; i += 2 {
		if !S.Remove(i) {
			t.Errorf("failed to remove key %v", i)
		}
	}
	for i := 1024; i < 1536; i++ {
		S.Put(i)
	}
	for i := 0; i < 1536; i++ {
		want := i >= 1024 || i%2 == 1
		if S.Has(i) != want {
			t.Errorf("membership of %v is %v", i, !want)
		}
	}
}
