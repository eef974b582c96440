package HopMap

import (
	"math/rand"
	"testing"
)

var rg = *rand.New(rand.NewSource(0))

func TestHopMap_PutGet(t *testing.T) {
	m := New[uint32, uint32](2, 16)
	content := make(map[uint32]uint32)
	for i := 0; i < 30000; i++ {
		k, v := rg.Uint32()%50000, rg.Uint32()
		m.Put(k, v)
		content[k] = v
	}
	if m.Size() != uint(len(content)) {
		t.Errorf("map size is %d, want %d", m.Size(), len(content))
	}
	for k, v := range content {
		if got, in := m.Get(k); !in || got != v {
			t.Errorf("map does not have key %v -> %v", k, v)
		}
	}
	for i := 0; i < 1000; i++ {
		k := 50000 + rg.Uint32()%50000
		if _, in := m.Get(k); in {
			t.Errorf("map has non existent key %v", k)
		}
	}
}

func TestHopMap_Remove(t *testing.T) {
	m := New[int, int](8, 16)
	content := make(map[int]int)
	for i := 0; i < 20000; i++ {
		k := rg.Intn(30000)
		m.Put(k, i)
		content[k] = i
	}
	removed := 0
	for k := range content {
		if !m.Remove(k) {
			t.Errorf("failed to remove key %v", k)
		}
		if m.Remove(k) {
			t.Errorf("can remove a second time key %v", k)
		}
		delete(content, k)
		removed++
		if removed == 10000 {
			break
		}
	}
	if m.Size() != uint(len(content)) {
		t.Errorf("map size is %d, want %d", m.Size(), len(content))
	}
	for k, v := range content {
		if got, in := m.Get(k); !in || got != v {
			t.Errorf("map does not have key %v", k)
		}
	}
	// removed slots must be reusable
	for k := 0; k < 30000; k++ {
		m.Put(k, k)
	}
	for k := 0; k < 30000; k++ {
		if got, in := m.Get(k); !in || got != k {
			t.Errorf("map does not have key %v after refill", k)
		}
	}
}

func TestHopMap_Range(t *testing.T) {
	m := New[uint16, int](64, 8)
	for i := uint16(0); i < 1000; i++ {
		m.Put(i, int(i)*3)
	}
	seen := make(map[uint16]struct{})
	m.Range(func(k uint16, v int) bool {
		if v != int(k)*3 {
			t.Errorf("wrong value %v for key %v", v, k)
		}
		seen[k] = struct{}{}
		return true
	})
	if len(seen) != 1000 {
		t.Errorf("ranged over %d keys, want %d", len(seen), 1000)
	}
	n := 0
	m.Range(func(uint16, int) bool {
		n++
		return false
	})
	if n != 1 {
		t.Error("range did not stop")
	}
}
