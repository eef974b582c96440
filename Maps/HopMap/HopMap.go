package HopMap

import (
	"math/bits"
	"unsafe"

	"github.com/cespare/xxhash"
	"golang.org/x/exp/constraints"
)

// HopMap is a single-owner hopscotch hash map over integer keys. Every
// element stays within h buckets of its home, so Get touches one cache
// neighborhood. Not safe for concurrent mutation.
type HopMap[K constraints.Integer, V any] struct {
	bkt []Element[K, V]
	h   byte
	sz  uint
}

// New HopMap holding about dl elements before the first expansion.
// h is the neighborhood size, 16 is a good value.
func New[K constraints.Integer, V any](dl int, h byte) *HopMap[K, V] {
	if dl < 2 {
		dl = 2
	}
	dl = 1 << bits.Len(uint(dl-1))
	u := &HopMap[K, V]{bkt: make([]Element[K, V], dl+int(h)), h: h}
	for i := range u.bkt {
		u.bkt[i].init()
	}
	return u
}

func (u *HopMap[K, V]) hash(key K) int {
	return int(xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(&key)), unsafe.Sizeof(key)))) & (len(u.bkt) - int(u.h) - 1)
}

// Size of the map.
func (u *HopMap[K, V]) Size() uint {
	return u.sz
}

// Get the value stored for key.
func (u *HopMap[K, V]) Get(key K) (V, bool) {
	if i0 := u.hash(key); u.bkt[i0].hashed() {
		for i1 := i0 + int(u.bkt[i0].hashOS); ; i1 = i1 + int(u.bkt[i1].linkOS) {
			if u.bkt[i1].used && u.bkt[i1].key == key {
				return u.bkt[i1].val, true
			}
			if !u.bkt[i1].linked() {
				break
			}
		}
	}
	return *new(V), false
}

// Remove the element stored for key. Returns true if it was present.
func (u *HopMap[K, V]) Remove(key K) bool {
	if i0 := u.hash(key); u.bkt[i0].hashed() {
		prev, base := &u.bkt[i0].hashOS, i0
		for i1 := i0 + int(u.bkt[i0].hashOS); ; i1 = i1 + int(u.bkt[i1].linkOS) {
			if u.bkt[i1].used && u.bkt[i1].key == key {
				if u.bkt[i1].linked() {
					*prev = int16(i1 + int(u.bkt[i1].linkOS) - base)
				} else {
					*prev = NAN16
				}
				u.bkt[i1].used = false
				u.bkt[i1].clrLink()
				u.sz--
				return true
			}
			if !u.bkt[i1].linked() {
				break
			}
			base = i1
			prev = &u.bkt[i1].linkOS
		}
	}
	return false
}

func (u *HopMap[K, V]) fillEmpty(iHash, iFree int, k *K, v *V) {
	u.bkt[iFree].key, u.bkt[iFree].val = *k, *v
	u.bkt[iFree].used = true
	if u.bkt[iHash].hashed() {
		i0 := iHash + int(u.bkt[iHash].hashOS)
		for ; u.bkt[i0].linked(); i0 = i0 + int(u.bkt[i0].linkOS) {
			//find the end of the chain
		}
		u.bkt[i0].linkOS = int16(iFree - i0)
	} else {
		u.bkt[iHash].hashOS = int16(iFree - iHash)
	}
	u.sz++
}

// move tries to displace an element in the h-window before iFree into
// iFree, freeing a slot closer to the home bucket. Returns the freed
// index, or iFree when no displacement is possible.
func (u *HopMap[K, V]) move(iFree int) int {
	lo := iFree - int(u.h) + 1
	if lo < 0 {
		lo = 0
	}
	for i := lo; i < iFree; i++ {
		if u.bkt[i].hashed() {
			prev, base := &u.bkt[i].hashOS, i
			for i1 := i + int(u.bkt[i].hashOS); ; i1 = i1 + int(u.bkt[i1].linkOS) {
				if i1 < iFree {
					*prev = int16(iFree - base)

					u.bkt[iFree].key, u.bkt[iFree].val = u.bkt[i1].key, u.bkt[i1].val
					u.bkt[iFree].used = true
					if u.bkt[i1].linked() {
						u.bkt[iFree].linkOS = int16(int(u.bkt[i1].linkOS) + i1 - iFree)
					} else {
						u.bkt[iFree].clrLink()
					}
					u.bkt[i1].used = false
					u.bkt[i1].clrLink()
					return i1
				}
				if !u.bkt[i1].linked() {
					break
				}
				base = i1
				prev = &u.bkt[i1].linkOS
			}
		}
	}
	return iFree
}

func (u *HopMap[K, V]) expand() {
	M := HopMap[K, V]{bkt: make([]Element[K, V], (len(u.bkt)-int(u.h))*2+int(u.h)), h: u.h}
	for i := range M.bkt {
		M.bkt[i].init()
	}
	for i := range u.bkt {
		if u.bkt[i].used {
			M.Put(u.bkt[i].key, u.bkt[i].val)
		}
	}
	u.bkt = M.bkt
}

// Put val for key, replacing any existing value.
func (u *HopMap[K, V]) Put(key K, val V) {
	if i0 := u.hash(key); u.bkt[i0].hashed() {
		for i1 := i0 + int(u.bkt[i0].hashOS); ; i1 = i1 + int(u.bkt[i1].linkOS) {
			if u.bkt[i1].used && u.bkt[i1].key == key {
				u.bkt[i1].val = val
				return
			}
			if !u.bkt[i1].linked() {
				break
			}
		}
	}
	for {
		iHash := u.hash(key)
		for iFree := iHash; iFree < len(u.bkt); iFree++ {
			if !u.bkt[iFree].used {
				for iFree-iHash >= int(u.h) {
					if j := u.move(iFree); j == iFree {
						iFree = -1
						break
					} else {
						iFree = j
					}
				}
				if iFree >= 0 {
					u.fillEmpty(iHash, iFree, &key, &val)
					return
				}
				break
			}
		}
		u.expand()
	}
}

// Range over the elements and call f on each until f returns false.
// Modification during iteration is not allowed.
func (u *HopMap[K, V]) Range(f func(K, V) bool) {
	for i := range u.bkt {
		if u.bkt[i].used {
			if !f(u.bkt[i].key, u.bkt[i].val) {
				return
			}
		}
	}
}
