package HashSet

import (
	"math/bits"
	"unsafe"

	ReuseDist "github.com/darchr/reusedist"
)

const (
	fail byte = iota
	added
	exist
)

// New HashSet of type E.
// h is the neighborhood size parameter in hopscotch hashing, 16 is a good
// value. size is used to calculate the initial table size that should
// handle size elements without resizing.
func New[E comparable](h byte, size, seed uint) *HashSet[E] {
	bktLen := uint(1)<<bits.Len(size) + uint(h)
	return &HashSet[E]{bkt: make([]bucket[E], bktLen), usedBkt: ReuseDist.NewBitArray(bktLen), h: h, hashes: make([]uint, bktLen), Seed: ReuseDist.Hasher(seed)}
}

// HashSet is a single-owner hopscotch hash set. Every element lives
// within h buckets of its home bucket; hashes are cached so expansion
// never rehashes elements.
type HashSet[E comparable] struct {
	bkt     []bucket[E]
	usedBkt ReuseDist.BitArray
	hashes  []uint
	Seed    ReuseDist.Hasher
	sz      uint
	h       byte
}

func (u *HashSet[E]) hash(e *E) uint {
	return u.Seed.HashMem(unsafe.Pointer(e), unsafe.Sizeof(*e))
}

func (u *HashSet[E]) mod(hash uint) int {
	return int(hash) & (len(u.bkt) - int(u.h) - 1)
}

func (u *HashSet[E]) expand() {
	newSize := uint((len(u.bkt)-int(u.h))<<1) + uint(u.h)
	M := HashSet[E]{bkt: make([]bucket[E], newSize), h: u.h, usedBkt: ReuseDist.NewBitArray(newSize), hashes: make([]uint, newSize), Seed: u.Seed}
	for i := range u.bkt {
		if u.usedBkt.Get(i) {
			if M.tryPut(&u.bkt[i].element, u.hashes[i]) == fail {
				M.expand()
				M.tryPut(&u.bkt[i].element, u.hashes[i])
			}
		}
	}
	u.bkt = M.bkt
	u.usedBkt = M.usedBkt
	u.hashes = M.hashes
}

// Size of the set.
func (u *HashSet[E]) Size() uint {
	return u.sz
}

// Remove e from the set. Returns true if the removal is successful.
func (u *HashSet[E]) Remove(e E) bool {
	if i0 := u.mod(u.hash(&e)); u.bkt[i0].hashed() {
		prev := &u.bkt[i0].dHash
		for i1 := i0 + u.bkt[i0].deltaHash(); ; i1 = i1 + u.bkt[i1].deltaLink() {
			if u.usedBkt.Get(i1) && u.bkt[i1].element == e {
				u.usedBkt.Clr(i1)
				u.sz--
				if u.bkt[i1].linked() {
					*prev = offset(u.bkt[i1].deltaLink() + i1 - i0)
				} else {
					*prev = 0
				}
				u.bkt[i1].clrLink()
				return true
			}
			if !u.bkt[i1].linked() {
				break
			}
			i0 = i1
			prev = &u.bkt[i0].dLink
		}
	}
	return false
}

// Has e in the set. Returns true if e is present in the set.
func (u *HashSet[E]) Has(e E) bool {
	if i0 := u.mod(u.hash(&e)); u.bkt[i0].hashed() {
		for i1 := i0 + u.bkt[i0].deltaHash(); ; i1 = i1 + u.bkt[i1].deltaLink() {
			if u.usedBkt.Get(i1) && u.bkt[i1].element == e {
				return true
			}
			if !u.bkt[i1].linked() {
				break
			}
		}
	}
	return false
}

func (u *HashSet[E]) fillEmpty(iHash int, iFree int, e *E) {
	u.bkt[iFree].element = *e
	u.sz++
	if u.bkt[iHash].hashed() {
		i0 := iHash + u.bkt[iHash].deltaHash()
		for ; u.bkt[i0].linked(); i0 = i0 + u.bkt[i0].deltaLink() {
			//find the end of the chain
		}
		u.bkt[i0].useDeltaLink(iFree - i0)
	} else {
		u.bkt[iHash].useDeltaHash(iFree - iHash)
	}
}

func (u *HashSet[E]) tryPut(e *E, hash uint) byte {
	iHash := u.mod(hash)
	if u.bkt[iHash].hashed() {
		for i0 := iHash + u.bkt[iHash].deltaHash(); ; i0 = i0 + u.bkt[i0].deltaLink() {
			if u.usedBkt.Get(i0) && u.bkt[i0].element == *e {
				return exist
			}
			if !u.bkt[i0].linked() {
				break
			}
		}
	}
	for iFree := iHash; iFree < len(u.bkt); iFree++ {
		if !u.usedBkt.Get(iFree) {
			if iFree-iHash < int(u.h) {
				u.usedBkt.Set(iFree)
				u.fillEmpty(iHash, iFree, e)
				u.hashes[iFree] = hash
				return added
			}
		search:
			for i := iFree - int(u.h) + 1; i < iFree; i++ {
				if i0 := i; u.bkt[i0].hashed() {
					prev := &u.bkt[i0].dHash
					for i1 := i0 + u.bkt[i0].deltaHash(); ; i1 = i1 + u.bkt[i1].deltaLink() {
						if i1 < iFree {
							*prev = offset(iFree - i0)

							u.bkt[iFree].element = u.bkt[i1].element
							u.hashes[iFree] = u.hashes[i1]
							u.usedBkt.Set(iFree)

							if u.bkt[i1].linked() {
								u.bkt[iFree].useDeltaLink(u.bkt[i1].deltaLink() + i1 - iFree)
							} else {
								u.bkt[iFree].clrLink()
							}
							u.bkt[i1].clrLink()

							if i1-iHash < int(u.h) {
								u.fillEmpty(iHash, i1, e)
								u.hashes[i1] = hash
								return added
							}
							u.usedBkt.Clr(i1)
							iFree = i1
							continue search
						}
						if !u.bkt[i1].linked() {
							break
						}
						i0 = i1
						prev = &u.bkt[i0].dLink
					}
				}
			}
			return fail
		}
	}
	return fail
}

// Put e into the set. Returns true if e wasn't already present.
func (u *HashSet[E]) Put(e E) bool {
	var t byte
	for hash := u.hash(&e); ; {
		if t = u.tryPut(&e, hash); t == fail {
			u.expand()
		} else {
			break
		}
	}
	return t == added
}

// Take an arbitrary element from the set. Returns the zero value if the
// set is empty. Doesn't guarantee which element it will return.
// Faster than iterating with Range.
func (u *HashSet[E]) Take() (e E) {
	if i := u.usedBkt.First(); i > -1 && i < len(u.bkt) {
		e = u.bkt[i].element
	}
	return
}

// Range over the elements and call f on each until f returns false.
// Modification during iteration is not allowed.
func (u *HashSet[E]) Range(f func(E) bool) {
	for i, b := range u.bkt {
		if u.usedBkt.Get(i) {
			if !f(b.element) {
				return
			}
		}
	}
}
