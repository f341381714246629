package HashMap

import (
	"math"
	"math/bits"
	"slices"

	"github.com/g-m-twostay/go-hashmap/Maps"
	"go.uber.org/zap"
)

// spread folds the upper half of h into the lower half.
func spread(h uint32) uint32 {
	return h ^ h>>16
}

// indexFor is h mod capacity; capacity must be a power of two.
func indexFor(h uint32, capacity int) int {
	return int(h & uint32(capacity-1))
}

// tableSizeFor returns the smallest power of two not less than c, within [1, Maps.MaximumCapacity].
func tableSizeFor(c int) int {
	if c <= 1 {
		return 1
	}
	if c >= Maps.MaximumCapacity {
		return Maps.MaximumCapacity
	}
	return 1 << bits.Len(uint(c-1))
}

// nextCapacity is the table length after growing one of length oldCap, false if it's already at the maximum. An
// unallocated table takes the length pre-set in threshold, or the default.
func nextCapacity(oldCap, threshold int) (int, bool) {
	switch {
	case oldCap >= Maps.MaximumCapacity:
		return oldCap, false
	case oldCap > 0:
		return oldCap << 1, true
	case threshold > 0:
		return threshold, true
	}
	return Maps.DefaultInitialCapacity, true
}

// thresholdFor is capacity*lf, unbounded once capacity or the product reaches Maps.MaximumCapacity.
func thresholdFor(capacity int, lf float32) int {
	if ft := float64(capacity) * float64(lf); capacity < Maps.MaximumCapacity && ft < Maps.MaximumCapacity {
		return int(ft)
	}
	return math.MaxInt
}

func sortEntries[K, V any](u *HashMap[K, V], s []*Entry[K, V]) {
	slices.SortFunc(s, u.order)
}

// resize allocates the initial table or doubles it. Each old bucket i is split into buckets i and i+oldCap by the
// hash bit oldCap, keeping the relative order of the entries in both halves.
func (u *HashMap[K, V]) resize() {
	oldCap := len(u.table)
	newCap, ok := nextCapacity(oldCap, u.threshold)
	if !ok {
		u.threshold = math.MaxInt
		return
	}
	u.threshold = thresholdFor(newCap, u.loadFactor)
	oldTab := u.table
	u.table = make([]bucket[K, V], newCap)
	u.modCount++
	for i := range oldTab {
		switch b := &oldTab[i]; b.kind {
		case chainBin:
			if b.head.next == nil {
				u.table[indexFor(b.head.hash, newCap)] = *b
				continue
			}
			var loHead, loTail, hiHead, hiTail *Entry[K, V]
			for e := b.head; e != nil; {
				next := e.next
				e.next = nil
				if e.hash&uint32(oldCap) == 0 {
					if loTail == nil {
						loHead = e
					} else {
						loTail.next = e
					}
					loTail = e
				} else {
					if hiTail == nil {
						hiHead = e
					} else {
						hiTail.next = e
					}
					hiTail = e
				}
				e = next
			}
			u.table[i].setChain(loHead)
			u.table[i+oldCap].setChain(hiHead)
		case treeBin:
			u.splitTree(b.head, i, oldCap)
		}
	}
	u.debug("resize", zap.Int("from", oldCap), zap.Int("to", newCap), zap.Int("threshold", u.threshold))
}

// splitTree distributes the tree rooted at root, formerly at bucket i, the same way resize splits chains. Each half
// becomes a chain if it's small enough and a freshly built tree otherwise.
func (u *HashMap[K, V]) splitTree(root *Entry[K, V], i, oldCap int) {
	all := appendInOrder(make([]*Entry[K, V], 0, root.sz), root)
	lo, hi := make([]*Entry[K, V], 0, len(all)), make([]*Entry[K, V], 0, len(all))
	for _, e := range all {
		if e.hash&uint32(oldCap) == 0 {
			lo = append(lo, e)
		} else {
			hi = append(hi, e)
		}
	}
	u.placeSplit(i, lo)
	u.placeSplit(i+oldCap, hi)
	u.debug("split tree bucket", zap.Int("bucket", i), zap.Int("low", len(lo)), zap.Int("high", len(hi)))
}

func (u *HashMap[K, V]) placeSplit(i int, s []*Entry[K, V]) {
	if len(s) <= u.untreeifyAt {
		u.table[i].setChain(chainOf(s))
	} else {
		u.table[i].setTree(buildTree(s))
	}
}
