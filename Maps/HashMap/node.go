package HashMap

import "fmt"

// Entry is one key value pair of a HashMap. The same Entry is relinked, never copied, when its bucket changes between
// chain and tree form.
type Entry[K, V any] struct {
	key   K
	value V
	seq   uint64 //insertion sequence; last resort tie-break in trees.
	hash  uint32 //spread hash of key.
	sz    uint32 //size of the subtree rooted here while in a tree, 0 in a chain.
	next  *Entry[K, V]
	l, r  *Entry[K, V]
	//ordering links, maintained only by Sequence.
	before, after *Entry[K, V]
}

func (e *Entry[K, V]) Key() K {
	return e.key
}

func (e *Entry[K, V]) Value() V {
	return e.value
}

// SetValue replaces the value in place and returns the old one. It isn't a structural modification.
func (e *Entry[K, V]) SetValue(v V) V {
	old := e.value
	e.value = v
	return old
}

func (e *Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.key, e.value)
}

type bucketKind byte

const (
	emptyBin bucketKind = iota
	chainBin
	treeBin
)

func (k bucketKind) String() string {
	switch k {
	case chainBin:
		return "chain"
	case treeBin:
		return "tree"
	default:
		return "empty"
	}
}

// bucket is a table slot. head is the first entry of the chain or the root of the tree depending on kind.
type bucket[K, V any] struct {
	head *Entry[K, V]
	kind bucketKind
}

func (b *bucket[K, V]) setChain(head *Entry[K, V]) {
	if b.head = head; head == nil {
		b.kind = emptyBin
	} else {
		b.kind = chainBin
	}
}

func (b *bucket[K, V]) setTree(root *Entry[K, V]) {
	if b.head = root; root == nil {
		b.kind = emptyBin
	} else {
		b.kind = treeBin
	}
}

// count of live entries in the bucket. O(1) for trees, O(n) for chains.
func (b *bucket[K, V]) count() int {
	switch b.kind {
	case treeBin:
		return int(b.head.sz)
	case chainBin:
		n := 0
		for e := b.head; e != nil; e = e.next {
			n++
		}
		return n
	}
	return 0
}

// walk calls f on all entries of the bucket, stopping early when f returns false. Returns false if it stopped early.
func (b *bucket[K, V]) walk(f func(*Entry[K, V]) bool) bool {
	switch b.kind {
	case chainBin:
		for e := b.head; e != nil; e = e.next {
			if !f(e) {
				return false
			}
		}
	case treeBin:
		return walkTree(b.head, f)
	}
	return true
}

// chainOf links s into a chain in order and returns its head.
func chainOf[K, V any](s []*Entry[K, V]) *Entry[K, V] {
	for i, e := range s {
		e.l, e.r, e.sz = nil, nil, 0
		if i+1 < len(s) {
			e.next = s[i+1]
		} else {
			e.next = nil
		}
	}
	if len(s) == 0 {
		return nil
	}
	return s[0]
}
