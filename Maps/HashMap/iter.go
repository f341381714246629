package HashMap

import (
	"iter"

	"github.com/g-m-twostay/go-hashmap/Maps"
	"github.com/pkg/errors"
)

// Iterator walks the entries bucket by bucket. It fails fast: once the map is structurally modified by anything but
// Iterator.Remove, Next returns false and Err reports Maps.ErrConcurrentChange.
//
//	for it := m.Iterator(); it.Next(); {
//		use(it.Key(), it.Value())
//	}
type Iterator[K, V any] struct {
	m        *HashMap[K, V]
	expected uint64
	idx      int          //next bucket to visit.
	next     *Entry[K, V] //next entry of the current chain.
	pending  []*Entry[K, V]
	pos      int //next entry in pending, the snapshot of the current tree.
	cur      *Entry[K, V]
	err      error
}

func (u *HashMap[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: u, expected: u.modCount}
}

func (it *Iterator[K, V]) advance() *Entry[K, V] {
	if it.pos < len(it.pending) {
		e := it.pending[it.pos]
		it.pos++
		return e
	}
	if e := it.next; e != nil {
		it.next = e.next
		return e
	}
	for t := it.m.table; it.idx < len(t); {
		b := &t[it.idx]
		it.idx++
		switch b.kind {
		case chainBin:
			it.next = b.head.next
			return b.head
		case treeBin:
			//trees rotate on removal, so iterate a snapshot.
			it.pending, it.pos = appendInOrder(it.pending[:0], b.head), 1
			return it.pending[0]
		}
	}
	return nil
}

// Next moves to the next entry and reports whether there is one.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.m.modCount != it.expected {
		it.err = errors.Wrap(Maps.ErrConcurrentChange, "map modified during iteration")
		it.cur = nil
		return false
	}
	it.cur = it.advance()
	return it.cur != nil
}

// Err is nil unless the iteration stopped because of a concurrent change.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// Entry is the current entry, nil before the first Next, after the end, and after Remove.
func (it *Iterator[K, V]) Entry() *Entry[K, V] {
	return it.cur
}

func (it *Iterator[K, V]) Key() K {
	return it.cur.key
}

func (it *Iterator[K, V]) Value() V {
	return it.cur.value
}

// Remove deletes the current entry from the map. It returns false if there is no current entry or the map was
// modified behind the iterator.
func (it *Iterator[K, V]) Remove() bool {
	if it.cur == nil || it.err != nil {
		return false
	}
	if it.m.modCount != it.expected {
		it.err = errors.Wrap(Maps.ErrConcurrentChange, "map modified during iteration")
		return false
	}
	var zero V
	it.m.removeEntry(it.cur.key, false, zero)
	it.cur = nil
	it.expected = it.m.modCount
	return true
}

// Range calls f on each pair until f returns false. It panics with an error wrapping Maps.ErrConcurrentChange if f
// changes the map structurally.
func (u *HashMap[K, V]) Range(f func(K, V) bool) {
	it := u.Iterator()
	for it.Next() {
		if !f(it.cur.key, it.cur.value) {
			return
		}
	}
	if it.err != nil {
		panic(it.err)
	}
}

// All is Range as an iterator.
func (u *HashMap[K, V]) All() iter.Seq2[K, V] {
	return u.Range
}

func (u *HashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		u.Range(func(k K, _ V) bool { return yield(k) })
	}
}

func (u *HashMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		u.Range(func(_ K, v V) bool { return yield(v) })
	}
}

// Entries iterates the live entries; their values can be set in place.
func (u *HashMap[K, V]) Entries() iter.Seq[*Entry[K, V]] {
	return func(yield func(*Entry[K, V]) bool) {
		it := u.Iterator()
		for it.Next() {
			if !yield(it.cur) {
				return
			}
		}
		if it.err != nil {
			panic(it.err)
		}
	}
}

// KeySet is a live view of the keys of a map.
type KeySet[K, V any] struct {
	m *HashMap[K, V]
}

func (u *HashMap[K, V]) KeySet() KeySet[K, V] {
	return KeySet[K, V]{u}
}

func (s KeySet[K, V]) Size() int { return s.m.size }
func (s KeySet[K, V]) Contains(k K) bool { return s.m.ContainsKey(k) }
func (s KeySet[K, V]) Clear() { s.m.Clear() }
func (s KeySet[K, V]) Iterator() *Iterator[K, V] { return s.m.Iterator() }
func (s KeySet[K, V]) All() iter.Seq[K] { return s.m.Keys() }

func (s KeySet[K, V]) Remove(k K) bool {
	var zero V
	return s.m.removeEntry(k, false, zero) != nil
}

// ValueCollection is a live view of the values of a map.
type ValueCollection[K, V any] struct {
	m *HashMap[K, V]
}

func (u *HashMap[K, V]) ValueCollection() ValueCollection[K, V] {
	return ValueCollection[K, V]{u}
}

func (s ValueCollection[K, V]) Size() int { return s.m.size }
func (s ValueCollection[K, V]) Contains(v V) bool { return s.m.ContainsValue(v) }
func (s ValueCollection[K, V]) Clear() { s.m.Clear() }
func (s ValueCollection[K, V]) Iterator() *Iterator[K, V] { return s.m.Iterator() }
func (s ValueCollection[K, V]) All() iter.Seq[V] { return s.m.Values() }

// Remove deletes one entry holding v.
func (s ValueCollection[K, V]) Remove(v V) bool {
	for it := s.m.Iterator(); it.Next(); {
		if s.m.valueEqual(it.cur.value, v) {
			return it.Remove()
		}
	}
	return false
}

// EntrySet is a live view of the entries of a map.
type EntrySet[K, V any] struct {
	m *HashMap[K, V]
}

func (u *HashMap[K, V]) EntrySet() EntrySet[K, V] {
	return EntrySet[K, V]{u}
}

func (s EntrySet[K, V]) Size() int { return s.m.size }
func (s EntrySet[K, V]) Clear() { s.m.Clear() }
func (s EntrySet[K, V]) Iterator() *Iterator[K, V] { return s.m.Iterator() }
func (s EntrySet[K, V]) All() iter.Seq[*Entry[K, V]] { return s.m.Entries() }
func (s EntrySet[K, V]) Remove(k K, v V) bool { return s.m.RemoveIf(k, v) }

// Contains reports whether k is mapped to v.
func (s EntrySet[K, V]) Contains(k K, v V) bool {
	e := s.m.getEntry(k)
	return e != nil && s.m.valueEqual(e.value, v)
}
