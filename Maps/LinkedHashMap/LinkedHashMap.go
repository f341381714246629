// Package LinkedHashMap is a HashMap that remembers an order over its entries: the order in which keys were first
// inserted, or the order in which they were last accessed. It can evict its eldest entry on insertion, which makes an
// access ordered map an LRU cache.
package LinkedHashMap

import (
	"fmt"
	"iter"
	"strings"

	Go_HashMap "github.com/g-m-twostay/go-hashmap"
	"github.com/g-m-twostay/go-hashmap/Maps"
	"github.com/g-m-twostay/go-hashmap/Maps/HashMap"
	"github.com/pkg/errors"
)

type LinkedHashMap[K, V any] struct {
	base        *HashMap.HashMap[K, V]
	seq         HashMap.Sequence[K, V]
	accessOrder bool
	reorders    uint64 //access order moves; they count as structural for iteration.

	// RemoveEldest is consulted after each fresh insertion with the eldest entry. Returning true removes it. The
	// function may inspect m but must not modify it.
	RemoveEldest func(m *LinkedHashMap[K, V], eldest *HashMap.Entry[K, V]) bool
}

// New creates an empty map iterating in insertion order, or in access order if accessOrder is set. opts are passed to
// HashMap.New, except that hooks are always the map's own.
func New[K, V any](hasher Go_HashMap.Hasher[K], accessOrder bool, opts ...HashMap.Option) (*LinkedHashMap[K, V], error) {
	u := &LinkedHashMap[K, V]{accessOrder: accessOrder}
	base, err := HashMap.New[K, V](hasher, append(opts[:len(opts):len(opts)], HashMap.WithHooks[K, V](u))...)
	if err != nil {
		return nil, err
	}
	u.base = base
	return u, nil
}

// NewLRU creates an access ordered map holding at most capacity entries, evicting the least recently used one.
func NewLRU[K, V any](hasher Go_HashMap.Hasher[K], capacity int, opts ...HashMap.Option) (*LinkedHashMap[K, V], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(Maps.ErrInvalidArgument, "illegal LRU capacity: %d", capacity)
	}
	u, err := New[K, V](hasher, true, append([]HashMap.Option{HashMap.WithInitialCapacity(capacity)}, opts...)...)
	if err != nil {
		return nil, err
	}
	u.RemoveEldest = func(m *LinkedHashMap[K, V], _ *HashMap.Entry[K, V]) bool {
		return m.Size() > capacity
	}
	return u, nil
}

func (u *LinkedHashMap[K, V]) OnInsert(e *HashMap.Entry[K, V]) {
	u.seq.PushBack(e)
	if u.RemoveEldest != nil {
		if eldest := u.seq.Front(); u.RemoveEldest(u, eldest) {
			u.base.Remove(eldest.Key())
		}
	}
}

func (u *LinkedHashMap[K, V]) OnAccess(e *HashMap.Entry[K, V]) {
	if u.accessOrder && u.seq.Back() != e {
		u.seq.MoveToBack(e)
		u.reorders++
	}
}

func (u *LinkedHashMap[K, V]) OnRemove(e *HashMap.Entry[K, V]) {
	u.seq.Remove(e)
}

func (u *LinkedHashMap[K, V]) OnClear() {
	u.seq.Reset()
}

func (u *LinkedHashMap[K, V]) modCount() uint64 {
	return u.base.ModCount() + u.reorders
}

// AccessOrder reports whether the map is ordered by access instead of insertion.
func (u *LinkedHashMap[K, V]) AccessOrder() bool {
	return u.accessOrder
}

func (u *LinkedHashMap[K, V]) Size() int {
	return u.base.Size()
}

func (u *LinkedHashMap[K, V]) IsEmpty() bool {
	return u.base.IsEmpty()
}

func (u *LinkedHashMap[K, V]) Capacity() int {
	return u.base.Capacity()
}

// ContainsKey doesn't count as an access.
func (u *LinkedHashMap[K, V]) ContainsKey(k K) bool {
	return u.base.ContainsKey(k)
}

func (u *LinkedHashMap[K, V]) ContainsValue(v V) bool {
	return u.base.ContainsValue(v)
}

// Get moves k to the back in an access ordered map.
func (u *LinkedHashMap[K, V]) Get(k K) (V, bool) {
	return u.base.Get(k)
}

func (u *LinkedHashMap[K, V]) GetOrDefault(k K, def V) V {
	return u.base.GetOrDefault(k, def)
}

// Put keeps the position of an existing key in an insertion ordered map.
func (u *LinkedHashMap[K, V]) Put(k K, v V) (V, bool) {
	return u.base.Put(k, v)
}

func (u *LinkedHashMap[K, V]) PutIfAbsent(k K, v V) (V, bool) {
	return u.base.PutIfAbsent(k, v)
}

func (u *LinkedHashMap[K, V]) PutAll(src Maps.Source[K, V]) {
	u.base.PutAll(src)
}

func (u *LinkedHashMap[K, V]) Remove(k K) (V, bool) {
	return u.base.Remove(k)
}

func (u *LinkedHashMap[K, V]) RemoveIf(k K, v V) bool {
	return u.base.RemoveIf(k, v)
}

func (u *LinkedHashMap[K, V]) Clear() {
	u.base.Clear()
}

func (u *LinkedHashMap[K, V]) Replace(k K, v V) (V, bool) {
	return u.base.Replace(k, v)
}

func (u *LinkedHashMap[K, V]) ReplaceAll(f func(K, V) V) {
	mc := u.modCount()
	for e := u.seq.Front(); e != nil; e = e.After() {
		e.SetValue(f(e.Key(), e.Value()))
	}
	if u.modCount() != mc {
		panic(errors.Wrap(Maps.ErrConcurrentChange, "map modified by callback"))
	}
}

func (u *LinkedHashMap[K, V]) ComputeIfAbsent(k K, f func(K) (V, bool)) (V, bool) {
	return u.base.ComputeIfAbsent(k, f)
}

func (u *LinkedHashMap[K, V]) ComputeIfPresent(k K, f func(K, V) (V, bool)) (V, bool) {
	return u.base.ComputeIfPresent(k, f)
}

func (u *LinkedHashMap[K, V]) Compute(k K, f func(k K, old V, present bool) (V, bool)) (V, bool) {
	return u.base.Compute(k, f)
}

func (u *LinkedHashMap[K, V]) Merge(k K, v V, f func(old, v V) (V, bool)) (V, bool) {
	return u.base.Merge(k, v, f)
}

// Eldest is the first entry in iteration order, nil if the map is empty.
func (u *LinkedHashMap[K, V]) Eldest() *HashMap.Entry[K, V] {
	return u.seq.Front()
}

// Youngest is the last entry in iteration order, nil if the map is empty.
func (u *LinkedHashMap[K, V]) Youngest() *HashMap.Entry[K, V] {
	return u.seq.Back()
}

// Iterator walks the entries from eldest to youngest. Like HashMap.Iterator it fails fast, and in an access ordered
// map a Get during the iteration is a modification.
type Iterator[K, V any] struct {
	m         *LinkedHashMap[K, V]
	expected  uint64
	cur, next *HashMap.Entry[K, V]
	err       error
}

func (u *LinkedHashMap[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: u, expected: u.modCount(), next: u.seq.Front()}
}

func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.m.modCount() != it.expected {
		it.err = errors.Wrap(Maps.ErrConcurrentChange, "map modified during iteration")
		it.cur = nil
		return false
	}
	if it.cur = it.next; it.cur == nil {
		return false
	}
	it.next = it.cur.After()
	return true
}

func (it *Iterator[K, V]) Err() error {
	return it.err
}

func (it *Iterator[K, V]) Entry() *HashMap.Entry[K, V] {
	return it.cur
}

func (it *Iterator[K, V]) Key() K {
	return it.cur.Key()
}

func (it *Iterator[K, V]) Value() V {
	return it.cur.Value()
}

// Remove deletes the current entry.
func (it *Iterator[K, V]) Remove() bool {
	if it.cur == nil || it.err != nil {
		return false
	}
	if it.m.modCount() != it.expected {
		it.err = errors.Wrap(Maps.ErrConcurrentChange, "map modified during iteration")
		return false
	}
	it.m.base.Remove(it.cur.Key())
	it.cur = nil
	it.expected = it.m.modCount()
	return true
}

// Range calls f in iteration order until it returns false, panicking if f modifies the map.
func (u *LinkedHashMap[K, V]) Range(f func(K, V) bool) {
	it := u.Iterator()
	for it.Next() {
		if !f(it.cur.Key(), it.cur.Value()) {
			return
		}
	}
	if it.err != nil {
		panic(it.err)
	}
}

func (u *LinkedHashMap[K, V]) All() iter.Seq2[K, V] {
	return u.Range
}

func (u *LinkedHashMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		u.Range(func(k K, _ V) bool { return yield(k) })
	}
}

func (u *LinkedHashMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		u.Range(func(_ K, v V) bool { return yield(v) })
	}
}

func (u *LinkedHashMap[K, V]) String() string {
	sb := strings.Builder{}
	sb.WriteByte('{')
	for e := u.seq.Front(); e != nil; e = e.After() {
		if e != u.seq.Front() {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v=%v", e.Key(), e.Value())
	}
	sb.WriteByte('}')
	return sb.String()
}
