package HashSet

import (
	"fmt"
	"iter"
	"strings"

	Go_HashMap "github.com/g-m-twostay/go-hashmap"
	"github.com/g-m-twostay/go-hashmap/Maps/HashMap"
	"github.com/g-m-twostay/go-hashmap/Sets"
)

// HashSet stores its elements as the keys of a HashMap, so it shares the map's bucket trees and resizing.
type HashSet[E any] struct {
	m *HashMap.HashMap[E, struct{}]
}

// New HashSet of type E. opts configure the underlying map.
func New[E any](hasher Go_HashMap.Hasher[E], opts ...HashMap.Option) (*HashSet[E], error) {
	m, err := HashMap.New[E, struct{}](hasher, opts...)
	if err != nil {
		return nil, err
	}
	return &HashSet[E]{m: m}, nil
}

// Of creates a set holding es.
func Of[E any](hasher Go_HashMap.Hasher[E], es ...E) (*HashSet[E], error) {
	u, err := New[E](hasher, HashMap.WithInitialCapacity(len(es)*4/3+1))
	if err != nil {
		return nil, err
	}
	for _, e := range es {
		u.Put(e)
	}
	return u, nil
}

// Put e into the set. Returns true if e wasn't present.
func (u *HashSet[E]) Put(e E) bool {
	_, had := u.m.PutIfAbsent(e, struct{}{})
	return !had
}

// Has e in the set.
func (u *HashSet[E]) Has(e E) bool {
	return u.m.ContainsKey(e)
}

// Remove e from the set. Returns true if e was present.
func (u *HashSet[E]) Remove(e E) bool {
	_, ok := u.m.Remove(e)
	return ok
}

// Size of the set.
func (u *HashSet[E]) Size() int {
	return u.m.Size()
}

func (u *HashSet[E]) IsEmpty() bool {
	return u.m.IsEmpty()
}

// Take an arbitrary element from the set without removing it. Returns zero value if the set is empty.
func (u *HashSet[E]) Take() (e E) {
	for k := range u.m.Keys() {
		return k
	}
	return
}

// Range calls f on each element until f returns false. f must not modify the set.
func (u *HashSet[E]) Range(f func(E) bool) {
	u.m.Range(func(k E, _ struct{}) bool { return f(k) })
}

func (u *HashSet[E]) All() iter.Seq[E] {
	return u.m.Keys()
}

// Slice copies the elements out in iteration order.
func (u *HashSet[E]) Slice() []E {
	s := make([]E, 0, u.m.Size())
	for k := range u.m.Keys() {
		s = append(s, k)
	}
	return s
}

// setSource presents a Set as the key side of a map source.
type setSource[E any] struct {
	s Sets.Set[E]
}

func (u setSource[E]) Size() int {
	return u.s.Size()
}

func (u setSource[E]) Range(f func(E, struct{}) bool) {
	u.s.Range(func(e E) bool { return f(e, struct{}{}) })
}

// PutAll adds the elements of s and returns how many were new.
func (u *HashSet[E]) PutAll(s Sets.Set[E]) int {
	before := u.m.Size()
	u.m.PutAll(setSource[E]{s})
	return u.m.Size() - before
}

// RemoveAll removes the elements of s and returns how many were present.
func (u *HashSet[E]) RemoveAll(s Sets.Set[E]) int {
	before := u.m.Size()
	if s.Size() < u.m.Size() {
		s.Range(func(e E) bool {
			u.m.Remove(e)
			return true
		})
	} else {
		for it := u.m.Iterator(); it.Next(); {
			if s.Has(it.Key()) {
				it.Remove()
			}
		}
	}
	return before - u.m.Size()
}

// RetainAll removes the elements not in s and returns how many were removed.
func (u *HashSet[E]) RetainAll(s Sets.Set[E]) int {
	n := 0
	for it := u.m.Iterator(); it.Next(); {
		if !s.Has(it.Key()) {
			it.Remove()
			n++
		}
	}
	return n
}

// Eq reports whether u and s hold the same elements, as judged by s.Has.
func (u *HashSet[E]) Eq(s Sets.Set[E]) bool {
	if u.m.Size() != s.Size() {
		return false
	}
	eq := true
	u.Range(func(e E) bool {
		eq = s.Has(e)
		return eq
	})
	return eq
}

// Filter returns a new set, configured like u, holding the elements for which f is true.
func (u *HashSet[E]) Filter(f func(E) bool) Sets.ExtendedSet[E] {
	r := &HashSet[E]{m: u.m.Empty()}
	u.Range(func(e E) bool {
		if f(e) {
			r.Put(e)
		}
		return true
	})
	return r
}

func (u *HashSet[E]) Clear() {
	u.m.Clear()
}

func (u *HashSet[E]) String() string {
	sb := strings.Builder{}
	sb.WriteByte('[')
	first := true
	u.Range(func(e E) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, e)
		return true
	})
	sb.WriteByte(']')
	return sb.String()
}
