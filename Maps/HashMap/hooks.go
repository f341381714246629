package HashMap

// Hooks are called by a HashMap after each structural change has completed, so they may use the map. OnAccess is
// called when an existing entry is read with Get or written with one of the put operations.
type Hooks[K, V any] interface {
	OnInsert(*Entry[K, V])
	OnAccess(*Entry[K, V])
	OnRemove(*Entry[K, V])
	OnClear()
}

// Sequence is a doubly linked list threaded through the entries of a map, independent of the buckets. The zero value
// is an empty list. An entry may be in at most one Sequence.
type Sequence[K, V any] struct {
	head, tail *Entry[K, V]
	len        int
}

func (s *Sequence[K, V]) Len() int {
	return s.len
}

// Front is the oldest entry.
func (s *Sequence[K, V]) Front() *Entry[K, V] {
	return s.head
}

// Back is the newest entry.
func (s *Sequence[K, V]) Back() *Entry[K, V] {
	return s.tail
}

// After is the entry following e in its Sequence.
func (e *Entry[K, V]) After() *Entry[K, V] {
	return e.after
}

// Before is the entry preceding e in its Sequence.
func (e *Entry[K, V]) Before() *Entry[K, V] {
	return e.before
}

func (s *Sequence[K, V]) PushBack(e *Entry[K, V]) {
	e.before, e.after = s.tail, nil
	if s.tail == nil {
		s.head = e
	} else {
		s.tail.after = e
	}
	s.tail = e
	s.len++
}

func (s *Sequence[K, V]) Remove(e *Entry[K, V]) {
	if e.before == nil {
		s.head = e.after
	} else {
		e.before.after = e.after
	}
	if e.after == nil {
		s.tail = e.before
	} else {
		e.after.before = e.before
	}
	e.before, e.after = nil, nil
	s.len--
}

func (s *Sequence[K, V]) MoveToBack(e *Entry[K, V]) {
	if s.tail != e {
		s.Remove(e)
		s.PushBack(e)
	}
}

func (s *Sequence[K, V]) Reset() {
	s.head, s.tail, s.len = nil, nil, 0
}
