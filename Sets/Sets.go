package Sets

// Set is an unordered collection without duplicates.
type Set[E any] interface {
	//Put returns true if e wasn't already in the set.
	Put(E) bool
	Has(E) bool
	Remove(E) bool
	Size() int
	//Take returns an arbitrary element, the zero value if the set is empty.
	Take() E
	Range(func(E) bool)
}

type ExtendedSet[E any] interface {
	Set[E]
	//PutAll, RemoveAll and RetainAll return the number of elements added or removed.
	PutAll(Set[E]) int
	RemoveAll(Set[E]) int
	RetainAll(Set[E]) int
	Eq(Set[E]) bool
	Filter(func(E) bool) ExtendedSet[E]
	Clear()
}
