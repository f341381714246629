package Maps

// Map is the contract shared by the maps in this module. Missing keys are reported through the bool results, never
// through errors.
type Map[K, V any] interface {
	Size() int
	IsEmpty() bool
	ContainsKey(K) bool
	ContainsValue(V) bool
	Get(K) (V, bool)
	//Put returns the previous value and whether there was one.
	Put(K, V) (V, bool)
	Remove(K) (V, bool)
	PutAll(Source[K, V])
	Clear()
	Range(func(K, V) bool)
}

// Source is a sequence of key value pairs that can be consumed in one pass. Size is used to pre-size the destination.
type Source[K, V any] interface {
	Size() int
	Range(func(K, V) bool)
}

// GoMap adapts a built-in map to Source.
type GoMap[K comparable, V any] map[K]V

func (u GoMap[K, V]) Size() int {
	return len(u)
}

func (u GoMap[K, V]) Range(f func(K, V) bool) {
	for k, v := range u {
		if !f(k, v) {
			return
		}
	}
}
