package comparisons

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	godshash "github.com/emirpasic/gods/maps/hashmap"
	"github.com/emirpasic/gods/maps/treemap"
	Go_HashMap "github.com/g-m-twostay/go-hashmap"
	"github.com/g-m-twostay/go-hashmap/Maps/HashMap"
	"github.com/google/btree"
	"github.com/petar/GoLLRB/llrb"
	"github.com/puzpuzpuz/xsync/v3"
)

// single goroutine read and write costs against https://github.com/cornelk/hashmap, https://github.com/alphadose/haxmap,
// https://github.com/puzpuzpuz/xsync, the gods maps, https://github.com/google/btree and https://github.com/petar/GoLLRB.
const benchmarkItemCount = 1024

type kv struct {
	k, v int
}

func kvLess(a, b kv) bool {
	return a.k < b.k
}

func setupHMap(b *testing.B) *HashMap.HashMap[int, int] {
	b.Helper()
	m, err := HashMap.New[int, int](Go_HashMap.IntHasher[int]{})
	if err != nil {
		b.Fatal(err)
	}
	for i := range benchmarkItemCount {
		m.Put(i, i)
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[int, int] {
	b.Helper()
	m := hashmap.New[int, int]()
	for i := range benchmarkItemCount {
		m.Set(i, i)
	}
	return m
}

func setupHaxMap(b *testing.B) *haxmap.Map[int, int] {
	b.Helper()
	m := haxmap.New[int, int]()
	for i := range benchmarkItemCount {
		m.Set(i, i)
	}
	return m
}

func setupXSyncMap(b *testing.B) *xsync.MapOf[int, int] {
	b.Helper()
	m := xsync.NewMapOfWithHasher[int, int](func(v int, _ uint64) uint64 { return uint64(v) })
	for i := range benchmarkItemCount {
		m.Store(i, i)
	}
	return m
}

func setupGodsHashMap(b *testing.B) *godshash.Map {
	b.Helper()
	m := godshash.New()
	for i := range benchmarkItemCount {
		m.Put(i, i)
	}
	return m
}

func setupTreeMap(b *testing.B) *treemap.Map {
	b.Helper()
	m := treemap.NewWithIntComparator()
	for i := range benchmarkItemCount {
		m.Put(i, i)
	}
	return m
}

func setupBTree(b *testing.B) *btree.BTreeG[kv] {
	b.Helper()
	t := btree.NewG[kv](32, kvLess)
	for i := range benchmarkItemCount {
		t.ReplaceOrInsert(kv{i, i})
	}
	return t
}

func setupLLRB(b *testing.B) *llrb.LLRB {
	b.Helper()
	t := llrb.New()
	for i := range benchmarkItemCount {
		t.ReplaceOrInsert(llrb.Int(i))
	}
	return t
}

func Benchmark1ReadHMap(b *testing.B) {
	m := setupHMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Get(i); j != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadGoMap(b *testing.B) {
	m := make(map[int]int, benchmarkItemCount)
	for i := range benchmarkItemCount {
		m[i] = i
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if m[i] != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadHashMap(b *testing.B) {
	m := setupHashMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Get(i); j != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadHaxMap(b *testing.B) {
	m := setupHaxMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Get(i); j != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadXSyncMap(b *testing.B) {
	m := setupXSyncMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Load(i); j != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadGodsHashMap(b *testing.B) {
	m := setupGodsHashMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Get(i); j.(int) != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadTreeMap(b *testing.B) {
	m := setupTreeMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := m.Get(i); j.(int) != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadBTree(b *testing.B) {
	t := setupBTree(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if j, _ := t.Get(kv{k: i}); j.v != i {
				b.Fail()
			}
		}
	}
}

func Benchmark1ReadLLRB(b *testing.B) {
	t := setupLLRB(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			if t.Get(llrb.Int(i)) == nil {
				b.Fail()
			}
		}
	}
}

func Benchmark1WriteHMap(b *testing.B) {
	m, _ := HashMap.New[int, int](Go_HashMap.IntHasher[int]{})
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Put(i, i)
		}
	}
}

func Benchmark1WriteGoMap(b *testing.B) {
	m := make(map[int]int)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m[i] = i
		}
	}
}

func Benchmark1WriteHashMap(b *testing.B) {
	m := hashmap.New[int, int]()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Set(i, i)
		}
	}
}

func Benchmark1WriteHaxMap(b *testing.B) {
	m := haxmap.New[int, int]()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Set(i, i)
		}
	}
}

func Benchmark1WriteXSyncMap(b *testing.B) {
	m := xsync.NewMapOfWithHasher[int, int](func(v int, _ uint64) uint64 { return uint64(v) })
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Store(i, i)
		}
	}
}

func Benchmark1WriteGodsHashMap(b *testing.B) {
	m := godshash.New()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Put(i, i)
		}
	}
}

func Benchmark1WriteTreeMap(b *testing.B) {
	m := treemap.NewWithIntComparator()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			m.Put(i, i)
		}
	}
}

func Benchmark1WriteBTree(b *testing.B) {
	t := btree.NewG[kv](32, kvLess)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			t.ReplaceOrInsert(kv{i, i})
		}
	}
}

func Benchmark1WriteLLRB(b *testing.B) {
	t := llrb.New()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := range benchmarkItemCount {
			t.ReplaceOrInsert(llrb.Int(i))
		}
	}
}

// insert then delete everything, so every round pays for resizes and bucket conversions.
func Benchmark1ChurnHMap(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m, _ := HashMap.New[int, int](Go_HashMap.IntHasher[int]{})
		for i := range benchmarkItemCount {
			m.Put(i, i)
		}
		for i := range benchmarkItemCount {
			m.Remove(i)
		}
	}
}

func Benchmark1ChurnHashMap(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := hashmap.New[int, int]()
		for i := range benchmarkItemCount {
			m.Set(i, i)
		}
		for i := range benchmarkItemCount {
			m.Del(i)
		}
	}
}

func Benchmark1ChurnHaxMap(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := haxmap.New[int, int]()
		for i := range benchmarkItemCount {
			m.Set(i, i)
		}
		for i := range benchmarkItemCount {
			m.Del(i)
		}
	}
}

func Benchmark1ChurnXSyncMap(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := xsync.NewMapOf[int, int]()
		for i := range benchmarkItemCount {
			m.Store(i, i)
		}
		for i := range benchmarkItemCount {
			m.Delete(i)
		}
	}
}
