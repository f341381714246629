/*
Package HashMap implements a single-threaded hash table whose buckets are chains that turn into size balanced trees when
they grow too long.

# Table
The table length is always a power of two. A key's raw hash is spread by folding its upper 16 bits into the lower 16, so
the bits above the index mask still take part in picking a bucket. Buckets are allocated lazily on first insertion.

# Buckets
A bucket is a chain until it holds TreeifyThreshold entries, at which point it becomes a tree if the table has at least
MinTreeifyCapacity buckets; a smaller table grows instead. A tree turns back into a chain once it holds
UntreeifyThreshold entries or fewer. Trees are ordered by hash, then by the ordering given with WithCompare, then by
insertion sequence. Without an ordering, keys that share a hash are still found but are searched linearly.

# Usage
The map isn't safe for concurrent use. Iterators fail fast with Maps.ErrConcurrentChange when the map is structurally
modified other than through the iterator.
*/
package HashMap

import (
	"fmt"
	"strings"

	Go_HashMap "github.com/g-m-twostay/go-hashmap"
	"github.com/g-m-twostay/go-hashmap/Maps"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type HashMap[K, V any] struct {
	table           []bucket[K, V]
	size, threshold int
	modCount, seq   uint64
	loadFactor      float32
	//bucket conversion thresholds, see Maps.Config.
	treeifyAt, untreeifyAt, minTreeCap int

	hasher     Go_HashMap.Hasher[K]
	compare    func(a, b K) int
	valueEqual func(a, b V) bool
	hooks      Hooks[K, V]
	log        *zap.Logger
}

type settings struct {
	cfg                        Maps.Config
	log                        *zap.Logger
	compare, valueEqual, hooks any
}

// Option configures New. Options carrying a function are generic over its type and are checked against the map's
// types when applied.
type Option func(*settings)

// WithConfig replaces all tunables at once.
func WithConfig(c Maps.Config) Option {
	return func(s *settings) {
		s.cfg = c
	}
}

// WithInitialCapacity pre-sizes the table to the next power of two not less than n. 0 means no hint, so the first
// insertion allocates Maps.DefaultInitialCapacity buckets rather than 1.
func WithInitialCapacity(n int) Option {
	return func(s *settings) {
		s.cfg.InitialCapacity = n
	}
}

func WithLoadFactor(lf float32) Option {
	return func(s *settings) {
		s.cfg.LoadFactor = lf
	}
}

// WithCompare supplies a total order over keys used to order keys sharing a hash inside tree buckets. It needs not be
// related to the hash, but it should report 0 only for keys the hasher considers equal. Without it, a hasher
// implementing Go_HashMap.Ordered provides the order.
func WithCompare[K any](c func(a, b K) int) Option {
	return func(s *settings) {
		s.compare = c
	}
}

// WithValueEqual replaces the value equality used by ContainsValue and the conditional removals. The default compares
// values as interfaces and panics on values whose dynamic type isn't comparable.
func WithValueEqual[V any](eq func(a, b V) bool) Option {
	return func(s *settings) {
		s.valueEqual = eq
	}
}

// WithHooks installs callbacks invoked after structural changes.
func WithHooks[K, V any](h Hooks[K, V]) Option {
	return func(s *settings) {
		s.hooks = h
	}
}

// WithLogger sets the logger receiving debug events about resizes and bucket conversions.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		s.log = l
	}
}

// New creates an empty map. The error wraps Maps.ErrInvalidArgument when the configuration can't be used.
func New[K, V any](hasher Go_HashMap.Hasher[K], opts ...Option) (*HashMap[K, V], error) {
	s := settings{cfg: Maps.DefaultConfig(), log: zap.NewNop()}
	for _, o := range opts {
		o(&s)
	}
	if hasher == nil {
		return nil, errors.Wrap(Maps.ErrInvalidArgument, "nil hasher")
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	u := &HashMap[K, V]{
		loadFactor:  s.cfg.LoadFactor,
		treeifyAt:   s.cfg.TreeifyThreshold,
		untreeifyAt: s.cfg.UntreeifyThreshold,
		minTreeCap:  s.cfg.MinTreeifyCapacity,
		hasher:      hasher,
		valueEqual:  func(a, b V) bool { return any(a) == any(b) },
		log:         s.log,
	}
	if u.log == nil {
		u.log = zap.NewNop()
	}
	if s.compare != nil {
		c, ok := s.compare.(func(a, b K) int)
		if !ok {
			return nil, errors.Wrapf(Maps.ErrInvalidArgument, "compare %T doesn't order the key type", s.compare)
		}
		u.compare = c
	} else if o, ok := hasher.(Go_HashMap.Ordered[K]); ok {
		u.compare = o.Compare
	}
	if s.valueEqual != nil {
		eq, ok := s.valueEqual.(func(a, b V) bool)
		if !ok {
			return nil, errors.Wrapf(Maps.ErrInvalidArgument, "value equality %T doesn't match the value type", s.valueEqual)
		}
		u.valueEqual = eq
	}
	if s.hooks != nil {
		h, ok := s.hooks.(Hooks[K, V])
		if !ok {
			return nil, errors.Wrapf(Maps.ErrInvalidArgument, "hooks %T don't match the map type", s.hooks)
		}
		u.hooks = h
	}
	if c := s.cfg.InitialCapacity; c > 0 {
		u.threshold = tableSizeFor(c)
	}
	return u, nil
}

// From creates a map holding all pairs of src, sized up front so filling it doesn't resize.
func From[K, V any](hasher Go_HashMap.Hasher[K], src Maps.Source[K, V], opts ...Option) (*HashMap[K, V], error) {
	u, err := New[K, V](hasher, opts...)
	if err != nil {
		return nil, err
	}
	u.PutAll(src)
	return u, nil
}

// Empty creates an empty map with the hasher, orderings, tunables and logger of u. Hooks aren't carried over.
func (u *HashMap[K, V]) Empty() *HashMap[K, V] {
	return &HashMap[K, V]{
		loadFactor:  u.loadFactor,
		treeifyAt:   u.treeifyAt,
		untreeifyAt: u.untreeifyAt,
		minTreeCap:  u.minTreeCap,
		hasher:      u.hasher,
		compare:     u.compare,
		valueEqual:  u.valueEqual,
		log:         u.log,
	}
}

func (u *HashMap[K, V]) debug(msg string, fields ...zap.Field) {
	if ce := u.log.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}

func (u *HashMap[K, V]) hash(k K) uint32 {
	return spread(u.hasher.Hash(k))
}

func (u *HashMap[K, V]) newEntry(h uint32, k K, v V) *Entry[K, V] {
	u.seq++
	return &Entry[K, V]{key: k, value: v, hash: h, seq: u.seq}
}

// Size is the number of keys in the map.
func (u *HashMap[K, V]) Size() int {
	return u.size
}

func (u *HashMap[K, V]) IsEmpty() bool {
	return u.size == 0
}

// Capacity is the current table length, 0 before the first allocation.
func (u *HashMap[K, V]) Capacity() int {
	return len(u.table)
}

// ModCount is the structural modification counter. It changes on every insertion, removal, resize and clear.
func (u *HashMap[K, V]) ModCount() uint64 {
	return u.modCount
}

func (u *HashMap[K, V]) getEntry(k K) *Entry[K, V] {
	if len(u.table) == 0 {
		return nil
	}
	h := u.hash(k)
	b := &u.table[indexFor(h, len(u.table))]
	switch b.kind {
	case chainBin:
		for e := b.head; e != nil; e = e.next {
			if e.hash == h && u.hasher.Equal(e.key, k) {
				return e
			}
		}
	case treeBin:
		return u.findTree(b.head, h, k)
	}
	return nil
}

// GetEntry returns the live entry of k, or nil.
func (u *HashMap[K, V]) GetEntry(k K) *Entry[K, V] {
	e := u.getEntry(k)
	if e != nil && u.hooks != nil {
		u.hooks.OnAccess(e)
	}
	return e
}

func (u *HashMap[K, V]) Get(k K) (v V, ok bool) {
	if e := u.GetEntry(k); e != nil {
		return e.value, true
	}
	return
}

func (u *HashMap[K, V]) GetOrDefault(k K, def V) V {
	if e := u.GetEntry(k); e != nil {
		return e.value
	}
	return def
}

func (u *HashMap[K, V]) ContainsKey(k K) bool {
	return u.getEntry(k) != nil
}

// ContainsValue scans every bucket.
// Time: O(n)
func (u *HashMap[K, V]) ContainsValue(v V) bool {
	for i := range u.table {
		if !u.table[i].walk(func(e *Entry[K, V]) bool { return !u.valueEqual(e.value, v) }) {
			return true
		}
	}
	return false
}

// Put associates v with k. It returns the previous value and whether there was one.
func (u *HashMap[K, V]) Put(k K, v V) (V, bool) {
	return u.put(k, v, false)
}

// PutIfAbsent stores v only if k has no value. It returns the existing value and whether there was one.
func (u *HashMap[K, V]) PutIfAbsent(k K, v V) (V, bool) {
	return u.put(k, v, true)
}

func (u *HashMap[K, V]) put(k K, v V, onlyIfAbsent bool) (old V, had bool) {
	if len(u.table) == 0 {
		u.resize()
	}
	h := u.hash(k)
	i := indexFor(h, len(u.table))
	b := &u.table[i]
	var found, added *Entry[K, V]
	switch b.kind {
	case emptyBin:
		added = u.newEntry(h, k, v)
		b.setChain(added)
	case chainBin:
		n, last := 0, b.head
		for e := b.head; e != nil; e = e.next {
			if e.hash == h && u.hasher.Equal(e.key, k) {
				found = e
				break
			}
			last = e
			n++
		}
		if found == nil {
			added = u.newEntry(h, k, v)
			last.next = added
			if n+1 >= u.treeifyAt {
				u.treeifyBin(i)
			}
		}
	case treeBin:
		if found = u.findTree(b.head, h, k); found == nil {
			added = u.newEntry(h, k, v)
			u.insertTree(&b.head, added)
		}
	}
	if found != nil {
		old, had = found.value, true
		if !onlyIfAbsent {
			found.value = v
		}
		if u.hooks != nil {
			u.hooks.OnAccess(found)
		}
		return
	}
	u.modCount++
	if u.size++; u.size > u.threshold {
		u.resize()
	}
	if u.hooks != nil {
		u.hooks.OnInsert(added)
	}
	return
}

// treeifyBin converts the chain at i to a tree, or grows the table if it's still too small for trees.
func (u *HashMap[K, V]) treeifyBin(i int) {
	if len(u.table) < u.minTreeCap {
		u.debug("resize instead of treeify", zap.Int("bucket", i), zap.Int("capacity", len(u.table)))
		u.resize()
		return
	}
	b := &u.table[i]
	var s []*Entry[K, V]
	for e := b.head; e != nil; e = e.next {
		s = append(s, e)
	}
	sortEntries(u, s)
	b.setTree(buildTree(s))
	u.debug("treeify", zap.Int("bucket", i), zap.Int("entries", len(s)))
}

// untreeifyBin converts the tree at i back to a chain in tree order.
func (u *HashMap[K, V]) untreeifyBin(i int) {
	b := &u.table[i]
	s := appendInOrder(nil, b.head)
	b.setChain(chainOf(s))
	u.debug("untreeify", zap.Int("bucket", i), zap.Int("entries", len(s)))
}

// Remove deletes k and returns its value if it was present.
func (u *HashMap[K, V]) Remove(k K) (v V, ok bool) {
	if e := u.removeEntry(k, false, v); e != nil {
		return e.value, true
	}
	return
}

// RemoveIf deletes k only if it's currently mapped to v.
func (u *HashMap[K, V]) RemoveIf(k K, v V) bool {
	return u.removeEntry(k, true, v) != nil
}

func (u *HashMap[K, V]) removeEntry(k K, matchValue bool, v V) *Entry[K, V] {
	if len(u.table) == 0 {
		return nil
	}
	h := u.hash(k)
	i := indexFor(h, len(u.table))
	b := &u.table[i]
	var found *Entry[K, V]
	switch b.kind {
	case chainBin:
		var prev *Entry[K, V]
		for e := b.head; e != nil; prev, e = e, e.next {
			if e.hash == h && u.hasher.Equal(e.key, k) {
				found = e
				break
			}
		}
		if found == nil || matchValue && !u.valueEqual(found.value, v) {
			return nil
		}
		if prev == nil {
			b.setChain(found.next)
		} else {
			prev.next = found.next
		}
		found.next = nil
	case treeBin:
		if found = u.findTree(b.head, h, k); found == nil || matchValue && !u.valueEqual(found.value, v) {
			return nil
		}
		u.removeTree(&b.head, found)
		if b.head == nil {
			b.setChain(nil)
		} else if int(b.head.sz) <= u.untreeifyAt {
			u.untreeifyBin(i)
		}
	default:
		return nil
	}
	u.modCount++
	u.size--
	if u.hooks != nil {
		u.hooks.OnRemove(found)
	}
	return found
}

// Clear removes all entries but keeps the table.
func (u *HashMap[K, V]) Clear() {
	u.modCount++
	if u.size > 0 {
		u.size = 0
		clear(u.table)
	}
	if u.hooks != nil {
		u.hooks.OnClear()
	}
}

// PutAll copies all pairs of src in, growing the table once up front when src is large.
func (u *HashMap[K, V]) PutAll(src Maps.Source[K, V]) {
	s := src.Size()
	if s <= 0 {
		return
	}
	if len(u.table) == 0 {
		t := Maps.MaximumCapacity
		if ft := float64(s)/float64(u.loadFactor) + 1; ft < Maps.MaximumCapacity {
			t = int(ft)
		}
		if t > u.threshold {
			u.threshold = tableSizeFor(t)
		}
	} else {
		for s > u.threshold && len(u.table) < Maps.MaximumCapacity {
			u.resize()
		}
	}
	src.Range(func(k K, v V) bool {
		u.put(k, v, false)
		return true
	})
}

// Replace sets the value of k only if k is present.
func (u *HashMap[K, V]) Replace(k K, v V) (old V, ok bool) {
	if e := u.GetEntry(k); e != nil {
		return e.SetValue(v), true
	}
	return
}

// ReplaceAll replaces every value with the result of f. f must not modify the map structurally.
func (u *HashMap[K, V]) ReplaceAll(f func(K, V) V) {
	mc := u.modCount
	for i := range u.table {
		u.table[i].walk(func(e *Entry[K, V]) bool {
			e.value = f(e.key, e.value)
			return true
		})
	}
	u.checkMod(mc)
}

func (u *HashMap[K, V]) checkMod(expected uint64) {
	if u.modCount != expected {
		panic(errors.Wrap(Maps.ErrConcurrentChange, "map modified by callback"))
	}
}

// ComputeIfAbsent stores the result of f if k is absent and f reports ok. It returns the current value of k.
func (u *HashMap[K, V]) ComputeIfAbsent(k K, f func(K) (V, bool)) (V, bool) {
	if e := u.GetEntry(k); e != nil {
		return e.value, true
	}
	mc := u.modCount
	v, ok := f(k)
	u.checkMod(mc)
	if !ok {
		return v, false
	}
	u.put(k, v, false)
	return v, true
}

// ComputeIfPresent replaces the value of a present k with the result of f, or removes k when f doesn't report ok.
func (u *HashMap[K, V]) ComputeIfPresent(k K, f func(K, V) (V, bool)) (v V, ok bool) {
	e := u.getEntry(k)
	if e == nil {
		return
	}
	mc := u.modCount
	nv, keep := f(k, e.value)
	u.checkMod(mc)
	if !keep {
		u.removeEntry(k, false, v)
		return
	}
	e.value = nv
	if u.hooks != nil {
		u.hooks.OnAccess(e)
	}
	return nv, true
}

// Compute maps k to the result of f, given the current value and whether it exists. k is removed when f doesn't report
// ok.
func (u *HashMap[K, V]) Compute(k K, f func(k K, old V, present bool) (V, bool)) (v V, ok bool) {
	e := u.getEntry(k)
	var old V
	if e != nil {
		old = e.value
	}
	mc := u.modCount
	nv, keep := f(k, old, e != nil)
	u.checkMod(mc)
	switch {
	case !keep:
		if e != nil {
			u.removeEntry(k, false, v)
		}
		return
	case e != nil:
		e.value = nv
		if u.hooks != nil {
			u.hooks.OnAccess(e)
		}
	default:
		u.put(k, nv, false)
	}
	return nv, true
}

// Merge stores v if k is absent, otherwise replaces the value with f(old, v), removing k when f doesn't report ok.
func (u *HashMap[K, V]) Merge(k K, v V, f func(old, v V) (V, bool)) (V, bool) {
	e := u.getEntry(k)
	if e == nil {
		u.put(k, v, false)
		return v, true
	}
	mc := u.modCount
	nv, keep := f(e.value, v)
	u.checkMod(mc)
	if !keep {
		u.removeEntry(k, false, v)
		return *new(V), false
	}
	e.value = nv
	if u.hooks != nil {
		u.hooks.OnAccess(e)
	}
	return nv, true
}

func (u *HashMap[K, V]) String() string {
	sb := strings.Builder{}
	sb.WriteByte('{')
	first := true
	for i := range u.table {
		u.table[i].walk(func(e *Entry[K, V]) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&sb, "%v=%v", e.key, e.value)
			return true
		})
	}
	sb.WriteByte('}')
	return sb.String()
}
