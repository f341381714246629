package HashMap

import "cmp"

// Tree buckets are size balanced trees ordered by (hash, compare, seq). The sizes of subtrees double as the balance
// metadata, the same field gives the bucket's live count at the root.
// The worst case height is less than 1.44*log2(n+1.5)-1.33.

func size[K, V any](e *Entry[K, V]) uint32 {
	if e == nil {
		return 0
	}
	return e.sz
}

// rotateLeft performs a left rotation on the subtree *n.
// Time: O(1); Space: O(1)
func rotateLeft[K, V any](n **Entry[K, V]) {
	r := *n
	rc := r.r
	r.r = rc.l
	rc.l = r
	rc.sz = r.sz
	r.sz = size(r.l) + size(r.r) + 1
	*n = rc
}

// rotateRight performs a right rotation on the subtree *n.
// Time: O(1); Space: O(1)
func rotateRight[K, V any](n **Entry[K, V]) {
	r := *n
	lc := r.l
	r.l = lc.r
	lc.r = r
	lc.sz = r.sz
	r.sz = size(r.l) + size(r.r) + 1
	*n = lc
}

// maintain restores the size balance of the subtree *curPtr after its right (rightBigger) or left side grew.
// Time: amortized O(1)
func maintain[K, V any](curPtr **Entry[K, V], rightBigger bool) {
	cur := *curPtr
	if cur == nil {
		return
	}
	if rightBigger {
		rc := cur.r
		if rc == nil {
			return
		}
		if lsz := size(cur.l); size(rc.r) > lsz {
			rotateLeft(curPtr)
		} else if size(rc.l) > lsz {
			rotateRight(&cur.r)
			rotateLeft(curPtr)
		} else {
			return
		}
	} else {
		lc := cur.l
		if lc == nil {
			return
		}
		if rsz := size(cur.r); size(lc.l) > rsz {
			rotateRight(curPtr)
		} else if size(lc.r) > rsz {
			rotateLeft(&cur.l)
			rotateRight(curPtr)
		} else {
			return
		}
	}
	top := *curPtr
	maintain(&top.l, false)
	maintain(&top.r, true)
	maintain(curPtr, false)
	maintain(curPtr, true)
}

// probe compares the key k with hash h against e. 0 means the order can't tell k and e.key apart: either they are
// equal, or they share a hash and no ordering exists between them.
func (u *HashMap[K, V]) probe(h uint32, k K, e *Entry[K, V]) int {
	if h != e.hash {
		if h < e.hash {
			return -1
		}
		return 1
	}
	if u.compare != nil {
		return u.compare(k, e.key)
	}
	return 0
}

// order is the total order of entries inside a tree.
func (u *HashMap[K, V]) order(a, b *Entry[K, V]) int {
	if c := u.probe(a.hash, a.key, b); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

// findTree searches the subtree at p. Where the order is undecided both sides are visited, which is bounded by the
// number of keys sharing the hash and the ordering.
// Time: O(D) when compare is consistent with Equal.
func (u *HashMap[K, V]) findTree(p *Entry[K, V], h uint32, k K) *Entry[K, V] {
	for p != nil {
		if c := u.probe(h, k, p); c < 0 {
			p = p.l
		} else if c > 0 {
			p = p.r
		} else if u.hasher.Equal(p.key, k) {
			return p
		} else if q := u.findTree(p.r, h, k); q != nil {
			return q
		} else {
			p = p.l
		}
	}
	return nil
}

// insertTree links the new entry e into the subtree at curPtr. Recursive.
// Time: O(D)
func (u *HashMap[K, V]) insertTree(curPtr **Entry[K, V], e *Entry[K, V]) {
	cur := *curPtr
	if cur == nil {
		e.next, e.l, e.r, e.sz = nil, nil, nil, 1
		*curPtr = e
		return
	}
	cur.sz++
	if u.order(e, cur) < 0 {
		u.insertTree(&cur.l, e)
		maintain(curPtr, false)
	} else {
		u.insertTree(&cur.r, e)
		maintain(curPtr, true)
	}
}

// removeTree unlinks e, which must be in the subtree at curPtr. When e has two children its in-order successor takes
// its place. Recursive.
// Time: O(D)
func (u *HashMap[K, V]) removeTree(curPtr **Entry[K, V], e *Entry[K, V]) {
	cur := *curPtr
	if cur == e {
		if cur.l == nil {
			*curPtr = cur.r
		} else if cur.r == nil {
			*curPtr = cur.l
		} else {
			succ := popMin(&cur.r)
			succ.l, succ.r, succ.sz = cur.l, cur.r, cur.sz-1
			*curPtr = succ
			maintain(curPtr, false)
		}
		e.l, e.r, e.sz = nil, nil, 0
		return
	}
	cur.sz--
	if u.order(e, cur) < 0 {
		u.removeTree(&cur.l, e)
		maintain(curPtr, true)
	} else {
		u.removeTree(&cur.r, e)
		maintain(curPtr, false)
	}
}

// popMin detaches the smallest entry of the non-empty subtree at p, rebalancing on the way back up.
func popMin[K, V any](p **Entry[K, V]) *Entry[K, V] {
	cur := *p
	if cur.l == nil {
		*p = cur.r
		return cur
	}
	cur.sz--
	m := popMin(&cur.l)
	maintain(p, true)
	return m
}

// buildTree builds a tree from s, which must be sorted by order. The result is perfectly balanced.
// Time: O(n)
func buildTree[K, V any](s []*Entry[K, V]) *Entry[K, V] {
	if len(s) == 0 {
		return nil
	}
	mid := len(s) >> 1
	e := s[mid]
	e.next = nil
	e.l, e.r, e.sz = buildTree(s[:mid]), buildTree(s[mid+1:]), uint32(len(s))
	return e
}

// appendInOrder appends the entries of the subtree at e to dst in order.
func appendInOrder[K, V any](dst []*Entry[K, V], e *Entry[K, V]) []*Entry[K, V] {
	for e != nil {
		dst = appendInOrder(dst, e.l)
		dst = append(dst, e)
		e = e.r
	}
	return dst
}

// walkTree is an in-order traversal that stops once f returns false.
func walkTree[K, V any](e *Entry[K, V], f func(*Entry[K, V]) bool) bool {
	for e != nil {
		if !walkTree(e.l, f) || !f(e) {
			return false
		}
		e = e.r
	}
	return true
}
