package ptrie

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// defaultModifiedCache bounds the per-Txn writable-node set. Evicting an
// entry only forgets that a node is writable, so a later write clones it
// again instead of mutating it.
const defaultModifiedCache = 8192

// Txn batches updates on top of a snapshot of a Trie. Unlike Put/Remove,
// which clone the whole path on every call, a Txn clones each node at most
// once and then mutates its private copy in place, so N updates touching a
// shared prefix cost one clone of that prefix. Commit publishes the result
// as a new immutable version; the Trie the Txn was started from is never
// affected. A Txn must only be used by a single goroutine.
type Txn struct {
	root     *node
	size     int
	writable *simplelru.LRU[*node, struct{}]
}

// Txn starts a batch against the current version.
func (t Trie) Txn() *Txn {
	return &Txn{
		root: t.root,
		size: t.size,
	}
}

// track marks n as owned by this Txn.
func (txn *Txn) track(n *node) *node {
	if txn.writable == nil {
		lru, err := simplelru.NewLRU[*node, struct{}](defaultModifiedCache, nil)
		if err != nil {
			panic(err)
		}

		txn.writable = lru
	}

	txn.writable.Add(n, struct{}{})

	return n
}

// writeNode returns a node this Txn may mutate: n itself when the Txn
// already owns it, otherwise a tracked shallow copy.
func (txn *Txn) writeNode(n *node) *node {
	if txn.writable != nil {
		if _, ok := txn.writable.Get(n); ok {
			return n
		}
	}

	nc := &node{bitmap: n.bitmap, val: n.val, hasValue: n.hasValue}

	if len(n.children) > 0 {
		nc.children = make([]*node, len(n.children))
		copy(nc.children, n.children)
	}

	return txn.track(nc)
}

// Get reads through the uncommitted state of the batch.
func (txn *Txn) Get(key string) (any, bool) {
	cur := txn.root
	if cur == nil {
		return nil, false
	}

	for i := 0; i < len(key); i++ {
		if cur = cur.child(key[i]); cur == nil {
			return nil, false
		}
	}

	if !cur.hasValue {
		return nil, false
	}

	return cur.val, true
}

// Put maps key to val in the batch, overwriting any previous mapping.
func (txn *Txn) Put(key string, val any) {
	root := txn.root
	if root == nil {
		root = txn.track(&node{})
	}

	newRoot, existed := txn.insert(root, key, val)

	txn.root = newRoot
	if !existed {
		txn.size++
	}
}

func (txn *Txn) insert(n *node, key string, val any) (*node, bool) {
	if key == "" {
		nc := txn.writeNode(n)

		existed := nc.hasValue
		nc.val = val
		nc.hasValue = true

		return nc, existed
	}

	next := n.child(key[0])
	if next == nil {
		next = txn.track(&node{})
	}

	sub, existed := txn.insert(next, key[1:], val)

	nc := txn.writeNode(n)
	nc.setChild(key[0], sub)

	return nc, existed
}

// Remove unmaps key in the batch and reports whether it was mapped.
func (txn *Txn) Remove(key string) bool {
	if txn.root == nil {
		return false
	}

	newRoot, found := txn.delete(txn.root, key)
	if !found {
		return false
	}

	txn.root = newRoot
	txn.size--

	return true
}

func (txn *Txn) delete(n *node, key string) (*node, bool) {
	if key == "" {
		if !n.hasValue {
			return n, false
		}

		if len(n.children) == 0 {
			return nil, true
		}

		nc := txn.writeNode(n)
		nc.val = nil
		nc.hasValue = false

		return nc, true
	}

	next := n.child(key[0])
	if next == nil {
		return n, false
	}

	sub, found := txn.delete(next, key[1:])
	if !found {
		return n, false
	}

	nc := txn.writeNode(n)

	if sub == nil {
		nc.removeChild(key[0])
	} else {
		nc.setChild(key[0], sub)
	}

	if nc.empty() {
		return nil, true
	}

	return nc, true
}

// Len returns the number of keys in the uncommitted state.
func (txn *Txn) Len() int {
	return txn.size
}

// Commit publishes the batch as a new immutable version. The writable set
// is dropped, freezing every node the Txn built; the Txn may keep being
// used afterwards, cloning again before any further mutation.
func (txn *Txn) Commit() Trie {
	txn.writable = nil

	return Trie{root: txn.root, size: txn.size}
}
