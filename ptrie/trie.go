package ptrie

// Trie is an immutable handle on one version of the tree. The zero value is
// the empty map. Put and Remove never touch the version they are called on;
// they return a new handle sharing every untouched subtree with it, so any
// number of goroutines may keep reading old handles while new versions are
// built. Publishing "the current version" to other goroutines is the
// caller's business (an atomic pointer swap or a lock around the handle).
type Trie struct {
	root *node
	size int
}

type KV struct {
	Key string
	Val any
}

func New(init ...KV) Trie {
	var t Trie

	for _, kv := range init {
		t = Put(t, kv.Key, kv.Val)
	}

	return t
}

// Len returns the number of keys in this version.
func (t Trie) Len() int {
	return t.size
}

// Get returns the value stored for key, if it is mapped and holds a T.
// A missing key and a stored value of some other type both come back as
// (zero, false) - asking for the wrong type is safe, never a panic.
// The empty key addresses the root.
func Get[T any](t Trie, key string) (T, bool) {
	var zero T

	cur := t.root
	if cur == nil {
		return zero, false
	}

	for i := 0; i < len(key); i++ {
		if cur = cur.child(key[i]); cur == nil {
			return zero, false
		}
	}

	if !cur.hasValue {
		return zero, false
	}

	val, ok := cur.val.(T)
	if !ok {
		return zero, false // type mismatch is absence
	}

	return val, true
}

// Put returns a new version mapping key to val, overwriting any previous
// mapping. Exactly len(key)+1 nodes are allocated; every subtree hanging
// off the path is shared with t.
func Put[T any](t Trie, key string, val T) Trie {
	root := t.root
	if root == nil {
		root = &node{}
	}

	newRoot, existed := put(root, key, val)

	size := t.size
	if !existed {
		size++
	}

	return Trie{root: newRoot, size: size}
}

// put rebuilds the path for key below n and reports whether the key was
// already mapped.
func put(n *node, key string, val any) (*node, bool) {
	if key == "" {
		// terminal: take over the children by reference, drop any old value
		nc := &node{bitmap: n.bitmap, children: n.children, val: val, hasValue: true}

		return nc, n.hasValue
	}

	next := n.child(key[0])
	if next == nil {
		next = &node{}
	}

	sub, existed := put(next, key[1:], val)

	return n.withChild(key[0], sub), existed
}

// Remove returns a version without key. Removing an unmapped key is a
// no-op that hands back the receiver unchanged.
func (t Trie) Remove(key string) Trie {
	if t.root == nil {
		return t
	}

	newRoot, found := remove(t.root, key)
	if !found {
		return t
	}

	return Trie{root: newRoot, size: t.size - 1}
}

// remove returns the replacement for n - nil once the subtree holds neither
// a value nor a child, so the parent erases its entry and pruning cascades
// until an ancestor still has another child or its own value.
func remove(n *node, key string) (*node, bool) {
	if key == "" {
		if !n.hasValue {
			return n, false
		}

		if len(n.children) == 0 {
			return nil, true
		}

		// demote: keep the children, strip the value
		return &node{bitmap: n.bitmap, children: n.children}, true
	}

	next := n.child(key[0])
	if next == nil {
		return n, false // path breaks - nothing to do
	}

	sub, found := remove(next, key[1:])
	if !found {
		return n, false
	}

	if sub == nil {
		nc := n.withoutChild(key[0])
		if nc.empty() {
			return nil, true
		}

		return nc, true
	}

	return n.withChild(key[0], sub), true
}
