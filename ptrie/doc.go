// Package ptrie defines a persistent (immutable, copy-on-write) prefix tree
// mapping byte-string keys to values of arbitrary types.
//
// Every update returns a new Trie handle and leaves the old one intact: the
// new version shares, by reference, every subtree not on the updated key's
// path, so an update of a key of length K allocates K+1 nodes no matter how
// large the tree is.
//
// Versions:
// --------
//
// After t2 := Put(t1, "ab", x) the two versions overlap like this:
//
//	t1 -> [a] ----+---- [ab]
//	       |      |
//	t2 -> [a]' ---+---- [ab]'=x
//	       |
//	       `-- [ax] ... (subtrees off the path are the same objects)
//
// t1 keeps answering exactly as before, indefinitely. That makes every
// version a frozen snapshot: readers holding old handles need no locks.
// Swapping a shared "current version" pointer is up to the caller.
//
// Node layout:
// -----------
//
// A node holds an optional type-erased value and its children as
//
//   - bitmap   - [4]uint64, one bit per possible next byte;
//   - children - a slice compacted in byte order, indexed by popcount rank.
//
// Values are stored type-erased; Get[T] recovers the concrete type with a
// checked assertion, and a mismatch reads as "not found", never a panic.
//
// The Txn type batches many updates into one new version, cloning each node
// at most once along the way.
package ptrie
