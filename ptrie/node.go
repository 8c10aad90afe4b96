package ptrie

import (
	"github.com/hideo55/go-popcount"
)

// node is an immutable trie vertex. Children are kept in a 256-bit presence
// bitmap plus a slice compacted in byte order, so the slice index of a child
// is the popcount rank of its byte. A published node is never mutated; the
// in-place helpers at the bottom are reserved for nodes a Txn still owns.
type node struct {
	bitmap   [4]uint64 // 256 bits, one per possible child byte
	children []*node
	val      any // type-erased payload, meaningful iff hasValue
	hasValue bool
}

func (n *node) has(b byte) bool {
	return n.bitmap[b>>6]&(1<<(b&0x3F)) != 0
}

// rank counts the children preceding b in byte order.
func (n *node) rank(b byte) int {
	var (
		ofs = b >> 6
		bit = uint64(1) << (b & 0x3F)
		cnt = popcount.Count(n.bitmap[ofs] & (bit - 1))
	)

	for i := byte(0); i < ofs; i++ {
		cnt += popcount.Count(n.bitmap[i])
	}

	return int(cnt)
}

func (n *node) child(b byte) *node {
	if n == nil || !n.has(b) {
		return nil
	}

	return n.children[n.rank(b)]
}

func (n *node) empty() bool {
	return len(n.children) == 0 && !n.hasValue
}

// withChild returns a copy of n in which b maps to c. Every other child and
// the value slot are carried over by reference, never duplicated.
func (n *node) withChild(b byte, c *node) *node {
	var (
		nc  = &node{bitmap: n.bitmap, val: n.val, hasValue: n.hasValue}
		idx = n.rank(b)
	)

	if n.has(b) {
		nc.children = make([]*node, len(n.children))
		copy(nc.children, n.children)
		nc.children[idx] = c

		return nc
	}

	nc.bitmap[b>>6] |= 1 << (b & 0x3F)
	nc.children = make([]*node, len(n.children)+1)
	copy(nc.children[:idx], n.children[:idx])
	nc.children[idx] = c
	copy(nc.children[idx+1:], n.children[idx:])

	return nc
}

// withoutChild returns a copy of n in which b is unmapped.
func (n *node) withoutChild(b byte) *node {
	nc := &node{bitmap: n.bitmap, val: n.val, hasValue: n.hasValue}

	if !n.has(b) {
		nc.children = n.children

		return nc
	}

	idx := n.rank(b)

	nc.bitmap[b>>6] &^= 1 << (b & 0x3F)
	nc.children = make([]*node, len(n.children)-1)
	copy(nc.children, n.children[:idx])
	copy(nc.children[idx:], n.children[idx+1:])

	return nc
}

// setChild maps b to c in place. Txn-owned nodes only.
func (n *node) setChild(b byte, c *node) {
	idx := n.rank(b)

	if n.has(b) {
		n.children[idx] = c

		return
	}

	n.bitmap[b>>6] |= 1 << (b & 0x3F)
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = c
}

// removeChild unmaps b in place. Txn-owned nodes only.
func (n *node) removeChild(b byte) {
	if !n.has(b) {
		return
	}

	idx := n.rank(b)

	n.bitmap[b>>6] &^= 1 << (b & 0x3F)
	n.children = append(n.children[:idx], n.children[idx+1:]...)
}
