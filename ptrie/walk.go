package ptrie

import (
	"math/bits"
)

// Walk visits every key/value pair of this version in byte-lexicographic
// key order. The callback returns false to stop early; Walk reports whether
// it ran to completion.
func (t Trie) Walk(fn func(key string, val any) bool) bool {
	return walk(t.root, nil, fn)
}

func walk(n *node, prefix []byte, fn func(string, any) bool) bool {
	if n == nil {
		return true
	}

	if n.hasValue && !fn(string(prefix), n.val) {
		return false
	}

	// the child slice is rank-compacted, so scanning the bitmap words in
	// order visits children in byte order
	idx := 0

	for w := 0; w < len(n.bitmap); w++ {
		for word := n.bitmap[w]; word != 0; word &= word - 1 {
			b := byte(w<<6 | bits.TrailingZeros64(word))

			if !walk(n.children[idx], append(prefix, b), fn) {
				return false
			}

			idx++
		}
	}

	return true
}

// Keys returns every key of this version in byte-lexicographic order.
func (t Trie) Keys() []string {
	var keys []string

	t.Walk(func(key string, _ any) bool {
		keys = append(keys, key)

		return true
	})

	return keys
}
