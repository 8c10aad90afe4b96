package ptrie

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireMinimal asserts the pruning invariant: no reachable node holds
// neither a value nor children, and every bitmap agrees with its child
// slice.
func requireMinimal(t *testing.T, tr Trie) {
	t.Helper()

	requireMinimalNode(t, tr.root)
}

func requireMinimalNode(t *testing.T, n *node) {
	t.Helper()

	if n == nil {
		return
	}

	require.False(t, n.empty(), "reachable node with no value and no children")
	require.Equal(t, countBits(n), len(n.children))

	for _, c := range n.children {
		require.NotNil(t, c)
		requireMinimalNode(t, c)
	}
}

func countBits(n *node) int {
	var total int

	for _, word := range n.bitmap {
		total += bits.OnesCount64(word)
	}

	return total
}
