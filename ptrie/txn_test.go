package ptrie

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxn_Commit(t *testing.T) {
	t.Parallel()

	base := New(KV{"keep", 0}, KV{"drop", 1}, KV{"edit", 2})

	// the same ops, batched and one by one
	txn := base.Txn()
	txn.Put("added", 3)
	txn.Put("edit", 4)
	txn.Remove("drop")

	var (
		batched    = txn.Commit()
		sequential = Put(Put(Put(base, "added", 3), "edit", 4).Remove("drop"), "keep", 0)
	)

	assert.Equal(t, sequential.Keys(), batched.Keys())
	assert.Equal(t, sequential.Len(), batched.Len())

	for _, key := range batched.Keys() {
		exp, _ := Get[int](sequential, key)
		got, ok := Get[int](batched, key)

		require.True(t, ok, key)
		assert.Equal(t, exp, got, key)
	}

	// the base version is untouched
	assert.Equal(t, []string{"drop", "edit", "keep"}, base.Keys())

	val, ok := Get[int](base, "edit")
	require.True(t, ok)
	assert.Equal(t, 2, val)

	requireMinimal(t, batched)
}

func TestTxn_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	base := New(KV{"a", 1})
	txn := base.Txn()

	txn.Put("b", 2)
	txn.Remove("a")

	// visible inside the batch
	_, ok := txn.Get("a")
	assert.False(t, ok)

	val, ok := txn.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, val)

	assert.Equal(t, 1, txn.Len())

	// invisible outside until Commit
	_, ok = Get[int](base, "b")
	assert.False(t, ok)

	v, ok := Get[int](base, "a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestTxn_Remove(t *testing.T) {
	t.Parallel()

	txn := New(KV{"a", 1}, KV{"ab", 2}).Txn()

	assert.False(t, txn.Remove("missing"))
	assert.False(t, txn.Remove("abc"))
	assert.True(t, txn.Remove("ab"))
	assert.False(t, txn.Remove("ab"))

	tr := txn.Commit()

	assert.Equal(t, []string{"a"}, tr.Keys())
	requireMinimal(t, tr)

	// draining the batch prunes down to the empty root
	txn = tr.Txn()
	assert.True(t, txn.Remove("a"))

	empty := txn.Commit()

	assert.Nil(t, empty.root)
	assert.Equal(t, 0, empty.Len())
}

func TestTxn_WriteOnce(t *testing.T) {
	t.Parallel()

	txn := New(KV{"shared/one", 1}).Txn()

	txn.Put("shared/two", 2)
	root := txn.root

	// a second write through the same prefix reuses the Txn's own copies
	txn.Put("shared/three", 3)

	assert.Same(t, root, txn.root)
}

func TestTxn_CommitFreeze(t *testing.T) {
	t.Parallel()

	txn := New().Txn()
	txn.Put("a", 1)

	committed := txn.Commit()

	// mutations after Commit clone again and leave the version alone
	txn.Put("b", 2)
	txn.Put("a", 3)

	val, ok := Get[int](committed, "a")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = Get[int](committed, "b")
	assert.False(t, ok)

	second := txn.Commit()

	val2, ok := Get[int](second, "a")
	require.True(t, ok)
	assert.Equal(t, 3, val2)
}

func TestTxn_FakeData(t *testing.T) {
	t.Parallel()

	const (
		total = 10_000
		seed  = 987654321
	)

	var (
		txn   = New().Txn()
		state = map[string]string{}
		fake  = gofakeit.New(seed)
	)

	for i := 0; i < total; i++ {
		var (
			key = fake.HipsterSentence(3)
			val = fake.Name()
		)

		txn.Put(key, val)
		state[key] = val
	}

	tr := txn.Commit()

	require.Equal(t, len(state), tr.Len())
	requireMinimal(t, tr)

	for key, val := range state {
		actual, ok := Get[string](tr, key)

		assert.Equal(t, val, actual, key)
		assert.True(t, ok)
	}
}
