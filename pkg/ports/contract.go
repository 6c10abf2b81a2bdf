package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLorebookStoreContract runs a suite of tests to verify that a LorebookStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunLorebookStoreContract(t *testing.T, store LorebookStore) {
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		data := []byte(`{"lorebookVersion":3,"entries":[]}`)

		err := store.Write(ctx, "world", data)
		require.NoError(t, err, "Write should not return error")

		loaded, err := store.Read(ctx, "world")
		require.NoError(t, err, "Read should not return error")
		assert.Equal(t, data, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "draft", []byte("one")))
		require.NoError(t, store.Write(ctx, "draft", []byte("two")))

		loaded, err := store.Read(ctx, "draft")
		require.NoError(t, err)
		assert.Equal(t, "two", string(loaded))
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Empty Name", func(t *testing.T) {
		assert.Error(t, store.Write(ctx, "", []byte("x")))
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"draft", "world"}, names)
	})
}
