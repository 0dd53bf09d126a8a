package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(ref, metricKey string, dim Dimension) Key {
	return Key{ComponentRef: ref, MetricKey: metricKey, Dim: dim}
}

func TestStoreBaseline(t *testing.T) {
	t.Parallel()

	t.Run("write_once", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("1", "ncloc", Dimension{})

		require.NoError(t, store.AddBaseline(k, New(100)))

		got, ok := store.Baseline(k)
		require.True(t, ok)
		assert.Equal(t, 100, got.Value())

		err := store.AddBaseline(k, New(200))
		assert.ErrorIs(t, err, ErrAlreadySet)

		got, _ = store.Baseline(k)
		assert.Equal(t, 100, got.Value(), "failed write must not change the stored value")
	})

	t.Run("dimensioned_key_rejected", func(t *testing.T) {
		t.Parallel()

		store := NewStore()

		err := store.AddBaseline(key("1", "ncloc", ForRule(3)), New(1))
		assert.ErrorIs(t, err, ErrDimensionedBaseline)

		_, ok := store.Baseline(key("1", "ncloc", ForRule(3)))
		assert.False(t, ok)
	})
}

func TestStoreRaw(t *testing.T) {
	t.Parallel()

	t.Run("add_establishes_key_once", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("2", "ncloc", Dimension{})

		require.NoError(t, store.Add(k, New(42)))

		err := store.Add(k, New(43))
		assert.ErrorIs(t, err, ErrAlreadySet)

		got, ok := store.Raw(k)
		require.True(t, ok)
		assert.Equal(t, 42, got.Value())
	})

	t.Run("same_metric_distinct_dimensions_coexist", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		require.NoError(t, store.Add(key("2", "violations", ForRule(1)), New(3)))
		require.NoError(t, store.Add(key("2", "violations", ForRule(2)), New(5)))
		require.NoError(t, store.Add(key("2", "violations", ForCharacteristic(1)), New(8)))

		assert.Len(t, store.RawByComponent("2"), 3)
	})

	t.Run("update_requires_prior_add", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("2", "ncloc", Dimension{})

		err := store.Update(k, New(43))
		assert.ErrorIs(t, err, ErrNotYetSet)

		_, ok := store.Raw(k)
		assert.False(t, ok)
	})

	t.Run("update_replaces_value_not_membership", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("2", "ncloc", Dimension{})

		require.NoError(t, store.Add(k, New(42)))
		require.NoError(t, store.Update(k, New(43)))

		got, ok := store.Raw(k)
		require.True(t, ok)
		assert.Equal(t, 43, got.Value())
		assert.Len(t, store.RawByComponent("2"), 1)
	})
}

func TestStoreAddedView(t *testing.T) {
	t.Parallel()

	t.Run("fresh_add_is_its_own_snapshot", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		require.NoError(t, store.Add(key("2", "ncloc", Dimension{}), New(42)))

		assert.Empty(t, store.AddedByComponent("2"))
	})

	t.Run("update_surfaces_in_added_view", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("2", "ncloc", Dimension{})

		require.NoError(t, store.Add(k, New(42)))
		require.NoError(t, store.Update(k, New(43)))

		added := store.AddedByComponent("2")
		require.Len(t, added, 1)
		assert.Equal(t, 43, added[k].Value())
	})

	t.Run("update_back_to_snapshot_value_disappears", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k := key("2", "ncloc", Dimension{})

		require.NoError(t, store.Add(k, New(42)))
		require.NoError(t, store.Update(k, New(43)))
		require.NoError(t, store.Update(k, New(42)))

		assert.Empty(t, store.AddedByComponent("2"))
	})

	t.Run("scoped_to_one_component", func(t *testing.T) {
		t.Parallel()

		store := NewStore()
		k2 := key("2", "ncloc", Dimension{})
		k3 := key("3", "ncloc", Dimension{})

		require.NoError(t, store.Add(k2, New(1)))
		require.NoError(t, store.Add(k3, New(1)))
		require.NoError(t, store.Update(k3, New(2)))

		assert.Empty(t, store.AddedByComponent("2"))
		assert.Len(t, store.AddedByComponent("3"), 1)
	})
}

func TestStoreLifecycle(t *testing.T) {
	t.Parallel()

	store := NewStore()
	assert.True(t, store.IsEmpty())

	require.NoError(t, store.Add(key("1", "ncloc", Dimension{}), New(1)))
	require.NoError(t, store.AddBaseline(key("1", "ncloc", Dimension{}), New(2)))
	assert.False(t, store.IsEmpty())

	store.Reset()
	assert.True(t, store.IsEmpty())

	_, ok := store.Baseline(key("1", "ncloc", Dimension{}))
	assert.False(t, ok)

	// A reset store accepts the same keys again.
	assert.NoError(t, store.Add(key("1", "ncloc", Dimension{}), New(1)))
}
