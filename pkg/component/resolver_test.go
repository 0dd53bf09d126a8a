package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingHolder counts how often the root is requested, to observe lazy
// builds.
type countingHolder struct {
	root  *Component
	calls int
}

func (h *countingHolder) Root() *Component {
	h.calls++

	return h.root
}

func TestTreeResolver(t *testing.T) {
	t.Parallel()

	t.Run("indexes_whole_tree", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewTreeResolver(reportTree())
		require.NoError(t, err)

		c, err := resolver.ByRef("4")
		require.NoError(t, err)
		assert.Equal(t, File, c.Type)
		assert.Equal(t, 4, c.Ref)
	})

	t.Run("duplicate_ref_fails_build", func(t *testing.T) {
		t.Parallel()

		root := &Component{Type: Project, Ref: 1, Children: []*Component{
			{Type: File, Ref: 2},
			{Type: File, Ref: 2},
		}}

		_, err := NewTreeResolver(root)
		assert.ErrorIs(t, err, ErrDuplicateRef)
	})

	t.Run("unknown_ref_fails_lookup", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewTreeResolver(reportTree())
		require.NoError(t, err)

		_, err = resolver.ByRef("99")
		assert.ErrorIs(t, err, ErrComponentNotFound)
	})

	t.Run("view_tree_indexed_by_keys", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewTreeResolver(viewTree())
		require.NoError(t, err)

		c, err := resolver.ByRef("pv2")
		require.NoError(t, err)
		assert.Equal(t, ProjectView, c.Type)
	})
}

func TestRootResolver(t *testing.T) {
	t.Parallel()

	t.Run("builds_on_first_lookup_then_caches", func(t *testing.T) {
		t.Parallel()

		holder := &countingHolder{root: reportTree()}
		resolver := NewRootResolver(holder)
		assert.Zero(t, holder.calls)

		_, err := resolver.ByRef("3")
		require.NoError(t, err)

		_, err = resolver.ByRef("5")
		require.NoError(t, err)

		assert.Equal(t, 1, holder.calls)
	})

	t.Run("ensure_built_is_idempotent", func(t *testing.T) {
		t.Parallel()

		holder := &countingHolder{root: reportTree()}
		resolver := NewRootResolver(holder)

		require.NoError(t, resolver.EnsureBuilt())
		require.NoError(t, resolver.EnsureBuilt())
		assert.Equal(t, 1, holder.calls)
	})

	t.Run("reset_reindexes_new_root", func(t *testing.T) {
		t.Parallel()

		holder := &countingHolder{root: reportTree()}
		resolver := NewRootResolver(holder)

		_, err := resolver.ByRef("1")
		require.NoError(t, err)

		holder.root = &Component{Type: Project, Ref: 7}
		resolver.Reset()

		c, err := resolver.ByRef("7")
		require.NoError(t, err)
		assert.Equal(t, 7, c.Ref)

		_, err = resolver.ByRef("1")
		assert.ErrorIs(t, err, ErrComponentNotFound)
	})

	t.Run("duplicate_ref_surfaces_on_lookup", func(t *testing.T) {
		t.Parallel()

		holder := &countingHolder{root: &Component{Type: Project, Ref: 1, Children: []*Component{
			{Type: File, Ref: 1},
		}}}
		resolver := NewRootResolver(holder)

		_, err := resolver.ByRef("1")
		assert.ErrorIs(t, err, ErrDuplicateRef)
	})
}
