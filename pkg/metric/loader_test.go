package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
metrics:
  - key: ncloc
    name: Lines of Code
    type: int
  - key: coverage
    name: Coverage
    type: double
`

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid_document", func(t *testing.T) {
		t.Parallel()

		catalog, err := Load(strings.NewReader(sampleCatalog))
		require.NoError(t, err)
		assert.Equal(t, []string{"coverage", "ncloc"}, catalog.Keys())

		m, err := catalog.GetByKey("coverage")
		require.NoError(t, err)
		assert.Equal(t, ValueDouble, m.Type)
	})

	t.Run("unknown_field_rejected", func(t *testing.T) {
		t.Parallel()

		doc := "metrics:\n  - key: ncloc\n    type: int\n    domain: size\n"

		_, err := Load(strings.NewReader(doc))
		assert.Error(t, err)
	})

	t.Run("duplicate_key_rejected", func(t *testing.T) {
		t.Parallel()

		doc := "metrics:\n  - key: ncloc\n    type: int\n  - key: ncloc\n    type: int\n"

		_, err := Load(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrDuplicateMetric)
	})

	t.Run("bad_value_type_rejected", func(t *testing.T) {
		t.Parallel()

		doc := "metrics:\n  - key: ncloc\n    type: blob\n"

		_, err := Load(strings.NewReader(doc))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "metrics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	catalog, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Keys(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
