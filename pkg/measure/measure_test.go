package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimension(t *testing.T) {
	t.Parallel()

	t.Run("zero_value_is_absent", func(t *testing.T) {
		t.Parallel()

		var d Dimension
		assert.False(t, d.Scoped())
		assert.Equal(t, "no dimension", d.String())
	})

	t.Run("rule_and_characteristic_are_distinct", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, ForRule(1), ForCharacteristic(1))
		assert.True(t, ForRule(1).Scoped())
	})

	t.Run("absent_never_collides_with_real_ids", func(t *testing.T) {
		t.Parallel()

		// Any id, including zero and negatives, stays distinguishable
		// from the absent marker.
		for _, id := range []int{0, -1, -9876, 42} {
			assert.NotEqual(t, Dimension{}, ForRule(id))
			assert.NotEqual(t, Dimension{}, ForCharacteristic(id))
		}
	})
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	t.Run("constructors_set_dimension", func(t *testing.T) {
		t.Parallel()

		assert.False(t, New(1).Dimension().Scoped())
		assert.Equal(t, ForRule(7), NewForRule(1, 7).Dimension())
		assert.Equal(t, ForCharacteristic(3), NewForCharacteristic(1, 3).Dimension())
	})

	t.Run("equal_value_is_deep", func(t *testing.T) {
		t.Parallel()

		assert.True(t, New([]int{1, 2}).EqualValue(New([]int{1, 2})))
		assert.False(t, New([]int{1, 2}).EqualValue(New([]int{2, 1})))
		assert.False(t, New(1).EqualValue(New(2)))
	})

	t.Run("equal_value_ignores_dimension", func(t *testing.T) {
		t.Parallel()

		assert.True(t, NewForRule(5, 1).EqualValue(NewForRule(5, 2)))
	})
}
