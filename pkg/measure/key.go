package measure

import (
	"fmt"

	"github.com/langlichong/sonarqube/pkg/component"
	"github.com/langlichong/sonarqube/pkg/metric"
)

// Key is the composite index of one stored measure: the component's derived
// reference string, the metric key, and the optional dimension. Two keys are
// equal iff all fields match; the zero-valued Dimension marks the absent
// dimension.
type Key struct {
	ComponentRef string
	MetricKey    string
	Dim          Dimension
}

// KeyOf derives the key a measure is stored under.
func KeyOf(c *component.Component, m metric.Metric, dim Dimension) Key {
	return Key{ComponentRef: c.Reference(), MetricKey: m.Key, Dim: dim}
}

// String renders the key for error messages.
func (k Key) String() string {
	return fmt.Sprintf("component ref=%s, metric key=%s, %s", k.ComponentRef, k.MetricKey, k.Dim)
}
