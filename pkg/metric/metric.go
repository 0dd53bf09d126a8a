// Package metric holds the descriptors for the measurements a pass can
// produce, and the catalog they are looked up in by key.
package metric

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMetricNotFound reports a lookup for a key the catalog does not hold.
var ErrMetricNotFound = errors.New("metric not found")

// ErrDuplicateMetric reports a second registration of a metric key.
var ErrDuplicateMetric = errors.New("duplicate metric")

// ValueType is the declared type of a metric's values. The measure core
// treats values as opaque; the type is metadata for consumers.
type ValueType string

// Supported value types.
const (
	ValueInt    ValueType = "int"
	ValueLong   ValueType = "long"
	ValueDouble ValueType = "double"
	ValueBool   ValueType = "bool"
	ValueString ValueType = "string"
	ValueLevel  ValueType = "level"
	ValueData   ValueType = "data"
)

// valueTypes is the set of accepted value types.
var valueTypes = map[ValueType]struct{}{
	ValueInt:    {},
	ValueLong:   {},
	ValueDouble: {},
	ValueBool:   {},
	ValueString: {},
	ValueLevel:  {},
	ValueData:   {},
}

// Valid reports whether t is a supported value type.
func (t ValueType) Valid() bool {
	_, ok := valueTypes[t]

	return ok
}

// Metric describes one measurement definition. Read-only to the measure
// core.
type Metric struct {
	// Key is the unique machine-readable identifier.
	Key string

	// Name is the human-readable display name.
	Name string

	// Type declares the value type of measures recorded for this metric.
	Type ValueType
}

// Catalog indexes metrics by key. Built before a pass by a single writer,
// read-only thereafter.
type Catalog struct {
	byKey map[string]Metric
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[string]Metric)}
}

// Add registers m. The key must be non-empty and not yet registered, and
// the value type must be supported.
func (c *Catalog) Add(m Metric) error {
	if m.Key == "" {
		return errors.New("metric key must not be empty")
	}

	if !m.Type.Valid() {
		return fmt.Errorf("metric %q has unsupported value type %q", m.Key, m.Type)
	}

	if _, ok := c.byKey[m.Key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMetric, m.Key)
	}

	c.byKey[m.Key] = m

	return nil
}

// GetByKey returns the metric registered under key.
func (c *Catalog) GetByKey(key string) (Metric, error) {
	m, ok := c.byKey[key]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q", ErrMetricNotFound, key)
	}

	return m, nil
}

// Keys returns all registered metric keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.byKey))

	for key := range c.byKey {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
