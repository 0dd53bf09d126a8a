// Package measure implements the in-memory measure repository for one
// processing pass: write-once baseline and raw value stores keyed by
// component, metric, and an optional rule or characteristic dimension.
package measure

import (
	"fmt"
	"reflect"
)

// DimensionKind tags the optional secondary dimension of a measure.
type DimensionKind uint8

// Dimension kinds. A measure carries at most one of rule or characteristic.
const (
	DimensionNone DimensionKind = iota
	DimensionRule
	DimensionCharacteristic
)

// Dimension is an explicit tagged option: either absent, or a rule id, or a
// characteristic id. The zero value is the absent dimension, distinguishable
// from every legitimate id.
type Dimension struct {
	Kind DimensionKind
	ID   int
}

// ForRule returns the dimension scoping a measure to one rule.
func ForRule(id int) Dimension {
	return Dimension{Kind: DimensionRule, ID: id}
}

// ForCharacteristic returns the dimension scoping a measure to one
// characteristic.
func ForCharacteristic(id int) Dimension {
	return Dimension{Kind: DimensionCharacteristic, ID: id}
}

// Scoped reports whether the dimension is present.
func (d Dimension) Scoped() bool {
	return d.Kind != DimensionNone
}

// String renders the dimension for error messages.
func (d Dimension) String() string {
	switch d.Kind {
	case DimensionRule:
		return fmt.Sprintf("rule=%d", d.ID)
	case DimensionCharacteristic:
		return fmt.Sprintf("characteristic=%d", d.ID)
	default:
		return "no dimension"
	}
}

// Measure is an immutable computed value, optionally scoped to one rule or
// characteristic. Produced by pipeline stages, read-only thereafter.
type Measure struct {
	value any
	dim   Dimension
}

// New returns an unscoped measure holding value.
func New(value any) Measure {
	return Measure{value: value}
}

// NewForRule returns a measure holding value, scoped to rule ruleID.
func NewForRule(value any, ruleID int) Measure {
	return Measure{value: value, dim: ForRule(ruleID)}
}

// NewForCharacteristic returns a measure holding value, scoped to
// characteristic characteristicID.
func NewForCharacteristic(value any, characteristicID int) Measure {
	return Measure{value: value, dim: ForCharacteristic(characteristicID)}
}

// Value returns the computed value.
func (m Measure) Value() any {
	return m.value
}

// Dimension returns the optional scoping dimension.
func (m Measure) Dimension() Dimension {
	return m.dim
}

// EqualValue reports whether two measures hold deeply equal values. The
// dimension is not compared; measures under one key share it by
// construction.
func (m Measure) EqualValue(other Measure) bool {
	return reflect.DeepEqual(m.value, other.value)
}

// String renders the measure for error messages and logs.
func (m Measure) String() string {
	if !m.dim.Scoped() {
		return fmt.Sprintf("Measure(%v)", m.value)
	}

	return fmt.Sprintf("Measure(%v, %s)", m.value, m.dim)
}
