package measure

import (
	"errors"
	"fmt"
)

// ErrAlreadySet reports a second write to a write-once key.
var ErrAlreadySet = errors.New("measure already set")

// ErrNotYetSet reports an update to a key with no prior add.
var ErrNotYetSet = errors.New("measure not yet set")

// ErrDimensionedBaseline reports a baseline measure carrying a rule or
// characteristic dimension.
var ErrDimensionedBaseline = errors.New("baseline measure can not carry a rule or characteristic")

// Store holds the measures of one pass in three key-indexed maps.
//
// baseline holds one fact per (component, metric) pair, inserted at most
// once and never dimensioned. raw holds the live current-pass values, at
// most one per exact key. initialRaw freezes the value each raw key held
// when it was first inserted; later updates touch raw only, so diffing raw
// against initialRaw isolates what changed after seeding.
//
// Mutations are atomic per key: a failed write leaves every map unchanged.
type Store struct {
	baseline   map[Key]Measure
	raw        map[Key]Measure
	initialRaw map[Key]Measure
}

// NewStore returns an empty store.
func NewStore() *Store {
	s := &Store{}
	s.Reset()

	return s
}

// Reset discards all measures. Called between passes, never during one.
func (s *Store) Reset() {
	s.baseline = make(map[Key]Measure)
	s.raw = make(map[Key]Measure)
	s.initialRaw = make(map[Key]Measure)
}

// IsEmpty reports whether no raw measure has been recorded.
func (s *Store) IsEmpty() bool {
	return len(s.raw) == 0
}

// AddBaseline inserts a baseline measure. The key must not be dimensioned
// and must not already be present.
func (s *Store) AddBaseline(k Key, m Measure) error {
	if k.Dim.Scoped() {
		return fmt.Errorf("%w (%s)", ErrDimensionedBaseline, k)
	}

	if _, ok := s.baseline[k]; ok {
		return fmt.Errorf("%w: a baseline measure can only be set once (%s)", ErrAlreadySet, k)
	}

	s.baseline[k] = m

	return nil
}

// Baseline returns the baseline measure stored under k, if any.
func (s *Store) Baseline(k Key) (Measure, bool) {
	m, ok := s.baseline[k]

	return m, ok
}

// Add establishes k in the raw set. The first insertion for a key also
// freezes the value into the initial snapshot.
func (s *Store) Add(k Key, m Measure) error {
	if _, ok := s.raw[k]; ok {
		return fmt.Errorf("%w: a raw measure can only be added once (%s)", ErrAlreadySet, k)
	}

	s.raw[k] = m

	if _, ok := s.initialRaw[k]; !ok {
		s.initialRaw[k] = m
	}

	return nil
}

// Update replaces the value stored under k. Key membership is unchanged:
// the key must have been established by a prior Add.
func (s *Store) Update(k Key, m Measure) error {
	if _, ok := s.raw[k]; !ok {
		return fmt.Errorf("%w: a raw measure can only be updated after it was added (%s)", ErrNotYetSet, k)
	}

	s.raw[k] = m

	return nil
}

// Raw returns the current raw measure stored under k, if any.
func (s *Store) Raw(k Key) (Measure, bool) {
	m, ok := s.raw[k]

	return m, ok
}

// RawByComponent returns the raw entries recorded for the component with
// the given reference string, across all metrics and dimensions.
func (s *Store) RawByComponent(ref string) map[Key]Measure {
	out := make(map[Key]Measure)

	for k, m := range s.raw {
		if k.ComponentRef == ref {
			out[k] = m
		}
	}

	return out
}

// AddedByComponent returns the raw entries for the component whose current
// value differs from the initial snapshot, or that have no snapshot
// counterpart at all.
func (s *Store) AddedByComponent(ref string) map[Key]Measure {
	out := make(map[Key]Measure)

	for k, m := range s.raw {
		if k.ComponentRef != ref {
			continue
		}

		initial, ok := s.initialRaw[k]
		if !ok || !m.EqualValue(initial) {
			out[k] = m
		}
	}

	return out
}
