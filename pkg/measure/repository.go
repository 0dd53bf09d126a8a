package measure

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/langlichong/sonarqube/pkg/component"
	"github.com/langlichong/sonarqube/pkg/metric"
)

// ErrAmbiguousMeasure reports a singular-result query matching more than
// one measure.
var ErrAmbiguousMeasure = errors.New("more than one measure matches")

// errNoProviders guards the reference-based convenience operations of a
// repository constructed without a resolver and catalog.
var errNoProviders = errors.New("repository was not created with a component resolver and a metric catalog")

// Repository is the facade a producing pipeline records measures through
// and consumers read them from. One repository serves one pass: a single
// synchronous writer, no locking, explicit Reset between passes.
type Repository struct {
	resolver component.Resolver
	catalog  *metric.Catalog
	store    *Store
}

// NewRepository returns a repository serving component-based operations
// only. Reference-based operations fail until providers are configured.
func NewRepository() *Repository {
	return &Repository{store: NewStore()}
}

// NewRepositoryWithProviders returns a repository whose reference-based
// operations resolve components through resolver and metrics through
// catalog. The resolver may be lazy; it is built on first reference-based
// use.
func NewRepositoryWithProviders(resolver component.Resolver, catalog *metric.Catalog) *Repository {
	return &Repository{resolver: resolver, catalog: catalog, store: NewStore()}
}

// Reset discards all measures and invalidates the resolver index so a new
// pass can be recorded.
func (r *Repository) Reset() {
	r.store.Reset()

	if r.resolver != nil {
		r.resolver.Reset()
	}
}

// IsEmpty reports whether no raw measure has been recorded.
func (r *Repository) IsEmpty() bool {
	return r.store.IsEmpty()
}

// AddBaseMeasure inserts the baseline value for (c, m). The measure must
// not carry a dimension, and the pair must not have a baseline yet.
func (r *Repository) AddBaseMeasure(c *component.Component, m metric.Metric, ms Measure) error {
	if ms.Dimension().Scoped() {
		return fmt.Errorf("%w (component ref=%s, metric key=%s)", ErrDimensionedBaseline, c.Reference(), m.Key)
	}

	return r.store.AddBaseline(KeyOf(c, m, Dimension{}), ms)
}

// GetBaseMeasure returns the baseline value for (c, m), if any.
func (r *Repository) GetBaseMeasure(c *component.Component, m metric.Metric) (Measure, bool) {
	return r.store.Baseline(KeyOf(c, m, Dimension{}))
}

// Add records a raw measure under the key derived from c, m, and the
// measure's own dimension. The key must not have been added before; its
// first insertion also becomes the initial snapshot the added-measures view
// diffs against.
func (r *Repository) Add(c *component.Component, m metric.Metric, ms Measure) error {
	return r.store.Add(KeyOf(c, m, ms.Dimension()), ms)
}

// Update replaces the raw value under the key derived from c, m, and the
// measure's dimension. The key must have been established by a prior Add.
func (r *Repository) Update(c *component.Component, m metric.Metric, ms Measure) error {
	return r.store.Update(KeyOf(c, m, ms.Dimension()), ms)
}

// GetRawMeasure returns the undimensioned raw value for (c, m), if any.
func (r *Repository) GetRawMeasure(c *component.Component, m metric.Metric) (Measure, bool) {
	return r.store.Raw(KeyOf(c, m, Dimension{}))
}

// GetRawRuleMeasure returns the raw value for (c, m) scoped to ruleID, if
// any.
func (r *Repository) GetRawRuleMeasure(c *component.Component, m metric.Metric, ruleID int) (Measure, bool) {
	return r.store.Raw(KeyOf(c, m, ForRule(ruleID)))
}

// GetRawCharacteristicMeasure returns the raw value for (c, m) scoped to
// characteristicID, if any.
func (r *Repository) GetRawCharacteristicMeasure(c *component.Component, m metric.Metric, characteristicID int) (Measure, bool) {
	return r.store.Raw(KeyOf(c, m, ForCharacteristic(characteristicID)))
}

// GetRawMeasures returns every raw measure recorded for c, grouped by
// metric key. Metrics recorded under several dimensions yield one measure
// per dimension, in deterministic order.
func (r *Repository) GetRawMeasures(c *component.Component) map[string][]Measure {
	return groupByMetric(r.store.RawByComponent(c.Reference()))
}

// GetAddedRawMeasures returns the raw measures for c whose current value
// differs from the initial snapshot taken at first insertion, grouped by
// metric key. A value that was added and never updated does not appear: it
// is its own snapshot.
func (r *Repository) GetAddedRawMeasures(c *component.Component) map[string][]Measure {
	return groupByMetric(r.store.AddedByComponent(c.Reference()))
}

// GetAddedRawMeasuresForMetric returns the added raw measures for c
// restricted to one metric key, in deterministic order.
func (r *Repository) GetAddedRawMeasuresForMetric(c *component.Component, metricKey string) []Measure {
	return r.GetAddedRawMeasures(c)[metricKey]
}

// GetAddedRawMeasure returns the single added raw measure for c and
// metricKey. It fails when the metric turns out to be multi-valued for the
// component.
func (r *Repository) GetAddedRawMeasure(c *component.Component, metricKey string) (Measure, bool, error) {
	matches := r.GetAddedRawMeasuresForMetric(c, metricKey)

	switch len(matches) {
	case 0:
		return Measure{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		return Measure{}, false, fmt.Errorf("%w: metric %q for component %q", ErrAmbiguousMeasure, metricKey, c.Reference())
	}
}

// AddBaseMeasureByRef is AddBaseMeasure with the component resolved by its
// numeric ref and the metric by its key.
func (r *Repository) AddBaseMeasureByRef(componentRef int, metricKey string, ms Measure) error {
	c, m, err := r.resolve(componentRef, metricKey)
	if err != nil {
		return err
	}

	return r.AddBaseMeasure(c, m, ms)
}

// AddRawMeasureByRef is Add with the component resolved by its numeric ref
// and the metric by its key.
func (r *Repository) AddRawMeasureByRef(componentRef int, metricKey string, ms Measure) error {
	c, m, err := r.resolve(componentRef, metricKey)
	if err != nil {
		return err
	}

	return r.Add(c, m, ms)
}

// UpdateRawMeasureByRef is Update with the component resolved by its
// numeric ref and the metric by its key.
func (r *Repository) UpdateRawMeasureByRef(componentRef int, metricKey string, ms Measure) error {
	c, m, err := r.resolve(componentRef, metricKey)
	if err != nil {
		return err
	}

	return r.Update(c, m, ms)
}

// GetRawMeasuresByRef is GetRawMeasures with the component resolved by its
// numeric ref.
func (r *Repository) GetRawMeasuresByRef(componentRef int) (map[string][]Measure, error) {
	c, err := r.resolveComponent(componentRef)
	if err != nil {
		return nil, err
	}

	return r.GetRawMeasures(c), nil
}

// GetAddedRawMeasuresByRef is GetAddedRawMeasures with the component
// resolved by its numeric ref.
func (r *Repository) GetAddedRawMeasuresByRef(componentRef int) (map[string][]Measure, error) {
	c, err := r.resolveComponent(componentRef)
	if err != nil {
		return nil, err
	}

	return r.GetAddedRawMeasures(c), nil
}

// GetAddedRawMeasureByRef is GetAddedRawMeasure with the component resolved
// by its numeric ref.
func (r *Repository) GetAddedRawMeasureByRef(componentRef int, metricKey string) (Measure, bool, error) {
	c, err := r.resolveComponent(componentRef)
	if err != nil {
		return Measure{}, false, err
	}

	return r.GetAddedRawMeasure(c, metricKey)
}

// resolveComponent looks the component up by its numeric ref, building the
// resolver index on first use.
func (r *Repository) resolveComponent(componentRef int) (*component.Component, error) {
	if r.resolver == nil {
		return nil, errNoProviders
	}

	buildErr := r.resolver.EnsureBuilt()
	if buildErr != nil {
		return nil, buildErr
	}

	return r.resolver.ByRef(strconv.Itoa(componentRef))
}

// resolve looks up both the component and the metric of a reference-based
// operation.
func (r *Repository) resolve(componentRef int, metricKey string) (*component.Component, metric.Metric, error) {
	if r.catalog == nil {
		return nil, metric.Metric{}, errNoProviders
	}

	c, componentErr := r.resolveComponent(componentRef)
	if componentErr != nil {
		return nil, metric.Metric{}, componentErr
	}

	m, metricErr := r.catalog.GetByKey(metricKey)
	if metricErr != nil {
		return nil, metric.Metric{}, metricErr
	}

	return c, m, nil
}

// groupByMetric regroups key-indexed entries by metric key, each group
// sorted by dimension for deterministic iteration.
func groupByMetric(entries map[Key]Measure) map[string][]Measure {
	out := make(map[string][]Measure, len(entries))

	for k, m := range entries {
		out[k.MetricKey] = append(out[k.MetricKey], m)
	}

	for _, group := range out {
		sort.Slice(group, func(i, j int) bool {
			di, dj := group[i].Dimension(), group[j].Dimension()
			if di.Kind != dj.Kind {
				return di.Kind < dj.Kind
			}

			return di.ID < dj.ID
		})
	}

	return out
}
