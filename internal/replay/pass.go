// Package replay loads recorded measure passes from YAML documents and
// applies them, operation by operation, to a measure repository.
package replay

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/langlichong/sonarqube/pkg/component"
	"github.com/langlichong/sonarqube/pkg/measure"
	"github.com/langlichong/sonarqube/pkg/metric"
)

// Operation kinds a pass document may record.
const (
	OpBase   = "base"
	OpAdd    = "add"
	OpUpdate = "update"
)

// ErrUnknownOp reports an operation kind outside base/add/update.
var ErrUnknownOp = errors.New("unknown operation")

// Node is the YAML shape of one component tree node.
type Node struct {
	Type     string `yaml:"type"`
	Ref      int    `yaml:"ref,omitempty"`
	Key      string `yaml:"key,omitempty"`
	Children []Node `yaml:"children,omitempty"`
}

// MetricDef is the YAML shape of one catalog entry.
type MetricDef struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
}

// Operation is the YAML shape of one recorded repository mutation. At most
// one of rule_id and characteristic_id may be set.
type Operation struct {
	Op               string `yaml:"op"`
	Ref              int    `yaml:"ref"`
	Metric           string `yaml:"metric"`
	Value            any    `yaml:"value"`
	RuleID           *int   `yaml:"rule_id,omitempty"`
	CharacteristicID *int   `yaml:"characteristic_id,omitempty"`
}

// Pass is a full recorded pass: the component tree it ran over, the metric
// catalog it produced values for, and the ordered mutations.
type Pass struct {
	Tree       Node        `yaml:"tree"`
	Metrics    []MetricDef `yaml:"metrics"`
	Operations []Operation `yaml:"operations"`
}

// Load parses a pass document from r. Unknown fields are rejected.
func Load(r io.Reader) (*Pass, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var pass Pass

	decodeErr := decoder.Decode(&pass)
	if decodeErr != nil {
		return nil, fmt.Errorf("decode pass document: %w", decodeErr)
	}

	return &pass, nil
}

// LoadFile parses the pass document at path.
func LoadFile(path string) (*Pass, error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("open pass document: %w", openErr)
	}
	defer f.Close()

	return Load(f)
}

// typeByName maps document type names to component types.
var typeByName = map[string]component.Type{
	"PROJECT":      component.Project,
	"MODULE":       component.Module,
	"DIRECTORY":    component.Directory,
	"FILE":         component.File,
	"VIEW":         component.View,
	"SUBVIEW":      component.Subview,
	"PROJECT_VIEW": component.ProjectView,
}

// build materializes the component subtree described by n.
func (n Node) build() (*component.Component, error) {
	typ, ok := typeByName[n.Type]
	if !ok {
		return nil, fmt.Errorf("unknown component type %q", n.Type)
	}

	c := &component.Component{Type: typ, Ref: n.Ref, Key: n.Key}

	for _, child := range n.Children {
		built, err := child.build()
		if err != nil {
			return nil, err
		}

		c.Children = append(c.Children, built)
	}

	return c, nil
}

// measure converts the operation's value and optional dimension into a
// Measure.
func (o Operation) measure() (measure.Measure, error) {
	if o.RuleID != nil && o.CharacteristicID != nil {
		return measure.Measure{}, fmt.Errorf("operation on metric %q carries both rule_id and characteristic_id", o.Metric)
	}

	switch {
	case o.RuleID != nil:
		return measure.NewForRule(o.Value, *o.RuleID), nil
	case o.CharacteristicID != nil:
		return measure.NewForCharacteristic(o.Value, *o.CharacteristicID), nil
	default:
		return measure.New(o.Value), nil
	}
}

// Session is a materialized pass: the built tree, its eager resolver, the
// catalog, and the repository the operations apply to.
type Session struct {
	Root    *component.Component
	Catalog *metric.Catalog
	Repo    *measure.Repository
}

// Build materializes the pass without applying any operation.
func (p *Pass) Build() (*Session, error) {
	root, buildErr := p.Tree.build()
	if buildErr != nil {
		return nil, fmt.Errorf("build component tree: %w", buildErr)
	}

	resolver, resolveErr := component.NewTreeResolver(root)
	if resolveErr != nil {
		return nil, fmt.Errorf("index component tree: %w", resolveErr)
	}

	catalog := metric.NewCatalog()

	for _, def := range p.Metrics {
		addErr := catalog.Add(metric.Metric{Key: def.Key, Name: def.Name, Type: metric.ValueType(def.Type)})
		if addErr != nil {
			return nil, fmt.Errorf("build metric catalog: %w", addErr)
		}
	}

	return &Session{
		Root:    root,
		Catalog: catalog,
		Repo:    measure.NewRepositoryWithProviders(resolver, catalog),
	}, nil
}

// Apply performs one recorded mutation against the session's repository.
func (s *Session) Apply(op Operation, logger *slog.Logger) error {
	ms, measureErr := op.measure()
	if measureErr != nil {
		return measureErr
	}

	var applyErr error

	switch op.Op {
	case OpBase:
		applyErr = s.Repo.AddBaseMeasureByRef(op.Ref, op.Metric, ms)
	case OpAdd:
		applyErr = s.Repo.AddRawMeasureByRef(op.Ref, op.Metric, ms)
	case OpUpdate:
		applyErr = s.Repo.UpdateRawMeasureByRef(op.Ref, op.Metric, ms)
	default:
		applyErr = fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}

	if applyErr != nil {
		return applyErr
	}

	logger.Debug("applied measure operation",
		"op", op.Op,
		"ref", op.Ref,
		"metric", op.Metric,
		"measure", ms.String())

	return nil
}

// Replay builds the pass and applies its operations in order, stopping at
// the first failure. A failed operation indicates a defect in the recorded
// pipeline, so nothing after it is applied.
func (p *Pass) Replay(logger *slog.Logger) (*Session, error) {
	session, buildErr := p.Build()
	if buildErr != nil {
		return nil, buildErr
	}

	for i, op := range p.Operations {
		applyErr := session.Apply(op, logger)
		if applyErr != nil {
			return nil, fmt.Errorf("operation %d (%s %s on ref %d): %w", i+1, op.Op, op.Metric, op.Ref, applyErr)
		}
	}

	logger.Info("pass replayed", "operations", len(p.Operations))

	return session, nil
}
