// Package component models the rooted analysis tree a processing pass runs
// over: typed nodes, depth-bounded pre-order traversal, and resolvers that
// index nodes by their derived reference string.
package component

import "strconv"

// Type identifies the kind of node in an analysis tree.
type Type int

// Report-scope types (identified by a numeric ref), deepest last.
// View-scope types (identified by a persistent key), deepest last.
const (
	Project Type = iota
	Module
	Directory
	File
	View
	Subview
	ProjectView
)

// typeNames maps each Type to its canonical name.
var typeNames = map[Type]string{
	Project:     "PROJECT",
	Module:      "MODULE",
	Directory:   "DIRECTORY",
	File:        "FILE",
	View:        "VIEW",
	Subview:     "SUBVIEW",
	ProjectView: "PROJECT_VIEW",
}

// String returns the canonical name of the type.
func (t Type) String() string {
	name, ok := typeNames[t]
	if !ok {
		return "UNKNOWN"
	}

	return name
}

// ReportScoped reports whether t belongs to a report tree. Report-scoped
// nodes carry a numeric ref valid for the duration of one pass.
func (t Type) ReportScoped() bool {
	return t >= Project && t <= File
}

// ViewScoped reports whether t belongs to an aggregate view tree.
// View-scoped nodes carry a persistent string key.
func (t Type) ViewScoped() bool {
	return t >= View && t <= ProjectView
}

// scopeDepth is the position of t within its own scope, root types first.
func (t Type) scopeDepth() int {
	if t.ViewScoped() {
		return int(t - View)
	}

	return int(t)
}

// Component is one node of a rooted analysis tree. The measure core never
// mutates a Component.
type Component struct {
	Type Type

	// Ref identifies report-scoped nodes. Valid only within one pass.
	Ref int

	// Key identifies view-scoped nodes across passes.
	Key string

	Children []*Component
}

// Reference derives the reference string a component is indexed under.
// Report-scoped nodes render their numeric ref; view-scoped nodes use their
// persistent key as-is. Deterministic: same component, same string.
func (c *Component) Reference() string {
	if c.Type.ReportScoped() {
		return strconv.Itoa(c.Ref)
	}

	return c.Key
}
