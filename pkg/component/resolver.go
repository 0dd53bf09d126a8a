package component

import (
	"errors"
	"fmt"
)

// ErrDuplicateRef reports two nodes of one tree deriving the same reference
// string during indexing.
var ErrDuplicateRef = errors.New("duplicate component reference")

// ErrComponentNotFound reports a lookup for a reference no indexed node
// derives.
var ErrComponentNotFound = errors.New("component not found")

// RootHolder supplies the root of the tree a lazy resolver indexes.
type RootHolder interface {
	Root() *Component
}

// Resolver maps a derived reference string back to the component it
// designates. Implementations index at most one component per reference
// within one built tree.
type Resolver interface {
	// EnsureBuilt makes the index ready. Idempotent; callers invoke it
	// before every reference-based lookup.
	EnsureBuilt() error

	// ByRef returns the component indexed under ref.
	ByRef(ref string) (*Component, error)

	// Reset invalidates any built index so a new root can be indexed.
	Reset()
}

// indexTree crawls the tree once, pre-order, and indexes every visited node
// under its reference string. Report trees are crawled down to files, view
// trees down to project views.
func indexTree(root *Component) (map[string]*Component, error) {
	byRef := make(map[string]*Component)
	limit := ReportDepth(File).WithViewsDepth(ProjectView)

	crawlErr := Crawl(root, limit, func(c *Component) error {
		ref := c.Reference()
		if _, ok := byRef[ref]; ok {
			return fmt.Errorf("%w: tree contains more than one component with ref %q", ErrDuplicateRef, ref)
		}

		byRef[ref] = c

		return nil
	})
	if crawlErr != nil {
		return nil, crawlErr
	}

	return byRef, nil
}

// TreeResolver eagerly indexes a whole tree at construction.
type TreeResolver struct {
	byRef map[string]*Component
}

// NewTreeResolver indexes the tree rooted at root and returns the resolver.
func NewTreeResolver(root *Component) (*TreeResolver, error) {
	byRef, err := indexTree(root)
	if err != nil {
		return nil, err
	}

	return &TreeResolver{byRef: byRef}, nil
}

// EnsureBuilt is a no-op: the index is built at construction.
func (r *TreeResolver) EnsureBuilt() error { return nil }

// ByRef returns the component indexed under ref.
func (r *TreeResolver) ByRef(ref string) (*Component, error) {
	c, ok := r.byRef[ref]
	if !ok {
		return nil, fmt.Errorf("%w: no component for ref %q", ErrComponentNotFound, ref)
	}

	return c, nil
}

// Reset is a no-op: an eager index is bound to the tree it was built over.
func (r *TreeResolver) Reset() {}

// RootResolver defers indexing to the first lookup, then caches. Reset
// drops the cache so the holder's current root is indexed on next use.
type RootResolver struct {
	holder   RootHolder
	delegate *TreeResolver
}

// NewRootResolver returns a lazy resolver over holder.
func NewRootResolver(holder RootHolder) *RootResolver {
	return &RootResolver{holder: holder}
}

// EnsureBuilt indexes the holder's root unless an index is already cached.
func (r *RootResolver) EnsureBuilt() error {
	if r.delegate != nil {
		return nil
	}

	delegate, err := NewTreeResolver(r.holder.Root())
	if err != nil {
		return err
	}

	r.delegate = delegate

	return nil
}

// ByRef returns the component indexed under ref, building the index first
// if needed.
func (r *RootResolver) ByRef(ref string) (*Component, error) {
	buildErr := r.EnsureBuilt()
	if buildErr != nil {
		return nil, buildErr
	}

	return r.delegate.ByRef(ref)
}

// Reset invalidates the cached index.
func (r *RootResolver) Reset() {
	r.delegate = nil
}
