package component

// DepthLimit bounds a crawl. Report trees and view trees descend through
// different type ladders, so the limit carries one bound per scope.
type DepthLimit struct {
	report Type
	views  Type
}

// ReportDepth starts a limit that descends report trees down to limit.
// The views bound defaults to ProjectView until overridden.
func ReportDepth(limit Type) DepthLimit {
	return DepthLimit{report: limit, views: ProjectView}
}

// WithViewsDepth returns a copy of d that descends view trees down to limit.
func (d DepthLimit) WithViewsDepth(limit Type) DepthLimit {
	d.views = limit

	return d
}

// Reaches reports whether a node of type t is within the bound.
func (d DepthLimit) Reaches(t Type) bool {
	if t.ViewScoped() {
		return t.scopeDepth() <= d.views.scopeDepth()
	}

	return t.scopeDepth() <= d.report.scopeDepth()
}

// Crawl visits the tree rooted at root in pre-order, skipping subtrees whose
// root lies below the depth limit. A visit error aborts the crawl and is
// returned unchanged.
func Crawl(root *Component, limit DepthLimit, visit func(*Component) error) error {
	if root == nil || !limit.Reaches(root.Type) {
		return nil
	}

	visitErr := visit(root)
	if visitErr != nil {
		return visitErr
	}

	for _, child := range root.Children {
		crawlErr := Crawl(child, limit, visit)
		if crawlErr != nil {
			return crawlErr
		}
	}

	return nil
}
