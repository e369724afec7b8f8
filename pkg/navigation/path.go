package navigation

import "github.com/matzehuels/conductor/pkg/route"

// Path is an ordered back-stack of routes for one navigation scope.
// The first entry is the root screen, the last is the current screen.
//
// All operations are synchronous and total: they never fail and the new state
// is observable immediately. Pushing the same route twice is legal and
// produces two distinct entries. Path is not safe for concurrent use; callers
// drive it from a single logical execution context (the UI loop).
type Path struct {
	routes []route.Route
}

// NewPath creates an empty navigation path.
func NewPath() *Path {
	return &Path{routes: make([]route.Route, 0)}
}

// Push appends a route to the end of the path.
func (p *Path) Push(r route.Route) {
	p.routes = append(p.routes, r)
}

// Pop removes the current screen. It is a no-op on an empty path.
func (p *Path) Pop() {
	if len(p.routes) == 0 {
		return
	}
	p.routes = p.routes[:len(p.routes)-1]
}

// PopN removes min(n, Depth) entries from the end of the path.
func (p *Path) PopN(n int) {
	if n <= 0 {
		return
	}
	if n > len(p.routes) {
		n = len(p.routes)
	}
	p.routes = p.routes[:len(p.routes)-n]
}

// PopToRoot removes every entry from the path.
func (p *Path) PopToRoot() {
	p.routes = p.routes[:0]
}

// PopTo truncates the path down to (and including) the first entry from the
// root that equals r. It reports whether a matching entry was found; when no
// entry matches the path is unchanged.
func (p *Path) PopTo(r route.Route) bool {
	for i, existing := range p.routes {
		if route.Equal(existing, r) {
			p.routes = p.routes[:i+1]
			return true
		}
	}
	return false
}

// Replace swaps the entire path atomically. The given slice is copied.
func (p *Path) Replace(routes []route.Route) {
	p.routes = append(p.routes[:0:0], routes...)
}

// Depth returns the number of routes on the path.
func (p *Path) Depth() int {
	return len(p.routes)
}

// IsEmpty reports whether the path has no entries.
func (p *Path) IsEmpty() bool {
	return len(p.routes) == 0
}

// Top returns the current screen's route, or nil for an empty path.
func (p *Path) Top() route.Route {
	if len(p.routes) == 0 {
		return nil
	}
	return p.routes[len(p.routes)-1]
}

// Routes returns a copy of the path, root first.
func (p *Path) Routes() []route.Route {
	return append([]route.Route(nil), p.routes...)
}
