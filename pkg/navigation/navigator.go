package navigation

import "github.com/matzehuels/conductor/pkg/route"

// Navigator is the caller-facing facade for one navigation scope: a single
// back-stack of routes plus a modal stack mediated by a [Coordinator].
//
// Path mutations are synchronous; modal mutations funnel through the
// coordinator's state machine. Construct one Navigator per scope and drop it
// when the scope ends.
type Navigator struct {
	path        *Path
	coordinator *Coordinator
}

// NewNavigator creates a navigator with an empty path and a coordinator built
// from cfg.
func NewNavigator(cfg Config) *Navigator {
	return &Navigator{
		path:        NewPath(),
		coordinator: New(cfg),
	}
}

// Path returns the navigator's back-stack.
func (n *Navigator) Path() *Path { return n.path }

// Coordinator returns the navigator's transition coordinator.
func (n *Navigator) Coordinator() *Coordinator { return n.coordinator }

// Push appends a route to the back-stack.
func (n *Navigator) Push(r route.Route) { n.path.Push(r) }

// Pop removes the current screen. No-op on an empty path.
func (n *Navigator) Pop() { n.path.Pop() }

// PopN removes min(count, Depth) screens from the end of the path.
func (n *Navigator) PopN(count int) { n.path.PopN(count) }

// PopToRoot clears the back-stack.
func (n *Navigator) PopToRoot() { n.path.PopToRoot() }

// PopTo truncates the path to the first entry equal to r, reporting whether
// one was found.
func (n *Navigator) PopTo(r route.Route) bool { return n.path.PopTo(r) }

// Replace swaps the entire back-stack atomically.
func (n *Navigator) Replace(routes []route.Route) { n.path.Replace(routes) }

// Depth returns the number of routes on the back-stack.
func (n *Navigator) Depth() int { return n.path.Depth() }

// IsEmpty reports whether the back-stack is empty.
func (n *Navigator) IsEmpty() bool { return n.path.IsEmpty() }

// PresentSheet presents r as a sheet.
func (n *Navigator) PresentSheet(r route.Route) { n.coordinator.PresentSheet(r) }

// PresentFullScreenCover presents r as a full-screen cover.
func (n *Navigator) PresentFullScreenCover(r route.Route) {
	n.coordinator.PresentFullScreenCover(r)
}

// DismissModal dismisses the topmost modal.
func (n *Navigator) DismissModal() { n.coordinator.DismissModal() }

// DismissModals dismisses count modals from the top of the stack.
func (n *Navigator) DismissModals(count int) { n.coordinator.DismissModals(count) }

// DismissAllModals dismisses the entire modal stack.
func (n *Navigator) DismissAllModals() { n.coordinator.DismissAllModals() }

// DismissModalsAfter dismisses everything above the first entry matching r.
func (n *Navigator) DismissModalsAfter(r route.Route) bool {
	return n.coordinator.DismissModalsAfter(r)
}

// DismissModalsTo dismisses the first entry matching r and everything above it.
func (n *Navigator) DismissModalsTo(r route.Route) bool {
	return n.coordinator.DismissModalsTo(r)
}

// SwipeDismiss reports a gesture-driven dismissal from the render layer.
func (n *Navigator) SwipeDismiss(index int) { n.coordinator.SwipeDismiss(index) }

// IsModalPresented reports whether any modal is presented.
func (n *Navigator) IsModalPresented() bool { return n.coordinator.IsModalPresented() }

// ModalDepth returns the number of presented modals.
func (n *Navigator) ModalDepth() int { return n.coordinator.ModalDepth() }

// CurrentModal returns the topmost modal entry, if any.
func (n *Navigator) CurrentModal() (ModalEntry, bool) { return n.coordinator.CurrentModal() }
