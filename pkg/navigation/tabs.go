package navigation

import "github.com/matzehuels/conductor/pkg/route"

// TabNavigator is the tab-container variant: it owns one independent [Path]
// per tab and a single modal [Coordinator] shared across tabs, since modals
// present on top of whichever tab is selected.
//
// Path operations apply to the selected tab's path; modal operations delegate
// to the shared coordinator.
type TabNavigator struct {
	paths       []*Path
	selected    int
	coordinator *Coordinator
}

// NewTabNavigator creates a tab navigator with tabs empty paths. At least one
// tab is always present.
func NewTabNavigator(tabs int, cfg Config) *TabNavigator {
	if tabs < 1 {
		tabs = 1
	}
	paths := make([]*Path, tabs)
	for i := range paths {
		paths[i] = NewPath()
	}
	return &TabNavigator{
		paths:       paths,
		coordinator: New(cfg),
	}
}

// TabCount returns the number of tabs.
func (t *TabNavigator) TabCount() int { return len(t.paths) }

// SelectedTab returns the index of the selected tab.
func (t *TabNavigator) SelectedTab() int { return t.selected }

// SelectTab switches the selected tab. Out-of-range indices are clamped.
func (t *TabNavigator) SelectTab(i int) {
	if i < 0 {
		i = 0
	}
	if i >= len(t.paths) {
		i = len(t.paths) - 1
	}
	t.selected = i
}

// PathAt returns the path of tab i, or nil if out of range.
func (t *TabNavigator) PathAt(i int) *Path {
	if i < 0 || i >= len(t.paths) {
		return nil
	}
	return t.paths[i]
}

// Path returns the selected tab's path.
func (t *TabNavigator) Path() *Path { return t.paths[t.selected] }

// Coordinator returns the shared transition coordinator.
func (t *TabNavigator) Coordinator() *Coordinator { return t.coordinator }

// Push appends a route to the selected tab's path.
func (t *TabNavigator) Push(r route.Route) { t.Path().Push(r) }

// Pop removes the selected tab's current screen.
func (t *TabNavigator) Pop() { t.Path().Pop() }

// PopToRoot clears the selected tab's path.
func (t *TabNavigator) PopToRoot() { t.Path().PopToRoot() }

// Depth returns the selected tab's path depth.
func (t *TabNavigator) Depth() int { return t.Path().Depth() }

// PresentSheet presents r as a sheet over the tab container.
func (t *TabNavigator) PresentSheet(r route.Route) { t.coordinator.PresentSheet(r) }

// PresentFullScreenCover presents r as a full-screen cover over the tab
// container.
func (t *TabNavigator) PresentFullScreenCover(r route.Route) {
	t.coordinator.PresentFullScreenCover(r)
}

// DismissModal dismisses the topmost modal.
func (t *TabNavigator) DismissModal() { t.coordinator.DismissModal() }

// DismissAllModals dismisses the entire shared modal stack.
func (t *TabNavigator) DismissAllModals() { t.coordinator.DismissAllModals() }

// IsModalPresented reports whether any modal is presented.
func (t *TabNavigator) IsModalPresented() bool { return t.coordinator.IsModalPresented() }

// ModalDepth returns the number of presented modals.
func (t *TabNavigator) ModalDepth() int { return t.coordinator.ModalDepth() }
