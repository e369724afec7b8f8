package navigation

import (
	"sync"
	"time"

	"github.com/matzehuels/conductor/pkg/observability"
	"github.com/matzehuels/conductor/pkg/route"
)

// Tunable defaults for [Config].
const (
	// DefaultTransitionDuration is how long a visual transition takes to
	// settle. The value is opaque to the engine; it only paces scheduling.
	DefaultTransitionDuration = 350 * time.Millisecond

	// DefaultMaxRetryAttempts bounds how often a dismiss or swipe request
	// blocked by an in-flight transition is re-scheduled before being dropped.
	DefaultMaxRetryAttempts = 5

	// DefaultMaxPendingModals bounds the presentation queue. Requests beyond
	// the bound are dropped, which keeps runaway callers from growing memory.
	DefaultMaxPendingModals = 10
)

// Config tunes a [Coordinator]. The zero value selects all defaults and a
// timer-backed scheduler.
type Config struct {
	TransitionDuration time.Duration
	MaxRetryAttempts   int
	MaxPendingModals   int
	Scheduler          Scheduler
}

func (c *Config) applyDefaults() {
	if c.TransitionDuration <= 0 {
		c.TransitionDuration = DefaultTransitionDuration
	}
	if c.MaxRetryAttempts <= 0 {
		c.MaxRetryAttempts = DefaultMaxRetryAttempts
	}
	if c.MaxPendingModals <= 0 {
		c.MaxPendingModals = DefaultMaxPendingModals
	}
	if c.Scheduler == nil {
		c.Scheduler = NewTimerScheduler()
	}
}

// Coordinator serializes all modal stack mutations for one navigation scope.
//
// It is a two-state machine (Idle, Transitioning) guaranteeing exactly one
// active transition at a time. Presentations that arrive mid-transition are
// FIFO-queued up to [Config.MaxPendingModals]; dismissals and swipes are
// retried up to [Config.MaxRetryAttempts] and re-validate state on every
// attempt. Once a transition is scheduled it always completes; there is no
// cancellation.
//
// A Coordinator is owned by its navigation scope: construct one on scope
// entry and drop it on scope exit. The mutex is the Go rendition of the
// single logical execution context the engine assumes — scheduler callbacks
// arrive on timer goroutines and re-enter through the same locked entry
// points, preserving the single-writer invariant.
//
// Observer and hook callbacks are invoked outside the lock and must not
// assume the state they were notified about is still current.
type Coordinator struct {
	mu            sync.Mutex
	cfg           Config
	stack         []ModalEntry
	pending       []ModalEntry
	transitioning bool
	onChange      func(StackChange)
}

// New creates a coordinator. Zero fields of cfg fall back to the defaults.
func New(cfg Config) *Coordinator {
	cfg.applyDefaults()
	return &Coordinator{cfg: cfg}
}

// SetOnChange registers the render layer's observe capability. The callback
// receives a snapshot of the modal stack after every mutation; changes with
// Animated == false must be committed by the host without animating.
func (c *Coordinator) SetOnChange(fn func(StackChange)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// =============================================================================
// Presentation
// =============================================================================

// PresentSheet presents r as a sheet, or queues it behind an active
// transition.
func (c *Coordinator) PresentSheet(r route.Route) {
	c.present(r, StyleSheet)
}

// PresentFullScreenCover presents r as a full-screen cover, or queues it
// behind an active transition.
func (c *Coordinator) PresentFullScreenCover(r route.Route) {
	c.present(r, StyleFullScreenCover)
}

func (c *Coordinator) present(r route.Route, style PresentationStyle) {
	entry := newModalEntry(r, style)

	c.mu.Lock()
	if c.transitioning {
		if len(c.pending) >= c.cfg.MaxPendingModals {
			limit := c.cfg.MaxPendingModals
			c.mu.Unlock()
			observability.Navigation().OnQueueCapacityExceeded(r.Key(), limit)
			return
		}
		c.pending = append(c.pending, entry)
		queued := len(c.pending)
		c.mu.Unlock()
		observability.Navigation().OnQueued(r.Key(), queued)
		return
	}

	c.stack = append(c.stack, entry)
	c.transitioning = true
	depth := len(c.stack)
	change, notify := c.snapshotLocked(true)
	c.mu.Unlock()

	observability.Navigation().OnPresented(r.Key(), style.String(), depth)
	c.emit(change, notify)
	c.schedule(c.completeTransition)
}

// =============================================================================
// Dismissal
// =============================================================================

// DismissModal dismisses the topmost modal. No-op on an empty stack.
func (c *Coordinator) DismissModal() {
	c.dismissToIndex(c.ModalDepth()-1, 0)
}

// DismissModals dismisses min(n, ModalDepth) entries from the top of the
// stack. Only the topmost entry animates; the rest collapse instantly.
func (c *Coordinator) DismissModals(n int) {
	if n <= 0 {
		return
	}
	target := c.ModalDepth() - n
	if target < 0 {
		target = 0
	}
	c.dismissToIndex(target, 0)
}

// DismissAllModals dismisses the entire modal stack. No-op when empty.
func (c *Coordinator) DismissAllModals() {
	c.dismissToIndex(0, 0)
}

// DismissModalsAfter dismisses every entry stacked above the first entry
// (from the bottom) whose route equals r, leaving that entry presented. It
// reports whether a matching entry was found; on a miss the stack is
// unchanged.
//
// Entries still waiting in the pending queue are not scanned: a route is
// reachable by targeted dismissal only once it has been promoted to the live
// stack.
func (c *Coordinator) DismissModalsAfter(r route.Route) bool {
	return c.dismissFromRoute(r, 1)
}

// DismissModalsTo dismisses the first entry (from the bottom) whose route
// equals r along with everything stacked above it. It reports whether a
// matching entry was found; on a miss the stack is unchanged.
//
// Like [Coordinator.DismissModalsAfter], only the live stack is scanned.
func (c *Coordinator) DismissModalsTo(r route.Route) bool {
	return c.dismissFromRoute(r, 0)
}

// dismissFromRoute finds the first match from the bottom of the stack and
// reduces the request to a dismiss-to-index. When the route occurs multiple
// times the first occurrence wins: the matching rule must stay total and
// deterministic, and the ambiguity is surfaced as a diagnostic instead.
func (c *Coordinator) dismissFromRoute(r route.Route, offset int) bool {
	c.mu.Lock()
	match, count := -1, 0
	for i, e := range c.stack {
		if route.Equal(e.Route, r) {
			if match < 0 {
				match = i
			}
			count++
		}
	}
	c.mu.Unlock()

	if match < 0 {
		observability.Navigation().OnNoOp(observability.ReasonRouteNotFound)
		return false
	}
	if count > 1 {
		observability.Navigation().OnAmbiguousMatch(r.Key(), count)
	}
	c.dismissToIndex(match+offset, 0)
	return true
}

// SwipeDismiss is the entry point for gesture-driven dismissal reported by
// the render layer: the user dismissed every entry at or above index, and the
// render layer has already played the animation. The state truncation still
// funnels through the coordinator so gestures and programmatic calls share
// one writer.
func (c *Coordinator) SwipeDismiss(index int) {
	c.swipeDismiss(index, 0)
}

// dismissToIndex truncates the stack down to target entries. It is the single
// reduction point for dismiss-one, dismiss-N, dismiss-all and route-targeted
// dismissal.
//
// When more than one entry is being removed, the stack first collapses
// instantly to prefix(target) plus the captured topmost entry, and the
// topmost entry is removed with a normal animated transition on the next
// scheduling tick. Only one removal ever animates, however many entries go.
func (c *Coordinator) dismissToIndex(target, attempt int) {
	c.mu.Lock()
	if c.transitioning {
		c.retryLocked(attempt, func(next int) { c.dismissToIndex(target, next) })
		return
	}

	current := len(c.stack)
	if current == 0 {
		c.mu.Unlock()
		observability.Navigation().OnNoOp(observability.ReasonEmptyStack)
		return
	}
	if target < 0 || target >= current {
		// target == current would dismiss zero entries; treated like any
		// other out-of-range request.
		c.mu.Unlock()
		observability.Navigation().OnNoOp(observability.ReasonOutOfRange)
		return
	}

	if current-target == 1 {
		c.stack = c.stack[:current-1]
		c.transitioning = true
		depth := len(c.stack)
		change, notify := c.snapshotLocked(true)
		c.mu.Unlock()

		observability.Navigation().OnDismissed(1, depth, true)
		c.emit(change, notify)
		c.schedule(c.completeTransition)
		return
	}

	// Instant collapse: keep prefix(target) plus the captured top entry.
	top := c.stack[current-1]
	collapsed := make([]ModalEntry, 0, target+1)
	collapsed = append(collapsed, c.stack[:target]...)
	collapsed = append(collapsed, top)
	removed := current - len(collapsed)
	c.stack = collapsed
	c.transitioning = true
	change, notify := c.snapshotLocked(false)
	c.mu.Unlock()

	observability.Navigation().OnDismissed(removed, len(collapsed), false)
	c.emit(change, notify)
	c.cfg.Scheduler.AfterFunc(0, func() { c.removeCollapsedTop(top.ID) })
}

// removeCollapsedTop performs the animated second phase of a multi-dismiss.
// The entry is matched by instance ID so a stale tick cannot remove anything
// the collapse did not leave on top.
func (c *Coordinator) removeCollapsedTop(id string) {
	c.mu.Lock()
	if n := len(c.stack); n > 0 && c.stack[n-1].ID == id {
		c.stack = c.stack[:n-1]
		depth := len(c.stack)
		change, notify := c.snapshotLocked(true)
		c.mu.Unlock()

		observability.Navigation().OnDismissed(1, depth, true)
		c.emit(change, notify)
		c.schedule(c.completeTransition)
		return
	}
	c.mu.Unlock()
	c.schedule(c.completeTransition)
}

func (c *Coordinator) swipeDismiss(index, attempt int) {
	c.mu.Lock()
	if c.transitioning {
		c.retryLocked(attempt, func(next int) { c.swipeDismiss(index, next) })
		return
	}

	if len(c.stack) == 0 {
		c.mu.Unlock()
		observability.Navigation().OnNoOp(observability.ReasonEmptyStack)
		return
	}
	if index < 0 || index >= len(c.stack) {
		c.mu.Unlock()
		observability.Navigation().OnNoOp(observability.ReasonOutOfRange)
		return
	}

	removed := len(c.stack) - index
	c.stack = c.stack[:index]
	c.transitioning = true
	depth := len(c.stack)
	// The gesture already played the animation; commit without one.
	change, notify := c.snapshotLocked(false)
	c.mu.Unlock()

	observability.Navigation().OnDismissed(removed, depth, false)
	c.emit(change, notify)
	c.schedule(c.completeTransition)
}

// retryLocked re-schedules a blocked dismiss or swipe request, threading the
// attempt counter through each resubmission. Called with c.mu held; always
// unlocks.
func (c *Coordinator) retryLocked(attempt int, resubmit func(next int)) {
	limit := c.cfg.MaxRetryAttempts
	c.mu.Unlock()

	if attempt >= limit {
		observability.Navigation().OnRetryExhausted(limit)
		return
	}
	observability.Navigation().OnRetryScheduled(attempt+1, limit)
	c.schedule(func() { resubmit(attempt + 1) })
}

// =============================================================================
// Transition completion
// =============================================================================

// completeTransition fires after a scheduled delay: it promotes the next
// queued presentation, or winds the machine back to Idle.
func (c *Coordinator) completeTransition() {
	c.mu.Lock()
	if len(c.pending) > 0 {
		entry := c.pending[0]
		c.pending = c.pending[1:]
		c.stack = append(c.stack, entry)
		depth := len(c.stack)
		change, notify := c.snapshotLocked(true)
		c.mu.Unlock()

		observability.Navigation().OnPresented(entry.Route.Key(), entry.Style.String(), depth)
		c.emit(change, notify)
		c.schedule(c.completeTransition)
		return
	}

	if len(c.stack) == 0 {
		// Nothing presented and nothing pending: no animation can be in
		// flight, so Idle is reachable without a delay.
		c.transitioning = false
		c.mu.Unlock()
		return
	}

	// Let the last animation settle before accepting new transitions.
	c.mu.Unlock()
	c.schedule(c.settle)
}

// settle is the final return to Idle. It is a distinct task rather than
// another completeTransition so a non-empty stack cannot re-arm completions
// forever. A presentation queued while settling is promoted instead.
func (c *Coordinator) settle() {
	c.mu.Lock()
	if len(c.pending) > 0 {
		c.mu.Unlock()
		c.completeTransition()
		return
	}
	c.transitioning = false
	c.mu.Unlock()
}

// =============================================================================
// Read surface
// =============================================================================

// ModalDepth returns the number of entries on the modal stack.
func (c *Coordinator) ModalDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stack)
}

// IsModalPresented reports whether any modal is presented.
func (c *Coordinator) IsModalPresented() bool {
	return c.ModalDepth() > 0
}

// CurrentModal returns the topmost entry, if any.
func (c *Coordinator) CurrentModal() (ModalEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.stack) == 0 {
		return ModalEntry{}, false
	}
	return c.stack[len(c.stack)-1], true
}

// ModalAt returns the entry at stack position i (bottom is 0), if in range.
func (c *Coordinator) ModalAt(i int) (ModalEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.stack) {
		return ModalEntry{}, false
	}
	return c.stack[i], true
}

// ModalAtWithStyle returns the entry at stack position i only if its style
// matches. The render layer uses this to project sheet and full-screen
// presentations independently without seeing the whole stack.
func (c *Coordinator) ModalAtWithStyle(i int, style PresentationStyle) (ModalEntry, bool) {
	entry, ok := c.ModalAt(i)
	if !ok || entry.Style != style {
		return ModalEntry{}, false
	}
	return entry, true
}

// ModalEntries returns a copy of the modal stack, bottom first.
func (c *Coordinator) ModalEntries() []ModalEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ModalEntry(nil), c.stack...)
}

// IsTransitioning reports whether a transition is active.
func (c *Coordinator) IsTransitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transitioning
}

// PendingCount returns the number of queued presentation requests.
func (c *Coordinator) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// =============================================================================
// Internals
// =============================================================================

func (c *Coordinator) schedule(fn func()) {
	c.cfg.Scheduler.AfterFunc(c.cfg.TransitionDuration, fn)
}

// snapshotLocked captures the observer callback and a stack copy while the
// lock is held; emit delivers them after it is released.
func (c *Coordinator) snapshotLocked(animated bool) (StackChange, func(StackChange)) {
	return StackChange{
		Entries:  append([]ModalEntry(nil), c.stack...),
		Animated: animated,
	}, c.onChange
}

func (c *Coordinator) emit(change StackChange, notify func(StackChange)) {
	if notify != nil {
		notify(change)
	}
}
