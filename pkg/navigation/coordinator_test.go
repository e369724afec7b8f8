package navigation

import (
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/conductor/pkg/observability"
	"github.com/matzehuels/conductor/pkg/route"
)

// newTestCoordinator wires a coordinator to a manual scheduler so tests
// control transition timing explicitly.
func newTestCoordinator(t *testing.T, cfg Config) (*Coordinator, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	cfg.Scheduler = sched
	return New(cfg), sched
}

// drain runs every scheduled task to quiescence.
func drain(sched *ManualScheduler) {
	for sched.RunNext() {
	}
}

// presentSettled presents r and drains the machine back to Idle.
func presentSettled(c *Coordinator, sched *ManualScheduler, r route.Route) {
	c.PresentSheet(r)
	drain(sched)
}

func stackKeys(c *Coordinator) []string {
	entries := c.ModalEntries()
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.Route.Key()
	}
	return keys
}

func wantStack(t *testing.T, c *Coordinator, want ...string) {
	t.Helper()
	got := stackKeys(c)
	if len(got) != len(want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("stack[%d] = %q, want %q", i, got[i], w)
		}
	}
}

// capturingHooks records hook invocations for assertions.
type capturingHooks struct {
	observability.NoopNavigationHooks

	mu         sync.Mutex
	dropped    []string
	exhausted  int
	ambiguous  []int
	noOps      []observability.NoOpReason
	retries    int
}

func (h *capturingHooks) OnQueueCapacityExceeded(route string, limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropped = append(h.dropped, route)
}

func (h *capturingHooks) OnRetryScheduled(attempt, limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retries++
}

func (h *capturingHooks) OnRetryExhausted(limit int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exhausted++
}

func (h *capturingHooks) OnAmbiguousMatch(route string, count int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ambiguous = append(h.ambiguous, count)
}

func (h *capturingHooks) OnNoOp(reason observability.NoOpReason) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noOps = append(h.noOps, reason)
}

func installHooks(t *testing.T) *capturingHooks {
	t.Helper()
	h := &capturingHooks{}
	observability.SetNavigationHooks(h)
	t.Cleanup(observability.Reset)
	return h
}

// =============================================================================
// Presentation
// =============================================================================

func TestPresentSheet(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})

	c.PresentSheet(route.Name("settings"))

	if !c.IsModalPresented() {
		t.Error("IsModalPresented() = false, want true")
	}
	if got := c.ModalDepth(); got != 1 {
		t.Errorf("ModalDepth() = %d, want 1", got)
	}
	entry, ok := c.CurrentModal()
	if !ok {
		t.Fatal("CurrentModal() should return an entry")
	}
	if entry.Route.Key() != "settings" {
		t.Errorf("CurrentModal().Route = %q, want %q", entry.Route.Key(), "settings")
	}
	if entry.Style != StyleSheet {
		t.Errorf("CurrentModal().Style = %v, want StyleSheet", entry.Style)
	}
	if !c.IsTransitioning() {
		t.Error("IsTransitioning() = false immediately after present, want true")
	}

	drain(sched)
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after settling, want false")
	}
}

func TestTransitioningSpansUntilSettle(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})

	c.PresentSheet(route.Name("a"))

	// Completion fires after one transition duration but the machine stays
	// Transitioning until the settle task lets the animation finish.
	sched.Advance(DefaultTransitionDuration)
	if !c.IsTransitioning() {
		t.Error("IsTransitioning() = false after completion tick, want true until settle")
	}

	sched.Advance(DefaultTransitionDuration)
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after settle, want false")
	}
}

func TestPresentInstanceIDsAreUnique(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})

	presentSettled(c, sched, route.Name("settings"))
	presentSettled(c, sched, route.Name("settings"))

	entries := c.ModalEntries()
	if len(entries) != 2 {
		t.Fatalf("ModalDepth = %d, want 2", len(entries))
	}
	if entries[0].ID == entries[1].ID {
		t.Error("two presentations of the same route must have distinct instance IDs")
	}
	if entries[0].ID == "" || entries[1].ID == "" {
		t.Error("instance IDs must be non-empty")
	}
}

func TestPresentFIFOOrdering(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})

	c.PresentSheet(route.Name("first"))
	c.PresentSheet(route.Name("a"))
	c.PresentSheet(route.Name("b"))

	if got := c.PendingCount(); got != 2 {
		t.Fatalf("PendingCount() = %d, want 2", got)
	}
	wantStack(t, c, "first")

	// One queued presentation is promoted per completion tick, in arrival
	// order.
	sched.Advance(DefaultTransitionDuration)
	wantStack(t, c, "first", "a")

	sched.Advance(DefaultTransitionDuration)
	wantStack(t, c, "first", "a", "b")

	drain(sched)
	wantStack(t, c, "first", "a", "b")
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after queue drained, want false")
	}
}

func TestPresentQueueCapacity(t *testing.T) {
	hooks := installHooks(t)
	c, _ := newTestCoordinator(t, Config{})

	c.PresentSheet(route.Name("active"))
	for i := 0; i < 11; i++ {
		c.PresentSheet(route.Detail{Screen: "queued", Arg: string(rune('a' + i))})
	}

	// Capacity 10: the 11th rapid presentation is dropped.
	if got := c.PendingCount(); got != DefaultMaxPendingModals {
		t.Errorf("PendingCount() = %d, want %d", got, DefaultMaxPendingModals)
	}
	if len(hooks.dropped) != 1 {
		t.Fatalf("dropped = %v, want exactly one drop", hooks.dropped)
	}
	if hooks.dropped[0] != "queued/k" {
		t.Errorf("dropped route = %q, want %q", hooks.dropped[0], "queued/k")
	}
}

func TestPendingQueueNeverExceedsBound(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{MaxPendingModals: 3})

	c.PresentSheet(route.Name("active"))
	for i := 0; i < 20; i++ {
		c.PresentSheet(route.Name("spam"))
		if got := c.PendingCount(); got > 3 {
			t.Fatalf("PendingCount() = %d, want <= 3", got)
		}
	}

	drain(sched)
	if got := c.ModalDepth(); got != 4 {
		t.Errorf("ModalDepth() = %d, want 4 (active + 3 queued)", got)
	}
}

// =============================================================================
// Dismissal
// =============================================================================

func TestDismissModal(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("a"))

	c.DismissModal()
	wantStack(t, c)
	if !c.IsTransitioning() {
		t.Error("IsTransitioning() = false during dismissal, want true")
	}

	drain(sched)
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after empty-stack completion, want false")
	}
}

func TestDismissModalEmptyStackIsNoOp(t *testing.T) {
	hooks := installHooks(t)
	c, _ := newTestCoordinator(t, Config{})

	c.DismissModal()

	if c.IsTransitioning() {
		t.Error("no-op dismiss must not start a transition")
	}
	if len(hooks.noOps) != 1 || hooks.noOps[0] != observability.ReasonEmptyStack {
		t.Errorf("noOps = %v, want [empty_stack]", hooks.noOps)
	}
}

func TestMultiDismissCollapsesThenAnimatesOnce(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	for _, name := range []string{"e0", "e1", "e2", "e3"} {
		presentSettled(c, sched, route.Name(name))
	}

	var changes []StackChange
	c.SetOnChange(func(ch StackChange) { changes = append(changes, ch) })

	c.DismissModals(3)

	// Phase one is synchronous and silent: all intermediate entries collapse
	// in one non-animated commit, leaving the captured top on the prefix.
	wantStack(t, c, "e0", "e3")
	if len(changes) != 1 {
		t.Fatalf("observer saw %d changes, want 1 (the collapse)", len(changes))
	}
	if changes[0].Animated {
		t.Error("collapse must be committed without animation")
	}

	// Phase two, on the next tick, removes the top with a normal animated
	// transition.
	sched.RunNext()
	wantStack(t, c, "e0")
	if len(changes) != 2 {
		t.Fatalf("observer saw %d changes, want 2", len(changes))
	}
	if !changes[1].Animated {
		t.Error("final removal must animate")
	}

	drain(sched)
	wantStack(t, c, "e0")
}

func TestDismissModalsClampsToDepth(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("a"))
	presentSettled(c, sched, route.Name("b"))

	c.DismissModals(10)
	drain(sched)
	wantStack(t, c)
}

func TestDismissAllModals(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	for _, name := range []string{"a", "b", "c"} {
		presentSettled(c, sched, route.Name(name))
	}

	c.DismissAllModals()
	drain(sched)

	wantStack(t, c)
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after dismissing all, want false")
	}
}

func TestDismissModalsAfterAndTo(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	for _, name := range []string{"A", "B", "C", "D"} {
		presentSettled(c, sched, route.Name(name))
	}

	if !c.DismissModalsAfter(route.Name("B")) {
		t.Fatal("DismissModalsAfter(B) = false, want true")
	}
	drain(sched)
	wantStack(t, c, "A", "B")

	if !c.DismissModalsTo(route.Name("B")) {
		t.Fatal("DismissModalsTo(B) = false, want true")
	}
	drain(sched)
	wantStack(t, c, "A")
}

func TestDismissModalsToMissingRoute(t *testing.T) {
	hooks := installHooks(t)
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("a"))

	if c.DismissModalsTo(route.Name("nope")) {
		t.Error("DismissModalsTo(missing) = true, want false")
	}
	wantStack(t, c, "a")
	if len(hooks.noOps) != 1 || hooks.noOps[0] != observability.ReasonRouteNotFound {
		t.Errorf("noOps = %v, want [route_not_found]", hooks.noOps)
	}
}

func TestDismissModalsToDuplicateMatchesFirst(t *testing.T) {
	hooks := installHooks(t)
	c, sched := newTestCoordinator(t, Config{})
	for _, name := range []string{"A", "dup", "B", "dup"} {
		presentSettled(c, sched, route.Name(name))
	}

	// First occurrence from the bottom wins; the ambiguity is diagnosed.
	if !c.DismissModalsTo(route.Name("dup")) {
		t.Fatal("DismissModalsTo(dup) = false, want true")
	}
	drain(sched)
	wantStack(t, c, "A")

	if len(hooks.ambiguous) != 1 || hooks.ambiguous[0] != 2 {
		t.Errorf("ambiguous = %v, want [2]", hooks.ambiguous)
	}
}

func TestDismissRetriesWhileTransitioning(t *testing.T) {
	hooks := installHooks(t)
	c, sched := newTestCoordinator(t, Config{})

	c.PresentSheet(route.Name("a"))
	c.DismissModal() // blocked: the presentation is still transitioning

	if hooks.retries != 1 {
		t.Fatalf("retries = %d, want 1", hooks.retries)
	}
	wantStack(t, c, "a")

	// Once the machine returns to Idle the retried dismissal applies.
	drain(sched)
	wantStack(t, c)
}

func TestDismissRetryBudgetExhausted(t *testing.T) {
	hooks := installHooks(t)
	c, sched := newTestCoordinator(t, Config{MaxRetryAttempts: 2})

	// Keep the coordinator busy long enough to burn both retries: each
	// queued promotion occupies one transition duration.
	c.PresentSheet(route.Name("a"))
	c.PresentSheet(route.Name("b"))
	c.PresentSheet(route.Name("c"))
	c.PresentSheet(route.Name("d"))

	c.DismissModal()
	drain(sched)

	if hooks.exhausted != 1 {
		t.Errorf("exhausted = %d, want 1", hooks.exhausted)
	}
	// The dismissal was dropped; every presentation survived.
	wantStack(t, c, "a", "b", "c", "d")
}

// =============================================================================
// Swipe dismissal
// =============================================================================

func TestSwipeDismiss(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	for _, name := range []string{"a", "b", "c"} {
		presentSettled(c, sched, route.Name(name))
	}

	var changes []StackChange
	c.SetOnChange(func(ch StackChange) { changes = append(changes, ch) })

	c.SwipeDismiss(1)

	// The gesture already animated; the commit is instant.
	wantStack(t, c, "a")
	if len(changes) != 1 || changes[0].Animated {
		t.Errorf("changes = %+v, want one non-animated commit", changes)
	}
	if !c.IsTransitioning() {
		t.Error("IsTransitioning() = false after swipe, want true while settling")
	}

	drain(sched)
	if c.IsTransitioning() {
		t.Error("IsTransitioning() = true after settle, want false")
	}
}

func TestSwipeDismissOutOfRange(t *testing.T) {
	hooks := installHooks(t)
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("a"))

	c.SwipeDismiss(5)
	wantStack(t, c, "a")
	if len(hooks.noOps) != 1 || hooks.noOps[0] != observability.ReasonOutOfRange {
		t.Errorf("noOps = %v, want [out_of_range]", hooks.noOps)
	}
}

func TestSwipeDismissRetriesWhileTransitioning(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("a"))
	presentSettled(c, sched, route.Name("b"))

	c.PresentSheet(route.Name("c"))
	c.SwipeDismiss(0) // blocked, retried once Idle

	drain(sched)
	wantStack(t, c)
}

// =============================================================================
// Read surface
// =============================================================================

func TestModalAtWithStyle(t *testing.T) {
	c, sched := newTestCoordinator(t, Config{})
	presentSettled(c, sched, route.Name("sheet0"))
	c.PresentFullScreenCover(route.Name("cover1"))
	drain(sched)

	if _, ok := c.ModalAtWithStyle(0, StyleSheet); !ok {
		t.Error("ModalAtWithStyle(0, sheet) should match")
	}
	if _, ok := c.ModalAtWithStyle(0, StyleFullScreenCover); ok {
		t.Error("ModalAtWithStyle(0, cover) should not match a sheet entry")
	}
	entry, ok := c.ModalAtWithStyle(1, StyleFullScreenCover)
	if !ok {
		t.Fatal("ModalAtWithStyle(1, cover) should match")
	}
	if entry.Route.Key() != "cover1" {
		t.Errorf("entry.Route = %q, want %q", entry.Route.Key(), "cover1")
	}
	if _, ok := c.ModalAtWithStyle(5, StyleSheet); ok {
		t.Error("ModalAtWithStyle out of range should not match")
	}
}

func TestCurrentModalEmpty(t *testing.T) {
	c, _ := newTestCoordinator(t, Config{})
	if _, ok := c.CurrentModal(); ok {
		t.Error("CurrentModal() on empty stack should report false")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.TransitionDuration != DefaultTransitionDuration {
		t.Errorf("TransitionDuration = %v, want %v", cfg.TransitionDuration, DefaultTransitionDuration)
	}
	if cfg.MaxRetryAttempts != DefaultMaxRetryAttempts {
		t.Errorf("MaxRetryAttempts = %d, want %d", cfg.MaxRetryAttempts, DefaultMaxRetryAttempts)
	}
	if cfg.MaxPendingModals != DefaultMaxPendingModals {
		t.Errorf("MaxPendingModals = %d, want %d", cfg.MaxPendingModals, DefaultMaxPendingModals)
	}
	if cfg.Scheduler == nil {
		t.Error("Scheduler should default to a timer scheduler")
	}
	if cfg.TransitionDuration <= 0 || cfg.TransitionDuration > time.Second {
		t.Errorf("TransitionDuration = %v, want a sub-second settle delay", cfg.TransitionDuration)
	}
}
