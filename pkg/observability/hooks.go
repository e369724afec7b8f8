// Package observability provides hooks for navigation diagnostics.
//
// Navigation intents never fail: malformed or untimely requests degrade to
// no-ops (see pkg/navigation). The hooks in this package are the channel
// through which those degradations become visible, without adding hard
// dependencies on specific logging or metrics backends.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for navigation events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core engine dependency-free from observability frameworks
//   - Allows different backends (structured logs, metrics, trace recording)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNavigationHooks(&myHooks{})
//	    // ... run application
//	}
//
// The engine calls hooks as transitions progress:
//
//	observability.Navigation().OnQueueCapacityExceeded(route, limit)
package observability

import "sync"

// NoOpReason classifies why a navigation intent was silently ignored.
type NoOpReason string

// Reasons reported via OnNoOp.
const (
	ReasonEmptyStack    NoOpReason = "empty_stack"
	ReasonOutOfRange    NoOpReason = "out_of_range"
	ReasonRouteNotFound NoOpReason = "route_not_found"
)

// NavigationHooks receives events from the transition coordinator.
//
// Route and style parameters are passed as display strings so the hook
// interface does not depend on the engine's types.
type NavigationHooks interface {
	// OnPresented records a modal entry joining the live stack.
	OnPresented(route, style string, depth int)

	// OnDismissed records entries leaving the live stack.
	// Animated is false for the silent collapse step of a multi-dismiss.
	OnDismissed(removed, depth int, animated bool)

	// OnQueued records a presentation deferred behind an active transition.
	OnQueued(route string, queueLen int)

	// OnQueueCapacityExceeded records a presentation dropped because the
	// pending queue is full.
	OnQueueCapacityExceeded(route string, limit int)

	// OnRetryScheduled records a dismiss or swipe request re-scheduled
	// because a transition is in flight.
	OnRetryScheduled(attempt, limit int)

	// OnRetryExhausted records a dismiss or swipe request dropped after
	// exhausting its retry budget.
	OnRetryExhausted(limit int)

	// OnAmbiguousMatch records a route-targeted dismiss that matched a route
	// occurring more than once in the stack. The first match was used.
	OnAmbiguousMatch(route string, count int)

	// OnNoOp records an intent that left state unchanged.
	OnNoOp(reason NoOpReason)
}

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnPresented(string, string, int)     {}
func (NoopNavigationHooks) OnDismissed(int, int, bool)          {}
func (NoopNavigationHooks) OnQueued(string, int)                {}
func (NoopNavigationHooks) OnQueueCapacityExceeded(string, int) {}
func (NoopNavigationHooks) OnRetryScheduled(int, int)           {}
func (NoopNavigationHooks) OnRetryExhausted(int)                {}
func (NoopNavigationHooks) OnAmbiguousMatch(string, int)        {}
func (NoopNavigationHooks) OnNoOp(NoOpReason)                   {}

// Multi fans every event out to each of the given hooks in order. Nil
// entries are skipped. Useful when one consumer logs and another records.
func Multi(hooks ...NavigationHooks) NavigationHooks {
	hs := make([]NavigationHooks, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return multiHooks(hs)
}

type multiHooks []NavigationHooks

func (m multiHooks) OnPresented(route, style string, depth int) {
	for _, h := range m {
		h.OnPresented(route, style, depth)
	}
}

func (m multiHooks) OnDismissed(removed, depth int, animated bool) {
	for _, h := range m {
		h.OnDismissed(removed, depth, animated)
	}
}

func (m multiHooks) OnQueued(route string, queueLen int) {
	for _, h := range m {
		h.OnQueued(route, queueLen)
	}
}

func (m multiHooks) OnQueueCapacityExceeded(route string, limit int) {
	for _, h := range m {
		h.OnQueueCapacityExceeded(route, limit)
	}
}

func (m multiHooks) OnRetryScheduled(attempt, limit int) {
	for _, h := range m {
		h.OnRetryScheduled(attempt, limit)
	}
}

func (m multiHooks) OnRetryExhausted(limit int) {
	for _, h := range m {
		h.OnRetryExhausted(limit)
	}
}

func (m multiHooks) OnAmbiguousMatch(route string, count int) {
	for _, h := range m {
		h.OnAmbiguousMatch(route, count)
	}
}

func (m multiHooks) OnNoOp(reason NoOpReason) {
	for _, h := range m {
		h.OnNoOp(reason)
	}
}

var (
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	hooksMu         sync.RWMutex
)

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup before any navigation.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	navigationHooks = NoopNavigationHooks{}
}
