// Package navigation implements a navigation-state engine for declarative
// UI frameworks.
//
// The engine has three layers:
//
//   - [Path] — an ordered back-stack of routes. Mutations are synchronous and
//     total; there are no overlapping animations to coordinate, so no queuing
//     is involved.
//   - [Coordinator] — the transition coordinator, the core of the package.
//     It owns the modal stack and serializes every present/dismiss request so
//     that exactly one visual transition is active at a time. Requests that
//     arrive mid-transition are FIFO-queued (presentations, bounded by
//     [Config.MaxPendingModals]) or retried (dismissals, bounded by
//     [Config.MaxRetryAttempts]).
//   - [Navigator] and [TabNavigator] — caller-facing facades combining a
//     path (or one path per tab) with a shared coordinator.
//
// The render layer is an external collaborator: it observes state via
// [Coordinator.SetOnChange] and the read accessors, and reports user gestures
// back through [Coordinator.SwipeDismiss]. It never mutates the stack
// directly, which preserves the single-writer invariant.
//
// Navigation intents never fail. Empty-stack pops, out-of-range targets,
// unknown routes, full queues and exhausted retry budgets all degrade to
// no-ops; diagnostics surface through pkg/observability hooks.
//
// Time is abstracted behind [Scheduler]. Production code uses
// [TimerScheduler]; tests and scenario replay use [ManualScheduler] to step a
// virtual clock deterministically.
package navigation
