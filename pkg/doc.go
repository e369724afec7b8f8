// Package pkg provides the core libraries for conductor's navigation engine.
//
// # Overview
//
// Conductor models the navigation state of a declarative UI as plain data: an
// ordered back-stack of routes plus a stack of modal presentations whose
// transitions are serialized by a coordinator. The pkg directory is organized
// into five areas:
//
//  1. [route] - Route identity (stable keys, value equality)
//  2. [navigation] - The engine (path, modal stack, transition coordinator,
//     navigator facades, schedulers)
//  3. [observability] - Navigation event hooks (pluggable diagnostics)
//  4. [scenario] - Declarative TOML replay scripts on a virtual clock
//  5. [trace] - Event timelines (JSON export, Graphviz rendering)
//
// # Architecture
//
// The typical flow through conductor:
//
//	Navigation intent (Push / Present / Dismiss / Swipe)
//	         ↓
//	    [navigation.Path] (synchronous back-stack mutation)
//	    [navigation.Coordinator] (serialized modal transitions)
//	         ↓
//	    [observability] hooks (applied / queued / dropped / retried)
//	         ↓
//	    [trace] timeline (JSON, DOT, SVG, PNG)
//
// Path operations apply immediately. Modal operations go through the
// coordinator: at most one transition animates at a time, presentations
// queue FIFO up to a bound, and dismissals retry with a bounded budget
// while a transition is in flight.
//
// # Quick Start
//
// Drive a navigator and inspect its state:
//
//	import (
//	    "github.com/matzehuels/conductor/pkg/navigation"
//	    "github.com/matzehuels/conductor/pkg/route"
//	)
//
//	nav := navigation.NewNavigator(navigation.Config{})
//	nav.Push(route.Name("home"))
//	nav.Push(route.Detail{Screen: "album", Arg: "ok-computer"})
//	nav.PresentSheet(route.Name("settings"))
//
//	nav.Depth()            // 2
//	nav.IsModalPresented() // true
//
// For deterministic tests and replays, supply a virtual clock:
//
//	sched := navigation.NewManualScheduler()
//	nav := navigation.NewNavigator(navigation.Config{Scheduler: sched})
//	nav.PresentSheet(route.Name("settings"))
//	for sched.RunNext() {
//	} // run the transition to quiescence
//
// # Main Packages
//
// [route] - Route identity. A route is anything with a stable string key;
// equality and hashing derive from the key, so routes work as map keys and
// survive serialization round-trips.
//
// [navigation] - The engine. [navigation.Path] is the synchronous back-stack;
// [navigation.Coordinator] owns the modal stack and serializes its
// transitions; [navigation.Navigator] and [navigation.TabNavigator] bundle
// the two for single-stack and tab-container apps.
//
// [observability] - Process-global navigation hooks. Implementations receive
// every coordinator event; [observability.Multi] fans out to several at once.
//
// [scenario] - TOML scripts replayed on a virtual clock. The same file always
// produces the same timeline, which makes scenarios the seam shared by the
// replay, graph, and serve commands.
//
// [trace] - Ordered event timelines. [trace.Recorder] captures hook events;
// timelines export as JSON or render to Graphviz diagrams.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/navigation/...   # Specific package
//	go test -run Example           # Examples only
//
// [route]: https://pkg.go.dev/github.com/matzehuels/conductor/pkg/route
// [navigation]: https://pkg.go.dev/github.com/matzehuels/conductor/pkg/navigation
// [observability]: https://pkg.go.dev/github.com/matzehuels/conductor/pkg/observability
// [scenario]: https://pkg.go.dev/github.com/matzehuels/conductor/pkg/scenario
// [trace]: https://pkg.go.dev/github.com/matzehuels/conductor/pkg/trace
package pkg
