// Package trace records navigation diagnostics as an ordered event timeline.
//
// [Recorder] implements observability.NavigationHooks: registered at startup,
// it captures every coordinator event in arrival order. The timeline can be
// exported as JSON for inspection (CLI replay, HTTP inspector) or rendered as
// a Graphviz diagram (see [ToDOT]).
package trace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/matzehuels/conductor/pkg/observability"
)

// Kind classifies a recorded navigation event.
type Kind string

// Event kinds, mirroring the observability hook vocabulary.
const (
	KindPresented      Kind = "presented"
	KindDismissed      Kind = "dismissed"
	KindQueued         Kind = "queued"
	KindDropped        Kind = "dropped"
	KindRetry          Kind = "retry"
	KindRetryExhausted Kind = "retry_exhausted"
	KindAmbiguous      Kind = "ambiguous"
	KindNoOp           Kind = "noop"
)

// Event is one entry in the navigation timeline.
type Event struct {
	Seq      int    `json:"seq"`
	Kind     Kind   `json:"kind"`
	Route    string `json:"route,omitempty"`
	Style    string `json:"style,omitempty"`
	Depth    int    `json:"depth,omitempty"`
	Count    int    `json:"count,omitempty"`
	Animated bool   `json:"animated,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// Label returns a short human-readable description of the event.
func (e Event) Label() string {
	switch e.Kind {
	case KindPresented:
		return fmt.Sprintf("present %s (%s) depth=%d", e.Route, e.Style, e.Depth)
	case KindDismissed:
		mode := "animated"
		if !e.Animated {
			mode = "instant"
		}
		return fmt.Sprintf("dismiss %d (%s) depth=%d", e.Count, mode, e.Depth)
	case KindQueued:
		return fmt.Sprintf("queue %s (pending=%d)", e.Route, e.Count)
	case KindDropped:
		return fmt.Sprintf("drop %s (queue full, limit=%d)", e.Route, e.Count)
	case KindRetry:
		return fmt.Sprintf("retry %d/%d", e.Depth, e.Count)
	case KindRetryExhausted:
		return fmt.Sprintf("retry exhausted (limit=%d)", e.Count)
	case KindAmbiguous:
		return fmt.Sprintf("ambiguous %s (%d matches)", e.Route, e.Count)
	case KindNoOp:
		return fmt.Sprintf("no-op (%s)", e.Detail)
	default:
		return string(e.Kind)
	}
}

// Recorder captures navigation events in arrival order.
// It is safe for concurrent use; the coordinator may emit from timer
// goroutines.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	seq    int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.Seq = r.seq
	r.seq++
	r.events = append(r.events, e)
}

// OnPresented implements observability.NavigationHooks.
func (r *Recorder) OnPresented(route, style string, depth int) {
	r.record(Event{Kind: KindPresented, Route: route, Style: style, Depth: depth, Animated: true})
}

// OnDismissed implements observability.NavigationHooks.
func (r *Recorder) OnDismissed(removed, depth int, animated bool) {
	r.record(Event{Kind: KindDismissed, Count: removed, Depth: depth, Animated: animated})
}

// OnQueued implements observability.NavigationHooks.
func (r *Recorder) OnQueued(route string, queueLen int) {
	r.record(Event{Kind: KindQueued, Route: route, Count: queueLen})
}

// OnQueueCapacityExceeded implements observability.NavigationHooks.
func (r *Recorder) OnQueueCapacityExceeded(route string, limit int) {
	r.record(Event{Kind: KindDropped, Route: route, Count: limit})
}

// OnRetryScheduled implements observability.NavigationHooks.
func (r *Recorder) OnRetryScheduled(attempt, limit int) {
	r.record(Event{Kind: KindRetry, Depth: attempt, Count: limit})
}

// OnRetryExhausted implements observability.NavigationHooks.
func (r *Recorder) OnRetryExhausted(limit int) {
	r.record(Event{Kind: KindRetryExhausted, Count: limit})
}

// OnAmbiguousMatch implements observability.NavigationHooks.
func (r *Recorder) OnAmbiguousMatch(route string, count int) {
	r.record(Event{Kind: KindAmbiguous, Route: route, Count: count})
}

// OnNoOp implements observability.NavigationHooks.
func (r *Recorder) OnNoOp(reason observability.NoOpReason) {
	r.record(Event{Kind: KindNoOp, Detail: string(reason)})
}

// Events returns a copy of the timeline in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// =============================================================================
// Serialization
// =============================================================================

// Marshal converts a timeline to indented JSON bytes.
func Marshal(events []Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(events, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a timeline as JSON to an io.Writer.
func Write(events []Event, w io.Writer) error {
	return writeTo(events, w)
}

// WriteFile writes a timeline to a JSON file with 0644 permissions.
func WriteFile(events []Event, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(events, f)
}

func writeTo(events []Event, w io.Writer) error {
	if events == nil {
		events = []Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(events)
}
