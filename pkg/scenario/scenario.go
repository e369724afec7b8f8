// Package scenario loads and replays declarative navigation scripts.
//
// A scenario is a TOML file describing a sequence of navigation intents plus
// explicit clock advances. Replays run against a virtual clock
// (navigation.ManualScheduler), so a scenario always produces the same
// timeline — the seam shared by the replay, graph, and serve commands.
//
// # Format
//
//	name = "smoke"
//	tabs = 0            # > 0 replays against a TabNavigator
//	transition_ms = 350 # optional transition duration override
//
//	[[step]]
//	op = "present"      # see Op constants for the full list
//	route = "settings"
//	style = "sheet"
//
//	[[step]]
//	op = "advance"
//	ms = 400
package scenario

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/conductor/pkg/errors"
	"github.com/matzehuels/conductor/pkg/navigation"
	"github.com/matzehuels/conductor/pkg/observability"
	"github.com/matzehuels/conductor/pkg/route"
	"github.com/matzehuels/conductor/pkg/trace"
)

// Op names a scenario step operation.
type Op string

// Supported step operations.
const (
	OpPush         Op = "push"
	OpPop          Op = "pop"
	OpPopN         Op = "pop_n"
	OpPopToRoot    Op = "pop_to_root"
	OpPopTo        Op = "pop_to"
	OpReplace      Op = "replace"
	OpPresent      Op = "present"
	OpDismiss      Op = "dismiss"
	OpDismissN     Op = "dismiss_n"
	OpDismissAll   Op = "dismiss_all"
	OpDismissAfter Op = "dismiss_after"
	OpDismissTo    Op = "dismiss_to"
	OpSwipe        Op = "swipe"
	OpSelectTab    Op = "select_tab"
	OpAdvance      Op = "advance"
)

// Step is one scripted intent.
type Step struct {
	Op     Op       `toml:"op"`
	Route  string   `toml:"route"`
	Routes []string `toml:"routes"`
	Style  string   `toml:"style"`
	N      int      `toml:"n"`
	Index  int      `toml:"index"`
	Tab    int      `toml:"tab"`
	MS     int      `toml:"ms"`
}

// Scenario is a parsed, validated navigation script.
type Scenario struct {
	Name         string `toml:"name"`
	Tabs         int    `toml:"tabs"`
	TransitionMS int    `toml:"transition_ms"`
	Steps        []Step `toml:"step"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scenario file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "read %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "decode scenario")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if err := errors.ValidateScenarioName(s.Name); err != nil {
		return err
	}
	if len(s.Steps) == 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario %q has no steps", s.Name)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStep, err, "step %d (%s)", i, st.Op)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpPush, OpPopTo, OpDismissAfter, OpDismissTo:
		return errors.ValidateRouteKey(st.Route)
	case OpPresent:
		if err := errors.ValidateRouteKey(st.Route); err != nil {
			return err
		}
		if st.Style != "" {
			if _, err := navigation.ParseStyle(st.Style); err != nil {
				return err
			}
		}
		return nil
	case OpReplace:
		for _, r := range st.Routes {
			if err := errors.ValidateRouteKey(r); err != nil {
				return err
			}
		}
		return nil
	case OpPopN, OpDismissN:
		if st.N <= 0 {
			return errors.New(errors.ErrCodeInvalidStep, "n must be positive, got %d", st.N)
		}
		return nil
	case OpSwipe:
		if st.Index < 0 {
			return errors.New(errors.ErrCodeInvalidStep, "index must be non-negative, got %d", st.Index)
		}
		return nil
	case OpSelectTab:
		if st.Tab < 0 {
			return errors.New(errors.ErrCodeInvalidStep, "tab must be non-negative, got %d", st.Tab)
		}
		return nil
	case OpAdvance:
		if st.MS < 0 {
			return errors.New(errors.ErrCodeInvalidStep, "ms must be non-negative, got %d", st.MS)
		}
		return nil
	case OpPop, OpPopToRoot, OpDismiss, OpDismissAll:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidStep, "unknown op: %q", st.Op)
	}
}

// =============================================================================
// Replay
// =============================================================================

// RunOptions tunes a replay.
type RunOptions struct {
	// Hooks receives navigation events alongside the trace recorder
	// (typically a logging implementation).
	Hooks observability.NavigationHooks

	// NoDrain leaves scheduled work pending after the last step instead of
	// running the machine to quiescence.
	NoDrain bool
}

// Result captures the outcome of a replay.
type Result struct {
	Scenario    string        `json:"scenario"`
	Events      []trace.Event `json:"events"`
	Path        []string      `json:"path"`
	Modals      []string      `json:"modals"`
	ModalDepth  int           `json:"modal_depth"`
	PathDepth   int           `json:"path_depth"`
	SelectedTab int           `json:"selected_tab"`
	VirtualMS   int64         `json:"virtual_ms"`
}

// target is the slice of Navigator/TabNavigator the replay drives.
type target interface {
	Path() *navigation.Path
	Coordinator() *navigation.Coordinator
}

// Run replays a scenario against a fresh navigator on a virtual clock and
// returns the recorded timeline plus the final state.
//
// Run registers a trace recorder as the global navigation hooks for the
// duration of the replay and restores the no-op default afterwards.
func Run(s *Scenario, opts RunOptions) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidScenario, "nil scenario")
	}

	sched := navigation.NewManualScheduler()
	cfg := navigation.Config{Scheduler: sched}
	if s.TransitionMS > 0 {
		cfg.TransitionDuration = time.Duration(s.TransitionMS) * time.Millisecond
	}

	var (
		tgt  target
		tabs *navigation.TabNavigator
	)
	if s.Tabs > 0 {
		tabs = navigation.NewTabNavigator(s.Tabs, cfg)
		tgt = tabs
	} else {
		tgt = navigation.NewNavigator(cfg)
	}

	recorder := trace.NewRecorder()
	observability.SetNavigationHooks(observability.Multi(recorder, opts.Hooks))
	defer observability.Reset()

	for _, st := range s.Steps {
		apply(tgt, tabs, sched, st)
	}

	if !opts.NoDrain {
		// Completion chains and retry loops are bounded, so this terminates.
		for sched.RunNext() {
		}
	}

	result := &Result{
		Scenario:  s.Name,
		Events:    recorder.Events(),
		VirtualMS: sched.Now().Milliseconds(),
	}
	for _, r := range tgt.Path().Routes() {
		result.Path = append(result.Path, r.Key())
	}
	for _, e := range tgt.Coordinator().ModalEntries() {
		result.Modals = append(result.Modals, fmt.Sprintf("%s (%s)", e.Route.Key(), e.Style))
	}
	result.PathDepth = tgt.Path().Depth()
	result.ModalDepth = tgt.Coordinator().ModalDepth()
	if tabs != nil {
		result.SelectedTab = tabs.SelectedTab()
	}
	return result, nil
}

func apply(tgt target, tabs *navigation.TabNavigator, sched *navigation.ManualScheduler, st Step) {
	switch st.Op {
	case OpPush:
		tgt.Path().Push(route.Name(st.Route))
	case OpPop:
		tgt.Path().Pop()
	case OpPopN:
		tgt.Path().PopN(st.N)
	case OpPopToRoot:
		tgt.Path().PopToRoot()
	case OpPopTo:
		tgt.Path().PopTo(route.Name(st.Route))
	case OpReplace:
		routes := make([]route.Route, len(st.Routes))
		for i, r := range st.Routes {
			routes[i] = route.Name(r)
		}
		tgt.Path().Replace(routes)
	case OpPresent:
		style := navigation.StyleSheet
		if st.Style != "" {
			style, _ = navigation.ParseStyle(st.Style) // validated at parse time
		}
		if style == navigation.StyleFullScreenCover {
			tgt.Coordinator().PresentFullScreenCover(route.Name(st.Route))
		} else {
			tgt.Coordinator().PresentSheet(route.Name(st.Route))
		}
	case OpDismiss:
		tgt.Coordinator().DismissModal()
	case OpDismissN:
		tgt.Coordinator().DismissModals(st.N)
	case OpDismissAll:
		tgt.Coordinator().DismissAllModals()
	case OpDismissAfter:
		tgt.Coordinator().DismissModalsAfter(route.Name(st.Route))
	case OpDismissTo:
		tgt.Coordinator().DismissModalsTo(route.Name(st.Route))
	case OpSwipe:
		tgt.Coordinator().SwipeDismiss(st.Index)
	case OpSelectTab:
		if tabs != nil {
			tabs.SelectTab(st.Tab)
		}
	case OpAdvance:
		sched.Advance(time.Duration(st.MS) * time.Millisecond)
	}
}
