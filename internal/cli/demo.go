package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/conductor/pkg/navigation"
	"github.com/matzehuels/conductor/pkg/observability"
	"github.com/matzehuels/conductor/pkg/route"
	"github.com/matzehuels/conductor/pkg/trace"
)

// Demo styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	demoPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	demoTopStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	demoTabStyle      = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	demoTabActiveSty  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	demoStatusBusySty = lipgloss.NewStyle().Foreground(colorYellow)
	demoStatusIdleSty = lipgloss.NewStyle().Foreground(colorGreen)
)

// demoTickInterval maps one real tick to one virtual tick, so transitions
// in the demo take roughly their configured wall-clock duration.
const demoTickInterval = 50 * time.Millisecond

// demoScreens are the route names the push/present keys cycle through.
var demoScreens = []string{"home", "library", "album", "track", "settings", "profile", "search"}

// demoCommand creates the interactive demo command.
func (c *CLI) demoCommand() *cobra.Command {
	var tabs int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Drive a live navigator interactively",
		Long: `Drive a live navigator interactively.

The demo hosts a navigator in a terminal UI. Keys issue navigation intents;
the coordinator serializes them exactly as it would in an application, so
mashing present/dismiss shows queueing, retries, and drops live.

  p push       b pop        r pop to root
  s sheet      f cover      d dismiss     a dismiss all   w swipe top
  1-9 tab      q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDemo(tabs)
		},
	}

	cmd.Flags().IntVar(&tabs, "tabs", 3, "number of tabs")

	return cmd
}

// runDemo hosts the bubbletea program around a fresh tab navigator.
func (c *CLI) runDemo(tabs int) error {
	sched := navigation.NewManualScheduler()
	nav := navigation.NewTabNavigator(tabs, navigation.Config{Scheduler: sched})
	nav.Path().Push(route.Name("home"))

	recorder := trace.NewRecorder()
	observability.SetNavigationHooks(recorder)
	defer observability.Reset()

	m := demoModel{nav: nav, sched: sched, recorder: recorder}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// demoModel - Live navigator TUI
// =============================================================================

type demoTickMsg time.Time

type demoModel struct {
	nav      *navigation.TabNavigator
	sched    *navigation.ManualScheduler
	recorder *trace.Recorder
	next     int
	width    int
}

func (m demoModel) Init() tea.Cmd {
	return demoTick()
}

func demoTick() tea.Cmd {
	return tea.Tick(demoTickInterval, func(t time.Time) tea.Msg {
		return demoTickMsg(t)
	})
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case demoTickMsg:
		m.sched.Advance(demoTickInterval)
		return m, demoTick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.nav.Path().Push(route.Name(m.nextScreen()))
		case "b", "backspace":
			m.nav.Path().Pop()
		case "r":
			m.nav.Path().PopToRoot()
		case "s":
			m.nav.Coordinator().PresentSheet(route.Name(m.nextScreen()))
		case "f":
			m.nav.Coordinator().PresentFullScreenCover(route.Name(m.nextScreen()))
		case "d":
			m.nav.Coordinator().DismissModal()
		case "a":
			m.nav.Coordinator().DismissAllModals()
		case "w":
			if depth := m.nav.Coordinator().ModalDepth(); depth > 0 {
				m.nav.Coordinator().SwipeDismiss(depth - 1)
			}
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				m.nav.SelectTab(int(key[0] - '1'))
			}
		}
	}
	return m, nil
}

// nextScreen cycles through the demo route names.
func (m *demoModel) nextScreen() string {
	name := demoScreens[m.next%len(demoScreens)]
	m.next++
	return name
}

func (m demoModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("conductor demo"))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.tabBar())
	b.WriteString("\n")

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.pathPane(), m.modalPane())
	b.WriteString(panes)
	b.WriteString("\n")
	b.WriteString(m.eventPane())
	b.WriteString("\n")

	b.WriteString(listDimStyle.Render("p push  b pop  r root  s sheet  f cover  d dismiss  a all  w swipe  1-9 tab  q quit"))
	return b.String()
}

func (m demoModel) statusLine() string {
	co := m.nav.Coordinator()
	if co.IsTransitioning() {
		s := "transitioning"
		if n := co.PendingCount(); n > 0 {
			s = fmt.Sprintf("transitioning (%d pending)", n)
		}
		return demoStatusBusySty.Render(s)
	}
	return demoStatusIdleSty.Render("idle")
}

func (m demoModel) tabBar() string {
	var parts []string
	for i := 0; i < m.nav.TabCount(); i++ {
		label := fmt.Sprintf("tab %d", i+1)
		if i == m.nav.SelectedTab() {
			parts = append(parts, demoTabActiveSty.Render("● "+label))
		} else {
			parts = append(parts, demoTabStyle.Render("○ "+label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// pathPane renders the selected tab's back-stack, top last.
func (m demoModel) pathPane() string {
	var b strings.Builder
	b.WriteString(demoTopStyle.Render("Path"))
	b.WriteString("\n")

	routes := m.nav.Path().Routes()
	if len(routes) == 0 {
		b.WriteString(listDimStyle.Render("(empty)"))
	}
	for i, r := range routes {
		line := fmt.Sprintf("%d  %s", i, r.Key())
		if i == len(routes)-1 {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return demoPaneStyle.Width(32).Render(b.String())
}

// modalPane renders the shared modal stack, topmost entry highlighted.
func (m demoModel) modalPane() string {
	var b strings.Builder
	b.WriteString(demoTopStyle.Render("Modals"))
	b.WriteString("\n")

	entries := m.nav.Coordinator().ModalEntries()
	if len(entries) == 0 {
		b.WriteString(listDimStyle.Render("(none)"))
	}
	for i, e := range entries {
		line := fmt.Sprintf("%d  %s (%s)", i, e.Route.Key(), e.Style)
		if i == len(entries)-1 {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return demoPaneStyle.Width(38).Render(b.String())
}

// eventPane shows the tail of the diagnostics feed.
func (m demoModel) eventPane() string {
	const tail = 6

	var b strings.Builder
	b.WriteString(demoTopStyle.Render("Events"))
	b.WriteString("\n")

	events := m.recorder.Events()
	if len(events) == 0 {
		b.WriteString(listDimStyle.Render("(none yet)"))
	}
	start := 0
	if len(events) > tail {
		start = len(events) - tail
	}
	for _, e := range events[start:] {
		style := listNormalStyle
		switch e.Kind {
		case trace.KindDropped, trace.KindRetryExhausted:
			style = StyleWarning
		case trace.KindQueued, trace.KindRetry, trace.KindNoOp:
			style = listDimStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%3d  %s", e.Seq, e.Label())))
		b.WriteString("\n")
	}
	return demoPaneStyle.Width(72).Render(b.String())
}
