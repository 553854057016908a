// Package ui renders the navigation shell: breadcrumbs for the current
// location, the section menu, the effective parameter table, and a
// path prompt. All state transitions go through the Navigator; the
// shell never writes CurrentPath itself.
package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/dashboard"
	"github.com/oakwood-commons/navkit/pkg/nav"
	"github.com/oakwood-commons/navkit/pkg/pathcodec"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

// mode selects what the main input handles.
type mode int

const (
	modeBrowse mode = iota
	modePathInput
)

// Shell is the top-level bubbletea model.
type Shell struct {
	navigator *nav.Navigator
	board     *dashboard.Board
	stack     *nav.MemoryStack
	history   *nav.History
	log       logr.Logger

	input      textinput.Model
	mode       mode
	menuIndex  int
	status     string
	loginMsg   string
	width      int
	height     int
	noColor    bool
	quitting   bool
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithNoColor disables styled output.
func WithNoColor(noColor bool) ShellOption {
	return func(s *Shell) { s.noColor = noColor }
}

// WithShellLogger sets the logger.
func WithShellLogger(log logr.Logger) ShellOption {
	return func(s *Shell) { s.log = log }
}

// NewShell creates the shell over an already-wired navigator. stack
// and history may be nil when the host manages its own history.
func NewShell(navigator *nav.Navigator, board *dashboard.Board, stack *nav.MemoryStack, history *nav.History, opts ...ShellOption) *Shell {
	ti := textinput.New()
	ti.Placeholder = `section/route?{"key":"value"}`
	ti.CharLimit = 500
	ti.SetWidth(80)
	ti.Prompt = "❯ "

	s := &Shell{
		navigator: navigator,
		board:     board,
		stack:     stack,
		history:   history,
		log:       logr.Discard(),
		input:     ti,
		width:     80,
		height:    24,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PromptLogin satisfies the guard's prompt callback: the message lands
// in the shell's status line.
func (s *Shell) PromptLogin(area, message string) {
	s.loginMsg = fmt.Sprintf("[%s] %s", area, message)
}

// Init implements tea.Model.
func (s *Shell) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.input.SetWidth(msg.Width - 4)
		return s, nil

	case tea.KeyMsg:
		if s.mode == modePathInput {
			return s.updatePathInput(msg)
		}
		return s.updateBrowse(msg)
	}
	return s, nil
}

func (s *Shell) updatePathInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		target := strings.TrimSpace(s.input.Value())
		s.mode = modeBrowse
		s.input.Blur()
		if target != "" {
			s.goTo(target)
		}
		return s, nil
	case "esc":
		s.mode = modeBrowse
		s.input.Blur()
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Shell) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := s.navigator.State()

	switch msg.String() {
	case "q", "ctrl+c":
		s.quitting = true
		return s, tea.Quit

	case "g":
		s.mode = modePathInput
		s.input.SetValue(state.CurrentPath)
		return s, s.input.Focus()

	case "m":
		state.MenuOpen = !state.MenuOpen
		if state.MenuOpen {
			s.menuIndex = 0
		}
		return s, nil

	case "up":
		if state.MenuOpen && s.menuIndex > 0 {
			s.menuIndex--
		}
		return s, nil

	case "down":
		if state.MenuOpen && s.menuIndex < len(s.sections())-1 {
			s.menuIndex++
		}
		return s, nil

	case "enter":
		if state.MenuOpen {
			sections := s.sections()
			if s.menuIndex < len(sections) {
				s.goTo(sections[s.menuIndex].SegmentKey)
			}
		}
		return s, nil

	case "left", "backspace":
		s.historyStep(func() (string, bool) { return s.stack.Back() })
		return s, nil

	case "right":
		s.historyStep(func() (string, bool) { return s.stack.Forward() })
		return s, nil

	case "d":
		s.goTo(s.navigator.DashboardSection())
		return s, nil

	case "p":
		s.pinCurrent()
		return s, nil
	}
	return s, nil
}

// goTo runs a navigation attempt and records the outcome in the
// status line.
func (s *Shell) goTo(target string) {
	s.loginMsg = ""
	out, err := s.navigator.Navigate(context.Background(), target)
	if err != nil {
		s.status = "navigation cancelled"
		return
	}
	switch out.Kind {
	case nav.OutcomeBlocked:
		s.status = "access blocked"
	case nav.OutcomeNone:
		s.status = "already here"
	default:
		s.status = string(out.Kind) + " → " + out.Path
	}
}

// historyStep moves the in-process stack and feeds the landed token
// back through the history synchronizer.
func (s *Shell) historyStep(move func() (string, bool)) {
	if s.stack == nil || s.history == nil {
		return
	}
	token, ok := move()
	if !ok {
		s.status = "history edge"
		return
	}
	s.history.HandlePop(token)
	s.status = "history → " + s.navigator.State().CurrentPath
}

// pinCurrent pins the current route, with its parameters, to the
// dashboard.
func (s *Shell) pinCurrent() {
	if s.board == nil {
		return
	}
	current := s.navigator.State().CurrentPath
	clean, _ := pathcodec.Split(current)
	if clean == "" || clean == s.navigator.DashboardSection() {
		s.status = "nothing to pin"
		return
	}
	title := s.navigator.Registry().DisplayName(clean, true)
	s.board.Pin(current, title)
	s.status = "pinned " + title
}

func (s *Shell) sections() []*routes.Route {
	return s.navigator.Registry().Sections()
}

// View implements tea.Model.
func (s *Shell) View() tea.View {
	if s.quitting {
		return tea.NewView("")
	}

	var b strings.Builder
	state := s.navigator.State()

	b.WriteString(s.renderBreadcrumbs(state.CurrentPath))
	b.WriteString("\n\n")

	if state.MenuOpen {
		b.WriteString(s.renderMenu())
		b.WriteString("\n")
	}

	b.WriteString(s.renderParams())
	b.WriteString("\n")

	if s.navigator.ContextFor(state.CurrentPath) == nav.ContextDashboard && s.board != nil {
		b.WriteString(s.renderBoard())
		b.WriteString("\n")
	}

	if s.mode == modePathInput {
		b.WriteString(s.input.View())
		b.WriteString("\n")
	}

	if s.loginMsg != "" {
		b.WriteString(s.styled(s.loginMsg, "9", true))
		b.WriteString("\n")
	}
	if s.status != "" {
		b.WriteString(s.styled(s.status, "243", false))
		b.WriteString("\n")
	}

	b.WriteString(s.styled("g go · m menu · ←/→ history · p pin · d dashboard · q quit", "240", false))

	v := tea.NewView(b.String())
	v.AltScreen = true
	return v
}

func (s *Shell) styled(text, color string, bold bool) string {
	if s.noColor {
		return text
	}
	st := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if bold {
		st = st.Bold(true)
	}
	return st.Render(text)
}
