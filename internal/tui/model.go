// Package tui is the interactive channel picker: a checklist of the
// discovered channels plus the frame range fields, run as a bubbletea
// program.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/rdmdenoise/internal/frames"
	"github.com/backmassage/rdmdenoise/internal/selection"
)

// Result is what the picker hands back once it exits.
type Result struct {
	Selected  []string
	Range     frames.Range
	Confirmed bool
}

type focus int

const (
	focusList focus = iota
	focusStart
	focusEnd
	focusCount
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C77DFF")).
			MarginBottom(1)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	labelStyle    = lipgloss.NewStyle().Width(8)
	errBlockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
)

// Model is the bubbletea model behind the picker.
type Model struct {
	title    string
	list     *selection.Checklist
	cursor   int
	focus    focus
	start    textinput.Model
	end      textinput.Model
	keys     keyMap
	help     help.Model
	errorMsg string
	result   Result
}

// New builds a picker over list. The frame fields are pre-filled from
// initial, which may be empty.
func New(title string, list *selection.Checklist, initial frames.Range) *Model {
	start := newFrameInput("1001")
	start.SetValue(initial.Start)
	end := newFrameInput("1100")
	end.SetValue(initial.End)

	return &Model{
		title: title,
		list:  list,
		start: start,
		end:   end,
		keys:  defaultKeys(),
		help:  help.New(),
	}
}

func newFrameInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 9
	ti.Width = 10
	ti.Prompt = ""
	return ti
}

// Result returns the outcome. Confirmed is false until the user submits a
// valid frame range.
func (m *Model) Result() Result { return m.result }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.result = Result{}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			return m, m.cycleFocus(msg.String() == "shift+tab")
		}
		if m.focus == focusList {
			m.updateList(msg)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusStart:
		m.start, cmd = m.start.Update(msg)
	case focusEnd:
		m.end, cmd = m.end.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.list.Toggle(m.cursor)
	case key.Matches(msg, m.keys.All):
		m.list.SetAll(true)
	case key.Matches(msg, m.keys.None):
		m.list.SetAll(false)
	}
}

func (m *Model) cycleFocus(back bool) tea.Cmd {
	step := focus(1)
	if back {
		step = focusCount - 1
	}
	m.focus = (m.focus + step) % focusCount
	m.start.Blur()
	m.end.Blur()
	switch m.focus {
	case focusStart:
		return m.start.Focus()
	case focusEnd:
		return m.end.Focus()
	}
	return nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	r := frames.Range{
		Start: strings.TrimSpace(m.start.Value()),
		End:   strings.TrimSpace(m.end.Value()),
	}
	if err := r.Validate(); err != nil {
		m.errorMsg = capitalize(err.Error())
		return m, nil
	}
	m.errorMsg = ""
	m.result = Result{
		Selected:  m.list.Selected(),
		Range:     r,
		Confirmed: true,
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	if m.list.Len() == 0 {
		b.WriteString(dimStyle.Render("  no channels found"))
		b.WriteString("\n")
	}
	for i, it := range m.list.Items() {
		cursor := "  "
		if m.focus == focusList && i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		name := it.Name
		if it.Selected {
			box = checkedStyle.Render("[x]")
			name = checkedStyle.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, name)
	}

	fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf("%d of %d selected", m.list.Count(), m.list.Len())))
	fmt.Fprintf(&b, "\n%s%s\n", labelStyle.Render("Start"), m.start.View())
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("End"), m.end.View())

	if m.errorMsg != "" {
		fmt.Fprintf(&b, "\n%s\n", errBlockStyle.Render("⚠ "+m.errorMsg))
	}
	fmt.Fprintf(&b, "\n%s\n", m.help.View(m.keys))
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Run opens the picker on the alternate screen and blocks until the user
// submits or cancels.
func Run(title string, names []string, initial frames.Range) (Result, error) {
	m := New(title, selection.New(names), initial)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return Result{}, fmt.Errorf("tui: %w", err)
	}
	return m.Result(), nil
}

// Selector adapts Run to the pipeline's channel selector.
type Selector struct {
	Title string
}

// Select implements pipeline.Selector.
func (s Selector) Select(names []string, initial frames.Range) (Result, error) {
	title := s.Title
	if title == "" {
		title = "RDM Denoise"
	}
	return Run(title, names, initial)
}
