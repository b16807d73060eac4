// Package ui provides the interactive terminal front end.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mdtodo/internal/service"
	"mdtodo/internal/task"
)

// ErrNotTTY is returned by Run when output is not a terminal.
var ErrNotTTY = errors.New("ui requires a TTY")

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Run starts the UI on in/out and blocks until the user quits.
func Run(ctx context.Context, svc service.Service, in io.Reader, out io.Writer) error {
	if !IsTTY(out) {
		return ErrNotTTY
	}
	program := tea.NewProgram(New(ctx, svc),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Model is the Bubble Tea model. It keeps a display snapshot of both lists
// and sends every change through the service by task ID.
type Model struct {
	ctx   context.Context
	svc   service.Service
	input textinput.Model
	focus focusArea

	pending []task.Task
	done    []task.Task
	cursor  int // row across pending then done

	status string
	err    error
}

// New creates a model and loads the current lists.
func New(ctx context.Context, svc service.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Add new TODO here"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	m := &Model{
		ctx:   ctx,
		svc:   svc,
		input: ti,
		focus: focusInput,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.focus == focusInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		return m, m.switchFocus()
	}

	if m.focus == focusInput {
		return m.updateInput(key)
	}
	return m.updateList(key)
}

func (m *Model) updateInput(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "enter":
		m.add(m.input.Value())
		return m, nil
	case "esc":
		return m, m.switchFocus()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) updateList(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rows()-1 {
			m.cursor++
		}
	case " ", "x", "enter":
		m.toggleSelected()
	case "a", "i":
		return m, m.switchFocus()
	}
	return m, nil
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) add(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	t, err := m.svc.Add(m.ctx, text)
	m.report(err, fmt.Sprintf("added %q", t.Text))
	m.input.Reset()
	m.refresh()
}

func (m *Model) toggleSelected() {
	t, ok := m.selected()
	if !ok {
		return
	}
	moved, err := m.svc.SetDone(m.ctx, t.ID, !t.Completed)
	verb := "reopened"
	if moved.Completed {
		verb = "completed"
	}
	m.report(err, fmt.Sprintf("%s %q", verb, t.Text))
	m.refresh()
}

// report records the outcome of a mutation. A failed save leaves the change
// in place, so the UI keeps showing it alongside the error.
func (m *Model) report(err error, ok string) {
	m.err = err
	if err == nil {
		m.status = ok
		return
	}
	m.status = ""
}

func (m *Model) refresh() {
	pending, err := m.svc.Pending(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	done, err := m.svc.Done(m.ctx)
	if err != nil {
		m.err = err
		return
	}
	m.pending, m.done = pending, done
	if m.cursor >= m.rows() {
		m.cursor = max(m.rows()-1, 0)
	}
}

func (m *Model) rows() int {
	return len(m.pending) + len(m.done)
}

func (m *Model) selected() (task.Task, bool) {
	switch {
	case m.cursor < len(m.pending):
		return m.pending[m.cursor], true
	case m.cursor < m.rows():
		return m.done[m.cursor-len(m.pending)], true
	default:
		return task.Task{}, false
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mdtodo"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Current TODOs"))
	b.WriteString("\n")
	if len(m.pending) == 0 {
		b.WriteString(helpStyle.Render("  nothing to do"))
		b.WriteString("\n")
	}
	for i, t := range m.pending {
		m.writeRow(&b, i, t)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Completed TODOs"))
	b.WriteString("\n")
	for i, t := range m.done {
		m.writeRow(&b, len(m.pending)+i, t)
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	case m.status != "":
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) writeRow(b *strings.Builder, row int, t task.Task) {
	cursor := "  "
	if m.focus == focusList && row == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	box, text, date := "[ ]", t.Text, "added "+t.DateAdded
	if t.Completed {
		box, text, date = "[x]", doneStyle.Render(t.Text), "done "+t.DateCompleted
	}
	fmt.Fprintf(b, "%s%s %s  %s\n", cursor, box, text, dateStyle.Render(date))
}

func (m *Model) helpLine() string {
	if m.focus == focusInput {
		return "enter: add • tab: select tasks • ctrl+c: quit"
	}
	return "↑/↓: move • space: toggle done • a: add • q: quit"
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
