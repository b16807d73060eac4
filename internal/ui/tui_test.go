package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtodo/internal/testutil"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddPending("p1", "buy milk", "2025-01-02")
	svc.AddPending("p2", "file taxes", "2025-01-01")
	svc.AddDone("d1", "water plants", "2024-12-31", "2025-01-01")
	return svc
}

func TestNew_LoadsSnapshot(t *testing.T) {
	m := New(context.Background(), seeded())
	assert.Len(t, m.pending, 2)
	assert.Len(t, m.done, 1)
	assert.Equal(t, focusInput, m.focus)

	view := m.View()
	assert.Contains(t, view, "buy milk")
	assert.Contains(t, view, "water plants")
	assert.Contains(t, view, "added 2025-01-02")
	assert.Contains(t, view, "done 2025-01-01")
}

func TestEnter_AddsTask(t *testing.T) {
	svc := seeded()
	m := New(context.Background(), svc)

	m.input.SetValue("  call mom  ")
	m.Update(key("enter"))

	assert.Equal(t, []string{"add:call mom"}, svc.Calls)
	require.Len(t, m.pending, 3)
	assert.Equal(t, "call mom", m.pending[0].Text)
	assert.Empty(t, m.input.Value())
	assert.NoError(t, m.err)
}

func TestEnter_BlankInputIgnored(t *testing.T) {
	svc := seeded()
	m := New(context.Background(), svc)

	m.input.SetValue("   ")
	m.Update(key("enter"))

	assert.Empty(t, svc.Calls)
	assert.Len(t, m.pending, 2)
}

func TestTyping_GoesToInput(t *testing.T) {
	m := New(context.Background(), seeded())
	m.Update(key("h"))
	m.Update(key("i"))
	assert.Equal(t, "hi", m.input.Value())
}

func TestSpace_TogglesSelected(t *testing.T) {
	svc := seeded()
	m := New(context.Background(), svc)

	m.Update(key("tab"))
	require.Equal(t, focusList, m.focus)
	m.Update(key("down"))
	m.Update(key("space"))

	assert.Equal(t, []string{"done:p2"}, svc.Calls)
	require.Len(t, m.pending, 1)
	require.Len(t, m.done, 2)
	assert.Equal(t, "file taxes", m.done[0].Text)
	assert.Equal(t, testutil.FakeToday, m.done[0].DateCompleted)
}

func TestSpace_ReopensDoneTask(t *testing.T) {
	svc := seeded()
	m := New(context.Background(), svc)

	m.Update(key("tab"))
	m.Update(key("down"))
	m.Update(key("down"))
	m.Update(key("space"))

	assert.Equal(t, []string{"undo:d1"}, svc.Calls)
	require.Len(t, m.pending, 3)
	assert.Equal(t, "water plants", m.pending[0].Text)
	assert.Empty(t, m.done)
}

func TestCursor_StaysInBounds(t *testing.T) {
	m := New(context.Background(), seeded())
	m.Update(key("tab"))

	m.Update(key("up"))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 10; i++ {
		m.Update(key("down"))
	}
	assert.Equal(t, 2, m.cursor)
}

func TestCursor_ClampedAfterListShrinks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddPending("p1", "only", "2025-01-01")
	m := New(context.Background(), svc)

	m.Update(key("tab"))
	m.Update(key("space"))
	assert.Equal(t, 0, m.cursor)
	assert.Len(t, m.done, 1)
}

func TestToggle_EmptyListNoop(t *testing.T) {
	svc := testutil.NewFakeService()
	m := New(context.Background(), svc)

	m.Update(key("tab"))
	m.Update(key("space"))
	assert.Empty(t, svc.Calls)
}

func TestSaveFailure_KeepsChangeAndShowsError(t *testing.T) {
	svc := seeded()
	svc.SaveErr = errors.New("disk full")
	m := New(context.Background(), svc)

	m.input.SetValue("new task")
	m.Update(key("enter"))

	require.Len(t, m.pending, 3)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "save failed: disk full")
}

func TestQuit(t *testing.T) {
	m := New(context.Background(), seeded())

	_, cmd := m.Update(key("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	m.Update(key("tab"))
	_, cmd = m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestQ_TypedInInput(t *testing.T) {
	m := New(context.Background(), seeded())
	m.Update(key("q"))
	assert.Equal(t, "q", m.input.Value())
}

func TestRun_RequiresTTY(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), seeded(), &bytes.Buffer{}, &out)
	assert.ErrorIs(t, err, ErrNotTTY)
}

func TestIsTTY_Buffer(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
}
