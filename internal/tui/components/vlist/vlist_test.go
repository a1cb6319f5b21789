package vlist

import (
	"math"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/vista-tui/vista/internal/engine"
	"github.com/vista-tui/vista/internal/source"
)

func newTestList(t *testing.T, n int) *Model {
	t.Helper()
	eng, err := engine.New(engine.Options{
		NominalSize:    3,
		OverscanBefore: 10,
		OverscanAfter:  10,
		Capacity:       20,
		Count:          n,
	}, source.FromSlice(source.GenerateRows(n)))
	require.NoError(t, err)
	return New(eng, 1)
}

// drive runs the fetch/apply/measure loop until it settles or the step
// budget runs out, checking the window and view invariants at every step.
func drive(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for range 40 {
		if cmd == nil {
			return
		}
		msg := cmd()
		if msg == nil {
			return
		}
		_, cmd = m.Update(msg)
		requireListInvariant(t, m)
	}
}

func requireListInvariant(t *testing.T, m *Model) {
	t.Helper()
	w := m.eng.CurrentWindow()
	require.GreaterOrEqual(t, w.ItemsBefore, 0)
	require.GreaterOrEqual(t, w.Capacity, 0)
	require.LessOrEqual(t, w.ItemsBefore+w.Capacity, w.Count)
	require.GreaterOrEqual(t, m.scroll, 0.0)
	if m.width > 0 && m.height > 0 {
		require.Len(t, strings.Split(m.View(), "\n"), m.height)
	}
}

func TestInitialRenderFillsViewport(t *testing.T) {
	m := newTestList(t, 200)
	drive(t, m, m.Init())
	drive(t, m, m.SetSize(80, 24))

	w := m.eng.CurrentWindow()
	require.Equal(t, 0, w.ItemsBefore)
	require.Positive(t, w.Capacity)

	_, ok := m.eng.ItemAt(0)
	require.True(t, ok, "first item should be loaded")

	view := m.View()
	require.Len(t, strings.Split(view, "\n"), 24)
	require.Contains(t, view, "Record 1")
}

func TestScrollDownMovesWindowForward(t *testing.T) {
	m := newTestList(t, 200)
	drive(t, m, m.Init())
	drive(t, m, m.SetSize(80, 24))

	drive(t, m, m.scrollBy(60))

	w := m.eng.CurrentWindow()
	require.Positive(t, w.ItemsBefore, "window should have slid past the start")
	require.Positive(t, m.scroll)
	require.LessOrEqual(t, w.ItemsBefore+w.Capacity, w.Count)
}

func TestJumpToEndPinsWindowToTail(t *testing.T) {
	m := newTestList(t, 200)
	drive(t, m, m.Init())
	drive(t, m, m.SetSize(80, 24))

	m.scrollingUp = false
	m.scroll = math.Inf(1)
	drive(t, m, m.measure())

	w := m.eng.CurrentWindow()
	require.Equal(t, w.Count, w.ItemsBefore+w.Capacity, "window should be flush with the end")
	require.False(t, math.IsInf(m.scroll, 1), "scroll should be clamped to the content")
	require.InDelta(t, 1, m.ScrollPercent(), 0.2)
}

func TestJumpBackHomeReturnsToStart(t *testing.T) {
	m := newTestList(t, 200)
	drive(t, m, m.Init())
	drive(t, m, m.SetSize(80, 24))

	m.scrollingUp = false
	m.scroll = math.Inf(1)
	drive(t, m, m.measure())

	m.scrollingUp = true
	m.scroll = 0
	drive(t, m, m.measure())

	w := m.eng.CurrentWindow()
	require.Equal(t, 0, w.ItemsBefore)
	require.Zero(t, m.scroll)
}

func TestViewBeforeSizingIsEmpty(t *testing.T) {
	m := newTestList(t, 50)
	require.Empty(t, m.View())
	require.Nil(t, m.measure())
}
