// Package vlist is the rendering-layer consumer of the windowing engine: a
// bubbletea component that renders only the engine's current window of a
// very large collection, with spacers standing in for everything outside
// it.
package vlist

import (
	"math"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/vista-tui/vista/internal/engine"
	"github.com/vista-tui/vista/internal/source"
	"github.com/vista-tui/vista/internal/tui/styles"
	"github.com/vista-tui/vista/internal/tui/util"
)

const ViewportDefaultScrollSize = 5

// DataMsg delivers a completed fetch back to the component.
type DataMsg struct {
	Res engine.Result[source.Row]
}

type renderedRow struct {
	index  int
	view   string
	height int // rendered lines plus the trailing gap
}

// Model renders the engine's window and feeds scroll geometry back to it.
type Model struct {
	eng    *engine.Engine[source.Row]
	keyMap KeyMap

	width, height int
	gap           int

	scroll      float64
	scrollingUp bool

	rows []renderedRow
}

// New creates the list over an engine.
func New(eng *engine.Engine[source.Row], gap int) *Model {
	return &Model{
		eng:    eng,
		keyMap: DefaultKeyMap(),
		gap:    gap,
	}
}

// Init issues the fetch for the initial window.
func (m *Model) Init() tea.Cmd {
	return m.fetch(m.eng.Prime().Request)
}

// Update implements util.Model.
func (m *Model) Update(msg tea.Msg) (util.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keyMap.Down):
			return m, m.scrollBy(ViewportDefaultScrollSize)
		case key.Matches(msg, m.keyMap.Up):
			return m, m.scrollBy(-ViewportDefaultScrollSize)
		case key.Matches(msg, m.keyMap.HalfPageDown):
			return m, m.scrollBy(float64(m.height) / 2)
		case key.Matches(msg, m.keyMap.HalfPageUp):
			return m, m.scrollBy(-float64(m.height) / 2)
		case key.Matches(msg, m.keyMap.PageDown):
			return m, m.scrollBy(float64(m.height))
		case key.Matches(msg, m.keyMap.PageUp):
			return m, m.scrollBy(-float64(m.height))
		case key.Matches(msg, m.keyMap.Home):
			m.scroll = 0
			m.scrollingUp = true
			return m, m.measure()
		case key.Matches(msg, m.keyMap.End):
			m.scroll = math.Inf(1) // clamped to the bottom during measure
			m.scrollingUp = false
			return m, m.measure()
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelDown:
			return m, m.scrollBy(ViewportDefaultScrollSize)
		case tea.MouseWheelUp:
			return m, m.scrollBy(-ViewportDefaultScrollSize)
		}
	case DataMsg:
		applied := m.eng.OnDataResult(msg.Res)
		if err := m.eng.Err(); err != nil {
			return m, util.ReportError(err)
		}
		if applied {
			// Freshly loaded rows replace placeholders; re-measure so the
			// estimate picks up their real heights.
			return m, m.measure()
		}
	}
	return m, nil
}

// SetSize resizes the list.
func (m *Model) SetSize(width, height int) tea.Cmd {
	if width == m.width && height == m.height {
		return nil
	}
	m.width = width
	m.height = height
	return m.measure()
}

func (m *Model) scrollBy(delta float64) tea.Cmd {
	m.scrollingUp = delta < 0
	m.scroll += delta
	return m.measure()
}

// measure runs one reconciliation pass: render the window, report the
// spacer geometry and exact row bounds to the engine, and fetch if the
// window moved.
func (m *Model) measure() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	m.renderWindow()

	before, after := m.eng.Spacers()
	bounds := make(engine.RowBounds, len(m.rows))
	top := before
	for i, r := range m.rows {
		bounds[i] = engine.Bound{Top: top, Bottom: top + float64(r.height)}
		top += float64(r.height)
	}
	gapH := top - before

	total := before + gapH + after
	m.scroll = ordered.Clamp(m.scroll, 0, math.Max(total-float64(m.height), 0))

	wc, ok := m.eng.OnMeasurement(engine.Measurement{
		SpacerBefore: before,
		SpacerGap:    gapH,
		Container:    float64(m.height),
		ScrollOffset: m.scroll,
		Rows:         bounds,
		BeforeSide:   m.scrollingUp,
	})
	if !ok {
		return nil
	}
	m.renderWindow()
	return m.fetch(wc.Request)
}

func (m *Model) fetch(req engine.Request) tea.Cmd {
	return func() tea.Msg {
		return DataMsg{Res: m.eng.Fetch(req)}
	}
}

func (m *Model) renderWindow() {
	w := m.eng.CurrentWindow()
	_, minH := m.eng.Estimate()
	placeholder := m.renderPlaceholder(max(int(minH), 1))

	rows := make([]renderedRow, 0, w.Capacity)
	for i := w.ItemsBefore; i < w.ItemsBefore+w.Capacity; i++ {
		view := placeholder
		if row, ok := m.eng.ItemAt(i); ok {
			view = m.renderRow(row)
		}
		rows = append(rows, renderedRow{
			index:  i,
			view:   view,
			height: lipgloss.Height(view) + m.gap,
		})
	}
	m.rows = rows
}

func (m *Model) renderRow(row source.Row) string {
	title := styles.Badge.Render(row.Kind) + " " + styles.Title.Render(row.Title)
	title = ansi.Truncate(title, m.width, "…")
	body := styles.Body.Width(m.width).Render(row.Body)
	return title + "\n" + body
}

// renderPlaceholder draws an unloaded slot at the engine's minimum size, so
// placeholders never overshoot a real row.
func (m *Model) renderPlaceholder(height int) string {
	line := styles.Placeholder.Render(strings.Repeat("░", max(min(m.width, 24), 1)))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// View composes the visible slice of the virtual content: blank spacer
// lines, then the rendered rows, then more blanks. Only visible lines are
// materialized, no matter how large the collection is.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	before, _ := m.eng.Spacers()
	skip := int(math.Round(m.scroll))

	lines := make([]string, 0, m.height)
	if beforeH := int(math.Round(before)); skip < beforeH {
		n := min(beforeH-skip, m.height)
		for range n {
			lines = append(lines, "")
		}
		skip = 0
	} else {
		skip -= beforeH
	}

	for _, r := range m.rows {
		if len(lines) >= m.height {
			break
		}
		rl := strings.Split(r.view, "\n")
		for range m.gap {
			rl = append(rl, "")
		}
		if skip >= len(rl) {
			skip -= len(rl)
			continue
		}
		rl = rl[skip:]
		skip = 0
		take := min(len(rl), m.height-len(lines))
		lines = append(lines, rl[:take]...)
	}

	// Whatever remains is after-spacer territory.
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// ScrollPercent reports how far down the virtual content the viewport is.
func (m *Model) ScrollPercent() float64 {
	before, after := m.eng.Spacers()
	var gapH float64
	for _, r := range m.rows {
		gapH += float64(r.height)
	}
	total := before + gapH + after
	if total <= float64(m.height) {
		return 1
	}
	return m.scroll / (total - float64(m.height))
}
