// Package tui is the terminal frontend: a windowed list over a collection
// source, plus a status bar.
package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/vista-tui/vista/internal/engine"
	"github.com/vista-tui/vista/internal/source"
	"github.com/vista-tui/vista/internal/tui/components/vlist"
	"github.com/vista-tui/vista/internal/tui/styles"
	"github.com/vista-tui/vista/internal/tui/util"
)

const statusBarHeight = 1

type appModel struct {
	wWidth, wHeight int
	keyMap          KeyMap

	eng  *engine.Engine[source.Row]
	list *vlist.Model

	info    util.InfoMsg
	hasInfo bool
}

// New creates the top-level TUI model over an engine.
func New(eng *engine.Engine[source.Row], gap int) tea.Model {
	return &appModel{
		keyMap: DefaultKeyMap(),
		eng:    eng,
		list:   vlist.New(eng, gap),
	}
}

func (a *appModel) Init() tea.Cmd {
	return a.list.Init()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.wWidth, a.wHeight = msg.Width, msg.Height
		return a, a.list.SetSize(msg.Width, msg.Height-statusBarHeight)
	case tea.KeyPressMsg:
		if key.Matches(msg, a.keyMap.Quit) {
			return a, tea.Quit
		}
	case util.InfoMsg:
		a.info = msg
		a.hasInfo = true
		return a, nil
	}
	_, cmd := a.list.Update(msg)
	return a, cmd
}

func (a *appModel) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.SetContent(a.list.View() + "\n" + a.statusBar())
	return view
}

func (a *appModel) statusBar() string {
	w := a.eng.CurrentWindow()
	avg, _ := a.eng.Estimate()

	left := styles.StatusBar.Render("vista")
	right := styles.StatusBar.Render(fmt.Sprintf(
		"%d–%d of %d · avg %.1f · %3.0f%%",
		w.ItemsBefore+1, w.ItemsBefore+w.Capacity, w.Count,
		avg, a.list.ScrollPercent()*100,
	))

	middle := ""
	if a.hasInfo {
		style := styles.StatusBar
		if a.info.Type == util.InfoTypeError {
			style = styles.StatusError
		}
		middle = style.Render(a.info.Msg)
	}

	gap := a.wWidth - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if gap < 0 {
		middle = ansi.Truncate(middle, max(lipgloss.Width(middle)+gap, 0), "…")
		gap = a.wWidth - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	}
	return left + middle + strings.Repeat(" ", max(gap, 0)) + right
}
