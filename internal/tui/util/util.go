package util

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
)

// Model is the interface all top-level TUI components implement.
type Model interface {
	Init() tea.Cmd
	Update(tea.Msg) (Model, tea.Cmd)
	View() string
}

// CmdHandler wraps a message in a command.
func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeWarn
	InfoTypeError
)

// InfoMsg carries a status-line notification.
type InfoMsg struct {
	Type InfoType
	Msg  string
}

// ReportError surfaces an error on the status line.
func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  err.Error(),
	})
}

// ReportInfo surfaces an informational note on the status line.
func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}
