// Package styles holds the shared lipgloss styles of the TUI.
package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(charmtone.Malibu)

	Badge = lipgloss.NewStyle().
		Foreground(charmtone.Pepper).
		Background(charmtone.Dolly).
		Padding(0, 1)

	Body = lipgloss.NewStyle().Foreground(charmtone.Ash)

	Placeholder = lipgloss.NewStyle().Faint(true).Foreground(charmtone.Squid)

	StatusBar = lipgloss.NewStyle().
			Background(charmtone.Charple).
			Foreground(charmtone.Butter).
			Padding(0, 1)

	StatusError = lipgloss.NewStyle().
			Background(charmtone.Cherry).
			Foreground(charmtone.Butter).
			Padding(0, 1)
)
