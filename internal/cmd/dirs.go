package cmd

import (
	"os"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/vista-tui/vista/internal/config"
	"github.com/vista-tui/vista/internal/home"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Print directories used by vista",
	Long: `Print the directories where vista stores its data and log files.`,
	Run: func(cmd *cobra.Command, args []string) {
		dataDir := config.Load().DataDir
		if term.IsTerminal(os.Stdout.Fd()) {
			// We're in a TTY: make it fancy.
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				StyleFunc(func(row, col int) lipgloss.Style {
					return lipgloss.NewStyle().Padding(0, 2)
				}).
				Row("Data", home.Short(dataDir))
			lipgloss.Println(t)
			return
		}
		// Not a TTY.
		cmd.Println(dataDir)
	},
}
