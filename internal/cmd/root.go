package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/vista-tui/vista/internal/config"
	"github.com/vista-tui/vista/internal/engine"
	"github.com/vista-tui/vista/internal/log"
	"github.com/vista-tui/vista/internal/source"
	"github.com/vista-tui/vista/internal/tui"
	"github.com/vista-tui/vista/internal/version"
)

func init() {
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom vista data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.Flags().IntP("rows", "n", 0, "Browse a generated fixed collection of this many rows")
	rootCmd.Flags().String("db", "", "Browse the sqlite row store in this directory")
	rootCmd.Flags().Int("seed", 5000, "Seed an empty sqlite store with this many rows")
	rootCmd.Flags().BoolP("help", "h", false, "Help")

	rootCmd.AddCommand(dirsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "vista",
	Short: "Scroll enormous collections in the terminal",
	Long: `Vista renders very large or open-ended collections as a scrollable list
without ever materializing more than a window of rows. Row heights are
estimated until measured, and measurements are never forgotten once a row
scrolls out of view.`,
	Example: `
# Browse a generated fixed collection
vista -n 100000

# Browse a sqlite-backed store, seeding it on first run
vista --db ~/feeds --seed 50000

# Run with debug logging
vista -n 100000 -d
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		log.Setup(cfg.DataDir, cfg.Debug)
		ctx := cmd.Context()

		var src engine.Source[source.Row]
		opts := engine.Options{
			NominalSize:    cfg.NominalRowHeight,
			OverscanBefore: cfg.OverscanBefore,
			OverscanAfter:  cfg.OverscanAfter,
			Capacity:       cfg.Capacity,
		}
		if cfg.Rows > 0 {
			src = source.FromSlice(source.GenerateRows(cfg.Rows))
			opts.Count = cfg.Rows
		} else {
			store, err := openStore(ctx, cmd, cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			src = store
		}

		eng, err := engine.New(opts, src)
		if err != nil {
			return err
		}

		program := tea.NewProgram(
			tui.New(eng, cfg.Gap),
			tea.WithContext(ctx),
		)
		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return err
		}
		return nil
	},
}

func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.DataDir = v
	}
	if v, _ := cmd.Flags().GetBool("debug"); v {
		cfg.Debug = true
	}
	cfg.Rows, _ = cmd.Flags().GetInt("rows")
	cfg.DBPath, _ = cmd.Flags().GetString("db")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return cfg, fmt.Errorf("failed to create data directory: %w", err)
	}
	return cfg, nil
}

func openStore(ctx context.Context, cmd *cobra.Command, cfg config.Config) (*source.Store, error) {
	if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	store, err := source.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	seed, _ := cmd.Flags().GetInt("seed")
	if seed > 0 {
		if err := store.Seed(ctx, seed); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
