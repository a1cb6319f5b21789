// Package config holds the runtime configuration of vista.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vista-tui/vista/internal/home"
)

// Defaults. Nominal height is in terminal lines; measured rows refine it
// almost immediately, it only has to be a sane first guess.
const (
	DefaultNominalRowHeight = 3
	DefaultOverscan         = 10
	DefaultGap              = 1
	DefaultCapacity         = 40
)

// Setup errors. These are fatal: the engine must never reconcile on top of
// an invalid configuration.
var (
	ErrNominalRowHeight = errors.New("config: nominal row height must be positive")
	ErrAmbiguousSource  = errors.New("config: set exactly one of rows and db path")
)

// Config is the resolved configuration for one run.
type Config struct {
	// NominalRowHeight is the assumed row height until rows are measured.
	NominalRowHeight float64 `json:"nominal_row_height"`
	// OverscanBefore and OverscanAfter are extra heights, in lines,
	// rendered beyond the visible region to mask scroll latency.
	OverscanBefore float64 `json:"overscan_before"`
	OverscanAfter  float64 `json:"overscan_after"`
	// Gap is the number of blank lines between rows.
	Gap int `json:"gap"`
	// Capacity is the initial number of rendered slots.
	Capacity int `json:"capacity"`

	// Rows, when positive, selects a generated fixed collection of that
	// many rows. DBPath selects the sqlite store instead. Exactly one of
	// the two must be set.
	Rows   int    `json:"rows"`
	DBPath string `json:"db_path"`

	DataDir string `json:"data_dir"`
	Debug   bool   `json:"debug"`
}

// Load builds a Config from defaults and environment overrides. Flag values
// are applied on top by the CLI.
func Load() Config {
	cfg := Config{
		NominalRowHeight: DefaultNominalRowHeight,
		OverscanBefore:   DefaultOverscan,
		OverscanAfter:    DefaultOverscan,
		Gap:              DefaultGap,
		Capacity:         DefaultCapacity,
		DataDir:          defaultDataDir(),
	}
	if v := os.Getenv("VISTA_DATA_DIR"); v != "" {
		cfg.DataDir = home.Long(v)
	}
	if v := os.Getenv("VISTA_NOMINAL_ROW_HEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.NominalRowHeight = f
		}
	}
	if v, _ := strconv.ParseBool(os.Getenv("VISTA_DEBUG")); v {
		cfg.Debug = true
	}
	return cfg
}

// Validate reports the first fatal setup error, if any.
func (c *Config) Validate() error {
	if c.NominalRowHeight <= 0 {
		return ErrNominalRowHeight
	}
	if (c.Rows > 0) == (c.DBPath != "") {
		return ErrAmbiguousSource
	}
	return nil
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "vista")
	}
	return filepath.Join(home.Dir(), ".local", "share", "vista")
}
