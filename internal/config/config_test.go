package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(c *Config)
		expect error
	}{
		{
			name:   "fixed collection",
			mutate: func(c *Config) { c.Rows = 100 },
		},
		{
			name:   "db source",
			mutate: func(c *Config) { c.DBPath = "/tmp/x/vista.db" },
		},
		{
			name:   "no source",
			mutate: func(c *Config) {},
			expect: ErrAmbiguousSource,
		},
		{
			name: "both sources",
			mutate: func(c *Config) {
				c.Rows = 100
				c.DBPath = "/tmp/x/vista.db"
			},
			expect: ErrAmbiguousSource,
		},
		{
			name: "zero nominal height",
			mutate: func(c *Config) {
				c.Rows = 100
				c.NominalRowHeight = 0
			},
			expect: ErrNominalRowHeight,
		},
		{
			name: "negative nominal height",
			mutate: func(c *Config) {
				c.Rows = 100
				c.NominalRowHeight = -1
			},
			expect: ErrNominalRowHeight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expect == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.expect)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	require.InDelta(t, float64(DefaultNominalRowHeight), cfg.NominalRowHeight, 1e-9)
	require.Equal(t, DefaultCapacity, cfg.Capacity)
	require.NotEmpty(t, cfg.DataDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VISTA_NOMINAL_ROW_HEIGHT", "7.5")
	t.Setenv("VISTA_DEBUG", "1")
	cfg := Load()
	require.InDelta(t, 7.5, cfg.NominalRowHeight, 1e-9)
	require.True(t, cfg.Debug)
}
