package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRPGCore_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadRPGCore(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRPGCore(), cfg)
}

func TestLoadRPGCore_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rpgcore.yaml")
	body := `
log_level: debug
data_dir: /srv/rpgcore/data
stats:
  move_speed_baseline: 0.2
ticker:
  buff_sweep: 2s
database:
  enabled: true
  host: db
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadRPGCore(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/rpgcore/data", cfg.DataDir)
	assert.Equal(t, 0.2, cfg.Stats.MoveSpeedBaseline)
	assert.Equal(t, 20.0, cfg.Stats.MaxHealthBaseline, "unset keys keep defaults")
	assert.Equal(t, 2*time.Second, cfg.Ticker.BuffSweep)
	assert.Equal(t, 50*time.Millisecond, cfg.Ticker.TickRate)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://rpgcore:rpgcore@db:5432/rpgcore?sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadRPGCore_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "stats: [\n"},
		{"move speed above one", "stats:\n  move_speed_baseline: 3\n"},
		{"zero health baseline", "stats:\n  max_health_baseline: 0\n"},
		{"zero tick", "ticker:\n  tick_rate: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rpgcore.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))
			_, err := LoadRPGCore(path)
			assert.Error(t, err)
		})
	}
}
