package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/wallrow/internal/field"
)

func TestEmbeddedPresets(t *testing.T) {
	assert.Equal(t, []string{PresetClassic, PresetGomoku, PresetWalls}, Presets())

	tests := []struct {
		preset   string
		rows     int
		cols     int
		winLen   int
		fraction float64
		walls    bool
	}{
		{PresetClassic, 3, 3, 3, 1.0, false},
		{PresetGomoku, 15, 15, 5, 1.0, false},
		{PresetWalls, 20, 20, 5, 0.75, true},
	}

	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			cfg, err := Load(tc.preset, "")
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			assert.Equal(t, tc.rows, cfg.Board.Rows)
			assert.Equal(t, tc.cols, cfg.Board.Cols)
			assert.Equal(t, tc.winLen, cfg.Board.WinLen)
			assert.Equal(t, 0, cfg.Board.MaxMoves)
			assert.InDelta(t, tc.fraction, cfg.Field.PlayableFraction, 1e-9)
			assert.Equal(t, tc.walls, cfg.HasObstacles())
			assert.Equal(t, "neighbor", cfg.Players.X)
			assert.Equal(t, "blocker", cfg.Players.O)
		})
	}
}

func TestLoadDefaultsToClassic(t *testing.T) {
	cfg, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadUnknownPreset(t *testing.T) {
	_, err := Load("chess", "")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "mine.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
board:
  rows: 6
  cols: 7
  win_len: 4
field:
  playable_fraction: 0.8
  max_obstacle_len: 5
  gap: 0
players:
  x: random
  o: neighbor
`), 0o644))

	cfg, err := Load(PresetWalls, p)
	require.NoError(t, err)
	assert.Equal(t, BoardConfig{Rows: 6, Cols: 7, WinLen: 4}, cfg.Board)
	assert.Equal(t, FieldConfig{PlayableFraction: 0.8, MaxObstacleLen: 5}, cfg.Field)
	assert.Equal(t, "random", cfg.Players.X)

	_, err = Load(PresetClassic, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o644))
	_, err = Load(PresetClassic, bad)
	assert.Error(t, err)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "board-only.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
board:
  rows: 5
  cols: 5
  win_len: 4
`), 0o644))

	cfg, err := Load(PresetClassic, p)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.Field.PlayableFraction)
	assert.Equal(t, DefaultConfig().Players, cfg.Players)

	s, err := cfg.NewState(11)
	require.NoError(t, err)
	assert.Equal(t, 25, s.MaxMoves(), "no walls on an open board")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *GameConfig)
	}{
		{"zero rows", func(c *GameConfig) { c.Board.Rows = 0 }},
		{"win length too long", func(c *GameConfig) { c.Board.WinLen = 4 }},
		{"negative cap", func(c *GameConfig) { c.Board.MaxMoves = -1 }},
		{"fraction above one", func(c *GameConfig) { c.Field.PlayableFraction = 1.5 }},
		{"negative gap", func(c *GameConfig) { c.Field.Gap = -1 }},
		{"negative delay", func(c *GameConfig) { c.Players.BotDelayMS = -5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := cfg.NewState(1)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNewStateWithWalls(t *testing.T) {
	cfg, err := Load(PresetWalls, "")
	require.NoError(t, err)

	s1, err := cfg.NewState(42)
	require.NoError(t, err)
	s2, err := cfg.NewState(42)
	require.NoError(t, err)

	g1, g2 := s1.Field(), s2.Field()
	assert.Greater(t, g1.Count(field.Wall), 0)
	assert.Equal(t, g1.Count(field.Wall), g2.Count(field.Wall), "same seed, same field")
	assert.Equal(t, g1.FreeCells(), s1.MaxMoves())
}

func TestInitializerWithoutObstacles(t *testing.T) {
	init, err := DefaultConfig().Initializer(1)
	require.NoError(t, err)
	assert.IsType(t, field.NoObstacles{}, init)
}

func TestApplyDensity(t *testing.T) {
	for _, d := range Densities() {
		t.Run(string(d), func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, ApplyDensity(&cfg, d))
			want, ok := PlayableFractionFor(d)
			require.True(t, ok)
			assert.InDelta(t, want, cfg.Field.PlayableFraction, 1e-9)
			assert.Equal(t, d != DensityNone, cfg.HasObstacles())
			if cfg.HasObstacles() {
				assert.Positive(t, cfg.Field.MaxObstacleLen)
			}
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	assert.ErrorIs(t, ApplyDensity(&cfg, "extreme"), ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRows, "8")
	t.Setenv(EnvCols, "9")
	t.Setenv(EnvWinLen, "4")
	t.Setenv(EnvMaxMoves, "30")
	t.Setenv(EnvPlayableFraction, "0.6")
	t.Setenv(EnvMaxObstacleLen, "12")
	t.Setenv(EnvGap, "")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	assert.Equal(t, BoardConfig{Rows: 8, Cols: 9, WinLen: 4, MaxMoves: 30}, cfg.Board)
	assert.InDelta(t, 0.6, cfg.Field.PlayableFraction, 1e-9)
	assert.Equal(t, 12, cfg.Field.MaxObstacleLen)
	assert.Equal(t, 0, cfg.Field.Gap, "empty values are ignored")
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvWinLen, "five")
	cfg := DefaultConfig()
	assert.Error(t, ApplyEnv(&cfg))

	t.Setenv(EnvWinLen, "")
	t.Setenv(EnvPlayableFraction, "most")
	assert.Error(t, ApplyEnv(&cfg))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("WALLROW_GAP=2\nWALLROW_ROWS=11\n"), 0o644))

	// Variables already set win over the file.
	t.Setenv(EnvRows, "5")
	t.Setenv(EnvGap, "")
	require.NoError(t, os.Unsetenv(EnvGap))

	require.NoError(t, LoadDotEnv(p, filepath.Join(dir, "absent.env")))

	assert.Equal(t, "2", os.Getenv(EnvGap))
	assert.Equal(t, "5", os.Getenv(EnvRows))
}
