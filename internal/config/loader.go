package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned by Load for a preset with no YAML anywhere.
var ErrUnknownPreset = errors.New("config: unknown preset")

// Environment variables read by ApplyEnv.
const (
	EnvRows             = "WALLROW_ROWS"
	EnvCols             = "WALLROW_COLS"
	EnvWinLen           = "WALLROW_WIN_LEN"
	EnvMaxMoves         = "WALLROW_MAX_MOVES"
	EnvPlayableFraction = "WALLROW_PLAYABLE_FRACTION"
	EnvMaxObstacleLen   = "WALLROW_MAX_OBSTACLE_LEN"
	EnvGap              = "WALLROW_GAP"
)

// Load loads the configuration of a preset.
// Search order: customPath -> ~/.wallrow/configs/<preset>.yaml ->
// ./configs/<preset>.yaml -> embedded default.
// Files found on the search path that fail to parse are skipped; a custom
// path must exist and parse. Keys a file leaves out keep their DefaultConfig
// values, so a file without a field section has no walls.
func Load(preset, customPath string) (GameConfig, error) {
	if preset == "" {
		preset = DefaultPreset
	}
	filename := preset + ".yaml"

	// Try custom path first
	if customPath != "" {
		return readFile(customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := readFile(filepath.Join("configs", filename)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	data := GetDefaultYAML(preset)
	if data == nil {
		return GameConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

func readFile(p string) (GameConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(p)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", p, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", p, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wallrow", "configs", filename)
}

// LoadDotEnv loads variables from .env files (default "./.env") into the
// process environment without overriding variables already set.
// Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with the WALLROW_* environment variables that are set.
func ApplyEnv(cfg *GameConfig) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{EnvRows, &cfg.Board.Rows},
		{EnvCols, &cfg.Board.Cols},
		{EnvWinLen, &cfg.Board.WinLen},
		{EnvMaxMoves, &cfg.Board.MaxMoves},
		{EnvMaxObstacleLen, &cfg.Field.MaxObstacleLen},
		{EnvGap, &cfg.Field.Gap},
	}
	for _, v := range ints {
		raw, ok := os.LookupEnv(v.name)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s: %w", v.name, err)
		}
		*v.dst = n
	}

	if raw, ok := os.LookupEnv(EnvPlayableFraction); ok && raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvPlayableFraction, err)
		}
		cfg.Field.PlayableFraction = f
	}
	return nil
}
