package config

import (
	"embed"
	"path"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Built-in preset names.
const (
	PresetClassic = "classic"
	PresetGomoku  = "gomoku"
	PresetWalls   = "walls"
)

// DefaultPreset is used when no preset is named.
const DefaultPreset = PresetClassic

// Presets lists the embedded preset names, sorted.
func Presets() []string {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// GetDefaultYAML returns the embedded YAML for a preset, or nil if unknown.
func GetDefaultYAML(preset string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", preset+".yaml"))
	if err != nil {
		return nil
	}
	return data
}

// DefaultConfig returns the hardcoded "classic" configuration.
// It is the fallback when the embedded YAML cannot be parsed.
func DefaultConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Rows:   3,
			Cols:   3,
			WinLen: 3,
		},
		Field: FieldConfig{
			PlayableFraction: 1.0,
		},
		Players: PlayersConfig{
			X:          "neighbor",
			O:          "blocker",
			BotDelayMS: 300,
		},
	}
}
