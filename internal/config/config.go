// Package config provides YAML-based game configuration: board presets,
// obstacle density and the strategies seated on each side.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/wallrow/internal/field"
	"github.com/vovakirdan/wallrow/internal/state"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// GameConfig contains all configuration for one game setup.
type GameConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Field   FieldConfig   `yaml:"field"`
	Players PlayersConfig `yaml:"players"`
}

// BoardConfig defines the board and win condition.
type BoardConfig struct {
	Rows     int `yaml:"rows"`
	Cols     int `yaml:"cols"`
	WinLen   int `yaml:"win_len"`
	MaxMoves int `yaml:"max_moves"` // 0 = number of free cells
}

// FieldConfig defines obstacle generation.
type FieldConfig struct {
	PlayableFraction float64 `yaml:"playable_fraction"` // 1.0 = no walls
	MaxObstacleLen   int     `yaml:"max_obstacle_len"`
	Gap              int     `yaml:"gap"`
}

// PlayersConfig names the strategies for each side.
type PlayersConfig struct {
	X          string `yaml:"x"`
	O          string `yaml:"o"`
	BotDelayMS int    `yaml:"bot_delay_ms"` // Pause before a bot reply in the TUI
}

// Validate checks that a game can be built from the configuration.
func (c GameConfig) Validate() error {
	if err := c.StateOpts().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.ObstacleParams(0).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Players.BotDelayMS < 0 {
		return fmt.Errorf("%w: negative bot delay %d", ErrInvalidConfig, c.Players.BotDelayMS)
	}
	return nil
}

// StateOpts converts the board section to state options.
func (c GameConfig) StateOpts() state.Opts {
	return state.Opts{
		Rows:     c.Board.Rows,
		Cols:     c.Board.Cols,
		WinLen:   c.Board.WinLen,
		MaxMoves: c.Board.MaxMoves,
	}
}

// ObstacleParams converts the field section to generator parameters.
func (c GameConfig) ObstacleParams(seed int64) field.ObstacleParams {
	return field.ObstacleParams{
		PlayableFraction: c.Field.PlayableFraction,
		MaxObstacleLen:   c.Field.MaxObstacleLen,
		Gap:              c.Field.Gap,
		Seed:             seed,
	}
}

// HasObstacles reports whether the field section asks for walls.
func (c GameConfig) HasObstacles() bool {
	return c.Field.PlayableFraction < 1
}

// Initializer builds the field initializer. Seed 0 picks a time-based seed.
func (c GameConfig) Initializer(seed int64) (field.Initializer, error) {
	if !c.HasObstacles() {
		return field.NoObstacles{}, nil
	}
	gen, err := field.NewRandomObstacles(c.ObstacleParams(seed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return gen, nil
}

// NewState validates the configuration and creates a game ready to play.
func (c GameConfig) NewState(seed int64) (*state.State, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	init, err := c.Initializer(seed)
	if err != nil {
		return nil, err
	}
	return state.New(c.StateOpts(), init)
}
