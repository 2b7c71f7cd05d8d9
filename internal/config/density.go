package config

import "fmt"

// Density is a named obstacle density.
type Density string

const (
	DensityNone   Density = "none"
	DensitySparse Density = "sparse"
	DensityNormal Density = "normal"
	DensityDense  Density = "dense"
)

// Densities lists the known density presets from open to crowded.
func Densities() []Density {
	return []Density{DensityNone, DensitySparse, DensityNormal, DensityDense}
}

// PlayableFractionFor returns the playable fraction of a density preset.
func PlayableFractionFor(d Density) (float64, bool) {
	switch d {
	case DensityNone:
		return 1.0, true
	case DensitySparse:
		return 0.9, true
	case DensityNormal:
		return 0.75, true
	case DensityDense:
		return 0.6, true
	default:
		return 0, false
	}
}

// ApplyDensity overrides the playable fraction with a density preset.
// Walls need a walk length, so a preset with walls on a config that has
// none gets the "walls" defaults for length and gap.
func ApplyDensity(cfg *GameConfig, d Density) error {
	frac, ok := PlayableFractionFor(d)
	if !ok {
		return fmt.Errorf("%w: unknown density %q", ErrInvalidConfig, d)
	}
	cfg.Field.PlayableFraction = frac
	if frac < 1 && cfg.Field.MaxObstacleLen == 0 {
		cfg.Field.MaxObstacleLen = 50
		cfg.Field.Gap = 1
	}
	return nil
}
