// Package config loads the engine tuning file. All fields are pointers so a
// partial JSON file only overrides what it names; the Get* accessors supply
// the NEN 5060 defaults for everything else.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zonwering-data/fshade.report/internal/shading"
)

// DefaultConfigPath is the canonical tuning defaults file, relative to the
// working directory.
const DefaultConfigPath = "config/engine.defaults.json"

// EngineConfig is the root tuning schema. The /api/params endpoint reports
// the same fields, so the file and the running service stay comparable.
type EngineConfig struct {
	// Classification params
	SignificanceDeg    *float64 `json:"significance_deg,omitempty"`
	MaxContextDistance *float64 `json:"max_context_distance,omitempty"`
	MaxShadingDistance *float64 `json:"max_shading_distance,omitempty"`
	MinRayDistance     *float64 `json:"min_ray_distance,omitempty"`
	Workers            *int     `json:"workers,omitempty"`

	// Lookup params
	CalcMode     *string `json:"calc_mode,omitempty"`
	DefaultMonth *int    `json:"default_month,omitempty"`

	// Storage params
	DBPath      *string `json:"db_path,omitempty"`
	PersistRuns *bool   `json:"persist_runs,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrString(v string) *string    { return &v }
func ptrBool(v bool) *bool          { return &v }

// EmptyEngineConfig returns a config with every field unset, so each Get*
// accessor resolves to its default.
func EmptyEngineConfig() *EngineConfig {
	return &EngineConfig{}
}

// LoadEngineConfig loads an EngineConfig from a JSON file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadEngineConfig(path string) (*EngineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyEngineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured values are usable.
func (c *EngineConfig) Validate() error {
	if c.SignificanceDeg != nil {
		if *c.SignificanceDeg <= 0 || *c.SignificanceDeg >= 90 {
			return fmt.Errorf("significance_deg must be between 0 and 90 exclusive, got %f", *c.SignificanceDeg)
		}
	}
	if c.MaxContextDistance != nil && *c.MaxContextDistance <= 0 {
		return fmt.Errorf("max_context_distance must be positive, got %f", *c.MaxContextDistance)
	}
	if c.MaxShadingDistance != nil && *c.MaxShadingDistance <= 0 {
		return fmt.Errorf("max_shading_distance must be positive, got %f", *c.MaxShadingDistance)
	}
	if c.MinRayDistance != nil && *c.MinRayDistance < 0 {
		return fmt.Errorf("min_ray_distance must be non-negative, got %f", *c.MinRayDistance)
	}
	if c.Workers != nil && *c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", *c.Workers)
	}
	if c.DefaultMonth != nil {
		if *c.DefaultMonth < 1 || *c.DefaultMonth > 12 {
			return fmt.Errorf("default_month must be 1-12, got %d", *c.DefaultMonth)
		}
	}
	if c.CalcMode != nil {
		switch *c.CalcMode {
		case "", "heating", "cooling", "solar":
		default:
			return fmt.Errorf("calc_mode must be heating, cooling or solar, got %q", *c.CalcMode)
		}
	}
	return nil
}

// GetSignificanceDeg returns the significance_deg value or the default.
func (c *EngineConfig) GetSignificanceDeg() float64 {
	if c.SignificanceDeg == nil {
		return 20.0
	}
	return *c.SignificanceDeg
}

// GetMaxContextDistance returns the max_context_distance value or the default.
func (c *EngineConfig) GetMaxContextDistance() float64 {
	if c.MaxContextDistance == nil {
		return 500.0
	}
	return *c.MaxContextDistance
}

// GetMaxShadingDistance returns the max_shading_distance value or the default.
func (c *EngineConfig) GetMaxShadingDistance() float64 {
	if c.MaxShadingDistance == nil {
		return 50.0
	}
	return *c.MaxShadingDistance
}

// GetMinRayDistance returns the min_ray_distance value or the default.
func (c *EngineConfig) GetMinRayDistance() float64 {
	if c.MinRayDistance == nil {
		return 0.05
	}
	return *c.MinRayDistance
}

// GetWorkers returns the workers value or 0, which lets the engine size the
// pool from the CPU count.
func (c *EngineConfig) GetWorkers() int {
	if c.Workers == nil {
		return 0
	}
	return *c.Workers
}

// GetCalcMode returns the configured calculation mode, defaulting to heating.
func (c *EngineConfig) GetCalcMode() shading.CalcMode {
	if c.CalcMode == nil {
		return shading.ModeHeating
	}
	return shading.ParseCalcMode(*c.CalcMode)
}

// GetDefaultMonth returns the month applied when a request omits one.
func (c *EngineConfig) GetDefaultMonth() int {
	if c.DefaultMonth == nil {
		return 1
	}
	return *c.DefaultMonth
}

// GetDBPath returns the sqlite path for run persistence.
func (c *EngineConfig) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return "fshade.db"
	}
	return *c.DBPath
}

// GetPersistRuns reports whether classification runs are written to the
// store.
func (c *EngineConfig) GetPersistRuns() bool {
	if c.PersistRuns == nil {
		return true
	}
	return *c.PersistRuns
}

// EngineParams maps the config onto the classifier's parameter struct.
func (c *EngineConfig) EngineParams() shading.Params {
	return shading.Params{
		SignificanceDeg:    c.GetSignificanceDeg(),
		MaxContextDistance: c.GetMaxContextDistance(),
		MaxShadingDistance: c.GetMaxShadingDistance(),
		MinRayDistance:     c.GetMinRayDistance(),
		Workers:            c.GetWorkers(),
	}
}
