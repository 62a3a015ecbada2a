// Package config handles scan configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/domecast/pkg/dome"
)

// Target shapes.
const (
	ShapeBox  = "box"  // axis-aligned box, slab test
	ShapeMesh = "mesh" // triangulated box, may be rotated
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Config holds all scan settings.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Scene   SceneConfig   `yaml:"scene"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig holds the sampling grid and engine settings.
type ScanConfig struct {
	AzimuthStep   float64 `yaml:"azimuth_step"`   // degrees, must divide 360
	ElevationStep float64 `yaml:"elevation_step"` // degrees, must divide 90
	Workers       int     `yaml:"workers"`        // 0 or 1 runs inline
	AngleSource   string  `yaml:"angle_source"`   // "direction" or "hit"
}

// SceneConfig holds the ray origin and the target solid.
type SceneConfig struct {
	Origin []float64    `yaml:"origin,flow"`
	Target TargetConfig `yaml:"target"`
}

// TargetConfig describes the solid rays are tested against.
type TargetConfig struct {
	Shape    string    `yaml:"shape"`
	Center   []float64 `yaml:"center,flow"`
	Size     []float64 `yaml:"size,flow"`
	Rotation []float64 `yaml:"rotation,flow"` // Euler degrees, XYZ order; mesh only
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"` // empty writes to stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns the reference scene: a 0.6 cube two units along +Z from
// an origin at the world center, sampled every 2 by 1 degrees.
func Default() *Config {
	steps := dome.DefaultSteps()
	return &Config{
		Scan: ScanConfig{
			AzimuthStep:   steps.Azimuth,
			ElevationStep: steps.Elevation,
			Workers:       1,
			AngleSource:   string(dome.AnglesFromDirection),
		},
		Scene: SceneConfig{
			Origin: []float64{0, 0, 0},
			Target: TargetConfig{
				Shape:    ShapeBox,
				Center:   []float64{0, 0, 2},
				Size:     []float64{0.6, 0.6, 0.6},
				Rotation: []float64{0, 0, 0},
			},
		},
		Output: OutputConfig{
			Format: FormatJSON,
			Path:   "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Steps returns the sampling steps as the engine expects them.
func (c *Config) Steps() dome.Steps {
	return dome.Steps{Azimuth: c.Scan.AzimuthStep, Elevation: c.Scan.ElevationStep}
}

// Validate checks settings that do not depend on geometry. Geometry is
// checked when the scene is built.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Steps().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Scan.Workers < 0 {
		errs = append(errs, fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers))
	}
	if _, err := dome.ParseAngleSource(c.Scan.AngleSource); err != nil {
		errs = append(errs, err)
	}

	for name, v := range map[string][]float64{
		"scene.origin":          c.Scene.Origin,
		"scene.target.center":   c.Scene.Target.Center,
		"scene.target.size":     c.Scene.Target.Size,
		"scene.target.rotation": c.Scene.Target.Rotation,
	} {
		if len(v) != 0 && len(v) != 3 {
			errs = append(errs, fmt.Errorf("%s must have 3 components, got %d", name, len(v)))
		}
	}

	switch c.Scene.Target.Shape {
	case ShapeBox:
		for _, r := range c.Scene.Target.Rotation {
			if r != 0 {
				errs = append(errs, errors.New("scene.target.rotation requires shape \"mesh\""))
				break
			}
		}
	case ShapeMesh:
	default:
		errs = append(errs, fmt.Errorf("unknown scene.target.shape %q", c.Scene.Target.Shape))
	}

	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatCSV:
	default:
		errs = append(errs, fmt.Errorf("unknown output.format %q", c.Output.Format))
	}

	return errors.Join(errs...)
}
