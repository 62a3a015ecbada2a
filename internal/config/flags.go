package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// vec3Flag parses "x,y,z".
type vec3Flag struct {
	v   []float64
	set bool
}

func (f *vec3Flag) String() string {
	if f == nil || !f.set {
		return ""
	}
	parts := make([]string, len(f.v))
	for i, c := range f.v {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *vec3Flag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	v := make([]float64, 3)
	for i, p := range parts {
		c, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = c
	}
	f.v, f.set = v, true
	return nil
}

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging (one line per ray)")
	flagAzStep      = flag.Float64("az-step", 0, "Azimuth step in degrees")
	flagElStep      = flag.Float64("el-step", 0, "Elevation step in degrees")
	flagWorkers     = flag.Int("workers", -1, "Parallel workers (0 or 1 runs inline)")
	flagAngleSource = flag.String("angles", "", "Angle source: direction or hit")
	flagFormat      = flag.String("format", "", "Report format: json, yaml or csv")
	flagOut         = flag.String("out", "", "Report path (default stdout)")
	flagOrigin      = &vec3Flag{}
	flagCenter      = &vec3Flag{}
)

func init() {
	flag.Var(flagOrigin, "origin", "Ray origin as x,y,z")
	flag.Var(flagCenter, "target", "Target center as x,y,z")
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the positional arguments left after flags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAzStep != 0 {
		cfg.Scan.AzimuthStep = *flagAzStep
	}
	if *flagElStep != 0 {
		cfg.Scan.ElevationStep = *flagElStep
	}
	if *flagWorkers >= 0 {
		cfg.Scan.Workers = *flagWorkers
	}
	if *flagAngleSource != "" {
		cfg.Scan.AngleSource = *flagAngleSource
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if flagOrigin.set {
		cfg.Scene.Origin = append([]float64(nil), flagOrigin.v...)
	}
	if flagCenter.set {
		cfg.Scene.Target.Center = append([]float64(nil), flagCenter.v...)
	}
}
