// domecast casts a hemisphere of rays from an origin and reports which
// directions hit a target solid.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/domecast/internal/config"
	"github.com/Faultbox/domecast/internal/logger"
	"github.com/Faultbox/domecast/internal/report"
	"github.com/Faultbox/domecast/internal/scene"
	"github.com/Faultbox/domecast/pkg/dome"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	args := config.Args()
	command := "scan"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	switch command {
	case "scan":
		err = cmdScan(cfg)
	case "grid":
		err = cmdGrid(cfg)
	case "init":
		err = cmdInit(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(command+" failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`domecast - hemisphere ray caster

Usage:
  domecast [flags] [command] [args]

Commands:
  scan          Cast every grid direction and report hits (default)
  grid          Print the sampling grid as CSV
  init [path]   Write the effective config as YAML

Flags:
  -config <file>     Config file (default ./domecast.yaml, then user config dir)
  -az-step <deg>     Azimuth step, must divide 360
  -el-step <deg>     Elevation step, must divide 90
  -origin x,y,z      Ray origin
  -target x,y,z      Target center
  -workers <n>       Parallel workers
  -angles <source>   direction or hit
  -format <fmt>      json, yaml or csv
  -out <file>        Report path (default stdout)
  -debug             Log every ray, hit or miss

Examples:
  domecast
  domecast -az-step 10 -el-step 5 -format csv
  domecast -origin 0,1,0 -target 0,1,0 -angles hit
  domecast init ./domecast.yaml`)
}

func cmdScan(cfg *config.Config) error {
	sc, err := scene.Build(cfg)
	if err != nil {
		return err
	}
	logger.Debug("scene built",
		zap.String("shape", cfg.Scene.Target.Shape),
		zap.Float64s("origin", cfg.Scene.Origin),
		zap.Float64s("center", cfg.Scene.Target.Center),
		zap.Float64s("size", cfg.Scene.Target.Size),
	)
	source, err := dome.ParseAngleSource(cfg.Scan.AngleSource)
	if err != nil {
		return err
	}

	log := logger.Named("dome")
	start := time.Now()
	rs, err := dome.ComputeIntersections(sc.Origin, sc.Target, dome.Options{
		Steps:   cfg.Steps(),
		Workers: cfg.Scan.Workers,
		Angles:  source,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	doc := report.NewDocument(sc.Origin, cfg.Steps(), rs)
	sum := dome.Summarize(rs)
	samples := cfg.Steps().Count()
	log.Info("scan complete",
		zap.String("run_id", doc.RunID),
		zap.Int("samples", samples),
		zap.Int("hits", sum.Count),
		zap.Int("misses", samples-sum.Count),
		zap.Float64("min_azimuth", sum.MinAzimuth),
		zap.Float64("max_azimuth", sum.MaxAzimuth),
		zap.Float64("min_elevation", sum.MinElevation),
		zap.Float64("max_elevation", sum.MaxElevation),
		zap.Duration("elapsed", time.Since(start)),
	)
	if sum.Count == 0 {
		logger.Warn("no sampled direction hit the target", zap.String("run_id", doc.RunID))
	}

	return withOutput(cfg.Output.Path, func(w io.Writer) error {
		return report.Write(w, cfg.Output.Format, doc)
	})
}

func cmdGrid(cfg *config.Config) error {
	samples, err := dome.Grid(cfg.Steps())
	if err != nil {
		return err
	}
	return withOutput(cfg.Output.Path, func(w io.Writer) error {
		return report.WriteGrid(w, samples)
	})
}

func cmdInit(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", args[0]))
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	return nil
}

// withOutput runs fn against the report file, or stdout when path is empty.
func withOutput(path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
