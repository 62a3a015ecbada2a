package dome

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/domecast/pkg/math"
	"github.com/Faultbox/domecast/pkg/picking"
)

var (
	// ErrNonFiniteOrigin is returned when the ray origin has NaN or Inf coordinates.
	ErrNonFiniteOrigin = errors.New("origin must be finite")
	// ErrNoSolid is returned when no target solid is given.
	ErrNoSolid = errors.New("no target solid")
	// ErrInvalidOptions is returned for unusable engine options.
	ErrInvalidOptions = errors.New("invalid options")
)

// AngleSource selects what a hit's azimuth/elevation is derived from.
type AngleSource string

const (
	// AnglesFromDirection inverts the sampled ray direction.
	AnglesFromDirection AngleSource = "direction"
	// AnglesFromHit inverts the offset from the origin to the hit point.
	AnglesFromHit AngleSource = "hit"
)

// ParseAngleSource maps a config string to an AngleSource. Empty means
// AnglesFromDirection.
func ParseAngleSource(s string) (AngleSource, error) {
	switch AngleSource(s) {
	case "", AnglesFromDirection:
		return AnglesFromDirection, nil
	case AnglesFromHit:
		return AnglesFromHit, nil
	default:
		return "", fmt.Errorf("%w: unknown angle source %q", ErrInvalidOptions, s)
	}
}

// AzEl is one entry of a result set, in degrees.
type AzEl struct {
	Azimuth   float64 `yaml:"azimuth" json:"azimuth"`
	Elevation float64 `yaml:"elevation" json:"elevation"`
}

// ResultSet lists the angles of every sampled direction that hit the
// target, in grid order.
type ResultSet []AzEl

// Options controls a pass of ComputeIntersections.
type Options struct {
	Steps Steps
	// Workers splits the grid across goroutines. 0 or 1 runs inline.
	Workers int
	Angles  AngleSource
	// Logger receives one debug entry per sample, hit or miss. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the reference sampling with a single worker.
func DefaultOptions() Options {
	return Options{
		Steps:   DefaultSteps(),
		Workers: 1,
		Angles:  AnglesFromDirection,
	}
}

func (o Options) validate() error {
	if err := o.Steps.Validate(); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidOptions, o.Workers)
	}
	if _, err := ParseAngleSource(string(o.Angles)); err != nil {
		return err
	}
	return nil
}

// slot holds the outcome of one sample so workers never share a slice index.
type slot struct {
	hit bool
	AzEl
}

// ComputeIntersections casts one ray from origin along every grid direction
// and returns the angles of those that hit solid.
//
// origin and solid are read but never modified; callers that mutate them
// concurrently must pass a snapshot.
func ComputeIntersections(origin math.Vec3, solid picking.Solid, opts Options) (ResultSet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if !origin.IsFinite() {
		return nil, fmt.Errorf("%w: %v", ErrNonFiniteOrigin, origin)
	}
	if solid == nil {
		return nil, ErrNoSolid
	}
	if err := solid.Validate(); err != nil {
		return nil, err
	}

	samples, err := Grid(opts.Steps)
	if err != nil {
		return nil, err
	}
	source, _ := ParseAngleSource(string(opts.Angles))
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	slots := make([]slot, len(samples))
	cast := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			slots[i] = castSample(origin, solid, samples[i], source, log)
		}
	}

	workers := opts.Workers
	if workers > len(samples) {
		workers = len(samples)
	}
	if workers <= 1 {
		cast(0, len(samples))
	} else {
		chunk := (len(samples) + workers - 1) / workers
		var wg sync.WaitGroup
		for lo := 0; lo < len(samples); lo += chunk {
			hi := min(lo+chunk, len(samples))
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				cast(lo, hi)
			}(lo, hi)
		}
		wg.Wait()
	}

	results := make(ResultSet, 0)
	for _, s := range slots {
		if s.hit {
			results = append(results, s.AzEl)
		}
	}
	return results, nil
}

func castSample(origin math.Vec3, solid picking.Solid, s Sample, source AngleSource, log *zap.Logger) slot {
	hit, ok := solid.Intersect(picking.Ray{Origin: origin, Direction: s.Direction})
	if !ok {
		if ce := log.Check(zap.DebugLevel, "ray missed target"); ce != nil {
			ce.Write(
				zap.Float64("sample_azimuth", s.Azimuth),
				zap.Float64("sample_elevation", s.Elevation),
			)
		}
		return slot{}
	}

	dir := s.Direction
	if source == AnglesFromHit && hit.Distance > 0 {
		dir = hit.Point.Sub(origin).Normalize()
	}
	az, el := Angles(dir)
	el = math.Clamp(el, 0, FullElevation)

	if ce := log.Check(zap.DebugLevel, "ray hit target"); ce != nil {
		ce.Write(
			zap.Float64("sample_azimuth", s.Azimuth),
			zap.Float64("sample_elevation", s.Elevation),
			zap.Float64("distance", hit.Distance),
			zap.Float64("azimuth", az),
			zap.Float64("elevation", el),
		)
	}
	return slot{hit: true, AzEl: AzEl{Azimuth: az, Elevation: el}}
}
