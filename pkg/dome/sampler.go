// Package dome casts rays over a hemisphere of directions and reports which
// azimuth/elevation pairs strike a target solid.
//
// Azimuth is measured in degrees from +X toward +Z, elevation in degrees
// above the XZ plane, so elevation 90 is straight up (+Y).
package dome

import (
	"errors"
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/floats"

	"github.com/Faultbox/domecast/pkg/math"
)

const (
	// FullAzimuth is the azimuth range swept by the grid, both ends included.
	FullAzimuth = 360.0
	// FullElevation is the elevation range swept by the grid, both ends included.
	FullElevation = 90.0

	// MaxDivisions caps the samples along one axis of the grid.
	MaxDivisions = 1 << 16

	divisorTolerance = 1e-9
)

// ErrInvalidStep is returned for step sizes that are not positive divisors
// of the sampled ranges.
var ErrInvalidStep = errors.New("invalid sampling step")

// Steps holds the grid spacing in degrees.
type Steps struct {
	Azimuth   float64 `yaml:"azimuth_step" json:"azimuth_step"`
	Elevation float64 `yaml:"elevation_step" json:"elevation_step"`
}

// DefaultSteps returns 2 degrees of azimuth by 1 degree of elevation.
func DefaultSteps() Steps {
	return Steps{Azimuth: 2, Elevation: 1}
}

// Validate checks that both steps are positive and divide their range.
func (s Steps) Validate() error {
	if _, err := divisions(s.Azimuth, FullAzimuth); err != nil {
		return fmt.Errorf("%w: azimuth step %v: %v", ErrInvalidStep, s.Azimuth, err)
	}
	if _, err := divisions(s.Elevation, FullElevation); err != nil {
		return fmt.Errorf("%w: elevation step %v: %v", ErrInvalidStep, s.Elevation, err)
	}
	return nil
}

// Count returns the number of samples the grid holds for s.
// s must be valid.
func (s Steps) Count() int {
	na, _ := divisions(s.Azimuth, FullAzimuth)
	ne, _ := divisions(s.Elevation, FullElevation)
	return (na + 1) * (ne + 1)
}

// divisions returns how many steps of size step fit in span.
func divisions(step, span float64) (int, error) {
	if !math.IsFinite(step) || step <= 0 {
		return 0, errors.New("must be a positive number")
	}
	n := span / step
	if n > MaxDivisions {
		return 0, fmt.Errorf("splits %v into more than %d parts", span, MaxDivisions)
	}
	r := gomath.Round(n)
	if r < 1 || gomath.Abs(n-r) > divisorTolerance {
		return 0, fmt.Errorf("must divide %v", span)
	}
	return int(r), nil
}

// Sample is one grid entry: the angles and the unit direction they map to.
type Sample struct {
	Azimuth   float64
	Elevation float64
	Direction math.Vec3
}

// Grid returns every sample for s, ordered by ascending azimuth and then by
// ascending elevation. Azimuth 0 and 360 are both present.
func Grid(s Steps) ([]Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	na, _ := divisions(s.Azimuth, FullAzimuth)
	ne, _ := divisions(s.Elevation, FullElevation)

	azimuths := floats.Span(make([]float64, na+1), 0, FullAzimuth)
	elevations := floats.Span(make([]float64, ne+1), 0, FullElevation)

	samples := make([]Sample, 0, len(azimuths)*len(elevations))
	for _, az := range azimuths {
		for _, el := range elevations {
			samples = append(samples, Sample{
				Azimuth:   az,
				Elevation: el,
				Direction: Direction(az, el),
			})
		}
	}
	return samples, nil
}

// Direction converts azimuth/elevation in degrees to a unit vector.
func Direction(azimuth, elevation float64) math.Vec3 {
	theta := math.Radians(azimuth)
	phi := math.Radians(FullElevation - elevation)
	sinPhi := gomath.Sin(phi)
	return math.Vec3{
		X: sinPhi * gomath.Cos(theta),
		Y: gomath.Cos(phi),
		Z: sinPhi * gomath.Sin(theta),
	}
}

// Angles converts a unit direction back to azimuth in [0, 360) and
// elevation in [-90, 90]. The azimuth of a vertical direction is 0 or 180
// depending on the signs of its zero components.
func Angles(d math.Vec3) (azimuth, elevation float64) {
	phi := gomath.Acos(math.Clamp(d.Y, -1, 1))
	theta := gomath.Atan2(d.Z, d.X)

	elevation = FullElevation - math.Degrees(phi)
	azimuth = math.Degrees(theta)
	if azimuth < 0 {
		azimuth += FullAzimuth
	}
	// A tiny negative angle can round up to exactly 360.
	if azimuth >= FullAzimuth {
		azimuth -= FullAzimuth
	}
	if azimuth == 0 {
		azimuth = 0 // drop the sign of -0 from atan2(-0, x)
	}
	return azimuth, elevation
}
