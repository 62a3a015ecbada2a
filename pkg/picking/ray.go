// Package picking provides ray casting against convex solids.
package picking

import (
	"errors"

	"github.com/Faultbox/domecast/pkg/math"
)

// ErrDegenerateSolid is returned by Validate when a solid has no volume or
// surface to hit, or carries non-finite coordinates.
var ErrDegenerateSolid = errors.New("degenerate solid")

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Hit is the nearest intersection of a ray with a solid.
type Hit struct {
	Point    math.Vec3
	Distance float64 // along the ray, >= 0
}

// Solid is anything a ray can be tested against.
//
// Implementations share one edge-case contract: a ray starting outside
// reports its entry point, a ray starting strictly inside reports its exit
// point, and a ray starting on the surface reports a hit at distance 0.
// Intersections behind the ray origin are never reported.
type Solid interface {
	Intersect(r Ray) (Hit, bool)
	Validate() error
}
