package picking

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/domecast/pkg/math"
)

// AABB represents an axis-aligned box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b math.Vec3) *AABB {
	return &AABB{
		Min: math.Vec3{X: gomath.Min(a.X, b.X), Y: gomath.Min(a.Y, b.Y), Z: gomath.Min(a.Z, b.Z)},
		Max: math.Vec3{X: gomath.Max(a.X, b.X), Y: gomath.Max(a.Y, b.Y), Z: gomath.Max(a.Z, b.Z)},
	}
}

// AABBFromCenter creates a box of the given edge lengths around center.
// Negative sizes are treated as their absolute value.
func AABBFromCenter(center, size math.Vec3) *AABB {
	half := size.Scale(0.5)
	return NewAABB(center.Sub(half), center.Add(half))
}

// Center returns the midpoint of the box.
func (b *AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the edge lengths of the box.
func (b *AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b *AABB) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Validate rejects boxes with non-finite corners or zero extent on any axis.
func (b *AABB) Validate() error {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		return fmt.Errorf("%w: box corners must be finite", ErrDegenerateSolid)
	}
	size := b.Size()
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("%w: box size %v has a zero or negative axis", ErrDegenerateSolid, size)
	}
	return nil
}

// Intersect tests the ray against the box with the slab method.
// If the ray starts inside the box, the exit point is returned.
func (b *AABB) Intersect(r Ray) (Hit, bool) {
	tmin := -gomath.MaxFloat64
	tmax := gomath.MaxFloat64

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo := b.Min.Axis(axis)
		hi := b.Max.Axis(axis)

		if d == 0 {
			// Parallel to this slab: only a hit if already between its planes.
			if o < lo || o > hi {
				return Hit{}, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return Hit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	t = gomath.Max(t, 0) // no -0 distances for rays starting on a face
	return Hit{Point: r.At(t), Distance: t}, true
}
