package picking

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/domecast/pkg/math"
)

// Below this, a triangle is treated as parallel to the ray.
const parallelEpsilon = 1e-12

// Triangle is one face of a mesh. Counter-clockwise winding (seen from
// outside) gives an outward normal.
type Triangle struct {
	A, B, C math.Vec3
}

// Normal returns the unnormalized face normal.
func (t Triangle) Normal() math.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area returns the triangle's surface area.
func (t Triangle) Area() float64 {
	return t.Normal().Length() / 2
}

// intersect is Möller–Trumbore without back-face culling.
func (t Triangle) intersect(r Ray) (float64, bool) {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if gomath.Abs(det) < parallelEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := e2.Dot(q) * inv
	if dist < 0 {
		return 0, false
	}
	return dist, true
}

// Mesh is a closed convex triangle mesh.
type Mesh struct {
	Triangles []Triangle
}

// NewMesh wraps a triangle list.
func NewMesh(tris []Triangle) *Mesh {
	return &Mesh{Triangles: tris}
}

// boxFaces lists each face of the unit cube as four corner indices,
// counter-clockwise from outside. Corner i has bits (x, y, z) = (i&1, i>>1&1, i>>2&1).
var boxFaces = [6][4]int{
	{1, 3, 7, 5}, // +X
	{0, 4, 6, 2}, // -X
	{2, 6, 7, 3}, // +Y
	{0, 1, 5, 4}, // -Y
	{4, 5, 7, 6}, // +Z
	{0, 2, 3, 1}, // -Z
}

// NewBoxMesh builds a 12-triangle box with the given edge lengths, rotated
// by rot about its center.
func NewBoxMesh(center, size math.Vec3, rot math.Quat) *Mesh {
	// An identity rotation leaves the corners exact, matching AABBFromCenter.
	unrotated := rot.IsIdentity(0)
	var corners [8]math.Vec3
	for i := range corners {
		local := math.Vec3{
			X: float64(i&1) - 0.5,
			Y: float64(i>>1&1) - 0.5,
			Z: float64(i>>2&1) - 0.5,
		}.Mul(size)
		if !unrotated {
			local = rot.Rotate(local)
		}
		corners[i] = center.Add(local)
	}

	tris := make([]Triangle, 0, 12)
	for _, f := range boxFaces {
		a, b, c, d := corners[f[0]], corners[f[1]], corners[f[2]], corners[f[3]]
		tris = append(tris, Triangle{a, b, c}, Triangle{a, c, d})
	}
	return NewMesh(tris)
}

// Area returns the total surface area.
func (m *Mesh) Area() float64 {
	var area float64
	for _, t := range m.Triangles {
		area += t.Area()
	}
	return area
}

// Bounds returns the axis-aligned box enclosing every vertex.
func (m *Mesh) Bounds() *AABB {
	if len(m.Triangles) == 0 {
		return &AABB{}
	}
	lo, hi := m.Triangles[0].A, m.Triangles[0].A
	for _, t := range m.Triangles {
		for _, v := range [3]math.Vec3{t.A, t.B, t.C} {
			lo = math.Vec3{X: gomath.Min(lo.X, v.X), Y: gomath.Min(lo.Y, v.Y), Z: gomath.Min(lo.Z, v.Z)}
			hi = math.Vec3{X: gomath.Max(hi.X, v.X), Y: gomath.Max(hi.Y, v.Y), Z: gomath.Max(hi.Z, v.Z)}
		}
	}
	return &AABB{Min: lo, Max: hi}
}

// Validate rejects empty meshes, non-finite vertices and meshes with no
// area. Like an AABB, a mesh must also have extent along every axis, so a
// flattened box is rejected even though its faces still have area.
func (m *Mesh) Validate() error {
	if len(m.Triangles) == 0 {
		return fmt.Errorf("%w: mesh has no triangles", ErrDegenerateSolid)
	}
	for i, t := range m.Triangles {
		if !t.A.IsFinite() || !t.B.IsFinite() || !t.C.IsFinite() {
			return fmt.Errorf("%w: triangle %d has non-finite vertices", ErrDegenerateSolid, i)
		}
	}
	if area := m.Area(); area < 1e-12 {
		return fmt.Errorf("%w: mesh surface area %g", ErrDegenerateSolid, area)
	}
	if size := m.Bounds().Size(); size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return fmt.Errorf("%w: mesh extent %v has a zero axis", ErrDegenerateSolid, size)
	}
	return nil
}

// Intersect returns the nearest triangle hit in front of the ray origin.
// Both faces of each triangle count, so a ray from inside reports its exit.
func (m *Mesh) Intersect(r Ray) (Hit, bool) {
	best := gomath.Inf(1)
	for _, t := range m.Triangles {
		if d, ok := t.intersect(r); ok && d < best {
			best = d
		}
	}
	if gomath.IsInf(best, 1) {
		return Hit{}, false
	}
	best = gomath.Max(best, 0)
	return Hit{Point: r.At(best), Distance: best}, true
}
