package math

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); !vecNear(got, v, 1e-15) {
		t.Errorf("identity rotation changed vector: %v", got)
	}
	if !q.IsIdentity(1e-12) {
		t.Error("IsIdentity should be true for identity")
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1.0) > 1e-12 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if z := (Quat{}).Normalize(); z != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %v", z)
	}
}

func TestQuatRotate(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		in   Vec3
		want Vec3
	}{
		{"90 about Y takes +X to -Z", QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2), Vec3{X: 1}, Vec3{Z: -1}},
		{"90 about Z takes +X to +Y", QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/2), Vec3{X: 1}, Vec3{Y: 1}},
		{"180 about X flips Y", QuatFromAxisAngle(Vec3{X: 1}, math.Pi), Vec3{Y: 1}, Vec3{Y: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.in)
			if !vecNear(got, tt.want, 1e-12) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuatRotatePreservesLength(t *testing.T) {
	q := QuatFromEulerDegrees(30, 45, 60)
	v := Vec3{1, -2, 0.5}
	if got := q.Rotate(v).Length(); math.Abs(got-v.Length()) > 1e-12 {
		t.Errorf("rotation changed length: %v vs %v", got, v.Length())
	}
	if q.IsIdentity(1e-9) {
		t.Error("non-trivial rotation reported as identity")
	}
}

func TestQuatFromEulerDegreesOrder(t *testing.T) {
	// Single-axis Euler angles match the axis-angle form.
	got := QuatFromEulerDegrees(0, 90, 0)
	want := QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2)
	if math.Abs(got.Dot(want)-1) > 1e-12 {
		t.Errorf("QuatFromEulerDegrees(0,90,0) = %v, want %v", got, want)
	}

	// XYZ order: the Z rotation is applied to the vector first.
	q := QuatFromEulerDegrees(90, 0, 90)
	v := q.Rotate(Vec3{X: 1})
	// Z takes +X to +Y, then X takes +Y to +Z.
	if !vecNear(v, Vec3{Z: 1}, 1e-12) {
		t.Errorf("XYZ Euler rotation of +X = %v, want +Z", v)
	}
}

func TestQuatMul(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/4)
	combined := a.Mul(a)
	want := QuatFromAxisAngle(Vec3{Y: 1}, math.Pi/2)
	if math.Abs(combined.Dot(want)-1) > 1e-12 {
		t.Errorf("two 45 degree rotations should equal 90 degrees, got %v", combined)
	}
}
