// Package scene builds the ray origin and target solid described by a config.
package scene

import (
	"fmt"

	"github.com/Faultbox/domecast/internal/config"
	"github.com/Faultbox/domecast/pkg/math"
	"github.com/Faultbox/domecast/pkg/picking"
)

// Scene is a ready-to-scan origin and target.
type Scene struct {
	Origin math.Vec3
	Target picking.Solid
}

// Build converts the scene section of cfg into geometry. The target is
// validated here so that a degenerate box is reported before scanning.
func Build(cfg *config.Config) (*Scene, error) {
	t := cfg.Scene.Target
	center := math.Vec3FromSlice(t.Center)
	size := math.Vec3FromSlice(t.Size)

	var solid picking.Solid
	switch t.Shape {
	case config.ShapeBox:
		solid = picking.AABBFromCenter(center, size)
	case config.ShapeMesh:
		rot := math.Vec3FromSlice(t.Rotation)
		solid = picking.NewBoxMesh(center, size, math.QuatFromEulerDegrees(rot.X, rot.Y, rot.Z))
	default:
		return nil, fmt.Errorf("unknown target shape %q", t.Shape)
	}

	if err := solid.Validate(); err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	return &Scene{
		Origin: math.Vec3FromSlice(cfg.Scene.Origin),
		Target: solid,
	}, nil
}
