package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/cspace/utils"
)

// sphere is a collision geometry that represents a sphere, it has a pose and a radius that fully define it.
type sphere struct {
	pose   Pose
	radius float64
	label  string
}

// NewSphere instantiates a new sphere Geometry.
func NewSphere(pose Pose, radius float64, label string) (Geometry, error) {
	if radius < 0 {
		return nil, newBadGeometryDimensionsError(&sphere{})
	}
	return &sphere{pose, radius, label}, nil
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	return fmt.Sprintf("Type: Sphere | Position: %s | Radius: %.3f", formatPoint(s.pose.Point()), s.radius)
}

// Label returns the label of the sphere.
func (s *sphere) Label() string {
	return s.label
}

// Pose returns the pose of the sphere.
func (s *sphere) Pose() Pose {
	return s.pose
}

func (s *sphere) Type() GeometryType {
	return SphereType
}

// Radius returns the radius of the sphere.
func (s *sphere) Radius() float64 {
	return s.radius
}

// AlmostEqual compares the sphere with another geometry and checks if they are equivalent.
func (s *sphere) AlmostEqual(g Geometry) bool {
	other, ok := g.(*sphere)
	if !ok {
		return false
	}
	return PoseAlmostEqual(s.pose, other.pose) && utils.Float64AlmostEqual(s.radius, other.radius, 1e-8)
}

// Transform premultiplies the sphere pose with a transform, allowing the sphere to be moved in space.
func (s *sphere) Transform(toPremultiply Pose) Geometry {
	return &sphere{Compose(toPremultiply, s.pose), s.radius, s.label}
}

// Vertices returns the center of the sphere.
func (s *sphere) Vertices() []r3.Vector {
	return []r3.Vector{s.pose.Point()}
}
