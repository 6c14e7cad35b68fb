package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/cspace/utils"
)

// cylinder is a collision geometry whose axis runs along the z axis of its pose, centered on the pose's point.
type cylinder struct {
	pose   Pose
	radius float64
	length float64
	label  string
}

// NewCylinder instantiates a new cylinder Geometry.
func NewCylinder(pose Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&cylinder{})
	}
	return &cylinder{pose: pose, radius: radius, length: length, label: label}, nil
}

func (c *cylinder) String() string {
	return fmt.Sprintf("Type: Cylinder | Position: %s | Radius: %.3f, Length: %.3f",
		formatPoint(c.pose.Point()), c.radius, c.length)
}

func (c *cylinder) Label() string {
	return c.label
}

func (c *cylinder) Pose() Pose {
	return c.pose
}

func (c *cylinder) Type() GeometryType {
	return CylinderType
}

// Radius returns the radius of the cylinder.
func (c *cylinder) Radius() float64 {
	return c.radius
}

// Length returns the length of the cylinder along its axis.
func (c *cylinder) Length() float64 {
	return c.length
}

func (c *cylinder) AlmostEqual(g Geometry) bool {
	other, ok := g.(*cylinder)
	if !ok {
		return false
	}
	return PoseAlmostEqual(c.pose, other.pose) &&
		utils.Float64AlmostEqual(c.radius, other.radius, 1e-8) &&
		utils.Float64AlmostEqual(c.length, other.length, 1e-8)
}

func (c *cylinder) Transform(toPremultiply Pose) Geometry {
	return &cylinder{pose: Compose(toPremultiply, c.pose), radius: c.radius, length: c.length, label: c.label}
}

// Vertices returns nothing: a cylinder is not the dilation of a finite point set.
func (c *cylinder) Vertices() []r3.Vector {
	return nil
}
