package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/cspace/utils"
)

// capsule is a collision geometry that represents a capsule, it has a pose and a radius that fully define it.
//
// ....___________________
// .../                   \
// .x|  |-------O-------|  |x
// ...\___________________/
//
// Length is the distance between the x's, or internal segment length + 2*radius. The segment runs along the
// z axis of the pose, centered on the pose's point.
type capsule struct {
	pose   Pose
	radius float64
	length float64 // total length of the capsule, tip to tip
	label  string
}

// NewCapsule instantiates a new capsule Geometry. A capsule whose length is exactly twice its radius is a sphere.
func NewCapsule(offset Pose, radius, length float64, label string) (Geometry, error) {
	if radius <= 0 || length <= 0 {
		return nil, newBadGeometryDimensionsError(&capsule{})
	}
	if length < radius*2 {
		return nil, newBadCapsuleLengthError(length, radius)
	}
	if length == radius*2 {
		return NewSphere(offset, radius, label)
	}
	return &capsule{pose: offset, radius: radius, length: length, label: label}, nil
}

// String returns a human readable string that represents the capsule.
func (c *capsule) String() string {
	return fmt.Sprintf("Type: Capsule | Position: %s | Radius: %.3f, Length: %.3f",
		formatPoint(c.pose.Point()), c.radius, c.length)
}

// Label returns the label of this capsule.
func (c *capsule) Label() string {
	return c.label
}

// Pose returns the pose of the capsule.
func (c *capsule) Pose() Pose {
	return c.pose
}

func (c *capsule) Type() GeometryType {
	return CapsuleType
}

// Radius returns the radius of the capsule.
func (c *capsule) Radius() float64 {
	return c.radius
}

// Length returns the tip to tip length of the capsule.
func (c *capsule) Length() float64 {
	return c.length
}

// AlmostEqual compares the capsule with another geometry and checks if they are equivalent.
func (c *capsule) AlmostEqual(g Geometry) bool {
	other, ok := g.(*capsule)
	if !ok {
		return false
	}
	return PoseAlmostEqualEps(c.pose, other.pose, 1e-6) &&
		utils.Float64AlmostEqual(c.radius, other.radius, 1e-8) &&
		utils.Float64AlmostEqual(c.length, other.length, 1e-8)
}

// Transform premultiplies the capsule pose with a transform, allowing the capsule to be moved in space.
func (c *capsule) Transform(toPremultiply Pose) Geometry {
	return &capsule{
		pose:   Compose(toPremultiply, c.pose),
		radius: c.radius,
		length: c.length,
		label:  c.label,
	}
}

// Segment returns the two ends of the capsule's internal line segment.
func (c *capsule) Segment() (r3.Vector, r3.Vector) {
	half := c.length/2 - c.radius
	segA := TransformPoint(c.pose, r3.Vector{Z: -half})
	segB := TransformPoint(c.pose, r3.Vector{Z: half})
	return segA, segB
}

// Vertices returns the two segment ends.
func (c *capsule) Vertices() []r3.Vector {
	segA, segB := c.Segment()
	return []r3.Vector{segA, segB}
}
