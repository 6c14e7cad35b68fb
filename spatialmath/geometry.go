package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// GeometryType defines what kinds of Geometries can be created.
type GeometryType string

// Implementations of the GeometryType enum.
const (
	UnknownType  = GeometryType("")
	BoxType      = GeometryType("box")
	SphereType   = GeometryType("sphere")
	CapsuleType  = GeometryType("capsule")
	ConvexType   = GeometryType("convex")
	CylinderType = GeometryType("cylinder")
)

// Geometry is an entry point with which to access all types of collision geometries.
type Geometry interface {
	Pose() Pose
	Label() string
	Type() GeometryType
	// Transform premultiplies the geometry's pose, moving it into the frame the given pose is expressed in.
	Transform(Pose) Geometry
	AlmostEqual(Geometry) bool
	// Vertices returns the points whose convex hull, dilated by the geometry's radius if it is rounded, is
	// the geometry. Points are expressed in the frame the geometry's pose is relative to.
	Vertices() []r3.Vector
	String() string
}

// RoundedGeometry is a Geometry with a radius: a sphere, capsule or cylinder.
type RoundedGeometry interface {
	Geometry
	Radius() float64
}

// GeometryConfig specifies the format of geometries specified through configuration files.
type GeometryConfig struct {
	Type GeometryType `json:"type" yaml:"type"`

	// parameters used for defining a box's rectangular cross-section
	X float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Z float64 `json:"z,omitempty" yaml:"z,omitempty"`

	// parameter used for defining a sphere's, capsule's or cylinder's radius
	R float64 `json:"r,omitempty" yaml:"r,omitempty"`

	// parameter used for defining a capsule's or cylinder's length
	L float64 `json:"l,omitempty" yaml:"l,omitempty"`

	// vertices of a convex polytope, each as [x, y, z]
	Vertices [][3]float64 `json:"vertices,omitempty" yaml:"vertices,omitempty"`

	// define an offset to position the geometry
	TranslationOffset r3.Vector   `json:"translation,omitempty" yaml:"translation,omitempty"`
	OrientationOffset EulerAngles `json:"orientation,omitempty" yaml:"orientation,omitempty"`

	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// ParseConfig converts a GeometryConfig into the correct Geometry.
func (config *GeometryConfig) ParseConfig() (Geometry, error) {
	offset := NewPose(config.TranslationOffset, &config.OrientationOffset)

	switch config.Type {
	case BoxType:
		return NewBox(offset, r3.Vector{X: config.X, Y: config.Y, Z: config.Z}, config.Label)
	case SphereType:
		return NewSphere(offset, config.R, config.Label)
	case CapsuleType:
		return NewCapsule(offset, config.R, config.L, config.Label)
	case CylinderType:
		return NewCylinder(offset, config.R, config.L, config.Label)
	case ConvexType:
		vertices := make([]r3.Vector, 0, len(config.Vertices))
		for _, v := range config.Vertices {
			vertices = append(vertices, r3.Vector{X: v[0], Y: v[1], Z: v[2]})
		}
		return NewConvexPolytope(offset, vertices, config.Label)
	case UnknownType:
		return nil, errors.New("geometry config requires a type")
	default:
		return nil, newGeometryTypeUnsupportedError(string(config.Type))
	}
}

func transformAll(p Pose, pts []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, pt := range pts {
		out[i] = TransformPoint(p, pt)
	}
	return out
}

func formatPoint(pt r3.Vector) string {
	return fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z)
}
