package spatialmath

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r3"
)

// convexPolytope is the convex hull of a finite set of vertices given in the frame of its pose. The vertices
// are not reduced to the hull; every given vertex is kept.
type convexPolytope struct {
	pose     Pose
	vertices []r3.Vector
	label    string
}

// NewConvexPolytope instantiates a convex polytope Geometry from its vertices.
func NewConvexPolytope(pose Pose, vertices []r3.Vector, label string) (Geometry, error) {
	if len(vertices) == 0 {
		return nil, newConvexPolytopeTooFewVerticesError(len(vertices))
	}
	return &convexPolytope{pose: pose, vertices: slices.Clone(vertices), label: label}, nil
}

func (cp *convexPolytope) String() string {
	return fmt.Sprintf("Type: Convex | Position: %s | Vertices: %d", formatPoint(cp.pose.Point()), len(cp.vertices))
}

func (cp *convexPolytope) Label() string {
	return cp.label
}

func (cp *convexPolytope) Pose() Pose {
	return cp.pose
}

func (cp *convexPolytope) Type() GeometryType {
	return ConvexType
}

func (cp *convexPolytope) AlmostEqual(g Geometry) bool {
	other, ok := g.(*convexPolytope)
	if !ok || len(other.vertices) != len(cp.vertices) {
		return false
	}
	for i, v := range cp.vertices {
		if v.Sub(other.vertices[i]).Norm() > 1e-8 {
			return false
		}
	}
	return PoseAlmostEqual(cp.pose, other.pose)
}

func (cp *convexPolytope) Transform(toPremultiply Pose) Geometry {
	return &convexPolytope{pose: Compose(toPremultiply, cp.pose), vertices: cp.vertices, label: cp.label}
}

func (cp *convexPolytope) Vertices() []r3.Vector {
	return transformAll(cp.pose, cp.vertices)
}
