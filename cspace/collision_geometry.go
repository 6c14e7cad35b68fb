package cspace

import (
	"cmp"
	"slices"

	"github.com/golang/geo/r3"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
	"go.viam.com/cspace/spatialmath"
)

// GeometrySource enumerates the collision geometries attached to a mechanism's bodies and reports which pairs
// of them are never checked for collision. It is implemented by *scene.Graph.
type GeometrySource interface {
	Geometries() []*scene.Geometry
	CollisionFiltered(idA, idB scene.GeometryID) bool
}

var _ GeometrySource = (*scene.Graph)(nil)

// CollisionGeometry is a geometry attached to a body, with the number of rational constraints its shape adds to
// one side of a separating plane.
type CollisionGeometry struct {
	id    scene.GeometryID
	body  referenceframe.BodyIndex
	name  string
	shape spatialmath.Geometry
}

func newCollisionGeometry(g *scene.Geometry) (*CollisionGeometry, error) {
	switch g.Shape.Type() {
	case spatialmath.SphereType, spatialmath.CapsuleType, spatialmath.BoxType,
		spatialmath.ConvexType, spatialmath.CylinderType:
	default:
		return nil, NewUnsupportedShapeError(g.ID, g.Shape.Type())
	}
	return &CollisionGeometry{id: g.ID, body: g.Body, name: g.Name, shape: g.Shape}, nil
}

// ID returns the geometry id.
func (cg *CollisionGeometry) ID() scene.GeometryID {
	return cg.id
}

// Body returns the body the geometry is attached to.
func (cg *CollisionGeometry) Body() referenceframe.BodyIndex {
	return cg.body
}

// Name returns the name the geometry was registered with.
func (cg *CollisionGeometry) Name() string {
	return cg.name
}

// Type returns the kind of shape.
func (cg *CollisionGeometry) Type() spatialmath.GeometryType {
	return cg.shape.Type()
}

// Geometry returns the shape, posed in the body frame.
func (cg *CollisionGeometry) Geometry() spatialmath.Geometry {
	return cg.shape
}

// IsPolytope reports whether the shape is a box or a convex polytope.
func (cg *CollisionGeometry) IsPolytope() bool {
	t := cg.Type()
	return t == spatialmath.BoxType || t == spatialmath.ConvexType
}

// IsRounded reports whether the shape is a sphere or capsule, whose constraints need a unit normal.
func (cg *CollisionGeometry) IsRounded() bool {
	t := cg.Type()
	return t == spatialmath.SphereType || t == spatialmath.CapsuleType
}

// NumRationalsPerSide returns how many rational constraints the geometry contributes to its side of a plane:
// one per sphere center, capsule segment end, or polytope vertex. Cylinders are not supported and return 0.
func (cg *CollisionGeometry) NumRationalsPerSide() int {
	switch cg.Type() {
	case spatialmath.SphereType:
		return 1
	case spatialmath.CapsuleType:
		return 2
	case spatialmath.BoxType, spatialmath.ConvexType:
		return len(cg.shape.Vertices())
	default:
		return 0
	}
}

// supportPoints returns the body-frame points constrained against the plane, together with the distance each
// must keep from it.
func (cg *CollisionGeometry) supportPoints() ([]r3.Vector, float64) {
	radius := 0.
	if rounded, ok := cg.shape.(spatialmath.RoundedGeometry); ok {
		radius = rounded.Radius()
	}
	return cg.shape.Vertices(), radius
}

// LinkGeometries maps every body of a mechanism, including world, to the geometries attached to it in id order.
type LinkGeometries map[referenceframe.BodyIndex][]*CollisionGeometry

// NumGeometries returns the total number of geometries over every body.
func (lg LinkGeometries) NumGeometries() int {
	n := 0
	for _, geoms := range lg {
		n += len(geoms)
	}
	return n
}

// GetCollisionGeometries groups every geometry of src by the body it is attached to. Every body of mech gets an
// entry, even when it has no geometries.
func GetCollisionGeometries(mech *referenceframe.Mechanism, src GeometrySource) (LinkGeometries, error) {
	out := make(LinkGeometries, mech.NumBodies())
	for _, b := range mech.Bodies() {
		out[b.Index] = []*CollisionGeometry{}
	}
	for _, g := range src.Geometries() {
		if !mech.HasBody(g.Body) {
			return nil, NewUnknownBodyError(g.ID, g.Body)
		}
		cg, err := newCollisionGeometry(g)
		if err != nil {
			return nil, err
		}
		out[g.Body] = append(out[g.Body], cg)
	}
	for _, geoms := range out {
		slices.SortFunc(geoms, func(a, b *CollisionGeometry) int {
			return cmp.Compare(a.id, b.id)
		})
	}
	return out, nil
}
