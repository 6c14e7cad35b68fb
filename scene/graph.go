// Package scene stores the collision geometries attached to the bodies of a mechanism and answers which pairs of
// them are excluded from collision checking.
package scene

import (
	"github.com/pkg/errors"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/spatialmath"
)

// GeometryID uniquely identifies a geometry within a Graph. IDs are assigned in registration order starting at 1,
// so the zero value never names a geometry.
type GeometryID int64

// Geometry is a collision shape attached to a body. The shape's pose is relative to the body frame.
type Geometry struct {
	ID    GeometryID
	Body  referenceframe.BodyIndex
	Name  string
	Shape spatialmath.Geometry
}

type bodyPair [2]referenceframe.BodyIndex

func newBodyPair(a, b referenceframe.BodyIndex) bodyPair {
	if b < a {
		a, b = b, a
	}
	return bodyPair{a, b}
}

type geometryPair [2]GeometryID

func newGeometryPair(a, b GeometryID) geometryPair {
	if b < a {
		a, b = b, a
	}
	return geometryPair{a, b}
}

// Graph holds every registered geometry and the collision filters between them. A Graph is built once and then
// only read; it is not safe to register geometries while other goroutines query it.
type Graph struct {
	geometries     []*Geometry
	byID           map[GeometryID]*Geometry
	byName         map[string]GeometryID
	excludedBodies map[bodyPair]struct{}
	excludedPairs  map[geometryPair]struct{}
}

// NewGraph returns an empty scene.
func NewGraph() *Graph {
	return &Graph{
		byID:           map[GeometryID]*Geometry{},
		byName:         map[string]GeometryID{},
		excludedBodies: map[bodyPair]struct{}{},
		excludedPairs:  map[geometryPair]struct{}{},
	}
}

// RegisterGeometry attaches shape to body and returns its new id. Names, when given, must be unique. The body is
// not checked against any mechanism here.
func (g *Graph) RegisterGeometry(body referenceframe.BodyIndex, name string, shape spatialmath.Geometry) (GeometryID, error) {
	if shape == nil {
		return 0, errors.Errorf("geometry %q has no shape", name)
	}
	if name != "" {
		if _, ok := g.byName[name]; ok {
			return 0, NewDuplicateGeometryNameError(name)
		}
	}
	id := GeometryID(len(g.geometries) + 1)
	geom := &Geometry{ID: id, Body: body, Name: name, Shape: shape}
	g.geometries = append(g.geometries, geom)
	g.byID[id] = geom
	if name != "" {
		g.byName[name] = id
	}
	return id, nil
}

// Geometries returns every registered geometry in id order.
func (g *Graph) Geometries() []*Geometry {
	out := make([]*Geometry, len(g.geometries))
	copy(out, g.geometries)
	return out
}

// NumGeometries returns the number of registered geometries.
func (g *Graph) NumGeometries() int {
	return len(g.geometries)
}

// Geometry returns the geometry with the given id.
func (g *Graph) Geometry(id GeometryID) (*Geometry, error) {
	geom, ok := g.byID[id]
	if !ok {
		return nil, NewGeometryNotFoundError(id)
	}
	return geom, nil
}

// GeometryByName returns the id of the named geometry.
func (g *Graph) GeometryByName(name string) (GeometryID, error) {
	id, ok := g.byName[name]
	if !ok {
		return 0, errors.Errorf("no geometry named %q", name)
	}
	return id, nil
}

// GeometriesOnBody returns the geometries attached to body in id order.
func (g *Graph) GeometriesOnBody(body referenceframe.BodyIndex) []*Geometry {
	var out []*Geometry
	for _, geom := range g.geometries {
		if geom.Body == body {
			out = append(out, geom)
		}
	}
	return out
}

// ExcludeCollisionsBetween filters every pair of geometries where one is on bodyA and the other on bodyB.
func (g *Graph) ExcludeCollisionsBetween(bodyA, bodyB referenceframe.BodyIndex) {
	g.excludedBodies[newBodyPair(bodyA, bodyB)] = struct{}{}
}

// ExcludeGeometryPair filters a single pair of geometries.
func (g *Graph) ExcludeGeometryPair(idA, idB GeometryID) error {
	for _, id := range []GeometryID{idA, idB} {
		if _, ok := g.byID[id]; !ok {
			return NewGeometryNotFoundError(id)
		}
	}
	g.excludedPairs[newGeometryPair(idA, idB)] = struct{}{}
	return nil
}

// FilterAdjacentBodies excludes collisions between every parent and child body of mech, the default for bodies
// that are joined and usually overlap at the joint.
func (g *Graph) FilterAdjacentBodies(mech *referenceframe.Mechanism) {
	for _, j := range mech.Joints() {
		g.ExcludeCollisionsBetween(j.Parent, j.Child)
	}
}

// CollisionFiltered reports whether collisions between the two geometries are excluded. Two geometries on the same
// body are always filtered. Unknown ids are reported as filtered.
func (g *Graph) CollisionFiltered(idA, idB GeometryID) bool {
	a, okA := g.byID[idA]
	b, okB := g.byID[idB]
	if !okA || !okB {
		return true
	}
	if a.Body == b.Body {
		return true
	}
	if _, ok := g.excludedBodies[newBodyPair(a.Body, b.Body)]; ok {
		return true
	}
	_, ok := g.excludedPairs[newGeometryPair(idA, idB)]
	return ok
}
