// Package cspace builds the separating planes that certify a region of a mechanism's configuration space is
// free of collisions, and generates the rational non-penetration constraints each plane must satisfy.
//
// A FreePolytope is built once from a mechanism and its collision geometries. Every pair of geometries on
// bodies that can move relative to each other, and that the geometry source does not filter, gets one
// SeparatingPlane. GenerateRationals then states, for a nominal configuration, the conditions under which each
// plane keeps its two geometries apart as rational functions of the configuration variables s.
package cspace

import (
	"maps"
	"slices"

	"github.com/samber/lo"
	"go.viam.com/cspace/kinematics"
	"go.viam.com/cspace/logging"
	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
	"go.viam.com/cspace/symbolic"
)

// FreePolytope holds the separating planes between a mechanism's collision geometries. It is immutable after
// NewFreePolytope returns, so any number of goroutines may generate constraints from it at once.
type FreePolytope struct {
	mech           *referenceframe.Mechanism
	rfk            *kinematics.RationalForwardKinematics
	linkGeometries LinkGeometries
	cfg            Config
	logger         logging.Logger

	planes      []*SeparatingPlane
	pairToPlane map[GeometryPair]int
	// every geometry separated by at least one plane
	planeGeometries map[scene.GeometryID]struct{}
	// decision variables over all planes
	decisionVariables symbolic.Variables
}

// NewFreePolytope collects the collision geometries of src and creates a separating plane for each pair of
// geometries that needs one. A nil cfg uses the defaults and a nil logger
// uses the "polytope" sublogger of the global logger.
func NewFreePolytope(
	mech *referenceframe.Mechanism,
	src GeometrySource,
	cfg *Config,
	logger logging.Logger,
) (*FreePolytope, error) {
	if logger == nil {
		logger = logging.Global().Sublogger("polytope")
	}
	if cfg != nil {
		if err := cfg.Validate("cspace"); err != nil {
			return nil, err
		}
	}
	rfk, err := kinematics.New(mech)
	if err != nil {
		return nil, err
	}
	linkGeometries, err := GetCollisionGeometries(mech, src)
	if err != nil {
		return nil, err
	}
	fp := &FreePolytope{
		mech:            mech,
		rfk:             rfk,
		linkGeometries:  linkGeometries,
		cfg:             cfg.withDefaults(),
		logger:          logger,
		pairToPlane:     map[GeometryPair]int{},
		planeGeometries: map[scene.GeometryID]struct{}{},
	}
	if err := fp.buildSeparatingPlanes(src); err != nil {
		return nil, err
	}
	logger.Debugw("built separating planes",
		"mechanism", mech.Name(),
		"geometries", linkGeometries.NumGeometries(),
		"planes", len(fp.planes),
		"order", fp.cfg.PlaneOrder,
		"expressed_body", fp.cfg.ExpressedBody)
	return fp, nil
}

func (fp *FreePolytope) expressedBody(bodyA, bodyB referenceframe.BodyIndex) (referenceframe.BodyIndex, error) {
	if fp.cfg.ExpressedBody == ChainMiddleExpressedBody {
		return fp.mech.FindBodyInTheMiddleOfChain(bodyA, bodyB)
	}
	return fp.mech.FindExpressedBody(bodyA, bodyB)
}

// buildSeparatingPlanes walks every pair of bodies in index order, skipping bodies welded to each other, and
// creates a plane for every unfiltered pair of their geometries.
func (fp *FreePolytope) buildSeparatingPlanes(src GeometrySource) error {
	bodies := lo.Keys(fp.linkGeometries)
	slices.Sort(bodies)
	var decision []symbolic.Variable
	for i, bodyA := range bodies {
		for _, bodyB := range bodies[i+1:] {
			if fp.mech.IsRigidlyFixed(bodyA, bodyB) {
				continue
			}
			geomsA, geomsB := fp.linkGeometries[bodyA], fp.linkGeometries[bodyB]
			if len(geomsA) == 0 || len(geomsB) == 0 {
				continue
			}
			expressed, err := fp.expressedBody(bodyA, bodyB)
			if err != nil {
				return err
			}
			s, err := fp.rfk.SOnPath(bodyA, bodyB)
			if err != nil {
				return err
			}
			for _, geomA := range geomsA {
				for _, geomB := range geomsB {
					if src.CollisionFiltered(geomA.ID(), geomB.ID()) {
						continue
					}
					positive, negative := geomA, geomB
					if negative.ID() < positive.ID() {
						positive, negative = negative, positive
					}
					index := len(fp.planes)
					plane := newSeparatingPlane(index, positive, negative, expressed, fp.cfg.PlaneOrder, s)
					fp.planes = append(fp.planes, plane)
					fp.pairToPlane[plane.Pair()] = index
					fp.planeGeometries[positive.ID()] = struct{}{}
					fp.planeGeometries[negative.ID()] = struct{}{}
					decision = append(decision, plane.DecisionVariables...)
				}
			}
		}
	}
	fp.decisionVariables = symbolic.NewVariables(decision...)
	return nil
}

// Mechanism returns the mechanism the planes were built for.
func (fp *FreePolytope) Mechanism() *referenceframe.Mechanism {
	return fp.mech
}

// RationalForwardKinematics returns the configuration variables the planes and constraints are stated in.
func (fp *FreePolytope) RationalForwardKinematics() *kinematics.RationalForwardKinematics {
	return fp.rfk
}

// LinkGeometries returns the collision geometries grouped by body.
func (fp *FreePolytope) LinkGeometries() LinkGeometries {
	out := make(LinkGeometries, len(fp.linkGeometries))
	for body, geoms := range fp.linkGeometries {
		out[body] = slices.Clone(geoms)
	}
	return out
}

// Config returns the configuration the planes were built with, defaults filled in.
func (fp *FreePolytope) Config() Config {
	return fp.cfg
}

// SeparatingPlanes returns every plane. A plane's index in the slice is its plane index.
func (fp *FreePolytope) SeparatingPlanes() []*SeparatingPlane {
	return slices.Clone(fp.planes)
}

// NumSeparatingPlanes returns the number of planes.
func (fp *FreePolytope) NumSeparatingPlanes() int {
	return len(fp.planes)
}

// PlaneIndex returns the index of the plane separating two geometries, in either order.
func (fp *FreePolytope) PlaneIndex(idA, idB scene.GeometryID) (int, bool) {
	index, ok := fp.pairToPlane[NewSortedPair(idA, idB)]
	return index, ok
}

// GeometryPairs returns the map from geometry pair to plane index.
func (fp *FreePolytope) GeometryPairs() map[GeometryPair]int {
	return maps.Clone(fp.pairToPlane)
}

// DecisionVariables returns the decision variables of every plane.
func (fp *FreePolytope) DecisionVariables() symbolic.Variables {
	return fp.decisionVariables
}
