package cspace

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"go.viam.com/cspace/kinematics"
	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
	"go.viam.com/cspace/spatialmath"
	"go.viam.com/cspace/symbolic"
	"go.viam.com/cspace/utils"
)

// PlaneGeometries holds the constraints generated for one separating plane. Each rational is non-negative
// exactly when its point lies on the correct side of the plane by the required distance. Each unit length
// vector must have norm at most one for the rationals to bound true distances.
type PlaneGeometries struct {
	PlaneIndex        int
	UnitLengthVectors [][3]symbolic.Polynomial
	Rationals         []symbolic.RationalFunction
}

// GenerateRequest is one set of arguments to GenerateRationals.
type GenerateRequest struct {
	QStar    []float64
	Filtered FilteredCollisionPairs
	Margin   *symbolic.Variable
}

func (fp *FreePolytope) validateGenerateArgs(
	qStar []float64,
	filtered FilteredCollisionPairs,
	margin *symbolic.Variable,
) error {
	if n := fp.mech.NumPositions(); len(qStar) != n {
		return errors.Wrapf(ErrInvalidArgument, "q*: %v", referenceframe.NewIncorrectConfigurationLengthError(len(qStar), n))
	}
	for pair := range filtered {
		for _, id := range []scene.GeometryID{pair.First(), pair.Second()} {
			if _, ok := fp.planeGeometries[id]; !ok {
				return NewUnknownFilteredGeometryError(id)
			}
		}
	}
	if margin == nil {
		return nil
	}
	switch {
	case margin.IsDummy():
		return errors.Wrap(ErrInvalidArgument, "separating margin is the zero variable")
	case fp.rfk.SSet().Contains(*margin):
		return NewMarginCollisionError(*margin, "configuration variable")
	case fp.rfk.TrigVariables().Contains(*margin):
		return NewMarginCollisionError(*margin, "joint displacement variable")
	case fp.decisionVariables.Contains(*margin):
		return NewMarginCollisionError(*margin, "plane decision variable")
	}
	return nil
}

// GenerateRationals states the non-penetration conditions of every plane not in filtered, for configurations
// around qStar. On the positive side each support point p of a geometry must satisfy a·p + b ≥ k, and on the
// negative side -(a·p + b) ≥ k, where k is the geometry's radius plus the margin when one is given. When neither
// geometry is rounded and there is no margin, the plane's scale is fixed by k = 1 instead, and no unit length
// vector is returned. A plane touching a cylinder fails the whole call with ErrUnimplemented.
func (fp *FreePolytope) GenerateRationals(
	qStar []float64,
	filtered FilteredCollisionPairs,
	margin *symbolic.Variable,
) ([]PlaneGeometries, error) {
	if err := fp.validateGenerateArgs(qStar, filtered, margin); err != nil {
		return nil, err
	}

	var retained []int
	for index, plane := range fp.planes {
		if filtered.Contains(plane.Pair()) {
			continue
		}
		if plane.PositiveSide.Type() == spatialmath.CylinderType || plane.NegativeSide.Type() == spatialmath.CylinderType {
			return nil, NewCylinderUnimplementedError(index)
		}
		retained = append(retained, index)
	}

	g := &generator{
		rfk:    fp.rfk,
		qStar:  qStar,
		margin: margin,
		poses:  map[[2]referenceframe.BodyIndex]kinematics.MultilinearPose{},
	}
	out := make([]PlaneGeometries, 0, len(retained))
	for _, index := range retained {
		pg, err := g.planeGeometries(index, fp.planes[index])
		if err != nil {
			return nil, errors.Wrapf(err, "separating plane %d", index)
		}
		out = append(out, pg)
	}
	fp.logger.Debugw("generated rationals",
		"planes", len(out),
		"filtered", len(fp.planes)-len(out),
		"margin", margin != nil)
	return out, nil
}

// GenerateRationalsBatch runs GenerateRationals for every request concurrently. Results are in request order.
// The first error cancels the remaining requests.
func (fp *FreePolytope) GenerateRationalsBatch(ctx context.Context, requests []GenerateRequest) ([][]PlaneGeometries, error) {
	results := make([][]PlaneGeometries, len(requests))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(utils.WorkerLimit(len(requests)))
	for i, req := range requests {
		i, req := i, req
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fp.GenerateRationals(req.QStar, req.Filtered, req.Margin)
			if err != nil {
				return errors.Wrapf(err, "request %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// generator holds the state of a single GenerateRationals call. Poses are cached per (body, expressed body)
// since many planes share them.
type generator struct {
	rfk    *kinematics.RationalForwardKinematics
	qStar  []float64
	margin *symbolic.Variable
	poses  map[[2]referenceframe.BodyIndex]kinematics.MultilinearPose
}

func (g *generator) pose(body, expressed referenceframe.BodyIndex) (kinematics.MultilinearPose, error) {
	key := [2]referenceframe.BodyIndex{body, expressed}
	if pose, ok := g.poses[key]; ok {
		return pose, nil
	}
	pose, err := g.rfk.CalcBodyPoseAsMultilinear(g.qStar, body, expressed)
	if err != nil {
		return kinematics.MultilinearPose{}, err
	}
	g.poses[key] = pose
	return pose, nil
}

func (g *generator) planeGeometries(index int, plane *SeparatingPlane) (PlaneGeometries, error) {
	pg := PlaneGeometries{PlaneIndex: index}
	withUnitVector := g.margin != nil || plane.PositiveSide.IsRounded() || plane.NegativeSide.IsRounded()
	if withUnitVector {
		pg.UnitLengthVectors = [][3]symbolic.Polynomial{plane.A}
	}
	for _, side := range []struct {
		geom     *CollisionGeometry
		positive bool
	}{{plane.PositiveSide, true}, {plane.NegativeSide, false}} {
		rationals, err := g.sideRationals(plane, side.geom, side.positive, withUnitVector)
		if err != nil {
			return PlaneGeometries{}, err
		}
		pg.Rationals = append(pg.Rationals, rationals...)
	}
	return pg, nil
}

func (g *generator) sideRationals(
	plane *SeparatingPlane,
	geom *CollisionGeometry,
	positive, withUnitVector bool,
) ([]symbolic.RationalFunction, error) {
	pose, err := g.pose(geom.Body(), plane.ExpressedBody)
	if err != nil {
		return nil, err
	}
	points, radius := geom.supportPoints()
	offset := radius
	if geom.IsPolytope() && !withUnitVector {
		offset = 1
	}

	out := make([]symbolic.RationalFunction, 0, len(points))
	for _, p := range points {
		pt := pose.TransformPoint(p)
		expr := plane.B
		for i := range pt {
			expr = expr.Add(plane.A[i].Mul(pt[i]))
		}
		if !positive {
			expr = expr.Neg()
		}
		expr = expr.AddConstant(-offset)
		if g.margin != nil {
			expr = expr.Sub(symbolic.NewVariablePolynomial(*g.margin, expr.Indeterminates()))
		}
		rational, err := g.rfk.ConvertMultilinearPolynomialToRational(expr)
		if err != nil {
			return nil, err
		}
		out = append(out, rational)
	}
	return out, nil
}
