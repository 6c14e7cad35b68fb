package cspace

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/cspace/logging"
	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/symbolic"
	"go.viam.com/cspace/testutils"
)

func expectedPlaneCount(lg LinkGeometries, robot *testutils.ToyRobot) int {
	world := referenceframe.WorldBodyIndex
	b := robot.Bodies
	// world and body0 are welded, and every parent/child pair is filtered
	return len(lg[world])*(len(lg[b[1]])+len(lg[b[2]])+len(lg[b[3]])) +
		len(lg[b[0]])*len(lg[b[2]]) +
		len(lg[b[1]])*len(lg[b[3]]) +
		len(lg[b[2]])*len(lg[b[3]])
}

func TestNewFreePolytope(t *testing.T) {
	robot := testutils.NewToyRobot(t, true)
	logger, logs := logging.NewObservedTestLogger(t)
	fp, err := NewFreePolytope(robot.Mechanism, robot.Scene, nil, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fp.Config(), test.ShouldResemble, *NewDefaultConfig())

	lg := fp.LinkGeometries()
	test.That(t, expectedPlaneCount(lg, robot), test.ShouldEqual, 24)
	test.That(t, fp.NumSeparatingPlanes(), test.ShouldEqual, 24)
	test.That(t, len(fp.GeometryPairs()), test.ShouldEqual, 24)
	test.That(t, logs.FilterMessage("built separating planes").Len(), test.ShouldEqual, 1)

	rfk := fp.RationalForwardKinematics()
	for pair, index := range fp.GeometryPairs() {
		plane := fp.SeparatingPlanes()[index]
		test.That(t, plane.PositiveSide.ID(), test.ShouldBeLessThan, plane.NegativeSide.ID())
		test.That(t, pair.First(), test.ShouldEqual, plane.PositiveSide.ID())
		test.That(t, pair.Second(), test.ShouldEqual, plane.NegativeSide.ID())

		forward, ok := fp.PlaneIndex(pair.First(), pair.Second())
		test.That(t, ok, test.ShouldBeTrue)
		backward, ok := fp.PlaneIndex(pair.Second(), pair.First())
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, forward, test.ShouldEqual, index)
		test.That(t, backward, test.ShouldEqual, index)

		bodyA, bodyB := plane.PositiveSide.Body(), plane.NegativeSide.Body()
		test.That(t, bodyA, test.ShouldNotEqual, bodyB)
		test.That(t, robot.Mechanism.IsRigidlyFixed(bodyA, bodyB), test.ShouldBeFalse)
		test.That(t, robot.Mechanism.AreAdjacent(bodyA, bodyB), test.ShouldBeFalse)

		expressed, err := robot.Mechanism.FindExpressedBody(bodyA, bodyB)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, plane.ExpressedBody, test.ShouldEqual, expressed)

		s, err := rfk.SOnPath(bodyA, bodyB)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Empty(), test.ShouldBeFalse)
		for i := 0; i < 3; i++ {
			test.That(t, plane.A[i].TotalDegree(), test.ShouldEqual, 1)
			test.That(t, plane.A[i].Indeterminates().Equal(s), test.ShouldBeTrue)
			test.That(t, plane.A[i].DecisionVariables().Size(), test.ShouldEqual, 1+s.Size())
		}
		test.That(t, plane.B.TotalDegree(), test.ShouldEqual, 1)
		test.That(t, plane.Indeterminates().Equal(s), test.ShouldBeTrue)
		test.That(t, len(plane.DecisionVariables), test.ShouldEqual, 4*(1+s.Size()))
	}
	test.That(t, fp.DecisionVariables().Intersect(rfk.SSet()).Empty(), test.ShouldBeTrue)

	_, ok := fp.PlaneIndex(robot.WorldBox, robot.Body0Box)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = fp.PlaneIndex(robot.Body1Convex, robot.Body2Sphere)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = fp.PlaneIndex(robot.Body3Sphere, robot.WorldBox)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestNewFreePolytopeUnfiltered(t *testing.T) {
	robot := testutils.NewToyRobot(t, false)
	fp, err := NewFreePolytope(robot.Mechanism, robot.Scene, nil, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	// every body pair but the welded world/body0, with 2x2 geometry pairs each
	test.That(t, fp.NumSeparatingPlanes(), test.ShouldEqual, 36)

	for _, plane := range fp.SeparatingPlanes() {
		bodies := []referenceframe.BodyIndex{plane.PositiveSide.Body(), plane.NegativeSide.Body()}
		test.That(t, bodies, test.ShouldNotResemble, []referenceframe.BodyIndex{referenceframe.WorldBodyIndex, robot.Bodies[0]})
		test.That(t, bodies, test.ShouldNotResemble, []referenceframe.BodyIndex{robot.Bodies[0], referenceframe.WorldBodyIndex})
	}

	// body0 and body2 are joined through body1, so the pair keeps its planes
	_, ok := fp.PlaneIndex(robot.Body0Box, robot.Body2Capsule)
	test.That(t, ok, test.ShouldBeTrue)
	_, ok = fp.PlaneIndex(robot.Body0Box, robot.Body1Capsule)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestNewFreePolytopeConfig(t *testing.T) {
	t.Run("constant planes", func(t *testing.T) {
		robot := testutils.NewToyRobot(t, true)
		fp, err := NewFreePolytope(robot.Mechanism, robot.Scene, &Config{PlaneOrder: ConstantPlaneOrder}, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, fp.Config().ExpressedBody, test.ShouldEqual, CommonAncestorExpressedBody)
		for _, plane := range fp.SeparatingPlanes() {
			test.That(t, plane.Order, test.ShouldEqual, ConstantPlaneOrder)
			test.That(t, len(plane.DecisionVariables), test.ShouldEqual, 4)
			for i := 0; i < 3; i++ {
				test.That(t, plane.A[i].TotalDegree(), test.ShouldEqual, 0)
			}
		}
	})

	t.Run("chain middle", func(t *testing.T) {
		robot := testutils.NewToyRobot(t, true)
		fp, err := NewFreePolytope(robot.Mechanism, robot.Scene, &Config{ExpressedBody: ChainMiddleExpressedBody}, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, fp.Config().PlaneOrder, test.ShouldEqual, AffinePlaneOrder)
		for _, plane := range fp.SeparatingPlanes() {
			expected, err := robot.Mechanism.FindBodyInTheMiddleOfChain(plane.PositiveSide.Body(), plane.NegativeSide.Body())
			test.That(t, err, test.ShouldBeNil)
			test.That(t, plane.ExpressedBody, test.ShouldEqual, expected)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		robot := testutils.NewToyRobot(t, true)
		_, err := NewFreePolytope(robot.Mechanism, robot.Scene, &Config{PlaneOrder: "cubic"}, nil)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "cubic")
	})
}

func TestSeparatingPlaneEvaluate(t *testing.T) {
	robot := testutils.NewToyRobot(t, true)
	fp, err := NewFreePolytope(robot.Mechanism, robot.Scene, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	index, ok := fp.PlaneIndex(robot.WorldSphere, robot.Body1Capsule)
	test.That(t, ok, test.ShouldBeTrue)
	plane := fp.SeparatingPlanes()[index]

	// world to body1 crosses only joint0
	s0 := fp.RationalForwardKinematics().S()[0]
	decision := map[symbolic.Variable]float64{}
	for i, v := range plane.DecisionVariables {
		decision[v] = float64(i + 1)
	}
	a, b, err := plane.Evaluate(decision, map[symbolic.Variable]float64{s0: 0.5})
	test.That(t, err, test.ShouldBeNil)
	// coefficients are created as a0 = d0 + d1*s0, a1 = d2 + d3*s0, ...
	test.That(t, a.X, test.ShouldAlmostEqual, 1+2*0.5)
	test.That(t, a.Y, test.ShouldAlmostEqual, 3+4*0.5)
	test.That(t, a.Z, test.ShouldAlmostEqual, 5+6*0.5)
	test.That(t, b, test.ShouldAlmostEqual, 7+8*0.5)

	_, _, err = plane.Evaluate(decision, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNewFreePolytopeGlobalLogger(t *testing.T) {
	prev := logging.Global()
	t.Cleanup(func() { logging.ReplaceGlobal(prev) })
	logger, logs := logging.NewObservedTestLogger(t)
	logging.ReplaceGlobal(logger)

	robot := testutils.NewToyRobot(t, true)
	_, err := NewFreePolytope(robot.Mechanism, robot.Scene, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	built := logs.FilterMessage("built separating planes").All()
	test.That(t, len(built), test.ShouldEqual, 1)
	test.That(t, built[0].LoggerName, test.ShouldEqual, "polytope")
}
