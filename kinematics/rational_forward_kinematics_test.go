package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/spatialmath"
	"go.viam.com/cspace/symbolic"
	"go.viam.com/cspace/testutils"
)

// a three joint arm mixing revolute and prismatic joints
func makeSliderArm(t *testing.T) (*referenceframe.Mechanism, []referenceframe.BodyIndex) {
	t.Helper()
	m := referenceframe.NewMechanism("slider")
	bodies := make([]referenceframe.BodyIndex, 3)
	for i, name := range []string{"base", "slider", "tip"} {
		idx, err := m.AddBody(name)
		test.That(t, err, test.ShouldBeNil)
		bodies[i] = idx
	}
	_, err := m.AddJoint("shoulder", referenceframe.RevoluteJoint, referenceframe.WorldBodyIndex, bodies[0],
		spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.3}), r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	_, err = m.AddJoint("rail", referenceframe.PrismaticJoint, bodies[0], bodies[1],
		spatialmath.NewPose(r3.Vector{X: 0.1}, &spatialmath.EulerAngles{Pitch: 0.4}), r3.Vector{X: 1, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	_, err = m.AddJoint("wrist", referenceframe.RevoluteJoint, bodies[1], bodies[2],
		spatialmath.NewPoseFromPoint(r3.Vector{X: 0.2, Y: -0.1}), r3.Vector{Y: 1})
	test.That(t, err, test.ShouldBeNil)
	return m, bodies
}

func allBodies(m *referenceframe.Mechanism) []referenceframe.BodyIndex {
	var out []referenceframe.BodyIndex
	for _, b := range m.Bodies() {
		out = append(out, b.Index)
	}
	return out
}

func checkPosesMatch(t *testing.T, m *referenceframe.Mechanism, q, qStar []float64) {
	t.Helper()
	rfk, err := New(m)
	test.That(t, err, test.ShouldBeNil)
	env, err := rfk.Environment(q, qStar)
	test.That(t, err, test.ShouldBeNil)

	for _, body := range allBodies(m) {
		for _, expressed := range allBodies(m) {
			bodyPose, err := m.BodyPose(q, body)
			test.That(t, err, test.ShouldBeNil)
			expressedPose, err := m.BodyPose(q, expressed)
			test.That(t, err, test.ShouldBeNil)
			expected := spatialmath.PoseBetween(expressedPose, bodyPose)

			multilinear, err := rfk.CalcBodyPoseAsMultilinear(qStar, body, expressed)
			test.That(t, err, test.ShouldBeNil)
			actual, err := multilinear.Evaluate(env)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, spatialmath.PoseAlmostEqualEps(actual, expected, 1e-9), test.ShouldBeTrue)
		}
	}
}

func TestCalcBodyPoseAsMultilinear(t *testing.T) {
	t.Run("revolute tree", func(t *testing.T) {
		robot := testutils.NewToyRobot(t, false)
		checkPosesMatch(t, robot.Mechanism, []float64{0.3, -0.7, 1.2}, []float64{0, 0, 0})
		checkPosesMatch(t, robot.Mechanism, []float64{0.3, -0.7, 1.2}, []float64{-0.2, 0.5, 0.1})
	})
	t.Run("mixed joints", func(t *testing.T) {
		m, _ := makeSliderArm(t)
		checkPosesMatch(t, m, []float64{0.9, 0.25, -0.4}, []float64{0.1, -0.05, 0.3})
	})
	t.Run("bad nominal", func(t *testing.T) {
		robot := testutils.NewToyRobot(t, false)
		rfk, err := New(robot.Mechanism)
		test.That(t, err, test.ShouldBeNil)
		_, err = rfk.CalcBodyPoseAsMultilinear([]float64{0}, robot.Bodies[2], robot.Bodies[3])
		test.That(t, err, test.ShouldNotBeNil)
		_, err = rfk.CalcBodyPoseAsMultilinear([]float64{0, 0, 0}, referenceframe.BodyIndex(99), robot.Bodies[3])
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestMultilinearStructure(t *testing.T) {
	robot := testutils.NewToyRobot(t, false)
	rfk, err := New(robot.Mechanism)
	test.That(t, err, test.ShouldBeNil)

	pose, err := rfk.CalcBodyPoseAsMultilinear([]float64{0, 0.2, 0}, robot.Bodies[2], robot.Bodies[0])
	test.That(t, err, test.ShouldBeNil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			entry := pose.Rotation[r][c]
			for _, tm := range entry.Terms() {
				for i := 0; i < 2; i++ {
					degree := tm.Monomial.Degree(rfk.CosDelta(i)) + tm.Monomial.Degree(rfk.SinDelta(i))
					test.That(t, degree, test.ShouldBeLessThanOrEqualTo, 1)
				}
			}
			// joint2 is not on the path
			test.That(t, entry.Variables().Contains(rfk.CosDelta(2)), test.ShouldBeFalse)
		}
	}

	// a fixed-only path is constant
	pose, err = rfk.CalcBodyPoseAsMultilinear([]float64{0, 0, 0}, robot.Bodies[0], referenceframe.WorldBodyIndex)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Translation[2].Variables().Empty(), test.ShouldBeTrue)
	v, err := pose.Translation[2].Evaluate(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldAlmostEqual, 0.1)
}

func TestConvertMultilinearPolynomialToRational(t *testing.T) {
	robot := testutils.NewToyRobot(t, false)
	rfk, err := New(robot.Mechanism)
	test.That(t, err, test.ShouldBeNil)
	q := []float64{0.4, -1.1, 0.8}
	qStar := []float64{0.1, 0.2, -0.3}
	env, err := rfk.Environment(q, qStar)
	test.That(t, err, test.ShouldBeNil)

	t.Run("body positions", func(t *testing.T) {
		pose, err := rfk.CalcBodyPoseAsMultilinear(qStar, robot.Bodies[2], robot.Bodies[3])
		test.That(t, err, test.ShouldBeNil)
		sOnPath, err := rfk.SOnPath(robot.Bodies[2], robot.Bodies[3])
		test.That(t, err, test.ShouldBeNil)

		for _, p := range pose.TransformPoint(r3.Vector{X: 0.1, Y: -0.2, Z: 0.05}) {
			expected, err := p.Evaluate(env)
			test.That(t, err, test.ShouldBeNil)
			rational, err := rfk.ConvertMultilinearPolynomialToRational(p)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, rational.Numerator().Variables().IsSubsetOf(sOnPath), test.ShouldBeTrue)
			test.That(t, rational.Denominator().TotalDegree(), test.ShouldBeLessThanOrEqualTo, 2*sOnPath.Size())
			actual, err := rational.Evaluate(env)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, actual, test.ShouldAlmostEqual, expected, 1e-9)
		}
	})

	t.Run("decision variables pass through", func(t *testing.T) {
		x := symbolic.NewVariable("x")
		cos0 := rfk.CosDelta(0)
		sin1 := rfk.SinDelta(1)
		indeterminates := symbolic.NewVariables(cos0, sin1)
		p := symbolic.NewVariablePolynomial(x, indeterminates).
			Mul(symbolic.NewVariablePolynomial(cos0, indeterminates)).
			Scale(3).
			Add(symbolic.NewVariablePolynomial(sin1, indeterminates)).
			AddConstant(1)

		rational, err := rfk.ConvertMultilinearPolynomialToRational(p)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, rational.Numerator().DecisionVariables().Equal(symbolic.NewVariables(x)), test.ShouldBeTrue)
		test.That(t, rational.Numerator().Indeterminates().Equal(symbolic.NewVariables(rfk.S()[0], rfk.S()[1])), test.ShouldBeTrue)

		env[x] = 2.5
		expected, err := p.Evaluate(env)
		test.That(t, err, test.ShouldBeNil)
		actual, err := rational.Evaluate(env)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, actual, test.ShouldAlmostEqual, expected, 1e-9)
	})

	t.Run("constant", func(t *testing.T) {
		rational, err := rfk.ConvertMultilinearPolynomialToRational(symbolic.NewConstantPolynomial(4))
		test.That(t, err, test.ShouldBeNil)
		v, err := rational.Evaluate(nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, v, test.ShouldEqual, 4.)
	})

	t.Run("not multilinear", func(t *testing.T) {
		cos0 := rfk.CosDelta(0)
		sin0 := rfk.SinDelta(0)
		indeterminates := symbolic.NewVariables(cos0, sin0)
		p := symbolic.NewVariablePolynomial(cos0, indeterminates).Mul(symbolic.NewVariablePolynomial(sin0, indeterminates))
		_, err := rfk.ConvertMultilinearPolynomialToRational(p)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "not multilinear")

		squared := symbolic.NewMonomialPolynomial(symbolic.MonomialOf(cos0, 2), 1, indeterminates)
		_, err = rfk.ConvertMultilinearPolynomialToRational(squared)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestComputeSValue(t *testing.T) {
	m, _ := makeSliderArm(t)
	rfk, err := New(m)
	test.That(t, err, test.ShouldBeNil)

	q := []float64{1.2, 0.3, -0.6}
	qStar := []float64{0.2, 0.1, 0.4}
	s, err := rfk.ComputeSValue(q, qStar)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s[0], test.ShouldAlmostEqual, math.Tan(0.5))
	test.That(t, s[1], test.ShouldAlmostEqual, 0.2)
	test.That(t, s[2], test.ShouldAlmostEqual, math.Tan(-0.5))

	back, err := rfk.ComputeQValue(s, qStar)
	test.That(t, err, test.ShouldBeNil)
	for i := range q {
		test.That(t, back[i], test.ShouldAlmostEqual, q[i])
	}

	_, err = rfk.ComputeSValue(q, []float64{0})
	test.That(t, err, test.ShouldNotBeNil)
	_, err = rfk.ComputeQValue([]float64{0, 0}, qStar)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = rfk.Environment(q[:1], qStar)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestVariables(t *testing.T) {
	m, _ := makeSliderArm(t)
	rfk, err := New(m)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, len(rfk.S()), test.ShouldEqual, 3)
	test.That(t, rfk.SSet().Size(), test.ShouldEqual, 3)
	test.That(t, rfk.S()[1].Name(), test.ShouldEqual, "s[1]")
	// only the revolute joints get trig variables
	test.That(t, rfk.TrigVariables().Size(), test.ShouldEqual, 4)
	test.That(t, rfk.CosDelta(1).IsDummy(), test.ShouldBeTrue)
	test.That(t, rfk.CosDelta(2).Name(), test.ShouldEqual, "cos_delta[2]")

	_, err = New(nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSOnPath(t *testing.T) {
	robot := testutils.NewToyRobot(t, false)
	rfk, err := New(robot.Mechanism)
	test.That(t, err, test.ShouldBeNil)
	s := rfk.S()

	onPath, err := rfk.SOnPath(robot.Bodies[2], robot.Bodies[3])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, onPath.Equal(symbolic.NewVariables(s...)), test.ShouldBeTrue)

	onPath, err = rfk.SOnPath(referenceframe.WorldBodyIndex, robot.Bodies[1])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, onPath.Equal(symbolic.NewVariables(s[0])), test.ShouldBeTrue)

	onPath, err = rfk.SOnPath(referenceframe.WorldBodyIndex, robot.Bodies[0])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, onPath.Empty(), test.ShouldBeTrue)

	_, err = rfk.SOnPath(referenceframe.WorldBodyIndex, referenceframe.BodyIndex(42))
	test.That(t, err, test.ShouldNotBeNil)
}
