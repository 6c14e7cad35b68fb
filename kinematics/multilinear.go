package kinematics

import (
	"github.com/golang/geo/r3"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/spatialmath"
	"go.viam.com/cspace/symbolic"
)

// MultilinearPose is a pose whose entries are polynomials, multilinear in the cos/sin pair of each revolute joint
// displacement and linear in the s of each prismatic joint.
type MultilinearPose struct {
	Rotation    [3][3]symbolic.Polynomial
	Translation [3]symbolic.Polynomial
}

func constantPose(p spatialmath.Pose) MultilinearPose {
	var out MultilinearPose
	rm := p.Orientation().RotationMatrix()
	pt := p.Point()
	translation := [3]float64{pt.X, pt.Y, pt.Z}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Rotation[r][c] = symbolic.NewConstantPolynomial(rm.At(r, c))
		}
		out.Translation[r] = symbolic.NewConstantPolynomial(translation[r])
	}
	return out
}

// rotationDelta is the rotation about axis by the displacement whose cos and sin are the given variables:
// I + sign*sin*K + (1-cos)*K^2. A sign of -1 gives the inverse rotation.
func rotationDelta(axis r3.Vector, cosVar, sinVar symbolic.Variable, sign float64) MultilinearPose {
	indeterminates := symbolic.NewVariables(cosVar, sinVar)
	cosPoly := symbolic.NewVariablePolynomial(cosVar, indeterminates)
	sinPoly := symbolic.NewVariablePolynomial(sinVar, indeterminates)

	k := spatialmath.SkewSymmetric(axis)
	var out MultilinearPose
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			k2 := 0.
			for i := 0; i < 3; i++ {
				k2 += k[r*3+i] * k[i*3+c]
			}
			constant := k2
			if r == c {
				constant++
			}
			out.Rotation[r][c] = sinPoly.Scale(sign * k[r*3+c]).
				Add(cosPoly.Scale(-k2)).
				AddConstant(constant).
				WithIndeterminates(indeterminates)
		}
		out.Translation[r] = symbolic.NewPolynomial(indeterminates)
	}
	return out
}

// translationDelta translates along axis by sign*s.
func translationDelta(axis r3.Vector, s symbolic.Variable, sign float64) MultilinearPose {
	indeterminates := symbolic.NewVariables(s)
	sPoly := symbolic.NewVariablePolynomial(s, indeterminates)
	out := constantPose(spatialmath.NewZeroPose())
	components := [3]float64{axis.X, axis.Y, axis.Z}
	for r := 0; r < 3; r++ {
		out.Translation[r] = sPoly.Scale(sign * components[r]).WithIndeterminates(indeterminates)
	}
	return out
}

// Compose returns the pose p * other.
func (p MultilinearPose) Compose(other MultilinearPose) MultilinearPose {
	var out MultilinearPose
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum := symbolic.Polynomial{}
			for i := 0; i < 3; i++ {
				sum = sum.Add(p.Rotation[r][i].Mul(other.Rotation[i][c]))
			}
			out.Rotation[r][c] = sum
		}
		sum := p.Translation[r]
		for i := 0; i < 3; i++ {
			sum = sum.Add(p.Rotation[r][i].Mul(other.Translation[i]))
		}
		out.Translation[r] = sum
	}
	return out
}

// TransformPoint returns R*pt + t.
func (p MultilinearPose) TransformPoint(pt r3.Vector) [3]symbolic.Polynomial {
	components := [3]float64{pt.X, pt.Y, pt.Z}
	var out [3]symbolic.Polynomial
	for r := 0; r < 3; r++ {
		sum := p.Translation[r]
		for i := 0; i < 3; i++ {
			sum = sum.Add(p.Rotation[r][i].Scale(components[i]))
		}
		out[r] = sum
	}
	return out
}

// Evaluate computes the numeric pose given values for every variable in its entries.
func (p MultilinearPose) Evaluate(env map[symbolic.Variable]float64) (spatialmath.Pose, error) {
	vals := make([]float64, 0, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v, err := p.Rotation[r][c].Evaluate(env)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
	}
	var pt [3]float64
	for r := 0; r < 3; r++ {
		v, err := p.Translation[r].Evaluate(env)
		if err != nil {
			return nil, err
		}
		pt[r] = v
	}
	rm, err := spatialmath.NewRotationMatrix(vals)
	if err != nil {
		return nil, err
	}
	q := spatialmath.Quaternion(rm.Quaternion())
	return spatialmath.NewPose(r3.Vector{X: pt[0], Y: pt[1], Z: pt[2]}, &q), nil
}

// jointStep returns the pose of the next body on a path relative to the current one, where the path crosses joint j
// from parent to child when down is true and from child to parent otherwise.
func (rfk *RationalForwardKinematics) jointStep(j *referenceframe.Joint, qStar []float64, down bool) MultilinearPose {
	nominal := 0.
	if j.IsMovable() {
		nominal = qStar[j.PositionIndex]
	}
	atNominal := j.Transform(nominal)

	sign := 1.
	if !down {
		sign = -1
	}
	var delta MultilinearPose
	switch j.Type {
	case referenceframe.RevoluteJoint:
		delta = rotationDelta(j.Axis, rfk.cosDelta[j.PositionIndex], rfk.sinDelta[j.PositionIndex], sign)
	case referenceframe.PrismaticJoint:
		delta = translationDelta(j.Axis, rfk.s[j.PositionIndex], sign)
	case referenceframe.FixedJoint:
		if down {
			return constantPose(atNominal)
		}
		return constantPose(spatialmath.PoseInverse(atNominal))
	}
	if down {
		return constantPose(atNominal).Compose(delta)
	}
	// stepping up inverts the joint one factor at a time so the result stays multilinear
	return delta.Compose(constantPose(spatialmath.PoseInverse(atNominal)))
}

// CalcBodyPoseAsMultilinear returns the pose of body in the frame of expressedBody as a function of the
// displacement of each joint on the path between them from qStar.
func (rfk *RationalForwardKinematics) CalcBodyPoseAsMultilinear(
	qStar []float64,
	body, expressedBody referenceframe.BodyIndex,
) (MultilinearPose, error) {
	if err := rfk.checkLength("q*", qStar); err != nil {
		return MultilinearPose{}, err
	}
	path, err := rfk.mech.FindPath(expressedBody, body)
	if err != nil {
		return MultilinearPose{}, err
	}
	joints, err := rfk.mech.JointsOnPath(expressedBody, body)
	if err != nil {
		return MultilinearPose{}, err
	}
	pose := constantPose(spatialmath.NewZeroPose())
	for i, j := range joints {
		// the path moves down the tree when the next body is this joint's child
		down := j.Child == path[i+1]
		pose = pose.Compose(rfk.jointStep(j, qStar, down))
	}
	return pose, nil
}
