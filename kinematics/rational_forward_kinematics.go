// Package kinematics computes the pose of a mechanism's bodies as polynomials in the rational configuration
// variables s, where s = tan((q - q*)/2) for revolute joints and s = q - q* for prismatic joints.
package kinematics

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/symbolic"
)

// RationalForwardKinematics owns the s variables of a mechanism, one per movable joint, and for each revolute joint
// the cos and sin variables of its displacement from the nominal configuration. It is immutable after New.
type RationalForwardKinematics struct {
	mech *referenceframe.Mechanism

	s        []symbolic.Variable
	cosDelta []symbolic.Variable
	sinDelta []symbolic.Variable

	sSet    symbolic.Variables
	trigSet symbolic.Variables

	// position index of the joint a trig variable belongs to
	trigOwner map[symbolic.Variable]int
}

// New creates the rational variables for every movable joint of mech, in position order.
func New(mech *referenceframe.Mechanism) (*RationalForwardKinematics, error) {
	if mech == nil {
		return nil, errors.New("mechanism cannot be nil")
	}
	if err := mech.Validate(); err != nil {
		return nil, err
	}
	n := mech.NumPositions()
	rfk := &RationalForwardKinematics{
		mech:      mech,
		s:         make([]symbolic.Variable, n),
		cosDelta:  make([]symbolic.Variable, n),
		sinDelta:  make([]symbolic.Variable, n),
		trigOwner: map[symbolic.Variable]int{},
	}
	var trig []symbolic.Variable
	for _, j := range mech.MovableJoints() {
		i := j.PositionIndex
		rfk.s[i] = symbolic.NewVariable(fmt.Sprintf("s[%d]", i))
		if j.Type == referenceframe.RevoluteJoint {
			rfk.cosDelta[i] = symbolic.NewVariable(fmt.Sprintf("cos_delta[%d]", i))
			rfk.sinDelta[i] = symbolic.NewVariable(fmt.Sprintf("sin_delta[%d]", i))
			rfk.trigOwner[rfk.cosDelta[i]] = i
			rfk.trigOwner[rfk.sinDelta[i]] = i
			trig = append(trig, rfk.cosDelta[i], rfk.sinDelta[i])
		}
	}
	rfk.sSet = symbolic.NewVariables(rfk.s...)
	rfk.trigSet = symbolic.NewVariables(trig...)
	return rfk, nil
}

// Mechanism returns the mechanism the variables were created for.
func (rfk *RationalForwardKinematics) Mechanism() *referenceframe.Mechanism {
	return rfk.mech
}

// S returns the s variables in position order.
func (rfk *RationalForwardKinematics) S() []symbolic.Variable {
	out := make([]symbolic.Variable, len(rfk.s))
	copy(out, rfk.s)
	return out
}

// SSet returns the s variables as a set.
func (rfk *RationalForwardKinematics) SSet() symbolic.Variables {
	return rfk.sSet
}

// TrigVariables returns every cos and sin variable.
func (rfk *RationalForwardKinematics) TrigVariables() symbolic.Variables {
	return rfk.trigSet
}

// CosDelta returns the cos variable of the revolute joint at a position index. It is the dummy variable for a
// prismatic joint.
func (rfk *RationalForwardKinematics) CosDelta(i int) symbolic.Variable {
	return rfk.cosDelta[i]
}

// SinDelta returns the sin variable of the revolute joint at a position index.
func (rfk *RationalForwardKinematics) SinDelta(i int) symbolic.Variable {
	return rfk.sinDelta[i]
}

// SOnPath returns the s variables of the movable joints on the kinematic path between two bodies.
func (rfk *RationalForwardKinematics) SOnPath(bodyA, bodyB referenceframe.BodyIndex) (symbolic.Variables, error) {
	joints, err := rfk.mech.JointsOnPath(bodyA, bodyB)
	if err != nil {
		return symbolic.Variables{}, err
	}
	var vars []symbolic.Variable
	for _, j := range joints {
		if j.IsMovable() {
			vars = append(vars, rfk.s[j.PositionIndex])
		}
	}
	return symbolic.NewVariables(vars...), nil
}

func (rfk *RationalForwardKinematics) checkLength(name string, v []float64) error {
	if len(v) != len(rfk.s) {
		return errors.Wrap(referenceframe.NewIncorrectConfigurationLengthError(len(v), len(rfk.s)), name)
	}
	return nil
}

// ComputeSValue maps a configuration q to s around the nominal configuration qStar.
func (rfk *RationalForwardKinematics) ComputeSValue(q, qStar []float64) ([]float64, error) {
	if err := rfk.checkLength("q", q); err != nil {
		return nil, err
	}
	if err := rfk.checkLength("q*", qStar); err != nil {
		return nil, err
	}
	delta := make([]float64, len(q))
	floats.SubTo(delta, q, qStar)
	for _, j := range rfk.mech.MovableJoints() {
		if j.Type == referenceframe.RevoluteJoint {
			delta[j.PositionIndex] = math.Tan(delta[j.PositionIndex] / 2)
		}
	}
	return delta, nil
}

// ComputeQValue maps s back to a configuration around the nominal configuration qStar.
func (rfk *RationalForwardKinematics) ComputeQValue(s, qStar []float64) ([]float64, error) {
	if err := rfk.checkLength("s", s); err != nil {
		return nil, err
	}
	if err := rfk.checkLength("q*", qStar); err != nil {
		return nil, err
	}
	q := make([]float64, len(s))
	copy(q, s)
	for _, j := range rfk.mech.MovableJoints() {
		if j.Type == referenceframe.RevoluteJoint {
			q[j.PositionIndex] = 2 * math.Atan(s[j.PositionIndex])
		}
	}
	floats.Add(q, qStar)
	return q, nil
}

// Environment returns values for every s, cos and sin variable at configuration q around qStar, for evaluating
// polynomials produced by this package.
func (rfk *RationalForwardKinematics) Environment(q, qStar []float64) (map[symbolic.Variable]float64, error) {
	sVals, err := rfk.ComputeSValue(q, qStar)
	if err != nil {
		return nil, err
	}
	env := make(map[symbolic.Variable]float64, 3*len(q))
	for _, j := range rfk.mech.MovableJoints() {
		i := j.PositionIndex
		env[rfk.s[i]] = sVals[i]
		if j.Type == referenceframe.RevoluteJoint {
			delta := q[i] - qStar[i]
			env[rfk.cosDelta[i]] = math.Cos(delta)
			env[rfk.sinDelta[i]] = math.Sin(delta)
		}
	}
	return env, nil
}
