package cspace

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/symbolic"
)

// SeparatingPlane is the plane {x : A·x + B = 0}, expressed in the frame of ExpressedBody, whose positive side
// holds PositiveSide and whose negative side holds NegativeSide. The positive side geometry always has the
// smaller id. A and B are polynomials in the s variables of the joints between the two geometries' bodies, with
// coefficients given by DecisionVariables.
type SeparatingPlane struct {
	PositiveSide      *CollisionGeometry
	NegativeSide      *CollisionGeometry
	ExpressedBody     referenceframe.BodyIndex
	A                 [3]symbolic.Polynomial
	B                 symbolic.Polynomial
	Order             PlaneOrder
	DecisionVariables []symbolic.Variable
}

// newSeparatingPlane creates fresh decision variables for a plane of the given order over indeterminates s.
func newSeparatingPlane(
	index int,
	positive, negative *CollisionGeometry,
	expressed referenceframe.BodyIndex,
	order PlaneOrder,
	s symbolic.Variables,
) *SeparatingPlane {
	plane := &SeparatingPlane{
		PositiveSide:  positive,
		NegativeSide:  negative,
		ExpressedBody: expressed,
		Order:         order,
	}
	coefficient := func(name string) symbolic.Polynomial {
		vars := symbolic.NewVariableVector(fmt.Sprintf("plane%d_%s", index, name), 1+order.Degree()*s.Size())
		plane.DecisionVariables = append(plane.DecisionVariables, vars...)
		p := symbolic.NewVariablePolynomial(vars[0], s)
		if order.Degree() == 0 {
			return p
		}
		for i, si := range s.Elements() {
			p = p.Add(symbolic.NewMonomialPolynomial(
				symbolic.NewMonomial(map[symbolic.Variable]int{vars[i+1]: 1, si: 1}), 1, s))
		}
		return p
	}
	for i := range plane.A {
		plane.A[i] = coefficient(fmt.Sprintf("a%d", i))
	}
	plane.B = coefficient("b")
	return plane
}

// Geometries returns the positive and negative side geometries.
func (sp *SeparatingPlane) Geometries() (*CollisionGeometry, *CollisionGeometry) {
	return sp.PositiveSide, sp.NegativeSide
}

// Pair returns the unordered pair of geometry ids the plane separates.
func (sp *SeparatingPlane) Pair() GeometryPair {
	return NewSortedPair(sp.PositiveSide.ID(), sp.NegativeSide.ID())
}

// Indeterminates returns the s variables A and B are polynomials in.
func (sp *SeparatingPlane) Indeterminates() symbolic.Variables {
	return sp.B.Indeterminates()
}

// Evaluate returns the numeric normal and offset of the plane for values of its decision variables and of the
// s variables.
func (sp *SeparatingPlane) Evaluate(decision, s map[symbolic.Variable]float64) (r3.Vector, float64, error) {
	env := lo.Assign(decision, s)
	var a [3]float64
	for i, p := range sp.A {
		v, err := p.Evaluate(env)
		if err != nil {
			return r3.Vector{}, 0, err
		}
		a[i] = v
	}
	b, err := sp.B.Evaluate(env)
	if err != nil {
		return r3.Vector{}, 0, err
	}
	return r3.Vector{X: a[0], Y: a[1], Z: a[2]}, b, nil
}
