package kinematics

import (
	"github.com/pkg/errors"

	"go.viam.com/cspace/symbolic"
)

type factorTerm struct {
	monomial symbolic.Monomial
	coeff    float64
}

// halfAngleFactors returns 1-s^2, 2s and 1+s^2, the numerators of cos, sin and 1 under the half angle
// substitution with denominator 1+s^2.
func halfAngleFactors(s symbolic.Variable) (cosFactor, sinFactor, oneFactor []factorTerm) {
	one := symbolic.Monomial{}
	sSquared := symbolic.MonomialOf(s, 2)
	cosFactor = []factorTerm{{one, 1}, {sSquared, -1}}
	sinFactor = []factorTerm{{symbolic.MonomialOf(s, 1), 2}}
	oneFactor = []factorTerm{{one, 1}, {sSquared, 1}}
	return cosFactor, sinFactor, oneFactor
}

// ConvertMultilinearPolynomialToRational substitutes cos = (1-s^2)/(1+s^2) and sin = 2s/(1+s^2) for the trig
// variables of every revolute joint appearing in p. The denominator is the product of 1+s^2 over those joints, and
// each monomial of p is multiplied through by it. Variables that are not trig variables are kept as they are. A
// monomial with degree above one in a joint's cos/sin pair is rejected.
func (rfk *RationalForwardKinematics) ConvertMultilinearPolynomialToRational(
	p symbolic.Polynomial,
) (symbolic.RationalFunction, error) {
	present := p.Variables().Intersect(rfk.trigSet)

	// revolute joints whose trig variables appear, in position order
	var joints []int
	seen := map[int]bool{}
	for _, v := range present.Elements() {
		seen[rfk.trigOwner[v]] = true
	}
	for i := range rfk.s {
		if seen[i] {
			joints = append(joints, i)
		}
	}

	sVars := make([]symbolic.Variable, 0, len(joints))
	for _, i := range joints {
		sVars = append(sVars, rfk.s[i])
	}
	indeterminates := p.Indeterminates().Minus(rfk.trigSet).Union(symbolic.NewVariables(sVars...))

	var out []symbolic.Term
	for _, t := range p.Terms() {
		expanded := []factorTerm{{t.Monomial, t.Coefficient}}
		for _, i := range joints {
			cosVar, sinVar := rfk.cosDelta[i], rfk.sinDelta[i]
			cosDeg, sinDeg := t.Monomial.Degree(cosVar), t.Monomial.Degree(sinVar)
			if cosDeg+sinDeg > 1 {
				return symbolic.RationalFunction{}, NewNotMultilinearError(t.Monomial, i)
			}
			cosFactor, sinFactor, oneFactor := halfAngleFactors(rfk.s[i])
			factor := oneFactor
			switch {
			case cosDeg == 1:
				factor = cosFactor
			case sinDeg == 1:
				factor = sinFactor
			}
			next := make([]factorTerm, 0, len(expanded)*len(factor))
			for _, e := range expanded {
				rest := e.monomial.Without(cosVar).Without(sinVar)
				for _, f := range factor {
					next = append(next, factorTerm{rest.Mul(f.monomial), e.coeff * f.coeff})
				}
			}
			expanded = next
		}
		for _, e := range expanded {
			out = append(out, symbolic.Term{Monomial: e.monomial, Coefficient: e.coeff})
		}
	}
	numerator := symbolic.NewPolynomialFromTerms(out, indeterminates)

	denominator := symbolic.NewConstantPolynomial(1).WithIndeterminates(indeterminates)
	for _, i := range joints {
		_, _, oneFactor := halfAngleFactors(rfk.s[i])
		terms := make([]symbolic.Term, 0, len(oneFactor))
		for _, f := range oneFactor {
			terms = append(terms, symbolic.Term{Monomial: f.monomial, Coefficient: f.coeff})
		}
		denominator = denominator.Mul(symbolic.NewPolynomialFromTerms(terms, indeterminates))
	}

	rational, err := symbolic.NewRationalFunction(numerator, denominator)
	if err != nil {
		return symbolic.RationalFunction{}, errors.Wrap(err, "converting multilinear polynomial")
	}
	return rational, nil
}
