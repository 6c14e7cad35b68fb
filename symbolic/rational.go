package symbolic

import (
	"github.com/pkg/errors"
)

// RationalFunction is the ratio of two polynomials.
type RationalFunction struct {
	numerator   Polynomial
	denominator Polynomial
}

// NewRationalFunction returns numerator / denominator. The denominator may not be the zero polynomial.
func NewRationalFunction(numerator, denominator Polynomial) (RationalFunction, error) {
	if denominator.IsZero() {
		return RationalFunction{}, errors.New("rational function denominator is the zero polynomial")
	}
	return RationalFunction{numerator: numerator, denominator: denominator}, nil
}

// NewPolynomialRationalFunction returns p / 1.
func NewPolynomialRationalFunction(p Polynomial) RationalFunction {
	return RationalFunction{numerator: p, denominator: NewConstantPolynomial(1).WithIndeterminates(p.Indeterminates())}
}

// Numerator returns the numerator polynomial.
func (r RationalFunction) Numerator() Polynomial {
	return r.numerator
}

// Denominator returns the denominator polynomial.
func (r RationalFunction) Denominator() Polynomial {
	return r.denominator
}

// Evaluate computes the value of the rational function.
func (r RationalFunction) Evaluate(env map[Variable]float64) (float64, error) {
	num, err := r.numerator.Evaluate(env)
	if err != nil {
		return 0, err
	}
	den, err := r.denominator.Evaluate(env)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, errors.New("rational function denominator evaluates to zero")
	}
	return num / den, nil
}

// Equal reports whether numerators and denominators are structurally identical.
func (r RationalFunction) Equal(other RationalFunction) bool {
	return r.numerator.Equal(other.numerator) && r.denominator.Equal(other.denominator)
}

func (r RationalFunction) String() string {
	return "(" + r.numerator.String() + ") / (" + r.denominator.String() + ")"
}
