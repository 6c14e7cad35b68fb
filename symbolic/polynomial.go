package symbolic

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type term struct {
	key      string
	monomial Monomial
	coeff    float64
}

// Term is a monomial with its coefficient.
type Term struct {
	Monomial    Monomial
	Coefficient float64
}

// Polynomial is a real polynomial over a declared set of indeterminates. Variables that appear in the terms but
// are not indeterminates are decision variables. A Polynomial is a value: every operation returns a new
// Polynomial and never modifies its operands, so polynomials may be shared freely between goroutines.
//
// The zero Polynomial is the zero polynomial with no indeterminates.
type Polynomial struct {
	indeterminates Variables
	// sorted by key, no zero coefficients
	terms []term
}

// NewPolynomial returns the zero polynomial over the given indeterminates.
func NewPolynomial(indeterminates Variables) Polynomial {
	return Polynomial{indeterminates: indeterminates}
}

// NewConstantPolynomial returns the constant polynomial c with no indeterminates.
func NewConstantPolynomial(c float64) Polynomial {
	return NewMonomialPolynomial(Monomial{}, c, Variables{})
}

// NewMonomialPolynomial returns coeff * m over the given indeterminates.
func NewMonomialPolynomial(m Monomial, coeff float64, indeterminates Variables) Polynomial {
	p := Polynomial{indeterminates: indeterminates}
	if coeff != 0 {
		p.terms = []term{{key: m.key(), monomial: m, coeff: coeff}}
	}
	return p
}

// NewVariablePolynomial returns the polynomial v over the given indeterminates. Whether v is itself an
// indeterminate is decided by the indeterminate set.
func NewVariablePolynomial(v Variable, indeterminates Variables) Polynomial {
	return NewMonomialPolynomial(MonomialOf(v, 1), 1, indeterminates)
}

// NewPolynomialFromTerms sums the given terms over the given indeterminates.
func NewPolynomialFromTerms(terms []Term, indeterminates Variables) Polynomial {
	acc := newAccumulator()
	for _, t := range terms {
		acc.add(t.Monomial, t.Coefficient)
	}
	return acc.polynomial(indeterminates)
}

// Indeterminates returns the declared indeterminates.
func (p Polynomial) Indeterminates() Variables {
	return p.indeterminates
}

// Variables returns every variable appearing in a term, indeterminate or not.
func (p Polynomial) Variables() Variables {
	var vars Variables
	for _, t := range p.terms {
		vars = vars.Union(t.monomial.Variables())
	}
	return vars
}

// DecisionVariables returns the variables appearing in a term that are not indeterminates.
func (p Polynomial) DecisionVariables() Variables {
	return p.Variables().Minus(p.indeterminates)
}

// TotalDegree returns the highest degree, measured in the indeterminates, of any term. The zero polynomial has
// degree 0.
func (p Polynomial) TotalDegree() int {
	return lo.Max(lo.Map(p.terms, func(t term, _ int) int { return t.monomial.DegreeIn(p.indeterminates) }))
}

// Degree returns the highest exponent of v in any term.
func (p Polynomial) Degree(v Variable) int {
	return lo.Max(lo.Map(p.terms, func(t term, _ int) int { return t.monomial.Degree(v) }))
}

// IsZero reports whether p has no terms.
func (p Polynomial) IsZero() bool {
	return len(p.terms) == 0
}

// NumTerms returns the number of terms with a non-zero coefficient.
func (p Polynomial) NumTerms() int {
	return len(p.terms)
}

// Terms returns the terms of p in canonical order.
func (p Polynomial) Terms() []Term {
	out := make([]Term, len(p.terms))
	for i, t := range p.terms {
		out[i] = Term{Monomial: t.monomial, Coefficient: t.coeff}
	}
	return out
}

// WithIndeterminates returns p with a different declared indeterminate set.
func (p Polynomial) WithIndeterminates(indeterminates Variables) Polynomial {
	return Polynomial{indeterminates: indeterminates, terms: p.terms}
}

// Add returns p + other. The result's indeterminates are the union of both.
func (p Polynomial) Add(other Polynomial) Polynomial {
	return p.combine(other, 1)
}

// Sub returns p - other. The result's indeterminates are the union of both.
func (p Polynomial) Sub(other Polynomial) Polynomial {
	return p.combine(other, -1)
}

func (p Polynomial) combine(other Polynomial, sign float64) Polynomial {
	acc := newAccumulator()
	for _, t := range p.terms {
		acc.add(t.monomial, t.coeff)
	}
	for _, t := range other.terms {
		acc.add(t.monomial, sign*t.coeff)
	}
	return acc.polynomial(p.indeterminates.Union(other.indeterminates))
}

// AddConstant returns p + c.
func (p Polynomial) AddConstant(c float64) Polynomial {
	return p.Add(NewConstantPolynomial(c))
}

// Scale returns c * p.
func (p Polynomial) Scale(c float64) Polynomial {
	if c == 0 {
		return NewPolynomial(p.indeterminates)
	}
	out := Polynomial{indeterminates: p.indeterminates, terms: make([]term, len(p.terms))}
	for i, t := range p.terms {
		out.terms[i] = term{key: t.key, monomial: t.monomial, coeff: c * t.coeff}
	}
	return out
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	return p.Scale(-1)
}

// Mul returns p * other. The result's indeterminates are the union of both.
func (p Polynomial) Mul(other Polynomial) Polynomial {
	acc := newAccumulator()
	for _, t1 := range p.terms {
		for _, t2 := range other.terms {
			acc.add(t1.monomial.Mul(t2.monomial), t1.coeff*t2.coeff)
		}
	}
	return acc.polynomial(p.indeterminates.Union(other.indeterminates))
}

// Coefficient returns the coefficient of the indeterminate monomial m, which is a polynomial in the decision
// variables only (its indeterminate set is empty).
func (p Polynomial) Coefficient(m Monomial) Polynomial {
	acc := newAccumulator()
	want := m.key()
	for _, t := range p.terms {
		in, out := t.monomial.Split(p.indeterminates)
		if in.key() == want {
			acc.add(out, t.coeff)
		}
	}
	return acc.polynomial(Variables{})
}

// IndeterminateMonomials returns the distinct monomials of p restricted to its indeterminates.
func (p Polynomial) IndeterminateMonomials() []Monomial {
	seen := map[string]struct{}{}
	out := []Monomial{}
	for _, t := range p.terms {
		in, _ := t.monomial.Split(p.indeterminates)
		if _, ok := seen[in.key()]; ok {
			continue
		}
		seen[in.key()] = struct{}{}
		out = append(out, in)
	}
	slices.SortFunc(out, compareMonomials)
	return out
}

// Evaluate computes p given a value for every variable that appears in it.
func (p Polynomial) Evaluate(env map[Variable]float64) (float64, error) {
	total := 0.
	for _, t := range p.terms {
		val, err := t.monomial.Evaluate(env)
		if err != nil {
			return 0, err
		}
		total += t.coeff * val
	}
	return total, nil
}

// EvaluatePartial substitutes the given values and returns the remaining polynomial. Substituted
// variables are dropped from the indeterminate set.
func (p Polynomial) EvaluatePartial(env map[Variable]float64) Polynomial {
	acc := newAccumulator()
	substituted := make([]Variable, 0, len(env))
	for v := range env {
		substituted = append(substituted, v)
	}
	for _, t := range p.terms {
		coeff := t.coeff
		rest := map[Variable]int{}
		for _, pw := range t.monomial.powers {
			if x, ok := env[pw.v]; ok {
				coeff *= math.Pow(x, float64(pw.exp))
			} else {
				rest[pw.v] = pw.exp
			}
		}
		acc.add(NewMonomial(rest), coeff)
	}
	return acc.polynomial(p.indeterminates.Minus(NewVariables(substituted...)))
}

// Equal reports whether p and other have the same indeterminates and exactly the same terms.
func (p Polynomial) Equal(other Polynomial) bool {
	if !p.indeterminates.Equal(other.indeterminates) || len(p.terms) != len(other.terms) {
		return false
	}
	for i, t := range p.terms {
		o := other.terms[i]
		if t.key != o.key || t.coeff != o.coeff {
			return false
		}
	}
	return true
}

// AlmostEqual reports whether p - other has every coefficient within tol of zero, ignoring the declared
// indeterminates.
func (p Polynomial) AlmostEqual(other Polynomial, tol float64) bool {
	for _, t := range p.Sub(other).terms {
		if math.Abs(t.coeff) > tol {
			return false
		}
	}
	return true
}

func (p Polynomial) String() string {
	if len(p.terms) == 0 {
		return "0"
	}
	ordered := slices.Clone(p.terms)
	slices.SortStableFunc(ordered, func(a, b term) int { return compareMonomials(a.monomial, b.monomial) })
	var sb strings.Builder
	for i, t := range ordered {
		coeff := t.coeff
		if i > 0 {
			if coeff < 0 {
				sb.WriteString(" - ")
				coeff = -coeff
			} else {
				sb.WriteString(" + ")
			}
		}
		switch {
		case t.monomial.IsOne():
			sb.WriteString(strconv.FormatFloat(coeff, 'g', -1, 64))
		case coeff == 1:
			sb.WriteString(t.monomial.String())
		case coeff == -1:
			sb.WriteString("-" + t.monomial.String())
		default:
			sb.WriteString(strconv.FormatFloat(coeff, 'g', -1, 64) + "*" + t.monomial.String())
		}
	}
	return sb.String()
}

// compareMonomials orders by total degree, then by canonical key.
func compareMonomials(a, b Monomial) int {
	if c := cmp.Compare(a.TotalDegree(), b.TotalDegree()); c != 0 {
		return c
	}
	return cmp.Compare(a.key(), b.key())
}

// accumulator sums coefficients per monomial in insertion order, so that results do not depend on map
// iteration order.
type accumulator struct {
	index map[string]int
	terms []term
}

func newAccumulator() *accumulator {
	return &accumulator{index: map[string]int{}}
}

func (acc *accumulator) add(m Monomial, coeff float64) {
	if coeff == 0 {
		return
	}
	k := m.key()
	if i, ok := acc.index[k]; ok {
		acc.terms[i].coeff += coeff
		return
	}
	acc.index[k] = len(acc.terms)
	acc.terms = append(acc.terms, term{key: k, monomial: m, coeff: coeff})
}

func (acc *accumulator) polynomial(indeterminates Variables) Polynomial {
	terms := lo.Filter(acc.terms, func(t term, _ int) bool { return t.coeff != 0 })
	slices.SortFunc(terms, func(a, b term) int { return cmp.Compare(a.key, b.key) })
	return Polynomial{indeterminates: indeterminates, terms: terms}
}
