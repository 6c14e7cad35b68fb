package symbolic

import (
	"slices"
	"strconv"
	"strings"
)

type power struct {
	v   Variable
	exp int
}

// Monomial is a product of variables raised to positive integer powers. The zero Monomial is the constant 1.
type Monomial struct {
	powers []power
}

// NewMonomial builds a monomial from variable exponents. Non-positive exponents are ignored.
func NewMonomial(exponents map[Variable]int) Monomial {
	powers := make([]power, 0, len(exponents))
	for v, exp := range exponents {
		if exp > 0 && !v.IsDummy() {
			powers = append(powers, power{v, exp})
		}
	}
	slices.SortFunc(powers, func(a, b power) int { return compareVariables(a.v, b.v) })
	return Monomial{powers: powers}
}

// MonomialOf returns v^exp, or the constant monomial if exp <= 0.
func MonomialOf(v Variable, exp int) Monomial {
	if exp <= 0 || v.IsDummy() {
		return Monomial{}
	}
	return Monomial{powers: []power{{v, exp}}}
}

// IsOne reports whether m is the constant monomial.
func (m Monomial) IsOne() bool {
	return len(m.powers) == 0
}

// TotalDegree returns the sum of all exponents.
func (m Monomial) TotalDegree() int {
	total := 0
	for _, p := range m.powers {
		total += p.exp
	}
	return total
}

// DegreeIn returns the sum of exponents of the variables that belong to vars.
func (m Monomial) DegreeIn(vars Variables) int {
	total := 0
	for _, p := range m.powers {
		if vars.Contains(p.v) {
			total += p.exp
		}
	}
	return total
}

// Degree returns the exponent of v in m.
func (m Monomial) Degree(v Variable) int {
	for _, p := range m.powers {
		if p.v.Equal(v) {
			return p.exp
		}
	}
	return 0
}

// Variables returns the variables with a positive exponent.
func (m Monomial) Variables() Variables {
	vars := make([]Variable, len(m.powers))
	for i, p := range m.powers {
		vars[i] = p.v
	}
	return Variables{vars: vars}
}

// Exponents returns the monomial as a variable to exponent map.
func (m Monomial) Exponents() map[Variable]int {
	out := make(map[Variable]int, len(m.powers))
	for _, p := range m.powers {
		out[p.v] = p.exp
	}
	return out
}

// Mul returns the product of two monomials.
func (m Monomial) Mul(other Monomial) Monomial {
	if m.IsOne() {
		return other
	}
	if other.IsOne() {
		return m
	}
	out := make([]power, 0, len(m.powers)+len(other.powers))
	i, j := 0, 0
	for i < len(m.powers) && j < len(other.powers) {
		switch c := compareVariables(m.powers[i].v, other.powers[j].v); {
		case c < 0:
			out = append(out, m.powers[i])
			i++
		case c > 0:
			out = append(out, other.powers[j])
			j++
		default:
			out = append(out, power{m.powers[i].v, m.powers[i].exp + other.powers[j].exp})
			i++
			j++
		}
	}
	out = append(out, m.powers[i:]...)
	out = append(out, other.powers[j:]...)
	return Monomial{powers: out}
}

// Split separates m into the factor over vars and the remaining factor, so that m = in * out.
func (m Monomial) Split(vars Variables) (in, out Monomial) {
	for _, p := range m.powers {
		if vars.Contains(p.v) {
			in.powers = append(in.powers, p)
		} else {
			out.powers = append(out.powers, p)
		}
	}
	return in, out
}

// Without returns m with v removed.
func (m Monomial) Without(v Variable) Monomial {
	out := make([]power, 0, len(m.powers))
	for _, p := range m.powers {
		if !p.v.Equal(v) {
			out = append(out, p)
		}
	}
	return Monomial{powers: out}
}

// Evaluate computes the monomial's value. Every variable of m must have a value in env.
func (m Monomial) Evaluate(env map[Variable]float64) (float64, error) {
	val := 1.
	for _, p := range m.powers {
		x, ok := env[p.v]
		if !ok {
			return 0, NewMissingVariableValueError(p.v)
		}
		for k := 0; k < p.exp; k++ {
			val *= x
		}
	}
	return val, nil
}

// Equal reports whether two monomials are identical.
func (m Monomial) Equal(other Monomial) bool {
	return slices.Equal(m.powers, other.powers)
}

// key is a canonical encoding used to index terms.
func (m Monomial) key() string {
	var sb strings.Builder
	for i, p := range m.powers {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(p.v.id, 10))
		sb.WriteByte('^')
		sb.WriteString(strconv.Itoa(p.exp))
	}
	return sb.String()
}

func (m Monomial) String() string {
	if m.IsOne() {
		return "1"
	}
	parts := make([]string, len(m.powers))
	for i, p := range m.powers {
		if p.exp == 1 {
			parts[i] = p.v.String()
		} else {
			parts[i] = p.v.String() + "^" + strconv.Itoa(p.exp)
		}
	}
	return strings.Join(parts, "*")
}
