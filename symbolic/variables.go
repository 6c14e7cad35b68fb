package symbolic

import (
	"cmp"
	"slices"
	"strings"
)

// Variables is an immutable set of variables kept sorted by id.
type Variables struct {
	vars []Variable
}

func compareVariables(a, b Variable) int {
	return cmp.Compare(a.id, b.id)
}

// NewVariables builds a set from the given variables, dropping duplicates and dummy variables.
func NewVariables(vars ...Variable) Variables {
	out := make([]Variable, 0, len(vars))
	for _, v := range vars {
		if !v.IsDummy() {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, compareVariables)
	return Variables{vars: slices.CompactFunc(out, Variable.Equal)}
}

// Size returns the number of variables in the set.
func (vs Variables) Size() int {
	return len(vs.vars)
}

// Empty reports whether the set has no variables.
func (vs Variables) Empty() bool {
	return len(vs.vars) == 0
}

// Contains reports whether v is in the set.
func (vs Variables) Contains(v Variable) bool {
	_, found := slices.BinarySearchFunc(vs.vars, v, compareVariables)
	return found
}

// Elements returns the variables in id order. The returned slice is a copy.
func (vs Variables) Elements() []Variable {
	return slices.Clone(vs.vars)
}

// Insert returns a new set with v added.
func (vs Variables) Insert(v Variable) Variables {
	if v.IsDummy() || vs.Contains(v) {
		return vs
	}
	return NewVariables(append(vs.Elements(), v)...)
}

// Union returns the variables in either set.
func (vs Variables) Union(other Variables) Variables {
	if other.Empty() {
		return vs
	}
	if vs.Empty() {
		return other
	}
	out := make([]Variable, 0, len(vs.vars)+len(other.vars))
	i, j := 0, 0
	for i < len(vs.vars) && j < len(other.vars) {
		switch c := compareVariables(vs.vars[i], other.vars[j]); {
		case c < 0:
			out = append(out, vs.vars[i])
			i++
		case c > 0:
			out = append(out, other.vars[j])
			j++
		default:
			out = append(out, vs.vars[i])
			i++
			j++
		}
	}
	out = append(out, vs.vars[i:]...)
	out = append(out, other.vars[j:]...)
	return Variables{vars: out}
}

// Intersect returns the variables present in both sets.
func (vs Variables) Intersect(other Variables) Variables {
	out := make([]Variable, 0)
	for _, v := range vs.vars {
		if other.Contains(v) {
			out = append(out, v)
		}
	}
	return Variables{vars: out}
}

// Minus returns the variables of vs that are not in other.
func (vs Variables) Minus(other Variables) Variables {
	out := make([]Variable, 0, len(vs.vars))
	for _, v := range vs.vars {
		if !other.Contains(v) {
			out = append(out, v)
		}
	}
	return Variables{vars: out}
}

// IsSubsetOf reports whether every variable of vs is in other.
func (vs Variables) IsSubsetOf(other Variables) bool {
	for _, v := range vs.vars {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold exactly the same variables.
func (vs Variables) Equal(other Variables) bool {
	return slices.EqualFunc(vs.vars, other.vars, Variable.Equal)
}

func (vs Variables) String() string {
	names := make([]string, len(vs.vars))
	for i, v := range vs.vars {
		names[i] = v.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
