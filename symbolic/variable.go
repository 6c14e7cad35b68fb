// Package symbolic implements the polynomial algebra used to state certification constraints: variables,
// monomials, polynomials over a declared set of indeterminates, and rational functions.
//
// A Polynomial keeps every term over all of its variables. The variables that belong to its indeterminate
// set are the polynomial's "x"; every other variable is treated as a decision variable appearing in the
// coefficients. Degrees are always measured in the indeterminates only.
package symbolic

import (
	"fmt"

	"go.uber.org/atomic"
)

var nextVariableID = atomic.NewUint64(0)

// Variable is a symbolic variable. Two variables are equal only if they were returned by the same call to
// NewVariable; names are for display and need not be unique.
type Variable struct {
	id   uint64
	name string
}

// NewVariable creates a fresh variable with a process-unique id.
func NewVariable(name string) Variable {
	return Variable{id: nextVariableID.Inc(), name: name}
}

// NewVariableVector creates n fresh variables named prefix(0), prefix(1), ...
func NewVariableVector(prefix string, n int) []Variable {
	vars := make([]Variable, n)
	for i := range vars {
		vars[i] = NewVariable(fmt.Sprintf("%s(%d)", prefix, i))
	}
	return vars
}

// ID returns the unique id of the variable. The zero Variable has id 0.
func (v Variable) ID() uint64 {
	return v.id
}

// Name returns the display name of the variable.
func (v Variable) Name() string {
	return v.name
}

// IsDummy reports whether v is the zero Variable, which never appears in an expression.
func (v Variable) IsDummy() bool {
	return v.id == 0
}

// Equal reports whether two variables are the same variable.
func (v Variable) Equal(other Variable) bool {
	return v.id == other.id
}

// Less orders variables by creation.
func (v Variable) Less(other Variable) bool {
	return v.id < other.id
}

func (v Variable) String() string {
	if v.name == "" {
		return fmt.Sprintf("v%d", v.id)
	}
	return v.name
}
