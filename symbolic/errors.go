package symbolic

import "github.com/pkg/errors"

// NewMissingVariableValueError is returned when an evaluation has no value for a variable.
func NewMissingVariableValueError(v Variable) error {
	return errors.Errorf("no value given for variable %q (id %d)", v.String(), v.ID())
}
