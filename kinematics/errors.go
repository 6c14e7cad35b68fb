package kinematics

import (
	"github.com/pkg/errors"

	"go.viam.com/cspace/symbolic"
)

// NewNotMultilinearError returns an error indicating that a monomial has degree above one in the cos/sin pair of a
// joint.
func NewNotMultilinearError(m symbolic.Monomial, positionIndex int) error {
	return errors.Errorf("monomial %s is not multilinear in the cos/sin of joint position %d", m, positionIndex)
}
