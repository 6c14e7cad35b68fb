package referenceframe

import (
	"github.com/pkg/errors"
)

// NewBodyNotFoundError returns an error indicating that a body index is not part of the mechanism.
func NewBodyNotFoundError(idx BodyIndex) error {
	return errors.Errorf("body %d not found in mechanism", idx)
}

// NewDuplicateBodyNameError returns an error indicating that a body name is already in use.
func NewDuplicateBodyNameError(name string) error {
	return errors.Errorf("cannot add body, body name %q already in use", name)
}

// NewDuplicateJointNameError returns an error indicating that a joint name is already in use.
func NewDuplicateJointNameError(name string) error {
	return errors.Errorf("cannot add joint, joint name %q already in use", name)
}

// NewUnsupportedJointTypeError returns an error indicating that a given joint type is not supported.
func NewUnsupportedJointTypeError(jointType string) error {
	return errors.Errorf("unsupported joint type detected: %q", jointType)
}

// NewZeroAxisError returns an error indicating that a movable joint was given no axis.
func NewZeroAxisError(joint string) error {
	return errors.Errorf("movable joint %q needs a non-zero axis", joint)
}

// NewIncorrectConfigurationLengthError returns an error indicating a configuration vector of the wrong length.
func NewIncorrectConfigurationLengthError(actual, expected int) error {
	return errors.Errorf("number of positions given (%d) does not match number of movable joints (%d)", actual, expected)
}

// NewNoCommonAncestorError returns an error indicating that two bodies are not in the same tree.
func NewNoCommonAncestorError(a, b BodyIndex) error {
	return errors.Errorf("bodies %d and %d share no common ancestor", a, b)
}

// NewBodiesNotAdjacentError returns an error indicating that neither body is the parent of the other.
func NewBodiesNotAdjacentError(a, b BodyIndex) error {
	return errors.Errorf("bodies %d and %d are not connected by a joint", a, b)
}
