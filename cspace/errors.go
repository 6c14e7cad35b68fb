package cspace

import (
	"github.com/pkg/errors"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
	"go.viam.com/cspace/spatialmath"
	"go.viam.com/cspace/symbolic"
)

var (
	// ErrUnimplemented is returned when a requested computation is not supported for the given geometries.
	ErrUnimplemented = errors.New("unimplemented")
	// ErrInvalidArgument is returned when a call's arguments are inconsistent with the free polytope.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidInput is returned when the mechanism or geometry source cannot be used to build a free polytope.
	ErrInvalidInput = errors.New("invalid input")
)

// NewUnknownBodyError is returned when a geometry is attached to a body the mechanism does not have.
func NewUnknownBodyError(id scene.GeometryID, body referenceframe.BodyIndex) error {
	return errors.Wrapf(ErrInvalidInput, "geometry %d is attached to body %d which is not in the mechanism", id, body)
}

// NewUnsupportedShapeError is returned when a geometry's shape has no collision geometry kind.
func NewUnsupportedShapeError(id scene.GeometryID, kind spatialmath.GeometryType) error {
	return errors.Wrapf(ErrInvalidInput, "geometry %d has unsupported shape type %q", id, kind)
}

// NewCylinderUnimplementedError is returned when constraints are requested for a plane touching a cylinder.
func NewCylinderUnimplementedError(planeIndex int) error {
	return errors.Wrapf(ErrUnimplemented, "separating plane %d: cylinder constraints are not implemented", planeIndex)
}

// NewUnknownFilteredGeometryError is returned when a filtered pair names a geometry that no plane separates.
func NewUnknownFilteredGeometryError(id scene.GeometryID) error {
	return errors.Wrapf(ErrInvalidArgument, "filtered geometry %d is not separated by any plane", id)
}

// NewMarginCollisionError is returned when the separating margin is already used by the free polytope.
func NewMarginCollisionError(margin symbolic.Variable, usedAs string) error {
	return errors.Wrapf(ErrInvalidArgument, "separating margin %s is already used as a %s", margin, usedAs)
}
