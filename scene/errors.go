package scene

import "github.com/pkg/errors"

// NewGeometryNotFoundError returns an error indicating that no geometry has the given id.
func NewGeometryNotFoundError(id GeometryID) error {
	return errors.Errorf("geometry %d not found in scene", id)
}

// NewDuplicateGeometryNameError returns an error indicating that a geometry name is already in use.
func NewDuplicateGeometryNameError(name string) error {
	return errors.Errorf("cannot register geometry, name %q already in use", name)
}
