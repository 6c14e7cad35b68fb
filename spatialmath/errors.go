package spatialmath

import (
	"fmt"

	"github.com/pkg/errors"
)

func newBadGeometryDimensionsError(g Geometry) error {
	return fmt.Errorf("invalid dimension(s) for Geometry type %T", g)
}

func newBadCapsuleLengthError(l, r float64) error {
	return fmt.Errorf("capsule length %.2f must be at least twice its radius %.2f", l, r)
}

func newGeometryTypeUnsupportedError(geomType string) error {
	return errors.Errorf("unsupported Geometry type: %q", geomType)
}

func newConvexPolytopeTooFewVerticesError(n int) error {
	return errors.Errorf("a convex polytope needs at least one vertex, got %d", n)
}
