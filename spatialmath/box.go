package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"

	"go.viam.com/cspace/utils"
)

// box is a collision geometry that represents a 3D rectangular prism, it has a pose and half size that fully define it.
type box struct {
	center   Pose
	halfSize [3]float64
	label    string
}

// boxVertices is the sign pattern of the 8 corners of a box relative to its center, in a fixed order.
var boxVertices = [8][3]float64{
	{1, 1, 1},
	{1, 1, -1},
	{1, -1, 1},
	{1, -1, -1},
	{-1, 1, 1},
	{-1, 1, -1},
	{-1, -1, 1},
	{-1, -1, -1},
}

// NewBox instantiates a new box Geometry. dims are the full side lengths along x, y and z.
func NewBox(pose Pose, dims r3.Vector, label string) (Geometry, error) {
	// Negative dimensions not allowed. Zero dimensions are allowed for degenerate boxes.
	if dims.X < 0 || dims.Y < 0 || dims.Z < 0 {
		return nil, newBadGeometryDimensionsError(&box{})
	}
	halfSize := dims.Mul(0.5)
	return &box{
		center:   pose,
		halfSize: [3]float64{halfSize.X, halfSize.Y, halfSize.Z},
		label:    label,
	}, nil
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	return fmt.Sprintf("Type: Box | Position: %s | Dims: X:%.3f, Y:%.3f, Z:%.3f",
		formatPoint(b.center.Point()), 2*b.halfSize[0], 2*b.halfSize[1], 2*b.halfSize[2])
}

// Label returns the label of the box.
func (b *box) Label() string {
	return b.label
}

// Pose returns the pose of the box.
func (b *box) Pose() Pose {
	return b.center
}

func (b *box) Type() GeometryType {
	return BoxType
}

// Dims returns the full side lengths of the box.
func (b *box) Dims() r3.Vector {
	return r3.Vector{X: 2 * b.halfSize[0], Y: 2 * b.halfSize[1], Z: 2 * b.halfSize[2]}
}

// AlmostEqual compares the box with another geometry and checks if they are equivalent.
func (b *box) AlmostEqual(g Geometry) bool {
	other, ok := g.(*box)
	if !ok {
		return false
	}
	for i := 0; i < 3; i++ {
		if !utils.Float64AlmostEqual(b.halfSize[i], other.halfSize[i], 1e-8) {
			return false
		}
	}
	return PoseAlmostEqual(b.center, other.center)
}

// Transform premultiplies the box pose with a transform, allowing the box to be moved in space.
func (b *box) Transform(toPremultiply Pose) Geometry {
	return &box{
		center:   Compose(toPremultiply, b.center),
		halfSize: b.halfSize,
		label:    b.label,
	}
}

// Vertices returns the 8 corners of the box.
func (b *box) Vertices() []r3.Vector {
	local := make([]r3.Vector, 0, len(boxVertices))
	for _, signs := range boxVertices {
		local = append(local, r3.Vector{
			X: signs[0] * b.halfSize[0],
			Y: signs[1] * b.halfSize[1],
			Z: signs[2] * b.halfSize[2],
		})
	}
	return transformAll(b.center, local)
}
