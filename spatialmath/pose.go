package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/cspace/utils"
)

// Pose represents a 6dof pose, position and orientation, with respect to the origin.
// The Point() method returns the position in (x,y,z) and Orientation() returns the rotation.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type pose struct {
	point r3.Vector
	quat  quat.Number
}

// NewZeroPose returns a pose at (0,0,0) with the same orientation as whatever frame it is placed in.
func NewZeroPose() Pose {
	return &pose{quat: quat.Number{Real: 1}}
}

// NewPose takes in a position and orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	return &pose{point: p, quat: Normalize(o.Quaternion())}
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector with the identity orientation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return &pose{point: p, quat: quat.Number{Real: 1}}
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

func (p *pose) Point() r3.Vector {
	return p.point
}

func (p *pose) Orientation() Orientation {
	q := Quaternion(p.quat)
	return &q
}

func (p *pose) String() string {
	aa := QuatToR4AA(p.quat)
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f Theta:%.3f RX:%.3f RY:%.3f RZ:%.3f}",
		p.point.X, p.point.Y, p.point.Z, aa.Theta, aa.RX, aa.RY, aa.RZ)
}

// Compose treats Poses as functions A(x) and B(x) and produces a new function C(x) = A(B(x)).
func Compose(a, b Pose) Pose {
	aq := Normalize(a.Orientation().Quaternion())
	return &pose{
		point: a.Point().Add(rotate(aq, b.Point())),
		quat:  Normalize(quat.Mul(aq, b.Orientation().Quaternion())),
	}
}

// PoseInverse will return the inverse of a pose. So if a given pose p is the pose of A relative to B,
// PoseInverse(p) will give the pose of B relative to A.
func PoseInverse(p Pose) Pose {
	inv := quat.Conj(Normalize(p.Orientation().Quaternion()))
	return &pose{point: rotate(inv, p.Point()).Mul(-1), quat: inv}
}

// PoseBetween returns the difference between two poses, i.e. the pose b expressed in the frame of a.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// TransformPoint applies the pose to a point expressed in the pose's own frame.
func TransformPoint(p Pose, pt r3.Vector) r3.Vector {
	return p.Point().Add(rotate(Normalize(p.Orientation().Quaternion()), pt))
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-6)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same within eps.
func PoseAlmostEqualEps(a, b Pose, eps float64) bool {
	return utils.R3VectorAlmostEqual(a.Point(), b.Point(), eps) &&
		QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), eps)
}

func rotate(q quat.Number, v r3.Vector) r3.Vector {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
