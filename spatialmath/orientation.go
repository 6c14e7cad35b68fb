// Package spatialmath defines the poses, orientations and collision shapes that bodies of a mechanism carry.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a rigid object or a frame of reference in 3D Euclidean space.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
	EulerAngles() *EulerAngles
	RotationMatrix() *RotationMatrix
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &Quaternion{Real: 1}
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// OrientationInverse returns the orientation that undoes o.
func OrientationInverse(o Orientation) Orientation {
	q := Quaternion(quat.Conj(o.Quaternion()))
	return &q
}

// QuaternionAlmostEqual checks whether two quaternions describe the same rotation within tol. q and -q
// describe the same rotation.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	same := math.Abs(a.Real-b.Real) < tol && math.Abs(a.Imag-b.Imag) < tol &&
		math.Abs(a.Jmag-b.Jmag) < tol && math.Abs(a.Kmag-b.Kmag) < tol
	flipped := math.Abs(a.Real+b.Real) < tol && math.Abs(a.Imag+b.Imag) < tol &&
		math.Abs(a.Jmag+b.Jmag) < tol && math.Abs(a.Kmag+b.Kmag) < tol
	return same || flipped
}

// Quaternion is a unit quaternion orientation.
type Quaternion quat.Number

// Quaternion returns the orientation as a gonum quaternion.
func (q *Quaternion) Quaternion() quat.Number {
	return quat.Number(*q)
}

// AxisAngles returns the orientation in axis angle representation.
func (q *Quaternion) AxisAngles() *R4AA {
	return QuatToR4AA(q.Quaternion())
}

// EulerAngles returns orientation in roll/pitch/yaw representation.
func (q *Quaternion) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(q.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (q *Quaternion) RotationMatrix() *RotationMatrix {
	return QuatToRotationMatrix(q.Quaternion())
}

// Normalize scales a quaternion to unit length. A zero quaternion becomes the identity.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/norm, q)
}

// QuatToR4AA converts a quaternion to an axis angle. The identity rotation maps to a zero angle about +Z.
func QuatToR4AA(q quat.Number) *R4AA {
	q = Normalize(q)
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	sinHalf := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if sinHalf < 1e-12 {
		return NewR4AA()
	}
	theta := 2 * math.Atan2(sinHalf, q.Real)
	return &R4AA{Theta: theta, RX: q.Imag / sinHalf, RY: q.Jmag / sinHalf, RZ: q.Kmag / sinHalf}
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return &RotationMatrix{mat: [9]float64{
		1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y),
		2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x),
		2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y),
	}}
}

// QuatToEulerAngles converts a quaternion to roll/pitch/yaw such that R = Rz(yaw) * Ry(pitch) * Rx(roll).
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	q = Normalize(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	roll := math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y))
	sinPitch := 2 * (w*y - z*x)
	var pitch float64
	if math.Abs(sinPitch) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinPitch)
	} else {
		pitch = math.Asin(sinPitch)
	}
	yaw := math.Atan2(2*(w*z+x*y), 1-2*(y*y+z*z))
	return &EulerAngles{Roll: roll, Pitch: pitch, Yaw: yaw}
}
