package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestOrientationConversions(t *testing.T) {
	aa := NewR4AAFromAxis(r3.Vector{Z: 2}, math.Pi/2)
	test.That(t, aa.RZ, test.ShouldAlmostEqual, 1.)

	rm := aa.RotationMatrix()
	rotated := rm.Mul(r3.Vector{X: 1})
	test.That(t, rotated.X, test.ShouldAlmostEqual, 0.)
	test.That(t, rotated.Y, test.ShouldAlmostEqual, 1.)

	back := QuatToR4AA(rm.Quaternion())
	test.That(t, back.Theta, test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, back.RZ, test.ShouldAlmostEqual, 1.)

	ea := &EulerAngles{Roll: 0.1, Pitch: -0.4, Yaw: 1.2}
	test.That(t, OrientationAlmostEqual(ea, ea.RotationMatrix()), test.ShouldBeTrue)
	rt := ea.RotationMatrix().EulerAngles()
	test.That(t, rt.Roll, test.ShouldAlmostEqual, ea.Roll)
	test.That(t, rt.Pitch, test.ShouldAlmostEqual, ea.Pitch)
	test.That(t, rt.Yaw, test.ShouldAlmostEqual, ea.Yaw)

	// rpy is applied as Rz(yaw) * Ry(pitch) * Rx(roll)
	composed := quat.Mul(quat.Mul(
		NewR4AAFromAxis(r3.Vector{Z: 1}, ea.Yaw).ToQuat(),
		NewR4AAFromAxis(r3.Vector{Y: 1}, ea.Pitch).ToQuat()),
		NewR4AAFromAxis(r3.Vector{X: 1}, ea.Roll).ToQuat())
	test.That(t, QuaternionAlmostEqual(composed, ea.Quaternion(), 1e-9), test.ShouldBeTrue)

	test.That(t, QuatToR4AA(NewZeroOrientation().Quaternion()).Theta, test.ShouldEqual, 0.)
	test.That(t, OrientationAlmostEqual(OrientationInverse(aa), NewR4AAFromAxis(r3.Vector{Z: 1}, -math.Pi/2)), test.ShouldBeTrue)
}

func TestRotationMatrix(t *testing.T) {
	_, err := NewRotationMatrix([]float64{1, 2})
	test.That(t, err, test.ShouldNotBeNil)

	rm := (&EulerAngles{Roll: 0.3, Pitch: 0.2, Yaw: -0.7}).RotationMatrix()
	prod := rm.MatMul(rm.Transpose())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			want := 0.
			if r == c {
				want = 1
			}
			test.That(t, prod.At(r, c), test.ShouldAlmostEqual, want)
		}
	}
	test.That(t, rm.Col(1).Dot(rm.Col(2)), test.ShouldAlmostEqual, 0.)

	k := SkewSymmetric(r3.Vector{X: 1, Y: 2, Z: 3})
	skew, err := NewRotationMatrix(k[:])
	test.That(t, err, test.ShouldBeNil)
	v := r3.Vector{X: -1, Y: 0.5, Z: 2}
	cross := r3.Vector{X: 1, Y: 2, Z: 3}.Cross(v)
	got := skew.Mul(v)
	test.That(t, got.Sub(cross).Norm(), test.ShouldAlmostEqual, 0.)
}

func TestPoseComposition(t *testing.T) {
	a := NewPose(r3.Vector{X: 1}, NewR4AAFromAxis(r3.Vector{Z: 1}, math.Pi/2))
	b := NewPoseFromPoint(r3.Vector{X: 1})

	c := Compose(a, b)
	test.That(t, c.Point().X, test.ShouldAlmostEqual, 1.)
	test.That(t, c.Point().Y, test.ShouldAlmostEqual, 1.)

	test.That(t, PoseAlmostEqual(Compose(a, PoseInverse(a)), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(Compose(PoseInverse(a), a), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(PoseBetween(a, c), b), test.ShouldBeTrue)

	pt := TransformPoint(a, r3.Vector{Y: 2})
	test.That(t, pt.X, test.ShouldAlmostEqual, -1.)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 0.)

	test.That(t, PoseAlmostEqual(NewPose(r3.Vector{}, nil), NewZeroPose()), test.ShouldBeTrue)
	test.That(t, PoseAlmostEqual(NewPoseFromOrientation(a.Orientation()), a), test.ShouldBeFalse)
}
