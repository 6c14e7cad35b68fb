package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is a 3x3 rotation matrix stored in row-major order.
type RotationMatrix struct {
	mat [9]float64
}

// NewRotationMatrix creates a rotation matrix from 9 row-major values.
func NewRotationMatrix(m []float64) (*RotationMatrix, error) {
	if len(m) != 9 {
		return nil, errors.Errorf("input slice has %d elements, need exactly 9", len(m))
	}
	rm := &RotationMatrix{}
	copy(rm.mat[:], m)
	return rm, nil
}

// At returns the value at row, col.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat[row*3+col]
}

// Row returns the 3 elements of a row as a vector.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	return r3.Vector{X: rm.mat[row*3], Y: rm.mat[row*3+1], Z: rm.mat[row*3+2]}
}

// Col returns the 3 elements of a column as a vector.
func (rm *RotationMatrix) Col(col int) r3.Vector {
	return r3.Vector{X: rm.mat[col], Y: rm.mat[3+col], Z: rm.mat[6+col]}
}

// Mul rotates a vector.
func (rm *RotationMatrix) Mul(v r3.Vector) r3.Vector {
	return r3.Vector{X: rm.Row(0).Dot(v), Y: rm.Row(1).Dot(v), Z: rm.Row(2).Dot(v)}
}

// MatMul returns rm * other.
func (rm *RotationMatrix) MatMul(other *RotationMatrix) *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.mat[r*3+c] = rm.Row(r).Dot(other.Col(c))
		}
	}
	return out
}

// Transpose returns the transpose, which is also the inverse rotation.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	out := &RotationMatrix{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.mat[c*3+r] = rm.mat[r*3+c]
		}
	}
	return out
}

// Quaternion converts the rotation matrix to a unit quaternion.
func (rm *RotationMatrix) Quaternion() quat.Number {
	m := rm.mat
	trace := m[0] + m[4] + m[8]
	var q quat.Number
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{Real: 0.25 / s, Imag: (m[7] - m[5]) * s, Jmag: (m[2] - m[6]) * s, Kmag: (m[3] - m[1]) * s}
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * math.Sqrt(1+m[0]-m[4]-m[8])
		q = quat.Number{Real: (m[7] - m[5]) / s, Imag: 0.25 * s, Jmag: (m[1] + m[3]) / s, Kmag: (m[2] + m[6]) / s}
	case m[4] > m[8]:
		s := 2 * math.Sqrt(1+m[4]-m[0]-m[8])
		q = quat.Number{Real: (m[2] - m[6]) / s, Imag: (m[1] + m[3]) / s, Jmag: 0.25 * s, Kmag: (m[5] + m[7]) / s}
	default:
		s := 2 * math.Sqrt(1+m[8]-m[0]-m[4])
		q = quat.Number{Real: (m[3] - m[1]) / s, Imag: (m[2] + m[6]) / s, Jmag: (m[5] + m[7]) / s, Kmag: 0.25 * s}
	}
	return Normalize(q)
}

// AxisAngles returns the orientation in axis angle representation.
func (rm *RotationMatrix) AxisAngles() *R4AA {
	return QuatToR4AA(rm.Quaternion())
}

// EulerAngles returns the orientation in Euler angle representation.
func (rm *RotationMatrix) EulerAngles() *EulerAngles {
	return QuatToEulerAngles(rm.Quaternion())
}

// RotationMatrix returns the orientation in rotation matrix representation.
func (rm *RotationMatrix) RotationMatrix() *RotationMatrix {
	return rm
}

// SkewSymmetric returns the matrix K such that K * v = axis x v.
func SkewSymmetric(axis r3.Vector) [9]float64 {
	return [9]float64{
		0, -axis.Z, axis.Y,
		axis.Z, 0, -axis.X,
		-axis.Y, axis.X, 0,
	}
}
