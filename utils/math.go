// Package utils contains small numeric and concurrency helpers shared across the module.
package utils

import (
	"math"

	"github.com/golang/geo/r3"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if all elements are within epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return Float64AlmostEqual(a.X, b.X, epsilon) &&
		Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		Float64AlmostEqual(a.Z, b.Z, epsilon)
}
