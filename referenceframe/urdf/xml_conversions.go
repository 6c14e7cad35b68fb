package urdf

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/cspace/spatialmath"
)

// collision is a struct which details the XML used in a URDF collision geometry.
type collision struct {
	XMLName  xml.Name `xml:"collision"`
	Name     string   `xml:"name,attr"`
	Origin   *pose    `xml:"origin"`
	Geometry struct {
		XMLName  xml.Name  `xml:"geometry"`
		Box      *box      `xml:"box,omitempty"`
		Sphere   *sphere   `xml:"sphere,omitempty"`
		Cylinder *cylinder `xml:"cylinder,omitempty"`
		Capsule  *cylinder `xml:"capsule,omitempty"`
	} `xml:"geometry"`
}

type box struct {
	Size string `xml:"size,attr"` // "x y z" format, in meters
}

type sphere struct {
	Radius float64 `xml:"radius,attr"`
}

// cylinder also describes a capsule, whose length excludes the two hemispherical caps.
type cylinder struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

func (c *collision) toGeometry(label string) (spatialmath.Geometry, error) {
	offset := c.Origin.Parse()
	switch {
	case c.Geometry.Box != nil:
		dims, err := parseVector(c.Geometry.Box.Size, r3.Vector{})
		if err != nil {
			return nil, errors.Wrap(err, "box size")
		}
		return spatialmath.NewBox(offset, dims, label)
	case c.Geometry.Sphere != nil:
		return spatialmath.NewSphere(offset, c.Geometry.Sphere.Radius, label)
	case c.Geometry.Cylinder != nil:
		return spatialmath.NewCylinder(offset, c.Geometry.Cylinder.Radius, c.Geometry.Cylinder.Length, label)
	case c.Geometry.Capsule != nil:
		r := c.Geometry.Capsule.Radius
		return spatialmath.NewCapsule(offset, r, c.Geometry.Capsule.Length+2*r, label)
	default:
		return nil, errors.New("couldn't parse xml: no geometry defined")
	}
}

type frame struct {
	Link string `xml:"link,attr"`
}

type limit struct {
	XMLName xml.Name `xml:"limit"`
	Lower   float64  `xml:"lower,attr"` // translation limits are in meters, revolute limits are in radians
	Upper   float64  `xml:"upper,attr"` // translation limits are in meters, revolute limits are in radians
}

type axis struct {
	XMLName xml.Name `xml:"axis"`
	XYZ     string   `xml:"xyz,attr"`
}

// Parse returns the axis, defaulting to x when none is given.
func (a *axis) Parse() (r3.Vector, error) {
	if a == nil {
		return r3.Vector{X: 1}, nil
	}
	return parseVector(a.XYZ, r3.Vector{X: 1})
}

type pose struct {
	XMLName xml.Name `xml:"origin"`
	RPY     string   `xml:"rpy,attr"` // Fixed frame angle "r p y" format, in radians
	XYZ     string   `xml:"xyz,attr"` // "x y z" format, in meters
}

// Parse returns the pose, treating a missing origin or missing attributes as zero.
func (p *pose) Parse() spatialmath.Pose {
	if p == nil {
		return spatialmath.NewZeroPose()
	}
	xyz := spaceDelimitedStringToFloatSlice(p.XYZ)
	rpy := spaceDelimitedStringToFloatSlice(p.RPY)
	pad := func(v []float64) []float64 {
		return append(v, make([]float64, max(0, 3-len(v)))...)
	}
	xyz, rpy = pad(xyz), pad(rpy)
	return spatialmath.NewPose(
		r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]},
		&spatialmath.EulerAngles{Roll: rpy[0], Pitch: rpy[1], Yaw: rpy[2]},
	)
}

func parseVector(s string, fallback r3.Vector) (r3.Vector, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	vals := spaceDelimitedStringToFloatSlice(s)
	if len(vals) != 3 {
		return r3.Vector{}, errors.Errorf("expected 3 values, got %q", s)
	}
	for _, v := range vals {
		if math.IsNaN(v) {
			return r3.Vector{}, errors.Errorf("cannot parse %q as a vector", s)
		}
	}
	return r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// spaceDelimitedStringToFloatSlice is a helper method to split up space-delimited fields in a string and converts them to floats.
func spaceDelimitedStringToFloatSlice(s string) []float64 {
	var converted []float64
	slice := strings.Fields(s)
	for _, value := range slice {
		value, err := strconv.ParseFloat(value, 64)
		if err != nil {
			value = math.NaN()
		}
		converted = append(converted, value)
	}
	return converted
}
