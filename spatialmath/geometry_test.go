package spatialmath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gopkg.in/yaml.v3"
)

func TestBoxVertices(t *testing.T) {
	b, err := NewBox(NewPoseFromPoint(r3.Vector{Z: 1}), r3.Vector{X: 2, Y: 4, Z: 6}, "box")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.Type(), test.ShouldEqual, BoxType)

	verts := b.Vertices()
	test.That(t, len(verts), test.ShouldEqual, 8)
	test.That(t, verts[0], test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 4})
	test.That(t, verts[7], test.ShouldResemble, r3.Vector{X: -1, Y: -2, Z: -2})

	moved := b.Transform(NewPoseFromPoint(r3.Vector{X: 10}))
	test.That(t, moved.Vertices()[0].X, test.ShouldAlmostEqual, 11.)
	test.That(t, moved.AlmostEqual(b), test.ShouldBeFalse)
	test.That(t, b.AlmostEqual(b.Transform(NewZeroPose())), test.ShouldBeTrue)

	_, err = NewBox(NewZeroPose(), r3.Vector{X: -1}, "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRoundedGeometries(t *testing.T) {
	s, err := NewSphere(NewPoseFromPoint(r3.Vector{X: 1}), 0.5, "ball")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Type(), test.ShouldEqual, SphereType)
	test.That(t, s.(RoundedGeometry).Radius(), test.ShouldEqual, 0.5)
	test.That(t, s.Vertices(), test.ShouldResemble, []r3.Vector{{X: 1}})

	c, err := NewCapsule(NewPoseFromOrientation(NewR4AAFromAxis(r3.Vector{Y: 1}, math.Pi/2)), 1, 6, "pill")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.Type(), test.ShouldEqual, CapsuleType)
	ends := c.Vertices()
	test.That(t, len(ends), test.ShouldEqual, 2)
	// z axis rotated onto x
	test.That(t, ends[0].X, test.ShouldAlmostEqual, -2.)
	test.That(t, ends[1].X, test.ShouldAlmostEqual, 2.)
	test.That(t, ends[1].Z, test.ShouldAlmostEqual, 0.)

	degenerate, err := NewCapsule(NewZeroPose(), 1, 2, "")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, degenerate.Type(), test.ShouldEqual, SphereType)

	_, err = NewCapsule(NewZeroPose(), 1, 1, "")
	test.That(t, err, test.ShouldNotBeNil)

	cyl, err := NewCylinder(NewZeroPose(), 0.2, 1, "can")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cyl.Type(), test.ShouldEqual, CylinderType)
	test.That(t, cyl.Vertices(), test.ShouldBeEmpty)
	_, err = NewCylinder(NewZeroPose(), 0, 1, "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestConvexPolytope(t *testing.T) {
	tetra := []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}
	cp, err := NewConvexPolytope(NewPoseFromPoint(r3.Vector{Z: 1}), tetra, "tet")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cp.Type(), test.ShouldEqual, ConvexType)
	verts := cp.Vertices()
	test.That(t, len(verts), test.ShouldEqual, 4)
	test.That(t, verts[3], test.ShouldResemble, r3.Vector{Z: 2})

	// the input slice is copied
	tetra[0] = r3.Vector{X: 100}
	test.That(t, cp.Vertices()[0], test.ShouldResemble, r3.Vector{Z: 1})

	_, err = NewConvexPolytope(NewZeroPose(), nil, "")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGeometryConfig(t *testing.T) {
	raw := `{"type": "box", "x": 1, "y": 2, "z": 3, "translation": {"x": 1}, "label": "b"}`
	var cfg GeometryConfig
	test.That(t, json.Unmarshal([]byte(raw), &cfg), test.ShouldBeNil)
	g, err := cfg.ParseConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Type(), test.ShouldEqual, BoxType)
	test.That(t, g.Label(), test.ShouldEqual, "b")
	test.That(t, g.Pose().Point().X, test.ShouldEqual, 1.)

	yml := `
type: convex
vertices:
  - [0, 0, 0]
  - [1, 0, 0]
  - [0, 1, 0]
orientation:
  yaw: 1.5707963267948966
`
	cfg = GeometryConfig{}
	test.That(t, yaml.Unmarshal([]byte(yml), &cfg), test.ShouldBeNil)
	g, err = cfg.ParseConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.Type(), test.ShouldEqual, ConvexType)
	test.That(t, g.Vertices()[1].Y, test.ShouldAlmostEqual, 1.)

	for _, bad := range []GeometryConfig{{}, {Type: "torus"}, {Type: SphereType, R: -1}} {
		_, err := bad.ParseConfig()
		test.That(t, err, test.ShouldNotBeNil)
	}
}
