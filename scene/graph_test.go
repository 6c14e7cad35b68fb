package scene

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gopkg.in/yaml.v3"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/spatialmath"
)

func makeChain(t *testing.T) (*referenceframe.Mechanism, referenceframe.BodyIndex, referenceframe.BodyIndex) {
	t.Helper()
	m := referenceframe.NewMechanism("chain")
	link1, err := m.AddBody("link1")
	test.That(t, err, test.ShouldBeNil)
	link2, err := m.AddBody("link2")
	test.That(t, err, test.ShouldBeNil)
	_, err = m.AddJoint("j1", referenceframe.RevoluteJoint, referenceframe.WorldBodyIndex, link1, nil, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	_, err = m.AddJoint("j2", referenceframe.RevoluteJoint, link1, link2, nil, r3.Vector{Z: 1})
	test.That(t, err, test.ShouldBeNil)
	return m, link1, link2
}

func TestRegisterGeometry(t *testing.T) {
	g := NewGraph()
	ball, err := spatialmath.NewSphere(spatialmath.NewZeroPose(), 0.1, "")
	test.That(t, err, test.ShouldBeNil)

	id1, err := g.RegisterGeometry(1, "a", ball)
	test.That(t, err, test.ShouldBeNil)
	id2, err := g.RegisterGeometry(2, "", ball)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id1, test.ShouldEqual, GeometryID(1))
	test.That(t, id2, test.ShouldEqual, GeometryID(2))

	_, err = g.RegisterGeometry(2, "a", ball)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = g.RegisterGeometry(2, "nil", nil)
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, g.NumGeometries(), test.ShouldEqual, 2)
	test.That(t, len(g.GeometriesOnBody(2)), test.ShouldEqual, 1)
	found, err := g.GeometryByName("a")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, found, test.ShouldEqual, id1)
	_, err = g.Geometry(GeometryID(7))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestCollisionFilters(t *testing.T) {
	m, link1, link2 := makeChain(t)
	g := NewGraph()
	ball, err := spatialmath.NewSphere(spatialmath.NewZeroPose(), 0.1, "")
	test.That(t, err, test.ShouldBeNil)

	ground, err := g.RegisterGeometry(referenceframe.WorldBodyIndex, "ground", ball)
	test.That(t, err, test.ShouldBeNil)
	a1, err := g.RegisterGeometry(link1, "a1", ball)
	test.That(t, err, test.ShouldBeNil)
	a2, err := g.RegisterGeometry(link1, "a2", ball)
	test.That(t, err, test.ShouldBeNil)
	b, err := g.RegisterGeometry(link2, "b", ball)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, g.CollisionFiltered(a1, a2), test.ShouldBeTrue)
	test.That(t, g.CollisionFiltered(a1, b), test.ShouldBeFalse)
	test.That(t, g.CollisionFiltered(a1, GeometryID(99)), test.ShouldBeTrue)

	g.FilterAdjacentBodies(m)
	test.That(t, g.CollisionFiltered(a1, b), test.ShouldBeTrue)
	test.That(t, g.CollisionFiltered(b, a2), test.ShouldBeTrue)
	test.That(t, g.CollisionFiltered(ground, a1), test.ShouldBeTrue)
	test.That(t, g.CollisionFiltered(ground, b), test.ShouldBeFalse)

	test.That(t, g.ExcludeGeometryPair(b, ground), test.ShouldBeNil)
	test.That(t, g.CollisionFiltered(ground, b), test.ShouldBeTrue)
	test.That(t, g.ExcludeGeometryPair(b, GeometryID(99)), test.ShouldNotBeNil)
}

func TestSceneConfig(t *testing.T) {
	m, link1, link2 := makeChain(t)

	raw := `
filter_adjacent_bodies: true
geometries:
  - name: base
    body: world
    shape: {type: box, x: 1, y: 1, z: 0.1}
  - name: upper
    body: link1
    shape: {type: capsule, r: 0.05, l: 0.5}
  - name: lower
    body: link2
    shape: {type: sphere, r: 0.1, translation: {z: 0.2}}
`
	var cfg Config
	test.That(t, yaml.Unmarshal([]byte(raw), &cfg), test.ShouldBeNil)
	g, err := cfg.Build(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.NumGeometries(), test.ShouldEqual, 3)
	test.That(t, len(g.GeometriesOnBody(link1)), test.ShouldEqual, 1)
	lower := g.GeometriesOnBody(link2)[0]
	test.That(t, lower.Shape.Type(), test.ShouldEqual, spatialmath.SphereType)
	test.That(t, lower.Shape.Pose().Point().Z, test.ShouldAlmostEqual, 0.2)

	base, err := g.GeometryByName("base")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.CollisionFiltered(base, lower.ID), test.ShouldBeFalse)
	upper, err := g.GeometryByName("upper")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.CollisionFiltered(base, upper), test.ShouldBeTrue)

	bad := Config{Geometries: []GeometryConfig{
		{Name: "x", Body: "nowhere", Shape: spatialmath.GeometryConfig{Type: spatialmath.SphereType, R: 1}},
		{Name: "y", Body: "link1", Shape: spatialmath.GeometryConfig{Type: spatialmath.SphereType, R: -1}},
	}}
	_, err = bad.Build(m)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "nowhere")
	test.That(t, err.Error(), test.ShouldContainSubstring, `geometry "y"`)

	invalid := Config{
		Geometries:        []GeometryConfig{{Name: "z"}},
		ExcludedBodyPairs: [][2]string{{"link1", ""}},
	}
	err = invalid.Validate("scene")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "body")
}

func TestConfigFromAttributes(t *testing.T) {
	m, _, _ := makeChain(t)
	cfg, err := ConfigFromAttributes(map[string]interface{}{
		"filter_adjacent_bodies": true,
		"excluded_body_pairs":    [][2]string{{"world", "link2"}},
		"geometries": []interface{}{
			map[string]interface{}{
				"name":  "tool",
				"body":  "link2",
				"shape": map[string]interface{}{"type": "sphere", "r": 0.02},
			},
			map[string]interface{}{
				"name":  "floor",
				"body":  "world",
				"shape": map[string]interface{}{"type": "box", "x": 2, "y": 2, "z": 0.01},
			},
		},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.FilterAdjacentBodies, test.ShouldBeTrue)
	test.That(t, len(cfg.Geometries), test.ShouldEqual, 2)

	g, err := cfg.Build(m)
	test.That(t, err, test.ShouldBeNil)
	tool, err := g.GeometryByName("tool")
	test.That(t, err, test.ShouldBeNil)
	floor, err := g.GeometryByName("floor")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.CollisionFiltered(tool, floor), test.ShouldBeTrue)
}
