// Package testutils contains fixtures shared by tests across the module.
package testutils

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
	"go.viam.com/cspace/spatialmath"
)

// ToyRobot is a small mechanism with two collision geometries on every body:
//
//	world  -weld-     body0
//	body0  -revolute- body1 -revolute- body2
//	body0  -revolute- body3
//
// Geometries are registered in the order the fields are declared, so WorldBox has the smallest id.
type ToyRobot struct {
	Mechanism *referenceframe.Mechanism
	Scene     *scene.Graph
	Bodies    [4]referenceframe.BodyIndex

	WorldBox      scene.GeometryID
	WorldSphere   scene.GeometryID
	Body0Box      scene.GeometryID
	Body0Sphere   scene.GeometryID
	Body1Convex   scene.GeometryID
	Body1Capsule  scene.GeometryID
	Body2Sphere   scene.GeometryID
	Body2Capsule  scene.GeometryID
	Body3Box      scene.GeometryID
	Body3Sphere   scene.GeometryID
}

// NewToyRobot builds the toy robot. When filterAdjacent is set, collisions between every parent and child body are
// excluded in the scene.
func NewToyRobot(tb testing.TB, filterAdjacent bool) *ToyRobot {
	tb.Helper()
	mech := referenceframe.NewMechanism("toy_robot")
	robot := &ToyRobot{Mechanism: mech, Scene: scene.NewGraph()}

	for i, name := range []string{"body0", "body1", "body2", "body3"} {
		idx, err := mech.AddBody(name)
		test.That(tb, err, test.ShouldBeNil)
		robot.Bodies[i] = idx
	}
	b := robot.Bodies

	_, err := mech.AddJoint("weld", referenceframe.FixedJoint, referenceframe.WorldBodyIndex, b[0],
		spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.1}), r3.Vector{})
	test.That(tb, err, test.ShouldBeNil)
	_, err = mech.AddJoint("joint0", referenceframe.RevoluteJoint, b[0], b[1],
		spatialmath.NewPose(r3.Vector{X: 0.2, Z: 0.1}, &spatialmath.EulerAngles{Roll: 0.1}), r3.Vector{Z: 1},
		-math.Pi/2, math.Pi/2)
	test.That(tb, err, test.ShouldBeNil)
	_, err = mech.AddJoint("joint1", referenceframe.RevoluteJoint, b[1], b[2],
		spatialmath.NewPoseFromPoint(r3.Vector{X: 0.3}), r3.Vector{Y: 1}, -1, 1)
	test.That(tb, err, test.ShouldBeNil)
	_, err = mech.AddJoint("joint2", referenceframe.RevoluteJoint, b[0], b[3],
		spatialmath.NewPose(r3.Vector{X: -0.2, Z: 0.1}, &spatialmath.EulerAngles{Yaw: 0.3}), r3.Vector{X: 1, Z: 1},
		-math.Pi/2, math.Pi/2)
	test.That(tb, err, test.ShouldBeNil)
	test.That(tb, mech.Validate(), test.ShouldBeNil)

	register := func(body referenceframe.BodyIndex, name string, shape spatialmath.Geometry, err error) scene.GeometryID {
		tb.Helper()
		test.That(tb, err, test.ShouldBeNil)
		id, err := robot.Scene.RegisterGeometry(body, name, shape)
		test.That(tb, err, test.ShouldBeNil)
		return id
	}
	world := referenceframe.WorldBodyIndex

	shape, err := spatialmath.NewBox(spatialmath.NewPoseFromPoint(r3.Vector{X: 0.5}), r3.Vector{X: 0.1, Y: 0.2, Z: 0.3}, "")
	robot.WorldBox = register(world, "world_box", shape, err)
	shape, err = spatialmath.NewSphere(spatialmath.NewPoseFromPoint(r3.Vector{X: -0.5, Y: 0.1}), 0.05, "")
	robot.WorldSphere = register(world, "world_sphere", shape, err)

	shape, err = spatialmath.NewBox(spatialmath.NewZeroPose(), r3.Vector{X: 0.05, Y: 0.05, Z: 0.1}, "")
	robot.Body0Box = register(b[0], "body0_box", shape, err)
	shape, err = spatialmath.NewSphere(spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.05}), 0.02, "")
	robot.Body0Sphere = register(b[0], "body0_sphere", shape, err)

	shape, err = spatialmath.NewConvexPolytope(spatialmath.NewPoseFromPoint(r3.Vector{X: 0.1}), []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 0.05, Y: 0, Z: 0},
		{X: 0, Y: 0.05, Z: 0},
		{X: 0, Y: 0, Z: 0.05},
		{X: 0.05, Y: 0.05, Z: 0.05},
	}, "")
	robot.Body1Convex = register(b[1], "body1_convex", shape, err)
	shape, err = spatialmath.NewCapsule(
		spatialmath.NewPose(r3.Vector{X: 0.15}, spatialmath.NewR4AAFromAxis(r3.Vector{Y: 1}, math.Pi/2)), 0.02, 0.2, "")
	robot.Body1Capsule = register(b[1], "body1_capsule", shape, err)

	shape, err = spatialmath.NewSphere(spatialmath.NewPoseFromPoint(r3.Vector{X: 0.1, Z: 0.02}), 0.03, "")
	robot.Body2Sphere = register(b[2], "body2_sphere", shape, err)
	shape, err = spatialmath.NewCapsule(spatialmath.NewPoseFromPoint(r3.Vector{X: 0.05}), 0.01, 0.1, "")
	robot.Body2Capsule = register(b[2], "body2_capsule", shape, err)

	shape, err = spatialmath.NewBox(spatialmath.NewPose(r3.Vector{Y: 0.05}, &spatialmath.EulerAngles{Pitch: 0.2}),
		r3.Vector{X: 0.02, Y: 0.1, Z: 0.03}, "")
	robot.Body3Box = register(b[3], "body3_box", shape, err)
	shape, err = spatialmath.NewSphere(spatialmath.NewPoseFromPoint(r3.Vector{Y: 0.12}), 0.01, "")
	robot.Body3Sphere = register(b[3], "body3_sphere", shape, err)

	if filterAdjacent {
		robot.Scene.FilterAdjacentBodies(mech)
	}
	return robot
}

// GeometriesPerBody returns how many geometries each body of the toy robot carries, world included.
func (robot *ToyRobot) GeometriesPerBody() map[referenceframe.BodyIndex]int {
	counts := map[referenceframe.BodyIndex]int{}
	for _, g := range robot.Scene.Geometries() {
		counts[g.Body]++
	}
	return counts
}
