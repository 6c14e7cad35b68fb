package cspace

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/cspace/logging"
	"go.viam.com/cspace/referenceframe/urdf"
)

const planarArm = `<robot name="planar_arm">
  <link name="base">
    <collision name="base_box"><geometry><box size="0.3 0.3 0.1"/></geometry></collision>
  </link>
  <link name="upper">
    <collision name="upper_capsule">
      <origin xyz="0.25 0 0"/>
      <geometry><capsule radius="0.04" length="0.4"/></geometry>
    </collision>
  </link>
  <link name="lower">
    <collision name="lower_ball">
      <origin xyz="0.3 0 0"/>
      <geometry><sphere radius="0.05"/></geometry>
    </collision>
  </link>
  <joint name="shoulder" type="revolute">
    <parent link="base"/>
    <child link="upper"/>
    <origin xyz="0 0 0.1"/>
    <axis xyz="0 0 1"/>
    <limit lower="-2" upper="2"/>
  </joint>
  <joint name="elbow" type="continuous">
    <parent link="upper"/>
    <child link="lower"/>
    <origin xyz="0.5 0 0"/>
    <axis xyz="0 0 1"/>
  </joint>
</robot>`

func TestFreePolytopeFromURDF(t *testing.T) {
	model, err := urdf.UnmarshalModelXML([]byte(planarArm), "")
	test.That(t, err, test.ShouldBeNil)
	fp, err := NewFreePolytope(model.Mechanism, model.Scene, nil, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	// adjacent links are filtered, leaving the base against the lower link
	test.That(t, fp.NumSeparatingPlanes(), test.ShouldEqual, 1)
	box, err := model.Scene.GeometryByName("base_box")
	test.That(t, err, test.ShouldBeNil)
	ball, err := model.Scene.GeometryByName("lower_ball")
	test.That(t, err, test.ShouldBeNil)
	_, ok := fp.PlaneIndex(ball, box)
	test.That(t, ok, test.ShouldBeTrue)

	plane := fp.SeparatingPlanes()[0]
	test.That(t, plane.Indeterminates().Size(), test.ShouldEqual, 2)

	ret, err := fp.GenerateRationals([]float64{0, 0}, nil, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(ret), test.ShouldEqual, 1)
	test.That(t, len(ret[0].Rationals), test.ShouldEqual, 9)
	test.That(t, len(ret[0].UnitLengthVectors), test.ShouldEqual, 1)
}
