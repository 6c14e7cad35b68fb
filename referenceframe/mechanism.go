// Package referenceframe defines articulated mechanisms, trees of rigid bodies connected by joints, and the
// queries used to relate the frames of two bodies.
package referenceframe

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"go.viam.com/cspace/spatialmath"
)

// World is the name of the body every mechanism is rooted at.
const World = "world"

// BodyIndex identifies a body of a Mechanism.
type BodyIndex int

// WorldBodyIndex is the index of the world body in every Mechanism.
const WorldBodyIndex BodyIndex = 0

// JointIndex identifies a joint of a Mechanism.
type JointIndex int

// JointType describes how a joint lets its child body move relative to its parent.
type JointType string

// The joint types a Mechanism supports.
const (
	FixedJoint     = JointType("fixed")
	RevoluteJoint  = JointType("revolute")
	PrismaticJoint = JointType("prismatic")
)

// Body is a rigid body of a Mechanism.
type Body struct {
	Index BodyIndex
	Name  string
}

// Joint connects a parent body to a child body. At zero displacement the child frame coincides with the joint
// frame, whose pose in the parent frame is Origin.
type Joint struct {
	Index  JointIndex
	Name   string
	Type   JointType
	Parent BodyIndex
	Child  BodyIndex
	Origin spatialmath.Pose
	// unit axis of rotation or translation, in the joint frame
	Axis r3.Vector
	Min  float64
	Max  float64
	// index of this joint's displacement in a configuration vector, -1 for fixed joints
	PositionIndex int
}

// IsMovable reports whether the joint has a degree of freedom.
func (j *Joint) IsMovable() bool {
	return j.Type != FixedJoint
}

// Transform returns the pose of the child frame in the parent frame at displacement q.
func (j *Joint) Transform(q float64) spatialmath.Pose {
	var motion spatialmath.Pose
	switch j.Type {
	case RevoluteJoint:
		motion = spatialmath.NewPoseFromOrientation(spatialmath.NewR4AAFromAxis(j.Axis, q))
	case PrismaticJoint:
		motion = spatialmath.NewPoseFromPoint(j.Axis.Mul(q))
	case FixedJoint:
		return j.Origin
	}
	return spatialmath.Compose(j.Origin, motion)
}

// Mechanism is a tree of bodies rooted at the world body. Each non-world body has exactly one inboard joint
// connecting it to its parent.
type Mechanism struct {
	name    string
	bodies  []*Body
	joints  []*Joint
	inboard map[BodyIndex]JointIndex
	byName  map[string]BodyIndex
	tree    *simple.DirectedGraph
	movable []*Joint
}

// NewMechanism returns a mechanism containing only the world body.
func NewMechanism(name string) *Mechanism {
	m := &Mechanism{
		name:    name,
		inboard: map[BodyIndex]JointIndex{},
		byName:  map[string]BodyIndex{},
		tree:    simple.NewDirectedGraph(),
	}
	m.addBody(World)
	return m
}

func (m *Mechanism) addBody(name string) BodyIndex {
	idx := BodyIndex(len(m.bodies))
	m.bodies = append(m.bodies, &Body{Index: idx, Name: name})
	m.byName[name] = idx
	m.tree.AddNode(simple.Node(idx))
	return idx
}

// Name returns the name of the mechanism.
func (m *Mechanism) Name() string {
	return m.name
}

// AddBody adds a body with a unique name and returns its index.
func (m *Mechanism) AddBody(name string) (BodyIndex, error) {
	if name == "" {
		return 0, errors.New("body name cannot be empty")
	}
	if _, ok := m.byName[name]; ok {
		return 0, NewDuplicateBodyNameError(name)
	}
	return m.addBody(name), nil
}

// AddJoint connects parent to child. Movable joints need a non-zero axis, which is normalized. Revolute joint limits
// are in radians and prismatic limits in meters; a zero-width range means unlimited.
func (m *Mechanism) AddJoint(
	name string,
	jointType JointType,
	parent, child BodyIndex,
	origin spatialmath.Pose,
	axis r3.Vector,
	limits ...float64,
) (JointIndex, error) {
	if !m.HasBody(parent) {
		return 0, NewBodyNotFoundError(parent)
	}
	if !m.HasBody(child) {
		return 0, NewBodyNotFoundError(child)
	}
	if child == WorldBodyIndex {
		return 0, errors.Errorf("joint %q cannot have the world as its child", name)
	}
	if parent == child {
		return 0, errors.Errorf("joint %q connects body %d to itself", name, parent)
	}
	if existing, ok := m.inboard[child]; ok {
		return 0, errors.Errorf("body %q already has inboard joint %q", m.bodies[child].Name, m.joints[existing].Name)
	}
	for _, j := range m.joints {
		if j.Name == name {
			return 0, NewDuplicateJointNameError(name)
		}
	}
	if topo.PathExistsIn(m.tree, simple.Node(child), simple.Node(parent)) {
		return 0, errors.Errorf("joint %q would create a kinematic loop", name)
	}
	if origin == nil {
		origin = spatialmath.NewZeroPose()
	}

	joint := &Joint{
		Index:         JointIndex(len(m.joints)),
		Name:          name,
		Type:          jointType,
		Parent:        parent,
		Child:         child,
		Origin:        origin,
		Min:           math.Inf(-1),
		Max:           math.Inf(1),
		PositionIndex: -1,
	}
	switch jointType {
	case RevoluteJoint, PrismaticJoint:
		if axis.Norm() == 0 {
			return 0, NewZeroAxisError(name)
		}
		joint.Axis = axis.Normalize()
		joint.PositionIndex = len(m.movable)
	case FixedJoint:
	default:
		return 0, NewUnsupportedJointTypeError(string(jointType))
	}
	if len(limits) == 2 && limits[0] < limits[1] {
		joint.Min, joint.Max = limits[0], limits[1]
	}

	m.joints = append(m.joints, joint)
	if joint.IsMovable() {
		m.movable = append(m.movable, joint)
	}
	m.inboard[child] = joint.Index
	m.tree.SetEdge(m.tree.NewEdge(simple.Node(parent), simple.Node(child)))
	return joint.Index, nil
}

// Validate checks that every non-world body is connected to the world through its inboard joints.
func (m *Mechanism) Validate() error {
	for _, b := range m.bodies[1:] {
		if _, ok := m.inboard[b.Index]; !ok {
			return errors.Errorf("body %q has no inboard joint", b.Name)
		}
	}
	// with one parent per body, a successful sort means the tree is connected and acyclic
	if _, err := topo.Sort(m.tree); err != nil {
		return errors.Wrap(err, "mechanism is not a tree")
	}
	return nil
}

// HasBody reports whether idx names a body of the mechanism.
func (m *Mechanism) HasBody(idx BodyIndex) bool {
	return idx >= 0 && int(idx) < len(m.bodies)
}

// NumBodies returns the number of bodies, world included.
func (m *Mechanism) NumBodies() int {
	return len(m.bodies)
}

// Body returns the body at idx.
func (m *Mechanism) Body(idx BodyIndex) (*Body, error) {
	if !m.HasBody(idx) {
		return nil, NewBodyNotFoundError(idx)
	}
	return m.bodies[idx], nil
}

// BodyByName returns the index of the named body.
func (m *Mechanism) BodyByName(name string) (BodyIndex, error) {
	idx, ok := m.byName[name]
	if !ok {
		return 0, errors.Errorf("no body named %q", name)
	}
	return idx, nil
}

// Bodies returns every body in index order.
func (m *Mechanism) Bodies() []*Body {
	out := make([]*Body, len(m.bodies))
	copy(out, m.bodies)
	return out
}

// Joints returns every joint in index order.
func (m *Mechanism) Joints() []*Joint {
	out := make([]*Joint, len(m.joints))
	copy(out, m.joints)
	return out
}

// MovableJoints returns the joints with a degree of freedom, ordered by their position index.
func (m *Mechanism) MovableJoints() []*Joint {
	out := make([]*Joint, len(m.movable))
	copy(out, m.movable)
	return out
}

// NumPositions returns the length of a configuration vector.
func (m *Mechanism) NumPositions() int {
	return len(m.movable)
}

// InboardJoint returns the joint connecting body to its parent. The world has none.
func (m *Mechanism) InboardJoint(body BodyIndex) (*Joint, bool) {
	idx, ok := m.inboard[body]
	if !ok {
		return nil, false
	}
	return m.joints[idx], true
}

// Parent returns the parent of body. The world has no parent.
func (m *Mechanism) Parent(body BodyIndex) (BodyIndex, bool) {
	j, ok := m.InboardJoint(body)
	if !ok {
		return 0, false
	}
	return j.Parent, true
}

// Children returns the bodies whose inboard joint has body as parent, in index order.
func (m *Mechanism) Children(body BodyIndex) []BodyIndex {
	var out []BodyIndex
	nodes := m.tree.From(int64(body))
	for nodes.Next() {
		out = append(out, BodyIndex(nodes.Node().ID()))
	}
	sortBodies(out)
	return out
}

// BodyPose returns the pose of body in the world frame at configuration q.
func (m *Mechanism) BodyPose(q []float64, body BodyIndex) (spatialmath.Pose, error) {
	if len(q) != m.NumPositions() {
		return nil, NewIncorrectConfigurationLengthError(len(q), m.NumPositions())
	}
	if !m.HasBody(body) {
		return nil, NewBodyNotFoundError(body)
	}
	pose := spatialmath.NewZeroPose()
	for current := body; current != WorldBodyIndex; {
		j, ok := m.InboardJoint(current)
		if !ok {
			return nil, errors.Errorf("body %q has no inboard joint", m.bodies[current].Name)
		}
		displacement := 0.
		if j.IsMovable() {
			displacement = q[j.PositionIndex]
		}
		pose = spatialmath.Compose(j.Transform(displacement), pose)
		current = j.Parent
	}
	return pose, nil
}
