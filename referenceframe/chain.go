package referenceframe

import (
	"slices"
)

// ancestry returns body followed by each of its ancestors up to and including the world.
func (m *Mechanism) ancestry(body BodyIndex) []BodyIndex {
	chain := []BodyIndex{body}
	for current := body; ; {
		parent, ok := m.Parent(current)
		if !ok {
			return chain
		}
		chain = append(chain, parent)
		current = parent
	}
}

// FindExpressedBody returns the nearest common ancestor of bodyA and bodyB. Planes separating geometries of the
// two bodies are expressed in this body's frame, which keeps the joints on the path between them to a minimum.
func (m *Mechanism) FindExpressedBody(bodyA, bodyB BodyIndex) (BodyIndex, error) {
	if !m.HasBody(bodyA) {
		return 0, NewBodyNotFoundError(bodyA)
	}
	if !m.HasBody(bodyB) {
		return 0, NewBodyNotFoundError(bodyB)
	}
	ancestorsA := m.ancestry(bodyA)
	for _, b := range m.ancestry(bodyB) {
		if slices.Contains(ancestorsA, b) {
			return b, nil
		}
	}
	// unreachable for a validated mechanism: every chain ends at the world
	return 0, NewNoCommonAncestorError(bodyA, bodyB)
}

// FindPath returns the bodies visited walking from bodyA up to the nearest common ancestor and then down to
// bodyB, both ends included.
func (m *Mechanism) FindPath(bodyA, bodyB BodyIndex) ([]BodyIndex, error) {
	nca, err := m.FindExpressedBody(bodyA, bodyB)
	if err != nil {
		return nil, err
	}
	up := m.ancestry(bodyA)
	up = up[:slices.Index(up, nca)+1]
	down := m.ancestry(bodyB)
	down = down[:slices.Index(down, nca)]
	slices.Reverse(down)
	return append(up, down...), nil
}

// JointsOnPath returns the joints traversed along FindPath(bodyA, bodyB), in traversal order.
func (m *Mechanism) JointsOnPath(bodyA, bodyB BodyIndex) ([]*Joint, error) {
	path, err := m.FindPath(bodyA, bodyB)
	if err != nil {
		return nil, err
	}
	joints := make([]*Joint, 0, len(path))
	for i := 0; i+1 < len(path); i++ {
		j, err := m.jointBetween(path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}
	return joints, nil
}

func (m *Mechanism) jointBetween(a, b BodyIndex) (*Joint, error) {
	if j, ok := m.InboardJoint(a); ok && j.Parent == b {
		return j, nil
	}
	if j, ok := m.InboardJoint(b); ok && j.Parent == a {
		return j, nil
	}
	return nil, NewBodiesNotAdjacentError(a, b)
}

// IsRigidlyFixed reports whether bodyA and bodyB are parent and child through a single fixed joint. It does not
// follow chains of fixed joints.
func (m *Mechanism) IsRigidlyFixed(bodyA, bodyB BodyIndex) bool {
	j, err := m.jointBetween(bodyA, bodyB)
	if err != nil {
		return false
	}
	return j.Type == FixedJoint
}

// AreAdjacent reports whether one body is the parent of the other.
func (m *Mechanism) AreAdjacent(bodyA, bodyB BodyIndex) bool {
	_, err := m.jointBetween(bodyA, bodyB)
	return err == nil
}

// FindBodyInTheMiddleOfChain returns the body on the path between bodyA and bodyB that splits the movable joints
// of the path in half. Expressing a plane there balances the kinematic degree between its two sides.
func (m *Mechanism) FindBodyInTheMiddleOfChain(bodyA, bodyB BodyIndex) (BodyIndex, error) {
	path, err := m.FindPath(bodyA, bodyB)
	if err != nil {
		return 0, err
	}
	joints, err := m.JointsOnPath(bodyA, bodyB)
	if err != nil {
		return 0, err
	}
	// movableBefore[i] is the number of movable joints between path[0] and path[i]
	movableBefore := make([]int, len(path))
	for i, j := range joints {
		movableBefore[i+1] = movableBefore[i]
		if j.IsMovable() {
			movableBefore[i+1]++
		}
	}
	total := movableBefore[len(path)-1]
	half := total / 2
	for i, n := range movableBefore {
		if n >= half {
			// prefer the body closest to the root among those splitting the chain equally
			best := i
			for k := i + 1; k < len(path) && movableBefore[k] == n; k++ {
				if m.depth(path[k]) < m.depth(path[best]) {
					best = k
				}
			}
			return path[best], nil
		}
	}
	return path[len(path)-1], nil
}

func (m *Mechanism) depth(body BodyIndex) int {
	return len(m.ancestry(body)) - 1
}

func sortBodies(bodies []BodyIndex) {
	slices.Sort(bodies)
}
