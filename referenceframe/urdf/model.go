// Package urdf builds a mechanism and its collision scene from Universal Robot Description Format (URDF) files.
package urdf

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/scene"
)

// Extension is the file extension associated with URDF files.
const Extension string = "urdf"

// URDF joint types beyond the ones a Mechanism has.
const (
	continuousJoint = "continuous"
)

// ModelConfig represents all supported fields in a Universal Robot Description Format (URDF) file.
type ModelConfig struct {
	XMLName xml.Name `xml:"robot"`
	Name    string   `xml:"name,attr"`
	Links   []link   `xml:"link"`
	Joints  []joint  `xml:"joint"`
}

// link is a struct which details the XML used in a URDF link element.
type link struct {
	XMLName   xml.Name    `xml:"link"`
	Name      string      `xml:"name,attr"`
	Collision []collision `xml:"collision"`
}

// joint is a struct which details the XML used in a URDF joint element.
type joint struct {
	XMLName xml.Name `xml:"joint"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
	Parent  frame    `xml:"parent"`
	Child   frame    `xml:"child"`
	Origin  *pose    `xml:"origin,omitempty"`
	Axis    *axis    `xml:"axis,omitempty"`
	Limit   *limit   `xml:"limit,omitempty"`
}

// Model is a mechanism together with the collision geometries of its bodies.
type Model struct {
	Mechanism *referenceframe.Mechanism
	Scene     *scene.Graph
}

// UnmarshalModelXML builds a Model from URDF XML data. Every link becomes a body, a link named "world" being the
// world body, and links without a parent joint are welded to the world. Continuous joints become unlimited
// revolute joints. Collisions between parent and child bodies are filtered in the returned scene. Every problem
// found in the joints and collisions is reported, not only the first.
func UnmarshalModelXML(xmlData []byte, modelName string) (*Model, error) {
	if len(xmlData) == 0 {
		return nil, errors.New("no URDF data")
	}
	urdf := &ModelConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDF ModelConfig struct")
	}
	if modelName == "" {
		modelName = urdf.Name
	}

	mech := referenceframe.NewMechanism(modelName)
	bodies := map[string]referenceframe.BodyIndex{referenceframe.World: referenceframe.WorldBodyIndex}
	for _, linkElem := range urdf.Links {
		if linkElem.Name == referenceframe.World {
			continue
		}
		idx, err := mech.AddBody(linkElem.Name)
		if err != nil {
			return nil, err
		}
		bodies[linkElem.Name] = idx
	}

	var errs error
	for _, jointElem := range urdf.Joints {
		errs = multierr.Append(errs, addJoint(mech, bodies, jointElem))
	}
	if errs != nil {
		return nil, errs
	}

	// root links
	for _, linkElem := range urdf.Links {
		idx := bodies[linkElem.Name]
		if idx == referenceframe.WorldBodyIndex {
			continue
		}
		if _, ok := mech.InboardJoint(idx); !ok {
			if _, err := mech.AddJoint(linkElem.Name+"_world_weld", referenceframe.FixedJoint,
				referenceframe.WorldBodyIndex, idx, nil, r3.Vector{}); err != nil {
				return nil, err
			}
		}
	}
	if err := mech.Validate(); err != nil {
		return nil, err
	}

	graph := scene.NewGraph()
	for _, linkElem := range urdf.Links {
		for i, c := range linkElem.Collision {
			name := c.Name
			if name == "" {
				name = fmt.Sprintf("%s_collision_%d", linkElem.Name, i)
			}
			geometry, err := c.toGeometry(name)
			if err != nil {
				errs = multierr.Append(errs, errors.Wrapf(err, "link %q collision %d", linkElem.Name, i))
				continue
			}
			if _, err := graph.RegisterGeometry(bodies[linkElem.Name], name, geometry); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	if errs != nil {
		return nil, errs
	}
	graph.FilterAdjacentBodies(mech)
	return &Model{Mechanism: mech, Scene: graph}, nil
}

func addJoint(mech *referenceframe.Mechanism, bodies map[string]referenceframe.BodyIndex, jointElem joint) error {
	if jointElem.Name == referenceframe.World {
		return errors.New("joints with the name 'world' are not supported by config parsers")
	}
	parent, ok := bodies[jointElem.Parent.Link]
	if !ok {
		return errors.Errorf("joint %q has unknown parent link %q", jointElem.Name, jointElem.Parent.Link)
	}
	child, ok := bodies[jointElem.Child.Link]
	if !ok {
		return errors.Errorf("joint %q has unknown child link %q", jointElem.Name, jointElem.Child.Link)
	}
	axis, err := jointElem.Axis.Parse()
	if err != nil {
		return errors.Wrapf(err, "joint %q axis", jointElem.Name)
	}

	var jointType referenceframe.JointType
	var limits []float64
	switch jointElem.Type {
	case continuousJoint:
		jointType = referenceframe.RevoluteJoint
	case string(referenceframe.RevoluteJoint), string(referenceframe.PrismaticJoint):
		jointType = referenceframe.JointType(jointElem.Type)
		if jointElem.Limit != nil {
			limits = []float64{jointElem.Limit.Lower, jointElem.Limit.Upper}
		}
	case string(referenceframe.FixedJoint):
		jointType = referenceframe.FixedJoint
	default:
		return referenceframe.NewUnsupportedJointTypeError(jointElem.Type)
	}
	_, err = mech.AddJoint(jointElem.Name, jointType, parent, child, jointElem.Origin.Parse(), axis, limits...)
	return err
}

// ParseModelXMLFile will read a given file and parse the contained URDF XML data into an equivalent Model.
func ParseModelXMLFile(filename, modelName string) (*Model, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return UnmarshalModelXML(xmlData, modelName)
}
