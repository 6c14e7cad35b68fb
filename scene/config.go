package scene

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/cspace/referenceframe"
	"go.viam.com/cspace/spatialmath"
)

// GeometryConfig attaches a configured shape to a body named in the mechanism.
type GeometryConfig struct {
	Name  string                     `json:"name" yaml:"name"`
	Body  string                     `json:"body" yaml:"body"`
	Shape spatialmath.GeometryConfig `json:"shape" yaml:"shape"`
}

// Config describes a scene in terms of body names, so it can be written before body indices are known.
type Config struct {
	Geometries           []GeometryConfig `json:"geometries" yaml:"geometries"`
	FilterAdjacentBodies bool             `json:"filter_adjacent_bodies" yaml:"filter_adjacent_bodies"`
	ExcludedBodyPairs    [][2]string      `json:"excluded_body_pairs,omitempty" yaml:"excluded_body_pairs,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	var errs error
	for i, g := range cfg.Geometries {
		geomPath := fmt.Sprintf("%s.geometries.%d", path, i)
		if g.Body == "" {
			errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(geomPath, "body"))
		}
		if g.Shape.Type == spatialmath.UnknownType {
			errs = multierr.Append(errs, goutils.NewConfigValidationFieldRequiredError(geomPath, "shape.type"))
		}
	}
	for i, pair := range cfg.ExcludedBodyPairs {
		if pair[0] == "" || pair[1] == "" {
			errs = multierr.Append(errs, goutils.NewConfigValidationError(
				fmt.Sprintf("%s.excluded_body_pairs.%d", path, i), errors.New("both bodies must be named")))
		}
	}
	return errs
}

// Build registers the configured geometries on the bodies of mech, in config order, and applies the filters.
// Every problem found is reported, not only the first.
func (cfg *Config) Build(mech *referenceframe.Mechanism) (*Graph, error) {
	if err := cfg.Validate("scene"); err != nil {
		return nil, err
	}
	g := NewGraph()
	var errs error
	for _, gc := range cfg.Geometries {
		body, err := mech.BodyByName(gc.Body)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		shape, err := gc.Shape.ParseConfig()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "geometry %q", gc.Name))
			continue
		}
		if _, err := g.RegisterGeometry(body, gc.Name, shape); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for _, pair := range cfg.ExcludedBodyPairs {
		a, errA := mech.BodyByName(pair[0])
		b, errB := mech.BodyByName(pair[1])
		if errA != nil || errB != nil {
			errs = multierr.Combine(errs, errA, errB)
			continue
		}
		g.ExcludeCollisionsBetween(a, b)
	}
	if errs != nil {
		return nil, errs
	}
	if cfg.FilterAdjacentBodies {
		g.FilterAdjacentBodies(mech)
	}
	return g, nil
}

// ConfigFromAttributes decodes a Config from a generic attribute map, such as one embedded in a larger config.
func ConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene attributes")
	}
	return cfg, nil
}
