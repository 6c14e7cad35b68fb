package cspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gopkg.in/yaml.v3"
)

// PlaneOrder is the degree of a separating plane's coefficients in the configuration variables.
type PlaneOrder string

// The supported plane orders.
const (
	ConstantPlaneOrder = PlaneOrder("constant")
	AffinePlaneOrder   = PlaneOrder("affine")
)

// Degree returns the total degree of coefficients of this order.
func (o PlaneOrder) Degree() int {
	if o == ConstantPlaneOrder {
		return 0
	}
	return 1
}

// ExpressedBodyPolicy chooses the body whose frame a separating plane is expressed in.
type ExpressedBodyPolicy string

// The supported expressed body policies.
const (
	// CommonAncestorExpressedBody expresses each plane in the nearest common ancestor of the two bodies.
	CommonAncestorExpressedBody = ExpressedBodyPolicy("common_ancestor")
	// ChainMiddleExpressedBody expresses each plane in the body splitting the movable joints between the two bodies
	// in half.
	ChainMiddleExpressedBody = ExpressedBodyPolicy("chain_middle")
)

// Config controls how separating planes are built.
type Config struct {
	PlaneOrder    PlaneOrder          `json:"plane_order,omitempty" yaml:"plane_order,omitempty"`
	ExpressedBody ExpressedBodyPolicy `json:"expressed_body,omitempty" yaml:"expressed_body,omitempty"`
}

// NewDefaultConfig returns affine planes expressed in the nearest common ancestor.
func NewDefaultConfig() *Config {
	return &Config{PlaneOrder: AffinePlaneOrder, ExpressedBody: CommonAncestorExpressedBody}
}

// Validate ensures all parts of the config are valid. Empty fields are allowed and take their defaults.
func (cfg *Config) Validate(path string) error {
	var errs error
	switch cfg.PlaneOrder {
	case "", ConstantPlaneOrder, AffinePlaneOrder:
	default:
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("unknown plane_order %q", cfg.PlaneOrder)))
	}
	switch cfg.ExpressedBody {
	case "", CommonAncestorExpressedBody, ChainMiddleExpressedBody:
	default:
		errs = multierr.Append(errs, goutils.NewConfigValidationError(path,
			errors.Errorf("unknown expressed_body %q", cfg.ExpressedBody)))
	}
	return errs
}

func (cfg *Config) withDefaults() Config {
	out := *NewDefaultConfig()
	if cfg == nil {
		return out
	}
	if cfg.PlaneOrder != "" {
		out.PlaneOrder = cfg.PlaneOrder
	}
	if cfg.ExpressedBody != "" {
		out.ExpressedBody = cfg.ExpressedBody
	}
	return out
}

// ConfigFromAttributes decodes a Config from a generic attribute map.
func ConfigFromAttributes(attributes map[string]interface{}) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      cfg,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "failed to decode free polytope attributes")
	}
	if err := cfg.Validate("cspace"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadConfigFile reads a Config from a YAML file (.yaml, .yml) or a JSON file, which may contain comments.
func ReadConfigFile(path string) (*Config, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json5.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %q", path)
	}
	if err := cfg.Validate("cspace"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigSchema returns the JSON schema of Config.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
