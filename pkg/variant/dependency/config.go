package dependency

import (
	"os"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/hashstructure"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ConfigEnvVarName names the environment variable holding the path of the
// dependency model file.
const ConfigEnvVarName = "VARIANT_DEPENDENCY_MODEL_FILE"

// Config describes a dependency model.
type Config struct {
	Dependees    []DependeeRecord   `json:"dependees" mapstructure:"dependees"`
	Dependencies []DependencyRecord `json:"dependencies" mapstructure:"dependencies"`
}

// DependeeRecord assigns a variant to a model slot.
type DependeeRecord struct {
	Slot    uint32 `json:"slot" mapstructure:"slot"`
	Variant string `json:"variant" mapstructure:"variant"`
}

// DependencyRecord describes the dependency of one depender variant on
// the dependees in Slots. An empty Logic ands all of them.
type DependencyRecord struct {
	Name     string   `json:"name" mapstructure:"name"`
	Depender string   `json:"depender" mapstructure:"depender"`
	Slots    []uint32 `json:"slots" mapstructure:"slots"`
	Logic    string   `json:"logic,omitempty" mapstructure:"logic"`
	// Logging is a logrus level name applied to this dependency only.
	Logging string `json:"logging,omitempty" mapstructure:"logging"`
}

// LoadConfigFile reads a YAML or JSON model description.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "cannot decode dependency model file %s", path)
	}
	return cfg, nil
}

// ConfigFromEnv loads the file named by ConfigEnvVarName. It returns nil
// and no error when the variable is not set.
func ConfigFromEnv() (*Config, error) {
	path, isSet := os.LookupEnv(ConfigEnvVarName)
	if !isSet {
		return nil, nil
	}
	return LoadConfigFile(path)
}

// ConfigFromMap decodes an already parsed property map. Unknown keys are
// rejected.
func ConfigFromMap(properties map[string]interface{}) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(properties); err != nil {
		return nil, errors.Wrap(err, "cannot decode dependency model properties")
	}
	return cfg, nil
}

// Fingerprint hashes the content of the configuration. Equal
// configurations have equal fingerprints.
func (c *Config) Fingerprint() (uint64, error) {
	return hashstructure.Hash(c, nil)
}
