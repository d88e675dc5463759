package dependency_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/dependency"
)

var expectedConfig = &dependency.Config{
	Dependees: []dependency.DependeeRecord{
		{Slot: 0, Variant: basic},
		{Slot: 1, Variant: field},
		{Slot: 2, Variant: fast},
	},
	Dependencies: []dependency.DependencyRecord{
		{Name: "shielding", Depender: shield, Slots: []uint32{0, 1}, Logic: "and(0, not(1))", Logging: "debug"},
		{Name: "trigger", Depender: trigger, Slots: []uint32{2}},
		{Name: "calibration", Depender: calib, Slots: []uint32{0, 1, 2}},
	},
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := dependency.LoadConfigFile("testdata/model.yaml")
	require.NoError(t, err)
	assert.Equal(t, expectedConfig, cfg)
}

func TestLoadConfigFileErrors(t *testing.T) {
	for _, path := range []string{
		"testdata/not/a/real/path.yaml",
		"testdata/invalid.yaml",
	} {
		t.Run(path, func(t *testing.T) {
			cfg, err := dependency.LoadConfigFile(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv(dependency.ConfigEnvVarName, "testdata/model.yaml")
		cfg, err := dependency.ConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv(dependency.ConfigEnvVarName, "testdata/not/a/real/path.yaml")
		cfg, err := dependency.ConfigFromEnv()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(dependency.ConfigEnvVarName, "")
		require.NoError(t, os.Unsetenv(dependency.ConfigEnvVarName))
		cfg, err := dependency.ConfigFromEnv()
		assert.NoError(t, err)
		assert.Nil(t, cfg)
	})
}

func TestConfigFromMap(t *testing.T) {
	cfg, err := dependency.ConfigFromMap(map[string]interface{}{
		"dependees": []interface{}{
			map[string]interface{}{"slot": 0, "variant": basic},
			map[string]interface{}{"slot": "1", "variant": field},
			map[string]interface{}{"slot": 2, "variant": fast},
		},
		"dependencies": []interface{}{
			map[string]interface{}{
				"name":     "shielding",
				"depender": shield,
				"slots":    []interface{}{0, 1},
				"logic":    "and(0, not(1))",
				"logging":  "debug",
			},
			map[string]interface{}{"name": "trigger", "depender": trigger, "slots": []int{2}},
			map[string]interface{}{"name": "calibration", "depender": calib, "slots": []uint32{0, 1, 2}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, expectedConfig, cfg)

	_, err = dependency.ConfigFromMap(map[string]interface{}{
		"dependencies": []interface{}{
			map[string]interface{}{"name": "trigger", "depender": trigger, "number_of_slots": 1},
		},
	})
	assert.Error(t, err, "unknown keys are rejected")
}

func TestFingerprint(t *testing.T) {
	a, err := dependency.LoadConfigFile("testdata/model.yaml")
	require.NoError(t, err)
	b, err := dependency.LoadConfigFile("testdata/model.yaml")
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fa, fb)

	b.Dependencies[0].Logic = "or(0, 1)"
	fb, err = b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}
