package dependency_test

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/dependency"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

func initializedModel(t *testing.T) (*dependency.Model, *test.Hook, func(string, bool)) {
	t.Helper()
	cfg, err := dependency.LoadConfigFile("testdata/model.yaml")
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)
	reg := newRegistry()
	m := dependency.NewModel(reg, dependency.WithLogger(logger))
	require.NoError(t, m.Initialize(cfg))
	return m, hook, reg.Set
}

func TestModelInitialize(t *testing.T) {
	m, _, _ := initializedModel(t)
	assert.True(t, m.IsInitialized())
	assert.Equal(t, []string{calib, trigger, shield}, m.Dependencies())

	d, ok := m.Dependency(shield)
	require.True(t, ok)
	assert.True(t, d.IsLocked())
	assert.Equal(t, []uint32{0, 1}, d.DependeeSlots())

	d, ok = m.Dependency(calib)
	require.True(t, ok)
	assert.Equal(t, logic.AndGUID, d.Logic().GUID())
	assert.Len(t, d.Logic().Inputs(), 3)

	_, ok = m.Dependency(basic)
	assert.False(t, ok)

	assert.EqualError(t, m.Initialize(&dependency.Config{}), "dependency model is already initialized")
}

func TestModelIsEnabled(t *testing.T) {
	m, _, set := initializedModel(t)

	for _, tt := range []struct {
		Name    string
		Set     map[string]bool
		Enabled map[string]bool
	}{
		{
			Name: "initial",
			Enabled: map[string]bool{
				shield:  true,
				trigger: false,
				calib:   false,
				basic:   true,
			},
		},
		{
			Name: "field on, fast on",
			Set:  map[string]bool{field: true, fast: true},
			Enabled: map[string]bool{
				shield:  false,
				trigger: true,
				calib:   true,
			},
		},
		{
			Name: "basic off",
			Set:  map[string]bool{basic: false},
			Enabled: map[string]bool{
				shield:  false,
				trigger: true,
				calib:   false,
			},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			for path, active := range tt.Set {
				set(path, active)
			}
			for path, want := range tt.Enabled {
				enabled, err := m.IsEnabled(path)
				require.NoError(t, err)
				assert.Equal(t, want, enabled, path)
			}
		})
	}
}

func TestModelDependersOf(t *testing.T) {
	m, _, _ := initializedModel(t)
	assert.Equal(t, []string{calib, shield}, m.DependersOf(basic))
	assert.Equal(t, []string{calib, trigger}, m.DependersOf(fast))
	assert.Empty(t, m.DependersOf(shield))
}

func TestModelReset(t *testing.T) {
	m, _, _ := initializedModel(t)
	m.Reset()
	assert.False(t, m.IsInitialized())
	assert.Empty(t, m.Dependencies())
	_, err := m.IsEnabled(shield)
	assert.EqualError(t, err, "dependency model is not initialized")

	cfg, err := dependency.LoadConfigFile("testdata/model.yaml")
	require.NoError(t, err)
	require.NoError(t, m.Initialize(cfg))
	assert.Len(t, m.Dependencies(), 3)
}

func TestModelPerDependencyLogging(t *testing.T) {
	_, hook, _ := initializedModel(t)

	var debug []*logrus.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel {
			debug = append(debug, e)
		}
	}
	require.NotEmpty(t, debug)
	for _, e := range debug {
		assert.Equal(t, "shielding", e.Data["dependency"])
	}
}

func TestModelRecordErrors(t *testing.T) {
	cfg := &dependency.Config{
		Dependees: []dependency.DependeeRecord{
			{Slot: 0, Variant: basic},
			{Slot: 0, Variant: field},
			{Slot: 1, Variant: basic},
			{Slot: 2},
		},
		Dependencies: []dependency.DependencyRecord{
			{Name: "empty", Depender: shield},
			{Name: "dangling", Depender: trigger, Slots: []uint32{5}},
			{Name: "loud", Depender: calib, Slots: []uint32{0}, Logging: "shouting"},
			{Depender: calib, Slots: []uint32{0}},
		},
	}
	m := dependency.NewModel(newRegistry())
	err := m.Initialize(cfg)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 7)
	assert.False(t, m.IsInitialized())
}

func TestModelDuplicateRecords(t *testing.T) {
	cfg := &dependency.Config{
		Dependees: []dependency.DependeeRecord{{Slot: 0, Variant: basic}},
		Dependencies: []dependency.DependencyRecord{
			{Name: "a", Depender: shield, Slots: []uint32{0}},
			{Name: "a", Depender: trigger, Slots: []uint32{0}},
			{Name: "b", Depender: shield, Slots: []uint32{0}},
		},
	}
	err := dependency.NewModel(newRegistry()).Initialize(cfg)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	assert.EqualError(t, merr.Errors[0], `dependency "a" is recorded twice`)
	assert.EqualError(t, merr.Errors[1], `dependencies "a" and "b" share depender variant "geometry:layout/if_basic/shielding/if_enabled"`)
}

func TestModelBuildErrors(t *testing.T) {
	cfg := &dependency.Config{
		Dependees: []dependency.DependeeRecord{
			{Slot: 0, Variant: basic},
			{Slot: 1, Variant: field},
		},
		Dependencies: []dependency.DependencyRecord{
			{Name: "unknown depender", Depender: notFound, Slots: []uint32{0}},
			{Name: "unresolved", Depender: shield, Slots: []uint32{0}, Logic: "and(0, 1)"},
			{Name: "fine", Depender: calib, Slots: []uint32{0, 1}, Logic: "or(0, 1)"},
		},
	}
	m := dependency.NewModel(newRegistry())
	err := m.Initialize(cfg)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)

	var unresolved *logic.UnresolvedSlotError
	assert.True(t, errors.As(merr.Errors[1], &unresolved))
	assert.False(t, m.IsInitialized())
	assert.Empty(t, m.Dependencies())
}

func TestModelNilConfig(t *testing.T) {
	assert.Error(t, dependency.NewModel(newRegistry()).Initialize(nil))
}

func TestModelDump(t *testing.T) {
	m, _, _ := initializedModel(t)
	var buf bytes.Buffer
	require.NoError(t, m.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, "dependency model")
	assert.Contains(t, out, "slot #2")
	assert.Contains(t, out, trigger)
	assert.Contains(t, out, "not [1..1] (valid)")
}
