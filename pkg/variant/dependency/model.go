package dependency

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xlab/treeprint"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

// Model holds the dependencies of a set of variants, built from a
// Config. It is not safe for concurrent use while being initialized or
// reset.
type Model struct {
	registry Registry
	opts     *options
	logger   logrus.FieldLogger

	dependees    map[uint32]string
	records      map[string]DependencyRecord
	dependencies map[string]*Dependency
	initialized  bool
}

func NewModel(registry Registry, opts ...Option) *Model {
	o := newOptions(opts)
	return &Model{
		registry: registry,
		opts:     o,
		logger:   o.logger,
	}
}

func (m *Model) IsInitialized() bool {
	return m.initialized
}

// Initialize loads the records of cfg and builds and locks one dependency
// per dependency record. All record errors are reported together; on
// error the model is left uninitialized.
func (m *Model) Initialize(cfg *Config) error {
	if m.initialized {
		return errors.New("dependency model is already initialized")
	}
	if cfg == nil {
		return errors.New("no dependency model configuration")
	}

	var result *multierror.Error
	dependees := make(map[uint32]string, len(cfg.Dependees))
	paths := make(map[string]uint32, len(cfg.Dependees))
	for _, r := range cfg.Dependees {
		switch {
		case r.Variant == "":
			result = multierror.Append(result, errors.Errorf("dependee slot [#%d] has no variant", r.Slot))
		case r.Slot == logic.UnsetSlot:
			result = multierror.Append(result, errors.Errorf("dependee variant %q has an invalid slot", r.Variant))
		default:
			if existing, ok := dependees[r.Slot]; ok {
				result = multierror.Append(result, errors.Errorf("dependee slot [#%d] is used by both %q and %q", r.Slot, existing, r.Variant))
				continue
			}
			if slot, ok := paths[r.Variant]; ok {
				result = multierror.Append(result, errors.Errorf("dependee variant %q is recorded at slots [#%d] and [#%d]", r.Variant, slot, r.Slot))
				continue
			}
			dependees[r.Slot] = r.Variant
			paths[r.Variant] = r.Slot
		}
	}

	records := make(map[string]DependencyRecord, len(cfg.Dependencies))
	dependers := make(map[string]string, len(cfg.Dependencies))
	for _, r := range cfg.Dependencies {
		if err := checkRecord(r, dependees); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if _, ok := records[r.Name]; ok {
			result = multierror.Append(result, errors.Errorf("dependency %q is recorded twice", r.Name))
			continue
		}
		if name, ok := dependers[r.Depender]; ok {
			result = multierror.Append(result, errors.Errorf("dependencies %q and %q share depender variant %q", name, r.Name, r.Depender))
			continue
		}
		records[r.Name] = r
		dependers[r.Depender] = r.Name
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	dependencies := make(map[string]*Dependency, len(records))
	for _, name := range names {
		d, err := m.build(records[name], dependees)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "dependency %q", name))
			continue
		}
		dependencies[d.Depender()] = d
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	m.dependees = dependees
	m.records = records
	m.dependencies = dependencies
	m.initialized = true
	m.logger.WithField("dependencies", len(dependencies)).Debug("dependency model initialized")
	return nil
}

func checkRecord(r DependencyRecord, dependees map[uint32]string) error {
	if r.Name == "" {
		return errors.Errorf("dependency of variant %q has no name", r.Depender)
	}
	if r.Depender == "" {
		return errors.Errorf("dependency %q has no depender variant", r.Name)
	}
	if len(r.Slots) == 0 {
		return errors.Errorf("dependency %q has no input slot", r.Name)
	}
	for _, slot := range r.Slots {
		if _, ok := dependees[slot]; !ok {
			return errors.Errorf("dependency %q uses slot [#%d] which holds no dependee", r.Name, slot)
		}
	}
	if r.Logging != "" {
		if _, err := logrus.ParseLevel(r.Logging); err != nil {
			return errors.Wrapf(err, "dependency %q", r.Name)
		}
	}
	return nil
}

func (m *Model) build(r DependencyRecord, dependees map[uint32]string) (*Dependency, error) {
	logger := m.logger.WithField("dependency", r.Name)
	if r.Logging != "" {
		level, _ := logrus.ParseLevel(r.Logging)
		logger = leveled(m.logger, level).WithField("dependency", r.Name)
	}
	logger.WithField("depender", r.Depender).Debug("building dependency")

	d := New(m.registry, WithLogger(logger), WithFactory(m.opts.factory))
	if err := d.SetDepender(r.Depender); err != nil {
		return nil, err
	}
	for _, slot := range r.Slots {
		if _, err := d.AddDependee(dependees[slot], slot); err != nil {
			return nil, err
		}
	}
	if r.Logic != "" {
		if err := d.BuildLogicFromFormula(r.Logic); err != nil {
			return nil, err
		}
	}
	if err := d.Lock(); err != nil {
		return nil, err
	}
	return d, nil
}

// leveled returns a logger sharing the output of base at its own level.
// Loggers of unknown implementation are returned unchanged.
func leveled(base logrus.FieldLogger, level logrus.Level) logrus.FieldLogger {
	var parent *logrus.Logger
	switch l := base.(type) {
	case *logrus.Logger:
		parent = l
	case *logrus.Entry:
		parent = l.Logger
	default:
		return base
	}
	return &logrus.Logger{
		Out:          parent.Out,
		Hooks:        parent.Hooks,
		Formatter:    parent.Formatter,
		ReportCaller: parent.ReportCaller,
		Level:        level,
		ExitFunc:     parent.ExitFunc,
	}
}

// Reset drops all records and dependencies.
func (m *Model) Reset() {
	m.dependees = nil
	m.records = nil
	m.dependencies = nil
	m.initialized = false
}

// Dependency returns the dependency of the depender variant at path.
func (m *Model) Dependency(path string) (*Dependency, bool) {
	d, ok := m.dependencies[path]
	return d, ok
}

// Dependencies returns the depender variant paths, sorted.
func (m *Model) Dependencies() []string {
	paths := make([]string, 0, len(m.dependencies))
	for path := range m.dependencies {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// DependersOf returns the depender variants whose dependency reads the
// variant at path, sorted.
func (m *Model) DependersOf(path string) []string {
	var dependers []string
	for depender, d := range m.dependencies {
		for _, slot := range d.DependeeSlots() {
			if dependee, _ := d.Dependee(slot); dependee == path {
				dependers = append(dependers, depender)
				break
			}
		}
	}
	sort.Strings(dependers)
	return dependers
}

// IsEnabled evaluates the dependency of the variant at path. A variant
// without dependency is enabled.
func (m *Model) IsEnabled(path string) (bool, error) {
	if !m.initialized {
		return false, errors.New("dependency model is not initialized")
	}
	d, ok := m.dependencies[path]
	if !ok {
		return true, nil
	}
	return d.Evaluate()
}

// Tree renders every dependency of the model.
func (m *Model) Tree() treeprint.Tree {
	tree := treeprint.NewWithRoot("dependency model")
	tree.AddMetaNode("initialized", fmt.Sprintf("%t", m.initialized))
	dependees := tree.AddBranch("dependees")
	slots := make([]uint32, 0, len(m.dependees))
	for slot := range m.dependees {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	for _, slot := range slots {
		dependees.AddMetaNode(fmt.Sprintf("slot #%d", slot), m.dependees[slot])
	}
	dependencies := tree.AddBranch("dependencies")
	for _, path := range m.Dependencies() {
		m.dependencies[path].addTo(dependencies.AddBranch(path))
	}
	return tree
}

func (m *Model) Dump(w io.Writer) error {
	_, err := io.WriteString(w, m.Tree().String())
	return err
}
