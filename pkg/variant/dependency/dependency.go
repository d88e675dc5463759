// Package dependency binds logic graphs to configuration variants: a
// depender variant is enabled when the logic over its dependee variants
// evaluates to true.
package dependency

import (
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xlab/treeprint"

	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

// NotLockedError is returned when a dependency is evaluated before it
// was locked.
type NotLockedError struct {
	Depender string
}

func (e *NotLockedError) Error() string {
	return fmt.Sprintf("dependency of variant %q is not locked", e.Depender)
}

var errLocked = errors.New("dependency is locked")

type options struct {
	logger  logrus.FieldLogger
	factory *logic.Factory
}

type Option func(*options)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithFactory sets the factory logic gates are created from.
func WithFactory(f *logic.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		o.logger = logger
	}
	if o.factory == nil {
		o.factory = logic.DefaultFactory()
	}
	return o
}

// Dependency owns the logic deciding whether its depender variant is
// enabled. Dependees are addressed by slot from the logic.
//
// A Dependency is configured, then locked; once locked it only answers
// queries. Evaluate may be called concurrently as long as the registry
// allows it.
type Dependency struct {
	registry  Registry
	factory   *logic.Factory
	logger    logrus.FieldLogger
	depender  string
	dependees map[uint32]string
	top       logic.Node
	locked    bool
}

var _ logic.Owner = &Dependency{}

func New(registry Registry, opts ...Option) *Dependency {
	o := newOptions(opts)
	return &Dependency{
		registry:  registry,
		factory:   o.factory,
		logger:    o.logger,
		dependees: make(map[uint32]string),
	}
}

// SetDepender sets the variant enabled by the dependency.
func (d *Dependency) SetDepender(path string) error {
	if d.locked {
		return errLocked
	}
	if path == "" {
		return errors.New("empty depender variant path")
	}
	if !d.registry.HasVariant(path) {
		return errors.Errorf("depender variant %q does not exist", path)
	}
	for _, dependee := range d.dependees {
		if dependee == path {
			return errors.Errorf("variant %q cannot depend on itself", path)
		}
	}
	d.depender = path
	d.logger = d.logger.WithField("depender", path)
	return nil
}

func (d *Dependency) Depender() string {
	return d.depender
}

func (d *Dependency) HasDepender() bool {
	return d.depender != ""
}

// AddDependee registers the variant at path in slot and returns the slot.
// Passing logic.UnsetSlot picks the next slot, that is the number of
// dependees registered so far.
func (d *Dependency) AddDependee(path string, slot uint32) (uint32, error) {
	if d.locked {
		return logic.UnsetSlot, errLocked
	}
	if path == "" {
		return logic.UnsetSlot, errors.New("empty dependee variant path")
	}
	if path == d.depender {
		return logic.UnsetSlot, errors.Errorf("variant %q cannot depend on itself", path)
	}
	if !d.registry.HasVariant(path) {
		return logic.UnsetSlot, errors.Errorf("dependee variant %q does not exist", path)
	}
	for s, dependee := range d.dependees {
		if dependee == path {
			return logic.UnsetSlot, errors.Errorf("dependee variant %q is already registered at slot [#%d]", path, s)
		}
	}
	if slot == logic.UnsetSlot {
		slot = uint32(len(d.dependees))
	}
	if existing, ok := d.dependees[slot]; ok {
		return logic.UnsetSlot, errors.Errorf("slot [#%d] is already used by dependee variant %q", slot, existing)
	}
	d.dependees[slot] = path
	d.logger.WithField("slot", slot).WithField("dependee", path).Debug("added dependee")
	return slot, nil
}

func (d *Dependency) HasDependee(slot uint32) bool {
	_, ok := d.dependees[slot]
	return ok
}

// Dependee returns the path of the dependee variant at slot.
func (d *Dependency) Dependee(slot uint32) (string, bool) {
	path, ok := d.dependees[slot]
	return path, ok
}

// DependeeSlots returns the used slots in ascending order.
func (d *Dependency) DependeeSlots() []uint32 {
	slots := make([]uint32, 0, len(d.dependees))
	for slot := range d.dependees {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	return slots
}

// ResolveDependee reports whether slot holds a dependee the registry
// knows about.
func (d *Dependency) ResolveDependee(slot uint32) bool {
	path, ok := d.dependees[slot]
	return ok && d.registry.HasVariant(path)
}

func (d *Dependency) IsDependeeActive(slot uint32) bool {
	path, ok := d.dependees[slot]
	return ok && d.registry.IsActiveVariant(path)
}

// BuildLogicFromFormula replaces the logic with the graph described by
// expr. Every slot referenced by expr must already hold a dependee.
func (d *Dependency) BuildLogicFromFormula(expr string) error {
	if d.locked {
		return errLocked
	}
	d.logger.WithField("formula", expr).Debug("building logic")
	root, err := logic.NewBuilder(logic.WithFactory(d.factory), logic.WithLogger(d.logger)).BuildFormula(expr, d)
	if err != nil {
		return errors.Wrapf(err, "cannot build logic from formula %q", expr)
	}
	d.top = root
	return nil
}

// CreateLogic installs a fresh gate of kind guid as the logic and returns
// it so that its inputs can be connected.
func (d *Dependency) CreateLogic(guid string) (logic.Node, error) {
	if d.locked {
		return nil, errLocked
	}
	n, ok := d.factory.Create(guid, d)
	if !ok {
		return nil, &logic.UnknownGateError{GUID: guid}
	}
	d.top = n
	return n, nil
}

// Logic returns the root of the logic graph, or nil.
func (d *Dependency) Logic() logic.Node {
	return d.top
}

// Lock checks the dependency, installs the default logic if none was
// given, and freezes the configuration. The default logic reads the
// single dependee, or ands all dependees in slot order.
func (d *Dependency) Lock() error {
	if d.locked {
		return nil
	}
	if d.depender == "" {
		return errors.New("dependency has no depender variant")
	}
	if len(d.dependees) == 0 {
		return errors.Errorf("dependency of variant %q has no dependee", d.depender)
	}
	if d.top == nil {
		if err := d.installDefaultLogic(); err != nil {
			return err
		}
	}
	if err := logic.Validate(d.top); err != nil {
		return errors.Wrapf(err, "invalid logic for variant %q", d.depender)
	}
	d.locked = true
	d.logger.Debug("locked")
	return nil
}

func (d *Dependency) installDefaultLogic() error {
	slots := d.DependeeSlots()
	guid := logic.AndGUID
	if len(slots) == 1 {
		guid = logic.SlotGUID
	}
	n, ok := d.factory.Create(guid, d)
	if !ok {
		return &logic.UnknownGateError{GUID: guid}
	}
	if len(slots) == 1 {
		setter, ok := n.(logic.DependeeSetter)
		if !ok {
			return errors.Errorf("logic %q registered as %q cannot hold a dependee slot", n.GUID(), logic.SlotGUID)
		}
		setter.SetDependeeSlot(slots[0])
	} else {
		for port, slot := range slots {
			if err := n.ConnectDependee(port, slot); err != nil {
				return err
			}
		}
	}
	d.logger.WithField("guid", guid).Debug("installed default logic")
	d.top = n
	return nil
}

func (d *Dependency) IsLocked() bool {
	return d.locked
}

// IsValid reports whether the dependency is locked and its whole logic
// graph can currently be evaluated.
func (d *Dependency) IsValid() bool {
	return d.locked && logic.Validate(d.top) == nil
}

// Evaluate reports whether the depender is enabled given the current
// activation of the dependees.
func (d *Dependency) Evaluate() (bool, error) {
	if !d.locked {
		return false, &NotLockedError{Depender: d.depender}
	}
	// dependees may have left the registry since Lock
	if err := logic.Validate(d.top); err != nil {
		return false, errors.Wrapf(err, "cannot evaluate dependency of variant %q", d.depender)
	}
	enabled := logic.EvaluateRoot(d.top)
	metrics.EmitEvaluation(enabled)
	return enabled, nil
}

// Tree renders the dependency, its dependees and its logic.
func (d *Dependency) Tree() treeprint.Tree {
	tree := treeprint.NewWithRoot("dependency")
	d.addTo(tree)
	return tree
}

func (d *Dependency) Dump(w io.Writer) error {
	_, err := io.WriteString(w, d.Tree().String())
	return err
}

func (d *Dependency) addTo(tree treeprint.Tree) {
	depender := d.depender
	if depender == "" {
		depender = "<none>"
	}
	tree.AddMetaNode("depender", depender)
	dependees := tree.AddBranch("dependees")
	for _, slot := range d.DependeeSlots() {
		dependees.AddMetaNode(fmt.Sprintf("slot #%d", slot), d.dependees[slot])
	}
	logic.AddTo(tree, "logic", d.top)
	tree.AddMetaNode("locked", fmt.Sprintf("%t", d.locked))
}
