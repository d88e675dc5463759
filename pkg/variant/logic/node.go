// Package logic implements the gate graph that decides whether a variant
// is enabled from the activation of its dependees.
package logic

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/formula"
)

// UnsetSlot marks a slot gate whose dependee slot was never assigned.
const UnsetSlot = formula.UnsetSlot

// Unbounded is the MaxPorts of gates accepting any number of inputs.
const Unbounded = math.MaxInt

// Owner supplies slot resolution and activation queries to the gates of a
// graph. Slot indices are local to the owner.
type Owner interface {
	// IsDependeeActive reports whether the dependee at slot is
	// currently active.
	IsDependeeActive(slot uint32) bool
	// ResolveDependee reports whether slot refers to a known
	// dependee.
	ResolveDependee(slot uint32) bool
}

// Node is a gate of a logic graph.
type Node interface {
	// GUID returns the name the gate kind is registered under.
	GUID() string
	MinPorts() int
	MaxPorts() int
	// IsValid reports whether the gate can be evaluated. It does not
	// descend into the inputs.
	IsValid() bool
	// Evaluate computes the gate. It panics with an
	// *InvalidEvaluationError if the gate is not valid.
	Evaluate() bool
	// Connect attaches child at port, replacing any previous input.
	Connect(port int, child Node)
	// Disconnect removes the input at port, if any.
	Disconnect(port int)
	// ConnectDependee connects a slot gate reading the dependee at
	// slot to port.
	ConnectDependee(port int, slot uint32) error
	// Input returns the gate connected at port, or nil.
	Input(port int) Node
	// Inputs returns the connected ports in ascending order.
	Inputs() []int
	Owner() Owner
}

// DependeeSetter is implemented by slot gates.
type DependeeSetter interface {
	SetDependeeSlot(slot uint32)
	DependeeSlot() uint32
}

// Base implements the port bookkeeping shared by all gates. Custom gate
// kinds embed a *Base and provide Evaluate.
type Base struct {
	guid     string
	min, max int
	owner    Owner
	factory  *Factory
	inputs   map[int]Node
}

// NewBase returns a Base for a gate kind named guid accepting between
// min and max inputs.
func NewBase(owner Owner, guid string, min, max int) *Base {
	return &Base{
		guid:   guid,
		min:    min,
		max:    max,
		owner:  owner,
		inputs: make(map[int]Node),
	}
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) GUID() string {
	return b.guid
}

func (b *Base) MinPorts() int {
	return b.min
}

func (b *Base) MaxPorts() int {
	return b.max
}

func (b *Base) Owner() Owner {
	return b.owner
}

// IsValid requires ports 0 to n-1 to be connected, n being the number of
// connected inputs, and n to lie within the arity bounds.
func (b *Base) IsValid() bool {
	if b.gap() >= 0 {
		return false
	}
	n := b.connected()
	return b.min <= n && n <= b.max
}

func (b *Base) connected() int {
	return len(b.inputs)
}

// gap returns the lowest port below the connected count that has no
// input, or -1.
func (b *Base) gap() int {
	n := b.connected()
	for i := 0; i < n; i++ {
		if _, ok := b.inputs[i]; !ok {
			return i
		}
	}
	return -1
}

func (b *Base) Connect(port int, child Node) {
	if port < 0 {
		panic(fmt.Sprintf("negative port %d on logic %q", port, b.guid))
	}
	if child == nil {
		b.Disconnect(port)
		return
	}
	if b.inputs == nil {
		b.inputs = make(map[int]Node)
	}
	b.inputs[port] = child
}

func (b *Base) Disconnect(port int) {
	delete(b.inputs, port)
}

func (b *Base) ConnectDependee(port int, slot uint32) error {
	var child Node
	if b.factory != nil {
		created, ok := b.factory.Create(SlotGUID, b.owner)
		if !ok {
			return &UnknownGateError{GUID: SlotGUID}
		}
		child = created
	} else {
		child = NewSlot(b.owner)
	}
	setter, ok := child.(DependeeSetter)
	if !ok {
		return errors.Errorf("logic %q registered as %q cannot hold a dependee slot", child.GUID(), SlotGUID)
	}
	setter.SetDependeeSlot(slot)
	b.Connect(port, child)
	return nil
}

func (b *Base) Input(port int) Node {
	return b.inputs[port]
}

func (b *Base) Inputs() []int {
	if len(b.inputs) == 0 {
		return nil
	}
	ports := make([]int, 0, len(b.inputs))
	for port := range b.inputs {
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}
