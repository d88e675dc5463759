package logic

// GUIDs of the built-in gate kinds.
const (
	SlotGUID = "slot"
	NotGUID  = "not"
	AndGUID  = "and"
	OrGUID   = "or"
	XorGUID  = "xor"
)

// SlotGate reads the activation of one dependee of its owner.
type SlotGate struct {
	*Base
	slot uint32
}

var _ DependeeSetter = &SlotGate{}

func NewSlot(owner Owner) *SlotGate {
	return &SlotGate{
		Base: NewBase(owner, SlotGUID, 0, 0),
		slot: UnsetSlot,
	}
}

func (g *SlotGate) SetDependeeSlot(slot uint32) {
	g.slot = slot
}

func (g *SlotGate) DependeeSlot() uint32 {
	return g.slot
}

// IsValid requires the dependee slot to be set and known to the owner.
func (g *SlotGate) IsValid() bool {
	if !g.Base.IsValid() {
		return false
	}
	if g.slot == UnsetSlot || g.owner == nil {
		return false
	}
	return g.owner.ResolveDependee(g.slot)
}

func (g *SlotGate) Evaluate() bool {
	MustBeValid(g)
	return g.owner.IsDependeeActive(g.slot)
}

// NotGate negates its single input.
type NotGate struct {
	*Base
}

func NewNot(owner Owner) *NotGate {
	return &NotGate{Base: NewBase(owner, NotGUID, 1, 1)}
}

func (g *NotGate) Evaluate() bool {
	MustBeValid(g)
	return !g.inputs[0].Evaluate()
}

// AndGate is true when all of its inputs are. Inputs are evaluated in
// port order and evaluation stops at the first false one.
type AndGate struct {
	*Base
}

func NewAnd(owner Owner) *AndGate {
	return &AndGate{Base: NewBase(owner, AndGUID, 2, Unbounded)}
}

func (g *AndGate) Evaluate() bool {
	MustBeValid(g)
	for port := 0; port < len(g.inputs); port++ {
		if !g.inputs[port].Evaluate() {
			return false
		}
	}
	return true
}

// OrGate is true when any of its inputs is. Inputs are evaluated in port
// order and evaluation stops at the first true one.
type OrGate struct {
	*Base
}

func NewOr(owner Owner) *OrGate {
	return &OrGate{Base: NewBase(owner, OrGUID, 2, Unbounded)}
}

func (g *OrGate) Evaluate() bool {
	MustBeValid(g)
	for port := 0; port < len(g.inputs); port++ {
		if g.inputs[port].Evaluate() {
			return true
		}
	}
	return false
}

// XorGate is true when an odd number of its inputs are true. All inputs
// are evaluated.
type XorGate struct {
	*Base
}

func NewXor(owner Owner) *XorGate {
	return &XorGate{Base: NewBase(owner, XorGUID, 2, Unbounded)}
}

func (g *XorGate) Evaluate() bool {
	MustBeValid(g)
	odd := false
	for port := 0; port < len(g.inputs); port++ {
		if g.inputs[port].Evaluate() {
			odd = !odd
		}
	}
	return odd
}
