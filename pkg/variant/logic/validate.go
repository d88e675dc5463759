package logic

import "github.com/pkg/errors"

// Validate checks the graph rooted at root bottom-up and returns a
// *BuildError for the first invalid gate found: a gap in its ports, an
// arity violation, an unresolved slot, or a cycle.
func Validate(root Node) error {
	if root == nil {
		return errors.New("no logic to validate")
	}
	v := validator{state: make(map[Node]int)}
	return v.visit(root)
}

const (
	visiting = 1
	visited  = 2
)

// validator walks a graph depth first. path holds the ports followed
// from the root to the gate being visited.
type validator struct {
	state map[Node]int
	path  []int
}

func (v *validator) fail(n Node, err error) error {
	return &BuildError{GUID: n.GUID(), Path: append([]int(nil), v.path...), Err: err}
}

func (v *validator) visit(n Node) error {
	switch v.state[n] {
	case visiting:
		return v.fail(n, &CycleError{GUID: n.GUID()})
	case visited:
		return nil
	}
	v.state[n] = visiting

	for _, port := range n.Inputs() {
		v.path = append(v.path, port)
		err := v.visit(n.Input(port))
		v.path = v.path[:len(v.path)-1]
		if err != nil {
			return err
		}
	}
	v.state[n] = visited

	if err := check(n); err != nil {
		return v.fail(n, err)
	}
	return nil
}

// check explains why n alone is not valid, or returns nil.
func check(n Node) error {
	if b, ok := n.(baser); ok && b.base() != nil {
		if port := b.base().gap(); port >= 0 {
			return &PortGapError{GUID: n.GUID(), Port: port}
		}
	}
	ports := len(n.Inputs())
	if ports < n.MinPorts() || ports > n.MaxPorts() {
		return &ArityError{GUID: n.GUID(), Ports: ports, Min: n.MinPorts(), Max: n.MaxPorts()}
	}
	if s, ok := n.(DependeeSetter); ok && !n.IsValid() {
		return &UnresolvedSlotError{Slot: s.DependeeSlot()}
	}
	if !n.IsValid() {
		return &InvalidLogicError{GUID: n.GUID()}
	}
	return nil
}
