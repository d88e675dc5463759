package logic

import (
	"fmt"
	"strings"
)

// ArityError reports a gate whose number of connected inputs lies outside
// the bounds of its kind.
type ArityError struct {
	GUID     string
	Ports    int
	Min, Max int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("logic %q has %d connected input(s), expected %s", e.GUID, e.Ports, arity(e.Min, e.Max))
}

func arity(min, max int) string {
	switch {
	case min == max:
		return fmt.Sprintf("exactly %d", min)
	case max == Unbounded:
		return fmt.Sprintf("at least %d", min)
	}
	return fmt.Sprintf("between %d and %d", min, max)
}

// PortGapError reports an unconnected port below the connected count.
type PortGapError struct {
	GUID string
	Port int
}

func (e *PortGapError) Error() string {
	return fmt.Sprintf("logic %q has no input connected at port [#%d]", e.GUID, e.Port)
}

// UnresolvedSlotError reports a slot gate that is unset or does not refer
// to a dependee of its owner.
type UnresolvedSlotError struct {
	Slot uint32
}

func (e *UnresolvedSlotError) Error() string {
	if e.Slot == UnsetSlot {
		return "dependee slot is not set"
	}
	return fmt.Sprintf("no dependee at slot [#%d]", e.Slot)
}

// UnknownGateError reports a gate kind missing from the factory.
type UnknownGateError struct {
	GUID string
}

func (e *UnknownGateError) Error() string {
	return fmt.Sprintf("no logic with GUID %q", e.GUID)
}

// CycleError reports a gate reachable from one of its own inputs.
type CycleError struct {
	GUID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("logic %q is part of a cycle", e.GUID)
}

// InvalidLogicError is reported for custom gates that are not valid for
// reasons Validate cannot tell.
type InvalidLogicError struct {
	GUID string
}

func (e *InvalidLogicError) Error() string {
	return fmt.Sprintf("logic %q is not valid", e.GUID)
}

// BuildError locates a validation failure in a graph. Path lists the
// ports followed from the root; it is empty for the root itself.
type BuildError struct {
	GUID string
	Path []int
	Err  error
}

// Port returns the port of the offending gate in its parent, or -1 for
// the root.
func (e *BuildError) Port() int {
	if len(e.Path) == 0 {
		return -1
	}
	return e.Path[len(e.Path)-1]
}

func (e *BuildError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("invalid root logic %q: %v", e.GUID, e.Err)
	}
	ports := make([]string, len(e.Path))
	for i, port := range e.Path {
		ports[i] = fmt.Sprintf("%d", port)
	}
	return fmt.Sprintf("invalid logic %q at port path [%s]: %v", e.GUID, strings.Join(ports, "/"), e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// InvalidEvaluationError is the panic value raised when an invalid gate
// is evaluated.
type InvalidEvaluationError struct {
	GUID string
}

func (e *InvalidEvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate invalid logic %q", e.GUID)
}
