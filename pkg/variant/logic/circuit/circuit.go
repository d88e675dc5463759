// Package circuit compiles logic graphs into and-inverter circuits so that
// they can be tabulated and checked for satisfiability.
package circuit

import (
	"fmt"
	"sort"

	"github.com/go-air/gini"
	ginilogic "github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

// MaxTableInputs bounds the number of dependee slots TruthTable accepts.
const MaxTableInputs = 16

const satisfiable = 1

// UnsupportedGateError reports a gate kind with no circuit encoding.
type UnsupportedGateError struct {
	GUID string
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("logic %q cannot be compiled to a circuit", e.GUID)
}

// TooManyInputsError is returned by TruthTable for circuits reading more
// than MaxTableInputs dependee slots.
type TooManyInputsError struct {
	Inputs int
}

func (e *TooManyInputsError) Error() string {
	return fmt.Sprintf("circuit reads %d dependee slots, at most %d can be tabulated", e.Inputs, MaxTableInputs)
}

// Circuit is the compiled form of a valid logic graph. Each dependee slot
// read by the graph becomes one circuit input.
type Circuit struct {
	c      *ginilogic.C
	root   z.Lit
	slots  []uint32
	inputs map[uint32]z.Lit
}

// Row is one line of a truth table. States holds the activation of the
// circuit inputs in the order of Inputs.
type Row struct {
	States []bool
	Value  bool
}

// Compile validates the graph rooted at root and encodes it. Only the
// built-in gate kinds can be compiled.
func Compile(root logic.Node) (*Circuit, error) {
	if err := logic.Validate(root); err != nil {
		return nil, err
	}
	cc := &compiler{
		circuit: &Circuit{
			c:      ginilogic.NewC(),
			inputs: make(map[uint32]z.Lit),
		},
		memo: make(map[logic.Node]z.Lit),
	}
	m, err := cc.lit(root)
	if err != nil {
		return nil, err
	}
	cc.circuit.root = m
	for slot := range cc.circuit.inputs {
		cc.circuit.slots = append(cc.circuit.slots, slot)
	}
	sort.Slice(cc.circuit.slots, func(i, j int) bool { return cc.circuit.slots[i] < cc.circuit.slots[j] })
	return cc.circuit, nil
}

type compiler struct {
	circuit *Circuit
	memo    map[logic.Node]z.Lit
}

func (cc *compiler) lit(n logic.Node) (z.Lit, error) {
	if m, ok := cc.memo[n]; ok {
		return m, nil
	}
	c := cc.circuit.c

	var m z.Lit
	switch n := n.(type) {
	case *logic.SlotGate:
		slot := n.DependeeSlot()
		in, ok := cc.circuit.inputs[slot]
		if !ok {
			in = c.Lit()
			cc.circuit.inputs[slot] = in
		}
		m = in
	case *logic.NotGate:
		in, err := cc.lit(n.Input(0))
		if err != nil {
			return z.LitNull, err
		}
		m = in.Not()
	case *logic.AndGate:
		ins, err := cc.lits(n)
		if err != nil {
			return z.LitNull, err
		}
		m = c.Ands(ins...)
	case *logic.OrGate:
		ins, err := cc.lits(n)
		if err != nil {
			return z.LitNull, err
		}
		m = c.Ors(ins...)
	case *logic.XorGate:
		ins, err := cc.lits(n)
		if err != nil {
			return z.LitNull, err
		}
		m = ins[0]
		for _, in := range ins[1:] {
			m = c.Xor(m, in)
		}
	default:
		return z.LitNull, &UnsupportedGateError{GUID: n.GUID()}
	}
	cc.memo[n] = m
	return m, nil
}

func (cc *compiler) lits(n logic.Node) ([]z.Lit, error) {
	var ins []z.Lit
	for _, port := range n.Inputs() {
		m, err := cc.lit(n.Input(port))
		if err != nil {
			return nil, err
		}
		ins = append(ins, m)
	}
	return ins, nil
}

// Inputs returns the dependee slots read by the circuit, sorted.
func (c *Circuit) Inputs() []uint32 {
	return append([]uint32(nil), c.slots...)
}

// Eval computes the circuit output. Slots missing from states are taken
// as inactive.
func (c *Circuit) Eval(states map[uint32]bool) bool {
	vs := make([]bool, c.c.Len())
	for slot, m := range c.inputs {
		vs[m.Var()] = states[slot]
	}
	c.c.Eval(vs)
	v := vs[c.root.Var()]
	if !c.root.IsPos() {
		v = !v
	}
	return v
}

// TruthTable evaluates the circuit for every combination of its inputs.
// Rows are ordered as binary counting with the first input as the most
// significant bit.
func (c *Circuit) TruthTable() ([]Row, error) {
	n := len(c.slots)
	if n > MaxTableInputs {
		return nil, &TooManyInputsError{Inputs: n}
	}
	rows := make([]Row, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		states := make([]bool, n)
		assignment := make(map[uint32]bool, n)
		for i, slot := range c.slots {
			states[i] = mask&(1<<(n-1-i)) != 0
			assignment[slot] = states[i]
		}
		rows = append(rows, Row{States: states, Value: c.Eval(assignment)})
	}
	return rows, nil
}

// Satisfiable reports whether some activation of the inputs enables the
// circuit, and returns one such activation.
func (c *Circuit) Satisfiable() (map[uint32]bool, bool) {
	return c.solve(c.root)
}

// Tautology reports whether every activation of the inputs enables the
// circuit. Otherwise it returns an activation that does not.
func (c *Circuit) Tautology() (map[uint32]bool, bool) {
	counter, ok := c.solve(c.root.Not())
	return counter, !ok
}

func (c *Circuit) solve(m z.Lit) (map[uint32]bool, bool) {
	g := gini.New()
	// inputs wired straight to the root appear in no clause
	for last := z.Var(c.c.Len() - 1); g.MaxVar() < last; {
		g.Lit()
	}
	c.c.ToCnf(g)
	g.Assume(m)
	if g.Solve() != satisfiable {
		return nil, false
	}
	witness := make(map[uint32]bool, len(c.inputs))
	for slot, in := range c.inputs {
		witness[slot] = g.Value(in)
	}
	return witness, true
}
