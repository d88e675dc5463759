package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

type states map[uint32]bool

func (s states) IsDependeeActive(slot uint32) bool {
	return s[slot]
}

func (s states) ResolveDependee(slot uint32) bool {
	_, ok := s[slot]
	return ok
}

func TestCompileMatchesEvaluation(t *testing.T) {
	for _, formula := range []string{
		"0",
		"not(0)",
		"and(0, 1)",
		"and(0, not(0))",
		"or(0, xor(1, 2))",
		"xor(0, 1, 2)",
		"and(or(0, 1), not([2]), xor(0, 2))",
		"or(and(0, 1), and(1, 2), and(0, 2))",
	} {
		t.Run(formula, func(t *testing.T) {
			owner := states{0: false, 1: false, 2: false}
			root, err := logic.NewBuilder().BuildFormula(formula, owner)
			require.NoError(t, err)
			c, err := Compile(root)
			require.NoError(t, err)

			for mask := 0; mask < 8; mask++ {
				for i := uint32(0); i < 3; i++ {
					owner[i] = mask&(1<<i) != 0
				}
				assert.Equal(t, logic.EvaluateRoot(root), c.Eval(owner), "states %v", owner)
			}
		})
	}
}

func TestInputs(t *testing.T) {
	root, err := logic.NewBuilder().BuildFormula("or(7, and(2, 7), not(4))", states{2: true, 4: true, 7: true})
	require.NoError(t, err)
	c, err := Compile(root)
	require.NoError(t, err)
	assert.Equal(t, []uint32{2, 4, 7}, c.Inputs())
}

func TestTruthTable(t *testing.T) {
	root, err := logic.NewBuilder().BuildFormula("and(0, not(1))", states{0: true, 1: true})
	require.NoError(t, err)
	c, err := Compile(root)
	require.NoError(t, err)

	rows, err := c.TruthTable()
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{States: []bool{false, false}, Value: false},
		{States: []bool{false, true}, Value: false},
		{States: []bool{true, false}, Value: true},
		{States: []bool{true, true}, Value: false},
	}, rows)
}

func TestTruthTableTooManyInputs(t *testing.T) {
	owner := states{}
	and := logic.NewAnd(owner)
	for slot := uint32(0); slot <= MaxTableInputs; slot++ {
		owner[slot] = true
		require.NoError(t, and.ConnectDependee(int(slot), slot))
	}
	c, err := Compile(and)
	require.NoError(t, err)

	_, err = c.TruthTable()
	assert.EqualError(t, err, "circuit reads 17 dependee slots, at most 16 can be tabulated")
}

func TestSatisfiability(t *testing.T) {
	for _, tt := range []struct {
		Formula     string
		Satisfiable bool
		Tautology   bool
	}{
		{Formula: "and(0, 1)", Satisfiable: true},
		{Formula: "0", Satisfiable: true},
		{Formula: "and(0, not(0))"},
		{Formula: "or(0, not(0))", Satisfiable: true, Tautology: true},
		{Formula: "xor(0, 0)"},
		{Formula: "xor(0, not(0))", Satisfiable: true, Tautology: true},
	} {
		t.Run(tt.Formula, func(t *testing.T) {
			owner := states{0: false, 1: false}
			root, err := logic.NewBuilder().BuildFormula(tt.Formula, owner)
			require.NoError(t, err)
			c, err := Compile(root)
			require.NoError(t, err)

			witness, ok := c.Satisfiable()
			assert.Equal(t, tt.Satisfiable, ok)
			if ok {
				assert.True(t, c.Eval(witness), "witness %v", witness)
			}

			counter, ok := c.Tautology()
			assert.Equal(t, tt.Tautology, ok)
			if !ok {
				assert.False(t, c.Eval(counter), "counterexample %v", counter)
			}
		})
	}
}

type majority struct {
	*logic.Base
}

func (g *majority) Evaluate() bool {
	logic.MustBeValid(g)
	return false
}

func TestCompileRejects(t *testing.T) {
	owner := states{0: true, 1: true}

	custom := &majority{Base: logic.NewBase(owner, "majority", 2, 2)}
	require.NoError(t, custom.ConnectDependee(0, 0))
	require.NoError(t, custom.ConnectDependee(1, 1))
	_, err := Compile(custom)
	assert.EqualError(t, err, `logic "majority" cannot be compiled to a circuit`)

	and := logic.NewAnd(owner)
	require.NoError(t, and.ConnectDependee(0, 0))
	_, err = Compile(and)
	var arity *logic.ArityError
	assert.ErrorAs(t, err, &arity)
}
