// Package commands implements the vdlogic subcommands.
package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/formula"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

// slotValues is an owner whose dependees are bare slots with fixed
// activations.
type slotValues map[uint32]bool

func (s slotValues) IsDependeeActive(slot uint32) bool {
	return s[slot]
}

func (s slotValues) ResolveDependee(slot uint32) bool {
	_, ok := s[slot]
	return ok
}

// inactive returns an owner resolving every slot of ast, all inactive.
func inactive(ast *formula.AST) slotValues {
	values := slotValues{}
	for _, slot := range ast.Slots() {
		values[slot] = false
	}
	return values
}

// parseAssignments decodes --set values of the form slot=bool.
func parseAssignments(set map[string]string) (slotValues, error) {
	values := slotValues{}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		slot, err := strconv.ParseUint(k, 10, 32)
		if err != nil || uint32(slot) == logic.UnsetSlot {
			return nil, errors.Errorf("invalid slot %q", k)
		}
		active, err := strconv.ParseBool(set[k])
		if err != nil {
			return nil, errors.Errorf("invalid activation %q for slot [#%d]", set[k], slot)
		}
		values[uint32(slot)] = active
	}
	return values, nil
}

// build parses expr and builds its logic against owner.
func build(expr string, owner func(*formula.AST) (logic.Owner, error)) (*formula.AST, logic.Node, error) {
	ast, err := formula.Parse(expr)
	metrics.EmitParse(err)
	if err != nil {
		return nil, nil, err
	}
	o, err := owner(ast)
	if err != nil {
		return nil, nil, err
	}
	root, err := logic.NewBuilder(logic.WithLogger(log.StandardLogger())).Build(ast, o)
	if err != nil {
		return nil, nil, err
	}
	return ast, root, nil
}

func freeOwner(ast *formula.AST) (logic.Owner, error) {
	return inactive(ast), nil
}

func formatSlots(slots []uint32) string {
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = fmt.Sprintf("[%d]", slot)
	}
	return strings.Join(parts, " ")
}
