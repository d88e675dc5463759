package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic/circuit"
)

// NewCheckCmd returns a command validating a formula.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FORMULA",
		Short: "Check a dependency logic formula",
		Long: `The vdlogic check command parses a formula, builds its logic and
        prints the canonical formula, the slots it reads and the logic tree.
        It warns when no activation of the slots, or every one, enables the
        logic.

        $ vdlogic check "and(0, not([1]))"
        `,
		Args: cobra.ExactArgs(1),
		RunE: checkFunc,
	}
}

func checkFunc(cmd *cobra.Command, args []string) error {
	ast, root, err := build(args[0], freeOwner)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "formula: %s\n", ast.String())
	fmt.Fprintf(out, "slots:   %s\n", formatSlots(ast.Slots()))
	if err := logic.Dump(out, root); err != nil {
		return err
	}

	c, err := circuit.Compile(root)
	if err != nil {
		return err
	}
	if _, ok := c.Satisfiable(); !ok {
		fmt.Fprintln(out, "warning: no activation of the slots enables this logic")
	} else if _, ok := c.Tautology(); ok {
		fmt.Fprintln(out, "warning: every activation of the slots enables this logic")
	}
	return nil
}
