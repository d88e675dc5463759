package commands

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/formula"
	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic"
)

// NewEvalCmd returns a command evaluating a formula for given slot
// activations.
func NewEvalCmd() *cobra.Command {
	var set map[string]string

	cmd := &cobra.Command{
		Use:   "eval FORMULA",
		Short: "Evaluate a dependency logic formula",
		Long: `The vdlogic eval command evaluates a formula with the slot
        activations given by --set. Every slot read by the formula needs a
        value.

        $ vdlogic eval "or(0, xor(1, 2))" --set 0=false --set 1=true --set 2=false
        `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseAssignments(set)
			if err != nil {
				return err
			}
			_, root, err := build(args[0], func(ast *formula.AST) (logic.Owner, error) {
				for _, slot := range ast.Slots() {
					if _, ok := values[slot]; !ok {
						return nil, errors.Errorf("no activation given for slot [#%d]", slot)
					}
				}
				return values, nil
			})
			if err != nil {
				return err
			}
			result := logic.EvaluateRoot(root)
			metrics.EmitEvaluation(result)
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringToStringVar(&set, "set", nil, "slot activation as SLOT=BOOL, repeatable")
	return cmd
}
