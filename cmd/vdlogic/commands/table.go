package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/BxCppDev/Bayeux-sub017/pkg/variant/logic/circuit"
)

var (
	trueColor  = color.New(color.FgGreen, color.Bold)
	falseColor = color.New(color.FgRed)
)

// NewTableCmd returns a command printing the truth table of a formula.
func NewTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table FORMULA",
		Short: "Print the truth table of a dependency logic formula",
		Long: `The vdlogic table command prints one row per activation of the
        slots read by a formula, slots in ascending order.

        $ vdlogic table "xor(0, 1, 2)"
        `,
		Args: cobra.ExactArgs(1),
		RunE: tableFunc,
	}
}

func tableFunc(cmd *cobra.Command, args []string) error {
	ast, root, err := build(args[0], freeOwner)
	if err != nil {
		return err
	}
	c, err := circuit.Compile(root)
	if err != nil {
		return err
	}
	rows, err := c.TruthTable()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header := make([]string, 0, len(c.Inputs())+1)
	for _, slot := range c.Inputs() {
		header = append(header, fmt.Sprintf("[%d]", slot))
	}
	header = append(header, ast.String())
	fmt.Fprintln(out, strings.Join(header, "\t"))
	for _, row := range rows {
		cells := make([]string, 0, len(row.States)+1)
		for _, s := range row.States {
			cells = append(cells, bit(s))
		}
		cells = append(cells, bit(row.Value))
		fmt.Fprintln(out, strings.Join(cells, "\t"))
	}
	return nil
}

func bit(v bool) string {
	if v {
		return trueColor.Sprint("1")
	}
	return falseColor.Sprint("0")
}
