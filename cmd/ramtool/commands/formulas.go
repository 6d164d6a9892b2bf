package commands

import (
	"github.com/panyam/ramtool/services"
	"github.com/spf13/cobra"
)

var formulasCmd = &cobra.Command{
	Use:   "formulas <rbd|availability>",
	Short: "Print the LaTeX equations behind a solve",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := services.ParseSolveKind(args[0])
		if err != nil {
			return err
		}
		scenario, err := loadScenario(cmd.InOrStdin())
		if err != nil {
			return err
		}
		fctx, err := newEngine().Formulas(cmd.Context(), kind, scenario)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), fctx)
		}
		printFormulas(cmd.OutOrStdout(), fctx)
		return nil
	},
}

func init() {
	AddCommand(formulasCmd)
}
