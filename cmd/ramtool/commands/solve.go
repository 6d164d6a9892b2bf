package commands

import (
	"github.com/panyam/ramtool/services"
	"github.com/panyam/ramtool/solver"
	"github.com/spf13/cobra"
)

var solveCmd = &cobra.Command{
	Use:   "solve <rbd|availability>",
	Short: "Solve a scenario for reliability or availability",
	Long: `Solve a scenario and print its KPIs and warnings.

Examples:
  ramtool solve rbd -f plant.json
  ramtool solve availability --template redundant-pair
  ramtool solve rbd -f plant.json --json --server http://localhost:8080`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(services.SolveRbd), string(services.SolveAvailability)},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := services.ParseSolveKind(args[0])
		if err != nil {
			return err
		}
		scenario, err := loadScenario(cmd.InOrStdin())
		if err != nil {
			return err
		}
		resp, err := newEngine().Solve(cmd.Context(), kind, scenario)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return printJSON(out, resp)
		}
		switch r := resp.(type) {
		case *solver.SolveRbdResponse:
			printRbd(out, scenario, r)
		case *solver.SolveAvailabilityResponse:
			printAvailability(out, scenario, r)
		}
		return nil
	},
}

func init() {
	AddCommand(solveCmd)
}
