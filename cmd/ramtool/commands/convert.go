package commands

import (
	"github.com/panyam/ramtool/core"
	"github.com/spf13/cobra"
)

var (
	convLambda float64
	convMTBF   float64
	convMTTR   float64
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between MTBF and lambda, and derive A from MTTR",
	Long: `Convert a failure rate to MTBF (or back) and, when --mttr is given, the
steady-state availability MTBF/(MTBF+MTTR).  lambda wins when both are set.

Example:
  ramtool convert --mtbf 1000 --mttr 8`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &core.ConvertRequest{}
		if cmd.Flags().Changed("lambda") {
			req.Lambda = core.Ptr(convLambda)
		}
		if cmd.Flags().Changed("mtbf") {
			req.MTBF = core.Ptr(convMTBF)
		}
		if cmd.Flags().Changed("mttr") {
			req.MTTR = core.Ptr(convMTTR)
		}
		resp, err := newEngine().Convert(req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), resp)
		}
		printConvert(cmd.OutOrStdout(), resp)
		return nil
	},
}

func init() {
	convertCmd.Flags().Float64Var(&convLambda, "lambda", 0, "Failure rate (1/h)")
	convertCmd.Flags().Float64Var(&convMTBF, "mtbf", 0, "Mean time between failures (h)")
	convertCmd.Flags().Float64Var(&convMTTR, "mttr", 0, "Mean time to repair (h)")
	AddCommand(convertCmd)
}
