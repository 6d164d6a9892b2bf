package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a scenario for problems without solving it",
	Long: `The validate command lists everything that would make a solve fail:
missing rates, inconsistent k-of-n parameters and bad plot settings.
It exits non-zero when the scenario is invalid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenario, err := loadScenario(cmd.InOrStdin())
		if err != nil {
			return err
		}
		result, err := newEngine().Validate(scenario)
		if err != nil {
			return err
		}
		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else {
			printValidation(cmd.OutOrStdout(), result)
		}
		if !result.IsValid {
			return fmt.Errorf("scenario %q is invalid", scenario.Id)
		}
		return nil
	},
}

func init() {
	AddCommand(validateCmd)
}
