package commands

import (
	"github.com/panyam/ramtool/services"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates [name]",
	Short: "List built-in scenario templates, or print one as JSON",
	Long: `Without arguments, lists the built-in templates.  With a name, prints that
template's scenario as JSON so it can be saved and edited:

  ramtool templates two-of-three > voting.json
  ramtool solve rbd -f voting.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			tpl, err := services.GetTemplate(args[0])
			if err != nil {
				return err
			}
			return printJSON(out, tpl.Scenario)
		}
		templates := services.ListTemplates()
		if jsonOutput {
			return printJSON(out, templates)
		}
		printTemplates(out, templates)
		return nil
	},
}

func init() {
	AddCommand(templatesCmd)
}
