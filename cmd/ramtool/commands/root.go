package commands

import (
	"fmt"
	"os"

	"github.com/panyam/ramtool/config"
	"github.com/panyam/ramtool/core"
	"github.com/panyam/ramtool/logging"
	"github.com/spf13/cobra"
)

var (
	scenarioFile string
	templateName string
	serverURL    string
	jsonOutput   bool
	logLevel     string
)

// cfg is resolved once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ramtool",
	Short: "ramtool solves reliability block diagrams",
	Long: `ramtool computes reliability R(t) and availability A(t) for systems
modeled as series, parallel and k-out-of-n blocks of exponential components.

Scenarios are JSON files.  Commands solve locally unless --server (or
RAMTOOL_SERVER_URL) points at a running "ramtool serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			if loaded.LogLevel, err = logging.ParseLogLevel(logLevel); err != nil {
				return err
			}
		}
		if serverURL != "" {
			loaded.ServerURL = serverURL
		}
		logging.Setup(loaded.IsDev(), loaded.LogLevel)
		cfg = loaded
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if re, ok := core.AsRamError(err); ok {
			fmt.Fprintf(os.Stderr, "❌ %s\n", re.Message)
		} else {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioFile, "file", "f", "", "Path to a scenario JSON file ('-' for stdin)")
	rootCmd.PersistentFlags().StringVarP(&templateName, "template", "t", "", "Use a built-in template instead of a file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "ramtool server URL (default: RAMTOOL_SERVER_URL env var, else solve locally)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of a summary")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default: RAMTOOL_LOG_LEVEL env var or INFO)")
}

// AddCommand allows adding subcommands from other files.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
