// Package cmd holds the teambalance command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/askiada/go-teambalance/internal/config"
)

// NewRootCmd builds the command tree. Every tree reads its own configuration.
func NewRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "teambalance",
		Short: "Split a roster into teams with the most even average scores",
		Long: `teambalance reads a table of rankings, scores every person and searches the
partition of the roster into equal-sized teams whose average scores are the most even.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))

	rootCmd.AddCommand(newRunCmd(v), newVariantsCmd())

	return rootCmd
}
