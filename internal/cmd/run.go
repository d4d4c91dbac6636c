package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/askiada/go-teambalance/internal/balance"
	"github.com/askiada/go-teambalance/internal/config"
	"github.com/askiada/go-teambalance/internal/logging"
	"github.com/askiada/go-teambalance/internal/metrics"
	"github.com/askiada/go-teambalance/internal/report"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Search the most even partition of a roster",
		Example: `  teambalance run --variant four --input rankings.csv
  teambalance run --variant three --input rankings.csv --workers 8 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, v)
		},
	}

	flags := runCmd.Flags()
	flags.String("variant", "", "built-in variant (four, three)")
	flags.StringP("input", "i", "", "CSV file of rankings, one column per person")
	flags.Int("workers", 0, "number of goroutines scoring teams and partitions")
	flags.Duration("timeout", 0, "abort the run after this duration")
	flags.Float64("z-threshold", 0, "mask scores further than this many standard deviations from the column mean")
	flags.String("format", "", "report format (text, yaml, json)")
	flags.String("metrics-file", "", "write run metrics to this prometheus textfile")
	flags.String("graph-dir", "", "write a DOT graph of every pipeline in this directory")

	for key, name := range map[string]string{
		"variant":              "variant",
		"input":                "input",
		"search.workers":       "workers",
		"search.timeout":       "timeout",
		"outliers.z_threshold": "z-threshold",
		"report.format":        "format",
		"metrics.textfile":     "metrics-file",
		"graph.dir":            "graph-dir",
	} {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return runCmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		err := config.ReadFile(v, cfgFile)
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return errors.Wrap(err, "unable to create logger")
	}
	defer logger.Sync() //nolint:errcheck

	runner := &balance.Runner{Logger: logger, Recorder: metrics.NewRecorder()}

	out, err := runner.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), report.New(out), cfg.Report.Format, cfg.Report.ShowAcceptedCount)
}
