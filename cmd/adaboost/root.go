package main

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/adaboost/pkg/log"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "adaboost",
		Short:         "Discrete AdaBoost over a fixed pool of range classifiers",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return log.SetupLogger(level, format)
		},
	}

	root.PersistentFlags().String("log-level", "warn", "Minimum log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "Log output format (json, console)")

	root.AddCommand(newTrainCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newVersionCmd())
	return root
}
