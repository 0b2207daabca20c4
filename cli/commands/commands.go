package commands

import (
	"os"

	"content-planner/infrastructure/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calctl",
		Short: "Look at and schedule publications on the content calendar.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// keep stdout for the calendar itself
			logger.SetOutput(os.Stderr)
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			} else {
				logger.SetLevel(logrus.WarnLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log backend calls to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addMonth(topLevel)
	addSchedule(topLevel)
	addToken(topLevel)
}
