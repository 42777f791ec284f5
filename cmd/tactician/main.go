// Command tactician checks goals with configurable tactic pipelines: it
// loads assertions from a JSON description (or a raw DIMACS file), runs the
// selected tactic, and reports the outcome and model.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

func main() {
	root := &cobra.Command{
		Use:           "tactician",
		Short:         "Tactic-based goal solving",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	root.AddCommand(newSolveCommand(), newDimacsCommand(), newDemoCommand())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
