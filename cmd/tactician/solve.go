package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/angr/angr-z3/pkg/solver"
	"github.com/angr/angr-z3/pkg/tactic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newSolveCommand() *cobra.Command {
	var (
		tacticName string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "solve <goal.json>",
		Short: "Check a goal description with a tactic pipeline",
		Long: `Check a goal description with a tactic pipeline.

Available tactics: ` + strings.Join(tactic.TacticNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assertions, err := GoalFromJSON(args[0])
			if err != nil {
				return fmt.Errorf("cannot load goal: %w", err)
			}

			pipeline, err := tactic.Build(tacticName, nil)
			if err != nil {
				return err
			}
			if timeout > 0 {
				pipeline = tactic.TryFor(pipeline, timeout)
			}

			log.WithFields(logrus.Fields{
				"assertions": len(assertions),
				"tactic":     tacticName,
			}).Debug("checking goal")

			s := solver.New(pipeline)
			s.Add(assertions...)

			started := time.Now()
			status, err := s.Check(context.Background())
			if err != nil {
				return err
			}
			log.WithField("elapsed", time.Since(started)).Debug("check finished")

			fmt.Println(status)
			switch status {
			case solver.Sat:
				model, err := s.Model()
				if err != nil {
					return err
				}
				printModel(model)
			case solver.Unknown:
				if reason := s.Reason(); reason != "" {
					log.Warnf("unknown: %v", reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tacticName, "tactic", "default", "tactic pipeline to apply")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "time budget for the check (0 means none)")
	return cmd
}

func printModel(model logic.Model) {
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("%v = %v\n", name, model[name])
	}
}
