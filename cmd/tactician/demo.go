package main

import (
	"context"
	"fmt"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/angr/angr-z3/pkg/solver"
	"github.com/angr/angr-z3/pkg/tactic"
	"github.com/spf13/cobra"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a few worked examples",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			x, y := logic.Var("x"), logic.Var("y")

			// Equation elimination: x disappears and is reconstructed from
			// the model of the residual goal.
			goal := tactic.NewGoal(
				logic.Gt(x, logic.Int(0)),
				logic.Gt(y, logic.Int(0)),
				logic.Eq(x, logic.Add(y, logic.Int(2))),
			)
			fmt.Printf("goal: %v\n", goal)
			pipeline := tactic.AndThen(tactic.NewSimplify(), tactic.NewSolveEqs())
			res := pipeline.Apply(ctx, goal)
			for i, subgoal := range res.Subgoals() {
				fmt.Printf("  subgoal %d: %v\n", i, subgoal)
			}
			model := res.ConvertModel(0, logic.Model{"y": logic.IntVal(3)})
			fmt.Printf("  model from y=3: x=%v\n", model["x"])

			// Case splitting.
			split := tactic.NewGoal(
				logic.Or(logic.Lt(x, logic.Int(0)), logic.Gt(x, logic.Int(0))),
				logic.Eq(x, logic.Add(y, logic.Int(1))),
				logic.Lt(y, logic.Int(0)),
			)
			fmt.Printf("goal: %v\n", split)
			res = tactic.NewSplitOr().Apply(ctx, split)
			for i, subgoal := range res.Subgoals() {
				fmt.Printf("  case %d: %v\n", i, subgoal)
			}

			// Probe-driven selection and the incremental interface.
			p, q := logic.Var("p"), logic.Var("q")
			s := solver.New(tactic.When(tactic.IsPropositional(), tactic.Default()))
			s.Add(logic.Or(p, q), logic.Not(p))
			status, err := s.Check(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("propositional goal: %v\n", status)
			if status == solver.Sat {
				m, _ := s.Model()
				fmt.Printf("  p=%v q=%v\n", m["p"], m["q"])
			}

			s.Push()
			s.Add(logic.Not(q))
			status, err = s.Check(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("after asserting (not q): %v\n", status)
			if err := s.Pop(); err != nil {
				return err
			}
			status, err = s.Check(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("after pop: %v\n", status)
			return nil
		},
	}
}
