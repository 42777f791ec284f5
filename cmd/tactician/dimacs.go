package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/angr/angr-z3/pkg/sat"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var satBackends = map[string]func() sat.Solver{
	"gini":          sat.NewGiniSolver,
	"kissat":        sat.NewKissatSolver,
	"cadical":       sat.NewCadicalSolver,
	"cryptominisat": sat.NewCryptominisatSolver,
}

func newDimacsCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "dimacs <file.cnf>",
		Short: "Run a raw DIMACS instance through a SAT backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			build, ok := satBackends[backend]
			if !ok {
				return fmt.Errorf("unknown solver %q (have: %v)", backend, strings.Join(lo.Keys(satBackends), ", "))
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			cnf, err := sat.ParseDIMACS(file)
			if err != nil {
				return fmt.Errorf("cannot parse %v: %w", args[0], err)
			}
			log.Debugf("parsed %d variables, %d clauses", cnf.Variables, len(cnf.Clauses))

			solution, err := build().Solve(context.Background(), cnf)
			if err != nil {
				return err
			}
			if solution == nil {
				fmt.Println("s UNSATISFIABLE")
				return nil
			}
			fmt.Println("s SATISFIABLE")
			rendered := lo.Map(solution, func(literal int64, _ int) string { return fmt.Sprintf("%d", literal) })
			fmt.Printf("v %v 0\n", strings.Join(rendered, " "))
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "solver", "gini", "SAT backend: gini (in-process), kissat, cadical or cryptominisat (external binaries)")
	return cmd
}
