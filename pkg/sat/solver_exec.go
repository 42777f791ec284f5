package sat

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// execSolver shells out to a DIMACS-speaking solver binary. All the supported
// binaries read the instance on standard input and report through the
// conventional exit codes: 10 for satisfiable, 20 for unsatisfiable.
type execSolver struct {
	path string
	args []string
}

// NewKissatSolver returns a backend running the kissat binary found on PATH.
func NewKissatSolver() Solver {
	return &execSolver{path: "kissat", args: []string{"-q", "--relaxed"}}
}

// NewCadicalSolver returns a backend running the cadical binary found on PATH.
func NewCadicalSolver() Solver {
	return &execSolver{path: "cadical", args: []string{"-q"}}
}

// NewCryptominisatSolver returns a backend running the cryptominisat binary
// found on PATH.
func NewCryptominisatSolver() Solver {
	return &execSolver{path: "cryptominisat", args: []string{"--verb", "0"}}
}

func (solver *execSolver) Solve(ctx context.Context, cnf CNF) (Solution, error) {
	dimacs := cnf.ToDIMACS() // Transform the CNF into DIMACS string format

	cmd := exec.CommandContext(ctx, solver.path, solver.args...)
	cmd.Stdin = strings.NewReader(dimacs) // Feed dimacs into the solver's standard input

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	// Exit-code of 10 stands for satisfiable and exit-code 20 stands for unsatisfiable
	if err != nil && cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		return nil, fmt.Errorf("an error occurred during %v execution: %v : %v", solver.path, err.Error(), stderr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		return nil, nil
	}

	return parseSolution(stdOut.String()), nil
}

// parseSolution extracts the assignment from the v-lines of a solver's
// standard output.
func parseSolution(solverOutput string) Solution {
	values := lo.Map(
		lo.Reduce(
			lo.Filter(strings.Split(solverOutput, "\n"), func(line string, _ int) bool {
				return len(line) > 0 && line[0] == 'v'
			}),
			func(values []string, line string, _ int) []string {
				return append(values, strings.Split(line[2:], " ")...)
			},
			[]string{},
		),
		func(valueStr string, _ int) int64 {
			value, err := strconv.ParseInt(valueStr, 10, 64)
			if err != nil && valueStr != "" {
				log.Panicf("invalid literal in solver output: %v", err)
			}
			return value
		},
	)
	if len(values) == 0 {
		return nil
	}
	return values[:len(values)-1] // Drop the terminating 0
}
