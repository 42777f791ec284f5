// Package sat provides the CNF representation and the pluggable SAT backends
// used by the bit-blasting and sat leaf tactics.
package sat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Solution lists one literal per assigned variable: v when the variable is
// true, -v when false. A nil solution means unsatisfiable.
type Solution []int64

// CNF is a propositional formula in conjunctive normal form. Literals follow
// the DIMACS convention: variable v is the literal v, its negation -v.
type CNF struct {
	Variables uint64
	Clauses   [][]int64
}

func (c CNF) ToDIMACS() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "p cnf %d %d\n", c.Variables, len(c.Clauses))
	for _, clause := range c.Clauses {
		for _, literal := range clause {
			fmt.Fprintf(&builder, "%d ", literal)
		}
		builder.WriteString("0\n")
	}
	return builder.String()
}

// ParseDIMACS reads a CNF in the DIMACS format. Comment lines may appear
// anywhere and the problem line may be missing, in which case the variable
// count is taken from the largest literal seen.
func ParseDIMACS(r io.Reader) (CNF, error) {
	var cnf CNF
	var declaredClauses int
	var clause []int64
	sawProblem := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" { // Some benchmark suites attach a trailer after a lone %
			break
		}
		if line[0] == 'p' {
			if sawProblem {
				return CNF{}, errors.New("multiple problem lines")
			}
			sawProblem = true
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[1] != "cnf" {
				return CNF{}, fmt.Errorf("malformed problem line %q", line)
			}
			variables, err := strconv.ParseUint(fields[2], 10, 64)
			if err != nil {
				return CNF{}, fmt.Errorf("malformed variable count: %v", err)
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil || declaredClauses < 0 {
				return CNF{}, fmt.Errorf("malformed clause count in %q", line)
			}
			cnf.Variables = variables
			continue
		}
		for _, field := range strings.Fields(line) {
			literal, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return CNF{}, fmt.Errorf("invalid literal %q: %v", field, err)
			}
			if literal == 0 {
				cnf.Clauses = append(cnf.Clauses, clause)
				clause = nil
				continue
			}
			variable := literal
			if variable < 0 {
				variable = -variable
			}
			if uint64(variable) > cnf.Variables {
				if sawProblem {
					return CNF{}, fmt.Errorf("literal %d exceeds declared variable count %d", literal, cnf.Variables)
				}
				cnf.Variables = uint64(variable)
			}
			clause = append(clause, literal)
		}
	}
	if err := scanner.Err(); err != nil {
		return CNF{}, err
	}
	if len(clause) > 0 {
		cnf.Clauses = append(cnf.Clauses, clause)
	}
	if sawProblem && len(cnf.Clauses) != declaredClauses {
		return CNF{}, fmt.Errorf("problem line declares %d clauses, found %d", declaredClauses, len(cnf.Clauses))
	}
	return cnf, nil
}
