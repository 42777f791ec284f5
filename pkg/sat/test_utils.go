package sat

import "math/rand"

// GenerateCNF builds a random instance for solver tests.
func GenerateCNF(variables uint64, clauses int) CNF {
	cnf := CNF{
		Variables: variables,
		Clauses:   make([][]int64, clauses),
	}

	for i := 0; i < clauses; i++ {
		cnf.Clauses[i] = make([]int64, 0, variables)
		for j := uint64(0); j < variables; j++ {
			if rand.Float32() < 0.5 {
				var sign int64 = 1
				if rand.Float32() < 0.5 {
					sign = -1
				}
				cnf.Clauses[i] = append(cnf.Clauses[i], sign*(1+int64(j)))
			}
		}

		if len(cnf.Clauses[i]) == 0 {
			var sign int64 = 1
			if rand.Float32() < 0.5 {
				sign = -1
			}
			cnf.Clauses[i] = append(cnf.Clauses[i], sign*(1+rand.Int63n(int64(variables))))
		}
	}

	return cnf
}

// CheckSolution verifies that a solution is consistent and satisfies every
// clause of the instance.
func CheckSolution(cnf CNF, solution Solution) bool {
	// Make sure there are no duplicates nor contradictions
	literals := make(map[int64]bool)
	for _, literal := range solution {
		if literals[literal] || literals[-literal] {
			return false
		}
		literals[literal] = true
	}

	// Check that all clauses are satisfied
	for _, clause := range cnf.Clauses {
		satisfied := false
		for _, literal := range clause {
			if literals[literal] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}

	return true
}
