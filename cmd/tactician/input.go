package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/mitchellh/mapstructure"
)

// TermSpec is the JSON shape of one term node. Op selects the constructor;
// leaves carry their payload in Var, Int or Bool, everything else nests
// through Args.
type TermSpec struct {
	Op   string
	Var  string
	Int  *int64
	Bool *bool
	Args []TermSpec
}

type GoalInput struct {
	Assertions []TermSpec
}

// GoalFromJSON reads a goal description file and builds its assertions.
func GoalFromJSON(file string) ([]logic.Term, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var inputJSON map[string]any
	if err := json.Unmarshal(raw, &inputJSON); err != nil {
		return nil, err
	}

	var input GoalInput
	if err := mapstructure.Decode(inputJSON, &input); err != nil {
		return nil, err
	}

	assertions := make([]logic.Term, 0, len(input.Assertions))
	for i, spec := range input.Assertions {
		term, err := buildTerm(spec)
		if err != nil {
			return nil, fmt.Errorf("assertion %d: %w", i, err)
		}
		assertions = append(assertions, term)
	}
	return assertions, nil
}

func buildTerm(spec TermSpec) (logic.Term, error) {
	args := make([]logic.Term, 0, len(spec.Args))
	for _, argSpec := range spec.Args {
		arg, err := buildTerm(argSpec)
		if err != nil {
			return logic.Term{}, err
		}
		args = append(args, arg)
	}

	unary := func(build func(logic.Term) logic.Term) (logic.Term, error) {
		if len(args) != 1 {
			return logic.Term{}, fmt.Errorf("%q takes exactly one argument", spec.Op)
		}
		return build(args[0]), nil
	}
	binary := func(build func(logic.Term, logic.Term) logic.Term) (logic.Term, error) {
		if len(args) != 2 {
			return logic.Term{}, fmt.Errorf("%q takes exactly two arguments", spec.Op)
		}
		return build(args[0], args[1]), nil
	}

	switch spec.Op {
	case "var":
		if spec.Var == "" {
			return logic.Term{}, fmt.Errorf("var node without a name")
		}
		return logic.Var(spec.Var), nil
	case "int":
		if spec.Int == nil {
			return logic.Term{}, fmt.Errorf("int node without a value")
		}
		return logic.Int(*spec.Int), nil
	case "bool":
		if spec.Bool == nil {
			return logic.Term{}, fmt.Errorf("bool node without a value")
		}
		return logic.Bool(*spec.Bool), nil
	case "+":
		return logic.Add(args...), nil
	case "*":
		return logic.Mul(args...), nil
	case "neg":
		return unary(logic.Neg)
	case "<":
		return binary(logic.Lt)
	case "<=":
		return binary(logic.Le)
	case "=":
		return binary(logic.Eq)
	case ">=":
		return binary(logic.Ge)
	case ">":
		return binary(logic.Gt)
	case "and":
		return logic.And(args...), nil
	case "or":
		return logic.Or(args...), nil
	case "not":
		return unary(logic.Not)
	}
	return logic.Term{}, fmt.Errorf("unknown operator %q", spec.Op)
}
