package logic

import "fmt"

type Sort uint8

const (
	SortInt Sort = iota
	SortBool
)

func (s Sort) String() string {
	if s == SortBool {
		return "Bool"
	}
	return "Int"
}

// Value is an integer or boolean constant assigned to a variable by a model.
type Value struct {
	sort  Sort
	num   int64
	truth bool
}

func IntVal(value int64) Value { return Value{sort: SortInt, num: value} }
func BoolVal(truth bool) Value { return Value{sort: SortBool, truth: truth} }

func (v Value) Sort() Sort { return v.sort }
func (v Value) Int() int64 { return v.num }
func (v Value) Bool() bool { return v.truth }

func (v Value) Equal(other Value) bool { return v == other }

func (v Value) String() string {
	if v.sort == SortBool {
		return fmt.Sprintf("%v", v.truth)
	}
	return fmt.Sprintf("%d", v.num)
}

// Model assigns values to variable names.
type Model map[string]Value

func (m Model) Clone() Model {
	clone := make(Model, len(m))
	for name, value := range m {
		clone[name] = value
	}
	return clone
}

// Satisfies reports whether every assertion evaluates to true under the
// model. Assertions mentioning unassigned variables are not satisfied.
func (m Model) Satisfies(assertions ...Term) bool {
	for _, assertion := range assertions {
		value, err := assertion.Eval(m)
		if err != nil || value.Sort() != SortBool || !value.Bool() {
			return false
		}
	}
	return true
}

// Eval computes the term's value under the model. It fails on unassigned
// variables and on sort mismatches.
func (t Term) Eval(m Model) (Value, error) {
	switch t.op {
	case OpVar:
		value, ok := m[t.name]
		if !ok {
			return Value{}, fmt.Errorf("variable %q is not assigned", t.name)
		}
		return value, nil
	case OpInt:
		return IntVal(t.num), nil
	case OpBool:
		return BoolVal(t.truth), nil
	case OpAdd:
		var sum int64
		for _, arg := range t.args {
			value, err := arg.evalInt(m)
			if err != nil {
				return Value{}, err
			}
			sum += value
		}
		return IntVal(sum), nil
	case OpMul:
		var product int64 = 1
		for _, arg := range t.args {
			value, err := arg.evalInt(m)
			if err != nil {
				return Value{}, err
			}
			product *= value
		}
		return IntVal(product), nil
	case OpNeg:
		value, err := t.args[0].evalInt(m)
		if err != nil {
			return Value{}, err
		}
		return IntVal(-value), nil
	case OpLt, OpLe, OpEq, OpGe, OpGt:
		return t.evalComparison(m)
	case OpAnd:
		for _, arg := range t.args {
			truth, err := arg.evalBool(m)
			if err != nil {
				return Value{}, err
			}
			if !truth {
				return BoolVal(false), nil
			}
		}
		return BoolVal(true), nil
	case OpOr:
		for _, arg := range t.args {
			truth, err := arg.evalBool(m)
			if err != nil {
				return Value{}, err
			}
			if truth {
				return BoolVal(true), nil
			}
		}
		return BoolVal(false), nil
	case OpNot:
		truth, err := t.args[0].evalBool(m)
		if err != nil {
			return Value{}, err
		}
		return BoolVal(!truth), nil
	}
	return Value{}, fmt.Errorf("cannot evaluate operator %v", t.op)
}

func (t Term) evalComparison(m Model) (Value, error) {
	left, err := t.args[0].Eval(m)
	if err != nil {
		return Value{}, err
	}
	right, err := t.args[1].Eval(m)
	if err != nil {
		return Value{}, err
	}
	if t.op == OpEq && left.Sort() == SortBool && right.Sort() == SortBool {
		return BoolVal(left.Bool() == right.Bool()), nil
	}
	if left.Sort() != SortInt || right.Sort() != SortInt {
		return Value{}, fmt.Errorf("comparison %v requires integer operands", t.op)
	}

	a, b := left.Int(), right.Int()
	switch t.op {
	case OpLt:
		return BoolVal(a < b), nil
	case OpLe:
		return BoolVal(a <= b), nil
	case OpEq:
		return BoolVal(a == b), nil
	case OpGe:
		return BoolVal(a >= b), nil
	case OpGt:
		return BoolVal(a > b), nil
	}
	return Value{}, fmt.Errorf("not a comparison: %v", t.op)
}

func (t Term) evalInt(m Model) (int64, error) {
	value, err := t.Eval(m)
	if err != nil {
		return 0, err
	}
	if value.Sort() != SortInt {
		return 0, fmt.Errorf("expected an integer, got %v in %v", value, t)
	}
	return value.Int(), nil
}

func (t Term) evalBool(m Model) (bool, error) {
	value, err := t.Eval(m)
	if err != nil {
		return false, err
	}
	if value.Sort() != SortBool {
		return false, fmt.Errorf("expected a boolean, got %v in %v", value, t)
	}
	return value.Bool(), nil
}
