package logic

import "github.com/samber/lo"

// Simplify rewrites a term into an equivalent, usually smaller one: constant
// folding, flattening of nested connectives and sums, absorption of true/false
// and of neutral elements. The rewrite is deterministic.
func Simplify(t Term) Term {
	if len(t.args) == 0 {
		switch t.op {
		case OpAnd: // empty conjunction
			return True
		case OpOr: // empty disjunction
			return False
		}
		return t
	}
	args := lo.Map(t.args, func(arg Term, _ int) Term { return Simplify(arg) })

	switch t.op {
	case OpAdd:
		return simplifyAdd(args)
	case OpMul:
		return simplifyMul(args)
	case OpNeg:
		return simplifyNeg(args[0])
	case OpLt, OpLe, OpEq, OpGe, OpGt:
		return simplifyComparison(t.op, args[0], args[1])
	case OpAnd:
		return simplifyAnd(args)
	case OpOr:
		return simplifyOr(args)
	case OpNot:
		return simplifyNot(args[0])
	}
	return Term{op: t.op, args: args}
}

func simplifyAdd(args []Term) Term {
	flat := flatten(OpAdd, args)
	var constant int64
	rest := make([]Term, 0, len(flat))
	for _, arg := range flat {
		if arg.IsInt() {
			constant += arg.num
			continue
		}
		rest = append(rest, arg)
	}
	if constant != 0 || len(rest) == 0 {
		rest = append(rest, Int(constant))
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return Term{op: OpAdd, args: rest}
}

func simplifyMul(args []Term) Term {
	flat := flatten(OpMul, args)
	var constant int64 = 1
	rest := make([]Term, 0, len(flat))
	for _, arg := range flat {
		if arg.IsInt() {
			constant *= arg.num
			continue
		}
		rest = append(rest, arg)
	}
	if constant == 0 {
		return Int(0)
	}
	if constant != 1 || len(rest) == 0 {
		rest = append([]Term{Int(constant)}, rest...)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return Term{op: OpMul, args: rest}
}

func simplifyNeg(arg Term) Term {
	if arg.IsInt() {
		return Int(-arg.num)
	}
	if arg.op == OpNeg {
		return arg.args[0]
	}
	return Neg(arg)
}

func simplifyComparison(op Op, left, right Term) Term {
	if left.IsInt() && right.IsInt() {
		a, b := left.num, right.num
		switch op {
		case OpLt:
			return Bool(a < b)
		case OpLe:
			return Bool(a <= b)
		case OpEq:
			return Bool(a == b)
		case OpGe:
			return Bool(a >= b)
		case OpGt:
			return Bool(a > b)
		}
	}
	if op == OpEq && left.Equal(right) {
		return True
	}
	if op == OpEq && left.IsBool() && right.IsBool() {
		return Bool(left.truth == right.truth)
	}
	return Term{op: op, args: []Term{left, right}}
}

func simplifyAnd(args []Term) Term {
	flat := flatten(OpAnd, args)
	rest := make([]Term, 0, len(flat))
	for _, arg := range flat {
		if arg.IsTrue() {
			continue
		}
		if arg.IsFalse() {
			return False
		}
		rest = append(rest, arg)
	}
	rest = lo.UniqBy(rest, func(arg Term) string { return arg.String() })
	if len(rest) == 0 {
		return True
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return Term{op: OpAnd, args: rest}
}

func simplifyOr(args []Term) Term {
	flat := flatten(OpOr, args)
	rest := make([]Term, 0, len(flat))
	for _, arg := range flat {
		if arg.IsFalse() {
			continue
		}
		if arg.IsTrue() {
			return True
		}
		rest = append(rest, arg)
	}
	rest = lo.UniqBy(rest, func(arg Term) string { return arg.String() })
	if len(rest) == 0 {
		return False
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return Term{op: OpOr, args: rest}
}

func simplifyNot(arg Term) Term {
	if arg.IsBool() {
		return Bool(!arg.truth)
	}
	if arg.op == OpNot {
		return arg.args[0]
	}
	return Not(arg)
}

func flatten(op Op, args []Term) []Term {
	flat := make([]Term, 0, len(args))
	for _, arg := range args {
		if arg.op == op {
			flat = append(flat, arg.args...)
			continue
		}
		flat = append(flat, arg)
	}
	return flat
}
