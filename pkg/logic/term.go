// Package logic provides the formula algebra consumed by tactics and probes:
// immutable integer/boolean terms with construction, substitution, structural
// equality and evaluation under a model. Tactic combinators never look inside
// terms; only leaf tactics and probes do, through this package.
package logic

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Op uint8

const (
	OpVar Op = iota
	OpInt
	OpBool
	OpAdd
	OpMul
	OpNeg
	OpLt
	OpLe
	OpEq
	OpGe
	OpGt
	OpAnd
	OpOr
	OpNot
)

var opNames = map[Op]string{
	OpVar:  "var",
	OpInt:  "int",
	OpBool: "bool",
	OpAdd:  "+",
	OpMul:  "*",
	OpNeg:  "-",
	OpLt:   "<",
	OpLe:   "<=",
	OpEq:   "=",
	OpGe:   ">=",
	OpGt:   ">",
	OpAnd:  "and",
	OpOr:   "or",
	OpNot:  "not",
}

func (op Op) String() string {
	name, ok := opNames[op]
	if !ok {
		return fmt.Sprintf("op(%d)", uint8(op))
	}
	return name
}

// Term is an immutable formula tree. The zero value is not a valid term;
// always use the constructors.
type Term struct {
	op    Op
	name  string // OpVar
	num   int64  // OpInt
	truth bool   // OpBool
	args  []Term
}

var (
	True  = Term{op: OpBool, truth: true}
	False = Term{op: OpBool, truth: false}
)

func Var(name string) Term {
	if name == "" {
		panic("logic: variable must have a name")
	}
	return Term{op: OpVar, name: name}
}

func Int(value int64) Term {
	return Term{op: OpInt, num: value}
}

func Bool(truth bool) Term {
	return Term{op: OpBool, truth: truth}
}

func Add(terms ...Term) Term { return Term{op: OpAdd, args: terms} }
func Mul(terms ...Term) Term { return Term{op: OpMul, args: terms} }
func Neg(term Term) Term     { return Term{op: OpNeg, args: []Term{term}} }

func Lt(left, right Term) Term { return Term{op: OpLt, args: []Term{left, right}} }
func Le(left, right Term) Term { return Term{op: OpLe, args: []Term{left, right}} }
func Eq(left, right Term) Term { return Term{op: OpEq, args: []Term{left, right}} }
func Ge(left, right Term) Term { return Term{op: OpGe, args: []Term{left, right}} }
func Gt(left, right Term) Term { return Term{op: OpGt, args: []Term{left, right}} }

func And(terms ...Term) Term { return Term{op: OpAnd, args: terms} }
func Or(terms ...Term) Term  { return Term{op: OpOr, args: terms} }
func Not(term Term) Term     { return Term{op: OpNot, args: []Term{term}} }

func (t Term) Op() Op       { return t.op }
func (t Term) Name() string { return t.name }
func (t Term) Num() int64   { return t.num }
func (t Term) Truth() bool  { return t.truth }

// Args returns the term's immediate subterms. The returned slice must not be
// mutated.
func (t Term) Args() []Term { return t.args }

func (t Term) IsVar() bool  { return t.op == OpVar }
func (t Term) IsInt() bool  { return t.op == OpInt }
func (t Term) IsBool() bool { return t.op == OpBool }

func (t Term) IsTrue() bool  { return t.op == OpBool && t.truth }
func (t Term) IsFalse() bool { return t.op == OpBool && !t.truth }

// Equal reports structural equality.
func (t Term) Equal(other Term) bool {
	if t.op != other.op || t.name != other.name || t.num != other.num || t.truth != other.truth {
		return false
	}
	if len(t.args) != len(other.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// String renders the term as an s-expression, e.g. "(> x 0)".
func (t Term) String() string {
	switch t.op {
	case OpVar:
		return t.name
	case OpInt:
		return fmt.Sprintf("%d", t.num)
	case OpBool:
		if t.truth {
			return "true"
		}
		return "false"
	}

	rendered := lo.Map(t.args, func(arg Term, _ int) string { return arg.String() })
	return fmt.Sprintf("(%s %s)", t.op, strings.Join(rendered, " "))
}

// Vars collects the free variables of the term into dest.
func (t Term) Vars(dest map[string]struct{}) {
	if t.op == OpVar {
		dest[t.name] = struct{}{}
		return
	}
	for _, arg := range t.args {
		arg.Vars(dest)
	}
}

// VarNames returns the free variables of a sequence of terms, in first-seen
// order.
func VarNames(terms ...Term) []string {
	seen := make(map[string]struct{})
	var names []string
	var walk func(Term)
	walk = func(t Term) {
		if t.op == OpVar {
			if _, ok := seen[t.name]; !ok {
				seen[t.name] = struct{}{}
				names = append(names, t.name)
			}
			return
		}
		for _, arg := range t.args {
			walk(arg)
		}
	}
	for _, t := range terms {
		walk(t)
	}
	return names
}

// Subst replaces every occurrence of the given variables with their bound
// terms. Unbound variables are left in place.
func (t Term) Subst(bindings map[string]Term) Term {
	if len(bindings) == 0 {
		return t
	}
	if t.op == OpVar {
		if replacement, ok := bindings[t.name]; ok {
			return replacement
		}
		return t
	}
	if len(t.args) == 0 {
		return t
	}
	args := lo.Map(t.args, func(arg Term, _ int) Term { return arg.Subst(bindings) })
	return Term{op: t.op, args: args}
}

// Size counts the nodes of the term tree.
func (t Term) Size() int {
	size := 1
	for _, arg := range t.args {
		size += arg.Size()
	}
	return size
}

// IsPropositional reports whether the term is built only from boolean
// literals, variables and connectives.
func (t Term) IsPropositional() bool {
	switch t.op {
	case OpVar, OpBool:
		return true
	case OpAnd, OpOr, OpNot:
		return !lo.SomeBy(t.args, func(arg Term) bool { return !arg.IsPropositional() })
	default:
		return false
	}
}
