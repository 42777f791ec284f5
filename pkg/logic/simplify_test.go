package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimplifyArithmetic(t *testing.T) {
	x := Var("x")

	cases := []struct {
		name string
		in   Term
		out  Term
	}{
		{"constant folding", Add(Int(1), Int(2), Int(3)), Int(6)},
		{"neutral element", Add(x, Int(0)), x},
		{"nested sums flatten", Add(Add(x, Int(1)), Int(1)), Add(x, Int(2))},
		{"multiplication by zero", Mul(x, Int(0)), Int(0)},
		{"multiplication by one", Mul(Int(1), x), x},
		{"double negation", Neg(Neg(x)), x},
		{"negated literal", Neg(Int(4)), Int(-4)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			simplified := Simplify(c.in)
			assert.True(t, simplified.Equal(c.out), "got %v, want %v", simplified, c.out)
		})
	}
}

func TestSimplifyComparisons(t *testing.T) {
	x := Var("x")

	assert.True(t, Simplify(Gt(Int(3), Int(2))).Equal(True))
	assert.True(t, Simplify(Lt(Int(3), Int(2))).Equal(False))
	assert.True(t, Simplify(Eq(x, x)).Equal(True))
	assert.True(t, Simplify(Gt(Add(Int(1), Int(1)), Int(3))).Equal(False))
}

func TestSimplifyConnectives(t *testing.T) {
	p, q := Var("p"), Var("q")

	assert.True(t, Simplify(And(p, True, q)).Equal(And(p, q)))
	assert.True(t, Simplify(And(p, False)).Equal(False))
	assert.True(t, Simplify(Or(p, False)).Equal(p))
	assert.True(t, Simplify(Or(p, True, q)).Equal(True))
	assert.True(t, Simplify(Not(Not(p))).Equal(p))
	assert.True(t, Simplify(And(Or(p), q)).Equal(And(p, q)), "singleton connective collapses")
	assert.True(t, Simplify(And(p, p)).Equal(p), "duplicates collapse")
	assert.True(t, Simplify(And()).Equal(True))
	assert.True(t, Simplify(Or()).Equal(False))
}

func TestSimplifyDeterministic(t *testing.T) {
	formula := And(Or(Var("p"), False), Gt(Add(Var("x"), Int(0)), Int(1)), True)

	first := Simplify(formula)
	second := Simplify(formula)

	assert.True(t, first.Equal(second))
	assert.True(t, Simplify(first).Equal(first), "simplification is idempotent")
}
