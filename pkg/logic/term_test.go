package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermEqual(t *testing.T) {
	x, y := Var("x"), Var("y")

	assert.True(t, Gt(x, Int(0)).Equal(Gt(Var("x"), Int(0))))
	assert.False(t, Gt(x, Int(0)).Equal(Gt(y, Int(0))))
	assert.False(t, Gt(x, Int(0)).Equal(Ge(x, Int(0))))
	assert.False(t, And(x, y).Equal(And(y, x)), "ordered equality")
	assert.True(t, True.Equal(Bool(true)))
}

func TestTermString(t *testing.T) {
	x, y := Var("x"), Var("y")

	assert.Equal(t, "(> x 0)", Gt(x, Int(0)).String())
	assert.Equal(t, "(= x (+ y 2))", Eq(x, Add(y, Int(2))).String())
	assert.Equal(t, "(or (< x 0) (> x 0))", Or(Lt(x, Int(0)), Gt(x, Int(0))).String())
	assert.Equal(t, "(not p)", Not(Var("p")).String())
	assert.Equal(t, "true", True.String())
}

func TestSubst(t *testing.T) {
	x, y := Var("x"), Var("y")

	// Act
	substituted := Gt(Add(x, Int(1)), y).Subst(map[string]Term{"x": Add(y, Int(2))})

	// Assert
	assert.True(t, substituted.Equal(Gt(Add(Add(y, Int(2)), Int(1)), y)))
	assert.True(t, x.Subst(nil).Equal(x))
}

func TestVarNames(t *testing.T) {
	x, y, z := Var("x"), Var("y"), Var("z")

	names := VarNames(Eq(x, Add(y, Int(2))), Gt(z, y))

	assert.Equal(t, []string{"x", "y", "z"}, names)
}

func TestEval(t *testing.T) {
	x, y := Var("x"), Var("y")
	model := Model{"x": IntVal(5), "y": IntVal(3)}

	t.Run("arithmetic and comparisons", func(t *testing.T) {
		value, err := Eq(x, Add(y, Int(2))).Eval(model)
		assert.Nil(t, err)
		assert.Equal(t, BoolVal(true), value)

		value, err = Mul(Int(2), x).Eval(model)
		assert.Nil(t, err)
		assert.Equal(t, IntVal(10), value)

		value, err = Lt(Neg(x), y).Eval(model)
		assert.Nil(t, err)
		assert.Equal(t, BoolVal(true), value)
	})

	t.Run("connectives", func(t *testing.T) {
		propositional := Model{"p": BoolVal(true), "q": BoolVal(false)}
		value, err := And(Var("p"), Not(Var("q"))).Eval(propositional)
		assert.Nil(t, err)
		assert.Equal(t, BoolVal(true), value)
	})

	t.Run("unassigned variable", func(t *testing.T) {
		_, err := Gt(Var("w"), Int(0)).Eval(model)
		assert.NotNil(t, err)
	})

	t.Run("sort mismatch", func(t *testing.T) {
		_, err := Add(x, Var("p")).Eval(Model{"x": IntVal(1), "p": BoolVal(true)})
		assert.NotNil(t, err)
	})
}

func TestModelSatisfies(t *testing.T) {
	x, y := Var("x"), Var("y")
	assertions := []Term{Gt(x, Int(0)), Eq(x, Add(y, Int(2)))}

	assert.True(t, Model{"x": IntVal(5), "y": IntVal(3)}.Satisfies(assertions...))
	assert.False(t, Model{"x": IntVal(5), "y": IntVal(5)}.Satisfies(assertions...))
	assert.False(t, Model{"x": IntVal(5)}.Satisfies(assertions...), "partial model")
}

func TestIsPropositional(t *testing.T) {
	p, q := Var("p"), Var("q")

	assert.True(t, Or(p, Not(q)).IsPropositional())
	assert.True(t, p.IsPropositional())
	assert.False(t, Gt(Var("x"), Int(0)).IsPropositional())
	assert.False(t, And(p, Gt(Var("x"), Int(0))).IsPropositional())
}
