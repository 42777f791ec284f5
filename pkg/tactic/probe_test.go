package tactic

import (
	"context"
	"testing"

	"github.com/angr/angr-z3/pkg/logic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeValues(t *testing.T) {
	x, p, q := logic.Var("x"), logic.Var("p"), logic.Var("q")
	goal := NewGoal(logic.Gt(x, logic.Int(0)), logic.Or(p, q))

	assert.Equal(t, float64(2), NumExprs().Eval(goal))
	assert.Equal(t, float64(3), NumConsts().Eval(goal), "x, p and q")
	assert.Equal(t, float64(6), Size().Eval(goal))
	assert.Equal(t, float64(0), Depth().Eval(goal))
	assert.False(t, IsPropositional().True(goal))
	assert.True(t, IsPropositional().True(NewGoal(logic.Or(p, q))))
	assert.True(t, IsPropositional().True(NewGoal()), "vacuously propositional")
}

func TestProbeDeterminism(t *testing.T) {
	goal := NewGoal(logic.Gt(logic.Var("x"), logic.Int(0)))

	for _, probe := range []Probe{NumExprs(), NumConsts(), Depth(), Size(), IsPropositional()} {
		assert.Equal(t, probe.Eval(goal), probe.Eval(goal), probe.Name())
	}
}

func TestProbeAlgebra(t *testing.T) {
	goal := NewGoal(logic.Gt(logic.Var("x"), logic.Int(0)))

	t.Run("comparisons", func(t *testing.T) {
		assert.True(t, NumExprs().Lt(Val(2)).True(goal))
		assert.True(t, NumExprs().Le(Val(1)).True(goal))
		assert.False(t, NumExprs().Gt(Val(1)).True(goal))
		assert.True(t, NumExprs().Ge(Val(1)).True(goal))
		assert.True(t, NumExprs().Eq(NumConsts()).True(goal))
		assert.True(t, Size().Ne(Val(0)).True(goal))
	})

	t.Run("connectives", func(t *testing.T) {
		yes, no := Val(1), Val(0)
		assert.True(t, yes.And(yes).True(goal))
		assert.False(t, yes.And(no).True(goal))
		assert.True(t, no.Or(yes).True(goal))
		assert.False(t, no.Or(no).True(goal))
		assert.True(t, no.Not().True(goal))
		assert.False(t, yes.Not().True(goal))
	})

	t.Run("names are descriptive", func(t *testing.T) {
		assert.Equal(t, "(< num-exprs num-consts)", NumExprs().Lt(NumConsts()).Name())
		assert.Equal(t, "(not is-propositional)", IsPropositional().Not().Name())
	})
}

func TestCondSelectsBranch(t *testing.T) {
	// Two constants only, so the condition is false and exactly the second
	// branch must run.
	x, y := logic.Var("x"), logic.Var("y")
	goal := NewGoal(logic.Gt(x, logic.Int(0)), logic.Gt(y, logic.Int(0)))
	onTrue := &recorder{inner: Skip()}
	onFalse := &recorder{inner: Skip()}

	res := Cond(NumConsts().Gt(Val(2)), onTrue, onFalse).Apply(context.Background(), goal)

	require.True(t, res.IsDecomposed())
	assert.Zero(t, onTrue.calls)
	assert.Equal(t, 1, onFalse.calls)
}

func TestWhenGuardsApplication(t *testing.T) {
	guarded := &recorder{inner: Skip()}
	arithmetic := NewGoal(logic.Gt(logic.Var("x"), logic.Int(0)))
	propositional := NewGoal(logic.Or(logic.Var("p"), logic.Var("q")))

	When(IsPropositional(), guarded).Apply(context.Background(), arithmetic)
	assert.Zero(t, guarded.calls, "probe is false, so the tactic must not run")

	res := When(IsPropositional(), guarded).Apply(context.Background(), propositional)
	assert.Equal(t, 1, guarded.calls)
	require.True(t, res.IsDecomposed())
}

func TestFailIf(t *testing.T) {
	goal := NewGoal(logic.Gt(logic.Var("x"), logic.Int(0)))

	t.Run("fails when the probe holds", func(t *testing.T) {
		res := FailIf(NumExprs().Ge(Val(1))).Apply(context.Background(), goal)

		require.True(t, res.IsFailure())
		assert.True(t, IsRecoverable(res.Err()))
	})

	t.Run("skips otherwise", func(t *testing.T) {
		res := FailIf(NumExprs().Gt(Val(5))).Apply(context.Background(), goal)

		require.True(t, res.IsDecomposed())
		require.Len(t, res.Subgoals(), 1)
		assert.True(t, res.Subgoals()[0].Equal(goal))
	})

	t.Run("encodes conditionals", func(t *testing.T) {
		// Cond(p, t, s) behaves like OrElse(AndThen(FailIf(not p), t), s).
		probe := NumConsts().Gt(Val(2))
		chosen := &recorder{inner: Skip()}
		other := &recorder{inner: Fail()}

		encoded := OrElse(AndThen(FailIf(probe.Not()), other), chosen)
		res := encoded.Apply(context.Background(), goal)

		require.True(t, res.IsDecomposed())
		assert.Zero(t, other.calls, "the guard fails before the first alternative runs")
		assert.Equal(t, 1, chosen.calls)
	})
}
