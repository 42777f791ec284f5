package tactic

import (
	"context"
	"errors"
	"fmt"
)

// Tactic transforms a goal into a Result. Apply must be a pure function of
// the goal's content and the tactic's own configuration; the context carries
// the cancellation budget imposed by TryFor.
type Tactic interface {
	Name() string
	Apply(ctx context.Context, g *Goal) Result
}

// FailureError is the expected, recoverable outcome that OrElse and the
// conditional combinators branch on.
type FailureError struct {
	Reason string
}

func (err *FailureError) Error() string {
	return fmt.Sprintf("tactic failed: %v", err.Reason)
}

// ErrTimeout reports that a TryFor budget was exceeded.
var ErrTimeout = errors.New("tactic timed out")

// ConfigError reports an unrecognized or malformed tactic option. It is
// raised at construction time, never during Apply.
type ConfigError struct {
	Tactic string
	Detail string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for tactic %q: %v", err.Tactic, err.Detail)
}

// IsRecoverable reports whether combinators may branch on the error. All
// other errors are fatal and surface to the caller unconditionally.
func IsRecoverable(err error) bool {
	var failure *FailureError
	return errors.As(err, &failure) || errors.Is(err, ErrTimeout)
}

type tacticFunc struct {
	name  string
	apply func(ctx context.Context, g *Goal) Result
}

func (t *tacticFunc) Name() string { return t.name }

func (t *tacticFunc) Apply(ctx context.Context, g *Goal) Result {
	if err := ctx.Err(); err != nil {
		return Failed(ErrTimeout)
	}
	return t.apply(ctx, g)
}

// New wraps a function as a named tactic. The function must not mutate the
// goal it is given.
func New(name string, apply func(ctx context.Context, g *Goal) Result) Tactic {
	return &tacticFunc{name: name, apply: apply}
}

// Skip is the identity tactic: the goal comes back as its own single
// subgoal.
func Skip() Tactic {
	return New("skip", func(_ context.Context, g *Goal) Result {
		return Decomposed([]*Goal{g.Clone()}, IdentityConverter)
	})
}

// Fail always fails.
func Fail() Tactic {
	return New("fail", func(_ context.Context, _ *Goal) Result {
		return Failed(&FailureError{Reason: "fail tactic"})
	})
}
