package battle

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RollFunc produces the player's die value when the session awaits input.
type RollFunc func(ctx context.Context) (int, error)

// Runner drives a Session to completion in real time: it honours each
// phase's presentation delay and asks roll for the player's dice.
type Runner struct {
	session *Session
	roll    RollFunc
	logger  *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: session, roll and logger are non-nil.
func NewRunner(session *Session, roll RollFunc, logger *zap.Logger) *Runner {
	return &Runner{session: session, roll: roll, logger: logger}
}

// Run advances the session until it reaches its result or ctx is done.
// Cancellation only takes effect between transitions; a resolved turn is
// always applied.
//
// Postcondition: on success the session is Done and the returned Result is
// its terminal outcome.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	for !r.session.Done() {
		if r.session.AwaitingRoll() {
			v, err := r.roll(ctx)
			if err != nil {
				return Result{}, fmt.Errorf("rolling player dice: %w", err)
			}
			if err := r.session.SubmitRoll(v); err != nil {
				return Result{}, err
			}
			continue
		}
		if err := r.wait(ctx); err != nil {
			return Result{}, err
		}
		if err := r.session.Advance(); err != nil {
			return Result{}, err
		}
	}
	return r.session.Result()
}

// wait blocks for the current phase's delay.
func (r *Runner) wait(ctx context.Context) error {
	delay := r.session.Delay()
	if delay <= 0 {
		return ctx.Err()
	}
	fired := make(chan struct{})
	pt := NewPhaseTimer(delay, func() { close(fired) })
	select {
	case <-fired:
		return nil
	case <-ctx.Done():
		pt.Stop()
		r.logger.Debug("battle runner cancelled",
			zap.String("session", r.session.ID().String()),
			zap.Stringer("phase", r.session.Phase()),
		)
		return ctx.Err()
	}
}
