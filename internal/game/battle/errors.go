package battle

import "errors"

var (
	// ErrInvalidDice is returned when a player dice value is outside the die's range.
	ErrInvalidDice = errors.New("invalid dice value")
	// ErrBossDefeated is returned when a resolver is asked to act on a defeated boss.
	ErrBossDefeated = errors.New("boss already defeated")
	// ErrUnknownSkill is returned when a selected skill has no resolution rule
	// for the boss archetype. A validated catalog never produces it.
	ErrUnknownSkill = errors.New("unknown boss skill")
	// ErrIllegalTransition is returned when a session is asked to make a
	// transition its current phase does not allow.
	ErrIllegalTransition = errors.New("illegal battle transition")
)
