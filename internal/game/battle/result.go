package battle

import (
	"slices"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// SpecialEffect is a non-damage outcome the boss imposes on the player.
type SpecialEffect struct {
	Kind      boss.EffectKind `json:"kind"`
	Magnitude int             `json:"magnitude,omitempty"`
}

// Result is the terminal output of a battle session.
//
// Invariant: Victory implies StepsBack == 0 and Effect == nil;
// !Victory implies GoldReward == 0.
type Result struct {
	FinalState BossState      `json:"final_state"`
	Log        []LogEntry     `json:"log"`
	Victory    bool           `json:"victory"`
	StepsBack  int            `json:"steps_back"`
	GoldReward int            `json:"gold_reward"`
	Effect     *SpecialEffect `json:"effect,omitempty"`
}

func victoryResult(state BossState, reward int) Result {
	return Result{
		FinalState: state,
		Log:        slices.Clone(state.Log),
		Victory:    true,
		GoldReward: reward,
	}
}

func defeatResult(state BossState, stepsBack int, effect *SpecialEffect) Result {
	return Result{
		FinalState: state,
		Log:        slices.Clone(state.Log),
		StepsBack:  stepsBack,
		Effect:     effect,
	}
}
