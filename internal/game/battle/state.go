// Package battle implements the boss battle engine: the combat resolver that
// turns dice into new boss states, and the session state machine that
// sequences player and boss turns until a victory or defeat.
package battle

import (
	"slices"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// Actor identifies who performed a logged action.
type Actor string

const (
	ActorPlayer Actor = "player"
	ActorBoss   Actor = "boss"
)

// Log actions that are not skill names.
const (
	ActionPlayerAttack = "Attack"
	ActionShieldBreaks = "Shield Breaks"
	ActionDefeated     = "Defeated"
	ActionChargeWasted = "Charge Wasted"
	ActionCriticalHit  = "Critical Hit"
)

// LogEntry is one immutable line of battle history.
type LogEntry struct {
	Turn        int             `json:"turn"`
	Actor       Actor           `json:"actor"`
	Action      string          `json:"action"`
	Value       *int            `json:"value,omitempty"`
	Description string          `json:"description"`
	BossHP      *int            `json:"boss_hp,omitempty"`
	Critical    bool            `json:"critical,omitempty"`
	Missed      bool            `json:"missed,omitempty"`
	DamageType  boss.DamageType `json:"damage_type,omitempty"`
}

// BossState is the boss half of a battle. It is a value: resolver calls
// return a new BossState and never modify the one they were given.
//
// Invariant: 0 <= CurrentHP <= MaxHP; Defeated never reverts to false;
// Charged is only ever set for archetypes with a charge skill.
type BossState struct {
	Archetype boss.Archetype `json:"archetype"`
	CurrentHP int            `json:"current_hp"`
	MaxHP     int            `json:"max_hp"`
	Defeated  bool           `json:"defeated"`
	Shielded  bool           `json:"shielded"`
	Charged   bool           `json:"charged"`
	Log       []LogEntry     `json:"log"`
}

// NewBossState returns a fresh, full-health state for cfg.
//
// Precondition: cfg has passed Validate.
func NewBossState(cfg *boss.Config) BossState {
	return BossState{
		Archetype: cfg.Archetype,
		CurrentHP: cfg.MaxHP,
		MaxHP:     cfg.MaxHP,
		Log:       []LogEntry{},
	}
}

// next returns a copy of s whose Log no longer shares storage with s.
func (s BossState) next() BossState {
	s.Log = slices.Clone(s.Log)
	if s.Log == nil {
		s.Log = []LogEntry{}
	}
	return s
}

// withEntries returns s with entries appended to its log.
func (s BossState) withEntries(entries []LogEntry) BossState {
	s.Log = append(s.Log, entries...)
	return s
}

// clampHP keeps CurrentHP inside [0, MaxHP].
func (s *BossState) clampHP() {
	if s.CurrentHP < 0 {
		s.CurrentHP = 0
	}
	if s.CurrentHP > s.MaxHP {
		s.CurrentHP = s.MaxHP
	}
}

func intPtr(v int) *int { return &v }
