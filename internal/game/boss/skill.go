package boss

import (
	"fmt"
	"math"
)

// Category groups skills by their broad effect.
type Category string

const (
	CategoryAttack Category = "attack"
	CategoryHeal   Category = "heal"
	CategoryBuff   Category = "buff"
	CategoryDebuff Category = "debuff"
	CategoryMagic  Category = "magic"
)

// DamageType is the flavour of damage a skill inflicts.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagic    DamageType = "magic"
	DamageBreath   DamageType = "breath"
)

// EffectKind is a non-damage outcome a debuff can impose on the player.
type EffectKind string

const (
	EffectNone         EffectKind = ""
	EffectResetToStart EffectKind = "reset_to_start"
	EffectSkipTurns    EffectKind = "skip_turns"
	EffectSealItems    EffectKind = "seal_items"
)

// Skill is one row of a boss skill table.
type Skill struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Chance     float64    `yaml:"chance"`
	Category   Category   `yaml:"category"`
	DamageType DamageType `yaml:"damage_type"`

	// Damage is the base damage dealt to the player.
	Damage int `yaml:"damage"`
	// StrongDamage replaces Damage when the StrongChance check lands.
	StrongDamage int     `yaml:"strong_damage"`
	StrongChance float64 `yaml:"strong_chance"`
	// CritChance is the chance a hit deals double damage.
	CritChance float64 `yaml:"crit_chance"`
	// DesperateDamage and DesperateName replace Damage and Name while the
	// boss is at or below half health. Zero means no desperation variant.
	DesperateDamage int    `yaml:"desperate_damage"`
	DesperateName   string `yaml:"desperate_name"`
	// Heal is the HP restored, clamped to MaxHP.
	Heal int `yaml:"heal"`
	// SuccessChance gates Effect; 1.0 always lands.
	SuccessChance float64    `yaml:"success_chance"`
	Effect        EffectKind `yaml:"effect"`
	Magnitude     int        `yaml:"magnitude"`
}

// Percent returns the skill's selection weight as a whole percentage.
func (s Skill) Percent() int {
	return int(math.Round(s.Chance * 100))
}

// Validate checks the per-skill invariants.
//
// Postcondition: Returns nil iff the skill can be resolved without guessing.
func (s Skill) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("skill id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("skill %q: name must not be empty", s.ID)
	}
	if s.Chance <= 0 || s.Chance > 1 {
		return fmt.Errorf("skill %q: chance must be in (0, 1], got %v", s.ID, s.Chance)
	}
	if !wholePercent(s.Chance) {
		return fmt.Errorf("skill %q: chance %v is not a whole percentage", s.ID, s.Chance)
	}
	switch s.Category {
	case CategoryAttack, CategoryHeal, CategoryBuff, CategoryDebuff, CategoryMagic:
	default:
		return fmt.Errorf("skill %q: unknown category %q", s.ID, s.Category)
	}
	switch s.DamageType {
	case "", DamagePhysical, DamageMagic, DamageBreath:
	default:
		return fmt.Errorf("skill %q: unknown damage_type %q", s.ID, s.DamageType)
	}
	for name, p := range map[string]float64{
		"strong_chance":  s.StrongChance,
		"crit_chance":    s.CritChance,
		"success_chance": s.SuccessChance,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("skill %q: %s must be in [0, 1], got %v", s.ID, name, p)
		}
		if !wholePercent(p) {
			return fmt.Errorf("skill %q: %s %v is not a whole percentage", s.ID, name, p)
		}
	}
	if s.Damage < 0 || s.StrongDamage < 0 || s.DesperateDamage < 0 || s.Heal < 0 || s.Magnitude < 0 {
		return fmt.Errorf("skill %q: damage, heal and magnitude must be >= 0", s.ID)
	}
	if s.StrongChance > 0 && s.StrongDamage == 0 {
		return fmt.Errorf("skill %q: strong_chance requires a strong_damage", s.ID)
	}
	switch s.Effect {
	case EffectNone:
	case EffectResetToStart, EffectSkipTurns, EffectSealItems:
		if s.SuccessChance == 0 {
			return fmt.Errorf("skill %q: effect %q requires a success_chance", s.ID, s.Effect)
		}
		if s.Effect != EffectResetToStart && s.Magnitude < 1 {
			return fmt.Errorf("skill %q: effect %q requires magnitude >= 1, got %d", s.ID, s.Effect, s.Magnitude)
		}
	default:
		return fmt.Errorf("skill %q: unknown effect %q", s.ID, s.Effect)
	}
	return nil
}

const chanceEpsilon = 1e-9

func wholePercent(p float64) bool {
	return math.Abs(p*100-math.Round(p*100)) < 1e-6
}

// SkillTable is an ordered list of skills; order defines the cumulative
// thresholds used by Select.
type SkillTable []Skill

// Total returns the sum of all selection chances.
func (t SkillTable) Total() float64 {
	var sum float64
	for _, s := range t {
		sum += s.Chance
	}
	return sum
}

// Thresholds returns the inclusive cumulative upper bound of each skill on
// the 1–100 scale, in table order.
//
// Postcondition: len(result) == len(t); the last element is 100 for a valid table.
func (t SkillTable) Thresholds() []int {
	out := make([]int, len(t))
	cum := 0
	for i, s := range t {
		cum += s.Percent()
		out[i] = cum
	}
	return out
}

// Select maps a percentile roll to the skill whose cumulative threshold is
// the first to reach it.
//
// Precondition: the table has passed Validate.
// Postcondition: every roll in [1, 100] maps to exactly one skill; rolls
// outside that range return an error.
func (t SkillTable) Select(roll int) (Skill, error) {
	if roll < 1 || roll > 100 {
		return Skill{}, fmt.Errorf("selector roll %d outside [1, 100]", roll)
	}
	for i, upper := range t.Thresholds() {
		if roll <= upper {
			return t[i], nil
		}
	}
	return Skill{}, fmt.Errorf("selector roll %d not covered by table totalling %v", roll, t.Total())
}

// Find returns the skill with the given id.
func (t SkillTable) Find(id string) (Skill, bool) {
	for _, s := range t {
		if s.ID == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Validate checks every skill and that the table's chances sum to exactly 1.0.
//
// Postcondition: Returns nil iff Select is total over [1, 100].
func (t SkillTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("skill table must not be empty")
	}
	seen := make(map[string]bool, len(t))
	for _, s := range t {
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate skill id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if total := t.Total(); math.Abs(total-1.0) > chanceEpsilon {
		return fmt.Errorf("skill chances sum to %v, want 1.0", total)
	}
	if th := t.Thresholds(); th[len(th)-1] != 100 {
		return fmt.Errorf("skill thresholds end at %d, want 100", th[len(th)-1])
	}
	return nil
}
