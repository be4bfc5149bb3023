package boss

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid boss catalog")

// Skill IDs the resolver dispatches on.
const (
	SkillAttack = "attack"

	SkillHeal   = "heal"
	SkillFlames = "flames"
	SkillSpell  = "spell"
	SkillShield = "shield"

	SkillDeathCurse   = "death_curse"
	SkillSilence      = "silence"
	SkillBlizzard     = "blizzard"
	SkillSearingLight = "searing_light"
	SkillSleep        = "sleep"

	SkillWait   = "wait"
	SkillCharge = "charge"
)

// KnownSkills returns the skill IDs the resolver understands for a.
func KnownSkills(a Archetype) []string {
	switch a {
	case Belial:
		return []string{SkillAttack, SkillHeal, SkillFlames, SkillSpell, SkillShield}
	case Bazuzu:
		return []string{SkillAttack, SkillDeathCurse, SkillSilence, SkillBlizzard, SkillSearingLight, SkillSleep}
	case Atlas:
		return []string{SkillAttack, SkillWait, SkillCharge}
	default:
		return nil
	}
}

// Config is the static definition of one boss archetype.
type Config struct {
	Archetype  Archetype  `yaml:"archetype"`
	Name       string     `yaml:"name"`
	MaxHP      int        `yaml:"max_hp"`
	GoldReward int        `yaml:"gold_reward"`
	Skills     SkillTable `yaml:"skills"`
	// DesperateSkills replaces Skills while the boss is at or below half
	// health. Empty means the archetype uses Skills at every HP.
	DesperateSkills SkillTable `yaml:"desperate_skills"`
}

// Desperate reports whether hp is at or below half of MaxHP.
func (c *Config) Desperate(hp int) bool {
	return hp*2 <= c.MaxHP
}

// TableFor returns the skill table in force at hp.
func (c *Config) TableFor(hp int) SkillTable {
	if len(c.DesperateSkills) > 0 && c.Desperate(hp) {
		return c.DesperateSkills
	}
	return c.Skills
}

// Validate checks all invariants of the archetype definition.
//
// Postcondition: Returns nil iff both tables are total and every skill is one
// the archetype's resolver handles.
func (c *Config) Validate() error {
	if !c.Archetype.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownArchetype, int(c.Archetype))
	}
	if c.Name == "" {
		return fmt.Errorf("boss %s: name must not be empty", c.Archetype)
	}
	if c.MaxHP < 1 {
		return fmt.Errorf("boss %s: max_hp must be >= 1, got %d", c.Archetype, c.MaxHP)
	}
	if c.GoldReward < 0 {
		return fmt.Errorf("boss %s: gold_reward must be >= 0, got %d", c.Archetype, c.GoldReward)
	}
	known := make(map[string]bool)
	for _, id := range KnownSkills(c.Archetype) {
		known[id] = true
	}
	tables := map[string]SkillTable{"skills": c.Skills}
	if len(c.DesperateSkills) > 0 {
		tables["desperate_skills"] = c.DesperateSkills
	}
	for name, table := range tables {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("boss %s %s: %w", c.Archetype, name, err)
		}
		for _, s := range table {
			if !known[s.ID] {
				return fmt.Errorf("boss %s %s: skill %q is not handled by this archetype", c.Archetype, name, s.ID)
			}
		}
		for id, need := range skillRequirements {
			s, ok := table.Find(id)
			if !ok {
				continue
			}
			if err := need(s); err != nil {
				return fmt.Errorf("boss %s %s: skill %q: %w", c.Archetype, name, id, err)
			}
		}
	}
	return nil
}

// skillRequirements lists, per skill ID, the fields its resolver branch reads.
var skillRequirements = map[string]func(Skill) error{
	SkillAttack:       needDamage,
	SkillFlames:       needDamage,
	SkillSpell:        needDamage,
	SkillBlizzard:     needDamage,
	SkillSearingLight: needDamage,
	SkillHeal: func(s Skill) error {
		if s.Heal < 1 {
			return fmt.Errorf("heal must be >= 1, got %d", s.Heal)
		}
		return nil
	},
	SkillDeathCurse: needEffect,
	SkillSilence:    needEffect,
	SkillSleep:      needEffect,
}

func needDamage(s Skill) error {
	if s.Damage < 1 {
		return fmt.Errorf("damage must be >= 1, got %d", s.Damage)
	}
	return nil
}

func needEffect(s Skill) error {
	if s.Effect == EffectNone {
		return fmt.Errorf("effect must be set")
	}
	return nil
}

// Catalog maps every archetype to its Config. A Catalog is never mutated after
// construction; callers must not modify the Configs it returns.
type Catalog struct {
	configs map[Archetype]*Config
}

// NewCatalog builds a Catalog from configs and validates it.
//
// Postcondition: Returns a Catalog covering every archetype, or an error
// wrapping ErrInvalidCatalog describing every violation.
func NewCatalog(configs ...*Config) (*Catalog, error) {
	c := &Catalog{configs: make(map[Archetype]*Config, len(configs))}
	var errs []string
	for _, cfg := range configs {
		if _, dup := c.configs[cfg.Archetype]; dup {
			errs = append(errs, fmt.Sprintf("boss %s defined twice", cfg.Archetype))
			continue
		}
		c.configs[cfg.Archetype] = cfg
	}
	if err := c.Validate(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return c, nil
}

// MustCatalog is NewCatalog that panics on error.
func MustCatalog(configs ...*Config) *Catalog {
	c, err := NewCatalog(configs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate checks every Config and that every archetype is present.
func (c *Catalog) Validate() error {
	var errs []string
	for _, a := range Archetypes() {
		cfg, ok := c.configs[a]
		if !ok {
			errs = append(errs, fmt.Sprintf("boss %s is missing", a))
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	for a := range c.configs {
		if !a.Valid() {
			errs = append(errs, fmt.Sprintf("%v: %d", ErrUnknownArchetype, int(a)))
		}
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Get returns the Config for a.
//
// Postcondition: Returns ErrUnknownArchetype (wrapped) when a has no entry.
func (c *Catalog) Get(a Archetype) (*Config, error) {
	cfg, ok := c.configs[a]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownArchetype, a)
	}
	return cfg, nil
}

// All returns every Config in archetype order.
func (c *Catalog) All() []*Config {
	out := make([]*Config, 0, len(c.configs))
	for _, a := range Archetypes() {
		if cfg, ok := c.configs[a]; ok {
			out = append(out, cfg)
		}
	}
	return out
}
