package boss_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

func TestArchetype_StringRoundTrip(t *testing.T) {
	for _, a := range boss.Archetypes() {
		parsed, err := boss.ParseArchetype(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
}

func TestParseArchetype_Unknown(t *testing.T) {
	_, err := boss.ParseArchetype("zoma")
	assert.True(t, errors.Is(err, boss.ErrUnknownArchetype))
}

func TestArchetype_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A boss.Archetype `json:"a"`
	}{boss.Atlas})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"atlas"}`, string(data))

	_, err = json.Marshal(boss.ArchetypeUnknown)
	assert.Error(t, err)

	var a boss.Archetype
	assert.Error(t, json.Unmarshal([]byte(`"zoma"`), &a))
}

// Every skill table in the built-in catalog sums to 1.0.
func TestDefault_TablesSumToOne(t *testing.T) {
	for _, cfg := range boss.Default().All() {
		assert.InDelta(t, 1.0, cfg.Skills.Total(), 1e-9, "%s skills", cfg.Archetype)
		if len(cfg.DesperateSkills) > 0 {
			assert.InDelta(t, 1.0, cfg.DesperateSkills.Total(), 1e-9, "%s desperate_skills", cfg.Archetype)
		}
	}
}

func TestDefault_CoversEveryArchetype(t *testing.T) {
	cat := boss.Default()
	for _, a := range boss.Archetypes() {
		cfg, err := cat.Get(a)
		require.NoError(t, err)
		assert.Equal(t, a, cfg.Archetype)
	}
	_, err := cat.Get(boss.ArchetypeUnknown)
	assert.True(t, errors.Is(err, boss.ErrUnknownArchetype))
}

func TestDefault_Tuning(t *testing.T) {
	cat := boss.Default()
	tests := []struct {
		a      boss.Archetype
		maxHP  int
		reward int
	}{
		{boss.Belial, 20, 1000},
		{boss.Bazuzu, 25, 1100},
		{boss.Atlas, 30, 1200},
	}
	for _, tc := range tests {
		cfg, err := cat.Get(tc.a)
		require.NoError(t, err)
		assert.Equal(t, tc.maxHP, cfg.MaxHP, tc.a.String())
		assert.Equal(t, tc.reward, cfg.GoldReward, tc.a.String())
	}
}

func TestConfig_TableFor(t *testing.T) {
	atlas := boss.AtlasConfig()
	assert.Equal(t, atlas.Skills, atlas.TableFor(30))
	assert.Equal(t, atlas.Skills, atlas.TableFor(16))
	assert.Equal(t, atlas.DesperateSkills, atlas.TableFor(15))
	assert.Equal(t, atlas.DesperateSkills, atlas.TableFor(1))

	belial := boss.BelialConfig()
	assert.Equal(t, belial.Skills, belial.TableFor(1), "no desperate table falls back to skills")
}

func TestConfig_Desperate_OddMaxHP(t *testing.T) {
	bazuzu := boss.BazuzuConfig()
	assert.False(t, bazuzu.Desperate(13))
	assert.True(t, bazuzu.Desperate(12))
}

func TestNewCatalog_MissingArchetype(t *testing.T) {
	_, err := boss.NewCatalog(boss.BelialConfig(), boss.AtlasConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boss.ErrInvalidCatalog))
	assert.Contains(t, err.Error(), "bazuzu is missing")
}

func TestNewCatalog_Duplicate(t *testing.T) {
	_, err := boss.NewCatalog(boss.BelialConfig(), boss.BelialConfig(), boss.BazuzuConfig(), boss.AtlasConfig())
	assert.ErrorContains(t, err, "defined twice")
}

func TestNewCatalog_RejectsDriftingTable(t *testing.T) {
	atlas := boss.AtlasConfig()
	// The historical single Atlas table: attack 90 + wait 10 + charge 20.
	atlas.Skills = append(atlas.Skills, boss.Skill{ID: boss.SkillCharge, Name: "Psyche Up", Chance: 0.2, Category: boss.CategoryBuff})
	_, err := boss.NewCatalog(boss.BelialConfig(), boss.BazuzuConfig(), atlas)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boss.ErrInvalidCatalog))
}

func TestConfig_Validate_RejectsForeignSkill(t *testing.T) {
	belial := boss.BelialConfig()
	belial.Skills[0].ID = boss.SkillSleep
	assert.ErrorContains(t, belial.Validate(), "not handled")
}

// A skill must carry every field its resolver branch reads.
func TestConfig_Validate_RequiresSkillFields(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func() *boss.Config
		id     string
		mutate func(s *boss.Skill)
		want   string
	}{
		{"sleep without effect", boss.BazuzuConfig, boss.SkillSleep, func(s *boss.Skill) { s.Effect = boss.EffectNone; s.Magnitude = 0 }, "effect must be set"},
		{"silence without effect", boss.BazuzuConfig, boss.SkillSilence, func(s *boss.Skill) { s.Effect = boss.EffectNone; s.Magnitude = 0 }, "effect must be set"},
		{"death curse without effect", boss.BazuzuConfig, boss.SkillDeathCurse, func(s *boss.Skill) { s.Effect = boss.EffectNone }, "effect must be set"},
		{"sleep without turns", boss.BazuzuConfig, boss.SkillSleep, func(s *boss.Skill) { s.Magnitude = 0 }, "magnitude"},
		{"silence without turns", boss.BazuzuConfig, boss.SkillSilence, func(s *boss.Skill) { s.Magnitude = 0 }, "magnitude"},
		{"strong attack without damage", boss.BelialConfig, boss.SkillAttack, func(s *boss.Skill) { s.StrongDamage = 0 }, "strong_damage"},
		{"attack without damage", boss.AtlasConfig, boss.SkillAttack, func(s *boss.Skill) { s.Damage = 0 }, "damage must be >= 1"},
		{"flames without damage", boss.BelialConfig, boss.SkillFlames, func(s *boss.Skill) { s.Damage = 0 }, "damage must be >= 1"},
		{"spell without damage", boss.BelialConfig, boss.SkillSpell, func(s *boss.Skill) { s.Damage = 0 }, "damage must be >= 1"},
		{"blizzard without damage", boss.BazuzuConfig, boss.SkillBlizzard, func(s *boss.Skill) { s.Damage = 0 }, "damage must be >= 1"},
		{"searing light without damage", boss.BazuzuConfig, boss.SkillSearingLight, func(s *boss.Skill) { s.Damage = 0 }, "damage must be >= 1"},
		{"heal without hp", boss.BelialConfig, boss.SkillHeal, func(s *boss.Skill) { s.Heal = 0 }, "heal must be >= 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg()
			found := false
			for i := range cfg.Skills {
				if cfg.Skills[i].ID == tc.id {
					tc.mutate(&cfg.Skills[i])
					found = true
				}
			}
			require.True(t, found, "skill %s", tc.id)
			assert.ErrorContains(t, cfg.Validate(), tc.want)

			configs := map[boss.Archetype]*boss.Config{
				boss.Belial: boss.BelialConfig(),
				boss.Bazuzu: boss.BazuzuConfig(),
				boss.Atlas:  boss.AtlasConfig(),
			}
			configs[cfg.Archetype] = cfg
			_, err := boss.NewCatalog(configs[boss.Belial], configs[boss.Bazuzu], configs[boss.Atlas])
			assert.True(t, errors.Is(err, boss.ErrInvalidCatalog))
		})
	}
}

func TestSkillTable_Find(t *testing.T) {
	s, ok := boss.BazuzuConfig().Skills.Find(boss.SkillSleep)
	require.True(t, ok)
	assert.Equal(t, boss.EffectSkipTurns, s.Effect)

	_, ok = boss.BazuzuConfig().Skills.Find(boss.SkillCharge)
	assert.False(t, ok)
}

func TestConfig_Validate_Basics(t *testing.T) {
	cfg := boss.BelialConfig()
	cfg.MaxHP = 0
	assert.Error(t, cfg.Validate())

	cfg = boss.BelialConfig()
	cfg.Archetype = boss.ArchetypeUnknown
	assert.True(t, errors.Is(cfg.Validate(), boss.ErrUnknownArchetype))

	cfg = boss.BelialConfig()
	cfg.GoldReward = -1
	assert.Error(t, cfg.Validate())
}

func TestKnownSkills_CoverDefaults(t *testing.T) {
	for _, cfg := range boss.Default().All() {
		known := boss.KnownSkills(cfg.Archetype)
		for _, s := range append(append(boss.SkillTable{}, cfg.Skills...), cfg.DesperateSkills...) {
			assert.Contains(t, known, s.ID)
		}
	}
	assert.Nil(t, boss.KnownSkills(boss.ArchetypeUnknown))
}

func TestSkill_Percent(t *testing.T) {
	for _, cfg := range boss.Default().All() {
		for _, s := range cfg.Skills {
			assert.Equal(t, float64(s.Percent()), math.Round(s.Chance*100))
		}
	}
}
