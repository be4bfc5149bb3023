package boss_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

func threeWay() boss.SkillTable {
	return boss.SkillTable{
		{ID: "a", Name: "A", Chance: 0.25, Category: boss.CategoryAttack},
		{ID: "b", Name: "B", Chance: 0.15, Category: boss.CategoryHeal},
		{ID: "c", Name: "C", Chance: 0.60, Category: boss.CategoryBuff},
	}
}

func TestSkillTable_Thresholds(t *testing.T) {
	assert.Equal(t, []int{25, 40, 100}, threeWay().Thresholds())
}

func TestSkillTable_Select_Boundaries(t *testing.T) {
	table := threeWay()
	tests := []struct {
		roll int
		want string
	}{
		{1, "a"}, {25, "a"}, {26, "b"}, {40, "b"}, {41, "c"}, {100, "c"},
	}
	for _, tc := range tests {
		s, err := table.Select(tc.roll)
		require.NoError(t, err)
		assert.Equal(t, tc.want, s.ID, "roll=%d", tc.roll)
	}
}

func TestSkillTable_Select_OutOfRange(t *testing.T) {
	table := threeWay()
	for _, roll := range []int{0, -1, 101} {
		_, err := table.Select(roll)
		assert.Error(t, err, "roll=%d", roll)
	}
}

func TestSkillTable_Validate_RejectsBadTotals(t *testing.T) {
	short := threeWay()
	short[2].Chance = 0.50
	assert.ErrorContains(t, short.Validate(), "sum to")

	over := threeWay()
	over[2].Chance = 0.70
	assert.Error(t, over.Validate())
}

func TestSkillTable_Validate_RejectsFractionalPercent(t *testing.T) {
	table := boss.SkillTable{
		{ID: "a", Name: "A", Chance: 0.255, Category: boss.CategoryAttack},
		{ID: "b", Name: "B", Chance: 0.745, Category: boss.CategoryAttack},
	}
	assert.ErrorContains(t, table.Validate(), "whole percentage")
}

func TestSkillTable_Validate_RejectsDuplicates(t *testing.T) {
	table := boss.SkillTable{
		{ID: "a", Name: "A", Chance: 0.5, Category: boss.CategoryAttack},
		{ID: "a", Name: "A", Chance: 0.5, Category: boss.CategoryAttack},
	}
	assert.ErrorContains(t, table.Validate(), "duplicate")
}

func TestSkill_Validate(t *testing.T) {
	good := boss.Skill{ID: "x", Name: "X", Chance: 1, Category: boss.CategoryDebuff,
		SuccessChance: 0.5, Effect: boss.EffectSkipTurns, Magnitude: 2}
	require.NoError(t, good.Validate())

	tests := map[string]func(s *boss.Skill){
		"empty id":        func(s *boss.Skill) { s.ID = "" },
		"empty name":      func(s *boss.Skill) { s.Name = "" },
		"zero chance":     func(s *boss.Skill) { s.Chance = 0 },
		"bad category":    func(s *boss.Skill) { s.Category = "dance" },
		"bad damage type": func(s *boss.Skill) { s.DamageType = "psychic" },
		"bad effect":      func(s *boss.Skill) { s.Effect = "polymorph" },
		"effect no roll":  func(s *boss.Skill) { s.SuccessChance = 0 },
		"crit > 1":        func(s *boss.Skill) { s.CritChance = 1.5 },
		"negative damage": func(s *boss.Skill) { s.Damage = -1 },
		"skip no turns":   func(s *boss.Skill) { s.Magnitude = 0 },
		"seal no turns":   func(s *boss.Skill) { s.Effect = boss.EffectSealItems; s.Magnitude = 0 },
		"strong no dmg":   func(s *boss.Skill) { s.StrongChance = 0.5 },
	}
	for name, mutate := range tests {
		s := good
		mutate(&s)
		assert.Error(t, s.Validate(), name)
	}
}

// Every roll in [1, 100] selects exactly one skill for any valid table.
func TestSkillTable_Property_SelectIsTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "skills")
		// Cut [1,100] into n non-empty whole-percent slices.
		remaining := 100
		table := make(boss.SkillTable, 0, n)
		for i := 0; i < n; i++ {
			pct := remaining
			if i < n-1 {
				pct = rapid.IntRange(1, remaining-(n-1-i)).Draw(rt, "pct")
			}
			remaining -= pct
			table = append(table, boss.Skill{
				ID: string(rune('a' + i)), Name: "S", Chance: float64(pct) / 100, Category: boss.CategoryAttack,
			})
		}
		require.NoError(rt, table.Validate())

		counts := make(map[string]int)
		for roll := 1; roll <= 100; roll++ {
			s, err := table.Select(roll)
			require.NoError(rt, err)
			counts[s.ID]++
		}
		for _, s := range table {
			assert.Equal(rt, s.Percent(), counts[s.ID], "skill %s", s.ID)
		}
	})
}
