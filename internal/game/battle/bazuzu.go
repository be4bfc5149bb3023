package battle

import (
	"fmt"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// resolveBazuzu: attack (crit only possible when desperate), three debuffs
// with their own success checks, and two fixed-damage spells.
func (t *bossTurn) resolveBazuzu() error {
	s, err := t.selectSkill()
	if err != nil {
		return err
	}
	switch s.ID {
	case boss.SkillAttack:
		damage, critical := s.Damage, false
		if s.CritChance > 0 && t.cfg.Desperate(t.state.CurrentHP) &&
			t.roller.Check(s.CritChance, "bazuzu critical") {
			damage, critical = s.Damage*2, true
		}
		if critical {
			t.hit(s, ActionCriticalHit, damage, true,
				fmt.Sprintf("%s lands a critical hit! %s takes a massive %d damage!", t.cfg.Name, t.player, damage))
		} else {
			t.hit(s, s.Name, damage, false,
				fmt.Sprintf("%s attacks! %s takes %d damage!", t.cfg.Name, t.player, damage))
		}
	case boss.SkillDeathCurse, boss.SkillSilence, boss.SkillSleep:
		t.debuff(s)
	case boss.SkillBlizzard, boss.SkillSearingLight:
		t.flat(s)
	default:
		return t.unknownSkill(s)
	}
	return nil
}
