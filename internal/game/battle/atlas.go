package battle

import (
	"fmt"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// resolveAtlas consumes any pending charge before choosing an action. The
// charge doubles this turn's attack; any other action wastes it. A boss that
// entered the turn charged always leaves it uncharged: rolling charge again
// wastes the pending charge and does not re-arm a new one.
func (t *bossTurn) resolveAtlas() error {
	charged := t.state.Charged
	t.state.Charged = false

	s, err := t.selectSkill()
	if err != nil {
		return err
	}
	switch s.ID {
	case boss.SkillAttack:
		damage, critical := s.Damage, false
		if s.CritChance > 0 && t.roller.Check(s.CritChance, "atlas critical") {
			damage, critical = s.Damage*2, true
		}
		if charged {
			damage *= 2
		}
		suffix := ""
		if charged {
			suffix = " Its built-up power doubles the blow!"
		}
		if critical {
			t.hit(s, ActionCriticalHit, damage, true,
				fmt.Sprintf("%s lands a critical hit!%s %s takes a massive %d damage!", t.cfg.Name, suffix, t.player, damage))
		} else {
			t.hit(s, s.Name, damage, false,
				fmt.Sprintf("%s attacks!%s %s takes %d damage!", t.cfg.Name, suffix, t.player, damage))
		}
	case boss.SkillCharge:
		if charged {
			t.wasted()
			return nil
		}
		t.state.Charged = true
		t.log(LogEntry{
			Action:      s.Name,
			Description: fmt.Sprintf("%s is building up power... its next attack will deal double damage!", t.cfg.Name),
		})
	case boss.SkillWait:
		t.log(LogEntry{
			Action:      s.Name,
			Description: fmt.Sprintf("%s is watching closely... it does nothing.", t.cfg.Name),
		})
		if charged {
			t.wasted()
		}
	default:
		return t.unknownSkill(s)
	}
	return nil
}

func (t *bossTurn) wasted() {
	t.log(LogEntry{
		Action:      ActionChargeWasted,
		Description: fmt.Sprintf("%s's built-up power fades away, wasted...", t.cfg.Name),
	})
}
