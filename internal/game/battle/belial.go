package battle

import (
	"fmt"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// resolveBelial: attack (may roll a strong variant), heal, flames, spell
// (stronger when desperate) or shield.
func (t *bossTurn) resolveBelial() error {
	s, err := t.selectSkill()
	if err != nil {
		return err
	}
	switch s.ID {
	case boss.SkillAttack:
		damage := s.Damage
		if s.StrongChance > 0 && t.roller.Check(s.StrongChance, "belial strong attack") {
			damage = s.StrongDamage
		}
		t.hit(s, s.Name, damage, false,
			fmt.Sprintf("%s attacks! %s takes %d damage!", t.cfg.Name, t.player, damage))
	case boss.SkillHeal:
		t.heal(s)
	case boss.SkillFlames:
		t.flat(s)
	case boss.SkillSpell:
		t.desperate(s)
	case boss.SkillShield:
		t.shield(s)
	default:
		return t.unknownSkill(s)
	}
	return nil
}
