package battle

import (
	"fmt"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// DefaultDieFaces is the number of faces on the player's attack die.
const DefaultDieFaces = 6

// Roller supplies the boss's random draws. *dice.Roller satisfies it.
//
// Every call is an independent draw; secondary checks are never derived from
// the action roll.
type Roller interface {
	// Percentile returns a uniform integer in [1, 100].
	Percentile(purpose string) int
	// Check draws a fresh percentile and reports whether it is <= chance*100.
	Check(chance float64, purpose string) bool
}

// PlayerOutcome is what ResolvePlayerAttack produced.
type PlayerOutcome struct {
	State   BossState
	Entries []LogEntry
	Damage  int
	Victory bool
}

// BossOutcome is what ResolveBossAction produced.
type BossOutcome struct {
	State          BossState
	Entries        []LogEntry
	Skill          string
	DamageToPlayer int
	Effect         *SpecialEffect
}

// Resolver applies player attacks and boss actions to boss states. It holds
// no battle state of its own; the only source of variation is its Roller.
type Resolver struct {
	catalog  *boss.Catalog
	roller   Roller
	dieFaces int
}

// NewResolver creates a Resolver.
//
// Precondition: catalog has passed Validate; roller is non-nil; dieFaces >= 2.
func NewResolver(catalog *boss.Catalog, roller Roller, dieFaces int) *Resolver {
	return &Resolver{catalog: catalog, roller: roller, dieFaces: dieFaces}
}

// Catalog returns the catalog the resolver reads tuning from.
func (r *Resolver) Catalog() *boss.Catalog { return r.catalog }

// DieFaces returns the size of the player's attack die.
func (r *Resolver) DieFaces() int { return r.dieFaces }

// ResolvePlayerAttack applies a player's dice roll to state.
//
// Damage equals diceValue, or floor(diceValue/2) when the boss is shielded; the
// shield is consumed by the attack and its removal is logged before the hit.
//
// Precondition: state is not defeated; 1 <= diceValue <= DieFaces().
// Postcondition: State.CurrentHP == max(0, state.CurrentHP-Damage);
// State.Shielded is false; Victory iff State.CurrentHP == 0, in which case
// State.Defeated is true.
func (r *Resolver) ResolvePlayerAttack(state BossState, diceValue, turn int, playerName string) (PlayerOutcome, error) {
	if diceValue < 1 || diceValue > r.dieFaces {
		return PlayerOutcome{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidDice, diceValue, r.dieFaces)
	}
	if state.Defeated {
		return PlayerOutcome{}, ErrBossDefeated
	}
	cfg, err := r.catalog.Get(state.Archetype)
	if err != nil {
		return PlayerOutcome{}, err
	}

	next := state.next()
	var entries []LogEntry

	damage := diceValue
	if next.Shielded {
		damage = diceValue / 2
		next.Shielded = false
		entries = append(entries, LogEntry{
			Turn:        turn,
			Actor:       ActorBoss,
			Action:      ActionShieldBreaks,
			Description: fmt.Sprintf("%s's protection wears off!", cfg.Name),
		})
	}

	next.CurrentHP -= damage
	next.clampHP()
	entries = append(entries, LogEntry{
		Turn:        turn,
		Actor:       ActorPlayer,
		Action:      ActionPlayerAttack,
		Value:       intPtr(damage),
		Description: fmt.Sprintf("%s attacks! %s takes %d damage!", playerName, cfg.Name, damage),
		BossHP:      intPtr(next.CurrentHP),
		DamageType:  boss.DamagePhysical,
	})

	victory := next.CurrentHP == 0
	if victory {
		next.Defeated = true
		next.Charged = false
		entries = append(entries, LogEntry{
			Turn:        turn,
			Actor:       ActorBoss,
			Action:      ActionDefeated,
			Description: fmt.Sprintf("%s has been defeated!", cfg.Name),
			BossHP:      intPtr(0),
		})
	}

	return PlayerOutcome{
		State:   next.withEntries(entries),
		Entries: entries,
		Damage:  damage,
		Victory: victory,
	}, nil
}

// ResolveBossAction rolls and applies the boss's action for this turn.
//
// Precondition: state is not defeated.
// Postcondition: the returned State differs from state only in the fields the
// chosen action touches; unknown archetypes fail with boss.ErrUnknownArchetype.
func (r *Resolver) ResolveBossAction(state BossState, turn int, playerName string) (BossOutcome, error) {
	if state.Defeated {
		return BossOutcome{}, ErrBossDefeated
	}
	cfg, err := r.catalog.Get(state.Archetype)
	if err != nil {
		return BossOutcome{}, err
	}
	t := &bossTurn{
		cfg:    cfg,
		state:  state.next(),
		turn:   turn,
		player: playerName,
		roller: r.roller,
	}

	switch state.Archetype {
	case boss.Belial:
		err = t.resolveBelial()
	case boss.Bazuzu:
		err = t.resolveBazuzu()
	case boss.Atlas:
		err = t.resolveAtlas()
	default:
		err = fmt.Errorf("%w: %s", boss.ErrUnknownArchetype, state.Archetype)
	}
	if err != nil {
		return BossOutcome{}, err
	}

	return BossOutcome{
		State:          t.state.withEntries(t.entries),
		Entries:        t.entries,
		Skill:          t.skill,
		DamageToPlayer: t.damage,
		Effect:         t.effect,
	}, nil
}

// bossTurn accumulates the result of one boss action while it is resolved.
type bossTurn struct {
	cfg    *boss.Config
	state  BossState
	turn   int
	player string
	roller Roller

	skill   string
	entries []LogEntry
	damage  int
	effect  *SpecialEffect
}

// selectSkill draws the action roll against the table in force at current HP.
func (t *bossTurn) selectSkill() (boss.Skill, error) {
	roll := t.roller.Percentile(t.cfg.Archetype.String() + " action")
	s, err := t.cfg.TableFor(t.state.CurrentHP).Select(roll)
	if err != nil {
		return boss.Skill{}, fmt.Errorf("boss %s: %w", t.cfg.Archetype, err)
	}
	t.skill = s.ID
	return s, nil
}

func (t *bossTurn) log(e LogEntry) {
	e.Turn = t.turn
	e.Actor = ActorBoss
	t.entries = append(t.entries, e)
}

func (t *bossTurn) unknownSkill(s boss.Skill) error {
	return fmt.Errorf("%w: %s has no rule for %q", ErrUnknownSkill, t.cfg.Archetype, s.ID)
}

// hit deals damage to the player and logs it.
func (t *bossTurn) hit(s boss.Skill, action string, damage int, critical bool, desc string) {
	t.damage = damage
	t.log(LogEntry{
		Action:      action,
		Value:       intPtr(damage),
		Description: desc,
		Critical:    critical,
		DamageType:  s.DamageType,
	})
}

// flat resolves a fixed-damage skill.
func (t *bossTurn) flat(s boss.Skill) {
	t.hit(s, s.Name, s.Damage, false,
		fmt.Sprintf("%s uses %s! %s takes %d damage!", t.cfg.Name, s.Name, t.player, s.Damage))
}

// desperate resolves a skill whose damage and name change at or below half HP.
func (t *bossTurn) desperate(s boss.Skill) {
	name, damage := s.Name, s.Damage
	if s.DesperateDamage > 0 && t.cfg.Desperate(t.state.CurrentHP) {
		damage = s.DesperateDamage
		if s.DesperateName != "" {
			name = s.DesperateName
		}
	}
	t.hit(s, name, damage, false,
		fmt.Sprintf("%s casts %s! %s takes %d damage!", t.cfg.Name, name, t.player, damage))
}

// heal restores HP clamped at MaxHP; the logged value is the HP actually gained.
func (t *bossTurn) heal(s boss.Skill) {
	before := t.state.CurrentHP
	t.state.CurrentHP += s.Heal
	t.state.clampHP()
	gained := t.state.CurrentHP - before
	t.log(LogEntry{
		Action:      s.Name,
		Value:       intPtr(gained),
		Description: fmt.Sprintf("%s casts %s! It recovers %d HP!", t.cfg.Name, s.Name, gained),
		BossHP:      intPtr(t.state.CurrentHP),
	})
}

// shield raises the damage-halving buff.
func (t *bossTurn) shield(s boss.Skill) {
	t.state.Shielded = true
	t.log(LogEntry{
		Action:      s.Name,
		Description: fmt.Sprintf("%s casts %s! Its defence rises!", t.cfg.Name, s.Name),
	})
}

// debuff rolls the skill's success check and either imposes its effect or
// logs a single miss.
func (t *bossTurn) debuff(s boss.Skill) {
	if !t.roller.Check(s.SuccessChance, t.cfg.Archetype.String()+" "+s.ID+" success") {
		t.log(LogEntry{
			Action:      s.Name,
			Description: fmt.Sprintf("%s casts %s! But it missed %s!", t.cfg.Name, s.Name, t.player),
			Missed:      true,
			DamageType:  s.DamageType,
		})
		return
	}
	t.effect = &SpecialEffect{Kind: s.Effect, Magnitude: s.Magnitude}
	t.log(LogEntry{
		Action:      s.Name,
		Description: fmt.Sprintf("%s casts %s! %s", t.cfg.Name, s.Name, effectText(t.player, *t.effect)),
		DamageType:  s.DamageType,
	})
}

func effectText(player string, e SpecialEffect) string {
	switch e.Kind {
	case boss.EffectResetToStart:
		return fmt.Sprintf("Everything goes dark for %s... (back to the start)", player)
	case boss.EffectSkipTurns:
		return fmt.Sprintf("%s falls asleep! (loses %d turns)", player, e.Magnitude)
	case boss.EffectSealItems:
		return fmt.Sprintf("%s's spells and items are sealed! (%d turns)", player, e.Magnitude)
	default:
		return ""
	}
}
