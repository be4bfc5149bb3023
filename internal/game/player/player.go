// Package player applies battle outcomes to the board-game player and
// rotates turns between players.
package player

import (
	"fmt"

	"github.com/cory-johannsen/dicequest/internal/game/battle"
	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// Player is the board-game state of one participant.
type Player struct {
	Name string `json:"name"`
	// Position is the tile index, 0 being the start.
	Position int `json:"position"`
	Gold     int `json:"gold"`
	// SkipTurns is the number of upcoming turns the player sits out.
	SkipTurns int `json:"skip_turns"`
	// SealTurns is the number of upcoming turns items and abilities are blocked.
	SealTurns int `json:"seal_turns"`
}

// Change describes what Apply did to a player.
type Change struct {
	From, To   int
	GoldGained int
	Effect     *battle.SpecialEffect
}

// String renders the change for the battle summary.
func (c Change) String() string {
	s := fmt.Sprintf("position %d → %d", c.From, c.To)
	if c.GoldGained > 0 {
		s += fmt.Sprintf(", +%d G", c.GoldGained)
	}
	if c.Effect != nil {
		s += fmt.Sprintf(", %s", c.Effect.Kind)
		if c.Effect.Magnitude > 0 {
			s += fmt.Sprintf(" x%d", c.Effect.Magnitude)
		}
	}
	return s
}

// Apply mutates p according to a finished battle.
//
// Precondition: boardSize >= 1; res is a terminal battle result.
// Postcondition: 0 <= p.Position < boardSize; on victory p.Gold grew by
// res.GoldReward; on defeat p moved back res.StepsBack tiles and any special
// effect was applied on top.
func (p *Player) Apply(res battle.Result, boardSize int) (Change, error) {
	if boardSize < 1 {
		return Change{}, fmt.Errorf("board size must be >= 1, got %d", boardSize)
	}
	ch := Change{From: p.Position}

	if res.Victory {
		p.Gold += res.GoldReward
		ch.GoldGained = res.GoldReward
	} else {
		p.Position = clamp(p.Position-res.StepsBack, 0, boardSize-1)
	}

	if res.Effect != nil {
		switch res.Effect.Kind {
		case boss.EffectResetToStart:
			p.Position = 0
		case boss.EffectSkipTurns:
			p.SkipTurns += res.Effect.Magnitude
		case boss.EffectSealItems:
			p.SealTurns += res.Effect.Magnitude
		default:
			return Change{}, fmt.Errorf("unknown special effect %q", res.Effect.Kind)
		}
		e := *res.Effect
		ch.Effect = &e
	}

	p.Position = clamp(p.Position, 0, boardSize-1)
	ch.To = p.Position
	return ch, nil
}

// CanUseItems reports whether the player's items and abilities are unsealed.
func (p *Player) CanUseItems() bool { return p.SealTurns == 0 }

// EndTurn ticks down turn-limited effects at the end of the player's own turn.
func (p *Player) EndTurn() {
	if p.SealTurns > 0 {
		p.SealTurns--
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
