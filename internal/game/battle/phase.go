package battle

import (
	"fmt"
	"time"
)

// Phase is a state of the battle session machine.
type Phase int

const (
	PhaseStart Phase = iota
	PhasePlayerTurn
	PhasePlayerRolling
	PhasePlayerResult
	PhaseBossTurn
	PhaseBossResult
	PhaseResult
)

var phaseNames = [...]string{
	PhaseStart:         "start",
	PhasePlayerTurn:    "player_turn",
	PhasePlayerRolling: "player_rolling",
	PhasePlayerResult:  "player_result",
	PhaseBossTurn:      "boss_turn",
	PhaseBossResult:    "boss_result",
	PhaseResult:        "result",
}

// String returns the snake_case name of the phase.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if p.String() == "unknown" {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Pacing holds the presentation delay attached to each timed phase. A phase
// with zero delay may be advanced immediately.
type Pacing struct {
	Start         time.Duration
	PlayerRolling time.Duration
	PlayerResult  time.Duration
	BossTurn      time.Duration
	BossResult    time.Duration
}

// DefaultPacing mirrors the board game client's timings.
func DefaultPacing() Pacing {
	return Pacing{
		Start:         1500 * time.Millisecond,
		PlayerRolling: 1000 * time.Millisecond,
		PlayerResult:  1500 * time.Millisecond,
		BossTurn:      1000 * time.Millisecond,
		BossResult:    1500 * time.Millisecond,
	}
}

// For returns the delay before p may be advanced. PlayerTurn waits for input
// and Result is terminal, so both report zero.
func (pc Pacing) For(p Phase) time.Duration {
	switch p {
	case PhaseStart:
		return pc.Start
	case PhasePlayerRolling:
		return pc.PlayerRolling
	case PhasePlayerResult:
		return pc.PlayerResult
	case PhaseBossTurn:
		return pc.BossTurn
	case PhaseBossResult:
		return pc.BossResult
	default:
		return 0
	}
}
