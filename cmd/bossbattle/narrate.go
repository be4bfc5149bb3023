package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/cory-johannsen/dicequest/internal/game/battle"
	"github.com/cory-johannsen/dicequest/internal/game/player"
)

var (
	playerColor = color.New(color.FgGreen).SprintFunc()
	bossColor   = color.New(color.FgRed).SprintFunc()
	critColor   = color.New(color.FgHiRed, color.Bold).SprintFunc()
	missColor   = color.New(color.FgYellow).SprintFunc()
	hpColor     = color.New(color.FgCyan).SprintFunc()
)

// narrator prints battle log entries as they are produced.
type narrator struct {
	out io.Writer
}

func (n narrator) entries(entries []battle.LogEntry) {
	for _, e := range entries {
		fmt.Fprintln(n.out, n.line(e))
	}
}

func (n narrator) line(e battle.LogEntry) string {
	desc := e.Description
	switch {
	case e.Critical:
		desc = critColor(desc)
	case e.Missed:
		desc = missColor(desc)
	case e.Actor == battle.ActorPlayer:
		desc = playerColor(desc)
	default:
		desc = bossColor(desc)
	}
	line := fmt.Sprintf("[turn %d] %s", e.Turn, desc)
	if e.BossHP != nil {
		line += " " + hpColor(fmt.Sprintf("(boss HP %d)", *e.BossHP))
	}
	return line
}

// standings prints every seat with its board position and pending counters,
// marking the active player.
func standings(out io.Writer, players []*player.Player, active *player.Player) {
	for _, p := range players {
		mark := " "
		if p == active {
			mark = "*"
		}
		line := fmt.Sprintf("%s %-12s tile %3d  %5d G", mark, p.Name, p.Position, p.Gold)
		if p.SkipTurns > 0 {
			line += fmt.Sprintf("  asleep x%d", p.SkipTurns)
		}
		if !p.CanUseItems() {
			line += fmt.Sprintf("  sealed x%d", p.SealTurns)
		}
		fmt.Fprintln(out, line)
	}
}
