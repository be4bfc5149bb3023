// Package main provides the boss battle binary: it fights one scripted boss
// with real dice and presentation pacing, then applies the outcome to the
// player and optionally records it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicequest/internal/config"
	"github.com/cory-johannsen/dicequest/internal/game/battle"
	"github.com/cory-johannsen/dicequest/internal/game/boss"
	"github.com/cory-johannsen/dicequest/internal/game/dice"
	"github.com/cory-johannsen/dicequest/internal/game/player"
	"github.com/cory-johannsen/dicequest/internal/observability"
	"github.com/cory-johannsen/dicequest/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file; empty = defaults and environment only")
	archetypeTag := flag.String("boss", "belial", "boss archetype: belial, bazuzu or atlas")
	players := flag.String("players", "Hero", "comma-separated player names in seat order; the first one fights")
	roomID := flag.String("room", "local", "room identifier used for persistence")
	position := flag.Int("position", 0, "board position of the fighting player")
	seed := flag.Uint64("seed", 0, "seed for a reproducible battle; 0 = crypto dice")
	instant := flag.Bool("instant", false, "skip presentation pacing")
	noColor := flag.Bool("no-color", false, "disable coloured output")
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	archetype, err := boss.ParseArchetype(*archetypeTag)
	if err != nil {
		logger.Fatal("parsing boss", zap.Error(err))
	}

	catalog, err := loadCatalog(cfg.Battle.CatalogDir)
	if err != nil {
		logger.Fatal("loading boss catalog", zap.Error(err))
	}
	logger.Info("boss catalog loaded",
		zap.String("dir", cfg.Battle.CatalogDir),
		zap.Int("bosses", len(catalog.All())),
	)

	rotation, err := player.NewRotation(seats(*players)...)
	if err != nil {
		logger.Fatal("seating players", zap.Error(err))
	}
	fighter := rotation.Active()
	fighter.Position = *position

	var repo *postgres.BattleRepository
	if cfg.Storage.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()
		if err := pool.Health(ctx, 5*time.Second); err != nil {
			logger.Fatal("database health check", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		repo = pool.Battles()

		defeated, err := repo.IsDefeated(ctx, *roomID, archetype)
		if err != nil {
			logger.Fatal("checking defeated bosses", zap.Error(err))
		}
		if defeated {
			fmt.Fprintf(os.Stdout, "%s has already been defeated in room %s.\n", archetype, *roomID)
			return
		}
	}

	bossSrc, playerSrc := dice.NewCryptoSource(), dice.NewCryptoSource()
	if *seed != 0 {
		bossSrc, playerSrc = dice.NewSeededSource(*seed), dice.NewSeededSource(*seed+1)
	}
	resolver := battle.NewResolver(catalog, dice.NewLoggedRoller(bossSrc, logger), cfg.Battle.DieFaces)

	pacing := battle.Pacing{
		Start:         cfg.Battle.Pacing.Start,
		PlayerRolling: cfg.Battle.Pacing.PlayerRolling,
		PlayerResult:  cfg.Battle.Pacing.PlayerResult,
		BossTurn:      cfg.Battle.Pacing.BossTurn,
		BossResult:    cfg.Battle.Pacing.BossResult,
	}
	if *instant {
		pacing = battle.Pacing{}
	}

	battleID := uuid.New()
	battleLogger := observability.BattleLogger(logger, *roomID, battleID)
	session, err := battle.NewSession(resolver, archetype, fighter.Name,
		battle.WithID(battleID), battle.WithPacing(pacing), battle.WithLogger(battleLogger))
	if err != nil {
		logger.Fatal("starting battle", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "%s appears! (HP %d)\n", session.Config().Name, session.Config().MaxHP)
	session.OnEntries(narrator{out: os.Stdout}.entries)

	die, err := dice.Parse(fmt.Sprintf("1d%d", cfg.Battle.DieFaces))
	if err != nil {
		logger.Fatal("building player die", zap.Error(err))
	}
	playerRoller := dice.NewLoggedRoller(playerSrc, battleLogger)
	roll := func(context.Context) (int, error) {
		return playerRoller.Roll(die, fighter.Name+" attack").Total(), nil
	}

	result, err := battle.NewRunner(session, roll, battleLogger).Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stdout, "battle abandoned")
			return
		}
		logger.Fatal("running battle", zap.Error(err))
	}

	change, err := fighter.Apply(result, cfg.Battle.BoardSize)
	if err != nil {
		logger.Fatal("applying battle result", zap.Error(err))
	}

	if result.Victory {
		fmt.Fprintf(os.Stdout, "Victory! %s earns %d G.\n", fighter.Name, result.GoldReward)
	} else {
		fmt.Fprintf(os.Stdout, "Defeat. %s is pushed back %d tiles.\n", fighter.Name, result.StepsBack)
	}
	fmt.Fprintf(os.Stdout, "%s: %s\n", fighter.Name, change)

	if repo != nil {
		_, err := repo.Save(ctx, postgres.BattleReport{
			ID:         session.ID(),
			RoomID:     *roomID,
			PlayerName: fighter.Name,
			Turns:      session.Turn(),
			Result:     result,
		})
		if err != nil {
			logger.Fatal("saving battle", zap.Error(err))
		}
	}

	next, skipped := rotation.Next()
	for _, p := range skipped {
		fmt.Fprintf(os.Stdout, "%s is asleep and sits this turn out.\n", p.Name)
	}
	fmt.Fprintf(os.Stdout, "Next up: %s\n", next.Name)
	standings(os.Stdout, rotation.Players(), next)

	logger.Info("battle complete",
		zap.Stringer("boss", archetype),
		zap.Bool("victory", result.Victory),
		zap.Int("turns", session.Turn()),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func loadCatalog(dir string) (*boss.Catalog, error) {
	if dir == "" {
		return boss.Default(), nil
	}
	return boss.LoadDirectory(dir)
}

func seats(names string) []*player.Player {
	var out []*player.Player
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, &player.Player{Name: name})
		}
	}
	return out
}
