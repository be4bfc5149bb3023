package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/dicequest/internal/game/battle"
	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// ErrBattleNotFound is returned when a battle report lookup yields no results.
var ErrBattleNotFound = errors.New("battle not found")

// ErrBattleExists is returned when a battle report with the same ID was already saved.
var ErrBattleExists = errors.New("battle already saved")

// BattleReport is the persisted record of one finished battle session.
type BattleReport struct {
	ID         uuid.UUID
	RoomID     string
	PlayerName string
	Turns      int
	Result     battle.Result
	CreatedAt  time.Time
}

// BattleRepository stores battle reports and the per-room set of defeated bosses.
type BattleRepository struct {
	db *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{db: db}
}

// Save stores report and, on victory, marks its archetype defeated in the
// room, in one transaction.
//
// Precondition: report.RoomID is non-empty; report.Result is terminal.
// Postcondition: Returns the report with CreatedAt set, or ErrBattleExists
// when report.ID was already saved.
func (r *BattleRepository) Save(ctx context.Context, report BattleReport) (BattleReport, error) {
	if report.RoomID == "" {
		return BattleReport{}, fmt.Errorf("saving battle %s: room id must not be empty", report.ID)
	}
	res := report.Result
	state, err := json.Marshal(res.FinalState)
	if err != nil {
		return BattleReport{}, fmt.Errorf("encoding final state: %w", err)
	}
	log, err := json.Marshal(res.Log)
	if err != nil {
		return BattleReport{}, fmt.Errorf("encoding battle log: %w", err)
	}
	var effectKind *string
	effectMagnitude := 0
	if res.Effect != nil {
		k := string(res.Effect.Kind)
		effectKind = &k
		effectMagnitude = res.Effect.Magnitude
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return BattleReport{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO battles (id, room_id, archetype, player_name, turns, victory,
		                      steps_back, gold_reward, effect_kind, effect_magnitude,
		                      final_state, log)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		report.ID, report.RoomID, res.FinalState.Archetype.String(), report.PlayerName,
		report.Turns, res.Victory, res.StepsBack, res.GoldReward, effectKind, effectMagnitude,
		state, log,
	).Scan(&report.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return BattleReport{}, ErrBattleExists
		}
		return BattleReport{}, fmt.Errorf("inserting battle: %w", err)
	}

	if res.Victory {
		if err := markDefeated(ctx, tx, report.RoomID, res.FinalState.Archetype, &report.ID); err != nil {
			return BattleReport{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return BattleReport{}, fmt.Errorf("committing battle: %w", err)
	}
	return report, nil
}

// Get retrieves a battle report by ID.
//
// Postcondition: Returns ErrBattleNotFound if no report has that ID.
func (r *BattleRepository) Get(ctx context.Context, id uuid.UUID) (BattleReport, error) {
	var (
		report          BattleReport
		effectKind      *string
		effectMagnitude int
		state, log      []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, room_id, player_name, turns, victory, steps_back, gold_reward,
		        effect_kind, effect_magnitude, final_state, log, created_at
		 FROM battles WHERE id = $1`,
		id,
	).Scan(&report.ID, &report.RoomID, &report.PlayerName, &report.Turns,
		&report.Result.Victory, &report.Result.StepsBack, &report.Result.GoldReward,
		&effectKind, &effectMagnitude, &state, &log, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return BattleReport{}, ErrBattleNotFound
		}
		return BattleReport{}, fmt.Errorf("querying battle: %w", err)
	}
	if err := json.Unmarshal(state, &report.Result.FinalState); err != nil {
		return BattleReport{}, fmt.Errorf("decoding final state: %w", err)
	}
	if err := json.Unmarshal(log, &report.Result.Log); err != nil {
		return BattleReport{}, fmt.Errorf("decoding battle log: %w", err)
	}
	if effectKind != nil {
		report.Result.Effect = &battle.SpecialEffect{Kind: boss.EffectKind(*effectKind), Magnitude: effectMagnitude}
	}
	return report, nil
}

// ListByRoom returns every report saved for roomID, oldest first.
func (r *BattleRepository) ListByRoom(ctx context.Context, roomID string) ([]BattleReport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM battles WHERE room_id = $1 ORDER BY created_at, id`, roomID)
	if err != nil {
		return nil, fmt.Errorf("listing battles: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scanning battle ids: %w", err)
	}
	out := make([]BattleReport, 0, len(ids))
	for _, id := range ids {
		report, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, nil
}

// MarkDefeated adds a to the room's defeated set. Marking an archetype twice
// is not an error.
func (r *BattleRepository) MarkDefeated(ctx context.Context, roomID string, a boss.Archetype) error {
	return markDefeated(ctx, r.db, roomID, a, nil)
}

// Defeated returns the archetypes already defeated in roomID, in archetype order.
func (r *BattleRepository) Defeated(ctx context.Context, roomID string) ([]boss.Archetype, error) {
	rows, err := r.db.Query(ctx,
		`SELECT archetype FROM defeated_bosses WHERE room_id = $1`, roomID)
	if err != nil {
		return nil, fmt.Errorf("querying defeated bosses: %w", err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning defeated bosses: %w", err)
	}
	seen := make(map[boss.Archetype]bool, len(tags))
	for _, tag := range tags {
		a, err := boss.ParseArchetype(tag)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", roomID, err)
		}
		seen[a] = true
	}
	var out []boss.Archetype
	for _, a := range boss.Archetypes() {
		if seen[a] {
			out = append(out, a)
		}
	}
	return out, nil
}

// IsDefeated reports whether a has been defeated in roomID.
func (r *BattleRepository) IsDefeated(ctx context.Context, roomID string, a boss.Archetype) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM defeated_bosses WHERE room_id = $1 AND archetype = $2)`,
		roomID, a.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("querying defeated boss: %w", err)
	}
	return exists, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func markDefeated(ctx context.Context, db execer, roomID string, a boss.Archetype, battleID *uuid.UUID) error {
	if !a.Valid() {
		return fmt.Errorf("marking defeated: %w: %d", boss.ErrUnknownArchetype, int(a))
	}
	_, err := db.Exec(ctx,
		`INSERT INTO defeated_bosses (room_id, archetype, battle_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (room_id, archetype) DO NOTHING`,
		roomID, a.String(), battleID,
	)
	if err != nil {
		return fmt.Errorf("marking %s defeated in room %s: %w", a, roomID, err)
	}
	return nil
}
