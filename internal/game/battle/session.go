package battle

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dicequest/internal/game/boss"
)

// Session is the state machine for one boss battle:
//
//	start → player_turn → player_rolling → player_result → {result | boss_turn}
//	boss_turn → boss_result → {result | player_turn (turn+1)}
//
// Only the player's roll (SubmitRoll) and elapsed presentation delays
// (Advance) move the machine. Beyond its phase, boss state and turn counter,
// the session remembers only the latest boss outcome.
//
// boss_result leads to result when the boss dealt damage or landed a special
// effect, even one dealing no damage, so the effect reaches the Result.
//
// A Session is not safe for concurrent use. Exactly one authoritative caller,
// the client of the player whose turn it is, may advance it and publish the
// resulting states; every other observer works from a Snapshot.
type Session struct {
	id         uuid.UUID
	resolver   *Resolver
	cfg        *boss.Config
	playerName string
	pacing     Pacing
	logger     *zap.Logger
	listeners  []func([]LogEntry)

	phase Phase
	state BossState
	turn  int
	// Latest boss outcome, read when leaving boss_result.
	bossDamage int
	bossEffect *SpecialEffect
}

// Option configures a Session.
type Option func(*Session)

// WithPacing sets the presentation delays; the default is zero pacing.
func WithPacing(p Pacing) Option { return func(s *Session) { s.pacing = p } }

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l *zap.Logger) Option { return func(s *Session) { s.logger = l } }

// WithID fixes the session identifier instead of generating one.
func WithID(id uuid.UUID) Option { return func(s *Session) { s.id = id } }

// NewSession starts a battle against a fresh boss of the given archetype.
//
// Precondition: resolver is non-nil.
// Postcondition: Phase() == PhaseStart; Turn() == 0; the boss is at full HP.
func NewSession(resolver *Resolver, archetype boss.Archetype, playerName string, opts ...Option) (*Session, error) {
	cfg, err := resolver.Catalog().Get(archetype)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:         uuid.New(),
		resolver:   resolver,
		cfg:        cfg,
		playerName: playerName,
		logger:     zap.NewNop(),
		phase:      PhaseStart,
		state:      NewBossState(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Turn returns the current turn number; 0 before the first player turn.
func (s *Session) Turn() int { return s.turn }

// State returns the current boss state. The returned log is a copy.
func (s *Session) State() BossState { return s.state.next() }

// Config returns the archetype definition the session fights.
func (s *Session) Config() *boss.Config { return s.cfg }

// PlayerName returns the name used in log descriptions.
func (s *Session) PlayerName() string { return s.playerName }

// Delay returns the presentation delay attached to the current phase.
func (s *Session) Delay() time.Duration { return s.pacing.For(s.phase) }

// AwaitingRoll reports whether the session is waiting for SubmitRoll.
func (s *Session) AwaitingRoll() bool { return s.phase == PhasePlayerTurn }

// Done reports whether the session has reached its terminal phase.
func (s *Session) Done() bool { return s.phase == PhaseResult }

// OnEntries registers fn to receive every batch of log entries as it is
// produced, for narrative display.
func (s *Session) OnEntries(fn func([]LogEntry)) {
	s.listeners = append(s.listeners, fn)
}

// SubmitRoll resolves the player's attack with diceValue.
//
// Precondition: Phase() == PhasePlayerTurn.
// Postcondition: on success Phase() == PhasePlayerRolling; on error the
// session is unchanged.
func (s *Session) SubmitRoll(diceValue int) error {
	if s.phase != PhasePlayerTurn {
		return s.illegal("submit roll")
	}
	out, err := s.resolver.ResolvePlayerAttack(s.state, diceValue, s.turn, s.playerName)
	if err != nil {
		return fmt.Errorf("resolving player attack: %w", err)
	}
	s.state = out.State
	s.transition(PhasePlayerRolling)
	s.emit(out.Entries)
	return nil
}

// Advance performs the timed transition out of the current phase. The caller
// is responsible for waiting Delay() first; tests may advance immediately.
//
// Postcondition: on error the session is unchanged.
func (s *Session) Advance() error {
	switch s.phase {
	case PhaseStart:
		s.turn = 1
		s.transition(PhasePlayerTurn)
	case PhasePlayerRolling:
		s.transition(PhasePlayerResult)
	case PhasePlayerResult:
		if s.state.Defeated {
			s.transition(PhaseResult)
			return nil
		}
		s.transition(PhaseBossTurn)
	case PhaseBossTurn:
		out, err := s.resolver.ResolveBossAction(s.state, s.turn, s.playerName)
		if err != nil {
			return fmt.Errorf("resolving boss action: %w", err)
		}
		s.state = out.State
		s.bossDamage = out.DamageToPlayer
		s.bossEffect = out.Effect
		s.transition(PhaseBossResult)
		s.emit(out.Entries)
	case PhaseBossResult:
		if s.bossDamage > 0 || s.bossEffect != nil {
			s.transition(PhaseResult)
			return nil
		}
		s.turn++
		s.transition(PhasePlayerTurn)
	default:
		return s.illegal("advance")
	}
	return nil
}

// Result packages the terminal outcome.
//
// Precondition: Done() is true.
func (s *Session) Result() (Result, error) {
	if s.phase != PhaseResult {
		return Result{}, s.illegal("take result")
	}
	state := s.state.next()
	if state.Defeated {
		return victoryResult(state, s.cfg.GoldReward), nil
	}
	var effect *SpecialEffect
	if s.bossEffect != nil {
		e := *s.bossEffect
		effect = &e
	}
	return defeatResult(state, s.bossDamage, effect), nil
}

func (s *Session) transition(to Phase) {
	s.logger.Debug("battle transition",
		zap.String("session", s.id.String()),
		zap.Stringer("archetype", s.cfg.Archetype),
		zap.Stringer("from", s.phase),
		zap.Stringer("to", to),
		zap.Int("turn", s.turn),
		zap.Int("boss_hp", s.state.CurrentHP),
	)
	s.phase = to
	if to == PhaseResult {
		s.logger.Info("battle finished",
			zap.String("session", s.id.String()),
			zap.Stringer("archetype", s.cfg.Archetype),
			zap.String("player", s.playerName),
			zap.Bool("victory", s.state.Defeated),
			zap.Int("turns", s.turn),
			zap.Int("steps_back", s.bossDamage),
		)
	}
}

func (s *Session) emit(entries []LogEntry) {
	if len(entries) == 0 {
		return
	}
	for _, fn := range s.listeners {
		fn(slices.Clone(entries))
	}
}

func (s *Session) illegal(op string) error {
	return fmt.Errorf("%w: cannot %s in phase %s", ErrIllegalTransition, op, s.phase)
}

// Snapshot is the serialisable value of a Session, suitable for publishing
// to read-only observers or resuming later.
type Snapshot struct {
	ID         uuid.UUID      `json:"id"`
	PlayerName string         `json:"player_name"`
	Phase      Phase          `json:"phase"`
	Turn       int            `json:"turn"`
	State      BossState      `json:"state"`
	BossDamage int            `json:"boss_damage"`
	BossEffect *SpecialEffect `json:"boss_effect,omitempty"`
}

// Snapshot returns the current value of the machine.
func (s *Session) Snapshot() Snapshot {
	var effect *SpecialEffect
	if s.bossEffect != nil {
		e := *s.bossEffect
		effect = &e
	}
	return Snapshot{
		ID:         s.id,
		PlayerName: s.playerName,
		Phase:      s.phase,
		Turn:       s.turn,
		State:      s.state.next(),
		BossDamage: s.bossDamage,
		BossEffect: effect,
	}
}

// RestoreSession rebuilds a Session from a Snapshot.
//
// Postcondition: the restored session behaves exactly as the one the
// snapshot was taken from, given the same rolls.
func RestoreSession(resolver *Resolver, snap Snapshot, opts ...Option) (*Session, error) {
	s, err := NewSession(resolver, snap.State.Archetype, snap.PlayerName, append([]Option{WithID(snap.ID)}, opts...)...)
	if err != nil {
		return nil, err
	}
	if snap.State.CurrentHP < 0 || snap.State.CurrentHP > s.cfg.MaxHP || snap.State.MaxHP != s.cfg.MaxHP {
		return nil, fmt.Errorf("restoring session %s: boss hp %d/%d does not fit %s", snap.ID, snap.State.CurrentHP, snap.State.MaxHP, s.cfg.Archetype)
	}
	if snap.Phase.String() == "unknown" {
		return nil, fmt.Errorf("restoring session %s: unknown phase %d", snap.ID, int(snap.Phase))
	}
	s.phase = snap.Phase
	s.turn = snap.Turn
	s.state = snap.State.next()
	s.bossDamage = snap.BossDamage
	if snap.BossEffect != nil {
		e := *snap.BossEffect
		s.bossEffect = &e
	}
	return s, nil
}
