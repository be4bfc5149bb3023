package player

import "errors"

// ErrNoPlayers is returned when a rotation is created without players.
var ErrNoPlayers = errors.New("rotation needs at least one player")

// Rotation hands the turn from player to player in seat order, consuming
// skip counters on the way.
type Rotation struct {
	players []*Player
	active  int
}

// NewRotation creates a Rotation whose first active player is players[0].
//
// Postcondition: Returns ErrNoPlayers if players is empty.
func NewRotation(players ...*Player) (*Rotation, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	return &Rotation{players: players}, nil
}

// Active returns the player whose turn it is.
func (r *Rotation) Active() *Player { return r.players[r.active] }

// Players returns the seated players in seat order.
func (r *Rotation) Players() []*Player { return r.players }

// Next ends the active player's turn and passes the turn on. A player with
// pending skips loses one and is passed over. At most one full lap is
// skipped, so a table where everyone is asleep still yields a player.
//
// Postcondition: returns the new active player and the players skipped to reach them.
func (r *Rotation) Next() (*Player, []*Player) {
	r.Active().EndTurn()

	n := len(r.players)
	next := (r.active + 1) % n
	var skipped []*Player
	for attempts := 0; attempts < n; attempts++ {
		p := r.players[next]
		if p.SkipTurns == 0 {
			break
		}
		p.SkipTurns--
		skipped = append(skipped, p)
		next = (next + 1) % n
	}
	r.active = next
	return r.Active(), skipped
}
