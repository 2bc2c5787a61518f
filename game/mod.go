package game

import "errors"

var ErrNoLegalActions = errors.New("no legal actions at a non-terminal state")

// Key is the canonical byte encoding of a state. Two states with the same key are the same
// position for the purposes of search.
type Key string

// State should be immutable - Game.Play always returns a new value
type State interface {
	Key() Key
}

// Action indexes a flattened action space
type Action int

// Outcome holds one score per player, indexed by player id.
type Outcome []float64

// Game is the rules collaborator consumed by the searcher and self-play packages.
type Game interface {
	InitialState() State
	// Players returns the number of players, i.e. the length of every Outcome.
	Players() int
	// Player returns the id of the player to move.
	Player(State) int
	// LegalActions returns a mask over the whole action space.
	LegalActions(State) []bool
	Play(State, Action) (State, error)
	// Outcome reports the final scores once the state is terminal.
	Outcome(State) (Outcome, bool)
}

// Actions enumerates the legal actions of a mask in ascending order.
func Actions(mask []bool) []Action {
	actions := make([]Action, 0, len(mask))
	for i, legal := range mask {
		if legal {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (o Outcome) Copy() Outcome {
	if o == nil {
		return nil
	}
	c := make(Outcome, len(o))
	copy(c, o)
	return c
}
