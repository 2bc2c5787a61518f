package tictactoe

import (
	"fmt"

	"alphazero/game"
)

const (
	Size  = 3
	Cells = Size * Size
)

type Mark int8

const (
	Empty Mark = iota
	Nought
	Cross
)

// Board cells are stored row by row; cell i is action i.
type Board [Cells]Mark

type State struct {
	Board Board
	Turn  Mark
}

func (s State) Key() game.Key {
	b := make([]byte, 0, Cells+1)
	for _, m := range s.Board {
		b = append(b, byte(m))
	}
	b = append(b, byte(s.Turn))
	return game.Key(b)
}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// Game implements game.Game. Player 0 plays noughts and moves first.
// Scores are 1 for a win, -1 for a loss and 0 for a draw.
type Game struct{}

func New() Game {
	return Game{}
}

func (Game) InitialState() game.State {
	return State{Turn: Nought}
}

func (Game) Players() int {
	return 2
}

func (Game) Player(s game.State) int {
	return player(s.(State).Turn)
}

func (Game) LegalActions(s game.State) []bool {
	st := s.(State)
	mask := make([]bool, Cells)
	if _, over := outcome(st); over {
		return mask
	}
	for i, m := range st.Board {
		mask[i] = m == Empty
	}
	return mask
}

func (Game) Play(s game.State, a game.Action) (game.State, error) {
	st := s.(State)
	if a < 0 || int(a) >= Cells {
		return nil, fmt.Errorf("action %d out of range", a)
	}
	if st.Board[a] != Empty {
		return nil, fmt.Errorf("cell %d is occupied", a)
	}
	if _, over := outcome(st); over {
		return nil, fmt.Errorf("game is over - no moves allowed")
	}
	next := st
	next.Board[a] = st.Turn
	next.Turn = opposite(st.Turn)
	return next, nil
}

func (Game) Outcome(s game.State) (game.Outcome, bool) {
	return outcome(s.(State))
}

func outcome(s State) (game.Outcome, bool) {
	for _, line := range lines {
		m := s.Board[line[0]]
		if m != Empty && m == s.Board[line[1]] && m == s.Board[line[2]] {
			scores := game.Outcome{-1, -1}
			scores[player(m)] = 1
			return scores, true
		}
	}
	for _, m := range s.Board {
		if m == Empty {
			return nil, false
		}
	}
	return game.Outcome{0, 0}, true
}

func player(m Mark) int {
	if m == Cross {
		return 1
	}
	return 0
}

func opposite(m Mark) Mark {
	switch m {
	case Nought:
		return Cross
	case Cross:
		return Nought
	}
	return m
}
