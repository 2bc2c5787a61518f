package selfplay

import (
	"fmt"

	"alphazero/game"
	"alphazero/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Example is one training target produced by self-play. Policy is aligned with Actions.
type Example struct {
	Episode uuid.UUID
	Move    int
	Player  int
	State   game.State
	Actions []game.Action
	Policy  []float64
	Outcome game.Outcome // final scores of the episode
}

type Option func(s *Session)

func WithNoise(noise NoiseFunc) Option {
	return func(s *Session) {
		if noise != nil {
			s.noise = noise
		}
	}
}

func WithID(id uuid.UUID) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// Session plays one self-play episode with its own search tree.
type Session struct {
	ID       uuid.UUID
	game     game.Game
	expander searcher.Expander
	config   Config
	rng      *rand.Rand
	noise    NoiseFunc
}

// NewSession prepares an episode. The expander and rng are owned by the session for its
// lifetime and must not be shared with other goroutines.
func NewSession(g game.Game, expander searcher.Expander, config Config, rng *rand.Rand, options ...Option) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		ID:       uuid.New(),
		game:     g,
		expander: expander,
		config:   config,
		rng:      rng,
		noise:    DirichletNoise,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Run plays the episode to the end and returns one example per move, each carrying the final
// outcome.
func (s *Session) Run() ([]Example, error) {
	mcts := searcher.NewMCTS(s.game, s.expander, searcher.WithExploration(s.config.Exploration), searcher.WithMetrics())

	state := s.game.InitialState()
	temperature := s.config.Temperature
	examples := []Example{}
	simulations := int64(0)

	outcome, over := s.game.Outcome(state)
	for move := 0; !over; move++ {
		if move == s.config.TemperatureCutoff {
			temperature = s.config.EndgameTemperature
		}

		metrics, err := mcts.Search(state, s.config.Simulations)
		if err != nil {
			return nil, fmt.Errorf("search failed at move %d: %w", move, err)
		}
		simulations += metrics.Simulations

		dist, err := mcts.Distribution(state, temperature)
		if err != nil {
			return nil, err
		}

		if move == 0 && s.config.NoiseWeight > 0 {
			noise := s.noise(s.config.DirichletAlpha, len(dist.Probs), s.rng)
			blend(dist.Probs, noise, s.config.NoiseWeight)
		}

		examples = append(examples, Example{
			Episode: s.ID,
			Move:    move,
			Player:  s.game.Player(state),
			State:   state,
			Actions: dist.Actions,
			Policy:  dist.Probs,
		})

		action := dist.Actions[sample(dist.Probs, s.rng)]
		state, err = s.game.Play(state, action)
		if err != nil {
			return nil, fmt.Errorf("failed to play action %d at move %d: %w", action, move, err)
		}
		outcome, over = s.game.Outcome(state)
	}

	for i := range examples {
		examples[i].Outcome = outcome.Copy()
	}

	log.Debug().
		Str("episode", s.ID.String()).
		Int("moves", len(examples)).
		Int("nodes", mcts.Tree().Len()).
		Int64("simulations", simulations).
		Msg("episode finished")

	return examples, nil
}
