package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ccg/experiments/metrics"
	"ccg/game"
)

// Local runs both agents in-process against a single authoritative
// game state.
type Local struct {
	state  *game.GameState
	agents [2]Agent
}

// NewLocal deals a fresh game from the two decks and seats the agents.
// Agent 0 moves first.
func NewLocal(deck0, deck1 []int, agents [2]Agent, rng *rand.Rand) *Local {
	return &Local{
		state:  game.NewGame(deck0, deck1, rng),
		agents: agents,
	}
}

// State returns the current authoritative state.
func (e *Local) State() *game.GameState { return e.state }

// Run plays the game until it resolves or MaxMoves is hit. The
// returned outcome is Ongoing only when the move guard fired.
func (e *Local) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		Winner:         -1,
		StartTime:      start,
	}

	log.Info().
		Str("first", e.agents[e.state.Player()].Name()).
		Msg("game started")

	var moveMetrics []metrics.MoveMetric
	moves := 0
	for e.state.Outcome().Result == game.Ongoing && moves < MaxMoves {
		mover := e.state.Player()
		agent := e.agents[mover]

		mv, sm, err := agent.ChooseMove(e.state)
		if err != nil {
			return e.finish(&gameMetric, moves), gameMetric, moveMetrics,
				fmt.Errorf("agent %s: %w", agent.Name(), err)
		}
		if mv == nil {
			// The rules always offer at least EndTurn in a live game.
			return e.finish(&gameMetric, moves), gameMetric, moveMetrics,
				fmt.Errorf("agent %s found no move in a live game", agent.Name())
		}

		next, err := e.state.Play(mv)
		if err != nil {
			return e.finish(&gameMetric, moves), gameMetric, moveMetrics,
				fmt.Errorf("agent %s played an illegal move: %w", agent.Name(), err)
		}
		e.state = next.(*game.GameState)
		moves++

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         moves,
			Player:       mover,
			SearchMetric: sm,
		})

		log.Debug().
			Int("step", moves).
			Str("agent", agent.Name()).
			Stringer("move", mv).
			Int("evaluations", sm.Evaluations).
			Msg("move played")
	}

	outcome := e.finish(&gameMetric, moves)

	switch outcome.Result {
	case game.Won:
		gameMetric.Winner = outcome.Player
		log.Info().
			Str("winner", e.agents[outcome.Player].Name()).
			Int("moves", moves).
			Dur("duration", gameMetric.Duration).
			Msg("game over")
	case game.Draw:
		log.Info().Int("moves", moves).Msg("game drawn")
	default:
		log.Warn().Int("moves", moves).Msg("game stopped at the move guard")
	}

	return outcome, gameMetric, moveMetrics, nil
}

// finish stamps the end-of-game fields and returns the final outcome.
func (e *Local) finish(gm *metrics.GameMetric, moves int) game.Outcome {
	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.TotalMoves = moves
	return e.state.Outcome()
}
