package searcher

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"ccg/game"
)

// evaluator turns states into [0, 1] rewards, either by random playout
// or by direct heuristic scoring.
type evaluator struct {
	depth         int
	heuristic     bool
	maxScoreSwing float64
	certaintyExp  float64
	weights       game.ScoreWeights
	metrics       Collector
}

func newEvaluator(cfg Config, metrics Collector) evaluator {
	return evaluator{
		depth:         cfg.RolloutDepth,
		heuristic:     cfg.HeuristicEval,
		maxScoreSwing: cfg.MaxScoreSwing,
		certaintyExp:  cfg.CertaintyExponent,
		weights:       cfg.ScoreWeights,
		metrics:       metrics,
	}
}

// evaluate scores a state for the given player. In rollout mode it
// first continues play with uniformly random moves; the moves played
// are appended to raveMoves for the RAVE update.
func (e evaluator) evaluate(state game.State, player int, rng *rand.Rand, raveMoves *[]game.Move) (float64, error) {
	if !e.heuristic {
		final, err := e.playout(state, rng, raveMoves)
		if err != nil {
			return 0, err
		}
		state = final
	}
	return e.sharpen(e.score(state, player)), nil
}

// playout plays random moves until the game ends or the depth budget
// is spent. Only true branching decisions consume depth; forced moves
// are free.
func (e evaluator) playout(state game.State, rng *rand.Rand, raveMoves *[]game.Move) (game.State, error) {
	depth := 0
	for {
		if state.IsTerminal() {
			e.metrics.AddFullPlayout()
			return state, nil
		}
		legal := state.LegalMoves()
		if len(legal) == 0 {
			return state, nil
		}
		if len(legal) > 1 {
			if depth >= e.depth {
				return state, nil
			}
			depth++
		}

		mv := legal[rng.Intn(len(legal))]
		next, err := state.Play(mv)
		if err != nil {
			return nil, fmt.Errorf("rollout: %w", err)
		}
		if raveMoves != nil {
			*raveMoves = append(*raveMoves, mv)
		}
		state = next
	}
}

// score maps a state to [0, 1] for the given player: terminal states
// by outcome, live states by clamped heuristic score difference.
func (e evaluator) score(state game.State, player int) float64 {
	switch out := state.Outcome(); out.Result {
	case game.Won:
		if out.Player == player {
			return Win
		}
		return Loss
	case game.Draw:
		return Tie
	}

	s0, s1 := state.Score(e.weights)
	diff := s0 - s1
	if player == 1 {
		diff = -diff
	}
	if diff > e.maxScoreSwing {
		diff = e.maxScoreSwing
	} else if diff < -e.maxScoreSwing {
		diff = -e.maxScoreSwing
	}
	return (diff + e.maxScoreSwing) / (2 * e.maxScoreSwing)
}

// sharpen applies the certainty exponent around the neutral 0.5.
// Exponents below 1 would push the extremes past the bounds, so the
// result is clamped back into [0, 1].
func (e evaluator) sharpen(r float64) float64 {
	if e.certaintyExp == 1.0 {
		return r
	}
	centered := r - Tie
	r = math.Copysign(math.Pow(math.Abs(centered), e.certaintyExp), centered) + Tie
	return math.Min(Win, math.Max(Loss, r))
}
