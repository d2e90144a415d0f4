package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"ccg/game"
)

// greedyTemperature is the threshold below which final selection is
// purely greedy on visit counts.
const greedyTemperature = 0.01

// varianceCap is the theoretical maximum variance of a [0, 1]-bounded
// reward, used by UCB-Tuned to cap the exploration term.
const varianceCap = 0.25

// selector scores children during tree descent.
type selector struct {
	c              float64
	varianceWeight float64
	rave           bool
	raveK          float64
}

func newSelector(cfg Config) selector {
	return selector{
		c:              cfg.ExplorationWeight,
		varianceWeight: cfg.VarianceWeight,
		rave:           cfg.RAVE,
		raveK:          cfg.RAVEEquivalence,
	}
}

// bestChild returns the child maximizing the UCB-Tuned score, blended
// with RAVE when enabled. An unvisited child always wins, first in
// order breaking ties.
func (s selector) bestChild(n *node) *node {
	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		if child.visits == 0 {
			return child
		}
		score := s.score(n, child)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func (s selector) score(parent, child *node) float64 {
	// Child statistics follow the child's mover; parentReward flips
	// them into the parent mover's perspective where the two differ.
	// Variance is unchanged by the flip.
	reward, _ := child.parentReward(parent.player)
	exploit := reward / float64(child.visits)
	variance := child.variance()

	if s.rave {
		if raveMean, ok := parent.raveMean(child.move); ok {
			beta := math.Sqrt(s.raveK / (3*float64(parent.visits) + s.raveK))
			exploit = (1-beta)*exploit + beta*raveMean
		}
	}

	v := variance
	if v > varianceCap {
		v = varianceCap
	}
	explore := s.c * math.Sqrt(math.Log(float64(parent.visits)+1)/float64(child.visits)*v)

	return exploit + s.varianceWeight*variance + explore
}

// chooseFinalMove applies temperature-controlled selection over the
// master statistics. At (near) zero temperature it is greedy on visit
// counts; otherwise moves are sampled with weight visits^(1/T), which
// flattens toward uniform as T grows. If every weight underflows to
// zero the selection falls back to greedy.
func chooseFinalMove(master *MasterStats, temperature float64, rng *rand.Rand) game.Move {
	if master.Len() == 0 {
		return nil
	}
	if temperature < greedyTemperature {
		return master.MostVisited()
	}

	moves := master.Moves()
	exponent := 1.0 / temperature
	weights := make([]float64, len(moves))
	total := 0.0
	for i, mv := range moves {
		w := math.Pow(float64(master.Get(mv).Visits), exponent)
		if math.IsInf(w, 1) {
			// Extreme sharpening; greedy is the limit behavior anyway.
			return master.MostVisited()
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return master.MostVisited()
	}

	pick := rng.Float64() * total
	for i, mv := range moves {
		pick -= weights[i]
		if pick <= 0 {
			return mv
		}
	}
	return moves[len(moves)-1]
}
