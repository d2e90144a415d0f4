// Package searcher implements information-set Monte Carlo tree search
// for two-player games with hidden information. Each search samples
// many determinized worlds, runs UCT probes on a per-world tree and
// aggregates root statistics across worlds by move identity.
package searcher

import "ccg/game"

// Rewards are normalized to [0, 1] from the perspective of the player
// to act at the node being scored. Backpropagation inverts the reward
// at every ancestor whose mover differs.
const (
	Win  = 1.0
	Loss = 0.0
	Tie  = 0.5
)

// Searcher finds a move for the acting player of a state. The returned
// count is the number of completed evaluations backing the decision
// (1 for a forced move, 0 when no search could run).
type Searcher interface {
	FindBestMove(state game.State) (game.Move, int, error)
}
