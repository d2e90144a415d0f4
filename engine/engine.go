// Package engine runs complete games between two AI agents.
package engine

import (
	"ccg/experiments/metrics"
	"ccg/game"
	"ccg/searcher"
)

// MaxMoves stops a game that fails to resolve. Well-formed games end
// long before this.
const MaxMoves = 500

// Agent is anything that can pick a move for the acting player.
// player.Player satisfies this.
type Agent interface {
	Name() string
	ChooseMove(state game.State) (game.Move, searcher.SearchMetric, error)
}

// Engine runs a game to completion and reports how it went.
type Engine interface {
	Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error)
}
