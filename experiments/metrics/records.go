// Package metrics holds the record types and the CSV writer for
// self-play experiments.
package metrics

import (
	"time"

	"ccg/searcher"
)

// AgentConfig identifies one searcher configuration under test.
type AgentConfig struct {
	ID              int
	Name            string
	Workers         int
	TimeLimit       time.Duration
	EvaluationLimit int
	Temperature     float64
	RAVE            bool
	HeuristicEval   bool
}

// MoveMetric is one decision taken during a game.
type MoveMetric struct {
	Step   int
	Player int
	searcher.SearchMetric
}

// GameMetric summarizes one completed game.
type GameMetric struct {
	StartingPlayer int
	Winner         int // player index, -1 for a draw or an unfinished game
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// GameRecord ties a game's metric to the two agent configs that played
// it.
type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

// MoveRecord ties a move metric to its game.
type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}
