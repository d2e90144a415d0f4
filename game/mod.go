package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Result classifies the outcome of a game.
type Result int

const (
	Ongoing Result = iota
	Won
	Draw
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Outcome is the winner query result. Player is only meaningful when
// Result == Won.
type Outcome struct {
	Result Result
	Player int
}

// State is the contract between the rules engine and the searcher.
// States are immutable - operations on a State always return a new copy,
// the receiver is never modified.
type State interface {
	// Player returns the index of the player to act.
	Player() int
	// LegalMoves enumerates the legal moves in deterministic order.
	// An empty slice signals a terminal state or a forced pass.
	LegalMoves() []Move
	// Play applies a move and returns the resulting state. An invalid
	// move is a contract violation and returns an error; callers must
	// not continue searching past it.
	Play(Move) (State, error)
	// Outcome reports whether the game is decided.
	Outcome() Outcome
	// IsTerminal is a convenience wrapper around Outcome.
	IsTerminal() bool
	// Determinize returns a perfect-information sample of this state
	// consistent with everything the viewing player can observe.
	// Hidden zones are resampled, public information is untouched.
	Determinize(viewer int, rng *rand.Rand) State
	// Score returns heuristic scores for both players. Higher is better.
	Score(ScoreWeights) (p0, p1 float64)
}
