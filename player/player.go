// Package player wraps the searcher in named AI opponents with
// different playing styles.
package player

import (
	"fmt"
	"time"

	"ccg/game"
	"ccg/searcher"
)

// Personality names a preset searcher configuration.
type Personality string

const (
	// Robot always picks the most-visited move and never blunders.
	Robot Personality = "robot"
	// Competitive searches hard and uses RAVE, with a touch of
	// temperature so repeated games vary.
	Competitive Personality = "competitive"
	// Casual thinks less and occasionally throws a move away.
	Casual Personality = "casual"
	// Wildcard plays fast, hot and error-prone.
	Wildcard Personality = "wildcard"
)

// Personalities lists the presets in rough order of strength.
func Personalities() []Personality {
	return []Personality{Robot, Competitive, Casual, Wildcard}
}

func (p Personality) options() ([]searcher.Option, error) {
	switch p {
	case Robot:
		return []searcher.Option{
			searcher.WithTimeLimit(time.Second),
			searcher.WithTemperature(0),
		}, nil
	case Competitive:
		return []searcher.Option{
			searcher.WithTimeLimit(time.Second),
			searcher.WithTemperature(0.3),
			searcher.WithRAVE(350),
		}, nil
	case Casual:
		return []searcher.Option{
			searcher.WithTimeLimit(250 * time.Millisecond),
			searcher.WithTemperature(1.5),
			searcher.WithBlunderChance(0.05),
		}, nil
	case Wildcard:
		return []searcher.Option{
			searcher.WithTimeLimit(100 * time.Millisecond),
			searcher.WithTemperature(3.0),
			searcher.WithBlunderChance(0.15),
		}, nil
	default:
		return nil, fmt.Errorf("player: unknown personality %q", p)
	}
}

// Player is an AI opponent: a named searcher with a playing style.
type Player struct {
	name string
	mcts *searcher.MCTS
}

// New builds a player from a personality preset. Extra options are
// applied on top of the preset, so callers can pin a seed or adjust
// budgets without losing the style.
func New(name string, personality Personality, extra ...searcher.Option) (*Player, error) {
	opts, err := personality.options()
	if err != nil {
		return nil, err
	}
	m, err := searcher.New(append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("player %s: %w", name, err)
	}
	return &Player{name: name, mcts: m}, nil
}

// NewWithSearcher wraps an already-configured searcher.
func NewWithSearcher(name string, m *searcher.MCTS) *Player {
	return &Player{name: name, mcts: m}
}

// Name returns the player's display name.
func (p *Player) Name() string { return p.name }

// Config exposes the underlying searcher configuration.
func (p *Player) Config() searcher.Config { return p.mcts.Config() }

// ChooseMove picks a move for the acting player in the given state.
// A nil move with a nil error means the state offers no legal moves.
func (p *Player) ChooseMove(state game.State) (game.Move, searcher.SearchMetric, error) {
	return p.mcts.FindBestMoveMetrics(state)
}
