package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const (
	StartingHealth = 20
	MaxHandSize    = 7
	BoardSize      = 3
	MaxResource    = 10
	OpeningDraw    = 3
)

// UnitState is one unit on the board. Attack and Health are current
// values; static properties live in the card database.
type UnitState struct {
	CardID    int
	Attack    int
	Health    int
	Exhausted bool
}

// PlayerState holds everything belonging to one player. Cards are
// stored as IDs to keep states cheap to copy.
type PlayerState struct {
	Health    int
	Resource  int
	ManaCap   int
	Deck      []int
	Hand      []int
	Graveyard []int
	Board     []UnitState
}

func (p PlayerState) clone() PlayerState {
	c := p
	c.Deck = append([]int(nil), p.Deck...)
	c.Hand = append([]int(nil), p.Hand...)
	c.Graveyard = append([]int(nil), p.Graveyard...)
	c.Board = append([]UnitState(nil), p.Board...)
	return c
}

// GameState is the complete state of one game. It satisfies State; all
// mutating operations clone first and return the clone.
type GameState struct {
	Players [2]PlayerState
	Current int
	Turn    int
	Phase   Phase
}

// NewGame deals the opening hands and runs the first upkeep. Decks are
// shuffled in place before dealing.
func NewGame(deck0, deck1 []int, rng *rand.Rand) *GameState {
	gs := &GameState{Turn: 1, Phase: PhaseUpkeep}
	for i, deck := range [][]int{deck0, deck1} {
		p := &gs.Players[i]
		p.Health = StartingHealth
		p.Deck = append([]int(nil), deck...)
		rng.Shuffle(len(p.Deck), func(a, b int) {
			p.Deck[a], p.Deck[b] = p.Deck[b], p.Deck[a]
		})
		for n := 0; n < OpeningDraw; n++ {
			p.draw()
		}
	}
	gs.enterUpkeep()
	return gs
}

// Clone returns a deep copy. The card database is static and shared.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Players[0] = gs.Players[0].clone()
	c.Players[1] = gs.Players[1].clone()
	return &c
}

func (gs *GameState) Player() int { return gs.Current }

// Opponent returns the index of the player not to act.
func (gs *GameState) Opponent() int { return 1 - gs.Current }

func (gs *GameState) Outcome() Outcome {
	p0Lost := gs.Players[0].Health <= 0
	p1Lost := gs.Players[1].Health <= 0
	switch {
	case p0Lost && p1Lost:
		return Outcome{Result: Draw}
	case p0Lost:
		return Outcome{Result: Won, Player: 1}
	case p1Lost:
		return Outcome{Result: Won, Player: 0}
	default:
		return Outcome{Result: Ongoing}
	}
}

func (gs *GameState) IsTerminal() bool {
	return gs.Outcome().Result != Ongoing
}

// draw moves the top card of the deck to the hand. Drawing from an
// empty deck or over a full hand burns nothing and does nothing.
func (p *PlayerState) draw() {
	if len(p.Deck) == 0 || len(p.Hand) >= MaxHandSize {
		return
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
}

// Determinize returns a perfect-information sample from the viewing
// player's perspective. The opponent's hand and deck are pooled,
// shuffled and re-dealt preserving both counts exactly; the viewer's
// own deck order is freshly shuffled. Public zones are untouched and
// the receiver is never modified.
func (gs *GameState) Determinize(viewer int, rng *rand.Rand) State {
	d := gs.Clone()
	opp := &d.Players[1-viewer]

	pool := make([]int, 0, len(opp.Hand)+len(opp.Deck))
	pool = append(pool, opp.Hand...)
	pool = append(pool, opp.Deck...)
	rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })

	handSize := len(opp.Hand)
	opp.Hand = append([]int(nil), pool[:handSize]...)
	opp.Deck = append([]int(nil), pool[handSize:]...)

	own := &d.Players[viewer]
	rng.Shuffle(len(own.Deck), func(a, b int) {
		own.Deck[a], own.Deck[b] = own.Deck[b], own.Deck[a]
	})
	return d
}

// Play applies a move via the current phase's dispatch and returns the
// resulting state. An illegal move reports a desync error.
func (gs *GameState) Play(mv Move) (State, error) {
	next := gs.Clone()
	if err := next.processAction(mv); err != nil {
		return nil, fmt.Errorf("apply %v in %v: %w", mv, gs.Phase, err)
	}
	next.runAutomatic()
	return next, nil
}

// card looks up a card definition, panicking on an unknown ID since the
// database is closed and IDs only enter play from it.
func card(id int) Card {
	c, ok := CardDB[id]
	if !ok {
		panic(fmt.Sprintf("unknown card id %d", id))
	}
	return c
}
