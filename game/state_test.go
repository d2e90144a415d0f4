package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// mainPhaseState builds a minimal mid-game state in the main phase.
func mainPhaseState() *GameState {
	gs := &GameState{Turn: 3, Phase: PhaseMain}
	gs.Players[0] = PlayerState{
		Health: 20, Resource: 3, ManaCap: 3,
		Deck: []int{1, 2, 3, 4},
		Hand: []int{1, 102},
	}
	gs.Players[1] = PlayerState{
		Health: 20, Resource: 3, ManaCap: 3,
		Deck: []int{3, 3, 101},
		Hand: []int{2, 4, 101},
	}
	return gs
}

func TestOutcome(t *testing.T) {
	t.Run("ongoing while both alive", func(t *testing.T) {
		gs := mainPhaseState()
		require.Equal(t, Outcome{Result: Ongoing}, gs.Outcome())
		require.False(t, gs.IsTerminal())
	})

	t.Run("win when opponent health reaches zero", func(t *testing.T) {
		gs := mainPhaseState()
		gs.Players[1].Health = 0
		require.Equal(t, Outcome{Result: Won, Player: 0}, gs.Outcome())
		require.True(t, gs.IsTerminal())
	})

	t.Run("draw when both die", func(t *testing.T) {
		gs := mainPhaseState()
		gs.Players[0].Health = -1
		gs.Players[1].Health = 0
		require.Equal(t, Outcome{Result: Draw}, gs.Outcome())
	})
}

func TestClone(t *testing.T) {
	t.Run("mutating the clone leaves the original alone", func(t *testing.T) {
		gs := mainPhaseState()
		c := gs.Clone()
		c.Players[0].Hand[0] = 4
		c.Players[0].Deck = c.Players[0].Deck[1:]
		c.Players[1].Board = append(c.Players[1].Board, UnitState{CardID: 1, Attack: 1, Health: 2})

		require.Equal(t, 1, gs.Players[0].Hand[0])
		require.Len(t, gs.Players[0].Deck, 4)
		require.Empty(t, gs.Players[1].Board)
	})
}

func TestDeterminize(t *testing.T) {
	t.Run("preserves hand and deck counts", func(t *testing.T) {
		gs := mainPhaseState()
		d := gs.Determinize(0, testRNG(1)).(*GameState)

		require.Len(t, d.Players[1].Hand, len(gs.Players[1].Hand))
		require.Len(t, d.Players[1].Deck, len(gs.Players[1].Deck))
		require.Len(t, d.Players[0].Deck, len(gs.Players[0].Deck))
	})

	t.Run("does not modify the input state", func(t *testing.T) {
		gs := mainPhaseState()
		before := gs.Clone()
		_ = gs.Determinize(0, testRNG(2))
		require.Equal(t, before, gs)
	})

	t.Run("keeps the viewer's hand and all public zones", func(t *testing.T) {
		gs := mainPhaseState()
		gs.Players[1].Board = []UnitState{{CardID: 2, Attack: 2, Health: 4}}
		d := gs.Determinize(0, testRNG(3)).(*GameState)

		require.Equal(t, gs.Players[0].Hand, d.Players[0].Hand)
		require.Equal(t, gs.Players[1].Board, d.Players[1].Board)
		require.Equal(t, gs.Players[0].Health, d.Players[0].Health)
		require.Equal(t, gs.Players[1].Resource, d.Players[1].Resource)
	})

	t.Run("resamples only from the opponent's hidden pool", func(t *testing.T) {
		gs := mainPhaseState()
		pool := map[int]int{}
		for _, id := range append(append([]int{}, gs.Players[1].Hand...), gs.Players[1].Deck...) {
			pool[id]++
		}

		d := gs.Determinize(0, testRNG(4)).(*GameState)
		got := map[int]int{}
		for _, id := range append(append([]int{}, d.Players[1].Hand...), d.Players[1].Deck...) {
			got[id]++
		}
		require.Equal(t, pool, got, "pool contents must be conserved")
	})
}

func TestPlay(t *testing.T) {
	t.Run("returns a new state and keeps the old one", func(t *testing.T) {
		gs := mainPhaseState()
		before := gs.Clone()

		next, err := gs.Play(EndTurn{})
		require.NoError(t, err)
		require.Equal(t, before, gs)
		require.Equal(t, 1, next.Player())
	})

	t.Run("end turn hands over and runs upkeep", func(t *testing.T) {
		gs := mainPhaseState()
		next, err := gs.Play(EndTurn{})
		require.NoError(t, err)

		ns := next.(*GameState)
		require.Equal(t, PhaseMain, ns.Phase)
		require.Equal(t, 4, ns.Players[1].Resource, "mana cap ramps by one")
		require.Len(t, ns.Players[1].Hand, 4, "draw for turn")
	})

	t.Run("invalid move reports a desync error", func(t *testing.T) {
		gs := mainPhaseState()
		_, err := gs.Play(PlayCard{Hand: 99, Target: NoTarget})
		require.Error(t, err)
		require.Contains(t, err.Error(), "out of range")
	})

	t.Run("turn counter increments when play returns to first player", func(t *testing.T) {
		gs := mainPhaseState()
		next, err := gs.Play(EndTurn{})
		require.NoError(t, err)
		next, err = next.Play(EndTurn{})
		require.NoError(t, err)
		require.Equal(t, 4, next.(*GameState).Turn)
	})
}

func TestGenerateQuickDeck(t *testing.T) {
	t.Run("deck has requested size and known cards", func(t *testing.T) {
		deck := GenerateQuickDeck(DefaultDeckSize, testRNG(5))
		require.Len(t, deck, DefaultDeckSize)
		for _, id := range deck {
			_, ok := CardDB[id]
			require.True(t, ok, "card %d must exist", id)
		}
	})
}

func TestNewGame(t *testing.T) {
	t.Run("starting player has opening hand plus turn draw", func(t *testing.T) {
		rng := testRNG(6)
		gs := NewGame(GenerateQuickDeck(30, rng), GenerateQuickDeck(30, rng), rng)

		require.Equal(t, 0, gs.Player())
		require.Equal(t, PhaseMain, gs.Phase)
		require.Len(t, gs.Players[0].Hand, OpeningDraw+1)
		require.Len(t, gs.Players[1].Hand, OpeningDraw)
		require.Equal(t, 1, gs.Players[0].Resource)
	})
}
