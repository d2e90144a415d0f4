package game

import "golang.org/x/exp/rand"

// DefaultDeckSize is the deck size used by quick games.
const DefaultDeckSize = 30

// GenerateQuickDeck builds a random deck of the given size by sampling
// the card database, in place of a curated deck list. Unit cards are
// favored so random decks can actually contest the board.
func GenerateQuickDeck(size int, rng *rand.Rand) []int {
	ids := CardIDs()
	var units, actions []int
	for _, id := range ids {
		if CardDB[id].Type == Unit {
			units = append(units, id)
		} else {
			actions = append(actions, id)
		}
	}

	deck := make([]int, 0, size)
	for len(deck) < size {
		// Roughly two units for every action card.
		if len(actions) == 0 || rng.Intn(3) < 2 {
			deck = append(deck, units[rng.Intn(len(units))])
		} else {
			deck = append(deck, actions[rng.Intn(len(actions))])
		}
	}
	return deck
}
