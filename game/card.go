package game

import "sort"

// CardType distinguishes units from one-shot actions.
type CardType int

const (
	Unit CardType = iota
	Action
)

// Keyword is a bitmask of static unit abilities.
type Keyword uint8

const (
	// Taunt forces enemy attacks to target this unit while it lives.
	Taunt Keyword = 1 << iota
)

// EffectKind names the closed set of action-card effects.
type EffectKind int

const (
	NoEffect EffectKind = iota
	DrawCards
	DealDamage
)

// Effect is an action card's payload, interpreted by the rules engine.
// Effects are plain data so simulations never execute arbitrary code.
type Effect struct {
	Kind   EffectKind
	Amount int
}

// Card is the static definition of one card. Game states reference
// cards by ID only; the database itself is shared and never copied.
type Card struct {
	ID       int
	Name     string
	Type     CardType
	Cost     int
	Attack   int
	Health   int
	Keywords Keyword
	Effect   Effect
}

// HasKeyword reports whether the card carries the given keyword.
func (c Card) HasKeyword(k Keyword) bool { return c.Keywords&k != 0 }

// CardDB is the master card database, keyed by card ID.
var CardDB = map[int]Card{
	1: {
		ID: 1, Name: "Rock Golem", Type: Unit,
		Cost: 1, Attack: 1, Health: 2,
	},
	2: {
		ID: 2, Name: "Guard Golem", Type: Unit,
		Cost: 3, Attack: 2, Health: 4,
		Keywords: Taunt,
	},
	3: {
		ID: 3, Name: "Large Golem", Type: Unit,
		Cost: 2, Attack: 1, Health: 3,
	},
	4: {
		ID: 4, Name: "Even Larger Golem", Type: Unit,
		Cost: 4, Attack: 3, Health: 3,
	},
	101: {
		ID: 101, Name: "Energy Surge", Type: Action,
		Cost: 1, Effect: Effect{Kind: DrawCards, Amount: 1},
	},
	102: {
		ID: 102, Name: "Direct Hit", Type: Action,
		Cost: 2, Effect: Effect{Kind: DealDamage, Amount: 3},
	},
}

// CardIDs returns all card IDs in ascending order, for deterministic
// iteration over the database.
func CardIDs() []int {
	ids := make([]int, 0, len(CardDB))
	for id := range CardDB {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
