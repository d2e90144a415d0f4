package game

import "fmt"

// Move is a legal action in some state. Implementations are small
// comparable structs so moves can key maps and two moves compare equal
// exactly when they name the same action, even across determinizations.
type Move interface {
	isMove()
	String() string
}

// TargetFace marks an attack or damage effect aimed at the opposing
// player instead of a unit.
const TargetFace = -1

// PlayCard plays the card at hand index Hand. Target is the board index
// of the affected enemy unit, TargetFace for the opposing player, or
// zero-valued NoTarget for cards that do not target.
type PlayCard struct {
	Hand   int
	Target int
}

// NoTarget is the Target value for untargeted cards.
const NoTarget = -2

func (PlayCard) isMove() {}

func (m PlayCard) String() string {
	switch m.Target {
	case NoTarget:
		return fmt.Sprintf("play(hand %d)", m.Hand)
	case TargetFace:
		return fmt.Sprintf("play(hand %d -> face)", m.Hand)
	default:
		return fmt.Sprintf("play(hand %d -> unit %d)", m.Hand, m.Target)
	}
}

// Attack sends the unit at board index Attacker into the enemy unit at
// board index Target, or into the opposing player when Target is
// TargetFace.
type Attack struct {
	Attacker int
	Target   int
}

func (Attack) isMove() {}

func (m Attack) String() string {
	if m.Target == TargetFace {
		return fmt.Sprintf("attack(unit %d -> face)", m.Attacker)
	}
	return fmt.Sprintf("attack(unit %d -> unit %d)", m.Attacker, m.Target)
}

// EndTurn passes priority to the opponent.
type EndTurn struct{}

func (EndTurn) isMove() {}

func (EndTurn) String() string { return "end turn" }
