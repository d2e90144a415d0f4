package game

import "fmt"

// Phase is the closed set of turn phases. Upkeep and Cleanup are
// automatic: they run to completion inside Play, so every observable
// non-terminal state sits in PhaseMain.
type Phase int

const (
	PhaseUpkeep Phase = iota
	PhaseMain
	PhaseCleanup
)

func (p Phase) String() string {
	switch p {
	case PhaseUpkeep:
		return "upkeep"
	case PhaseMain:
		return "main"
	case PhaseCleanup:
		return "cleanup"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// LegalMoves enumerates the acting player's options for the current
// phase. Automatic phases have none.
func (gs *GameState) LegalMoves() []Move {
	if gs.IsTerminal() || gs.Phase != PhaseMain {
		return nil
	}

	me := &gs.Players[gs.Current]
	opp := &gs.Players[1-gs.Current]
	var moves []Move

	for idx, id := range me.Hand {
		c := card(id)
		if c.Cost > me.Resource {
			continue
		}
		switch c.Type {
		case Unit:
			if len(me.Board) < BoardSize {
				moves = append(moves, PlayCard{Hand: idx, Target: NoTarget})
			}
		case Action:
			switch c.Effect.Kind {
			case DealDamage:
				for t := range opp.Board {
					moves = append(moves, PlayCard{Hand: idx, Target: t})
				}
				moves = append(moves, PlayCard{Hand: idx, Target: TargetFace})
			default:
				moves = append(moves, PlayCard{Hand: idx, Target: NoTarget})
			}
		}
	}

	for idx, u := range me.Board {
		if u.Exhausted || u.Attack <= 0 {
			continue
		}
		for _, t := range gs.attackTargets() {
			moves = append(moves, Attack{Attacker: idx, Target: t})
		}
	}

	moves = append(moves, EndTurn{})
	return moves
}

// attackTargets lists legal attack targets for the acting player.
// Taunt units must be cleared before anything else can be hit.
func (gs *GameState) attackTargets() []int {
	opp := &gs.Players[1-gs.Current]
	var taunts []int
	for idx, u := range opp.Board {
		if card(u.CardID).HasKeyword(Taunt) {
			taunts = append(taunts, idx)
		}
	}
	if len(taunts) > 0 {
		return taunts
	}
	targets := make([]int, 0, len(opp.Board)+1)
	for idx := range opp.Board {
		targets = append(targets, idx)
	}
	return append(targets, TargetFace)
}

// processAction mutates the (already cloned) state according to one
// move. Dispatch is a plain switch over the phase and move variants.
func (gs *GameState) processAction(mv Move) error {
	if gs.Phase != PhaseMain {
		return fmt.Errorf("no actions allowed in automatic phase")
	}
	switch m := mv.(type) {
	case PlayCard:
		return gs.playCard(m)
	case Attack:
		return gs.attack(m)
	case EndTurn:
		gs.Phase = PhaseCleanup
		return nil
	default:
		return fmt.Errorf("unknown move type %T", mv)
	}
}

func (gs *GameState) playCard(m PlayCard) error {
	me := &gs.Players[gs.Current]
	if m.Hand < 0 || m.Hand >= len(me.Hand) {
		return fmt.Errorf("hand index %d out of range", m.Hand)
	}
	c := card(me.Hand[m.Hand])
	if c.Cost > me.Resource {
		return fmt.Errorf("cannot afford %s (cost %d, resource %d)", c.Name, c.Cost, me.Resource)
	}

	switch c.Type {
	case Unit:
		if len(me.Board) >= BoardSize {
			return fmt.Errorf("board is full")
		}
		me.Resource -= c.Cost
		me.Hand = append(me.Hand[:m.Hand], me.Hand[m.Hand+1:]...)
		me.Board = append(me.Board, UnitState{
			CardID:    c.ID,
			Attack:    c.Attack,
			Health:    c.Health,
			Exhausted: true, // summoning sickness
		})
	case Action:
		me.Resource -= c.Cost
		me.Hand = append(me.Hand[:m.Hand], me.Hand[m.Hand+1:]...)
		me.Graveyard = append(me.Graveyard, c.ID)
		if err := gs.resolveEffect(c.Effect, m.Target); err != nil {
			return err
		}
	default:
		return fmt.Errorf("card %s has unplayable type %d", c.Name, c.Type)
	}
	return nil
}

func (gs *GameState) resolveEffect(e Effect, target int) error {
	me := &gs.Players[gs.Current]
	opp := &gs.Players[1-gs.Current]
	switch e.Kind {
	case DrawCards:
		for i := 0; i < e.Amount; i++ {
			me.draw()
		}
	case DealDamage:
		switch {
		case target == TargetFace:
			opp.Health -= e.Amount
		case target >= 0 && target < len(opp.Board):
			opp.Board[target].Health -= e.Amount
			opp.sweepDead()
		default:
			return fmt.Errorf("damage target %d out of range", target)
		}
	case NoEffect:
	default:
		return fmt.Errorf("unknown effect kind %d", e.Kind)
	}
	return nil
}

func (gs *GameState) attack(m Attack) error {
	me := &gs.Players[gs.Current]
	opp := &gs.Players[1-gs.Current]
	if m.Attacker < 0 || m.Attacker >= len(me.Board) {
		return fmt.Errorf("attacker index %d out of range", m.Attacker)
	}
	attacker := &me.Board[m.Attacker]
	if attacker.Exhausted {
		return fmt.Errorf("unit %d is exhausted", m.Attacker)
	}
	if attacker.Attack <= 0 {
		return fmt.Errorf("unit %d cannot attack", m.Attacker)
	}

	legal := false
	for _, t := range gs.attackTargets() {
		if t == m.Target {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("attack target %d is not legal", m.Target)
	}

	attacker.Exhausted = true
	if m.Target == TargetFace {
		opp.Health -= attacker.Attack
		return nil
	}

	defender := &opp.Board[m.Target]
	defender.Health -= attacker.Attack
	attacker.Health -= defender.Attack
	opp.sweepDead()
	me.sweepDead()
	return nil
}

// sweepDead moves dead units to the graveyard, preserving board order.
func (p *PlayerState) sweepDead() {
	alive := p.Board[:0]
	for _, u := range p.Board {
		if u.Health > 0 {
			alive = append(alive, u)
		} else {
			p.Graveyard = append(p.Graveyard, u.CardID)
		}
	}
	p.Board = alive
}

// runAutomatic resolves automatic phases until the state needs a
// player decision or the game ends.
func (gs *GameState) runAutomatic() {
	for !gs.IsTerminal() {
		switch gs.Phase {
		case PhaseCleanup:
			gs.Current = 1 - gs.Current
			if gs.Current == 0 {
				gs.Turn++
			}
			gs.Phase = PhaseUpkeep
		case PhaseUpkeep:
			gs.enterUpkeep()
		default:
			return
		}
	}
}

// enterUpkeep ramps the acting player's resources, readies their
// board and draws for turn, then hands over to the main phase.
func (gs *GameState) enterUpkeep() {
	me := &gs.Players[gs.Current]
	if me.ManaCap < MaxResource {
		me.ManaCap++
	}
	me.Resource = me.ManaCap
	for i := range me.Board {
		me.Board[i].Exhausted = false
	}
	me.draw()
	gs.Phase = PhaseMain
}
