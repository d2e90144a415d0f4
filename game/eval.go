package game

// ScoreWeights parameterize the linear board evaluation. The defaults
// reproduce the classic eyeball formula: a unit is worth twice its
// attack plus its remaining health, and every point of player health
// counts once.
type ScoreWeights struct {
	UnitAttack   float64 `yaml:"unit_attack"`
	UnitHealth   float64 `yaml:"unit_health"`
	PlayerHealth float64 `yaml:"player_health"`
	Resource     float64 `yaml:"resource"`
	// WinnerBonus dominates every other term so a decided game always
	// outranks any live position.
	WinnerBonus float64 `yaml:"winner_bonus"`
}

// DefaultScoreWeights returns the standard evaluation weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		UnitAttack:   2,
		UnitHealth:   1,
		PlayerHealth: 1,
		Resource:     0,
		WinnerBonus:  1000,
	}
}

// Score evaluates both players' positions. Higher is better.
func (gs *GameState) Score(w ScoreWeights) (float64, float64) {
	s0 := gs.Players[0].score(w)
	s1 := gs.Players[1].score(w)

	if gs.Players[1].Health <= 0 && gs.Players[0].Health > 0 {
		s0 += w.WinnerBonus
	} else if gs.Players[0].Health <= 0 && gs.Players[1].Health > 0 {
		s1 += w.WinnerBonus
	}
	return s0, s1
}

func (p *PlayerState) score(w ScoreWeights) float64 {
	var threat float64
	for _, u := range p.Board {
		threat += w.UnitAttack*float64(u.Attack) + w.UnitHealth*float64(u.Health)
	}
	return threat + w.PlayerHealth*float64(p.Health) + w.Resource*float64(p.ManaCap)
}
