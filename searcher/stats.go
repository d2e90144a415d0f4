package searcher

import "ccg/game"

// MoveStats are the accumulated root-level statistics for one move,
// from the searching player's perspective.
type MoveStats struct {
	Visits             int
	TotalReward        float64
	TotalSquaredReward float64
}

// Mean is the average reward of the move.
func (s MoveStats) Mean() float64 {
	if s.Visits == 0 {
		return 0
	}
	return s.TotalReward / float64(s.Visits)
}

// Variance is the clamped empirical reward variance of the move.
func (s MoveStats) Variance() float64 {
	if s.Visits == 0 {
		return 0
	}
	m := s.Mean()
	v := s.TotalSquaredReward/float64(s.Visits) - m*m
	if v < 0 {
		return 0
	}
	return v
}

// MasterStats aggregates root move statistics across determinized
// worlds, keyed by move identity so the same decision accumulates
// together no matter which world's tree explored it. One instance
// lives for exactly one FindBestMove call.
type MasterStats struct {
	order []game.Move
	stats map[game.Move]*MoveStats
}

// NewMasterStats seeds zeroed entries for the true root's legal moves,
// preserving their enumeration order.
func NewMasterStats(legal []game.Move) *MasterStats {
	m := &MasterStats{
		order: append([]game.Move(nil), legal...),
		stats: make(map[game.Move]*MoveStats, len(legal)),
	}
	for _, mv := range m.order {
		m.stats[mv] = &MoveStats{}
	}
	return m
}

// Add folds one world's statistics for a root move into the table.
// Moves outside the true root's legal set are ignored; a determinized
// world cannot introduce decisions the real state does not offer.
func (m *MasterStats) Add(move game.Move, visits int, reward, rewardSq float64) {
	s, ok := m.stats[move]
	if !ok {
		return
	}
	s.Visits += visits
	s.TotalReward += reward
	s.TotalSquaredReward += rewardSq
}

// Merge reduces another table into this one. Used to combine the
// per-worker deltas at the end of a parallel search.
func (m *MasterStats) Merge(other *MasterStats) {
	for _, mv := range other.order {
		s := other.stats[mv]
		m.Add(mv, s.Visits, s.TotalReward, s.TotalSquaredReward)
	}
}

// Moves returns the root moves in their original enumeration order.
func (m *MasterStats) Moves() []game.Move { return m.order }

// Get returns the statistics for a move.
func (m *MasterStats) Get(move game.Move) MoveStats {
	if s, ok := m.stats[move]; ok {
		return *s
	}
	return MoveStats{}
}

// Len is the number of tracked moves.
func (m *MasterStats) Len() int { return len(m.order) }

// TotalVisits sums visits over all moves. After a completed search it
// equals the total evaluation count exactly.
func (m *MasterStats) TotalVisits() int {
	total := 0
	for _, s := range m.stats {
		total += s.Visits
	}
	return total
}

// MostVisited returns the move with the highest visit count, first in
// enumeration order on ties.
func (m *MasterStats) MostVisited() game.Move {
	var best game.Move
	bestVisits := -1
	for _, mv := range m.order {
		if v := m.stats[mv].Visits; v > bestVisits {
			bestVisits = v
			best = mv
		}
	}
	return best
}
