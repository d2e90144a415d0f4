package searcher

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"ccg/game"
)

// analyzerPlayoutCap bounds a single analyzer rollout so a game that
// never resolves cannot hang the report.
const analyzerPlayoutCap = 250

// AnalyzerConfig controls the flat Monte Carlo analyzer.
type AnalyzerConfig struct {
	// SimulationLimit is the total playout budget shared round-robin
	// across all legal moves.
	SimulationLimit int `yaml:"simulation_limit"`
	// TimeLimit optionally cuts the analysis short.
	TimeLimit time.Duration `yaml:"time_limit"`
	// Seed makes the analysis reproducible when non-zero.
	Seed uint64 `yaml:"seed"`
}

// DefaultAnalyzerConfig returns the documented defaults.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SimulationLimit: 10000,
		TimeLimit:       5 * time.Second,
	}
}

// MoveReport is the analyzer's verdict on one move.
type MoveReport struct {
	Wins int
	Sims int
	// WinRate is wins over simulations for this move.
	WinRate float64
	// WinContribution is this move's share of all wins observed, a
	// cheap way to rank moves on a shared budget.
	WinContribution float64
}

// AnalysisMeta describes how the budget was spent.
type AnalysisMeta struct {
	SimsRun      int
	Elapsed      time.Duration
	LimitReached string // "time" or "simulations"
}

// Analyzer estimates move strength with plain determinized playouts
// and no tree: the budget is dealt round-robin so every move gets an
// even share. It is cruder than the tree search but its reports are
// directly comparable across moves.
type Analyzer struct {
	cfg AnalyzerConfig
}

// NewAnalyzer validates the configuration and builds an analyzer.
func NewAnalyzer(cfg AnalyzerConfig) (*Analyzer, error) {
	if cfg.SimulationLimit <= 0 && cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("analyzer: must set a simulation limit or a time limit")
	}
	if cfg.SimulationLimit < 0 {
		return nil, fmt.Errorf("analyzer: simulation limit %d is negative", cfg.SimulationLimit)
	}
	return &Analyzer{cfg: cfg}, nil
}

// AnalyzeMoves plays each legal move in a fresh determinized world and
// rolls it out to the end, reporting per-move win rates.
func (a *Analyzer) AnalyzeMoves(state game.State) (map[game.Move]MoveReport, AnalysisMeta, error) {
	start := time.Now()
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return map[game.Move]MoveReport{}, AnalysisMeta{}, nil
	}

	seed := a.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	player := state.Player()

	wins := make([]int, len(legal))
	sims := make([]int, len(legal))

	run := 0
	reason := "simulations"
	for a.cfg.SimulationLimit <= 0 || run < a.cfg.SimulationLimit {
		if a.cfg.TimeLimit > 0 && time.Since(start) >= a.cfg.TimeLimit {
			reason = "time"
			break
		}

		idx := run % len(legal)
		world := state.Determinize(player, rng)
		next, err := world.Play(legal[idx])
		if err != nil {
			return nil, AnalysisMeta{}, fmt.Errorf("analyze %v: %w", legal[idx], err)
		}

		winner, err := randomPlayout(next, rng)
		if err != nil {
			return nil, AnalysisMeta{}, err
		}
		if winner == player {
			wins[idx]++
		}
		sims[idx]++
		run++
	}

	totalWins := 0
	for _, w := range wins {
		totalWins += w
	}

	report := make(map[game.Move]MoveReport, len(legal))
	for i, mv := range legal {
		r := MoveReport{Wins: wins[i], Sims: sims[i]}
		if r.Sims > 0 {
			r.WinRate = float64(r.Wins) / float64(r.Sims)
		}
		if totalWins > 0 {
			r.WinContribution = float64(r.Wins) / float64(totalWins)
		}
		report[mv] = r
	}
	return report, AnalysisMeta{
		SimsRun:      run,
		Elapsed:      time.Since(start),
		LimitReached: reason,
	}, nil
}

// randomPlayout plays uniformly random moves to the end of the game,
// returning the winner's index or -1 for a draw or an unresolved game.
func randomPlayout(state game.State, rng *rand.Rand) (int, error) {
	for i := 0; i < analyzerPlayoutCap; i++ {
		if out := state.Outcome(); out.Result != game.Ongoing {
			if out.Result == game.Won {
				return out.Player, nil
			}
			return -1, nil
		}
		legal := state.LegalMoves()
		if len(legal) == 0 {
			return -1, nil
		}
		next, err := state.Play(legal[rng.Intn(len(legal))])
		if err != nil {
			return -1, fmt.Errorf("playout: %w", err)
		}
		state = next
	}
	return -1, nil
}
