package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ccg/game"
)

func TestNewAnalyzer(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		_, err := NewAnalyzer(DefaultAnalyzerConfig())
		require.NoError(t, err)
	})

	t.Run("requires at least one budget", func(t *testing.T) {
		_, err := NewAnalyzer(AnalyzerConfig{})
		require.Error(t, err)
	})
}

func TestAnalyzeMoves(t *testing.T) {
	t.Run("budget splits evenly and the winning move stands out", func(t *testing.T) {
		a, err := NewAnalyzer(AnalyzerConfig{
			SimulationLimit: 30,
			TimeLimit:       10 * time.Second,
			Seed:            1,
		})
		require.NoError(t, err)

		report, meta, err := a.AnalyzeMoves(winLoseScript())
		require.NoError(t, err)
		require.Len(t, report, 3)
		require.Equal(t, 30, meta.SimsRun)
		require.Equal(t, "simulations", meta.LimitReached)

		for mv, r := range report {
			require.Equal(t, 10, r.Sims, "round-robin share for %v", mv)
		}

		// The winning move resolves immediately; the other two lines
		// are forced losses, so every observed win belongs to it.
		require.Equal(t, 1.0, report[game.Move(mvWin)].WinRate)
		require.Equal(t, 1.0, report[game.Move(mvWin)].WinContribution)
		require.Zero(t, report[game.Move(mvLeft)].Wins)
		require.Zero(t, report[game.Move(mvRight)].Wins)
	})

	t.Run("terminal state yields an empty report", func(t *testing.T) {
		s := scriptState{
			script: map[string]scriptNode{
				"root": {outcome: game.Outcome{Result: game.Draw}},
			},
			id: "root",
		}
		a, err := NewAnalyzer(DefaultAnalyzerConfig())
		require.NoError(t, err)

		report, meta, err := a.AnalyzeMoves(s)
		require.NoError(t, err)
		require.Empty(t, report)
		require.Zero(t, meta.SimsRun)
	})

	t.Run("expired time budget is reported", func(t *testing.T) {
		a, err := NewAnalyzer(AnalyzerConfig{
			SimulationLimit: 1000,
			TimeLimit:       time.Nanosecond,
			Seed:            1,
		})
		require.NoError(t, err)

		_, meta, err := a.AnalyzeMoves(winLoseScript())
		require.NoError(t, err)
		require.Equal(t, "time", meta.LimitReached)
		require.Less(t, meta.SimsRun, 1000)
	})

	t.Run("invalid move application aborts the analysis", func(t *testing.T) {
		s := scriptState{
			script: map[string]scriptNode{
				"root": {player: 0, edges: []scriptEdge{{move: mvPass, to: ""}}},
			},
			id: "root",
		}
		a, err := NewAnalyzer(AnalyzerConfig{SimulationLimit: 10, Seed: 1})
		require.NoError(t, err)

		_, _, err = a.AnalyzeMoves(s)
		require.Error(t, err)
		require.Contains(t, err.Error(), "desync")
	})
}
