package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ccg/searcher"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "rave")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, "rave", filepath.Base(filepath.Dir(w.Dir())))

	t.Run("agent configs round trip", func(t *testing.T) {
		configs := []AgentConfig{
			{ID: 1, Name: "baseline", Workers: 1, TimeLimit: 50 * time.Millisecond, Temperature: 0},
			{ID: 2, Name: "rave", Workers: 1, TimeLimit: 50 * time.Millisecond, RAVE: true},
		}
		require.NoError(t, w.WriteAgentConfigs(configs))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "id", rows[0][0])
		require.Equal(t, []string{"1", "baseline", "1", "50ms", "0", "0", "false", "false"}, rows[1])
		require.Equal(t, "true", rows[2][6])
	})

	t.Run("game records include winner and move count", func(t *testing.T) {
		start := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		records := []GameRecord{{
			ID:     1,
			Agent1: 1,
			Agent2: 2,
			GameMetric: GameMetric{
				StartingPlayer: 0,
				Winner:         1,
				StartTime:      start,
				EndTime:        start.Add(3 * time.Second),
				Duration:       3 * time.Second,
				TotalMoves:     42,
			},
		}}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, "1", rows[1][4], "winner column")
		require.Equal(t, "42", rows[1][8], "total moves column")
	})

	t.Run("move records carry search metrics", func(t *testing.T) {
		records := []MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{
				Step:   3,
				Player: 1,
				SearchMetric: searcher.SearchMetric{
					Workers:      4,
					Duration:     10 * time.Millisecond,
					Evaluations:  500,
					Worlds:       50,
					FullPlayouts: 480,
				},
			},
		}}
		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "3", "1", "4", "10ms", "500", "50", "480"}, rows[1])
	})
}
