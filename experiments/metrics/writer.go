package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores experiment results as CSV files under a timestamped
// directory, one directory per experiment run.
type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<experiment>/<timestamp>/ and returns a
// writer rooted there.
func NewWriter(root, experiment string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	baseDir := filepath.Join(root, experiment, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create experiment directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

// Dir returns the directory the writer stores files in.
func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s header: %w", name, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", name, err)
		}
	}
	return nil
}

// WriteAgentConfigs stores the configurations under test.
func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "workers", "time_limit", "evaluation_limit", "temperature", "rave", "heuristic_eval"}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{
			strconv.Itoa(c.ID),
			c.Name,
			strconv.Itoa(c.Workers),
			c.TimeLimit.String(),
			strconv.Itoa(c.EvaluationLimit),
			strconv.FormatFloat(c.Temperature, 'f', -1, 64),
			strconv.FormatBool(c.RAVE),
			strconv.FormatBool(c.HeuristicEval),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

// WriteGameRecords stores per-game results.
func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Agent1),
			strconv.Itoa(r.Agent2),
			strconv.Itoa(r.StartingPlayer),
			strconv.Itoa(r.Winner),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.TotalMoves),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

// WriteMoveRecords stores per-move search metrics.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "workers", "duration", "evaluations", "worlds", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.Game),
			strconv.Itoa(r.Step),
			strconv.Itoa(r.Player),
			strconv.Itoa(r.Workers),
			r.Duration.String(),
			strconv.Itoa(r.Evaluations),
			strconv.Itoa(r.Worlds),
			strconv.Itoa(r.FullPlayouts),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}
