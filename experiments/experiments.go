// Package experiments pits searcher configurations against each other
// in self-play and stores the results as CSV files.
package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ccg/engine"
	"ccg/experiments/metrics"
	"ccg/game"
	"ccg/player"
	"ccg/searcher"
)

const (
	// NumGames is played per matchup. Seats alternate so first-move
	// advantage washes out.
	NumGames = 30
	// TimeBudget per move keeps a full experiment under an hour.
	TimeBudget = 50 * time.Millisecond
)

// RunRAVEExperiment compares plain UCB-Tuned selection against RAVE.
func RunRAVEExperiment(outDir string) error {
	baseline := metrics.AgentConfig{ID: 0, Name: "uct", Workers: 1, TimeLimit: TimeBudget}
	rave := metrics.AgentConfig{ID: 1, Name: "rave", Workers: 1, TimeLimit: TimeBudget, RAVE: true}

	return runExperiment(outDir, "rave",
		[]metrics.AgentConfig{baseline, rave},
		[][2]metrics.AgentConfig{{baseline, rave}},
		NumGames)
}

// RunEvaluationExperiment compares random playouts against direct
// heuristic evaluation of expanded states.
func RunEvaluationExperiment(outDir string) error {
	rollout := metrics.AgentConfig{ID: 0, Name: "rollout", Workers: 1, TimeLimit: TimeBudget}
	heuristic := metrics.AgentConfig{ID: 1, Name: "heuristic", Workers: 1, TimeLimit: TimeBudget, HeuristicEval: true}

	return runExperiment(outDir, "evaluation",
		[]metrics.AgentConfig{rollout, heuristic},
		[][2]metrics.AgentConfig{{rollout, heuristic}},
		NumGames)
}

// RunWorkerScalingExperiment measures what extra world workers buy on
// a fixed time budget, both in throughput (self-play evaluations per
// move) and in strength against the sequential baseline.
func RunWorkerScalingExperiment(outDir string) error {
	baseline := metrics.AgentConfig{ID: 0, Name: "workers-1", Workers: 1, TimeLimit: TimeBudget}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, workers := range []int{2, 4, 8} {
		cfg := metrics.AgentConfig{
			ID:        i + 1,
			Name:      fmt.Sprintf("workers-%d", workers),
			Workers:   workers,
			TimeLimit: TimeBudget,
		}
		configs = append(configs, cfg)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, cfg})
	}

	return runExperiment(outDir, "worker_scaling", configs, matchUps, NumGames)
}

func runExperiment(outDir, name string, configs []metrics.AgentConfig,
	matchUps [][2]metrics.AgentConfig, games int) error {

	log.Info().Str("experiment", name).Int("matchups", len(matchUps)).Msg("starting experiment")

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	baseSeed := uint64(time.Now().UnixNano())

	for mi, matchUp := range matchUps {
		log.Info().
			Str("agent1", matchUp[0].Name).
			Str("agent2", matchUp[1].Name).
			Msgf("starting matchup %d of %d", mi+1, len(matchUps))

		for i := 0; i < games; i++ {
			first, second := matchUp[0], matchUp[1]
			if i%2 == 1 {
				first, second = second, first
			}

			count++
			outcome, gameMetric, moveMetrics, err := runGame(first, second, baseSeed+uint64(count))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}

			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().
				Int("game", i+1).
				Stringer("outcome", outcome.Result).
				Msgf("completed matchup %d game %d of %d", mi+1, i+1, games)
		}
	}

	writer, err := metrics.NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("experiment %s: %w", name, err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("experiment %s: %w", name, err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("experiment %s: %w", name, err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("experiment %s: %w", name, err)
	}

	log.Info().Str("experiment", name).Str("dir", writer.Dir()).Msg("experiment stored")
	return nil
}

// runGame plays one game between the two configs, config1 in seat 0.
func runGame(config1, config2 metrics.AgentConfig, seed uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := buildAgent(config1, seed+1)
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}
	agent2, err := buildAgent(config2, seed+2)
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	e := engine.NewLocal(
		game.GenerateQuickDeck(game.DefaultDeckSize, rng),
		game.GenerateQuickDeck(game.DefaultDeckSize, rng),
		[2]engine.Agent{agent1, agent2},
		rng,
	)
	return e.Run()
}

// buildAgent turns an experiment config into a playing agent with a
// live metrics collector.
func buildAgent(cfg metrics.AgentConfig, seed uint64) (*player.Player, error) {
	opts := []searcher.Option{
		searcher.WithTimeLimit(cfg.TimeLimit),
		searcher.WithEvaluationLimit(cfg.EvaluationLimit),
		searcher.WithTemperature(cfg.Temperature),
		searcher.WithSeed(seed),
	}
	if cfg.Workers > 0 {
		opts = append(opts, searcher.WithWorkers(cfg.Workers))
	}
	if cfg.RAVE {
		opts = append(opts, searcher.WithRAVE(searcher.DefaultConfig().RAVEEquivalence))
	}
	if cfg.HeuristicEval {
		opts = append(opts, searcher.WithHeuristicEval())
	}

	m, err := searcher.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", cfg.Name, err)
	}
	m.SetCollector(searcher.NewCollector())
	return player.NewWithSearcher(cfg.Name, m), nil
}
