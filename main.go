package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ccg/engine"
	"ccg/experiments"
	"ccg/game"
	"ccg/player"
	"ccg/searcher"
)

func main() {
	mode := flag.String("mode", "demo", "demo | rave | evaluation | workers")
	out := flag.String("out", "results", "output directory for experiment CSVs")
	seed := flag.Uint64("seed", 0, "random seed for the demo game, 0 for time-based")
	debug := flag.Bool("debug", false, "log every move")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	var err error
	switch *mode {
	case "demo":
		err = runDemo(*seed)
	case "rave":
		err = experiments.RunRAVEExperiment(*out)
	case "evaluation":
		err = experiments.RunEvaluationExperiment(*out)
	case "workers":
		err = experiments.RunWorkerScalingExperiment(*out)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("run failed")
	}
}

// runDemo plays one game between two personalities and logs the result.
func runDemo(seed uint64) error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	robot, err := player.New("Robot", player.Robot, searcher.WithSeed(seed+1))
	if err != nil {
		return err
	}
	casual, err := player.New("Casual", player.Casual, searcher.WithSeed(seed+2))
	if err != nil {
		return err
	}

	e := engine.NewLocal(
		game.GenerateQuickDeck(game.DefaultDeckSize, rng),
		game.GenerateQuickDeck(game.DefaultDeckSize, rng),
		[2]engine.Agent{robot, casual},
		rng,
	)

	outcome, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}

	switch outcome.Result {
	case game.Won:
		log.Info().
			Int("winner", outcome.Player).
			Int("moves", gameMetric.TotalMoves).
			Dur("duration", gameMetric.Duration).
			Msg("demo finished")
	case game.Draw:
		log.Info().Int("moves", gameMetric.TotalMoves).Msg("demo drawn")
	default:
		log.Warn().Msg("demo hit the move guard")
	}
	return nil
}
