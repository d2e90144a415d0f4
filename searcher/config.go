package searcher

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ccg/game"
)

// Config is the full option surface of the searcher. Zero values for
// TimeLimit and EvaluationLimit mean "no limit"; at least one of the
// two must be set.
type Config struct {
	// TimeLimit is the wall-clock budget for one FindBestMove call.
	TimeLimit time.Duration
	// EvaluationLimit caps the number of completed evaluations.
	EvaluationLimit int
	// ExplorationWeight is the UCT constant C.
	ExplorationWeight float64
	// Temperature controls the spread of the final move selection.
	// Below 0.01 the most-visited move is always chosen.
	Temperature float64
	// BlunderChance is the probability of overriding the search result
	// with a uniformly random legal move, applied once after search.
	BlunderChance float64
	// RolloutDepth caps the number of branching decisions in a playout.
	// Forced moves do not consume depth.
	RolloutDepth int
	// ProbesPerWorld is the number of tree probes run against each
	// determinized world before sampling a fresh one.
	ProbesPerWorld int
	// CertaintyExponent reshapes rewards around the neutral 0.5
	// before backpropagation: above 1 compresses them toward 0.5,
	// below 1 pushes them toward the extremes.
	CertaintyExponent float64
	// VarianceWeight deliberately biases selection toward (positive)
	// or away from (negative) high-variance moves.
	VarianceWeight float64
	// MaxScoreSwing is the heuristic score difference mapped to a full
	// 0-or-1 reward.
	MaxScoreSwing float64
	// RAVE enables rapid action value estimation during selection.
	RAVE bool
	// RAVEEquivalence is the visit count at which RAVE and real
	// statistics carry equal weight.
	RAVEEquivalence float64
	// HeuristicEval evaluates expanded states directly with the score
	// function instead of running a random playout.
	HeuristicEval bool
	// Workers is the number of goroutines searching independent worlds.
	Workers int
	// Seed makes the search reproducible when non-zero.
	Seed uint64
	// ScoreWeights parameterize the heuristic evaluation.
	ScoreWeights game.ScoreWeights
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		TimeLimit:         time.Second,
		ExplorationWeight: 1.41,
		Temperature:       1.0,
		RolloutDepth:      10,
		ProbesPerWorld:    10,
		CertaintyExponent: 1.0,
		MaxScoreSwing:     100,
		RAVEEquivalence:   350,
		Workers:           1,
		ScoreWeights:      game.DefaultScoreWeights(),
	}
}

// Validate rejects configurations the search loop cannot honor.
func (c Config) Validate() error {
	if c.TimeLimit <= 0 && c.EvaluationLimit <= 0 {
		return fmt.Errorf("config: must set a time limit or an evaluation limit")
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("config: time limit %v is negative", c.TimeLimit)
	}
	if c.EvaluationLimit < 0 {
		return fmt.Errorf("config: evaluation limit %d is negative", c.EvaluationLimit)
	}
	if c.ExplorationWeight < 0 {
		return fmt.Errorf("config: exploration weight %v is negative", c.ExplorationWeight)
	}
	if c.Temperature < 0 {
		return fmt.Errorf("config: temperature %v is negative", c.Temperature)
	}
	if c.BlunderChance < 0 || c.BlunderChance > 1 {
		return fmt.Errorf("config: blunder chance %v outside [0, 1]", c.BlunderChance)
	}
	if c.RolloutDepth < 0 {
		return fmt.Errorf("config: rollout depth %d is negative", c.RolloutDepth)
	}
	if c.ProbesPerWorld < 1 {
		return fmt.Errorf("config: probes per world %d must be at least 1", c.ProbesPerWorld)
	}
	if c.CertaintyExponent <= 0 {
		return fmt.Errorf("config: certainty exponent %v must be positive", c.CertaintyExponent)
	}
	if c.MaxScoreSwing <= 0 {
		return fmt.Errorf("config: max score swing %v must be positive", c.MaxScoreSwing)
	}
	if c.RAVE && c.RAVEEquivalence <= 0 {
		return fmt.Errorf("config: rave equivalence %v must be positive", c.RAVEEquivalence)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: workers %d must be at least 1", c.Workers)
	}
	return nil
}

// yamlDuration accepts Go duration strings such as "250ms" in config
// files.
type yamlDuration time.Duration

func (d *yamlDuration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string like \"250ms\"")
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: parse duration %q: %w", s, err)
	}
	*d = yamlDuration(v)
	return nil
}

// fileConfig is the YAML overlay: only keys present in the file
// override the defaults.
type fileConfig struct {
	TimeLimit         *yamlDuration      `yaml:"time_limit"`
	EvaluationLimit   *int               `yaml:"evaluation_limit"`
	ExplorationWeight *float64           `yaml:"exploration_weight"`
	Temperature       *float64           `yaml:"temperature"`
	BlunderChance     *float64           `yaml:"blunder_chance"`
	RolloutDepth      *int               `yaml:"rollout_depth"`
	ProbesPerWorld    *int               `yaml:"probes_per_world"`
	CertaintyExponent *float64           `yaml:"certainty_exponent"`
	VarianceWeight    *float64           `yaml:"variance_weight"`
	MaxScoreSwing     *float64           `yaml:"max_score_swing"`
	RAVE              *bool              `yaml:"rave"`
	RAVEEquivalence   *float64           `yaml:"rave_equivalence"`
	HeuristicEval     *bool              `yaml:"heuristic_eval"`
	Workers           *int               `yaml:"workers"`
	Seed              *uint64            `yaml:"seed"`
	ScoreWeights      *game.ScoreWeights `yaml:"score_weights"`
}

func (f fileConfig) apply(cfg *Config) {
	if f.TimeLimit != nil {
		cfg.TimeLimit = time.Duration(*f.TimeLimit)
	}
	if f.EvaluationLimit != nil {
		cfg.EvaluationLimit = *f.EvaluationLimit
	}
	if f.ExplorationWeight != nil {
		cfg.ExplorationWeight = *f.ExplorationWeight
	}
	if f.Temperature != nil {
		cfg.Temperature = *f.Temperature
	}
	if f.BlunderChance != nil {
		cfg.BlunderChance = *f.BlunderChance
	}
	if f.RolloutDepth != nil {
		cfg.RolloutDepth = *f.RolloutDepth
	}
	if f.ProbesPerWorld != nil {
		cfg.ProbesPerWorld = *f.ProbesPerWorld
	}
	if f.CertaintyExponent != nil {
		cfg.CertaintyExponent = *f.CertaintyExponent
	}
	if f.VarianceWeight != nil {
		cfg.VarianceWeight = *f.VarianceWeight
	}
	if f.MaxScoreSwing != nil {
		cfg.MaxScoreSwing = *f.MaxScoreSwing
	}
	if f.RAVE != nil {
		cfg.RAVE = *f.RAVE
	}
	if f.RAVEEquivalence != nil {
		cfg.RAVEEquivalence = *f.RAVEEquivalence
	}
	if f.HeuristicEval != nil {
		cfg.HeuristicEval = *f.HeuristicEval
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	if f.ScoreWeights != nil {
		cfg.ScoreWeights = *f.ScoreWeights
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys
// are rejected rather than silently ignored.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var overlay fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	overlay.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option mutates a Config before validation.
type Option func(*Config)

func WithTimeLimit(d time.Duration) Option {
	return func(c *Config) { c.TimeLimit = d }
}

func WithEvaluationLimit(n int) Option {
	return func(c *Config) { c.EvaluationLimit = n }
}

func WithExplorationWeight(w float64) Option {
	return func(c *Config) { c.ExplorationWeight = w }
}

func WithTemperature(t float64) Option {
	return func(c *Config) { c.Temperature = t }
}

func WithBlunderChance(p float64) Option {
	return func(c *Config) { c.BlunderChance = p }
}

func WithRolloutDepth(d int) Option {
	return func(c *Config) { c.RolloutDepth = d }
}

func WithProbesPerWorld(n int) Option {
	return func(c *Config) { c.ProbesPerWorld = n }
}

func WithCertaintyExponent(e float64) Option {
	return func(c *Config) { c.CertaintyExponent = e }
}

func WithVarianceWeight(w float64) Option {
	return func(c *Config) { c.VarianceWeight = w }
}

func WithRAVE(equivalence float64) Option {
	return func(c *Config) {
		c.RAVE = true
		c.RAVEEquivalence = equivalence
	}
}

func WithHeuristicEval() Option {
	return func(c *Config) { c.HeuristicEval = true }
}

func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

func WithScoreWeights(w game.ScoreWeights) Option {
	return func(c *Config) { c.ScoreWeights = w }
}
