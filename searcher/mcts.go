package searcher

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ccg/game"
)

// MCTS is an information-set Monte Carlo tree searcher. A single
// instance may serve many FindBestMove calls; each call owns its own
// trees, statistics and random streams.
type MCTS struct {
	cfg     Config
	metrics Collector
}

// New builds a searcher from the defaults plus options.
func New(opts ...Option) (*MCTS, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewFromConfig(cfg)
}

// NewFromConfig builds a searcher from an explicit configuration.
func NewFromConfig(cfg Config) (*MCTS, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MCTS{cfg: cfg, metrics: NewNopCollector()}, nil
}

// SetCollector installs a metrics collector. The default records
// nothing.
func (m *MCTS) SetCollector(c Collector) {
	if c != nil {
		m.metrics = c
	}
}

// Config returns the active configuration.
func (m *MCTS) Config() Config { return m.cfg }

// FindBestMove searches the acting player's options and returns the
// chosen move plus the number of completed evaluations. With no legal
// moves it returns (nil, 0); a single legal move is returned
// immediately with count 1. A contract violation during simulation
// aborts the search with an error.
func (m *MCTS) FindBestMove(state game.State) (game.Move, int, error) {
	mv, metric, err := m.FindBestMoveMetrics(state)
	return mv, metric.Evaluations, err
}

// FindBestMoveMetrics is FindBestMove plus the full search metrics.
func (m *MCTS) FindBestMoveMetrics(state game.State) (game.Move, SearchMetric, error) {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return nil, SearchMetric{}, nil
	}
	if len(legal) == 1 {
		// A forced move needs no statistics.
		return legal[0], SearchMetric{Evaluations: 1}, nil
	}

	m.metrics.Start(m.cfg.Workers)
	seed := m.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	master, err := m.search(state, legal, seed)
	metric := m.metrics.Complete()
	metric.Evaluations = master.TotalVisits()
	if err != nil {
		return nil, metric, err
	}

	rng := rand.New(rand.NewSource(seed + uint64(m.cfg.Workers)))
	if metric.Evaluations == 0 {
		// Budget expired before a single evaluation completed.
		return legal[rng.Intn(len(legal))], metric, nil
	}

	best := chooseFinalMove(master, m.cfg.Temperature, rng)
	if m.cfg.BlunderChance > 0 && rng.Float64() < m.cfg.BlunderChance {
		best = legal[rng.Intn(len(legal))]
	}

	log.Debug().
		Stringer("move", best).
		Int("evaluations", metric.Evaluations).
		Int("worlds", metric.Worlds).
		Dur("duration", metric.Duration).
		Msg("search complete")
	return best, metric, nil
}

// search runs the main loop: workers repeatedly sample a determinized
// world, probe its tree, and fold the root statistics into a shared
// master table. Workers share only the evaluation counter and the
// final merge, so no tree ever needs a lock.
func (m *MCTS) search(root game.State, legal []game.Move, seed uint64) (*MasterStats, error) {
	var deadline time.Time
	if m.cfg.TimeLimit > 0 {
		deadline = time.Now().Add(m.cfg.TimeLimit)
	}

	master := NewMasterStats(legal)
	var (
		evals    atomic.Int64
		failed   atomic.Bool
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	for w := 0; w < m.cfg.Workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(seed + uint64(id)))
			sel := newSelector(m.cfg)
			ev := newEvaluator(m.cfg, m.metrics)
			local := NewMasterStats(legal)
			err := m.runWorlds(root, local, sel, ev, rng, deadline, &evals, &failed)

			mu.Lock()
			master.Merge(local)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			mu.Unlock()
		}(w)
	}
	wg.Wait()

	return master, firstErr
}

// runWorlds is one worker's loop over determinized worlds.
func (m *MCTS) runWorlds(root game.State, local *MasterStats, sel selector, ev evaluator,
	rng *rand.Rand, deadline time.Time, evals *atomic.Int64, failed *atomic.Bool) error {

	for !failed.Load() {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil
		}
		probes := m.reserve(evals)
		if probes == 0 {
			return nil
		}

		world := root.Determinize(root.Player(), rng)
		tree := newNode(nil, nil, world, rng)
		m.metrics.AddWorld()

		ran := 0
		var probeErr error
		for p := 0; p < probes; p++ {
			if failed.Load() {
				break
			}
			if p > 0 && !deadline.IsZero() && !time.Now().Before(deadline) {
				break
			}
			if probeErr = m.probe(tree, world, sel, ev, rng); probeErr != nil {
				failed.Store(true)
				break
			}
			ran++
			m.metrics.AddEvaluation()
		}
		if ran < probes {
			// Return unused reservations so the count stays exact.
			evals.Add(int64(ran - probes))
		}

		mergeRootStats(local, tree)

		if probeErr != nil {
			return probeErr
		}
		if ran < probes {
			return nil
		}
	}
	return nil
}

// reserve claims up to ProbesPerWorld evaluations against the budget.
func (m *MCTS) reserve(evals *atomic.Int64) int {
	if m.cfg.EvaluationLimit <= 0 {
		evals.Add(int64(m.cfg.ProbesPerWorld))
		return m.cfg.ProbesPerWorld
	}
	for {
		cur := evals.Load()
		remaining := int64(m.cfg.EvaluationLimit) - cur
		if remaining <= 0 {
			return 0
		}
		n := int64(m.cfg.ProbesPerWorld)
		if n > remaining {
			n = remaining
		}
		if evals.CompareAndSwap(cur, cur+n) {
			return int(n)
		}
	}
}

// probe runs one select -> expand -> evaluate -> backpropagate cycle
// against a world's tree. Every probe descends through exactly one
// root child, which keeps master aggregation exact.
func (m *MCTS) probe(root *node, world game.State, sel selector, ev evaluator, rng *rand.Rand) error {
	sim := world
	n := root
	var played []game.Move

	for !sim.IsTerminal() {
		if len(n.untried) > 0 {
			mv := n.popUntried()
			next, err := sim.Play(mv)
			if err != nil {
				return fmt.Errorf("expand: %w", err)
			}
			n = n.expand(mv, next, rng)
			sim = next
			played = append(played, mv)
			break
		}
		if len(n.children) == 0 {
			// No legal moves but not terminal: nothing to descend into.
			break
		}
		child := sel.bestChild(n)
		next, err := sim.Play(child.move)
		if err != nil {
			return fmt.Errorf("select: %w", err)
		}
		n = child
		sim = next
		played = append(played, child.move)
	}

	var raveMoves *[]game.Move
	if m.cfg.RAVE {
		raveMoves = &played
	}
	reward, err := ev.evaluate(sim, root.player, rng, raveMoves)
	if err != nil {
		return err
	}

	for v := n; v != nil; v = v.parent {
		r := reward
		if v.player != root.player {
			r = Win - reward
		}
		v.update(r)
		if m.cfg.RAVE {
			v.updateRAVE(played, r)
		}
	}
	return nil
}

// mergeRootStats folds a finished world tree's root children into a
// stats table, flipping accumulated rewards into the searching
// player's perspective where the child's mover differs.
func mergeRootStats(stats *MasterStats, tree *node) {
	for _, child := range tree.children {
		reward, rewardSq := child.parentReward(tree.player)
		stats.Add(child.move, child.visits, reward, rewardSq)
	}
}
