package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"ccg/game"
)

func TestSelectorScore(t *testing.T) {
	sel := selector{c: 1.41}

	t.Run("computes the UCB-Tuned value", func(t *testing.T) {
		parent := &node{player: 0, visits: 100}
		child := &node{player: 0, move: mvLeft, visits: 10, reward: 6, rewardSq: 4.2}

		mean := 0.6
		variance := 4.2/10 - mean*mean // 0.06
		expected := mean + 1.41*math.Sqrt(math.Log(101)/10*variance)
		require.InDelta(t, expected, sel.score(parent, child), 1e-9)
	})

	t.Run("an opposing mover's statistics are flipped", func(t *testing.T) {
		// Child rewards follow the child's mover, so a line the
		// opponent wins looks like mean 1.0 at the child node. From
		// the parent it must score as a loss, not a win.
		parent := &node{player: 0, visits: 20}
		winning := &node{player: 0, move: mvWin, visits: 10, reward: 9, rewardSq: 8.1}
		losing := &node{player: 1, move: mvLeft, visits: 10, reward: 9, rewardSq: 8.1}
		parent.children = []*node{losing, winning}

		require.InDelta(t, sel.score(parent, winning)-0.9, sel.score(parent, losing)-0.1, 1e-9,
			"identical sums differ only in the flipped mean")
		require.Same(t, winning, sel.bestChild(parent))
	})

	t.Run("variance term is capped at a quarter", func(t *testing.T) {
		parent := &node{player: 0, visits: 100}
		// Alternating 0/1 rewards give the maximum variance 0.25; a
		// fabricated larger sum must not increase the bonus.
		capped := &node{move: mvLeft, visits: 10, reward: 5, rewardSq: 5}
		inflated := &node{move: mvRight, visits: 10, reward: 5, rewardSq: 9}

		require.GreaterOrEqual(t, inflated.variance(), varianceCap)
		require.InDelta(t, sel.score(parent, capped), sel.score(parent, inflated), 1e-9,
			"exploration bonus saturates at the cap")
	})

	t.Run("unvisited children are selected first", func(t *testing.T) {
		parent := &node{player: 0, visits: 50}
		strong := &node{move: mvLeft, visits: 20, reward: 20, rewardSq: 20}
		fresh := &node{move: mvRight}
		parent.children = []*node{strong, fresh}

		require.Same(t, fresh, sel.bestChild(parent))
	})

	t.Run("variance weight biases toward uncertain moves", func(t *testing.T) {
		biased := selector{c: 0, varianceWeight: 1.0}
		parent := &node{player: 0, visits: 100}
		steady := &node{move: mvLeft, visits: 10, reward: 5, rewardSq: 2.5} // variance 0
		noisy := &node{move: mvRight, visits: 10, reward: 5, rewardSq: 5}   // variance 0.25
		parent.children = []*node{steady, noisy}

		require.Same(t, noisy, biased.bestChild(parent))
	})
}

func TestSelectorRAVE(t *testing.T) {
	t.Run("rave value lifts an unpromising move early", func(t *testing.T) {
		sel := selector{c: 0, rave: true, raveK: 350}
		parent := &node{player: 0, visits: 4}
		parent.updateRAVE([]game.Move{mvRight}, 1.0)

		plain := &node{move: mvLeft, visits: 2, reward: 1, rewardSq: 0.5}
		lifted := &node{move: mvRight, visits: 2, reward: 1, rewardSq: 0.5}
		parent.children = []*node{plain, lifted}

		require.Same(t, lifted, sel.bestChild(parent))
	})

	t.Run("rave influence decays with parent visits", func(t *testing.T) {
		sel := selector{c: 0, rave: true, raveK: 350}
		child := &node{move: mvRight, visits: 10, reward: 2, rewardSq: 0.4} // mean 0.2

		early := &node{player: 0, visits: 10}
		early.updateRAVE([]game.Move{mvRight}, 1.0)
		late := &node{player: 0, visits: 100000}
		late.updateRAVE([]game.Move{mvRight}, 1.0)

		require.Greater(t, sel.score(early, child), sel.score(late, child),
			"a perfect rave value matters less once real visits dominate")
	})

	t.Run("beta follows the equivalence schedule", func(t *testing.T) {
		k := 350.0
		parent := 100
		beta := math.Sqrt(k / (3*float64(parent) + k))
		require.InDelta(t, 0.73, beta, 0.005)
	})
}

func masterFrom(visits map[game.Move]int) *MasterStats {
	moves := []game.Move{mvWin, mvLeft, mvRight}
	m := NewMasterStats(moves)
	for mv, v := range visits {
		m.Add(mv, v, float64(v)/2, float64(v)/4)
	}
	return m
}

func TestChooseFinalMove(t *testing.T) {
	t.Run("zero temperature is greedy on visits", func(t *testing.T) {
		m := masterFrom(map[game.Move]int{mvWin: 5, mvLeft: 100, mvRight: 20})
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 50; i++ {
			require.Equal(t, game.Move(mvLeft), chooseFinalMove(m, 0, rng))
		}
	})

	t.Run("sampling follows visit weights", func(t *testing.T) {
		m := masterFrom(map[game.Move]int{mvWin: 100, mvLeft: 10, mvRight: 1})
		rng := rand.New(rand.NewSource(2))

		counts := map[game.Move]int{}
		for i := 0; i < 2000; i++ {
			counts[chooseFinalMove(m, 1.0, rng)]++
		}
		require.Greater(t, counts[game.Move(mvWin)], counts[game.Move(mvLeft)])
		require.Greater(t, counts[game.Move(mvLeft)], counts[game.Move(mvRight)])
	})

	t.Run("higher temperature flattens the distribution", func(t *testing.T) {
		m := masterFrom(map[game.Move]int{mvWin: 100, mvLeft: 10, mvRight: 1})

		sharpness := func(temp float64) float64 {
			rng := rand.New(rand.NewSource(3))
			best := 0
			const samples = 3000
			for i := 0; i < samples; i++ {
				if chooseFinalMove(m, temp, rng) == game.Move(mvWin) {
					best++
				}
			}
			return float64(best) / samples
		}

		cold := sharpness(0.5)
		warm := sharpness(2.0)
		hot := sharpness(10.0)
		require.Greater(t, cold, warm)
		require.Greater(t, warm, hot)
		require.Greater(t, hot, 1.0/3-0.05, "never worse than uniform for the best move")
	})

	t.Run("underflowing weights fall back to greedy", func(t *testing.T) {
		// Zero visits everywhere: all weights are zero.
		m := NewMasterStats([]game.Move{mvWin, mvLeft})
		rng := rand.New(rand.NewSource(4))
		require.Equal(t, game.Move(mvWin), chooseFinalMove(m, 5.0, rng))
	})

	t.Run("empty table yields no move", func(t *testing.T) {
		m := NewMasterStats(nil)
		require.Nil(t, chooseFinalMove(m, 1.0, rand.New(rand.NewSource(5))))
	})
}
