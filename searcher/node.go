package searcher

import (
	"golang.org/x/exp/rand"

	"ccg/game"
)

// raveStat accumulates all-moves-as-first statistics for one move,
// stored on the parent whose perspective the reward follows.
type raveStat struct {
	visits int
	reward float64
}

// node is one search tree position. A tree lives for exactly one
// determinized world; the same position reached in a different world
// gets a different tree. Statistics are from the perspective of the
// player to act at this node.
type node struct {
	parent *node
	// move led from the parent to this node; nil at the root.
	move game.Move
	// player to act at this node's state.
	player   int
	children []*node
	// untried holds legal moves not yet expanded, pre-shuffled so
	// expansion order carries no systematic bias. Consumed from the
	// tail without replacement.
	untried []game.Move
	visits  int
	reward  float64
	// rewardSq backs the variance estimate for UCB-Tuned.
	rewardSq float64
	// rave is keyed by child move; allocated lazily when RAVE is on.
	rave map[game.Move]*raveStat
}

// newNode creates a node for a state, capturing the acting player and
// the shuffled untried move list.
func newNode(parent *node, move game.Move, state game.State, rng *rand.Rand) *node {
	legal := state.LegalMoves()
	untried := append([]game.Move(nil), legal...)
	rng.Shuffle(len(untried), func(i, j int) {
		untried[i], untried[j] = untried[j], untried[i]
	})
	return &node{
		parent:  parent,
		move:    move,
		player:  state.Player(),
		untried: untried,
	}
}

// popUntried removes and returns one untried move. The list is already
// shuffled, so taking the tail is a uniform pick.
func (n *node) popUntried() game.Move {
	if len(n.untried) == 0 {
		panic("popUntried on fully expanded node")
	}
	mv := n.untried[len(n.untried)-1]
	n.untried = n.untried[:len(n.untried)-1]
	return mv
}

// expand creates the child for one untried move and links it in.
func (n *node) expand(move game.Move, childState game.State, rng *rand.Rand) *node {
	child := newNode(n, move, childState, rng)
	n.children = append(n.children, child)
	return child
}

// update folds one simulation reward into this node. r is already in
// this node's perspective.
func (n *node) update(r float64) {
	n.visits++
	n.reward += r
	n.rewardSq += r * r
}

// updateRAVE credits every move played anywhere in the simulation,
// regardless of where in the tree it was played.
func (n *node) updateRAVE(moves []game.Move, r float64) {
	if n.rave == nil {
		n.rave = make(map[game.Move]*raveStat, len(moves))
	}
	for _, mv := range moves {
		rs := n.rave[mv]
		if rs == nil {
			rs = &raveStat{}
			n.rave[mv] = rs
		}
		rs.visits++
		rs.reward += r
	}
}

// raveMean returns the RAVE value of a child move, or ok=false when
// the move was never seen.
func (n *node) raveMean(move game.Move) (float64, bool) {
	rs := n.rave[move]
	if rs == nil || rs.visits == 0 {
		return 0, false
	}
	return rs.reward / float64(rs.visits), true
}

// mean is the average reward from this node's perspective.
func (n *node) mean() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.reward / float64(n.visits)
}

// variance is the clamped empirical reward variance.
func (n *node) variance() float64 {
	if n.visits == 0 {
		return 0
	}
	m := n.mean()
	v := n.rewardSq/float64(n.visits) - m*m
	if v < 0 {
		return 0
	}
	return v
}

// parentReward converts the accumulated child statistics into the
// parent's perspective. Under the [0, 1] convention each flip maps a
// reward r to 1-r, so sums flip in closed form.
func (n *node) parentReward(parentPlayer int) (reward, rewardSq float64) {
	if n.player == parentPlayer {
		return n.reward, n.rewardSq
	}
	v := float64(n.visits)
	return v - n.reward, v - 2*n.reward + n.rewardSq
}
