package mcts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/anura-engine/anura/board"
	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/nets/policy"
	"github.com/anura-engine/anura/nets/value"
	"github.com/anura-engine/anura/position"
	"github.com/rs/zerolog"
)

// evalScale mirrors nets/value's own logistic scale: the value net's output
// is already a centipawn-like score on this scale, so simulate() maps it
// back into a [0,1] win probability with the matching sigmoid divisor.
const evalScale = 400

// mateScore is the centipawn value ToCentipawns reports at the score
// extremes, avoiding ln(0) in the logistic inverse.
const mateScore = 32000

// ToCentipawns converts a [0,1] win probability into a centipawn-like
// score, reporting ±mateScore at the exact edges instead of evaluating the
// logistic formula there.
func ToCentipawns(score float32) int32 {
	switch score {
	case 1:
		return mateScore
	case 0:
		return -mateScore
	default:
		return int32(-evalScale * math.Log(1/float64(score)-1))
	}
}

// Options gates the non-standard UCI diagnostics the engine can print
// alongside the search's final info line.
type Options struct {
	MoreInfo bool
}

// Engine owns one search tree plus the networks and scratch state a search
// iterates over. Reusing an Engine across moves is what lets Find reuse a
// subtree instead of starting from scratch every time.
type Engine struct {
	tree      *SearchTree
	board     *board.Board
	depth     uint32
	Nodes     uint64
	start     time.Time
	policyAcc *policy.Accumulator
	valueNet  *value.Network
	policyNet *policy.Network
	log       zerolog.Logger

	prevRoot    position.Position
	hasPrevRoot bool
}

// NewEngine builds an engine around loaded networks, with a tree sized to
// hashMB megabytes split across the two halves.
func NewEngine(valueNet *value.Network, policyNet *policy.Network, hashMB int, log zerolog.Logger) *Engine {
	return &Engine{
		tree:      NewSearchTree(hashMB),
		board:     board.NewInitial(),
		policyAcc: policy.NewAccumulator(policyNet),
		valueNet:  valueNet,
		policyNet: policyNet,
		log:       log,
	}
}

// Resize rebuilds the search tree at a new hash size, discarding it.
func (e *Engine) Resize(hashMB int) { e.tree.Resize(hashMB) }

// NewGame clears the tree and forgets any reusable previous root.
func (e *Engine) NewGame() {
	e.tree.Reset()
	e.hasPrevRoot = false
}

// Hashfull reports the tree's current fill ratio in permille.
func (e *Engine) Hashfull() uint16 { return e.tree.Hashfull() }

func (e *Engine) select(currentRef uint32, tunables *Tunables, root bool) uint32 {
	node := e.tree.At(currentRef)

	scale := float32(math.Sqrt(float64(node.Visits)))
	giniScale := tunables.GiniBase() - tunables.GiniLogMult()*float32(math.Log(float64(node.GiniImpurity+0.001)))
	if giniScale > tunables.GiniMin() {
		giniScale = tunables.GiniMin()
	}
	scale *= giniScale

	cpuct := tunables.DefaultCpuct()
	if root {
		cpuct = tunables.RootCpuct()
	}
	visScale := tunables.CpuctVisitsScale() * 128
	cpuct *= 1 + float32(math.Log(float64((float32(node.Visits)+visScale)/visScale)))

	exploration := cpuct * scale
	parentQ := node.AverageScore()

	start, end := node.ChildrenRange()
	var best uint32
	bestUct := float32(math.Inf(-1))
	for ref := start; ref < end; ref++ {
		child := e.tree.At(ref)
		avg := child.AverageScore()
		if child.Visits == 0 {
			avg = 1 - parentQ
		}
		uct := avg + exploration*child.Policy/float32(1+child.Visits)
		if uct > bestUct {
			best = ref
			bestUct = uct
		}
	}
	return best
}

// expand populates nodeRef's children from the live board's legal moves,
// scored by the policy net's softmaxed priors, or tags nodeRef terminal if
// the position is drawn, checkmate, or stalemate. Returns false if the
// current half has no room, leaving nodeRef untouched.
func (e *Engine) expand(nodeRef uint32, root bool, tunables *Tunables) bool {
	if e.board.IsDrawn() {
		e.tree.At(nodeRef).Result = Draw
		return true
	}

	moves := e.board.LegalMoves()
	if moves.Count == 0 {
		if e.board.InCheck() {
			e.tree.At(nodeRef).Result = Loss
		} else {
			e.tree.At(nodeRef).Result = Draw
		}
		return true
	}

	next := e.tree.Next()
	if int(next&indexMask)+moves.Count >= e.tree.halfSize {
		return false
	}

	top := e.board.Top()
	e.policyAcc.Load(e.policyNet, top)
	ctm, flipFile := policy.Context(top)

	temperature := tunables.DefaultPst()
	if root {
		temperature += tunables.RootPstBonus()
	}

	priors := make([]float32, moves.Count)
	var sum float32
	for i, m := range moves.Slice() {
		logit := policy.Score(e.policyNet, e.policyAcc, m, ctm, flipFile)
		priors[i] = float32(math.Exp(float64(logit / temperature)))
		sum += priors[i]
	}

	var sumSq float32
	for i := range priors {
		priors[i] /= sum
		sumSq += priors[i] * priors[i]
	}
	gini := 1 - sumSq
	if gini < 0 {
		gini = 0
	}
	if gini > 1 {
		gini = 1
	}

	node := e.tree.At(nodeRef)
	node.FirstChild = next
	node.ChildCount = uint8(moves.Count)
	node.GiniImpurity = gini

	for i, m := range moves.Slice() {
		if _, ok := e.tree.Push(Node{Mov: m, Policy: priors[i]}); !ok {
			return false
		}
	}
	return true
}

// simulate returns nodeRef's evaluation from the side-to-move's
// perspective: the terminal result's fixed score if it has one, otherwise
// the value network's sigmoid-mapped forward pass.
func (e *Engine) simulate(nodeRef uint32, rootCtm chesstypes.Color) float32 {
	node := e.tree.At(nodeRef)
	if score, ok := node.Result.Score(e.board.Ctm(), rootCtm); ok {
		return score
	}
	cp := e.valueNet.Evaluate(e.board.Top())
	return float32(1.0 / (1.0 + math.Exp(-float64(cp)/evalScale)))
}

// mctsStep runs one selection/expansion/simulation/backprop pass starting
// at currentRef. It always pairs a MakeMove on the selection path with
// exactly one UndoMove, even when the recursive call aborts for lack of
// tree space (ok==false) — the live board must return to currentRef's
// position either way.
func (e *Engine) mctsStep(currentRef uint32, root bool, rootCtm chesstypes.Color, tunables *Tunables) (float32, bool) {
	current := e.tree.At(currentRef)

	var score float32
	if current.Result.IsTerminal() || current.Visits == 0 {
		score = e.simulate(currentRef, rootCtm)
	} else {
		if current.ChildCount == 0 {
			if !e.expand(currentRef, root, tunables) {
				return 0, false
			}
			if e.tree.At(currentRef).Result.IsTerminal() {
				return e.simulate(currentRef, rootCtm), true
			}
		}

		if !e.tree.CopyChildren(currentRef) {
			return 0, false
		}

		nextRef := e.select(currentRef, tunables, root)
		mov := e.tree.At(nextRef).Mov

		e.board.MakeMove(mov)
		e.depth++
		childScore, ok := e.mctsStep(nextRef, false, rootCtm, tunables)
		e.board.UndoMove()
		if !ok {
			return 0, false
		}
		score = childScore
	}

	score = 1 - score
	node := e.tree.At(currentRef)
	node.Visits++
	node.TotalScore += score
	return score, true
}

// GetBestMove returns the root child ref with the highest average score
// and that score (visit-count is not used for final selection since a
// terminal loss can carry few visits but a decisive score).
func (e *Engine) GetBestMove(rootRef uint32) (uint32, float32) {
	root := e.tree.At(rootRef)
	start, end := root.ChildrenRange()
	var best uint32
	bestScore := float32(math.Inf(-1))
	for ref := start; ref < end; ref++ {
		score := e.tree.At(ref).AverageScore()
		if score > bestScore {
			best = ref
			bestScore = score
		}
	}
	return best, bestScore
}

// GetPV walks the highest-average-score visited child at each step,
// reporting the principal variation, the root's score, and whether the
// line ends in a forced mate.
func (e *Engine) GetPV(rootRef uint32) ([]chesstypes.Move, float32, bool) {
	var pv []chesstypes.Move
	endsInMate := false
	rootScore := float32(0)
	ref := rootRef
	for {
		node := e.tree.At(ref)
		if node.Result.IsTerminal() || node.ChildCount == 0 {
			if node.Result == Loss || node.Result == Win {
				endsInMate = true
			}
			break
		}
		start, end := node.ChildrenRange()
		hasValid := false
		var bestRef uint32
		bestScore := float32(math.Inf(-1))
		for c := start; c < end; c++ {
			child := e.tree.At(c)
			if child.Visits == 0 {
				continue
			}
			hasValid = true
			if child.AverageScore() > bestScore {
				bestRef = c
				bestScore = child.AverageScore()
			}
		}
		if !hasValid {
			break
		}
		pv = append(pv, e.tree.At(bestRef).Mov)
		if ref == rootRef {
			rootScore = bestScore
		}
		ref = bestRef
	}
	return pv, rootScore, endsInMate
}

// Find walks the tree rooted at startRef looking for a descendant whose
// position matches target, applying moves purely via position.ApplyMove
// rather than touching the live board — the previous search's root
// position (cur) is threaded down by value, not by board mutation, so a
// failed search leaves nothing to undo. depth bounds how far down to look.
func (e *Engine) Find(startRef uint32, cur position.Position, target *position.Position, depth int) uint32 {
	if cur == *target {
		return startRef
	}
	if startRef == nullRef || depth == 0 {
		return nullRef
	}

	start := e.tree.At(startRef)
	childStart, childEnd := start.ChildrenRange()
	for ref := childStart; ref < childEnd; ref++ {
		mov := e.tree.At(ref).Mov
		next := position.ApplyMove(cur, mov)
		if found := e.Find(ref, next, target, depth-1); found != nullRef {
			return found
		}
	}
	return nullRef
}

// Search runs PUCT iterations against b until limiters says to stop,
// printing UCI info lines along the way if info is set, and returns the
// best move found. b is left at its original position: every push onto it
// during search is paired with a pop before Search returns.
func (e *Engine) Search(b *board.Board, limiters *Limiters, info bool, options *Options, tunables *Tunables) chesstypes.Move {
	e.Nodes = 0
	var seldepth uint32
	var totalDepth uint64
	prevAvgDepth := uint32(1)
	var avgDepth uint32
	e.start = time.Now()
	lastPrint := time.Now()

	rootState := *b.Top()
	rootCtm := b.Ctm()
	e.board = b

	if e.tree.IsEmpty() {
		e.tree.Push(Node{})
	} else {
		rootRef := e.tree.RootRef()
		reused := false
		if e.hasPrevRoot {
			found := e.Find(rootRef, e.prevRoot, &rootState, 2)
			if found != nullRef && e.tree.At(found).ChildCount != 0 {
				*e.tree.At(rootRef) = *e.tree.At(found)
				reused = true
			}
		}
		if !reused {
			e.tree.Reset()
			e.tree.Push(Node{})
		}
	}

	for limiters.Check(time.Since(e.start), e.Nodes, avgDepth, tunables) {
		e.depth = 1

		_, ok := e.mctsStep(e.tree.RootRef(), true, rootCtm, tunables)

		e.Nodes++
		totalDepth += uint64(e.depth)
		if e.depth > seldepth {
			seldepth = e.depth
		}

		avgDepth = uint32(math.Round(float64(totalDepth) / float64(e.Nodes)))
		if avgDepth > prevAvgDepth || time.Since(lastPrint).Seconds() > 3.0 {
			duration := time.Since(e.start)
			if info {
				e.printInfo(e.tree.RootRef(), avgDepth-1, seldepth, duration, false, options)
			}
			prevAvgDepth = avgDepth
			lastPrint = time.Now()
		}

		if !ok {
			e.log.Debug().Msg("tree half exhausted, switching halves")
			e.tree.SwitchHalves()
		}
	}

	if !limiters.UseDepth {
		duration := time.Since(e.start)
		avgDepth = uint32(math.Round(float64(totalDepth)/float64(e.Nodes))) - 1
		if info {
			e.printInfo(e.tree.RootRef(), avgDepth, seldepth, duration, true, options)
		}
	}

	bestRef, _ := e.GetBestMove(e.tree.RootRef())
	bestMove := e.tree.At(bestRef).Mov

	e.prevRoot = rootState
	e.hasPrevRoot = true

	return bestMove
}

func (e *Engine) printInfo(rootRef uint32, depth, seldepth uint32, duration time.Duration, final bool, options *Options) {
	if final && options != nil && options.MoreInfo {
		e.printMoreInfo(rootRef)
	}

	pv, score, endsInMate := e.GetPV(rootRef)
	var nps uint64
	if ms := duration.Milliseconds(); ms > 0 {
		nps = e.Nodes * 1000 / uint64(ms)
	}

	line := fmt.Sprintf("info depth %d seldepth %d nodes %d time %d nps %d ",
		depth, seldepth, e.Nodes, duration.Milliseconds(), nps)
	if endsInMate {
		line += fmt.Sprintf("score mate %d ", len(pv)/2)
	} else {
		line += fmt.Sprintf("score cp %d ", ToCentipawns(score))
	}
	line += "pv"
	for _, m := range pv {
		line += " " + m.String()
	}
	fmt.Println(line)
}

func (e *Engine) printMoreInfo(rootRef uint32) {
	type childInfo struct {
		mov    chesstypes.Move
		visits uint32
		score  float32
		pv     []chesstypes.Move
	}

	root := e.tree.At(rootRef)
	start, end := root.ChildrenRange()
	results := make([]childInfo, 0, end-start)
	for ref := start; ref < end; ref++ {
		node := e.tree.At(ref)
		pv, _, _ := e.GetPV(ref)
		results = append(results, childInfo{node.Mov, node.Visits, node.AverageScore(), pv})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })

	for _, r := range results {
		line := fmt.Sprintf("%-6s visits: %8d | average score: %4d cp | pv",
			r.mov.String()+":", r.visits, ToCentipawns(r.score))
		for _, m := range r.pv {
			line += " " + m.String()
		}
		fmt.Println(line)
	}
}
