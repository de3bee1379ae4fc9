package engine

import "github.com/kestrelchess/kestrel/board"

// iterativeDeepen is the per-worker outer loop: it drives root depths
// 1..maxDepth, offset by threadId&1 so Lazy SMP workers diverge, skipping
// depths when this worker has fallen behind the pack.
func (t *thread) iterativeDeepen(maxDepth int) {
	var offset = t.id & 1
	var lastScore = 0

	for rootDepth := 1 + offset; rootDepth <= maxDepth; rootDepth++ {
		if t.engine.coord.depthReachedValue() > t.dpCompleted+1 {
			t.dpCompleted++
			continue
		}

		t.rootDepth = rootDepth

		var score = t.widen(rootDepth, lastScore)
		lastScore = score

		if t.engine.coord.abort() {
			break
		}

		if rootDepth >= 8 && !t.flRootChoice {
			break
		}

		if isMateScore(score) {
			var mateDepth = ((Mate - abs(score) + 1) + 1) * 4 / 3
			if mateDepth <= rootDepth {
				t.dpCompleted = rootDepth
				t.engine.coord.raiseDepthReached(rootDepth)
				break
			}
		}

		t.dpCompleted = rootDepth
		t.engine.coord.raiseDepthReached(rootDepth)
	}

	// A depth- or mate-bounded search carries no context deadline, so
	// nothing else ever tells the other Lazy SMP workers to stop once
	// this one's deepener has exhausted maxDepth, hit the single-move
	// cutoff, or proven a forced mate: it has to raise the abort itself.
	// Pondering suppresses that self-raise, since a ponder search must
	// keep running past its own natural completion until `stop` or
	// `ponderhit` ends it from outside.
	if !t.engine.coord.isPondering() {
		t.engine.coord.raiseAbort()
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// widen is the Aspiration Windower: it narrows the window around
// lastScore at higher depths to cut search effort, widening
// geometrically and falling through to the infinite window on failure.
func (t *thread) widen(depth, lastScore int) int {
	if depth > 6 && !isMateScore(lastScore) {
		for margin := 8; margin < 500; margin *= 2 {
			if t.engine.coord.abort() {
				return lastScore
			}
			var alpha, beta = lastScore-margin, lastScore+margin
			var score = t.searchRoot(alpha, beta, depth)
			if score > alpha && score < beta {
				return score
			}
			if isMateScore(score) {
				break
			}
		}
	}

	return t.searchRoot(-Infinite, Infinite, depth)
}

// searchRoot invokes the kernel at ply 0 with the root move list as the
// outermost frame, clearing the PV head the way the aspiration windower
// or deepener would own for an external PV buffer.
func (t *thread) searchRoot(alpha, beta, depth int) int {
	t.stack[0].pv.clear()
	var score = t.search(alpha, beta, depth, 0, false, board.MoveEmpty, board.SquareNone)
	return score
}
