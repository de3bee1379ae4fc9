package engine

import (
	"time"

	"github.com/kestrelchess/kestrel/board"
)

// reportPV emits the current root PV via the engine's OnInfo callback,
// suppressing output from a worker that has fallen behind the global
// depth frontier so the displayed depth sequence stays monotonic.
func (t *thread) reportPV() {
	if t.engine.OnInfo == nil {
		return
	}
	if t.rootDepth < t.engine.coord.depthReachedValue() {
		return
	}

	t.engine.OnInfo(SearchInfo{
		Depth:  t.rootDepth,
		Time:   time.Since(t.startTime),
		Nodes:  t.engine.coord.totalNodes(),
		Score:  t.rootScore,
		IsMate: isMateScore(t.rootScore),
		PV:     t.rootPV.toSlice(),
	})
}

// reportCurrMove emits info currmove for long root searches: depth > 16,
// first worker only, so the UI has something to show during a slow move
// without every worker racing to print the same line.
func (t *thread) reportCurrMove(move board.Move, moveNumber int) {
	if t.engine.OnInfo == nil || t.id != 0 || t.rootDepth <= 16 || !t.engine.Options.UCIMode {
		return
	}
	t.engine.OnInfo(SearchInfo{
		Depth:     t.rootDepth,
		CurrMove:  move,
		CurrMoveN: moveNumber,
	})
}

// MateDistance converts a reserved mate score into the UCI-style "mate N"
// distance: positive for the side to move delivering mate, negative for
// being mated.
func MateDistance(score int) int {
	if score > MaxEval {
		return (Mate - score + 1) / 2
	}
	return (-Mate - score) / 2
}
