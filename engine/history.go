package engine

import "github.com/kestrelchess/kestrel/board"

// historyTable is a per-worker history heuristic: indexed by piece and
// target square, it tracks how often a quiet move has caused a beta
// cutoff. It is never shared across workers, so it needs no atomics.
type historyTable struct {
	score [7][64]int32
}

func (h *historyTable) get(piece, toSq int) int32 {
	return h.score[piece][toSq]
}

// raise rewards a cutoff move proportional to depth*depth, clamped to
// histLimit so one lucky cutoff can't dominate ordering forever.
func (h *historyTable) raise(piece, toSq, depth int) {
	var bonus = int32(depth * depth)
	var cur = &h.score[piece][toSq]
	*cur += bonus
	if *cur > histLimit {
		*cur = histLimit
	}
}

// lower penalizes a quiet move that was tried but did not cause the
// cutoff, so moves that are merely tolerated sink in the ordering.
func (h *historyTable) lower(piece, toSq, depth int) {
	var bonus = int32(depth * depth)
	var cur = &h.score[piece][toSq]
	*cur -= bonus
	if *cur < -histLimit {
		*cur = -histLimit
	}
}

// age divides every entry by a constant between searches so that stale
// signal from a prior position decays instead of persisting forever.
func (h *historyTable) age() {
	for piece := range h.score {
		for sq := range h.score[piece] {
			h.score[piece][sq] /= 4
		}
	}
}

func (h *historyTable) clear() {
	h.score = [7][64]int32{}
}

// killerState holds the two most recent cutoff-causing quiet moves at a
// ply, consulted during move ordering ahead of plain history.
type killerState struct {
	killer1, killer2 board.Move
}

func (k *killerState) update(move board.Move) {
	if move == k.killer1 {
		return
	}
	k.killer2 = k.killer1
	k.killer1 = move
}
