package engine

import (
	"time"

	"github.com/kestrelchess/kestrel/board"
)

// pvLine is a principal-variation buffer: a move slice terminated by
// length rather than a sentinel, rebuilt bottom-up as the kernel unwinds.
type pvLine struct {
	moves [MaxPly]board.Move
	n     int
}

func (pv *pvLine) clear() { pv.n = 0 }

// assign installs move as the new PV head, followed by child's moves.
func (pv *pvLine) assign(move board.Move, child *pvLine) {
	pv.moves[0] = move
	copy(pv.moves[1:], child.moves[:child.n])
	pv.n = child.n + 1
}

func (pv *pvLine) toSlice() []board.Move {
	var out = make([]board.Move, pv.n)
	copy(out, pv.moves[:pv.n])
	return out
}

// stackFrame holds the per-ply state the kernel needs across a single
// recursive frame: the PV being built and this ply's killers. search
// keeps the static eval for pruning decisions in a local variable and
// does not write staticEval.
type stackFrame struct {
	pv         pvLine
	killers    killerState
	staticEval int
}

// thread is one Lazy SMP worker: its own position clone, undo/stack
// arrays, and history table, searched on its own goroutine against the
// engine's shared transposition table and LMR table.
type thread struct {
	engine *Engine
	id     int

	pos  board.Position
	undo [MaxPly]board.Undo
	keys [MaxPly]uint64 // search-path key history, for in-search repetition detection

	stack   [MaxPly]stackFrame
	history historyTable

	nodes        int64
	lastPollNode int64

	rootDepth    int
	dpCompleted  int
	flRootChoice bool
	rootPV       pvLine
	rootScore    int

	gameHistory []uint64 // Zobrist keys of the game played before this search started
	startTime   time.Time
}

func newThread(e *Engine, id int, pos board.Position, gameHistory []uint64) *thread {
	var t = &thread{engine: e, id: id, pos: pos, gameHistory: gameHistory}
	return t
}

func (t *thread) clearForNewSearch() {
	t.nodes = 0
	t.lastPollNode = 0
	t.dpCompleted = 0
	t.flRootChoice = false
	for i := range t.stack {
		t.stack[i] = stackFrame{}
	}
}

// isRepetition reports whether the position at ply has occurred before,
// either earlier in this search path or earlier in the game that led to
// it — a single repeat is treated as a draw, matching how engines assume
// a repetition-seeking opponent will take the draw rather than needing a
// threefold count before pruning.
func (t *thread) isRepetition(ply int) bool {
	var key = t.pos.HashKey()
	var limit = t.pos.Rule50
	for i := ply - 1; i >= 0 && i >= ply-limit; i-- {
		if t.keys[i] == key {
			return true
		}
	}
	for i := len(t.gameHistory) - 1; i >= 0 && i >= len(t.gameHistory)-limit; i-- {
		if t.gameHistory[i] == key {
			return true
		}
	}
	return false
}
