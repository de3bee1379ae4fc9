// Package engine implements the alpha-beta iterative-deepening search
// kernel: fail-soft negamax with aspiration windows, a transposition
// table, null-move pruning, razoring, static-null-move pruning, futility
// and late-move pruning, late-move reductions, internal iterative
// deepening, selective extensions, history heuristics, and Lazy SMP
// multi-worker coordination.
package engine

import (
	"context"
	"time"

	"github.com/kestrelchess/kestrel/board"
)

// Options toggles every pruning/reduction technique independently, the
// same shape as a tunable engine's per-heuristic feature flags, so each
// can be disabled for isolated testing.
type Options struct {
	Hash    int
	Threads int

	NullMove    bool
	Razoring    bool
	StaticNull  bool
	Futility    bool
	LateMovePrn bool
	LMR         bool
	IID         bool
	Extensions  bool

	NodesLimit int64 // set from LimitsType.Nodes at the start of each Think call
	NPSLimit   int64
	UCIMode    bool
}

// NewOptions returns the default configuration: every heuristic enabled,
// a 64 MiB hash table, single-threaded search.
func NewOptions() Options {
	return Options{
		Hash: 64, Threads: 1,
		NullMove: true, Razoring: true, StaticNull: true, Futility: true,
		LateMovePrn: true, LMR: true, IID: true, Extensions: true,
	}
}

// SearchInfo is the PV Reporter's payload: depth, elapsed time, node
// count, score, and principal variation for the most recent best move.
type SearchInfo struct {
	Depth     int
	Time      time.Duration
	Nodes     int64
	Score     int
	IsMate    bool
	PV        []board.Move
	CurrMove  board.Move
	CurrMoveN int
}

// Evaluator is the static-evaluation collaborator the kernel treats as a
// black box, matching spec's external-collaborator boundary.
type Evaluator func(p *board.Position) int

// Quiescer is the capture-only search the kernel delegates to at depth<=0.
type Quiescer func(p *board.Position, alpha, beta, ply int, nodes *int64) int

// Engine owns the shared, cross-worker state: the transposition table,
// the coordinator, and the configured Options. It is safe to reuse across
// searches via Think; call Clear between unrelated games.
type Engine struct {
	Options Options

	tt    *transTable
	coord coordinator

	eval  Evaluator
	quies Quiescer

	// OnInfo, if set, is called synchronously from the reporting worker
	// every time a new best move or PV is established at the root.
	OnInfo func(SearchInfo)

	// deadline and poll back the Slowdown component's NPS throttle and
	// single-worker command polling. Think sets deadline per search;
	// nothing in this module sets poll, so the command poll never runs and
	// stop/quit/ponderhit reach the search through the UCI driver instead.
	deadline *time.Time
	poll     func()

	// histories persists each worker slot's history heuristic across
	// successive Think calls in the same game, aged rather than cleared.
	histories []historyTable
}

// NewEngine builds an Engine around the given evaluator and quiescence
// search; production callers pass eval.Evaluate and eval.Quiesce.
func NewEngine(evaluator Evaluator, quiescer Quiescer) *Engine {
	var e = &Engine{
		Options: NewOptions(),
		eval:    evaluator,
		quies:   quiescer,
	}
	e.tt = newTransTable(e.Options.Hash)
	return e
}

// Prepare (re)allocates the transposition table for the configured Hash
// size; call it after changing Options.Hash.
func (e *Engine) Prepare() {
	e.tt = newTransTable(e.Options.Hash)
}

// Clear wipes the transposition table and every persisted history table —
// called on a UCI `ucinewgame`, where no history from the previous game
// should carry forward.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.histories = nil
}

// Think runs the full Lazy SMP search: one worker per Options.Threads,
// sharing e.tt, until ctx is done or a worker's deepener declares
// completion. It returns the final result of the worker with the highest
// completed depth, the first worker on a tie.
func (e *Engine) Think(ctx context.Context, pos board.Position, gameHistory []uint64, limits board.LimitsType) SearchInfo {
	e.coord.reset()
	for i := range e.histories {
		e.histories[i].age()
	}
	return e.lazySmp(ctx, pos, gameHistory, limits)
}

// Ponderhit clears the coordinator's pondering flag, so a worker whose
// deepener runs out of depths raises the abort itself instead of waiting
// for `stop`. It installs no time budget: the search keeps the deadline
// (none, for a ponder search) it was started with.
func (e *Engine) Ponderhit() {
	e.coord.setPondering(false)
}

// Goodbye latches shutdown: callers must not write a bestmove line after
// this returns, since a worker still unwinding from an aborted search may
// be mid-write to the same stream.
func (e *Engine) Goodbye() {
	e.coord.sayGoodbye()
}

// SaidGoodbye reports whether Goodbye has been called.
func (e *Engine) SaidGoodbye() bool {
	return e.coord.saidGoodbye()
}
