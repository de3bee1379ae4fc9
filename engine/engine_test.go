package engine

import (
	"context"
	"testing"

	"github.com/kestrelchess/kestrel/board"
)

func newTestEngine() *Engine {
	var e = NewEngine(dummyEval, dummyQuiesce)
	e.Options.Threads = 1
	return e
}

// dummyEval and dummyQuiesce give the kernel tests a fast, deterministic
// leaf evaluation: material count only, no positional knowledge, so
// scenario assertions depend only on search logic, not evaluation tuning.
func dummyEval(p *board.Position) int {
	var values = [7]int{0, 100, 300, 300, 500, 900, 0}
	var score = 0
	for _, white := range [2]bool{true, false} {
		var side = p.PiecesByColor(white)
		for bb := side; bb != 0; bb &= bb - 1 {
			var sq = board.FirstOne(bb)
			var v = values[p.PieceOn(sq)]
			if white {
				score += v
			} else {
				score -= v
			}
		}
	}
	if !p.WhiteMove {
		score = -score
	}
	return score
}

func dummyQuiesce(p *board.Position, alpha, beta, ply int, nodes *int64) int {
	*nodes++
	var score = dummyEval(p)
	if score > alpha {
		alpha = score
	}
	return alpha
}

func mustPosition(t *testing.T, fen string) board.Position {
	t.Helper()
	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("fen %q: %v", fen, err)
	}
	return pos
}

// mateInOneFEN is a king+queen-vs-king corner mate: White's queen moves
// to b7, delivering check the king cannot escape or capture out of (b7 is
// defended by the white king on c6).
const mateInOneFEN = "k7/8/2K5/8/8/8/8/1Q6 w - - 0 1"

// Scenario 1: mate-in-1, white to move, depth 3, one worker.
func TestMateInOne(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, mateInOneFEN)

	var info = e.Think(context.Background(), pos, nil, board.LimitsType{Depth: 3})

	if !info.IsMate {
		t.Fatalf("expected a mate score, got cp %d", info.Score)
	}
	if info.Score != Mate-1 {
		t.Errorf("score = %d, want %d (mate in 1)", info.Score, Mate-1)
	}
	if len(info.PV) == 0 || info.PV[0].String() != "b1b7" {
		t.Errorf("PV = %v, want to begin with b1b7", info.PV)
	}
}

// Scenario 2: stalemate-avoidance — the search must find a legal move and
// a non-zero score rather than mistaking the position for stalemate.
func TestStalemateAvoidance(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, "7k/5Q2/6K1/8/8/8/8/8 w - - 0 1")

	var info = e.Think(context.Background(), pos, nil, board.LimitsType{Depth: 4})

	if len(info.PV) == 0 {
		t.Fatal("expected at least one legal move, got an empty PV")
	}
	if info.Score == 0 {
		t.Error("expected a non-zero score, got 0 (looks like a mistaken stalemate report)")
	}
}

// Scenario 3: a position at the fifty-move threshold whose only
// non-drawing continuation is mate must report the mate, not a draw.
// This is the mate-in-1 FEN from TestMateInOne with the halfmove clock
// set to 99: the mating move pushes Rule50 to 100 in the resulting
// position, which must not be mistaken for a fifty-move draw.
func TestFiftyMoveRuleNeverMasksMate(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, "k7/8/2K5/8/8/8/8/1Q6 w - - 99 1")

	var info = e.Think(context.Background(), pos, nil, board.LimitsType{Depth: 3})

	if !info.IsMate {
		t.Fatalf("expected a mate score despite Rule50=99, got cp %d", info.Score)
	}
	if info.Score != Mate-1 {
		t.Errorf("score = %d, want %d (mate in 1)", info.Score, Mate-1)
	}
}

// Scenario 6: a position with exactly one legal move must exit the
// deepener at rootDepth == 8 regardless of the requested depth.
func TestSingleLegalMoveExitsAtDepth8(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, "k7/8/K7/8/8/8/8/8 b - - 0 1")

	var th = newThread(e, 0, pos, nil)
	th.clearForNewSearch()
	th.iterativeDeepen(20)

	if th.rootDepth != 8 {
		t.Errorf("loop stopped at rootDepth = %d, want 8 (single-root-move early exit)", th.rootDepth)
	}
	if th.flRootChoice {
		t.Error("flRootChoice = true, want false: only one legal move was ever available")
	}
	if th.rootPV.n == 0 || th.rootPV.moves[0].String() != "a8b8" {
		t.Errorf("root PV = %v, want to begin with a8b8", th.rootPV.toSlice())
	}
}

// Determinism: a single-worker search against a freshly cleared engine is
// reproducible, since there is no cross-worker race to introduce variance.
func TestSingleWorkerDeterminism(t *testing.T) {
	var pos = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	var e1 = newTestEngine()
	var info1 = e1.Think(context.Background(), pos, nil, board.LimitsType{Depth: 6})

	var e2 = newTestEngine()
	var info2 = e2.Think(context.Background(), pos, nil, board.LimitsType{Depth: 6})

	if info1.Score != info2.Score {
		t.Errorf("scores differ across runs: %d vs %d", info1.Score, info2.Score)
	}
	if len(info1.PV) != len(info2.PV) {
		t.Fatalf("PV lengths differ: %v vs %v", info1.PV, info2.PV)
	}
	for i := range info1.PV {
		if info1.PV[i] != info2.PV[i] {
			t.Errorf("PV differs at index %d: %v vs %v", i, info1.PV, info2.PV)
		}
	}
}

func TestLMRTableBounds(t *testing.T) {
	for isPv := 0; isPv < 2; isPv++ {
		for depth := 1; depth < MaxPly; depth++ {
			for moveIndex := 1; moveIndex < MaxMoves; moveIndex++ {
				var r = lmrReduction(isPv == 1, depth, moveIndex)
				var max = depth - 1
				if max < 0 {
					max = 0
				}
				if r < 0 || r > max {
					t.Fatalf("lmrReduction(%v,%d,%d) = %d, want in [0,%d]", isPv == 1, depth, moveIndex, r, max)
				}
			}
		}
	}
}

// checkCaps must abort exactly when this worker's own unflushed nodes
// push the coordinator's last-flushed total past NodesLimit — not a
// pollInterval flush later.
func TestCheckCapsAbortsAtNodeLimit(t *testing.T) {
	var e = newTestEngine()
	e.Options.NodesLimit = 1000
	e.coord.reset()

	var pos = mustPosition(t, board.InitialPositionFEN)
	var th = newThread(e, 0, pos, nil)
	th.clearForNewSearch()

	th.nodes = 999
	if th.checkCaps() {
		t.Fatal("checkCaps aborted one node before NodesLimit was reached")
	}
	if e.coord.abort() {
		t.Fatal("coordinator aborted before NodesLimit was reached")
	}

	th.nodes = 1000
	if !th.checkCaps() {
		t.Error("checkCaps did not abort once unflushed nodes reached NodesLimit")
	}
	if !e.coord.abort() {
		t.Error("coordinator was not raised once NodesLimit was reached")
	}
}

// Think must wire a `go nodes N` limit through to the search: the
// returned node count must never exceed it, matching the invariant
// checkCaps enforces on every node rather than once per pollInterval.
func TestThinkRespectsNodesLimit(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	var info = e.Think(context.Background(), pos, nil, board.LimitsType{Nodes: 50000, Depth: 30})

	if info.Nodes > 50000 {
		t.Errorf("Nodes = %d, want at most the 50000 NodesLimit", info.Nodes)
	}
	if info.Nodes == 0 {
		t.Error("Nodes = 0, want a positive count: the search should have run past at least one node-count flush before the limit aborted it")
	}
}

// Scenario 5: a worker that has fallen more than one depth behind the
// pack must skip its next depth — incrementing dpCompleted without
// running a search at all — rather than redoing work another worker
// already completed.
func TestLazySmpWorkerSkipsWhenFarBehind(t *testing.T) {
	var e = newTestEngine()
	var pos = mustPosition(t, board.InitialPositionFEN)

	var th = newThread(e, 0, pos, nil)
	th.clearForNewSearch()
	e.coord.reset()
	e.coord.raiseDepthReached(2)

	th.iterativeDeepen(1)

	if th.dpCompleted != 1 {
		t.Errorf("dpCompleted = %d, want 1 (skip increments it once)", th.dpCompleted)
	}
	if th.rootDepth != 0 {
		t.Errorf("rootDepth = %d, want 0: depth 1 should have been skipped, not searched", th.rootDepth)
	}
}

func TestDepthReachedNeverDecreases(t *testing.T) {
	var c coordinator
	c.reset()
	c.raiseDepthReached(3)
	c.raiseDepthReached(5)
	c.raiseDepthReached(2)
	if got := c.depthReachedValue(); got != 5 {
		t.Errorf("depthReachedValue() = %d, want 5 (monotonic max)", got)
	}
}
