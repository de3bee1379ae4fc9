package uci

import (
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/board"
)

func TestParseLimitsFields(t *testing.T) {
	var limits = parseLimits([]string{"wtime", "30000", "btime", "29000", "winc", "100", "binc", "200", "movestogo", "20"})

	if limits.WhiteTime != 30000 || limits.BlackTime != 29000 {
		t.Errorf("clocks = %d/%d, want 30000/29000", limits.WhiteTime, limits.BlackTime)
	}
	if limits.WhiteIncrement != 100 || limits.BlackIncrement != 200 {
		t.Errorf("increments = %d/%d, want 100/200", limits.WhiteIncrement, limits.BlackIncrement)
	}
	if limits.MovesToGo != 20 {
		t.Errorf("movestogo = %d, want 20", limits.MovesToGo)
	}
}

func TestParseLimitsDepthNodesMate(t *testing.T) {
	var limits = parseLimits([]string{"depth", "12", "nodes", "500000", "mate", "3"})
	if limits.Depth != 12 || limits.Nodes != 500000 || limits.Mate != 3 {
		t.Errorf("limits = %+v, want depth 12 nodes 500000 mate 3", limits)
	}
}

func TestParseLimitsInfiniteAndPonder(t *testing.T) {
	var limits = parseLimits([]string{"infinite"})
	if !limits.Infinite {
		t.Error("infinite not set")
	}

	limits = parseLimits([]string{"ponder", "wtime", "10000"})
	if !limits.Ponder || limits.WhiteTime != 10000 {
		t.Errorf("limits = %+v, want ponder=true wtime=10000", limits)
	}
}

func TestParseLimitsMalformedValueDefaultsToZero(t *testing.T) {
	var limits = parseLimits([]string{"wtime", "notanumber"})
	if limits.WhiteTime != 0 {
		t.Errorf("wtime = %d, want 0 for a malformed value", limits.WhiteTime)
	}
}

func TestParseLimitsTrailingKeywordWithNoValue(t *testing.T) {
	var limits = parseLimits([]string{"depth"})
	if limits.Depth != 0 {
		t.Errorf("depth = %d, want 0 when the value is missing", limits.Depth)
	}
}

func TestNewDeadlineContextMoveTimeIsAbsolute(t *testing.T) {
	var ctx, cancel = newDeadlineContext(board.LimitsType{MoveTime: 1000}, true)
	defer cancel()

	var deadline, ok = ctx.Deadline()
	if !ok {
		t.Fatal("movetime search has no deadline")
	}
	var budget = time.Until(deadline)
	var want = 1000*time.Millisecond - moveOverhead
	if budget > want || budget < want-10*time.Millisecond {
		t.Errorf("budget = %v, want close to %v", budget, want)
	}
}

func TestNewDeadlineContextInfiniteHasNoDeadline(t *testing.T) {
	var ctx, cancel = newDeadlineContext(board.LimitsType{Infinite: true}, true)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("infinite search has a deadline, want none")
	}
}

func TestNewDeadlineContextPonderHasNoDeadline(t *testing.T) {
	var ctx, cancel = newDeadlineContext(board.LimitsType{Ponder: true, WhiteTime: 5000}, true)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("ponder search has a deadline, want none")
	}
}

func TestNewDeadlineContextMateHasNoDeadline(t *testing.T) {
	var ctx, cancel = newDeadlineContext(board.LimitsType{Mate: 5, WhiteTime: 5000}, true)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("mate search has a deadline, want none")
	}
}

func TestNewDeadlineContextNoClockHasNoDeadline(t *testing.T) {
	var ctx, cancel = newDeadlineContext(board.LimitsType{}, true)
	defer cancel()
	if _, ok := ctx.Deadline(); ok {
		t.Error("a go with no time control at all has a deadline, want none")
	}
}

// timeBudget must pick the side to move's own clock, not always White's.
func TestTimeBudgetUsesSideToMoveClock(t *testing.T) {
	var limits = board.LimitsType{WhiteTime: 60000, BlackTime: 6000, MovesToGo: 30}

	var whiteBudget = timeBudget(limits, true)
	var blackBudget = timeBudget(limits, false)

	if whiteBudget <= blackBudget {
		t.Errorf("white budget (%v) should exceed black's (%v) given 60s vs 6s on the clock", whiteBudget, blackBudget)
	}
}

func TestTimeBudgetNeverGoesNegative(t *testing.T) {
	var budget = timeBudget(board.LimitsType{WhiteTime: 1, MovesToGo: 30}, true)
	if budget < time.Millisecond {
		t.Errorf("budget = %v, want at least 1ms even with almost no time left", budget)
	}
}

func TestTimeBudgetDefaultsMovesToGoInSuddenDeath(t *testing.T) {
	var withoutMovesToGo = timeBudget(board.LimitsType{WhiteTime: 300000}, true)
	var withThirty = timeBudget(board.LimitsType{WhiteTime: 300000, MovesToGo: 30}, true)
	if withoutMovesToGo != withThirty {
		t.Errorf("sudden-death budget = %v, want to match an explicit movestogo=30 budget of %v", withoutMovesToGo, withThirty)
	}
}
