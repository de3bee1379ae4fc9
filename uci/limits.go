package uci

import (
	"context"
	"strconv"
	"time"

	"github.com/kestrelchess/kestrel/board"
)

// parseLimits translates a `go` command's fields into board.LimitsType,
// the same shape as a time manager's input.
func parseLimits(fields []string) board.LimitsType {
	var limits board.LimitsType
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "ponder":
			limits.Ponder = true
		case "infinite":
			limits.Infinite = true
		case "wtime":
			i++
			limits.WhiteTime = atoiField(fields, i)
		case "btime":
			i++
			limits.BlackTime = atoiField(fields, i)
		case "winc":
			i++
			limits.WhiteIncrement = atoiField(fields, i)
		case "binc":
			i++
			limits.BlackIncrement = atoiField(fields, i)
		case "movestogo":
			i++
			limits.MovesToGo = atoiField(fields, i)
		case "depth":
			i++
			limits.Depth = atoiField(fields, i)
		case "nodes":
			i++
			limits.Nodes = atoiField(fields, i)
		case "mate":
			i++
			limits.Mate = atoiField(fields, i)
		case "movetime":
			i++
			limits.MoveTime = atoiField(fields, i)
		}
	}
	return limits
}

func atoiField(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	var n, err = strconv.Atoi(fields[i])
	if err != nil {
		return 0
	}
	return n
}

// moveOverhead is subtracted from every computed budget to leave room for
// UCI round-trip and process-scheduling latency.
const moveOverhead = 30 * time.Millisecond

// newDeadlineContext derives the search deadline the same way a
// dedicated time manager would: movetime is absolute, infinite/ponder/
// mate searches get no deadline at all (the caller must stop explicitly),
// and a clock-based search gets a fraction of the remaining time scaled
// by the moves-to-go estimate.
func newDeadlineContext(limits board.LimitsType, whiteToMove bool) (context.Context, context.CancelFunc) {
	if limits.Infinite || limits.Ponder || limits.Mate > 0 {
		return context.WithCancel(context.Background())
	}

	if limits.MoveTime > 0 {
		var budget = time.Duration(limits.MoveTime)*time.Millisecond - moveOverhead
		if budget < time.Millisecond {
			budget = time.Millisecond
		}
		return context.WithTimeout(context.Background(), budget)
	}

	if limits.WhiteTime <= 0 && limits.BlackTime <= 0 {
		return context.WithCancel(context.Background())
	}

	var budget = timeBudget(limits, whiteToMove)
	return context.WithTimeout(context.Background(), budget)
}

// timeBudget allocates this move's share of the clock: remaining time
// plus the expected increments over movestogo moves, divided by
// movestogo (defaulting to a 30-move horizon in sudden death).
func timeBudget(limits board.LimitsType, whiteToMove bool) time.Duration {
	var remaining, increment = limits.WhiteTime, limits.WhiteIncrement
	if !whiteToMove {
		remaining, increment = limits.BlackTime, limits.BlackIncrement
	}

	var movesToGo = limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}

	var share = remaining/movesToGo + increment
	var budget = time.Duration(share)*time.Millisecond - moveOverhead
	if budget < time.Millisecond {
		budget = time.Millisecond
	}
	return budget
}
