package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kestrelchess/kestrel/board"
)

// lazySmp runs Options.Threads independent workers against a shared
// transposition table: no fine-grained coordination beyond the
// coordinator's relaxed flags and the table itself.
func (e *Engine) lazySmp(ctx context.Context, pos board.Position, gameHistory []uint64, limits board.LimitsType) SearchInfo {
	var maxDepth = limits.Depth
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	if dl, ok := ctx.Deadline(); ok {
		e.deadline = &dl
	} else {
		e.deadline = nil
	}
	e.coord.setPondering(limits.Ponder)
	e.Options.NodesLimit = int64(limits.Nodes)

	var threadCount = e.Options.Threads
	if threadCount < 1 {
		threadCount = 1
	}

	if len(e.histories) < threadCount {
		e.histories = append(e.histories, make([]historyTable, threadCount-len(e.histories))...)
	}

	var workers = make([]*thread, threadCount)
	var startTime = time.Now()
	for i := range workers {
		var clone = pos
		workers[i] = newThread(e, i, clone, gameHistory)
		workers[i].history = e.histories[i]
		workers[i].startTime = startTime
		workers[i].clearForNewSearch()
	}

	var group, groupCtx = errgroup.WithContext(ctx)
	for _, w := range workers {
		var worker = w
		group.Go(func() error {
			worker.iterativeDeepen(maxDepth)
			return nil
		})
	}

	go func() {
		select {
		case <-groupCtx.Done():
			e.coord.raiseAbort()
		case <-ctx.Done():
			e.coord.raiseAbort()
		}
	}()

	group.Wait()
	e.coord.raiseAbort()

	for i, w := range workers {
		e.histories[i] = w.history
	}

	var best = workers[0]
	for _, w := range workers[1:] {
		if w.dpCompleted > best.dpCompleted {
			best = w
		}
	}

	return SearchInfo{
		Depth:  best.dpCompleted,
		Time:   time.Since(startTime),
		Nodes:  e.coord.totalNodes(),
		Score:  best.rootScore,
		IsMate: isMateScore(best.rootScore),
		PV:     best.rootPV.toSlice(),
	}
}
