package engine

import "time"

const pollInterval = 2048

// incNode bumps this worker's node count and runs the node/NPS-cap checks
// on every call: "increment node counter, then check the slowdown
// conditions" happens once per node, full stop. Only the interface poll —
// a relatively expensive call into UCI input handling — stays batched to
// one call per pollInterval nodes, the same batching the node counter's
// `!(nodes & 2047)` guard around its own poll uses elsewhere in this
// family of engines.
func (t *thread) incNode() {
	t.nodes++
	if t.checkCaps() {
		return
	}
	if t.nodes-t.lastPollNode < pollInterval {
		return
	}
	t.engine.coord.addNodes(t.nodes - t.lastPollNode)
	t.lastPollNode = t.nodes
	t.pollInterface()
}

// checkCaps enforces the node cap and the NPS cap. It reports whether the
// search was aborted, in which case the caller should skip the batched
// interface poll. The node cap compares against this worker's own count
// plus the coordinator's last-flushed total rather than waiting for the
// next flush, so a tight NodesLimit cannot overshoot by a full
// pollInterval's worth of nodes.
func (t *thread) checkCaps() bool {
	var opts = &t.engine.Options

	if opts.NodesLimit > 0 {
		var unflushed = t.nodes - t.lastPollNode
		if t.engine.coord.totalNodes()+unflushed >= opts.NodesLimit {
			t.engine.coord.raiseAbort()
			return true
		}
	}

	if opts.NPSLimit > 0 && t.rootDepth > 1 {
		for {
			var elapsed = time.Since(t.startTime)
			if elapsed <= 0 {
				break
			}
			var nps = int64(float64(t.nodes) / elapsed.Seconds())
			if nps <= opts.NPSLimit {
				break
			}
			if t.engine.deadline != nil && time.Now().After(*t.engine.deadline) {
				t.engine.coord.raiseAbort()
				return true
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	return false
}

func (t *thread) pollInterface() {
	if t.engine.Options.Threads == 1 && t.rootDepth > 1 && t.engine.poll != nil {
		t.engine.poll()
	}
}
