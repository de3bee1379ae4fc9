package uci

import (
	"fmt"
	"strings"

	"github.com/kestrelchess/kestrel/engine"
)

// formatInfo renders a SearchInfo as a UCI `info` line. A currmove-only
// payload (no PV) renders the currmove form instead of the depth/score
// form.
func formatInfo(info engine.SearchInfo) string {
	if len(info.PV) == 0 && info.CurrMove != 0 {
		return fmt.Sprintf("info depth %d currmove %s currmovenumber %d",
			info.Depth, info.CurrMove, info.CurrMoveN)
	}

	var score string
	if info.IsMate {
		score = fmt.Sprintf("mate %d", engine.MateDistance(info.Score))
	} else {
		score = fmt.Sprintf("cp %d", info.Score)
	}

	var nps int64
	if info.Time > 0 {
		nps = int64(float64(info.Nodes) / info.Time.Seconds())
	}

	var pv = make([]string, len(info.PV))
	for i, m := range info.PV {
		pv[i] = m.String()
	}

	return fmt.Sprintf("info depth %d score %s nodes %d nps %d time %d pv %s",
		info.Depth, score, info.Nodes, nps, info.Time.Milliseconds(), strings.Join(pv, " "))
}

// formatBestMove renders a UCI `bestmove` line, including the ponder move
// when the PV is long enough to suggest one.
func formatBestMove(info engine.SearchInfo) string {
	if len(info.PV) == 0 {
		return "bestmove 0000"
	}
	if len(info.PV) > 1 {
		return fmt.Sprintf("bestmove %s ponder %s", info.PV[0], info.PV[1])
	}
	return fmt.Sprintf("bestmove %s", info.PV[0])
}
