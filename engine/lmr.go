package engine

import "math"

// lmrTable[isPv][depth][moveIndex] is the late-move-reduction amount,
// computed once at startup and read concurrently by every worker
// thereafter; it is never written again, so it needs no synchronization.
var lmrTable [2][MaxPly][MaxMoves]int8

func init() {
	initLmr()
}

// initLmr fills lmrTable with r = floor(ln(d) * ln(min(m,63)) / 2) for
// zero-window nodes, and r-1 for PV nodes, each clamped to [0, d-1].
func initLmr() {
	for d := 0; d < MaxPly; d++ {
		for m := 0; m < MaxMoves; m++ {
			if d == 0 || m == 0 {
				continue
			}
			var mCapped = m
			if mCapped > 63 {
				mCapped = 63
			}
			var r = int(math.Log(float64(d)) * math.Log(float64(mCapped)) / 2)

			var clamp = func(v int) int8 {
				if v < 0 {
					v = 0
				}
				if v > d-1 {
					v = d - 1
				}
				return int8(v)
			}
			lmrTable[0][d][m] = clamp(r)
			lmrTable[1][d][m] = clamp(r - 1)
		}
	}
}

func lmrReduction(isPv bool, depth, moveIndex int) int {
	var pvIndex = 0
	if isPv {
		pvIndex = 1
	}
	if depth >= MaxPly {
		depth = MaxPly - 1
	}
	if moveIndex >= MaxMoves {
		moveIndex = MaxMoves - 1
	}
	return int(lmrTable[pvIndex][depth][moveIndex])
}
