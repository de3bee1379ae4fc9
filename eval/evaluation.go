// Package eval provides the static evaluator the search kernel treats as
// a black box: material plus tapered piece-square tables, phased between
// middlegame and endgame by remaining non-pawn material. It exists so the
// kernel has something real to call; evaluation tuning is a separate
// concern from the search core.
package eval

import "github.com/kestrelchess/kestrel/board"

const (
	minorPhase = 4
	rookPhase  = 6
	queenPhase = 12
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

var pieceValue = [7]int{board.Empty: 0, board.Pawn: 100, board.Knight: 320, board.Bishop: 330, board.Rook: 500, board.Queen: 900, board.King: 0}

// score packs a middlegame/endgame pair into one int32: mg in the low
// 16 bits, eg in the high 16.
type score int32

func makeScore(mg, eg int) score {
	return score(int32(uint32(int16(mg)))&0xffff | int32(eg)<<16)
}
func (s score) mg() int          { return int(int16(int32(s) & 0xffff)) }
func (s score) eg() int          { return int(int16(int32(s) >> 16)) }

var pst [2][7][64]score

func init() {
	// Small, hand-picked center-control tables: enough to give the search
	// kernel meaningful positional signal without claiming to be a tuned
	// evaluation function (that tuning is explicitly out of scope).
	var pawnMg = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	var knightMg = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	var bishopMg = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	var rookMg = [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	var queenMg = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	var kingMg = [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	var kingEg = [64]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}

	var tables = map[int][64]int{
		board.Pawn: pawnMg, board.Knight: knightMg, board.Bishop: bishopMg,
		board.Rook: rookMg, board.Queen: queenMg, board.King: kingMg,
	}
	for piece, table := range tables {
		for sq := 0; sq < 64; sq++ {
			var eg = table[sq]
			if piece == board.King {
				eg = kingEg[sq]
			}
			pst[1][piece][sq] = makeScore(pieceValue[piece]+table[sq], pieceValue[piece]+eg)
			pst[0][piece][board.FlipSquare(sq)] = makeScore(pieceValue[piece]+table[sq], pieceValue[piece]+eg)
		}
	}
}

// Evaluate returns a static score in centipawns from the perspective of
// the side to move.
func Evaluate(p *board.Position) int {
	var s score
	var phaseWeight int

	for _, white := range [2]bool{true, false} {
		var side = p.PiecesByColor(white)
		var sideIndex = 0
		if white {
			sideIndex = 1
		}
		for bb := side; bb != 0; bb &= bb - 1 {
			var sq = board.FirstOne(bb)
			var piece = p.PieceOn(sq)
			var entry = pst[sideIndex][piece][sq]
			if white {
				s += entry
			} else {
				s -= entry
			}
			switch piece {
			case board.Knight, board.Bishop:
				phaseWeight += minorPhase
			case board.Rook:
				phaseWeight += rookPhase
			case board.Queen:
				phaseWeight += queenPhase
			}
		}
	}

	if phaseWeight > totalPhase {
		phaseWeight = totalPhase
	}
	var result = (s.mg()*phaseWeight + s.eg()*(totalPhase-phaseWeight)) / totalPhase
	if !p.WhiteMove {
		result = -result
	}
	return result
}
