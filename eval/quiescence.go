package eval

import "github.com/kestrelchess/kestrel/board"

// MaxPly bounds the quiescence recursion the same way it bounds the main
// kernel; both packages must agree on it so ply-indexed buffers line up.
const MaxPly = 128

// deltaMargin is the stand-pat slack below which a losing capture is
// skipped outright rather than explored: even the best possible gain on
// the target square could not recover the deficit.
const deltaMargin = 200

// Quiesce is the capture-only search the alpha-beta kernel delegates to at
// depth <= 0: it returns a static-exchange-stable leaf score. nodes is
// incremented once per visited node so the caller's node budget stays
// accurate.
func Quiesce(p *board.Position, alpha, beta, ply int, nodes *int64) int {
	*nodes++

	var standPat = Evaluate(p)
	if ply >= MaxPly-1 {
		return standPat
	}
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	var buf [board.MaxMoves]board.OrderedMove
	var inCheck = p.IsCheck()
	var n int
	if inCheck {
		n = board.GenerateMoves(p, buf[:])
	} else {
		n = board.GenerateCaptures(p, buf[:])
	}

	orderByMVVLVA(buf[:n])

	var best = standPat
	var undo board.Undo
	for i := 0; i < n; i++ {
		var move = buf[i].Move

		if !inCheck && move.Captured() != board.Empty && move.Promotion() == board.Empty {
			if standPat+pieceValue[move.Captured()]+deltaMargin < alpha {
				continue
			}
			if !board.SeeGEZero(p, move) {
				continue
			}
		}

		p.DoMove(move, &undo)
		if p.Illegal() {
			p.UndoMove(move, &undo)
			continue
		}

		var score = -Quiesce(p, -beta, -alpha, ply+1, nodes)
		p.UndoMove(move, &undo)

		if score > best {
			best = score
			if score > alpha {
				alpha = score
				if score >= beta {
					return score
				}
			}
		}
	}

	return best
}

func orderByMVVLVA(ml []board.OrderedMove) {
	for i := range ml {
		var move = ml[i].Move
		ml[i].Key = int32(pieceValue[move.Captured()]*8 - pieceValue[move.Piece()])
	}
	for i := 1; i < len(ml); i++ {
		for j := i; j > 0 && ml[j].Key > ml[j-1].Key; j-- {
			ml[j], ml[j-1] = ml[j-1], ml[j]
		}
	}
}
