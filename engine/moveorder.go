package engine

import "github.com/kestrelchess/kestrel/board"

const (
	keyTTMove      = 1 << 30
	keyGoodCapture = 1 << 29
	keyKiller1     = 1 << 28
	keyKiller2     = 1 << 27
	keyRefutation  = 1 << 26
	keyBadCapture  = -(1 << 29)
)

// scoreMoves assigns each move an ordering key: hash move first, then
// winning captures by MVV-LVA, then killers, then the null-move
// refutation square, then quiet moves by history score, then losing
// captures last.
func scoreMoves(p *board.Position, ml []board.OrderedMove, ttMove board.Move, k *killerState, refSq int, hist *historyTable) {
	for i := range ml {
		var move = ml[i].Move
		switch {
		case move == ttMove:
			ml[i].Key = keyTTMove
		case move.Captured() != board.Empty || move.Promotion() != board.Empty:
			if board.SeeGEZero(p, move) {
				ml[i].Key = keyGoodCapture + int32(move.Captured())*8 - int32(move.Piece())
			} else {
				ml[i].Key = keyBadCapture + int32(move.Captured())*8 - int32(move.Piece())
			}
		case move == k.killer1:
			ml[i].Key = keyKiller1
		case move == k.killer2:
			ml[i].Key = keyKiller2
		case refSq != board.SquareNone && move.To() == refSq:
			ml[i].Key = keyRefutation
		default:
			ml[i].Key = hist.get(move.Piece(), move.To())
		}
	}
}

// pickNext selects the highest-keyed remaining move from ml[from:] and
// swaps it into ml[from], an in-place selection sort that only pays for
// as many comparisons as moves actually get tried (the search loop
// usually cuts off long before the end of the list).
func pickNext(ml []board.OrderedMove, from int) board.Move {
	var best = from
	for i := from + 1; i < len(ml); i++ {
		if ml[i].Key > ml[best].Key {
			best = i
		}
	}
	ml[from], ml[best] = ml[best], ml[from]
	return ml[from].Move
}
