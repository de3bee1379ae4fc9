package board

var (
	whiteKingSideCastle  = makeMove(SquareE1, SquareG1, King, Empty, Empty, flagCastle)
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty, Empty, flagCastle)
	blackKingSideCastle  = makeMove(SquareE8, SquareG8, King, Empty, Empty, flagCastle)
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty, Empty, flagCastle)
)

const (
	f1g1Mask = uint64(1)<<SquareF1 | uint64(1)<<SquareG1
	b1d1Mask = uint64(1)<<SquareB1 | uint64(1)<<SquareC1 | uint64(1)<<SquareD1
	f8g8Mask = uint64(1)<<SquareF8 | uint64(1)<<SquareG8
	b8d8Mask = uint64(1)<<SquareB8 | uint64(1)<<SquareC8 | uint64(1)<<SquareD8
)

func addPromotions(ml []OrderedMove, move Move) int {
	ml[0].Move = move ^ Move(Queen<<18)
	ml[1].Move = move ^ Move(Rook<<18)
	ml[2].Move = move ^ Move(Bishop<<18)
	ml[3].Move = move ^ Move(Knight<<18)
	return 4
}

// GenerateMoves generates all pseudo-legal moves from p into ml, returning
// the count. Legality (own king safety) is established lazily by DoMove.
func GenerateMoves(p *Position, ml []OrderedMove) int {
	var ownPieces, oppPieces = p.sidePieces()
	var occ = p.AllPieces()

	var n = 0
	n = genEnPassant(p, ml, n)
	n = genPawnAdvances(p, ownPieces, oppPieces, occ, ml, n)
	n = genTableMoves(ml, n, p.Knights&ownPieces, ownPieces, Knight, p, KnightAttacks)
	n = genSliderMoves(ml, n, p.Bishops&ownPieces, ownPieces, occ, Bishop, p, BishopAttacks)
	n = genSliderMoves(ml, n, p.Rooks&ownPieces, ownPieces, occ, Rook, p, RookAttacks)
	n = genSliderMoves(ml, n, p.Queens&ownPieces, ownPieces, occ, Queen, p, QueenAttacks)
	n = genTableMoves(ml, n, p.Kings&ownPieces, ownPieces, King, p, KingAttacks)
	n = genCastles(p, occ, ml, n)
	return n
}

func (p *Position) sidePieces() (own, opp uint64) {
	if p.WhiteMove {
		return p.White, p.Black
	}
	return p.Black, p.White
}

func genEnPassant(p *Position, ml []OrderedMove, n int) int {
	if p.EpSquare == SquareNone {
		return n
	}
	var ownPieces, _ = p.sidePieces()
	var ownPawns = p.Pawns & ownPieces
	for fromBB := PawnAttacks(p.EpSquare, !p.WhiteMove) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		ml[n].Move = makeMove(from, p.EpSquare, Pawn, Pawn, Empty, flagEnPassant)
		n++
	}
	return n
}

// genPawnAdvances covers single/double pushes, diagonal captures, and
// promotions for the side to move. White and black are unified through a
// signed forward step: a capture always lands at forward-1 or forward+1
// regardless of color, so the same arithmetic serves both directions.
func genPawnAdvances(p *Position, ownPieces, oppPieces, occ uint64, ml []OrderedMove, n int) int {
	var forward, doublePushRank int
	var promotingRank uint64
	if p.WhiteMove {
		forward, doublePushRank, promotingRank = 8, Rank2, Rank7Mask
	} else {
		forward, doublePushRank, promotingRank = -8, Rank7, Rank2Mask
	}

	var ownPawns = p.Pawns & ownPieces

	for fromBB := ownPawns &^ promotingRank; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		n = addPawnStep(p, from, forward, doublePushRank, oppPieces, occ, ml, n, false)
	}
	for fromBB := ownPawns & promotingRank; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		n = addPawnStep(p, from, forward, doublePushRank, oppPieces, occ, ml, n, true)
	}
	return n
}

func addPawnStep(p *Position, from, forward, doublePushRank int, oppPieces, occ uint64, ml []OrderedMove, n int, promoting bool) int {
	var to = from + forward
	if squareMask[to]&occ == 0 {
		n = appendPawnMove(ml, n, from, to, Empty, promoting)
		if Rank(from) == doublePushRank && squareMask[to+forward]&occ == 0 {
			ml[n].Move = makeMove(from, to+forward, Pawn, Empty, Empty, flagDoublePush)
			n++
		}
	}
	if File(from) > FileA && squareMask[to-1]&oppPieces != 0 {
		n = appendPawnMove(ml, n, from, to-1, p.PieceOn(to-1), promoting)
	}
	if File(from) < FileH && squareMask[to+1]&oppPieces != 0 {
		n = appendPawnMove(ml, n, from, to+1, p.PieceOn(to+1), promoting)
	}
	return n
}

func appendPawnMove(ml []OrderedMove, n, from, to, captured int, promoting bool) int {
	var move = makeMove(from, to, Pawn, captured, Empty, flagNone)
	if promoting {
		return n + addPromotions(ml[n:], move)
	}
	ml[n].Move = move
	return n + 1
}

// genTableMoves handles pieces whose attack set comes from a fixed
// lookup table (knights, kings) rather than occupancy-dependent rays.
func genTableMoves(ml []OrderedMove, n int, fromBB, ownPieces uint64, piece int, p *Position, attacks func(int) uint64) int {
	for ; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := attacks(from) &^ ownPieces; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[n].Move = makeMove(from, to, piece, p.PieceOn(to), Empty, flagNone)
			n++
		}
	}
	return n
}

// genSliderMoves handles bishops, rooks, and queens, whose attack sets
// depend on board occupancy via magic bitboards.
func genSliderMoves(ml []OrderedMove, n int, fromBB, ownPieces, occ uint64, piece int, p *Position, attacks func(int, uint64) uint64) int {
	for ; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := attacks(from, occ) &^ ownPieces; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[n].Move = makeMove(from, to, piece, p.PieceOn(to), Empty, flagNone)
			n++
		}
	}
	return n
}

type castleSpec struct {
	right     int
	move      Move
	clearMask uint64
	safeFrom  int
	safeVia   int
	safeTo    int
	opponent  bool
}

func genCastles(p *Position, occ uint64, ml []OrderedMove, n int) int {
	var specs []castleSpec
	if p.WhiteMove {
		specs = []castleSpec{
			{WhiteKingSide, whiteKingSideCastle, f1g1Mask, SquareE1, SquareF1, SquareG1, false},
			{WhiteQueenSide, whiteQueenSideCastle, b1d1Mask, SquareE1, SquareD1, SquareC1, false},
		}
	} else {
		specs = []castleSpec{
			{BlackKingSide, blackKingSideCastle, f8g8Mask, SquareE8, SquareF8, SquareG8, true},
			{BlackQueenSide, blackQueenSideCastle, b8d8Mask, SquareE8, SquareD8, SquareC8, true},
		}
	}
	for _, s := range specs {
		if p.CastleRights&s.right == 0 || occ&s.clearMask != 0 {
			continue
		}
		if p.isAttackedBySide(s.safeFrom, s.opponent) || p.isAttackedBySide(s.safeVia, s.opponent) || p.isAttackedBySide(s.safeTo, s.opponent) {
			continue
		}
		ml[n].Move = s.move
		n++
	}
	return n
}

// GenerateCaptures generates pseudo-legal captures and promotions only,
// used by the quiescence search's move iterator.
func GenerateCaptures(p *Position, ml []OrderedMove) int {
	var n = GenerateMoves(p, ml)
	var count = 0
	for i := 0; i < n; i++ {
		if ml[i].Move.IsCaptureOrPromotion() {
			ml[count] = ml[i]
			count++
		}
	}
	return count
}

// GenerateLegalMoves is a convenience wrapper over GenerateMoves for
// callers (the UCI driver, tests) that need a fully legal move list.
func GenerateLegalMoves(p *Position) []Move {
	var buf [MaxMoves]OrderedMove
	var n = GenerateMoves(p, buf[:])
	var result = make([]Move, 0, n)
	for i := 0; i < n; i++ {
		var next = *p
		var undo Undo
		next.DoMove(buf[i].Move, &undo)
		if !next.Illegal() {
			result = append(result, buf[i].Move)
		}
	}
	return result
}
