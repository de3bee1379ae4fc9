// Package board implements chess position representation: bitboards,
// move encoding and generation, make/unmake, and Zobrist hashing.
//
// It is a collaborator of package engine, not the search kernel itself:
// engine consults it only through the query and mutation methods documented
// on Position and Move.
package board

const (
	Empty = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const MaxMoves = 256

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const SquareNone = -1

const (
	SquareA1 = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8
)

// Move is an opaque 32-bit encoding: from(6) to(6) piece(3) captured(3) promotion(3) flags(3).
type Move int32

const MoveEmpty Move = 0

const (
	flagNone = iota
	flagCastle
	flagEnPassant
	flagDoublePush
)

func makeMove(from, to, piece, captured, promotion, flag int) Move {
	return Move(from ^ (to << 6) ^ (piece << 12) ^ (captured << 15) ^ (promotion << 18) ^ (flag << 21))
}

func (m Move) From() int         { return int(m & 63) }
func (m Move) To() int           { return int((m >> 6) & 63) }
func (m Move) Piece() int        { return int((m >> 12) & 7) }
func (m Move) Captured() int     { return int((m >> 15) & 7) }
func (m Move) Promotion() int    { return int((m >> 18) & 7) }
func (m Move) flag() int         { return int((m >> 21) & 7) }
func (m Move) IsCastle() bool    { return m.flag() == flagCastle }
func (m Move) IsEnPassant() bool { return m.flag() == flagEnPassant }

func (m Move) IsCaptureOrPromotion() bool {
	return m.Captured() != Empty || m.Promotion() != Empty
}

// MoveKind classifies a move for move-ordering and pruning purposes:
// normal, capture, bad capture (losing SEE), castle, promotion.
type MoveKind int

const (
	MoveNormal MoveKind = iota
	MoveCapture
	MoveBadCapture
	MoveCastle
	MovePromotion
)

// Kind classifies the move for move-ordering and pruning decisions. See is
// evaluated lazily by the caller; badCapture reports whether the caller has
// already determined (via SEE) that the capture loses material.
func (m Move) Kind(badCapture bool) MoveKind {
	if m.IsCastle() {
		return MoveCastle
	}
	if m.Promotion() != Empty {
		return MovePromotion
	}
	if m.Captured() != Empty {
		if badCapture {
			return MoveBadCapture
		}
		return MoveCapture
	}
	return MoveNormal
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var promo = ""
	if m.Promotion() != Empty {
		promo = string("  nbrq"[m.Promotion()])
	}
	return SquareName(m.From()) + SquareName(m.To()) + promo
}

// OrderedMove pairs a move with a sort key used by the engine's move iterator.
type OrderedMove struct {
	Move Move
	Key  int32
}

// LimitsType carries the UCI `go` command's time/depth/node budget.
type LimitsType struct {
	Ponder         bool
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
	Mate           int
}
