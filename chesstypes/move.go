package chesstypes

// MoveFlag enumerates the kinds of special side effects a move can carry.
type MoveFlag uint8

const (
	Normal MoveFlag = iota
	WKCastle
	WQCastle
	BKCastle
	BQCastle
	EnPassant
	DoublePush
	PromoKnight
	PromoBishop
	PromoRook
	PromoQueen
)

// IsPromotion reports whether the flag denotes a promotion.
func (f MoveFlag) IsPromotion() bool { return f >= PromoKnight && f <= PromoQueen }

// PromotedType returns the piece type a promotion flag produces.
func (f MoveFlag) PromotedType() PieceType {
	switch f {
	case PromoKnight:
		return Knight
	case PromoBishop:
		return Bishop
	case PromoRook:
		return Rook
	case PromoQueen:
		return Queen
	default:
		return NoPieceType
	}
}

// Move packs a move into 16 bits: from(6) | to(6) | flag(4), low to high.
// The null move (all-zero) is not a legal move encoding (from==to==a1,
// flag==Normal) but is never produced by move generation.
type Move uint16

// NewMove builds a Move from its components.
func NewMove(from, to Square, flag MoveFlag) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

// From returns the origin square.
func (m Move) From() Square { return Square(m & 0x3f) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3f) }

// Flag returns the move's special-effect flag.
func (m Move) Flag() MoveFlag { return MoveFlag((m >> 12) & 0xf) }

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m == 0 }

// String formats the move in long algebraic notation (UCI wire format).
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	switch m.Flag() {
	case PromoKnight:
		s += "n"
	case PromoBishop:
		s += "b"
	case PromoRook:
		s += "r"
	case PromoQueen:
		s += "q"
	}
	return s
}

// MaxMoves bounds the number of legal moves reachable from any chess position.
const MaxMoves = 218

// MoveList is a fixed-capacity array of moves, avoiding allocation during
// move generation and search.
type MoveList struct {
	Moves [MaxMoves]Move
	Count int
}

// Push appends a move to the list.
func (l *MoveList) Push(m Move) {
	l.Moves[l.Count] = m
	l.Count++
}

// Slice returns the populated prefix of the move array.
func (l *MoveList) Slice() []Move { return l.Moves[:l.Count] }
