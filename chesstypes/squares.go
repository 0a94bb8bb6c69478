// Package chesstypes defines the primitive value types shared across the
// engine: squares, pieces, moves and the Zobrist hashing tables.
package chesstypes

// Bitboard is a 64-bit set of squares, bit i corresponding to Square(i).
type Bitboard uint64

// Square is a board square in [0,64); 64 denotes an invalid/absent square.
// A1=0, H8=63, rank = sq/8, file = sq%8.
type Square uint8

// NoSquare marks the absence of a square (e.g. no en passant target).
const NoSquare Square = 64

// Rank returns the 0-based rank (0 = rank 1).
func (s Square) Rank() int { return int(s) / 8 }

// File returns the 0-based file (0 = file a).
func (s Square) File() int { return int(s) % 8 }

// Bitboard returns the singleton bitboard containing only s.
func (s Square) Bitboard() Bitboard { return Bitboard(1) << s }

// FlipRank mirrors the square vertically (rank r -> rank 7-r), keeping the file.
func (s Square) FlipRank() Square { return Square(int(s) ^ 56) }

// FlipFile mirrors the square horizontally (file f -> file 7-f), keeping the rank.
func (s Square) FlipFile() Square { return Square(int(s) ^ 7) }

// squareNames holds the algebraic names for squares 0..63, used by FEN and UCI formatting.
var squareNames = [64]string{
	"a1", "b1", "c1", "d1", "e1", "f1", "g1", "h1",
	"a2", "b2", "c2", "d2", "e2", "f2", "g2", "h2",
	"a3", "b3", "c3", "d3", "e3", "f3", "g3", "h3",
	"a4", "b4", "c4", "d4", "e4", "f4", "g4", "h4",
	"a5", "b5", "c5", "d5", "e5", "f5", "g5", "h5",
	"a6", "b6", "c6", "d6", "e6", "f6", "g6", "h6",
	"a7", "b7", "c7", "d7", "e7", "f7", "g7", "h7",
	"a8", "b8", "c8", "d8", "e8", "f8", "g8", "h8",
}

// String returns the algebraic name of the square, or "-" for NoSquare.
func (s Square) String() string {
	if s >= 64 {
		return "-"
	}
	return squareNames[s]
}

// SquareFromString parses an algebraic square name ("e4"). Returns NoSquare
// for "-".
func SquareFromString(str string) Square {
	if str == "-" || len(str) < 2 {
		return NoSquare
	}
	file := int(str[0] - 'a')
	rank := int(str[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare
	}
	return Square(rank*8 + file)
}
