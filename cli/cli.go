// Package cli formats a Position for terminal display, used by the UCI
// collaborator's "show" and "policy" commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/position"
)

// pieceSymbols indexes by chesstypes.Piece (color<<3|type): white P N B R Q K
// then black p n b r q k.
var pieceSymbols = [16]rune{
	chesstypes.MakePiece(chesstypes.White, chesstypes.Pawn):   '♙',
	chesstypes.MakePiece(chesstypes.White, chesstypes.Knight): '♘',
	chesstypes.MakePiece(chesstypes.White, chesstypes.Bishop): '♗',
	chesstypes.MakePiece(chesstypes.White, chesstypes.Rook):   '♖',
	chesstypes.MakePiece(chesstypes.White, chesstypes.Queen):  '♕',
	chesstypes.MakePiece(chesstypes.White, chesstypes.King):   '♔',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.Pawn):   '♟',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.Knight): '♞',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.Bishop): '♝',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.Rook):   '♜',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.Queen):  '♛',
	chesstypes.MakePiece(chesstypes.Black, chesstypes.King):   '♚',
}

// FormatBitboard renders a single bitboard using symbol for every set square.
func FormatBitboard(bb chesstypes.Bitboard, symbol rune) string {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := chesstypes.Square(rank*8 + file)
			ch := symbol
			if bb&sq.Bitboard() == 0 {
				ch = '.'
			}
			b.WriteRune(ch)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")
	return b.String()
}

// FormatPosition renders the full board plus side-to-move, en passant and
// castling rights, for UCI's "show" command.
func FormatPosition(p *position.Position) string {
	var b strings.Builder

	for rank := 7; rank >= 0; rank-- {
		b.WriteByte(byte(rank) + '1')
		b.WriteString("  ")
		for file := 0; file < 8; file++ {
			sq := chesstypes.Square(rank*8 + file)
			pc := p.PieceAt(sq)
			symbol := '.'
			if pc != chesstypes.NoPiece {
				symbol = pieceSymbols[pc]
			}
			b.WriteRune(symbol)
			b.WriteString("  ")
		}
		b.WriteByte('\n')
	}
	b.WriteString("   a  b  c  d  e  f  g  h\n")

	if p.ActiveColor == chesstypes.White {
		b.WriteString("Active color: white\n")
	} else {
		b.WriteString("Active color: black\n")
	}

	if p.EPIndex == chesstypes.NoSquare {
		b.WriteString("En passant: none\n")
	} else {
		fmt.Fprintf(&b, "En passant: %s\n", p.EPIndex)
	}

	b.WriteString("Castling rights: ")
	if p.Castling == 0 {
		b.WriteByte('-')
	} else {
		if p.Castling&position.WhiteKingside != 0 {
			b.WriteByte('K')
		}
		if p.Castling&position.WhiteQueenside != 0 {
			b.WriteByte('Q')
		}
		if p.Castling&position.BlackKingside != 0 {
			b.WriteByte('k')
		}
		if p.Castling&position.BlackQueenside != 0 {
			b.WriteByte('q')
		}
	}
	b.WriteByte('\n')
	fmt.Fprintf(&b, "FEN: %s\n", p.FEN())

	return b.String()
}
