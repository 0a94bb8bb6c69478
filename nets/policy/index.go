// Package policy implements the quantised policy-network forward pass and
// the bit-exact (popcount-prefix-offset) 1880-slot move index described in
// spec.md §4.3.1.
package policy

import (
	"github.com/anura-engine/anura/chesstypes"
	"github.com/anura-engine/anura/internal/attacks"
	"github.com/anura-engine/anura/internal/bitutil"
)

// nonPromoSlots, destMask and offsets are computed once from the real
// attack tables (union of rook+bishop+knight+king attacks from each square
// on an empty board), per spec.md §4.3.1 — never hardcoded, so the layout
// tracks the attack tables it is derived from.
var (
	destMask     [64]chesstypes.Bitboard
	offsets      [65]int
	nonPromoSlots int
)

// promoTypesCount and slotsPerPromo implement the dedicated promotion
// block: per promotion type, 22 geometric classes (8 straight pushes, 7
// left captures, 7 right captures), so 88 promotion slots follow the 1792
// non-promotion slots for 1880 outputs in total.
const (
	promoTypesCount = 4
	slotsPerPromo   = 22
	promoSlots      = promoTypesCount * slotsPerPromo
)

// OutputSize is the total number of policy output slots (populated by InitIndex).
var OutputSize int

var indexInitialized bool

// InitIndex computes destMask/offsets/OutputSize. Idempotent; Default calls
// it, Load does not.
func InitIndex() {
	if indexInitialized {
		return
	}
	attacks.Init()
	total := 0
	for sq := chesstypes.Square(0); sq < 64; sq++ {
		offsets[sq] = total
		mask := attacks.RookAttacks(sq, 0) | attacks.BishopAttacks(sq, 0) |
			attacks.KnightAttacks(sq) | attacks.KingAttacks(sq)
		destMask[sq] = mask
		total += bitutil.PopCount(uint64(mask))
	}
	offsets[64] = total
	nonPromoSlots = total
	OutputSize = nonPromoSlots + promoSlots
	indexInitialized = true
}

// promoID maps a promotion to its class within one type's block: straight
// pushes use 0-7 by file, left captures (from files b-h) 8-14, right
// captures (from files a-g) 15-21.
func promoID(fromFile, delta int) int {
	switch {
	case delta == 0:
		return fromFile
	case delta < 0:
		return 8 + fromFile - 1
	default:
		return 15 + fromFile
	}
}

// MoveIndex maps m into its output slot, after applying the same
// side-to-move rank flip and king-file flip used for input features.
func MoveIndex(m chesstypes.Move, ctm chesstypes.Color, flipFile bool) int {
	from, to := m.From(), m.To()
	if ctm == chesstypes.Black {
		from = from.FlipRank()
		to = to.FlipRank()
	}
	if flipFile {
		from = from.FlipFile()
		to = to.FlipFile()
	}

	if m.Flag().IsPromotion() {
		flagIdx := int(m.Flag() - chesstypes.PromoKnight)
		delta := to.File() - from.File()
		return nonPromoSlots + slotsPerPromo*flagIdx + promoID(from.File(), delta)
	}

	below := (uint64(1) << uint(to)) - 1
	return offsets[from] + bitutil.PopCount(uint64(destMask[from])&below)
}
