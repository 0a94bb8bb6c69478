// Package bitutil implements small bitboard primitives shared by the
// attack-table and position packages.
package bitutil

import "math/bits"

// PopCount returns the number of set bits in bb.
func PopCount(bb uint64) int {
	return bits.OnesCount64(bb)
}

// Lsb returns the index of the least significant set bit, or 64 if bb is zero.
func Lsb(bb uint64) int {
	if bb == 0 {
		return 64
	}
	return bits.TrailingZeros64(bb)
}

// Msb returns the index of the most significant set bit, or 64 if bb is zero.
func Msb(bb uint64) int {
	if bb == 0 {
		return 64
	}
	return 63 - bits.LeadingZeros64(bb)
}

// PopLsb clears and returns the index of the least significant set bit of *bb.
// Returns 64 if *bb is already zero.
func PopLsb(bb *uint64) int {
	sq := Lsb(*bb)
	*bb &= *bb - 1
	return sq
}
