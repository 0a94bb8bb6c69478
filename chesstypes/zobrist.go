package chesstypes

import "math/rand/v2"

// zobristSeed fixes the PRNG seed so keys (and therefore repetition
// detection) are stable across runs, per spec.md §6.
const zobristSeed = 0x7a57e1e55ca5cade

// psqKeys[color][type][square] holds one random key per occupied (piece,
// square) pair. ctmKey is XORed in exactly when White is to move, per the
// hash convention fixed in spec.md §3.
var (
	psqKeys [2][6][64]uint64
	ctmKey  uint64
)

func init() {
	src := rand.NewPCG(zobristSeed, zobristSeed)
	rng := rand.New(src)
	for c := 0; c < 2; c++ {
		for t := 0; t < 6; t++ {
			for sq := 0; sq < 64; sq++ {
				psqKeys[c][t][sq] = rng.Uint64()
			}
		}
	}
	ctmKey = rng.Uint64()
}

// ZobristPSQ returns the key contribution of piece p standing on sq.
func ZobristPSQ(p Piece, sq Square) uint64 {
	return psqKeys[p.Color()][p.Type()][sq]
}

// ZobristCTM returns the side-to-move key contribution, XORed in when White
// is to move.
func ZobristCTM() uint64 { return ctmKey }
