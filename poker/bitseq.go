package poker

import "iter"

// rankBitLimit bounds every rank mask: 13 ranks.
const rankBitLimit = 1 << 13

// nextBitPermutation returns the smallest integer greater than v with the same
// number of set bits. See "Compute the lexicographically next bit permutation"
// in Sean Eron Anderson's Bit Twiddling Hacks.
func nextBitPermutation(v uint32) uint32 {
	t := (v | (v - 1)) + 1
	return t | ((((t & -t) / (v & -v)) >> 1) - 1)
}

// bitPermutations yields the successors of seed in strictly increasing order,
// each with the same population count as seed, stopping at the 13-bit limit.
// The seed itself is not yielded. Each range over the result starts again from seed.
func bitPermutations(seed uint32) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if seed == 0 {
			return
		}
		for v := nextBitPermutation(seed); v < rankBitLimit; v = nextBitPermutation(v) {
			if !yield(v) {
				return
			}
		}
	}
}
