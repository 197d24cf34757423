// Package poker ranks five-card poker hands with precomputed lookup tables.
//
// Cards are packed into a 32-bit code carrying a rank bit, a suit bit, the
// rank index and a per-rank prime. Because the thirteen rank primes are
// distinct, the product of a hand's primes identifies its rank multiset
// regardless of card order, and a single map lookup yields one of the 7,462
// distinct hand strengths:
//
//	table := poker.NewLookupTable()
//	eval := poker.NewEvaluator(table)
//	rank, err := eval.Evaluate([5]poker.Card{...})
//
// Build the table once and share it; it is never written after construction.
package poker
