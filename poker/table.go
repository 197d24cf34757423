package poker

import "slices"

// HandRank is the strength of a five-card hand, 1 (royal flush) through
// MaxHighCard (7-5-4-3-2). Lower values are stronger.
type HandRank uint16

// Category is a hand class, 1 (straight flush) through 9 (high card).
type Category uint8

const (
	StraightFlush Category = iota + 1
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	Pair
	HighCard
)

// Inclusive upper rank of each category.
const (
	MaxStraightFlush HandRank = 10
	MaxFourOfAKind   HandRank = 166
	MaxFullHouse     HandRank = 322
	MaxFlush         HandRank = 1599
	MaxStraight      HandRank = 1609
	MaxThreeOfAKind  HandRank = 2467
	MaxTwoPair       HandRank = 3325
	MaxPair          HandRank = 6185
	MaxHighCard      HandRank = 7462
)

const (
	flushTableSize    = 1287
	unsuitedTableSize = 6175
)

// categoryBoundaries is in ascending order; index i bounds Category(i+1).
var categoryBoundaries = [...]HandRank{
	MaxStraightFlush,
	MaxFourOfAKind,
	MaxFullHouse,
	MaxFlush,
	MaxStraight,
	MaxThreeOfAKind,
	MaxTwoPair,
	MaxPair,
	MaxHighCard,
}

var categoryNames = [...]string{
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	Pair:          "Pair",
	HighCard:      "High Card",
}

// straightMasks are the ten straights, strongest first. The wheel (5-4-3-2-A)
// keeps the ace in bit 12.
var straightMasks = [10]uint32{
	0b1111100000000, // A-K-Q-J-T
	0b0111110000000,
	0b0011111000000,
	0b0001111100000,
	0b0000111110000,
	0b0000011111000,
	0b0000001111100,
	0b0000000111110,
	0b0000000011111,
	0b1000000001111, // 5-4-3-2-A
}

// LookupTable maps prime-product keys to hand ranks. It is filled once by
// NewLookupTable and only read afterwards, so a single table can back any
// number of concurrent evaluations.
type LookupTable struct {
	flush         map[uint32]HandRank
	unsuited      map[uint32]HandRank
	maxToCategory map[HandRank]Category
	categoryNames map[Category]string
}

// NewLookupTable enumerates every equivalence class of five-card hands. It
// panics if the generated tables have the wrong size, which can only happen
// through a defect in the builder.
func NewLookupTable() *LookupTable {
	t, err := buildLookupTable()
	if err != nil {
		panic(err)
	}
	return t
}

func buildLookupTable() (*LookupTable, error) {
	t := &LookupTable{
		flush:         make(map[uint32]HandRank, flushTableSize),
		unsuited:      make(map[uint32]HandRank, unsuitedTableSize),
		maxToCategory: make(map[HandRank]Category, len(categoryBoundaries)),
		categoryNames: make(map[Category]string, len(categoryBoundaries)),
	}

	straights, highCards := t.addFlushes()
	t.addStraightsAndHighCards(straights, highCards)
	t.addMultiples()

	for i, bound := range categoryBoundaries {
		c := Category(i + 1)
		t.maxToCategory[bound] = c
		t.categoryNames[c] = categoryNames[c]
	}

	if len(t.flush) != flushTableSize {
		return nil, &TableSizeError{Table: "flush", Got: len(t.flush), Want: flushTableSize}
	}
	if len(t.unsuited) != unsuitedTableSize {
		return nil, &TableSizeError{Table: "unsuited", Got: len(t.unsuited), Want: unsuitedTableSize}
	}
	return t, nil
}

// addFlushes fills the flush table with straight flushes (1..10) and plain
// flushes (MaxFullHouse+1..MaxFlush). It returns the straight masks and the
// non-straight five-rank masks, strongest first, for reuse in the unsuited table.
func (t *LookupTable) addFlushes() ([]uint32, []uint32) {
	flushes := make([]uint32, 0, flushTableSize-len(straightMasks))
	for mask := range bitPermutations(0b11111) {
		if !slices.Contains(straightMasks[:], mask) {
			flushes = append(flushes, mask)
		}
	}
	// Generated weakest first.
	slices.Reverse(flushes)

	rank := HandRank(1)
	for _, sf := range straightMasks {
		t.flush[PrimeProductFromRankBits(sf)] = rank
		rank++
	}

	rank = MaxFullHouse + 1
	for _, f := range flushes {
		t.flush[PrimeProductFromRankBits(f)] = rank
		rank++
	}

	return straightMasks[:], flushes
}

// addStraightsAndHighCards reuses the five-distinct-rank masks for unsuited hands.
func (t *LookupTable) addStraightsAndHighCards(straights, highCards []uint32) {
	rank := MaxFlush + 1
	for _, s := range straights {
		t.unsuited[PrimeProductFromRankBits(s)] = rank
		rank++
	}

	rank = MaxPair + 1
	for _, h := range highCards {
		t.unsuited[PrimeProductFromRankBits(h)] = rank
		rank++
	}
}

// addMultiples fills the unsuited table with every hand that repeats a rank.
func (t *LookupTable) addMultiples() {
	backwards := make([]uint8, 0, 13)
	for r := int(Ace); r >= int(Two); r-- {
		backwards = append(backwards, uint8(r))
	}
	p := func(r uint8) uint32 { return rankPrimes[r] }

	// Four of a kind
	rank := MaxStraightFlush + 1
	for _, quad := range backwards {
		for _, kicker := range without(backwards, quad) {
			t.unsuited[pow(p(quad), 4)*p(kicker)] = rank
			rank++
		}
	}

	// Full house
	rank = MaxFourOfAKind + 1
	for _, trip := range backwards {
		for _, pair := range without(backwards, trip) {
			t.unsuited[pow(p(trip), 3)*pow(p(pair), 2)] = rank
			rank++
		}
	}

	// Three of a kind
	rank = MaxStraight + 1
	for _, trip := range backwards {
		for k := range combinations(without(backwards, trip), 2) {
			t.unsuited[pow(p(trip), 3)*p(k[0])*p(k[1])] = rank
			rank++
		}
	}

	// Two pair
	rank = MaxThreeOfAKind + 1
	for pairs := range combinations(backwards, 2) {
		high, low := pairs[0], pairs[1]
		for _, kicker := range without(backwards, high, low) {
			t.unsuited[pow(p(high), 2)*pow(p(low), 2)*p(kicker)] = rank
			rank++
		}
	}

	// Pair
	rank = MaxTwoPair + 1
	for _, pair := range backwards {
		for k := range combinations(without(backwards, pair), 3) {
			t.unsuited[pow(p(pair), 2)*p(k[0])*p(k[1])*p(k[2])] = rank
			rank++
		}
	}
}

// FlushLen returns the number of flush-keyed entries.
func (t *LookupTable) FlushLen() int { return len(t.flush) }

// UnsuitedLen returns the number of unsuited entries.
func (t *LookupTable) UnsuitedLen() int { return len(t.unsuited) }

// FlushRank looks up a prime product built from a flush's rank bits.
func (t *LookupTable) FlushRank(key uint32) (HandRank, bool) {
	r, ok := t.flush[key]
	return r, ok
}

// UnsuitedRank looks up a prime product built from five card primes.
func (t *LookupTable) UnsuitedRank(key uint32) (HandRank, bool) {
	r, ok := t.unsuited[key]
	return r, ok
}

// Boundaries returns the category upper bounds in ascending order.
func (t *LookupTable) Boundaries() []HandRank {
	return slices.Clone(categoryBoundaries[:])
}

// without returns ranks minus the excluded values, order preserved.
func without(ranks []uint8, exclude ...uint8) []uint8 {
	out := make([]uint8, 0, len(ranks))
	for _, r := range ranks {
		if !slices.Contains(exclude, r) {
			out = append(out, r)
		}
	}
	return out
}

func pow(base uint32, exp int) uint32 {
	result := uint32(1)
	for range exp {
		result *= base
	}
	return result
}
