package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTableSizes(t *testing.T) {
	table := NewLookupTable()

	assert.Equal(t, 1287, table.FlushLen())
	assert.Equal(t, 6175, table.UnsuitedLen())
}

func TestLookupTableCoversEveryRankOnce(t *testing.T) {
	table := NewLookupTable()

	seen := make(map[HandRank]int, int(MaxHighCard))
	for _, r := range table.flush {
		seen[r]++
	}
	for _, r := range table.unsuited {
		seen[r]++
	}

	require.Len(t, seen, int(MaxHighCard))
	for r := HandRank(1); r <= MaxHighCard; r++ {
		assert.Equal(t, 1, seen[r], "rank %d", r)
	}
}

func TestLookupTableFlushRanges(t *testing.T) {
	table := NewLookupTable()

	for key, r := range table.flush {
		inStraightFlush := r >= 1 && r <= MaxStraightFlush
		inFlush := r > MaxFullHouse && r <= MaxFlush
		assert.True(t, inStraightFlush || inFlush, "flush key %d has rank %d", key, r)
	}
	for key, r := range table.unsuited {
		isFlushRank := r <= MaxStraightFlush || (r > MaxFullHouse && r <= MaxFlush)
		assert.False(t, isFlushRank, "unsuited key %d has flush rank %d", key, r)
	}
}

func TestLookupTableStraightKeys(t *testing.T) {
	table := NewLookupTable()

	tests := []struct {
		name     string
		key      uint32
		flush    HandRank
		unsuited HandRank
	}{
		{"broadway", 31367009, 1, MaxFlush + 1},
		{"king high", 14535931, 2, MaxFlush + 2},
		{"six high", 2310, 9, MaxFlush + 9},
		{"wheel", 8610, 10, MaxStraight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := table.FlushRank(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.flush, r)

			r, ok = table.UnsuitedRank(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.unsuited, r)
		})
	}
}

func TestLookupTableMultiplesOrder(t *testing.T) {
	table := NewLookupTable()
	p := func(s string) uint32 { return MustParseCard(s).Prime() }

	tests := []struct {
		name string
		key  uint32
		want HandRank
	}{
		{"quad aces king kicker", pow(p("As"), 4) * p("Ks"), MaxStraightFlush + 1},
		{"quad deuces three kicker", pow(p("2s"), 4) * p("3s"), MaxFourOfAKind},
		{"aces full of kings", pow(p("As"), 3) * pow(p("Ks"), 2), MaxFourOfAKind + 1},
		{"threes full of aces", pow(p("3s"), 3) * pow(p("As"), 2), 299},
		{"deuces full of threes", pow(p("2s"), 3) * pow(p("3s"), 2), MaxFullHouse},
		{"trip aces king queen", pow(p("As"), 3) * p("Ks") * p("Qs"), MaxStraight + 1},
		{"aces and kings queen kicker", pow(p("As"), 2) * pow(p("Ks"), 2) * p("Qs"), MaxThreeOfAKind + 1},
		{"threes and deuces four kicker", pow(p("3s"), 2) * pow(p("2s"), 2) * p("4s"), MaxTwoPair},
		{"pair of aces king queen jack", pow(p("As"), 2) * p("Ks") * p("Qs") * p("Js"), MaxTwoPair + 1},
		{"pair of deuces five four three", pow(p("2s"), 2) * p("5s") * p("4s") * p("3s"), MaxPair},
		{"ace king queen jack nine", p("As") * p("Ks") * p("Qs") * p("Js") * p("9s"), MaxPair + 1},
		{"seven five four three two", p("7s") * p("5s") * p("4s") * p("3s") * p("2s"), MaxHighCard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := table.UnsuitedRank(tc.key)
			require.True(t, ok)
			assert.Equal(t, tc.want, r)
		})
	}
}

func TestLookupTableCategories(t *testing.T) {
	table := NewLookupTable()

	require.Equal(t, categoryBoundaries[:], table.Boundaries())
	assert.Len(t, table.maxToCategory, 9)
	assert.Equal(t, StraightFlush, table.maxToCategory[MaxStraightFlush])
	assert.Equal(t, HighCard, table.maxToCategory[MaxHighCard])
	assert.Equal(t, "Straight Flush", table.categoryNames[StraightFlush])
	assert.Equal(t, "Pair", table.categoryNames[Pair])
}

func TestBuildLookupTableIsDeterministic(t *testing.T) {
	a, err := buildLookupTable()
	require.NoError(t, err)
	b, err := buildLookupTable()
	require.NoError(t, err)

	assert.Equal(t, a.flush, b.flush)
	assert.Equal(t, a.unsuited, b.unsuited)
}

func TestTableSizeError(t *testing.T) {
	err := &TableSizeError{Table: "flush", Got: 1286, Want: 1287}
	assert.Equal(t, "flush table has 1286 entries, want 1287", err.Error())
}
