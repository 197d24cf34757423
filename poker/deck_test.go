package poker

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckOrder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"Ac", "Ad", "Ah", "As", "2c", "2d"}, DeckOrder[:6])
	assert.Equal(t, "Ks", DeckOrder[51])

	seen := make(map[string]bool)
	for _, s := range DeckOrder {
		_, err := ParseCard(s)
		require.NoError(t, err, s)
		seen[s] = true
	}
	assert.Len(t, seen, 52)
}

func TestRandomShufflerIsPermutation(t *testing.T) {
	t.Parallel()
	s := NewRandomShuffler(NewRand(42))

	for i := 0; i < 20; i++ {
		got := s.Shuffle()
		require.Len(t, got, 52)
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		want := slices.Clone(DeckOrder[:])
		slices.Sort(want)
		assert.Equal(t, want, sorted)
	}
}

func TestRandomShufflerSeeded(t *testing.T) {
	t.Parallel()
	a := NewRandomShuffler(NewRand(1234))
	b := NewRandomShuffler(NewRand(1234))
	c := NewRandomShuffler(NewRand(4321))

	first := a.Shuffle()
	assert.Equal(t, first, b.Shuffle())
	assert.NotEqual(t, first, c.Shuffle())
	assert.NotEqual(t, first, a.Shuffle(), "successive shuffles should differ")
}

func TestRandomShufflerUniformFirstCard(t *testing.T) {
	t.Parallel()
	s := NewRandomShuffler(NewRand(5))
	counts := make(map[string]int)
	const rounds = 52 * 400
	for i := 0; i < rounds; i++ {
		counts[s.Shuffle()[0]]++
	}

	require.Len(t, counts, 52)
	for card, n := range counts {
		// Expected 400 per card; allow a wide band.
		assert.InDelta(t, 400, n, 120, card)
	}
}

func TestDeckDeal(t *testing.T) {
	t.Parallel()
	d, err := NewDeck(OrderedShuffler{})
	require.NoError(t, err)

	assert.Equal(t, 52, d.Remaining())
	assert.Equal(t, "Ac Ad", FormatCards(d.Deal(2)))
	assert.Equal(t, MustParseCard("Ah"), d.DealOne())
	assert.Equal(t, 49, d.Remaining())

	assert.Nil(t, d.Deal(50))
	assert.Len(t, d.Deal(49), 49)
	assert.Equal(t, Card(0), d.DealOne())

	require.NoError(t, d.Reset(OrderedShuffler{}))
	assert.Equal(t, 52, d.Remaining())
}

type shortShuffler struct{}

func (shortShuffler) Shuffle() []string { return []string{"As"} }

func TestDeckRejectsShortPermutation(t *testing.T) {
	t.Parallel()
	_, err := NewDeck(shortShuffler{})
	assert.Error(t, err)
}
