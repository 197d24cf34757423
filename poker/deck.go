package poker

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// DeckOrder is the unshuffled deck: aces first, then deuce through king, each
// rank in club, diamond, heart, spade order.
var DeckOrder = func() [52]string {
	var order [52]string
	ranks := "A23456789TJQK"
	suits := "cdhs"
	i := 0
	for r := range len(ranks) {
		for s := range len(suits) {
			order[i] = string([]byte{ranks[r], suits[s]})
			i++
		}
	}
	return order
}()

// Shuffler produces a permutation of the 52 card strings.
type Shuffler interface {
	Shuffle() []string
}

// NewRand returns a *rand.Rand seeded deterministically from seed.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// RandomShuffler is an unbiased Fisher-Yates shuffler. It is safe for
// concurrent use.
type RandomShuffler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomShuffler creates a shuffler driven by rng.
func NewRandomShuffler(rng *rand.Rand) *RandomShuffler {
	return &RandomShuffler{rng: rng}
}

// Shuffle returns a fresh uniformly random permutation of DeckOrder.
func (s *RandomShuffler) Shuffle() []string {
	cards := DeckOrder
	s.mu.Lock()
	for i := len(cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	s.mu.Unlock()
	return cards[:]
}

// OrderedShuffler always returns DeckOrder. Useful for fixtures.
type OrderedShuffler struct{}

// Shuffle returns DeckOrder unchanged.
func (OrderedShuffler) Shuffle() []string {
	cards := DeckOrder
	return cards[:]
}

// Deck is a shuffled 52-card deck dealt from the top.
type Deck struct {
	cards [52]Card
	next  int
}

// NewDeck encodes a permutation from shuffler into a deck.
func NewDeck(shuffler Shuffler) (*Deck, error) {
	d := &Deck{}
	if err := d.Reset(shuffler); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset refills the deck from a new permutation.
func (d *Deck) Reset(shuffler Shuffler) error {
	order := shuffler.Shuffle()
	if len(order) != len(d.cards) {
		return fmt.Errorf("shuffler returned %d cards, want %d", len(order), len(d.cards))
	}
	for i, s := range order {
		c, err := ParseCard(s)
		if err != nil {
			return err
		}
		d.cards[i] = c
	}
	d.next = 0
	return nil
}

// Deal deals n cards from the deck, or nil if fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// DealOne deals a single card, or 0 when the deck is empty.
func (d *Deck) DealOne() Card {
	if d.next >= len(d.cards) {
		return 0
	}
	card := d.cards[d.next]
	d.next++
	return card
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
