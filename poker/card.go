package poker

import (
	"errors"
	"fmt"
	"strings"
)

// Card is a packed card code:
//
//	xxxbbbbb bbbbbbbb cdhsrrrr xxpppppp
//
// b = one bit per rank (deuce at bit 16, ace at bit 28)
// cdhs = suit bit
// r = rank index 0..12
// p = rank prime
type Card uint32

// Rank indices, deuce through ace.
const (
	Two uint8 = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Suit bits.
const (
	Spades   uint8 = 1
	Hearts   uint8 = 2
	Diamonds uint8 = 4
	Clubs    uint8 = 8
)

// ErrInvalidCard is returned for card text that is not a rank symbol followed by a suit symbol.
var ErrInvalidCard = errors.New("invalid card")

const rankChars = "23456789TJQKA"

var rankPrimes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

// NewCard builds a card from a rank index (0..12) and a suit bit.
func NewCard(rank, suit uint8) Card {
	bitRank := uint32(1) << rank << 16
	return Card(bitRank | uint32(suit)<<12 | uint32(rank)<<8 | rankPrimes[rank])
}

// ParseCard encodes two-character card text such as "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%w %q: want 2 characters, got %d", ErrInvalidCard, s, len(s))
	}

	rank := strings.IndexByte(rankChars, s[0])
	if rank < 0 {
		return 0, fmt.Errorf("%w %q: unknown rank '%c'", ErrInvalidCard, s, s[0])
	}

	suit, ok := parseSuit(s[1])
	if !ok {
		return 0, fmt.Errorf("%w %q: unknown suit '%c'", ErrInvalidCard, s, s[1])
	}

	return NewCard(uint8(rank), suit), nil
}

// MustParseCard parses a card and panics on error (for tests and fixtures)
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a run of card notation, with or without spaces: "AsKs QdJc".
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: card string length %d is odd", ErrInvalidCard, len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// ParseCardList parses a slice of two-character card strings.
func ParseCardList(ss []string) ([]Card, error) {
	cards := make([]Card, len(ss))
	for i, s := range ss {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}

func parseSuit(c byte) (uint8, bool) {
	switch c {
	case 's':
		return Spades, true
	case 'h':
		return Hearts, true
	case 'd':
		return Diamonds, true
	case 'c':
		return Clubs, true
	default:
		return 0, false
	}
}

// Rank returns the rank index, 0 (deuce) through 12 (ace).
func (c Card) Rank() uint8 {
	return uint8(c>>8) & 0xF
}

// Suit returns the suit bit.
func (c Card) Suit() uint8 {
	return uint8(c>>12) & 0xF
}

// Prime returns the prime associated with the card's rank.
func (c Card) Prime() uint32 {
	return uint32(c) & 0xFF
}

// BitRank returns the 13-bit rank mask with the card's rank bit set.
func (c Card) BitRank() uint32 {
	return uint32(c) >> 16
}

// String returns the card in two-character notation.
func (c Card) String() string {
	rank := c.Rank()
	if rank > Ace {
		return "??"
	}
	var suit byte
	switch c.Suit() {
	case Spades:
		suit = 's'
	case Hearts:
		suit = 'h'
	case Diamonds:
		suit = 'd'
	case Clubs:
		suit = 'c'
	default:
		return "??"
	}
	return string([]byte{rankChars[rank], suit})
}

// PrimeProductFromRankBits multiplies the primes of every rank set in a 13-bit mask.
// Flush hands carry five distinct ranks, so this lands in the same key space as
// PrimeProductFromHand.
func PrimeProductFromRankBits(rankBits uint32) uint32 {
	product := uint32(1)
	for i, p := range rankPrimes {
		if rankBits&(1<<i) != 0 {
			product *= p
		}
	}
	return product
}

// PrimeProductFromHand multiplies the rank primes of the given cards.
func PrimeProductFromHand(cards ...Card) uint32 {
	product := uint32(1)
	for _, c := range cards {
		product *= c.Prime()
	}
	return product
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
