package poker

import (
	"errors"
	"testing"

	refpoker "github.com/chehsunliu/poker"
)

func TestParseCardFixtures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  Card
	}{
		{"2s", 69634},
		{"3h", 139523},
		{"4d", 279045},
		{"Ac", 268471337},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCard(tc.input)
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseCard(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{"empty string", ""},
		{"too short", "A"},
		{"too long", "Asd"},
		{"ten as two digits", "10h"},
		{"unknown rank", "Xs"},
		{"lowercase rank", "as"},
		{"unknown suit", "Ax"},
		{"uppercase suit", "AS"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseCard(tc.input)
			if !errors.Is(err, ErrInvalidCard) {
				t.Errorf("ParseCard(%q) error = %v, want ErrInvalidCard", tc.input, err)
			}
		})
	}
}

func TestAll52CardsRoundTrip(t *testing.T) {
	t.Parallel()
	seen := make(map[Card]string)

	for r := range len(rankChars) {
		for _, suit := range "shdc" {
			text := string([]byte{rankChars[r], byte(suit)})
			card, err := ParseCard(text)
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", text, err)
			}
			if prev, dup := seen[card]; dup {
				t.Errorf("%s and %s share code %d", prev, text, card)
			}
			seen[card] = text

			if card.String() != text {
				t.Errorf("round trip %q -> %q", text, card.String())
			}
			if card.Rank() != uint8(r) {
				t.Errorf("%s: rank index %d, want %d", text, card.Rank(), r)
			}
			if card.BitRank() != 1<<r {
				t.Errorf("%s: bit rank %b, want %b", text, card.BitRank(), 1<<r)
			}
			if card.Prime() != rankPrimes[r] {
				t.Errorf("%s: prime %d, want %d", text, card.Prime(), rankPrimes[r])
			}
		}
	}

	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestEncodingMatchesReference(t *testing.T) {
	t.Parallel()
	for _, text := range DeckOrder {
		ours := MustParseCard(text)
		ref := refpoker.NewCard(text)
		if int32(ours) != int32(ref) {
			t.Errorf("%s: encoded %d, reference %d", text, ours, ref)
		}
	}
}

func TestPrimeProductFromRankBits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		bits uint32
		want uint32
	}{
		{0b1000000000001, 82},
		{0b1000000000010, 123},
		{0b1000000000100, 205},
		{0b1000001000000, 697},
		{7936, 31367009},
		{124, 85085},
		{62, 15015},
		{31, 2310},
		{4111, 8610},
		{0, 1},
	}

	for _, tc := range tests {
		if got := PrimeProductFromRankBits(tc.bits); got != tc.want {
			t.Errorf("PrimeProductFromRankBits(%b) = %d, want %d", tc.bits, got, tc.want)
		}
	}
}

func TestPrimeProductFromHandOrderIndependent(t *testing.T) {
	t.Parallel()
	hand := MustParseCards("AsKdKh7c2s")
	want := PrimeProductFromHand(hand...)
	if want != 41*37*37*19*2 {
		t.Fatalf("PrimeProductFromHand = %d, want %d", want, 41*37*37*19*2)
	}

	count := 0
	permute(hand, 0, func(p []Card) {
		count++
		if got := PrimeProductFromHand(p...); got != want {
			t.Errorf("permutation %s: product %d, want %d", FormatCards(p), got, want)
		}
	})
	if count != 120 {
		t.Errorf("visited %d permutations, want 120", count)
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("As Kd QhJc")
	if err != nil {
		t.Fatalf("ParseCards error: %v", err)
	}
	if got := FormatCards(cards); got != "As Kd Qh Jc" {
		t.Errorf("FormatCards = %q", got)
	}

	if _, err := ParseCards("AsK"); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("odd length error = %v, want ErrInvalidCard", err)
	}
	if _, err := ParseCards("AsKx"); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("bad suit error = %v, want ErrInvalidCard", err)
	}
}

func TestMustParseCardPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParseCard should panic on invalid input")
		}
	}()
	MustParseCard("invalid")
}

// permute calls fn with every ordering of cards.
func permute(cards []Card, k int, fn func([]Card)) {
	if k == len(cards) {
		fn(cards)
		return
	}
	for i := k; i < len(cards); i++ {
		cards[k], cards[i] = cards[i], cards[k]
		permute(cards, k+1, fn)
		cards[k], cards[i] = cards[i], cards[k]
	}
}
