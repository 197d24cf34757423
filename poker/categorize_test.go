package poker

import "testing"

func TestCategorizeHoleCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole     string
		expected HoleCardCategory
	}{
		{"AsAh", CategoryPremium},
		{"JhJd", CategoryPremium},
		{"KcAd", CategoryPremium},
		{"TcTh", CategoryStrong},
		{"AsQs", CategoryStrong},
		{"JcAd", CategoryStrong},
		{"9c9h", CategoryMedium},
		{"7h7c", CategoryMedium},
		{"KsQs", CategoryMedium},
		{"QdTd", CategoryMedium},
		{"6c6h", CategoryWeak},
		{"2c2h", CategoryWeak},
		{"7h6h", CategoryWeak},
		{"Js9s", CategoryWeak},
		{"KhQd", CategoryTrash},
		{"7c2h", CategoryTrash},
		{"9d3s", CategoryTrash},
		{"Jh4h", CategoryTrash},
		{"AsAs", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.hole, func(t *testing.T) {
			t.Parallel()
			cards := MustParseCards(tt.hole)
			if got := CategorizeHoleCards(cards[0], cards[1]); got != tt.expected {
				t.Errorf("CategorizeHoleCards(%s) = %s, want %s", tt.hole, got, tt.expected)
			}
			if got := CategorizeHoleCards(cards[1], cards[0]); got != tt.expected {
				t.Errorf("CategorizeHoleCards reversed (%s) = %s, want %s", tt.hole, got, tt.expected)
			}
		})
	}
}

func TestCategorizeHoleCardsInvalidCode(t *testing.T) {
	t.Parallel()
	if got := CategorizeHoleCards(Card(0xF00), MustParseCard("As")); got != CategoryUnknown {
		t.Errorf("invalid rank code categorized as %s", got)
	}
}
