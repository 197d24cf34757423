package poker

import "fmt"

const suitMask Card = 0xF000

// Evaluator ranks hands against a prebuilt LookupTable. It holds no mutable
// state, so one Evaluator can be shared freely between goroutines.
type Evaluator struct {
	table *LookupTable
}

// NewEvaluator wraps a table built by NewLookupTable.
func NewEvaluator(table *LookupTable) *Evaluator {
	return &Evaluator{table: table}
}

// Table returns the lookup table backing the evaluator.
func (e *Evaluator) Table() *LookupTable {
	return e.table
}

// Evaluate ranks exactly five cards. A miss in either table returns a
// *LookupMissError rather than a default rank.
func (e *Evaluator) Evaluate(cards [5]Card) (HandRank, error) {
	if cards[0]&cards[1]&cards[2]&cards[3]&cards[4]&suitMask != 0 {
		rankBits := uint32(cards[0]|cards[1]|cards[2]|cards[3]|cards[4]) >> 16
		key := PrimeProductFromRankBits(rankBits)
		if rank, ok := e.table.flush[key]; ok {
			return rank, nil
		}
		return 0, &LookupMissError{Cards: cards, Key: key, Flush: true}
	}

	key := PrimeProductFromHand(cards[:]...)
	if rank, ok := e.table.unsuited[key]; ok {
		return rank, nil
	}
	return 0, &LookupMissError{Cards: cards, Key: key}
}

// CategoryOf returns the category containing rank.
func (e *Evaluator) CategoryOf(rank HandRank) (Category, error) {
	if rank >= 1 {
		for _, bound := range categoryBoundaries {
			if rank <= bound {
				return e.table.maxToCategory[bound], nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidHandRank, rank, MaxHighCard)
}

// Percentile returns rank / MaxHighCard. Lower is stronger; 1 - Percentile is
// the share of hand classes this rank beats.
func (e *Evaluator) Percentile(rank HandRank) float64 {
	return rank.Percentile()
}

// CategoryName returns the display name of c, or "Unknown".
func (e *Evaluator) CategoryName(c Category) string {
	if name, ok := e.table.categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Describe evaluates cards and returns the category name alongside the rank.
func (e *Evaluator) Describe(cards [5]Card) (HandRank, string, error) {
	rank, err := e.Evaluate(cards)
	if err != nil {
		return 0, "", err
	}
	c, err := e.CategoryOf(rank)
	if err != nil {
		return 0, "", err
	}
	return rank, e.CategoryName(c), nil
}

// Category returns the rank's category without a table, or 0 when the rank is
// out of range.
func (hr HandRank) Category() Category {
	if hr == 0 {
		return 0
	}
	for i, bound := range categoryBoundaries {
		if hr <= bound {
			return Category(i + 1)
		}
	}
	return 0
}

// Percentile returns hr / MaxHighCard.
func (hr HandRank) Percentile() float64 {
	return float64(hr) / float64(MaxHighCard)
}

// String returns the category name of the rank.
func (hr HandRank) String() string {
	return hr.Category().String()
}

// String returns a human-readable category name.
func (c Category) String() string {
	if c >= StraightFlush && c <= HighCard {
		return categoryNames[c]
	}
	return "Unknown"
}

// CompareHands returns 1 if a beats b, -1 if b beats a, 0 for a tie.
func CompareHands(a, b HandRank) int {
	if a < b {
		return 1
	} else if a > b {
		return -1
	}
	return 0
}
