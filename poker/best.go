package poker

import "fmt"

// EvaluateBest ranks the strongest five-card hand found in 5, 6 or 7 cards by
// trying every five-card subset. It returns the winning rank and the five cards
// that make it, in input order.
func (e *Evaluator) EvaluateBest(cards []Card) (HandRank, [5]Card, error) {
	var best [5]Card

	if len(cards) < 5 || len(cards) > 7 {
		return 0, best, fmt.Errorf("%w: got %d cards, want 5 to 7", ErrInvalidHandSize, len(cards))
	}
	if err := checkDistinct(cards); err != nil {
		return 0, best, err
	}

	bestRank := MaxHighCard + 1
	var five [5]Card
	for combo := range combinations(cards, 5) {
		copy(five[:], combo)
		rank, err := e.Evaluate(five)
		if err != nil {
			return 0, best, err
		}
		if rank < bestRank {
			bestRank = rank
			best = five
		}
	}
	return bestRank, best, nil
}

// EvaluateHoldem ranks hole cards together with a board of up to five cards.
func (e *Evaluator) EvaluateHoldem(hole, board []Card) (HandRank, [5]Card, error) {
	all := make([]Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	return e.EvaluateBest(all)
}

func checkDistinct(cards []Card) error {
	var seen uint64
	for _, c := range cards {
		if c.Rank() > Ace || !validSuit(c.Suit()) {
			return fmt.Errorf("%w: code %d", ErrInvalidCard, uint32(c))
		}
		bit := uint64(1) << (uint(c.Rank())*4 + suitIndex(c.Suit()))
		if seen&bit != 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen |= bit
	}
	return nil
}

func validSuit(suit uint8) bool {
	switch suit {
	case Spades, Hearts, Diamonds, Clubs:
		return true
	}
	return false
}

func suitIndex(suit uint8) uint {
	switch suit {
	case Spades:
		return 0
	case Hearts:
		return 1
	case Diamonds:
		return 2
	default:
		return 3
	}
}
