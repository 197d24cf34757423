package poker

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHandRank is returned when a rank falls outside 1..MaxHighCard.
	ErrInvalidHandRank = errors.New("invalid hand rank")

	// ErrLookupMiss means five cards produced a key with no table entry. Real hands
	// always hit, so this points at duplicate cards or a corrupted encoding.
	ErrLookupMiss = errors.New("hand lookup miss")

	// ErrInvalidHandSize is returned by EvaluateBest for fewer than 5 or more than 7 cards.
	ErrInvalidHandSize = errors.New("invalid hand size")

	// ErrDuplicateCard is returned when the same card appears twice in one hand.
	ErrDuplicateCard = errors.New("duplicate card")
)

// LookupMissError carries the cards and key of a failed evaluation.
type LookupMissError struct {
	Cards [5]Card
	Key   uint32
	Flush bool
}

func (e *LookupMissError) Error() string {
	table := "unsuited"
	if e.Flush {
		table = "flush"
	}
	return fmt.Sprintf("%s: key %d not in %s table for [%s]",
		ErrLookupMiss, e.Key, table, FormatCards(e.Cards[:]))
}

func (e *LookupMissError) Unwrap() error {
	return ErrLookupMiss
}

// TableSizeError reports a lookup table that came out of construction with the
// wrong number of entries.
type TableSizeError struct {
	Table string
	Got   int
	Want  int
}

func (e *TableSizeError) Error() string {
	return fmt.Sprintf("%s table has %d entries, want %d", e.Table, e.Got, e.Want)
}
