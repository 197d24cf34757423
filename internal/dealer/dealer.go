package dealer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/handrank/poker"
)

// MaxPlayers is the most players one deck supports: 2 hole cards each plus a
// five-card board.
const MaxPlayers = 23

// ErrPlayerCount is returned when the requested table size cannot be dealt.
var ErrPlayerCount = errors.New("invalid player count")

// Board holds the shared cards in deal order.
type Board struct {
	Flop  []string `json:"flop"`
	Turn  string   `json:"turn"`
	River string   `json:"river"`
}

// Cards returns the five board cards as text.
func (b Board) Cards() []string {
	out := make([]string, 0, 5)
	out = append(out, b.Flop...)
	return append(out, b.Turn, b.River)
}

// Hand is one player's result: hole cards, the best five-card hand they make
// with the board, and its strength.
type Hand struct {
	Cards       []string               `json:"cards"`
	Best        []string               `json:"best"`
	Rank        poker.HandRank         `json:"rank"`
	Score       float64                `json:"score"`
	Description string                 `json:"description"`
	Preflop     poker.HoleCardCategory `json:"preflop"`
}

// Deal is a complete dealt hand for every player.
type Deal struct {
	ID      string    `json:"id"`
	DealtAt time.Time `json:"dealt_at"`
	Board   Board     `json:"board"`
	Hands   []Hand    `json:"hands"`
	Winners []int     `json:"winners"`
}

// Dealer shuffles, deals and scores hands. It is safe for concurrent use when
// its Shuffler is.
type Dealer struct {
	eval     *poker.Evaluator
	shuffler poker.Shuffler
	clock    quartz.Clock
	logger   *log.Logger
}

// Option configures a Dealer.
type Option func(*Dealer)

// WithClock sets the clock used to timestamp deals.
func WithClock(clock quartz.Clock) Option {
	return func(d *Dealer) { d.clock = clock }
}

// WithLogger sets the dealer's logger.
func WithLogger(logger *log.Logger) Option {
	return func(d *Dealer) { d.logger = logger.WithPrefix("dealer") }
}

// New creates a dealer scoring hands with eval and drawing permutations from shuffler.
func New(eval *poker.Evaluator, shuffler poker.Shuffler, opts ...Option) *Dealer {
	d := &Dealer{
		eval:     eval,
		shuffler: shuffler,
		clock:    quartz.NewReal(),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deal deals two hole cards to each player and a five-card board from one
// shuffled deck. Player i holds positions i and i+players; the flop, turn and
// river follow the last hole card.
func (d *Dealer) Deal(players int) (*Deal, error) {
	if players < 1 || players > MaxPlayers {
		return nil, fmt.Errorf("%w: %d (want 1 to %d)", ErrPlayerCount, players, MaxPlayers)
	}

	deck, err := poker.NewDeck(d.shuffler)
	if err != nil {
		return nil, err
	}

	// One card to each player, then a second round, then the board.
	first := deck.Deal(players)
	second := deck.Deal(players)
	flop := deck.Deal(3)
	turn, river := deck.DealOne(), deck.DealOne()
	boardCards := append(slices.Clone(flop), turn, river)

	board := Board{
		Flop:  strings.Fields(poker.FormatCards(flop)),
		Turn:  turn.String(),
		River: river.String(),
	}

	deal := &Deal{
		ID:      uuid.NewString(),
		DealtAt: d.clock.Now(),
		Board:   board,
		Hands:   make([]Hand, 0, players),
	}

	best := poker.MaxHighCard + 1
	for i := range players {
		hand, err := d.score([]poker.Card{first[i], second[i]}, boardCards)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		deal.Hands = append(deal.Hands, hand)

		switch poker.CompareHands(hand.Rank, best) {
		case 1:
			best = hand.Rank
			deal.Winners = []int{i}
		case 0:
			deal.Winners = append(deal.Winners, i)
		}
	}

	d.logger.Debug("Dealt hand",
		"id", deal.ID,
		"players", players,
		"board", board.Cards(),
		"winners", deal.Winners,
		"remaining", deck.Remaining())

	return deal, nil
}

func (d *Dealer) score(hole, board []poker.Card) (Hand, error) {
	rank, best, err := d.eval.EvaluateHoldem(hole, board)
	if err != nil {
		return Hand{}, err
	}
	category, err := d.eval.CategoryOf(rank)
	if err != nil {
		return Hand{}, err
	}

	bestText := make([]string, len(best))
	for i, c := range best {
		bestText[i] = c.String()
	}

	return Hand{
		Cards:       []string{hole[0].String(), hole[1].String()},
		Best:        bestText,
		Rank:        rank,
		Score:       1 - d.eval.Percentile(rank),
		Description: d.eval.CategoryName(category),
		Preflop:     poker.CategorizeHoleCards(hole[0], hole[1]),
	}, nil
}
