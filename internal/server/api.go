package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/internal/history"
	"github.com/lox/handrank/poker"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500

	maxRequestBody = 4 << 10
)

var (
	errBadRequest      = errors.New("bad request")
	errHistoryDisabled = errors.New("history is disabled")
)

type apiFunc func(w http.ResponseWriter, r *http.Request) error

func makeHTTPHandlerFunc(f apiFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			_ = JSON(w, statusFor(err), map[string]any{"error": err.Error()})
		}
	}
}

// statusFor maps caller mistakes to 400 and everything else, lookup misses
// included, to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, poker.ErrInvalidCard),
		errors.Is(err, poker.ErrInvalidHandSize),
		errors.Is(err, poker.ErrDuplicateCard),
		errors.Is(err, dealer.ErrPlayerCount):
		return http.StatusBadRequest
	case errors.Is(err, errHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// EvaluateRequest is the body of POST /api/evaluate.
type EvaluateRequest struct {
	Cards []string `json:"cards"`
}

// EvaluateResponse describes the best five-card hand in the request.
type EvaluateResponse struct {
	Rank       poker.HandRank `json:"rank"`
	Category   poker.Category `json:"category"`
	Name       string         `json:"name"`
	Percentile float64        `json:"percentile"`
	Score      float64        `json:"score"`
	Best       []string       `json:"best"`
}

// CategoryResponse is one hand class and its rank range.
type CategoryResponse struct {
	Category poker.Category `json:"category"`
	Name     string         `json:"name"`
	MinRank  poker.HandRank `json:"min_rank"`
	MaxRank  poker.HandRank `json:"max_rank"`
}

// HealthResponse reports the loaded table sizes.
type HealthResponse struct {
	Status         string `json:"status"`
	FlushKeys      int    `json:"flush_keys"`
	UnsuitedKeys   int    `json:"unsuited_keys"`
	HistoryEnabled bool   `json:"history_enabled"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	table := s.eval.Table()
	return JSON(w, http.StatusOK, HealthResponse{
		Status:         "healthy",
		FlushKeys:      table.FlushLen(),
		UnsuitedKeys:   table.UnsuitedLen(),
		HistoryEnabled: s.store != nil,
	})
}

func (s *Server) handleDeal(w http.ResponseWriter, r *http.Request) error {
	players, err := playersParam(r, s.opts.Players)
	if err != nil {
		return err
	}

	deal, err := s.deal(r.Context(), players)
	if err != nil {
		return err
	}
	return JSON(w, http.StatusOK, deal)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) error {
	var req EvaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		return fmt.Errorf("%w: invalid request body: %s", errBadRequest, err)
	}

	cards, err := poker.ParseCardList(req.Cards)
	if err != nil {
		return err
	}
	rank, best, err := s.eval.EvaluateBest(cards)
	if err != nil {
		return err
	}
	category, err := s.eval.CategoryOf(rank)
	if err != nil {
		return err
	}

	bestText := make([]string, len(best))
	for i, c := range best {
		bestText[i] = c.String()
	}

	percentile := s.eval.Percentile(rank)
	return JSON(w, http.StatusOK, EvaluateResponse{
		Rank:       rank,
		Category:   category,
		Name:       s.eval.CategoryName(category),
		Percentile: percentile,
		Score:      1 - percentile,
		Best:       bestText,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) error {
	bounds := s.eval.Table().Boundaries()
	resp := make([]CategoryResponse, 0, len(bounds))

	low := poker.HandRank(1)
	for _, high := range bounds {
		category, err := s.eval.CategoryOf(high)
		if err != nil {
			return err
		}
		resp = append(resp, CategoryResponse{
			Category: category,
			Name:     s.eval.CategoryName(category),
			MinRank:  low,
			MaxRank:  high,
		})
		low = high + 1
	}
	return JSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) error {
	if s.store == nil {
		return errHistoryDisabled
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxHistoryLimit {
			return fmt.Errorf("%w: limit must be between 1 and %d", errBadRequest, maxHistoryLimit)
		}
		limit = n
	}

	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		return err
	}
	if records == nil {
		records = []history.Record{}
	}
	total, err := s.store.Count(r.Context())
	if err != nil {
		return err
	}
	return JSON(w, http.StatusOK, map[string]any{
		"total": total,
		"deals": records,
	})
}

func playersParam(r *http.Request, fallback int) (int, error) {
	v := r.URL.Query().Get("players")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: players %q is not a number", errBadRequest, v)
	}
	return n, nil
}
