package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/lox/handrank/internal/dealer"
	"github.com/lox/handrank/internal/history"
	"github.com/lox/handrank/poker"
)

// Options configures the listener and the deal stream.
type Options struct {
	Addr           string
	Players        int
	StreamInterval time.Duration
}

// Server serves deals and evaluations over HTTP and streams deals over a
// websocket.
type Server struct {
	opts     Options
	dealer   *dealer.Dealer
	eval     *poker.Evaluator
	store    *history.Store
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader
	router   *mux.Router
	http     *http.Server

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	streams map[*websocket.Conn]struct{}
	wg      sync.WaitGroup
}

// New creates a server. store may be nil when history is disabled.
func New(opts Options, d *dealer.Dealer, eval *poker.Evaluator, store *history.Store, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		opts:   opts,
		dealer: d,
		eval:   eval,
		store:  store,
		logger: logger.WithPrefix("server"),
		clock:  clock,
		upgrader: websocket.Upgrader{
			// The API is public and read-only.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		ctx:     ctx,
		cancel:  cancel,
		streams: make(map[*websocket.Conn]struct{}),
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/api/health", makeHTTPHandlerFunc(s.handleHealth)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/deal", makeHTTPHandlerFunc(s.handleDeal)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/evaluate", makeHTTPHandlerFunc(s.handleEvaluate)).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/categories", makeHTTPHandlerFunc(s.handleCategories)).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history", makeHTTPHandlerFunc(s.handleHistory)).Methods("GET", "OPTIONS")
	r.HandleFunc("/ws", s.handleStream).Methods("GET")

	return r
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Options.Addr until Shutdown is called.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting server", "addr", ln.Addr().String())
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, closes every stream and waits for
// in-flight handlers up to ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.streams {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	err := s.http.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("Server stopped")
	return err
}

// deal deals one hand and records it when history is enabled.
func (s *Server) deal(ctx context.Context, players int) (*dealer.Deal, error) {
	deal, err := s.dealer.Deal(players)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.Record(ctx, deal); err != nil {
			// History is best effort.
			s.logger.Warn("Failed to record deal", "id", deal.ID, "error", err)
		}
	}
	return deal, nil
}
