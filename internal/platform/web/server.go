// Package web hosts maze sessions in the browser. Each WebSocket connection
// owns one session; the page receives a message per renderer call and sends
// back resize, key, start and next frames.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-maze/internal/game"
	"github.com/vovakirdan/tui-maze/internal/registry"
	"github.com/vovakirdan/tui-maze/internal/storage"
)

//go:embed static
var staticFiles embed.FS

const (
	saveTimeout     = 3 * time.Second
	shutdownTimeout = 10 * time.Second
	defaultPlayer   = "web"
)

// Config holds settings for the HTTP server.
type Config struct {
	Addr  string
	Pack  string // pack used when the page does not ask for one
	Rules game.Rules
}

// Server serves the page, the health check and the WebSocket endpoint.
type Server struct {
	cfg      Config
	store    storage.Store
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*Client]struct{}
	nextID  atomic.Uint64
}

// NewServer creates a browser host. store and logger may be nil.
func NewServer(cfg Config, store storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Pack == "" {
		cfg.Pack = "classic"
	}
	if cfg.Rules.Arena.Width == 0 {
		cfg.Rules = game.DefaultRules()
	}

	return &Server{
		cfg:    cfg,
		store:  store,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*Client]struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(static))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked connections are not tracked by http.Server.
	s.closeAll()
	return srv.Shutdown(shutdownCtx)
}

// ClientCount returns the number of connected browsers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"clients": s.ClientCount(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	packID := r.URL.Query().Get("pack")
	if packID == "" {
		packID = s.cfg.Pack
	}
	catalog, err := registry.Create(packID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	player := r.URL.Query().Get("player")
	if player == "" {
		player = defaultPlayer
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	c := newClient(fmt.Sprintf("client-%d", s.nextID.Add(1)), conn, s.logger)
	s.add(c)
	defer s.remove(c)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go c.writePump()
	go c.readPump(ctx, cancel)

	rend := newWSRenderer(c.sendMessage)
	session := game.NewSession(catalog, rend,
		game.WithRules(s.cfg.Rules),
		game.WithScheduler(&tickerScheduler{ctx: ctx, events: c.events}),
		game.WithCompletionHook(func(res game.Result) {
			s.saveRun(packID, player, res)
		}),
	)

	c.sendMessage(TypeWelcome, WelcomeMessage{
		Pack:   catalog.ID(),
		Title:  catalog.Title(),
		Levels: catalog.Count(),
		Best:   s.highScore(packID),
		Width:  s.cfg.Rules.Arena.Width,
		Height: s.cfg.Rules.Arena.Height,
		Size:   s.cfg.Rules.Arena.PlayerSize,
	})

	s.logger.Info("client connected", "client", c.ID, "player", player, "pack", packID)
	c.loop(ctx, session, rend)
	s.logger.Info("client disconnected", "client", c.ID)
}

func (s *Server) saveRun(pack, player string, res game.Result) {
	s.logger.Info("game complete", "player", player, "pack", pack, "score", res.Score, "seconds", res.Seconds)
	if s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	run := &storage.Run{
		Pack:    pack,
		Player:  player,
		Score:   res.Score,
		Levels:  len(res.Levels),
		Seconds: res.Seconds,
	}
	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Error("cannot save run", "err", err)
	}
}

func (s *Server) highScore(pack string) int {
	if s.store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	best, err := s.store.HighScore(ctx, pack)
	if err != nil {
		s.logger.Warn("cannot load high score", "err", err)
		return 0
	}
	return best
}

func (s *Server) add(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c] = struct{}{}
}

func (s *Server) remove(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c)
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.conn.Close()
	}
}
