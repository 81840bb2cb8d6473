package share

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/muurk/roseday/internal/discovery"
	"github.com/muurk/roseday/internal/logging"
	"github.com/muurk/roseday/internal/note"
)

// shutdownTimeout bounds a graceful stop
const shutdownTimeout = 10 * time.Second

// Card is the note being shared
type Card struct {
	Name  string     `json:"name"`
	Style note.Style `json:"style"`
	Note  string     `json:"note"`
}

// Words splits the note the way the card reveals it
func (c Card) Words() []string {
	return strings.Fields(c.Note)
}

// Config holds the server configuration
type Config struct {
	Host string
	Port int
	// Advertise registers the card over mDNS
	Advertise bool
	// WordInterval spaces the words on /ws
	WordInterval time.Duration
}

// Server serves one card over HTTP and websocket
type Server struct {
	config   Config
	card     Card
	upgrader websocket.Upgrader

	mu          sync.Mutex
	activeConns map[*websocket.Conn]string
	wg          sync.WaitGroup
	done        chan struct{}
	closeOnce   sync.Once
}

// New creates a server for card
func New(config Config, card Card) *Server {
	if config.WordInterval <= 0 {
		config.WordInterval = DefaultWordInterval
	}
	return &Server{
		config: config,
		card:   card,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the card page is served from this host, other origins are
			// allowed so a phone on the LAN can open a saved copy
			CheckOrigin: func(*http.Request) bool { return true },
		},
		activeConns: make(map[*websocket.Conn]string),
		done:        make(chan struct{}),
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run listens on the configured address and serves until SIGINT, SIGTERM
// or ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	port := s.config.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}

	logging.Info("Starting share server",
		zap.String("addr", ln.Addr().String()),
		zap.String("recipient", s.card.Name),
		zap.String("style", string(s.card.Style)),
	)

	var ad *discovery.Advertisement
	if s.config.Advertise {
		var err error
		ad, err = discovery.Advertise(s.card.Name, string(s.card.Style), port)
		if err != nil {
			// the card still works by address
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		}
	}
	defer ad.Shutdown()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("share server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logging.Info("Shutting down share server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.closeStreams()
		err := httpServer.Shutdown(shutdownCtx)
		s.wg.Wait()
		return err
	})

	err := g.Wait()
	logging.Sync()
	return err
}

// closeStreams stops every websocket stream
func (s *Server) closeStreams() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// closed under mu so track never adds to wg once Wait may run
	s.closeOnce.Do(func() { close(s.done) })
	for conn, addr := range s.activeConns {
		logging.LogShareEvent(addr, "stream_closed_by_shutdown")
		_ = conn.Close()
	}
}

// GetActiveConnections returns the number of open websocket streams
func (s *Server) GetActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.activeConns)
}

// closing reports whether shutdown has started
func (s *Server) closing() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// track registers a stream with the shutdown wait group. It refuses once
// shutdown has started.
func (s *Server) track(conn *websocket.Conn, addr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing() {
		return false
	}
	s.wg.Add(1)
	s.activeConns[conn] = addr
	return true
}

func (s *Server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.activeConns, conn)
	s.mu.Unlock()
}
