package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
}

func newIPRateLimiter(ctx context.Context, cooldown time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time), cooldown: cooldown}
	// Cleanup stale entries every 60s
	go func() {
		t := time.NewTicker(60 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-t.C:
				rl.sweep(now)
			}
		}
	}()
	return rl
}

func (rl *ipRateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.times[ip] = now
	return true
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// Server wires the transport to the session registry
type Server struct {
	cfg     Config
	codec   Codec
	world   *World
	conns   *ConnManager
	limiter *ipRateLimiter
}

// NewServer builds a server from a resolved config
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	codec, err := CodecByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:     cfg,
		codec:   codec,
		world:   NewWorld(),
		conns:   NewConnManager(),
		limiter: newIPRateLimiter(ctx, time.Duration(IPCooldownSec)*time.Second),
	}, nil
}

// Handler returns the HTTP routes: websocket, sound clips and static client
func (s *Server) Handler(sounds *SoundBank) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.serveWS)
	if sounds != nil {
		mux.Handle(SoundPath, sounds)
	}
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.StaticDir)))
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	// Extract client IP (handle X-Forwarded-For for reverse proxies)
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if s.conns.Count() >= s.cfg.MaxPlayers {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	if !s.limiter.allow(ip, time.Now()) {
		sendErrorAndClose(ws, "Too many connections. Please wait a few seconds.")
		return
	}

	ws.EnableWriteCompression(true)

	conn := NewConn(ws)
	s.conns.Add(conn)
	log.Printf("player connected: %s", conn.ID)

	// Blocking read loop, runs until client disconnects
	conn.ReadLoop(s.world, s.join, s.leave)
}

// join starts a fresh game for the connection, replacing any earlier one
func (s *Server) join(c *Conn, msg ClientMessage) {
	gc := s.cfg.GameConfig(int(msg.W), int(msg.H))
	session, err := NewSession(c.ID, msg.Name, gc, msg.Auto == 1, time.Now())
	if err != nil {
		log.Printf("join %s: %v", c.ID, err)
		_ = c.Send(ErrorMsg{Type: MsgError, Message: "Could not start a game for this screen size."})
		return
	}
	// welcome goes out before the first state frame can
	if err := c.Send(session.Welcome(s.codec.Name())); err != nil {
		log.Printf("welcome send error to %s: %v", c.ID, err)
		return
	}
	s.world.AddSession(session)
	log.Printf("session joined: %s (%s) %dx%d len %d demo=%t",
		session.Name, c.ID, gc.Width, gc.Height, gc.InitialLength, msg.Auto == 1)
}

func (s *Server) leave(c *Conn) {
	s.conns.Remove(c.ID)
	s.world.RemoveSession(c.ID)
	log.Printf("player disconnected: %s", c.ID)
}

func main() {
	cfg, err := LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := NewServer(ctx, cfg)
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	sounds, err := NewSoundBank()
	if err != nil {
		// the game is playable without sound
		log.Printf("sound effects disabled: %v", err)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(sounds),
		ReadHeaderTimeout: 10 * time.Second,
	}

	loop := NewGameLoop(srv.world, srv.conns, srv.codec)
	go loop.Run(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("server listening on %s (tick %s, score %s, wrap %t, codec %s)",
		cfg.Addr, cfg.Tick, cfg.Score, cfg.Wrap, cfg.Codec)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
