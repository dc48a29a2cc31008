package websocket

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development (TODO: restrict in production)
	},
}

// Server pushes stats-refresh notifications to dashboard clients. It tails
// the same Redis stream the ingester publishes to, so REST and WebSocket
// processes stay decoupled.
type Server struct {
	port   string
	server *http.Server
	hub    *Hub
	cache  *cache.RedisCache
	cancel context.CancelFunc
}

// NewServer creates a new WebSocket server
func NewServer(redisCache *cache.RedisCache) *Server {
	return &Server{
		hub:   NewHub(),
		cache: redisCache,
	}
}

// Start starts the WebSocket server
func (s *Server) Start(port string) error {
	s.port = port

	// Start the hub in a goroutine
	go s.hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.tailStatsStream(ctx)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/stats/refresh", s.handleStatsRefresh)
	mux.HandleFunc("/ws/health", s.handleHealth)

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: mux,
	}

	log.Printf("WebSocket server listening on :%s", port)
	return s.server.ListenAndServe()
}

// handleStatsRefresh handles WebSocket connections for stat refresh events
func (s *Server) handleStatsRefresh(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// tailStatsStream blocks on the stats refresh stream and fans each event out
// to connected clients. New connections only see events published after the
// server started; the dashboard pulls current state over REST first.
func (s *Server) tailStatsStream(ctx context.Context) {
	client := s.cache.Client()
	lastID := "$"

	for {
		if ctx.Err() != nil {
			return
		}

		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{publisher.StatsStream, lastID},
			Block:   0,
		}).Result()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[ws] Stream read error: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID
				if data, ok := msg.Values["data"].(string); ok {
					s.hub.Broadcast([]byte(data))
				}
			}
		}
	}
}

// BroadcastStatsRefresh sends a stats refresh payload to all connected clients
func (s *Server) BroadcastStatsRefresh(data []byte) {
	s.hub.Broadcast(data)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
