package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/reprocess"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache, reprocessSvc *reprocess.Service) *Server {
	handler := NewHandler(db, redisCache)
	reprocessHandler := NewReprocessHandler(reprocessSvc)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Games
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/stats", handler.GetGameStats).Methods("GET")

	// Teams
	api.HandleFunc("/teams", handler.GetTeams).Methods("GET")
	api.HandleFunc("/teams/{teamID}", handler.GetTeam).Methods("GET")
	api.HandleFunc("/teams/{teamID}/schedule", handler.GetTeamSchedule).Methods("GET")
	api.HandleFunc("/teams/{teamID}/season", handler.GetTeamSeason).Methods("GET")

	// Matchups
	api.HandleFunc("/matchup", handler.GetMatchup).Methods("GET")

	// Reprocess operations
	api.HandleFunc("/reprocess", reprocessHandler.HandleReprocessRequest).Methods("POST")
	api.HandleFunc("/reprocess/status", reprocessHandler.HandleReprocessStatus).Methods("GET")
	api.HandleFunc("/reprocess/jobs/{jobID}", reprocessHandler.HandleGetJob).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
