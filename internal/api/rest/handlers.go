package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/service"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db             *store.Database
	gameService    *service.GameService
	statsService   *service.StatsService
	matchupService *service.MatchupService
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, redisCache *cache.RedisCache) *Handler {
	statsService := service.NewStatsService(db, redisCache)
	return &Handler{
		db:             db,
		gameService:    service.NewGameService(db),
		statsService:   statsService,
		matchupService: service.NewMatchupService(db, statsService),
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "gridiron",
		"version": "1.0.0",
	})
}

// GetGamesByDate returns all games on a specific date
func (h *Handler) GetGamesByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		dateStr = time.Now().Format("2006-01-02")
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	games, err := h.gameService.GetGamesByDate(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch games", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetGame returns a specific game by its export identifier
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	game, err := h.gameService.GetGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game not found", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGameStats returns both teams' zone aggregates for a game
func (h *Handler) GetGameStats(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID := vars["gameID"]

	stats, err := h.statsService.GetGameStats(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Game stats not found", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTeams returns all teams
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teamRepo := repository.NewTeamRepository(h.db)
	teams, err := teamRepo.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// GetTeam returns a specific team by ID
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamIDStr := vars["teamID"]

	teamID, err := strconv.Atoi(teamIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	teamRepo := repository.NewTeamRepository(h.db)
	team, err := teamRepo.GetByID(r.Context(), teamID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Team not found", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamSchedule returns a team's games within a season
func (h *Handler) GetTeamSchedule(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamIDStr := vars["teamID"]

	teamID, err := strconv.Atoi(teamIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	seasonID, err := h.resolveSeason(r.Context(), r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit := 20 // default
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	schedule, err := h.gameService.GetTeamSchedule(r.Context(), teamID, seasonID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch team schedule", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": schedule,
		"count": len(schedule),
	})
}

// GetTeamSeason returns a team's season-level zone aggregate, re-summed
// from its stored game aggregates
func (h *Handler) GetTeamSeason(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	teamIDStr := vars["teamID"]

	teamID, err := strconv.Atoi(teamIDStr)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid team ID", err)
		return
	}

	seasonID, err := h.resolveSeason(r.Context(), r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	season, err := h.statsService.GetSeasonAggregate(r.Context(), teamID, seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute season aggregate", err)
		return
	}

	respondJSON(w, http.StatusOK, season)
}

// GetMatchup returns the two-team comparison object for the dashboard
func (h *Handler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	homeID, err := strconv.Atoi(r.URL.Query().Get("home"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid 'home' team ID", err)
		return
	}

	awayID, err := strconv.Atoi(r.URL.Query().Get("away"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid 'away' team ID", err)
		return
	}

	seasonID, err := h.resolveSeason(r.Context(), r.URL.Query().Get("season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid season", err)
		return
	}

	matchup, err := h.matchupService.GetMatchup(r.Context(), homeID, awayID, seasonID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build matchup", err)
		return
	}

	respondJSON(w, http.StatusOK, matchup)
}

// resolveSeason maps a season year string ("2025") to its season_id,
// defaulting to the active season when no year is given
func (h *Handler) resolveSeason(ctx context.Context, year string) (int, error) {
	var seasonID int
	var err error

	if year == "" {
		query := `SELECT season_id FROM seasons WHERE is_active = true AND sport = 'football_cfb' LIMIT 1`
		err = h.db.DB().QueryRowContext(ctx, query).Scan(&seasonID)
		if err != nil {
			return 0, fmt.Errorf("no active season configured: %w", err)
		}
		return seasonID, nil
	}

	query := `SELECT season_id FROM seasons WHERE year = $1 AND sport = 'football_cfb' LIMIT 1`
	err = h.db.DB().QueryRowContext(ctx, query, year).Scan(&seasonID)
	if err != nil {
		return 0, fmt.Errorf("season '%s' not found: %w", year, err)
	}

	return seasonID, nil
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
