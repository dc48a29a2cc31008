package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/engine"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

const seasonCacheTTL = 10 * time.Minute

// StatsService exposes the engine's stored output: per-game aggregates and
// on-demand season re-sums.
type StatsService struct {
	statsRepo *repository.StatsRepository
	teamRepo  *repository.TeamRepository
	gameRepo  *repository.GameRepository
	cache     *cache.RedisCache
}

// NewStatsService creates a new stats service. The cache may be nil; season
// aggregates are then recomputed on every call.
func NewStatsService(db *store.Database, redisCache *cache.RedisCache) *StatsService {
	return &StatsService{
		statsRepo: repository.NewStatsRepository(db),
		teamRepo:  repository.NewTeamRepository(db),
		gameRepo:  repository.NewGameRepository(db),
		cache:     redisCache,
	}
}

// GameStats is one game's engine output for both teams.
type GameStats struct {
	Game     *store.Game           `json:"game"`
	HomeTeam *store.Team           `json:"home_team"`
	AwayTeam *store.Team           `json:"away_team"`
	Home     *engine.GameAggregate `json:"home"`
	Away     *engine.GameAggregate `json:"away"`
	Warnings []string              `json:"warnings,omitempty"`
}

// GetGameStats returns both teams' aggregates for a game by export ID.
func (s *StatsService) GetGameStats(ctx context.Context, externalID string) (*GameStats, error) {
	game, err := s.gameRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	homeTeam, err := s.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching home team: %w", err)
	}
	awayTeam, err := s.teamRepo.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching away team: %w", err)
	}

	lines, err := s.statsRepo.GetGameStatLines(ctx, game.GameID)
	if err != nil {
		return nil, fmt.Errorf("fetching stat lines: %w", err)
	}

	stats := &GameStats{Game: game, HomeTeam: homeTeam, AwayTeam: awayTeam}
	for _, line := range lines {
		agg, err := decodeAggregate(line)
		if err != nil {
			return nil, err
		}
		switch line.TeamID {
		case game.HomeTeamID:
			stats.Home = agg
		case game.AwayTeamID:
			stats.Away = agg
		}
		stats.Warnings = append(stats.Warnings, line.ValidationErrors...)
	}

	if stats.Home == nil || stats.Away == nil {
		return nil, fmt.Errorf("stat lines incomplete for game %s", externalID)
	}

	return stats, nil
}

// GetSeasonAggregate re-sums a team's stored game aggregates into the season
// view. Derived, never accumulated: a reprocessed game changes the next
// re-sum automatically.
func (s *StatsService) GetSeasonAggregate(ctx context.Context, teamID, seasonID int) (*engine.SeasonAggregate, error) {
	key := fmt.Sprintf("gridiron:season:%d:%d", seasonID, teamID)

	if s.cache != nil {
		cached := &engine.SeasonAggregate{}
		hit, err := s.cache.GetJSON(ctx, key, cached)
		if err != nil {
			log.Printf("[stats] Cache read error for team %d: %v", teamID, err)
		} else if hit {
			return cached, nil
		}
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	lines, err := s.statsRepo.GetSeasonStatLines(ctx, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("fetching season stat lines: %w", err)
	}

	games := make([]*engine.GameAggregate, 0, len(lines))
	for _, line := range lines {
		agg, err := decodeAggregate(line)
		if err != nil {
			return nil, err
		}
		games = append(games, agg)
	}

	season := engine.SumSeason(team.Abbreviation, games)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, season, seasonCacheTTL); err != nil {
			log.Printf("[stats] Cache write error for team %d: %v", teamID, err)
		}
	}

	return season, nil
}

// InvalidateSeason drops the cached season aggregate after a reprocess.
func (s *StatsService) InvalidateSeason(ctx context.Context, teamID, seasonID int) {
	if s.cache == nil {
		return
	}
	key := fmt.Sprintf("gridiron:season:%d:%d", seasonID, teamID)
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Printf("[stats] Cache invalidate error for team %d: %v", teamID, err)
	}
}

func decodeAggregate(line *store.GameStatLine) (*engine.GameAggregate, error) {
	agg := &engine.GameAggregate{}
	if err := json.Unmarshal([]byte(line.Aggregate), agg); err != nil {
		return nil, fmt.Errorf("decoding aggregate for game %d team %d: %w", line.GameID, line.TeamID, err)
	}
	return agg, nil
}
