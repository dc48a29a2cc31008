package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// GameService handles game-related business logic
type GameService struct {
	gameRepo *repository.GameRepository
	teamRepo *repository.TeamRepository
}

// NewGameService creates a new game service
func NewGameService(db *store.Database) *GameService {
	return &GameService{
		gameRepo: repository.NewGameRepository(db),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// GetGame retrieves a game by its export identifier with team details
func (s *GameService) GetGame(ctx context.Context, externalID string) (*GameSummary, error) {
	game, err := s.gameRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("fetching game: %w", err)
	}

	return s.summarize(ctx, game)
}

// GetGamesByDate retrieves all games on a specific date
func (s *GameService) GetGamesByDate(ctx context.Context, date time.Time) ([]*GameSummary, error) {
	games, err := s.gameRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("fetching games by date: %w", err)
	}

	return s.enrichGamesWithTeams(ctx, games)
}

// GetTeamSchedule retrieves games for a specific team within a season
func (s *GameService) GetTeamSchedule(ctx context.Context, teamID int, seasonID int, limit int) ([]*GameSummary, error) {
	games, err := s.gameRepo.GetByTeam(ctx, teamID, seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching team schedule: %w", err)
	}

	return s.enrichGamesWithTeams(ctx, games)
}

func (s *GameService) summarize(ctx context.Context, game *store.Game) (*GameSummary, error) {
	homeTeam, err := s.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching home team: %w", err)
	}

	awayTeam, err := s.teamRepo.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return nil, fmt.Errorf("fetching away team: %w", err)
	}

	return &GameSummary{
		Game:     game,
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
	}, nil
}

// enrichGamesWithTeams adds team details to games
func (s *GameService) enrichGamesWithTeams(ctx context.Context, games []*store.Game) ([]*GameSummary, error) {
	summaries := make([]*GameSummary, 0, len(games))

	for _, game := range games {
		summary, err := s.summarize(ctx, game)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", game.ExternalID, err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GameSummary contains game details with team information
type GameSummary struct {
	Game     *store.Game `json:"game"`
	HomeTeam *store.Team `json:"home_team"`
	AwayTeam *store.Team `json:"away_team"`
}
