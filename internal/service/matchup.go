package service

import (
	"context"
	"fmt"

	"github.com/fortuna/gridiron/internal/engine"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// MatchupService builds the dashboard's two-team comparison objects.
type MatchupService struct {
	stats     *StatsService
	teamRepo  *repository.TeamRepository
	statsRepo *repository.StatsRepository
}

// NewMatchupService creates a matchup service on top of the stats service.
func NewMatchupService(db *store.Database, stats *StatsService) *MatchupService {
	return &MatchupService{
		stats:     stats,
		teamRepo:  repository.NewTeamRepository(db),
		statsRepo: repository.NewStatsRepository(db),
	}
}

// TeamSeasonView is one side of a matchup: the team, its season re-sum, and
// any scraped ranking badges.
type TeamSeasonView struct {
	Team   *store.Team             `json:"team"`
	Season *engine.SeasonAggregate `json:"season"`
	Badges []string                `json:"badges,omitempty"`
}

// Matchup compares two teams' season numbers ahead of a game.
type Matchup struct {
	SeasonID int             `json:"season_id"`
	Home     *TeamSeasonView `json:"home"`
	Away     *TeamSeasonView `json:"away"`
}

// GetMatchup builds the comparison object for two teams in a season.
func (s *MatchupService) GetMatchup(ctx context.Context, homeTeamID, awayTeamID, seasonID int) (*Matchup, error) {
	if homeTeamID == awayTeamID {
		return nil, fmt.Errorf("matchup requires two distinct teams")
	}

	home, err := s.teamView(ctx, homeTeamID, seasonID)
	if err != nil {
		return nil, err
	}
	away, err := s.teamView(ctx, awayTeamID, seasonID)
	if err != nil {
		return nil, err
	}

	return &Matchup{
		SeasonID: seasonID,
		Home:     home,
		Away:     away,
	}, nil
}

func (s *MatchupService) teamView(ctx context.Context, teamID, seasonID int) (*TeamSeasonView, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team %d: %w", teamID, err)
	}

	season, err := s.stats.GetSeasonAggregate(ctx, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("season aggregate for %s: %w", team.Abbreviation, err)
	}

	view := &TeamSeasonView{Team: team, Season: season}

	badges, err := s.statsRepo.GetBadges(ctx, teamID, seasonID)
	if err == nil {
		for _, badge := range badges {
			view.Badges = append(view.Badges, badge.RankLabel)
		}
	}

	return view, nil
}
