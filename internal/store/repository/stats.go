package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// StatsRepository handles stat line and badge data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStatLine returns one team's stat line for one game
func (r *StatsRepository) GetStatLine(ctx context.Context, gameID, teamID int) (*store.GameStatLine, error) {
	query := `
		SELECT id, game_id, team_id, green_zone_trips, red_zone_trips,
			red_zone_tds, red_zone_fgs, red_zone_failed, tight_red_zone_trips,
			points_off_turnovers, explosive_plays, aggregate, validation_errors,
			created_at, updated_at
		FROM game_stat_lines
		WHERE game_id = $1 AND team_id = $2
	`

	line := &store.GameStatLine{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID, teamID).Scan(
		&line.ID, &line.GameID, &line.TeamID, &line.GreenZoneTrips, &line.RedZoneTrips,
		&line.RedZoneTDs, &line.RedZoneFGs, &line.RedZoneFailed, &line.TightRedZoneTrips,
		&line.PointsOffTurnovers, &line.ExplosivePlays, &line.Aggregate, &line.ValidationErrors,
		&line.CreatedAt, &line.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stat line not found for game %d, team %d", gameID, teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying stat line: %w", err)
	}

	return line, nil
}

// GetGameStatLines returns both teams' stat lines for a game
func (r *StatsRepository) GetGameStatLines(ctx context.Context, gameID int) ([]*store.GameStatLine, error) {
	query := `
		SELECT id, game_id, team_id, green_zone_trips, red_zone_trips,
			red_zone_tds, red_zone_fgs, red_zone_failed, tight_red_zone_trips,
			points_off_turnovers, explosive_plays, aggregate, validation_errors,
			created_at, updated_at
		FROM game_stat_lines
		WHERE game_id = $1
		ORDER BY team_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying game stat lines: %w", err)
	}
	defer rows.Close()

	return r.scanStatLines(rows)
}

// GetSeasonStatLines returns every stat line for a team across a season,
// in schedule order, for season re-summing.
func (r *StatsRepository) GetSeasonStatLines(ctx context.Context, teamID, seasonID int) ([]*store.GameStatLine, error) {
	query := `
		SELECT sl.id, sl.game_id, sl.team_id, sl.green_zone_trips, sl.red_zone_trips,
			sl.red_zone_tds, sl.red_zone_fgs, sl.red_zone_failed, sl.tight_red_zone_trips,
			sl.points_off_turnovers, sl.explosive_plays, sl.aggregate, sl.validation_errors,
			sl.created_at, sl.updated_at
		FROM game_stat_lines sl
		JOIN games g ON sl.game_id = g.game_id
		WHERE sl.team_id = $1 AND g.season_id = $2 AND g.status = 'final'
		ORDER BY g.game_date
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying season stat lines: %w", err)
	}
	defer rows.Close()

	return r.scanStatLines(rows)
}

// UpsertStatLine replaces one team's stat line for a game. The row is
// rewritten whole so reprocessing stays idempotent.
func (r *StatsRepository) UpsertStatLine(ctx context.Context, line *store.GameStatLine) error {
	query := `
		INSERT INTO game_stat_lines (game_id, team_id, green_zone_trips, red_zone_trips,
			red_zone_tds, red_zone_fgs, red_zone_failed, tight_red_zone_trips,
			points_off_turnovers, explosive_plays, aggregate, validation_errors)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (game_id, team_id) DO UPDATE SET
			green_zone_trips = EXCLUDED.green_zone_trips,
			red_zone_trips = EXCLUDED.red_zone_trips,
			red_zone_tds = EXCLUDED.red_zone_tds,
			red_zone_fgs = EXCLUDED.red_zone_fgs,
			red_zone_failed = EXCLUDED.red_zone_failed,
			tight_red_zone_trips = EXCLUDED.tight_red_zone_trips,
			points_off_turnovers = EXCLUDED.points_off_turnovers,
			explosive_plays = EXCLUDED.explosive_plays,
			aggregate = EXCLUDED.aggregate,
			validation_errors = EXCLUDED.validation_errors,
			updated_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		line.GameID, line.TeamID, line.GreenZoneTrips, line.RedZoneTrips,
		line.RedZoneTDs, line.RedZoneFGs, line.RedZoneFailed, line.TightRedZoneTrips,
		line.PointsOffTurnovers, line.ExplosivePlays, line.Aggregate, line.ValidationErrors,
	).Scan(&line.ID)

	if err != nil {
		return fmt.Errorf("upserting stat line: %w", err)
	}

	return nil
}

// GetBadges returns the current ranking badges for a team and season
func (r *StatsRepository) GetBadges(ctx context.Context, teamID, seasonID int) ([]*store.ZoneBadge, error) {
	query := `
		SELECT id, team_id, season_id, category, rank, rank_label, value, fetched_at
		FROM zone_badges
		WHERE team_id = $1 AND season_id = $2
		ORDER BY category
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("querying badges: %w", err)
	}
	defer rows.Close()

	var badges []*store.ZoneBadge
	for rows.Next() {
		badge := &store.ZoneBadge{}
		err := rows.Scan(
			&badge.ID, &badge.TeamID, &badge.SeasonID, &badge.Category,
			&badge.Rank, &badge.RankLabel, &badge.Value, &badge.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning badge: %w", err)
		}
		badges = append(badges, badge)
	}

	return badges, rows.Err()
}

// UpsertBadge inserts or refreshes a scraped ranking badge
func (r *StatsRepository) UpsertBadge(ctx context.Context, badge *store.ZoneBadge) error {
	query := `
		INSERT INTO zone_badges (team_id, season_id, category, rank, rank_label, value, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (team_id, season_id, category) DO UPDATE SET
			rank = EXCLUDED.rank,
			rank_label = EXCLUDED.rank_label,
			value = EXCLUDED.value,
			fetched_at = NOW()
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		badge.TeamID, badge.SeasonID, badge.Category,
		badge.Rank, badge.RankLabel, badge.Value,
	).Scan(&badge.ID)

	if err != nil {
		return fmt.Errorf("upserting badge: %w", err)
	}

	return nil
}

// scanStatLines scans multiple stat line rows
func (r *StatsRepository) scanStatLines(rows *sql.Rows) ([]*store.GameStatLine, error) {
	var lines []*store.GameStatLine
	for rows.Next() {
		line := &store.GameStatLine{}
		err := rows.Scan(
			&line.ID, &line.GameID, &line.TeamID, &line.GreenZoneTrips, &line.RedZoneTrips,
			&line.RedZoneTDs, &line.RedZoneFGs, &line.RedZoneFailed, &line.TightRedZoneTrips,
			&line.PointsOffTurnovers, &line.ExplosivePlays, &line.Aggregate, &line.ValidationErrors,
			&line.CreatedAt, &line.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning stat line: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
