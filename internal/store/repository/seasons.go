package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// SeasonRepository handles season data access
type SeasonRepository struct {
	db *store.Database
}

// NewSeasonRepository creates a new season repository
func NewSeasonRepository(db *store.Database) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// GetActive returns the currently active season
func (r *SeasonRepository) GetActive(ctx context.Context) (*store.Season, error) {
	query := `
		SELECT season_id, sport, year, start_date, end_date, is_active,
			metadata, created_at, updated_at
		FROM seasons
		WHERE is_active = true
		ORDER BY start_date DESC
		LIMIT 1
	`

	season := &store.Season{}
	err := r.db.DB().QueryRowContext(ctx, query).Scan(
		&season.SeasonID, &season.Sport, &season.Year, &season.StartDate,
		&season.EndDate, &season.IsActive, &season.Metadata,
		&season.CreatedAt, &season.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no active season")
	}
	if err != nil {
		return nil, fmt.Errorf("querying active season: %w", err)
	}

	return season, nil
}

// GetByYear finds a season by its year label (e.g., "2025")
func (r *SeasonRepository) GetByYear(ctx context.Context, year string) (*store.Season, error) {
	query := `
		SELECT season_id, sport, year, start_date, end_date, is_active,
			metadata, created_at, updated_at
		FROM seasons
		WHERE year = $1
	`

	season := &store.Season{}
	err := r.db.DB().QueryRowContext(ctx, query, year).Scan(
		&season.SeasonID, &season.Sport, &season.Year, &season.StartDate,
		&season.EndDate, &season.IsActive, &season.Metadata,
		&season.CreatedAt, &season.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("season not found: %s", year)
	}
	if err != nil {
		return nil, fmt.Errorf("querying season: %w", err)
	}

	return season, nil
}
