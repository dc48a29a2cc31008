package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// TeamRepository handles team data access
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all active teams
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, full_name, short_name, conference,
			aliases, is_active, created_at, updated_at
		FROM teams
		WHERE is_active = true
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.FullName, &team.ShortName,
			&team.Conference, &team.Aliases, &team.IsActive,
			&team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID finds a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, full_name, short_name, conference,
			aliases, is_active, created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.Abbreviation, &team.FullName, &team.ShortName,
		&team.Conference, &team.Aliases, &team.IsActive,
		&team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetByAbbreviation finds a team by abbreviation (e.g., "ASU", "COLO")
func (r *TeamRepository) GetByAbbreviation(ctx context.Context, abbr string) (*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, full_name, short_name, conference,
			aliases, is_active, created_at, updated_at
		FROM teams
		WHERE abbreviation = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, abbr).Scan(
		&team.TeamID, &team.Abbreviation, &team.FullName, &team.ShortName,
		&team.Conference, &team.Aliases, &team.IsActive,
		&team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %s", abbr)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// GetByConference returns all active teams in a conference
func (r *TeamRepository) GetByConference(ctx context.Context, conference string) ([]*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, full_name, short_name, conference,
			aliases, is_active, created_at, updated_at
		FROM teams
		WHERE conference = $1 AND is_active = true
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query, conference)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.FullName, &team.ShortName,
			&team.Conference, &team.Aliases, &team.IsActive,
			&team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Upsert inserts a team or updates its mutable fields on abbreviation conflict.
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) (int, error) {
	query := `
		INSERT INTO teams (abbreviation, full_name, short_name, conference, aliases, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (abbreviation) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			short_name = EXCLUDED.short_name,
			conference = EXCLUDED.conference,
			aliases = EXCLUDED.aliases,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING team_id
	`

	var teamID int
	err := r.db.DB().QueryRowContext(ctx, query,
		team.Abbreviation, team.FullName, team.ShortName,
		team.Conference, team.Aliases, team.IsActive,
	).Scan(&teamID)
	if err != nil {
		return 0, fmt.Errorf("upserting team %s: %w", team.Abbreviation, err)
	}

	return teamID, nil
}
