package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/gridiron/internal/store"
)

// PlayRepository handles raw play-by-play record access
type PlayRepository struct {
	db *store.Database
}

// NewPlayRepository creates a new play repository
func NewPlayRepository(db *store.Database) *PlayRepository {
	return &PlayRepository{db: db}
}

// GetByGame returns every stored play for a game in stream order
func (r *PlayRepository) GetByGame(ctx context.Context, gameID int) ([]*store.PlayRecord, error) {
	query := `
		SELECT id, game_id, play_index, team, quarter, clock, down, distance,
			spot, play_type, yards_gained, scoring_flag, turnover_flag,
			penalty_flags, review_flags, raw_text, created_at
		FROM play_records
		WHERE game_id = $1
		ORDER BY play_index
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying plays: %w", err)
	}
	defer rows.Close()

	var plays []*store.PlayRecord
	for rows.Next() {
		play := &store.PlayRecord{}
		err := rows.Scan(
			&play.ID, &play.GameID, &play.PlayIndex, &play.Team, &play.Quarter,
			&play.Clock, &play.Down, &play.Distance, &play.Spot, &play.PlayType,
			&play.YardsGained, &play.ScoringFlag, &play.TurnoverFlag,
			&play.PenaltyFlags, &play.ReviewFlags, &play.RawText, &play.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning play: %w", err)
		}
		plays = append(plays, play)
	}

	return plays, rows.Err()
}

// ReplaceGame swaps a game's stored play stream for a fresh one in a single
// transaction. Re-ingesting the same export always leaves the same rows.
func (r *PlayRepository) ReplaceGame(ctx context.Context, gameID int, plays []*store.PlayRecord) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning play replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM play_records WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("clearing plays for game %d: %w", gameID, err)
	}

	insert := `
		INSERT INTO play_records (game_id, play_index, team, quarter, clock,
			down, distance, spot, play_type, yards_gained, scoring_flag,
			turnover_flag, penalty_flags, review_flags, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing play insert: %w", err)
	}
	defer stmt.Close()

	for _, play := range plays {
		_, err := stmt.ExecContext(ctx,
			gameID, play.PlayIndex, play.Team, play.Quarter, play.Clock,
			play.Down, play.Distance, play.Spot, play.PlayType, play.YardsGained,
			play.ScoringFlag, play.TurnoverFlag, play.PenaltyFlags,
			play.ReviewFlags, play.RawText,
		)
		if err != nil {
			return fmt.Errorf("inserting play %d: %w", play.PlayIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing play replace: %w", err)
	}

	return nil
}

// CountByGame returns the number of stored plays for a game
func (r *PlayRepository) CountByGame(ctx context.Context, gameID int) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM play_records WHERE game_id = $1`, gameID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting plays: %w", err)
	}
	return count, nil
}
