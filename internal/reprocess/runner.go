package reprocess

import (
	"context"
	"fmt"

	"github.com/fortuna/gridiron/internal/ingest/pbp"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Runner executes reprocess specs by re-running the engine over stored plays.
type Runner struct {
	ingester   *pbp.Ingester
	gameRepo   *repository.GameRepository
	seasonRepo *repository.SeasonRepository
	db         *store.Database
}

// NewRunner constructs a runner sharing the given ingester.
func NewRunner(db *store.Database, ingester *pbp.Ingester) *Runner {
	return &Runner{
		ingester:   ingester,
		gameRepo:   repository.NewGameRepository(db),
		seasonRepo: repository.NewSeasonRepository(db),
		db:         db,
	}
}

// Run executes the job spec, reporting progress via the Reporter if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	if reporter != nil {
		reporter.OnJobStart(spec)
	}

	if spec.DryRun {
		if reporter != nil {
			reporter.OnProgress("Dry-run mode: no data will be written", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	games, err := r.resolveGames(ctx, spec)
	if err != nil {
		if reporter != nil {
			reporter.OnJobError(err)
		}
		return err
	}

	total := len(games)
	if total == 0 {
		if reporter != nil {
			reporter.OnProgress("No games to reprocess", 0, 0)
			reporter.OnJobComplete()
		}
		return nil
	}

	for idx, game := range games {
		if err := ctx.Err(); err != nil {
			return err
		}

		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("Reprocessing game %s (%d/%d)", game.ExternalID, idx+1, total), idx, total)
		}

		if err := r.ingester.ReprocessGame(ctx, game.GameID); err != nil {
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}

		if reporter != nil {
			reporter.OnGameProcessed(game.ExternalID)
			reporter.OnProgress(fmt.Sprintf("✓ Game %s complete", game.ExternalID), idx+1, total)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete()
	}

	return nil
}

// resolveGames turns a spec into the concrete game rows to reprocess.
func (r *Runner) resolveGames(ctx context.Context, spec JobSpec) ([]*store.Game, error) {
	switch spec.Type {
	case JobTypeGame:
		if len(spec.GameIDs) == 0 {
			return nil, fmt.Errorf("no game IDs provided for job type 'game'")
		}
		games := make([]*store.Game, 0, len(spec.GameIDs))
		for _, externalID := range spec.GameIDs {
			game, err := r.gameRepo.GetByExternalID(ctx, externalID)
			if err != nil {
				return nil, err
			}
			games = append(games, game)
		}
		return games, nil

	case JobTypeSeason:
		season, err := r.seasonRepo.GetByYear(ctx, spec.SeasonYear)
		if err != nil {
			return nil, err
		}
		return r.gameRepo.GetBySeason(ctx, season.SeasonID)

	case JobTypeDateRange:
		var games []*store.Game
		for date := spec.Start; !date.After(spec.End); date = date.AddDate(0, 0, 1) {
			day, err := r.gameRepo.GetByDate(ctx, date)
			if err != nil {
				return nil, err
			}
			games = append(games, day...)
		}
		return games, nil

	default:
		return nil, fmt.Errorf("unsupported job type %s", spec.Type)
	}
}
