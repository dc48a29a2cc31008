package pbp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/fortuna/gridiron/internal/engine"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
	"github.com/fortuna/gridiron/internal/teams"
)

// Ingester turns parser exports into stored games, play records, and engine
// stat lines.
type Ingester struct {
	db         *store.Database
	gameRepo   *repository.GameRepository
	playRepo   *repository.PlayRepository
	statsRepo  *repository.StatsRepository
	teamRepo   *repository.TeamRepository
	seasonRepo *repository.SeasonRepository
	pub        *publisher.RedisStreamPublisher

	mu      sync.Mutex
	matcher *teams.Matcher
}

// NewIngester creates an export ingester. The publisher may be nil; refresh
// events are then skipped.
func NewIngester(db *store.Database, pub *publisher.RedisStreamPublisher) *Ingester {
	return &Ingester{
		db:         db,
		gameRepo:   repository.NewGameRepository(db),
		playRepo:   repository.NewPlayRepository(db),
		statsRepo:  repository.NewStatsRepository(db),
		teamRepo:   repository.NewTeamRepository(db),
		seasonRepo: repository.NewSeasonRepository(db),
		pub:        pub,
	}
}

// StatsRefreshEvent is the stream payload emitted after a game's stat lines
// are replaced.
type StatsRefreshEvent struct {
	GameID     int    `json:"game_id"`
	ExternalID string `json:"external_id"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
}

// IngestDirectory loads every export in dir and ingests each one. Failures
// are logged per game and do not stop the slate.
func (i *Ingester) IngestDirectory(ctx context.Context, dir string) (int, error) {
	exports, err := LoadDirectory(dir)
	if err != nil {
		return 0, err
	}

	log.Printf("[pbp] Loaded %d exports from %s", len(exports), dir)

	ingested := 0
	for _, export := range exports {
		if err := i.IngestExport(ctx, export); err != nil {
			log.Printf("[pbp] Error ingesting %s: %v", export.GameID, err)
			continue
		}
		ingested++
	}

	return ingested, nil
}

// IngestExport runs the engine over one export and persists everything:
// the game row, the raw play stream, and one stat line per team. Running it
// twice with the same export leaves the database unchanged.
func (i *Ingester) IngestExport(ctx context.Context, export *Export) error {
	matcher, err := i.teamMatcher(ctx)
	if err != nil {
		return err
	}

	home, ok := matcher.Match(export.HomeTeam.Abbreviation)
	if !ok {
		home, ok = matcher.Match(export.HomeTeam.Name)
	}
	if !ok {
		return fmt.Errorf("unknown home team %q", export.HomeTeam.Abbreviation)
	}
	away, ok := matcher.Match(export.AwayTeam.Abbreviation)
	if !ok {
		away, ok = matcher.Match(export.AwayTeam.Name)
	}
	if !ok {
		return fmt.Errorf("unknown away team %q", export.AwayTeam.Abbreviation)
	}

	season, err := i.resolveSeason(ctx, export.Season)
	if err != nil {
		return err
	}

	result, err := engine.ProcessGame(engine.GameInput{
		GameID:   export.GameID,
		HomeTeam: home.Abbreviation,
		AwayTeam: away.Abbreviation,
		Records:  export.Plays,
	})
	if err != nil {
		return fmt.Errorf("processing %s: %w", export.GameID, err)
	}

	for _, warning := range result.ValidationErrors {
		log.Printf("[pbp] Warning for %s: %s", export.GameID, warning)
	}

	game := &store.Game{
		SeasonID:   season.SeasonID,
		ExternalID: export.GameID,
		GameDate:   export.Date,
		HomeTeamID: home.TeamID,
		AwayTeamID: away.TeamID,
		HomeScore:  sql.NullInt32{Int32: int32(export.HomeTeam.Score), Valid: true},
		AwayScore:  sql.NullInt32{Int32: int32(export.AwayTeam.Score), Valid: true},
		Status:     "final",
		Venue:      sql.NullString{String: export.Venue, Valid: export.Venue != ""},
	}
	if err := i.gameRepo.Upsert(ctx, game); err != nil {
		return err
	}

	if err := i.playRepo.ReplaceGame(ctx, game.GameID, toPlayRecords(game.GameID, export.Plays)); err != nil {
		return err
	}

	lines := map[int]*engine.GameAggregate{
		home.TeamID: result.Aggregates[home.Abbreviation],
		away.TeamID: result.Aggregates[away.Abbreviation],
	}
	for teamID, agg := range lines {
		line, err := toStatLine(game.GameID, teamID, agg, result.ValidationErrors)
		if err != nil {
			return err
		}
		if err := i.statsRepo.UpsertStatLine(ctx, line); err != nil {
			return err
		}
	}

	if i.pub != nil {
		event := StatsRefreshEvent{
			GameID:     game.GameID,
			ExternalID: game.ExternalID,
			HomeTeam:   home.Abbreviation,
			AwayTeam:   away.Abbreviation,
		}
		if err := i.pub.PublishStatsRefresh(ctx, event); err != nil {
			log.Printf("[pbp] Error publishing refresh for %s: %v", export.GameID, err)
		}
	}

	log.Printf("[pbp] Ingested %s (%s vs %s, %d plays)",
		export.GameID, home.Abbreviation, away.Abbreviation, len(export.Plays))

	return nil
}

// ReprocessGame re-runs the engine over a game's stored play records and
// replaces its stat lines. Used by the reprocess job runner.
func (i *Ingester) ReprocessGame(ctx context.Context, gameID int) error {
	game, err := i.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return err
	}

	home, err := i.teamRepo.GetByID(ctx, game.HomeTeamID)
	if err != nil {
		return err
	}
	away, err := i.teamRepo.GetByID(ctx, game.AwayTeamID)
	if err != nil {
		return err
	}

	stored, err := i.playRepo.GetByGame(ctx, gameID)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return fmt.Errorf("no stored plays for game %d", gameID)
	}

	result, err := engine.ProcessGame(engine.GameInput{
		GameID:   game.ExternalID,
		HomeTeam: home.Abbreviation,
		AwayTeam: away.Abbreviation,
		Records:  toRecords(stored),
	})
	if err != nil {
		return fmt.Errorf("reprocessing %s: %w", game.ExternalID, err)
	}

	lines := map[int]*engine.GameAggregate{
		home.TeamID: result.Aggregates[home.Abbreviation],
		away.TeamID: result.Aggregates[away.Abbreviation],
	}
	for teamID, agg := range lines {
		line, err := toStatLine(gameID, teamID, agg, result.ValidationErrors)
		if err != nil {
			return err
		}
		if err := i.statsRepo.UpsertStatLine(ctx, line); err != nil {
			return err
		}
	}

	if i.pub != nil {
		event := StatsRefreshEvent{
			GameID:     game.GameID,
			ExternalID: game.ExternalID,
			HomeTeam:   home.Abbreviation,
			AwayTeam:   away.Abbreviation,
		}
		if err := i.pub.PublishStatsRefresh(ctx, event); err != nil {
			log.Printf("[pbp] Error publishing refresh for game %d: %v", gameID, err)
		}
	}

	return nil
}

func (i *Ingester) teamMatcher(ctx context.Context) (*teams.Matcher, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.matcher != nil {
		return i.matcher, nil
	}

	all, err := i.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}

	i.matcher = teams.NewMatcher(all)
	return i.matcher, nil
}

func (i *Ingester) resolveSeason(ctx context.Context, year string) (*store.Season, error) {
	if year != "" {
		return i.seasonRepo.GetByYear(ctx, year)
	}
	return i.seasonRepo.GetActive(ctx)
}

func toPlayRecords(gameID int, records []engine.Record) []*store.PlayRecord {
	out := make([]*store.PlayRecord, 0, len(records))
	for idx, rec := range records {
		out = append(out, &store.PlayRecord{
			GameID:       gameID,
			PlayIndex:    idx,
			Team:         rec.Team,
			Quarter:      rec.Quarter,
			Clock:        sql.NullString{String: rec.Clock, Valid: rec.Clock != ""},
			Down:         rec.Down,
			Distance:     rec.Distance,
			Spot:         sql.NullString{String: rec.Spot, Valid: rec.Spot != ""},
			PlayType:     rec.PlayType,
			YardsGained:  rec.YardsGained,
			ScoringFlag:  rec.ScoringFlag,
			TurnoverFlag: rec.TurnoverFlag,
			PenaltyFlags: rec.PenaltyFlags,
			ReviewFlags:  rec.ReviewFlags,
			RawText:      rec.RawText,
		})
	}
	return out
}

func toRecords(plays []*store.PlayRecord) []engine.Record {
	out := make([]engine.Record, 0, len(plays))
	for _, play := range plays {
		out = append(out, engine.Record{
			Team:         play.Team,
			Quarter:      play.Quarter,
			Clock:        play.Clock.String,
			Down:         play.Down,
			Distance:     play.Distance,
			Spot:         play.Spot.String,
			PlayType:     play.PlayType,
			YardsGained:  play.YardsGained,
			ScoringFlag:  play.ScoringFlag,
			TurnoverFlag: play.TurnoverFlag,
			PenaltyFlags: play.PenaltyFlags,
			ReviewFlags:  play.ReviewFlags,
			RawText:      play.RawText,
		})
	}
	return out
}

func toStatLine(gameID, teamID int, agg *engine.GameAggregate, warnings []string) (*store.GameStatLine, error) {
	if agg == nil {
		return nil, fmt.Errorf("missing aggregate for team %d", teamID)
	}

	blob, err := json.Marshal(agg)
	if err != nil {
		return nil, fmt.Errorf("encoding aggregate: %w", err)
	}

	return &store.GameStatLine{
		GameID:             gameID,
		TeamID:             teamID,
		GreenZoneTrips:     agg.GreenZoneTrips,
		RedZoneTrips:       agg.RedZoneTrips,
		RedZoneTDs:         agg.RedZoneTDs,
		RedZoneFGs:         agg.RedZoneFGs,
		RedZoneFailed:      agg.RedZoneFailed,
		TightRedZoneTrips:  agg.TightRedZoneTrips,
		PointsOffTurnovers: agg.PointsOffTurnovers,
		ExplosivePlays:     agg.ExplosiveRushes + agg.ExplosivePasses,
		Aggregate:          string(blob),
		ValidationErrors:   warnings,
	}, nil
}
