package store

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Season represents a college football season.
type Season struct {
	SeasonID  int            `json:"season_id" db:"season_id"`
	Sport     string         `json:"sport" db:"sport"`
	Year      string         `json:"year" db:"year"`
	StartDate time.Time      `json:"start_date" db:"start_date"`
	EndDate   time.Time      `json:"end_date" db:"end_date"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	Metadata  sql.NullString `json:"metadata,omitempty" db:"metadata"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// Team represents a program. Dashboard branding (logos, colors) stays out
// of the engine's schema.
type Team struct {
	TeamID       int            `json:"team_id" db:"team_id"`
	Abbreviation string         `json:"abbreviation" db:"abbreviation"`
	FullName     string         `json:"full_name" db:"full_name"`
	ShortName    sql.NullString `json:"short_name,omitempty" db:"short_name"`
	Conference   sql.NullString `json:"conference,omitempty" db:"conference"`
	Aliases      pq.StringArray `json:"aliases,omitempty" db:"aliases"`
	IsActive     bool           `json:"is_active" db:"is_active"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

// Game represents one game. ExternalID is the play-by-play export
// identifier the game was ingested under and is the idempotency key.
type Game struct {
	GameID     int            `json:"game_id" db:"game_id"`
	SeasonID   int            `json:"season_id" db:"season_id"`
	ExternalID string         `json:"external_id" db:"external_id"`
	GameDate   time.Time      `json:"game_date" db:"game_date"`
	HomeTeamID int            `json:"home_team_id" db:"home_team_id"`
	AwayTeamID int            `json:"away_team_id" db:"away_team_id"`
	HomeScore  sql.NullInt32  `json:"home_score,omitempty" db:"home_score"`
	AwayScore  sql.NullInt32  `json:"away_score,omitempty" db:"away_score"`
	Status     string         `json:"status" db:"status"`
	Venue      sql.NullString `json:"venue,omitempty" db:"venue"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// PlayRecord is one parser-supplied play persisted verbatim so any game
// can be reprocessed through the engine without re-reading exports.
type PlayRecord struct {
	ID           int            `json:"id" db:"id"`
	GameID       int            `json:"game_id" db:"game_id"`
	PlayIndex    int            `json:"play_index" db:"play_index"`
	Team         string         `json:"team" db:"team"`
	Quarter      int            `json:"quarter" db:"quarter"`
	Clock        sql.NullString `json:"clock,omitempty" db:"clock"`
	Down         int            `json:"down" db:"down"`
	Distance     int            `json:"distance" db:"distance"`
	Spot         sql.NullString `json:"spot,omitempty" db:"spot"`
	PlayType     string         `json:"play_type" db:"play_type"`
	YardsGained  int            `json:"yards_gained" db:"yards_gained"`
	ScoringFlag  bool           `json:"scoring_flag" db:"scoring_flag"`
	TurnoverFlag bool           `json:"turnover_flag" db:"turnover_flag"`
	PenaltyFlags pq.StringArray `json:"penalty_flags,omitempty" db:"penalty_flags"`
	ReviewFlags  pq.StringArray `json:"review_flags,omitempty" db:"review_flags"`
	RawText      string         `json:"raw_text" db:"raw_text"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// GameStatLine is one team's engine output for one game: headline counters
// in columns for querying, the full aggregate as JSON for the dashboard.
// Reprocessing replaces the row wholesale; nothing is incremented in place.
type GameStatLine struct {
	ID                 int            `json:"id" db:"id"`
	GameID             int            `json:"game_id" db:"game_id"`
	TeamID             int            `json:"team_id" db:"team_id"`
	GreenZoneTrips     int            `json:"green_zone_trips" db:"green_zone_trips"`
	RedZoneTrips       int            `json:"red_zone_trips" db:"red_zone_trips"`
	RedZoneTDs         int            `json:"red_zone_tds" db:"red_zone_tds"`
	RedZoneFGs         int            `json:"red_zone_fgs" db:"red_zone_fgs"`
	RedZoneFailed      int            `json:"red_zone_failed" db:"red_zone_failed"`
	TightRedZoneTrips  int            `json:"tight_red_zone_trips" db:"tight_red_zone_trips"`
	PointsOffTurnovers int            `json:"points_off_turnovers" db:"points_off_turnovers"`
	ExplosivePlays     int            `json:"explosive_plays" db:"explosive_plays"`
	Aggregate          string         `json:"aggregate" db:"aggregate"`
	ValidationErrors   pq.StringArray `json:"validation_errors,omitempty" db:"validation_errors"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// ZoneBadge is a scraped ranking badge for one team and stat category,
// refreshed from cfbstats leaderboards. RankLabel is the full display
// string shown on matchup cards.
type ZoneBadge struct {
	ID        int            `json:"id" db:"id"`
	TeamID    int            `json:"team_id" db:"team_id"`
	SeasonID  int            `json:"season_id" db:"season_id"`
	Category  string         `json:"category" db:"category"`
	Rank      int            `json:"rank" db:"rank"`
	RankLabel string         `json:"rank_label" db:"rank_label"`
	Value     sql.NullString `json:"value,omitempty" db:"value"`
	FetchedAt time.Time      `json:"fetched_at" db:"fetched_at"`
}
