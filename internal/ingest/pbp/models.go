package pbp

import (
	"time"

	"github.com/fortuna/gridiron/internal/engine"
)

// Export is one game as written by the external play-by-play parser:
// a header plus the ordered play stream.
type Export struct {
	GameID    string          `json:"game_id"`
	Season    string          `json:"season"`
	Date      time.Time       `json:"date"`
	HomeTeam  TeamHeader      `json:"home_team"`
	AwayTeam  TeamHeader      `json:"away_team"`
	Venue     string          `json:"venue,omitempty"`
	Plays     []engine.Record `json:"plays"`
	Generated time.Time       `json:"generated_at"`
}

// TeamHeader identifies one side of an exported game.
type TeamHeader struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Score        int    `json:"score"`
	Record       string `json:"record,omitempty"`
}
