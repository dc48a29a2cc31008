package engine

// PlayType classifies the snap category supplied by the PBP parser.
type PlayType string

const (
	PlayRush    PlayType = "rush"
	PlayPass    PlayType = "pass"
	PlayKick    PlayType = "kick"
	PlayPenalty PlayType = "penalty"
	PlayOther   PlayType = "other"
)

// UnknownYardsToGoal marks a play whose spot notation could not be resolved.
// Such plays are excluded from zone classification but kept for every other
// counter.
const UnknownYardsToGoal = -1

// Record is one play as delivered by the external PBP parser. The engine
// treats it as read-only, already-extracted input and never tokenizes the
// source document itself.
type Record struct {
	Team         string   `json:"team"`
	Quarter      int      `json:"quarter"`
	Clock        string   `json:"clock"`
	Down         int      `json:"down"`
	Distance     int      `json:"distance"`
	Spot         string   `json:"spot"`
	PlayType     string   `json:"play_type"`
	YardsGained  int      `json:"yards_gained"`
	ScoringFlag  bool     `json:"scoring_flag"`
	TurnoverFlag bool     `json:"turnover_flag"`
	PenaltyFlags []string `json:"penalty_flags,omitempty"`
	ReviewFlags  []string `json:"review_flags,omitempty"`
	RawText      string   `json:"raw_text"`
}

// Penalty is one accepted or declined penalty attached to a play.
type Penalty struct {
	Type     string `json:"type"`
	Accepted bool   `json:"accepted"`
}

// Play is the canonical normalized form of a Record. It is created once by
// NormalizePlay and immutable afterwards; downstream stages read
// EffectiveText and Negated instead of re-deriving them from the raw text.
type Play struct {
	Team             string
	Quarter          int
	Clock            string
	Down             int
	Distance         int
	YardsToGoal      int
	Type             PlayType
	YardsGained      int
	Scoring          bool
	TurnoverRaw      bool
	Negated          bool
	ReviewOverturned bool
	Penalties        []Penalty
	RawText          string
	EffectiveText    string
}
