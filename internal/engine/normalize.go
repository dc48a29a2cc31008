package engine

import (
	"strconv"
	"strings"
)

// Penalty flag vocabulary emitted by the PBP parser.
const (
	flagNoPlay     = "no_play"
	flagOverturned = "overturned"

	acceptedPrefix = "accepted:"
	declinedPrefix = "declined:"
)

// Clauses that introduce the final ruling after a replay review. When a play
// is overturned, only the text after the last such clause describes what
// actually stood.
var reviewMarkers = []string{
	"UPON REVIEW,",
	"UPON REVIEW",
	"AFTER REVIEW,",
	"AFTER REVIEW",
	"RULING REVERSED:",
}

// NormalizePlay resolves one parser record into its canonical Play form.
// Normalization never fails: malformed fields degrade to sentinel values so
// that a single bad record cannot abort game processing.
func NormalizePlay(rec Record) Play {
	overturned := hasFlag(rec.ReviewFlags, flagOverturned)

	play := Play{
		Team:             strings.ToUpper(strings.TrimSpace(rec.Team)),
		Quarter:          rec.Quarter,
		Clock:            rec.Clock,
		Down:             rec.Down,
		Distance:         rec.Distance,
		Type:             normalizePlayType(rec.PlayType),
		YardsGained:      rec.YardsGained,
		Scoring:          rec.ScoringFlag,
		TurnoverRaw:      rec.TurnoverFlag,
		ReviewOverturned: overturned,
		RawText:          rec.RawText,
	}

	play.EffectiveText = effectiveText(rec.RawText, overturned)
	play.Penalties = parsePenalties(rec.PenaltyFlags)
	play.Negated = isNegated(rec.PenaltyFlags, play.EffectiveText)
	play.YardsToGoal = ParseYardsToGoal(rec.Spot, play.Team)

	// An overturned ruling can erase the original scoring or turnover
	// effect. Reclassify both from the effective description only.
	if overturned {
		upper := strings.ToUpper(play.EffectiveText)
		play.Scoring = play.Scoring && containsScoringPhrase(upper)
		play.TurnoverRaw = play.TurnoverRaw && containsTurnoverPhrase(upper)
	}

	return play
}

// effectiveText strips the description of an overturned original ruling,
// keeping only the clause describing the final ruling. If no review marker
// is found the full text is used as-is.
func effectiveText(raw string, overturned bool) string {
	text := strings.TrimSpace(raw)
	if !overturned || text == "" {
		return text
	}

	upper := strings.ToUpper(text)
	cut := -1
	cutLen := 0
	for _, marker := range reviewMarkers {
		if idx := strings.LastIndex(upper, marker); idx > cut {
			cut = idx
			cutLen = len(marker)
		}
	}
	if cut < 0 {
		return text
	}

	final := strings.TrimSpace(text[cut+cutLen:])
	if final == "" {
		return text
	}
	return final
}

// isNegated reports whether an accepted penalty voided the play. The parser
// flags this explicitly; the NO PLAY annotation in the effective text is the
// fallback for older exports.
func isNegated(penaltyFlags []string, effective string) bool {
	if hasFlag(penaltyFlags, flagNoPlay) {
		return true
	}
	return strings.Contains(strings.ToUpper(effective), "NO PLAY")
}

// parsePenalties extracts the accepted/declined penalty list from the
// parser's flag vocabulary ("accepted:Holding", "declined:Offside").
func parsePenalties(flags []string) []Penalty {
	var penalties []Penalty
	for _, flag := range flags {
		switch {
		case strings.HasPrefix(flag, acceptedPrefix):
			penalties = append(penalties, Penalty{Type: flag[len(acceptedPrefix):], Accepted: true})
		case strings.HasPrefix(flag, declinedPrefix):
			penalties = append(penalties, Penalty{Type: flag[len(declinedPrefix):], Accepted: false})
		}
	}
	return penalties
}

// ParseYardsToGoal resolves positional spot notation to yards-to-goal for
// the offense (0-99, 0 = opponent goal line). Supported forms are the bare
// midfield "50" and team-relative yard lines such as "ASU35" or "COLO 22":
// the offense's own side maps to 100-line, the opponent's side to the line
// itself. Anything unparseable yields UnknownYardsToGoal, never an error.
func ParseYardsToGoal(spot, offense string) int {
	s := strings.ToUpper(strings.TrimSpace(spot))
	if s == "" {
		return UnknownYardsToGoal
	}
	if s == "50" {
		return 50
	}

	// Split into side prefix and yard-line suffix.
	split := len(s)
	for i, r := range s {
		if r >= '0' && r <= '9' {
			split = i
			break
		}
	}
	side := strings.TrimSpace(s[:split])
	digits := strings.TrimSpace(s[split:])
	if side == "" || digits == "" {
		return UnknownYardsToGoal
	}

	line, err := strconv.Atoi(digits)
	if err != nil || line < 1 || line > 50 {
		return UnknownYardsToGoal
	}

	if side == strings.ToUpper(offense) {
		return 100 - line
	}
	return line
}

func normalizePlayType(raw string) PlayType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "rush", "run":
		return PlayRush
	case "pass":
		return PlayPass
	case "kick", "punt", "kickoff", "field_goal":
		return PlayKick
	case "penalty":
		return PlayPenalty
	default:
		return PlayOther
	}
}

func containsScoringPhrase(upper string) bool {
	return strings.Contains(upper, "TOUCHDOWN") ||
		strings.Contains(upper, "FIELD GOAL") && strings.Contains(upper, "GOOD") ||
		strings.Contains(upper, "SAFETY")
}

func containsTurnoverPhrase(upper string) bool {
	return strings.Contains(upper, "INTERCEPT") || strings.Contains(upper, "FUMBLE")
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}
