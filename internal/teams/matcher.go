package teams

import (
	"regexp"
	"strings"

	"github.com/fortuna/gridiron/internal/store"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName collapses a team name into a comparable slug: lowercase,
// "&" spelled out, punctuation folded to single spaces.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	cleaned := strings.ToLower(name)
	cleaned = strings.ReplaceAll(cleaned, "&", "and")
	cleaned = nonAlnum.ReplaceAllString(cleaned, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}

// defaultAliases maps common shorthand seen in exports and leaderboards to
// canonical abbreviations, beyond what the teams table carries.
var defaultAliases = map[string]string{
	"arizona st":      "ASU",
	"arizona state":   "ASU",
	"colo":            "COLO",
	"colorado":        "COLO",
	"ttu":             "TTU",
	"texas tech":      "TTU",
	"isu":             "ISU",
	"iowa st":         "ISU",
	"iowa state":      "ISU",
	"k state":         "KSU",
	"kansas st":       "KSU",
	"kansas state":    "KSU",
	"brigham young":   "BYU",
	"texas christian": "TCU",
}

// Matcher resolves free-form team names and abbreviations from exports and
// scraped leaderboards to canonical teams.
type Matcher struct {
	byAbbr map[string]*store.Team
	bySlug map[string]*store.Team
}

// NewMatcher builds a matcher from the stored team list. Aliases from the
// teams table and the built-in defaults are folded into the lookup.
func NewMatcher(teams []*store.Team) *Matcher {
	m := &Matcher{
		byAbbr: make(map[string]*store.Team),
		bySlug: make(map[string]*store.Team),
	}

	for _, team := range teams {
		m.byAbbr[strings.ToUpper(team.Abbreviation)] = team
		m.bySlug[NormalizeName(team.FullName)] = team
		if team.ShortName.Valid {
			m.bySlug[NormalizeName(team.ShortName.String)] = team
		}
		for _, alias := range team.Aliases {
			m.bySlug[NormalizeName(alias)] = team
		}
	}

	// Built-in aliases never override what the table declares.
	for alias, abbr := range defaultAliases {
		team, ok := m.byAbbr[abbr]
		if !ok {
			continue
		}
		slug := NormalizeName(alias)
		if _, exists := m.bySlug[slug]; !exists {
			m.bySlug[slug] = team
		}
	}

	return m
}

// Match resolves a name or abbreviation to a team. Abbreviation lookup is
// tried first since exports identify offenses by abbreviation.
func (m *Matcher) Match(name string) (*store.Team, bool) {
	if name == "" {
		return nil, false
	}

	if team, ok := m.byAbbr[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return team, true
	}

	if team, ok := m.bySlug[NormalizeName(name)]; ok {
		return team, true
	}

	return nil, false
}

// MatchAbbreviation resolves a name to its canonical abbreviation.
func (m *Matcher) MatchAbbreviation(name string) (string, bool) {
	team, ok := m.Match(name)
	if !ok {
		return "", false
	}
	return team.Abbreviation, true
}
