package teams

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/store"
)

func testTeams() []*store.Team {
	return []*store.Team{
		{
			TeamID:       1,
			Abbreviation: "ASU",
			FullName:     "Arizona State Sun Devils",
			ShortName:    sql.NullString{String: "Arizona State", Valid: true},
			Aliases:      []string{"arizona st."},
		},
		{
			TeamID:       2,
			Abbreviation: "COLO",
			FullName:     "Colorado Buffaloes",
			ShortName:    sql.NullString{String: "Colorado", Valid: true},
		},
		{
			TeamID:       3,
			Abbreviation: "TTU",
			FullName:     "Texas Tech Red Raiders",
		},
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Texas A&M", "texas aandm"},
		{"Arizona St.", "arizona st"},
		{"  Iowa  State ", "iowa state"},
		{"TCU", "tcu"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), tt.in)
	}
}

func TestMatcherByAbbreviation(t *testing.T) {
	m := NewMatcher(testTeams())

	team, ok := m.Match("asu")
	require.True(t, ok)
	assert.Equal(t, 1, team.TeamID)

	team, ok = m.Match(" COLO ")
	require.True(t, ok)
	assert.Equal(t, 2, team.TeamID)
}

func TestMatcherByNameAndAlias(t *testing.T) {
	m := NewMatcher(testTeams())

	tests := []struct {
		name string
		want string
	}{
		{"Arizona State Sun Devils", "ASU"},
		{"Arizona State", "ASU"},
		{"arizona st.", "ASU"},
		{"Texas Tech Red Raiders", "TTU"},
		{"Texas Tech", "TTU"}, // built-in alias
		{"Colorado", "COLO"},
	}

	for _, tt := range tests {
		abbr, ok := m.MatchAbbreviation(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.want, abbr, tt.name)
	}
}

func TestMatcherUnknownTeam(t *testing.T) {
	m := NewMatcher(testTeams())

	_, ok := m.Match("Slippery Rock")
	assert.False(t, ok)
	_, ok = m.Match("")
	assert.False(t, ok)
}
