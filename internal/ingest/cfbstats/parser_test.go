package cfbstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const leaderboardHTML = `
<html><body>
<table class="nav"><tr><td>Home</td><td>Leaders</td></tr></table>
<table class="leaders">
  <tr><th>Rank</th><th>Team</th><th>G</th><th>Attempts</th><th>TD %</th></tr>
  <tr><td>1</td><td>Texas Tech</td><td>12</td><td>48</td><td>75.00%</td></tr>
  <tr><td>2</td><td>Arizona State</td><td>12</td><td>52</td><td>71.43%</td></tr>
  <tr><td>T3</td><td>Colorado</td><td>12</td><td>44</td><td>65.91%</td></tr>
</table>
</body></html>`

func TestParseLeaderboard(t *testing.T) {
	doc, err := ParseHTML(leaderboardHTML)
	require.NoError(t, err)

	board, err := ParseLeaderboard(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rank", "Team", "G", "Attempts", "TD %"}, board.Headers)
	require.Len(t, board.Rows, 3)
	assert.Equal(t, "Arizona State", board.Rows[1]["Team"])
	assert.Equal(t, "71.43%", board.Rows[1]["TD %"])
}

func TestParseLeaderboardNoTable(t *testing.T) {
	doc, err := ParseHTML(`<html><body><p>maintenance</p></body></html>`)
	require.NoError(t, err)

	_, err = ParseLeaderboard(doc)
	assert.Error(t, err)
}

func TestFindColumn(t *testing.T) {
	headers := []string{"Rank", "Team", "Red Zone TD %"}

	col, ok := FindColumn(headers, "TD %", "TD%")
	require.True(t, ok)
	assert.Equal(t, "Red Zone TD %", col)

	col, ok = FindColumn(headers, "Rk", "Rank")
	require.True(t, ok)
	assert.Equal(t, "Rank", col)

	_, ok = FindColumn(headers, "Yards")
	assert.False(t, ok)
}

func TestParsePercentAndRank(t *testing.T) {
	pct, ok := ParsePercent("71.43%")
	require.True(t, ok)
	assert.InDelta(t, 71.43, pct, 1e-9)

	_, ok = ParsePercent("  ")
	assert.False(t, ok)

	rank, ok := ParseRank("T3")
	require.True(t, ok)
	assert.Equal(t, 3, rank)

	_, ok = ParseRank("-")
	assert.False(t, ok)
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 102: "102nd", 111: "111th",
	}
	for value, want := range tests {
		assert.Equal(t, want, Ordinal(value), "%d", value)
	}
}
