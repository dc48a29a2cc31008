package pbp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

const sampleExport = `{
	"game_id": "2025-09-06-colo-asu",
	"season": "2025",
	"date": "2025-09-06T19:00:00Z",
	"home_team": {"name": "Arizona State Sun Devils", "abbreviation": "ASU", "score": 27, "record": "2-0"},
	"away_team": {"name": "Colorado Buffaloes", "abbreviation": "COLO", "score": 17, "record": "1-1"},
	"venue": "Mountain America Stadium",
	"plays": [
		{"team": "COLO", "quarter": 1, "clock": "15:00", "down": 1, "distance": 10,
		 "spot": "COLO25", "play_type": "rush", "yards_gained": 4,
		 "raw_text": "M.Sanders rush for 4 yards"},
		{"team": "COLO", "quarter": 1, "clock": "14:21", "down": 2, "distance": 6,
		 "spot": "COLO29", "play_type": "pass", "yards_gained": 0, "turnover_flag": true,
		 "raw_text": "R.Staub pass INTERCEPTED by X.Ross at the COLO41"}
	],
	"generated_at": "2025-09-07T02:10:00Z"
}`

func writeExport(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExport(t *testing.T) {
	dir := t.TempDir()
	path := writeExport(t, dir, "game.json", sampleExport)

	export, err := LoadExport(path)
	require.NoError(t, err)

	assert.Equal(t, "2025-09-06-colo-asu", export.GameID)
	assert.Equal(t, "ASU", export.HomeTeam.Abbreviation)
	assert.Equal(t, 27, export.HomeTeam.Score)
	assert.Equal(t, "COLO", export.AwayTeam.Abbreviation)
	assert.Equal(t, time.Date(2025, 9, 6, 19, 0, 0, 0, time.UTC), export.Date)

	require.Len(t, export.Plays, 2)
	assert.Equal(t, "rush", export.Plays[0].PlayType)
	assert.True(t, export.Plays[1].TurnoverFlag)
}

func TestLoadExportRejectsBadHeaders(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"missing game id", `{"home_team":{"abbreviation":"ASU"},"away_team":{"abbreviation":"COLO"},"plays":[{"team":"ASU"}]}`},
		{"same team twice", `{"game_id":"g","home_team":{"abbreviation":"ASU"},"away_team":{"abbreviation":"asu"},"plays":[{"team":"ASU"}]}`},
		{"no plays", `{"game_id":"g","home_team":{"abbreviation":"ASU"},"away_team":{"abbreviation":"COLO"},"plays":[]}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeExport(t, dir, tt.name+".json", tt.content)
			_, err := LoadExport(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDirectorySkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, "b_good.json", sampleExport)
	writeExport(t, dir, "a_bad.json", `not json`)
	writeExport(t, dir, "notes.txt", `ignored`)

	exports, err := LoadDirectory(dir)
	require.NoError(t, err)

	require.Len(t, exports, 1)
	assert.Equal(t, "2025-09-06-colo-asu", exports[0].GameID)
}

func TestPlayRecordRoundTrip(t *testing.T) {
	records := []engine.Record{
		{
			Team: "ASU", Quarter: 2, Clock: "07:12", Down: 3, Distance: 4,
			Spot: "COLO38", PlayType: "pass", YardsGained: 12,
			PenaltyFlags: []string{"accepted:Holding"},
			ReviewFlags:  []string{"overturned"},
			RawText:      "W.Hammond pass complete for 12 yards",
		},
	}

	stored := toPlayRecords(7, records)
	require.Len(t, stored, 1)
	assert.Equal(t, 7, stored[0].GameID)
	assert.Equal(t, 0, stored[0].PlayIndex)
	assert.True(t, stored[0].Clock.Valid)

	back := toRecords(stored)
	require.Len(t, back, 1)
	assert.Equal(t, records[0], back[0])
}
