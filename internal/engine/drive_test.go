package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

func segment(records []engine.Record) []engine.Drive {
	plays := make([]engine.Play, 0, len(records))
	for _, r := range records {
		plays = append(plays, engine.NormalizePlay(r))
	}
	return engine.SegmentDrives(plays)
}

func TestSegmentDrivesPossessionChange(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 1, "ASU25", "B.Skattebo rush for 3 yards", rush(3)),
		rec("ASU", 1, "ASU28", "W.Hammond pass incomplete", pass(0), down(2, 7)),
		rec("ASU", 1, "ASU28", "K.Macdonald punt 41 yards to the COLO31", kick(), down(4, 7)),
		rec("COLO", 1, "COLO31", "M.Sanders rush for 6 yards", rush(6)),
		rec("COLO", 1, "COLO37", "M.Sanders rush for 2 yards", rush(2), down(2, 4)),
	})

	require.Len(t, drives, 2)
	assert.Equal(t, "ASU", drives[0].Offense)
	assert.Equal(t, engine.OutcomePunt, drives[0].Outcome)
	assert.Equal(t, 75, drives[0].StartYardsToGoal)
	assert.Len(t, drives[0].Plays, 3)

	assert.Equal(t, "COLO", drives[1].Offense)
	assert.Equal(t, 69, drives[1].StartYardsToGoal)
}

func TestSegmentDrivesKickoffIsNotAPossessionBoundary(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 1, "ASU35", "J.Fernandez KICKOFF 61 yards, returned 22 yards to the COLO26", kick()),
		rec("COLO", 1, "COLO26", "M.Sanders rush for 5 yards", rush(5)),
		rec("COLO", 1, "COLO31", "R.Staub pass incomplete", pass(0), down(2, 5)),
	})

	// Possession changes at the first offensive snap; the kickoff rides
	// along and the drive starts from the snap's field position.
	require.Len(t, drives, 1)
	assert.Equal(t, "COLO", drives[0].Offense)
	assert.Equal(t, 74, drives[0].StartYardsToGoal)
	assert.Len(t, drives[0].Plays, 3)
}

func TestSegmentDrivesNegatedPlaysNeverSplit(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 1, "ASU40", "B.Skattebo rush for 2 yards", rush(2)),
		rec("ASU", 1, "ASU42", "W.Hammond pass complete for 30 yards. NO PLAY.", pass(30), noPlay(), penalty("Holding", true)),
		rec("ASU", 1, "ASU32", "W.Hammond pass complete for 11 yards", pass(11), down(1, 20)),
		rec("ASU", 1, "ASU43", "K.Macdonald punt 38 yards", kick(), down(4, 9)),
	})

	require.Len(t, drives, 1)
	assert.Len(t, drives[0].Plays, 4)
	assert.Equal(t, engine.OutcomePunt, drives[0].Outcome)
}

func TestSegmentDrivesOutcomes(t *testing.T) {
	tests := []struct {
		name string
		rec  engine.Record
		want engine.DriveOutcome
	}{
		{
			"touchdown",
			rec("ASU", 1, "COLO8", "B.Skattebo rush 8 yards for a TOUCHDOWN", rush(8), scoring()),
			engine.OutcomeTD,
		},
		{
			"made field goal",
			rec("ASU", 2, "COLO20", "I.Vellano 37 yard FIELD GOAL GOOD", kick(), down(4, 6), scoring()),
			engine.OutcomeFG,
		},
		{
			"missed field goal",
			rec("ASU", 2, "COLO25", "I.Vellano 42 yard FIELD GOAL MISSED wide left", kick(), down(4, 8)),
			engine.OutcomeMissedFG,
		},
		{
			"no good field goal",
			rec("ASU", 2, "COLO25", "I.Vellano 42 yard FIELD GOAL attempt NO GOOD", kick(), down(4, 8)),
			engine.OutcomeMissedFG,
		},
		{
			"punt",
			rec("ASU", 1, "ASU30", "K.Macdonald punt 44 yards to the COLO26", kick(), down(4, 9)),
			engine.OutcomePunt,
		},
		{
			"turnover on downs",
			rec("ASU", 4, "COLO40", "B.Skattebo rush for 1 yard", rush(1), down(4, 3)),
			engine.OutcomeDowns,
		},
		{
			"interception",
			rec("ASU", 3, "ASU45", "W.Hammond pass INTERCEPTED by T.McGee at the COLO48", pass(0), turnover()),
			engine.OutcomeTurnoverINT,
		},
		{
			"safety",
			rec("ASU", 2, "ASU2", "B.Skattebo tackled in the end zone, SAFETY", rush(-2)),
			engine.OutcomeSafety,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := rec("ASU", tt.rec.Quarter, "ASU25", "B.Skattebo rush for 2 yards", rush(2))
			drives := segment([]engine.Record{lead, tt.rec})
			require.Len(t, drives, 1)
			assert.Equal(t, tt.want, drives[0].Outcome)
		})
	}
}

func TestSegmentDrivesFumbleKeptByOffense(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 1, "ASU30", "B.Skattebo rush, FUMBLES, recovered by ASU at the ASU28", rush(-2), turnover()),
		rec("ASU", 1, "ASU28", "W.Hammond pass complete for 9 yards", pass(9), down(2, 12)),
		rec("ASU", 1, "ASU37", "K.Macdonald punt 40 yards", kick(), down(4, 3)),
	})

	require.Len(t, drives, 1)
	assert.Equal(t, engine.OutcomePunt, drives[0].Outcome)
}

func TestSegmentDrivesFumbleLost(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 1, "ASU30", "B.Skattebo rush, FUMBLES, recovered by COLO at the ASU28", rush(-2), turnover()),
		rec("COLO", 1, "ASU28", "M.Sanders rush for 4 yards", rush(4)),
	})

	require.Len(t, drives, 2)
	assert.Equal(t, engine.OutcomeTurnoverFUM, drives[0].Outcome)
	assert.Equal(t, "COLO", drives[1].Offense)
}

func TestSegmentDrivesHalfBoundary(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 2, "ASU20", "B.Skattebo rush for 6 yards", rush(6)),
		rec("ASU", 2, "ASU26", "W.Hammond kneels down", rush(-1), down(2, 4)),
		rec("COLO", 3, "COLO25", "M.Sanders rush for 3 yards", rush(3)),
		rec("COLO", 3, "COLO28", "R.Staub pass incomplete", pass(0), down(2, 7)),
	})

	require.Len(t, drives, 2)
	assert.Equal(t, engine.OutcomeEndOfHalf, drives[0].Outcome)
	assert.Equal(t, engine.OutcomeIncomplete, drives[1].Outcome)
}

func TestSegmentDrivesEndOfGame(t *testing.T) {
	drives := segment([]engine.Record{
		rec("ASU", 4, "ASU40", "W.Hammond kneels down", rush(-1)),
		rec("ASU", 4, "ASU39", "W.Hammond kneels down", rush(-1), down(2, 11)),
	})

	require.Len(t, drives, 1)
	assert.Equal(t, engine.OutcomeEndOfGame, drives[0].Outcome)
}

func TestSegmentDrivesTruncationIsIncomplete(t *testing.T) {
	// A stream that stops mid second quarter has no recognizable terminal
	// event; the drive is surfaced as Incomplete, not guessed.
	drives := segment([]engine.Record{
		rec("ASU", 2, "ASU40", "B.Skattebo rush for 5 yards", rush(5)),
	})

	require.Len(t, drives, 1)
	assert.Equal(t, engine.OutcomeIncomplete, drives[0].Outcome)
}

func TestSegmentDrivesDefensiveReturnScoreStaysTurnover(t *testing.T) {
	r := rec("ASU", 3, "ASU45", "W.Hammond pass INTERCEPTED by T.McGee, returned 52 yards for a TOUCHDOWN", pass(0), turnover())
	r.ScoringFlag = true

	drives := segment([]engine.Record{r})

	require.Len(t, drives, 1)
	assert.Equal(t, engine.OutcomeTurnoverINT, drives[0].Outcome)
}
