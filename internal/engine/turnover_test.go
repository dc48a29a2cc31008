package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

func TestNegatedTurnoverProducesNothing(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "ASU40", "B.Skattebo rush for 2 yards", rush(2)),
		rec("ASU", 1, "ASU42",
			"W.Hammond pass INTERCEPTED by T.McGee. PENALTY COLO Roughing the Passer 15 yards. NO PLAY.",
			pass(0), turnover(), noPlay(), penalty("Roughing the Passer", true)),
		rec("ASU", 1, "COLO43", "B.Skattebo rush for 6 yards", rush(6)),
		rec("ASU", 1, "COLO37", "K.Macdonald punt", kick(), down(4, 4)),
	})

	assert.Empty(t, res.Events)
	assert.Empty(t, res.PostTurnoverDrives)
	assert.Zero(t, res.Aggregates["ASU"].TurnoversINT)
	assert.Zero(t, res.Aggregates["COLO"].TakeawaysINT)
}

func TestOverturnedFumbleDoesNotCountAsTurnover(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 2, "ASU35",
			"K.Anderson pass complete, FUMBLES, recovered by COLO. Upon review, pass incomplete.",
			pass(0), turnover(), overturned()),
		rec("ASU", 2, "ASU35", "B.Skattebo rush for 4 yards", rush(4), down(2, 10)),
		rec("ASU", 2, "ASU39", "K.Macdonald punt", kick(), down(4, 6)),
	})

	assert.Empty(t, res.Events)
	assert.Zero(t, res.Aggregates["ASU"].TurnoversFumble)
	assert.Zero(t, res.Aggregates["COLO"].TakeawaysFumble)
}

func TestLinkTurnoverToFollowingDrive(t *testing.T) {
	records := []engine.Record{
		rec("ASU", 1, "ASU40", "W.Hammond pass INTERCEPTED by T.McGee at the ASU35", pass(0), turnover()),
		rec("COLO", 1, "ASU35", "M.Sanders rush for 20 yards", rush(20)),
		rec("COLO", 1, "ASU15", "M.Sanders rush 15 yards for a TOUCHDOWN", rush(15), scoring()),
		rec("COLO", 1, "ASU3", "B.Kelly kick attempt GOOD", kick()),
	}

	res := processOne(t, records)

	require.Len(t, res.Events, 1)
	ev := res.Events[0]
	assert.Equal(t, engine.TurnoverINT, ev.Kind)
	assert.Equal(t, "ASU", ev.LostBy)
	assert.Equal(t, "COLO", ev.RecoveredBy)

	require.Len(t, res.PostTurnoverDrives, 1)
	ptd := res.PostTurnoverDrives[0]
	assert.Equal(t, "INT", ptd.TurnoverType)
	assert.Equal(t, string(engine.OutcomeTD), ptd.DriveResult)
	assert.Equal(t, 7, ptd.PointsScored)

	assert.Equal(t, 7, res.Aggregates["COLO"].PointsOffTurnovers)
	assert.Equal(t, 1, res.Aggregates["ASU"].TurnoversINT)
	assert.Equal(t, 1, res.Aggregates["COLO"].TakeawaysINT)
}

func TestTouchdownPointValues(t *testing.T) {
	tests := []struct {
		name    string
		tryText string
		want    int
	}{
		{"kick good", "B.Kelly kick attempt GOOD", 7},
		{"kick missed", "B.Kelly kick attempt FAILED wide right", 6},
		{"two point pass good", "R.Staub pass attempt SUCCESSFUL", 8},
		{"two point rush failed", "M.Sanders rush attempt FAILED", 6},
		{"try missing from stream", "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []engine.Record{
				rec("ASU", 1, "ASU40", "B.Skattebo FUMBLES, recovered by COLO at the ASU30", rush(0), turnover()),
				rec("COLO", 1, "ASU30", "M.Sanders rush 30 yards for a TOUCHDOWN", rush(30), scoring()),
			}
			if tt.tryText != "" {
				records = append(records, rec("COLO", 1, "ASU3", tt.tryText, kick()))
			}

			res := processOne(t, records)

			require.Len(t, res.PostTurnoverDrives, 1)
			assert.Equal(t, tt.want, res.PostTurnoverDrives[0].PointsScored)
		})
	}
}

func TestFieldGoalOffTurnoverScoresThree(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 3, "ASU25", "W.Hammond pass INTERCEPTED by T.McGee", pass(0), turnover()),
		rec("COLO", 3, "ASU22", "M.Sanders rush for 2 yards", rush(2)),
		rec("COLO", 3, "ASU20", "B.Kelly 37 yard FIELD GOAL GOOD", kick(), down(4, 8), scoring()),
	})

	require.Len(t, res.PostTurnoverDrives, 1)
	assert.Equal(t, 3, res.PostTurnoverDrives[0].PointsScored)
	assert.Equal(t, 3, res.Aggregates["COLO"].PointsOffTurnovers)
}

func TestOrphanedTurnoverIsExplicit(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 4, "ASU40", "B.Skattebo rush for 3 yards", rush(3)),
		rec("ASU", 4, "ASU43", "W.Hammond pass INTERCEPTED by T.McGee as time expires", pass(0), turnover()),
	})

	require.Len(t, res.PostTurnoverDrives, 1)
	ptd := res.PostTurnoverDrives[0]
	assert.Equal(t, engine.DriveResultNone, ptd.DriveResult)
	assert.Zero(t, ptd.PointsScored)
	assert.Equal(t, "COLO", ptd.RecoveredBy)
	assert.Zero(t, res.Aggregates["COLO"].PointsOffTurnovers)
}

func TestPointsOffTurnoversIdentity(t *testing.T) {
	records := []engine.Record{
		// ASU throws a pick, COLO cashes in a touchdown.
		rec("ASU", 1, "ASU40", "W.Hammond pass INTERCEPTED by T.McGee", pass(0), turnover()),
		rec("COLO", 1, "ASU30", "M.Sanders rush 30 yards for a TOUCHDOWN", rush(30), scoring()),
		rec("COLO", 1, "ASU3", "B.Kelly kick attempt GOOD", kick()),
		// COLO fumbles it right back, ASU settles for a field goal.
		rec("COLO", 2, "COLO25", "M.Sanders rush, FUMBLES, recovered by ASU at the COLO23", rush(0), turnover()),
		rec("ASU", 2, "COLO23", "B.Skattebo rush for 3 yards", rush(3)),
		rec("ASU", 2, "COLO20", "I.Vellano 37 yard FIELD GOAL GOOD", kick(), down(4, 7), scoring()),
	}

	res := processOne(t, records)
	require.Empty(t, res.ValidationErrors)

	for team, agg := range res.Aggregates {
		sum := 0
		for _, ptd := range res.PostTurnoverDrives {
			if ptd.RecoveredBy == team {
				sum += ptd.PointsScored
			}
		}
		assert.Equal(t, sum, agg.PointsOffTurnovers, "team %s", team)
	}

	assert.Equal(t, 7, res.Aggregates["COLO"].PointsOffTurnovers)
	assert.Equal(t, 3, res.Aggregates["ASU"].PointsOffTurnovers)
}
