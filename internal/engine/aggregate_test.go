package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

func TestExplosivePlayThresholds(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "ASU20", "B.Skattebo rush for 15 yards", rush(15)),
		rec("ASU", 1, "ASU35", "B.Skattebo rush for 14 yards", rush(14)),
		rec("ASU", 1, "ASU49", "W.Hammond pass complete for 20 yards", pass(20)),
		rec("ASU", 1, "COLO31", "W.Hammond pass complete for 19 yards", pass(19)),
		rec("ASU", 1, "COLO12", "W.Hammond pass complete for 25 yards. NO PLAY.", pass(25), noPlay(), penalty("Holding", true)),
		rec("ASU", 1, "COLO22", "K.Macdonald punt", kick(), down(4, 2)),
	})

	agg := res.Aggregates["ASU"]
	assert.Equal(t, 1, agg.ExplosiveRushes)
	assert.Equal(t, 1, agg.ExplosivePasses)
}

func TestFourthDownGoForItOnly(t *testing.T) {
	res := processOne(t, []engine.Record{
		// Converted fourth-down rush.
		rec("ASU", 1, "ASU40", "B.Skattebo rush for 5 yards", rush(5), down(4, 2)),
		// Failed fourth-down pass.
		rec("ASU", 1, "ASU45", "W.Hammond pass incomplete", pass(0), down(4, 6)),
		// Punts and field-goal attempts on fourth down are not attempts.
		rec("COLO", 2, "COLO20", "B.Kelly punt 40 yards", kick(), down(4, 8)),
		rec("ASU", 2, "COLO25", "I.Vellano 42 yard FIELD GOAL MISSED", kick(), down(4, 5)),
	})

	agg := res.Aggregates["ASU"]
	assert.Equal(t, 2, agg.FourthDownAttempts)
	assert.Equal(t, 1, agg.FourthDownConversions)
	assert.Zero(t, res.Aggregates["COLO"].FourthDownAttempts)
}

func TestPenaltyBreakdown(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "ASU30", "B.Skattebo rush for 8 yards. PENALTY ASU Holding declined.", rush(8), penalty("Holding", false)),
		rec("ASU", 1, "ASU38", "W.Hammond pass for 12 yards. PENALTY ASU Holding 10 yards. NO PLAY.", pass(12), noPlay(), penalty("Holding", true)),
		rec("ASU", 1, "ASU28", "B.Skattebo rush for 1 yard. PENALTY COLO Offside declined.", rush(1), penalty("Offside", false)),
		rec("ASU", 1, "ASU29", "K.Macdonald punt", kick(), down(4, 9)),
	})

	breakdown := res.Aggregates["ASU"].PenaltyBreakdown
	require.Contains(t, breakdown, "Holding")
	assert.Equal(t, 1, breakdown["Holding"].Accepted)
	assert.Equal(t, 1, breakdown["Holding"].Declined)
	require.Contains(t, breakdown, "Offside")
	assert.Equal(t, 1, breakdown["Offside"].Declined)
}

func TestUnclassifiablePlaysAreCountedNotFatal(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "??", "B.Skattebo rush for 5 yards", rush(5)),
		rec("ASU", 1, "ASU30", "K.Macdonald punt", kick(), down(4, 5)),
	})

	agg := res.Aggregates["ASU"]
	assert.Equal(t, 1, agg.UnclassifiedPlays)
	// The drive opened on the unparseable spot, so it produces no trips.
	assert.Zero(t, agg.GreenZoneTrips)
}

func TestSumSeason(t *testing.T) {
	g1 := &engine.GameAggregate{
		Team: "ASU", Opponent: "COLO",
		RedZoneTrips: 4, RedZoneTDs: 3, RedZoneFGs: 1,
		ExplosiveRushes: 2, ExplosivePasses: 3,
		FourthDownAttempts: 2, FourthDownConversions: 1,
		PointsOffTurnovers: 10,
		PenaltyBreakdown:   map[string]*engine.PenaltyLine{"Holding": {Accepted: 2}},
	}
	g2 := &engine.GameAggregate{
		Team: "ASU", Opponent: "TTU",
		RedZoneTrips: 2, RedZoneTDs: 1, RedZoneFailed: 1,
		ExplosiveRushes: 1,
		PointsOffTurnovers: 3,
		PenaltyBreakdown:   map[string]*engine.PenaltyLine{"Holding": {Declined: 1}, "Offside": {Accepted: 1}},
	}
	other := &engine.GameAggregate{Team: "COLO", RedZoneTrips: 9}

	season := engine.SumSeason("ASU", []*engine.GameAggregate{g1, g2, other})

	assert.Equal(t, 2, season.Games)
	assert.Equal(t, 6, season.RedZoneTrips)
	assert.Equal(t, 4, season.RedZoneTDs)
	assert.Equal(t, 13, season.PointsOffTurnovers)

	require.True(t, season.RedZoneTDPct.Valid)
	assert.InDelta(t, 4.0/6.0, season.RedZoneTDPct.Float64, 1e-9)
	require.True(t, season.RedZoneScorePct.Valid)
	assert.InDelta(t, 5.0/6.0, season.RedZoneScorePct.Float64, 1e-9)
	require.True(t, season.FourthDownPct.Valid)
	assert.InDelta(t, 0.5, season.FourthDownPct.Float64, 1e-9)

	assert.Equal(t, 2, season.PenaltyBreakdown["Holding"].Accepted)
	assert.Equal(t, 1, season.PenaltyBreakdown["Holding"].Declined)
	assert.Equal(t, 1, season.PenaltyBreakdown["Offside"].Accepted)
}

func TestSumSeasonNoDataRates(t *testing.T) {
	season := engine.SumSeason("ASU", nil)

	assert.Zero(t, season.Games)
	assert.False(t, season.RedZoneTDPct.Valid)
	assert.False(t, season.FourthDownPct.Valid)
	assert.False(t, season.ExplosivesPerGame.Valid)
}

// Summing is derived, never accumulated in place: the inputs must be
// untouched and a re-sum must match exactly.
func TestSumSeasonIsPureAndRepeatable(t *testing.T) {
	g := &engine.GameAggregate{
		Team: "ASU", RedZoneTrips: 3, RedZoneTDs: 2, RedZoneFGs: 1,
		PenaltyBreakdown: map[string]*engine.PenaltyLine{"Holding": {Accepted: 1}},
	}
	games := []*engine.GameAggregate{g}

	first := engine.SumSeason("ASU", games)
	second := engine.SumSeason("ASU", games)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, g.RedZoneTrips)
	assert.Equal(t, 1, g.PenaltyBreakdown["Holding"].Accepted)
}
