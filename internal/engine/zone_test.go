package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

func TestClassifyTripsByStartingPositionOnly(t *testing.T) {
	tests := []struct {
		name      string
		startYTG  int
		outcome   engine.DriveOutcome
		wantZones []engine.Zone
	}{
		{"outside every zone", 47, engine.OutcomeTD, nil},
		{"green zone only", 23, engine.OutcomeTD, []engine.Zone{engine.ZoneGreen}},
		{"green and red", 15, engine.OutcomeMissedFG, []engine.Zone{engine.ZoneGreen, engine.ZoneRed}},
		{"all three zones", 8, engine.OutcomeFG, []engine.Zone{engine.ZoneGreen, engine.ZoneRed, engine.ZoneTightRed}},
		{"exactly on the green threshold", 30, engine.OutcomePunt, []engine.Zone{engine.ZoneGreen}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &engine.Drive{Offense: "ASU", StartYardsToGoal: tt.startYTG, Outcome: tt.outcome}
			trips := engine.ClassifyTrips(d)

			var zones []engine.Zone
			for _, trip := range trips {
				zones = append(zones, trip.Zone)
			}
			assert.Equal(t, tt.wantZones, zones)
		})
	}
}

func TestClassifyTripsUnknownStartIsNotClassifiable(t *testing.T) {
	d := &engine.Drive{Offense: "ASU", StartYardsToGoal: engine.UnknownYardsToGoal, Outcome: engine.OutcomeTD}
	assert.Empty(t, engine.ClassifyTrips(d))
}

// A drive that travels the length of the field and scores from close range
// must not count as a zone trip; only the starting spot matters.
func TestLongTouchdownDriveIsNoTrip(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "ASU20", "B.Skattebo rush for 72 yards", rush(72)),
		rec("ASU", 1, "COLO8", "B.Skattebo rush 8 yards for a TOUCHDOWN", rush(8), scoring()),
	})

	agg := res.Aggregates["ASU"]
	assert.Zero(t, agg.GreenZoneTrips)
	assert.Zero(t, agg.RedZoneTrips)
	assert.Zero(t, agg.TightRedZoneTrips)
}

// Spec property: a punt from inside the red zone increments trips but must
// never land in the failed bucket.
func TestPuntInsideRedZoneIsUnresolvedNotFailed(t *testing.T) {
	res := processOne(t, []engine.Record{
		rec("ASU", 1, "COLO18", "B.Skattebo rush for 1 yard", rush(1)),
		rec("ASU", 1, "COLO17", "K.Macdonald punt 17 yards to the COLO0", kick(), down(4, 9)),
	})

	agg := res.Aggregates["ASU"]
	assert.Equal(t, 1, agg.RedZoneTrips)
	assert.Zero(t, agg.RedZoneFailed)
	assert.Zero(t, agg.RedZoneTDs)
	assert.Zero(t, agg.RedZoneFGs)
	assert.Equal(t, 1, agg.RedZoneUnresolved)
	assert.Empty(t, res.ValidationErrors)
}

func TestZoneAccountingInvariant(t *testing.T) {
	records := []engine.Record{
		// Red zone TD.
		rec("ASU", 1, "COLO15", "B.Skattebo rush 15 yards for a TOUCHDOWN", rush(15), scoring()),
		rec("ASU", 1, "COLO3", "I.Vellano kick attempt GOOD", kick()),
		// Opponent possession between ASU drives.
		rec("COLO", 1, "COLO30", "M.Sanders rush for 2 yards", rush(2)),
		rec("COLO", 1, "COLO32", "B.Kelly punt 40 yards", kick(), down(4, 8)),
		// Tight red zone interception.
		rec("ASU", 2, "COLO9", "W.Hammond pass INTERCEPTED by T.McGee", pass(0), turnover()),
		// Opponent again.
		rec("COLO", 2, "COLO20", "M.Sanders rush for 1 yard", rush(1)),
		rec("COLO", 2, "COLO21", "B.Kelly punt 35 yards", kick(), down(4, 9)),
		// Green zone missed field goal.
		rec("ASU", 4, "COLO28", "B.Skattebo rush for 3 yards", rush(3)),
		rec("ASU", 4, "COLO25", "I.Vellano 42 yard FIELD GOAL MISSED", kick(), down(4, 7)),
	}

	res := processOne(t, records)
	agg := res.Aggregates["ASU"]

	require.Empty(t, res.ValidationErrors)

	assert.Equal(t, 3, agg.GreenZoneTrips)
	assert.Equal(t, agg.GreenZoneTrips,
		agg.GreenZoneTDs+agg.GreenZoneFGs+agg.GreenZoneFailed+agg.GreenZoneUnresolved)

	assert.Equal(t, 2, agg.RedZoneTrips)
	assert.Equal(t, 1, agg.RedZoneTDs)
	assert.Equal(t, 1, agg.RedZoneFailed)

	assert.Equal(t, 1, agg.TightRedZoneTrips)
	assert.Equal(t, 1, agg.TightRedZoneFailed)
}

func TestRedZonePlayDetailOnlyForRedZoneTrips(t *testing.T) {
	res := processOne(t, []engine.Record{
		// Green-zone-only drive: summary counters, no play detail.
		rec("ASU", 1, "COLO28", "B.Skattebo rush for 4 yards", rush(4)),
		rec("ASU", 1, "COLO24", "K.Macdonald punt", kick(), down(4, 6)),
		// Red zone drive: full play detail.
		rec("COLO", 1, "ASU12", "M.Sanders rush for 5 yards", rush(5)),
		rec("COLO", 1, "ASU7", "M.Sanders rush 7 yards for a TOUCHDOWN", rush(7), scoring()),
	})

	assert.Empty(t, res.Aggregates["ASU"].RedZonePlays)

	coloPlays := res.Aggregates["COLO"].RedZonePlays
	require.Len(t, coloPlays, 2)
	assert.Equal(t, "ASU", coloPlays[0].Opponent)
	assert.Equal(t, 12, coloPlays[0].YardsToGoal)
	assert.True(t, coloPlays[1].Scoring)
}
