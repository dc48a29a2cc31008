package engine

import "fmt"

// ValidateResult checks the structural invariants of a processed game.
// Violations indicate a defect upstream (normalizer or segmenter) and are
// surfaced to the operator as game-level validation failures, never patched
// downstream.
func ValidateResult(res *GameResult) []string {
	var errs []string

	for i := range res.Drives {
		d := &res.Drives[i]
		if d.Offense == "" {
			errs = append(errs, fmt.Sprintf("drive %d attributed to no offense", i))
		}
		if d.Outcome == "" {
			errs = append(errs, fmt.Sprintf("drive %d (%s) has no terminal outcome", i, d.Offense))
		}
	}

	for _, ev := range res.Events {
		if ev.Play.Negated {
			errs = append(errs, fmt.Sprintf("negated play still carries turnover effects: %q", ev.Play.EffectiveText))
		}
	}

	for team, agg := range res.Aggregates {
		errs = append(errs, validateAggregate(team, agg, res.PostTurnoverDrives)...)
	}

	return errs
}

func validateAggregate(team string, agg *GameAggregate, postTO []PostTurnoverDrive) []string {
	var errs []string

	zones := []struct {
		name                                string
		trips, tds, fgs, failed, unresolved int
	}{
		{"green", agg.GreenZoneTrips, agg.GreenZoneTDs, agg.GreenZoneFGs, agg.GreenZoneFailed, agg.GreenZoneUnresolved},
		{"red", agg.RedZoneTrips, agg.RedZoneTDs, agg.RedZoneFGs, agg.RedZoneFailed, agg.RedZoneUnresolved},
		{"tight_red", agg.TightRedZoneTrips, agg.TightRedZoneTDs, agg.TightRedZoneFGs, agg.TightRedZoneFailed, agg.TightRedZoneUnresolved},
	}
	for _, z := range zones {
		if z.trips != z.tds+z.fgs+z.failed+z.unresolved {
			errs = append(errs, fmt.Sprintf("%s: %s zone accounting broken: trips=%d tds=%d fgs=%d failed=%d unresolved=%d",
				team, z.name, z.trips, z.tds, z.fgs, z.failed, z.unresolved))
		}
		if z.trips < z.tds+z.fgs+z.failed {
			errs = append(errs, fmt.Sprintf("%s: %s zone trips below resolved outcomes", team, z.name))
		}
	}

	points := 0
	for _, ptd := range postTO {
		if ptd.RecoveredBy == team {
			points += ptd.PointsScored
		}
	}
	if points != agg.PointsOffTurnovers {
		errs = append(errs, fmt.Sprintf("%s: points off turnovers %d does not match post-turnover drive sum %d",
			team, agg.PointsOffTurnovers, points))
	}

	return errs
}
