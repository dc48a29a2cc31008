package engine

// Zone is one of the three nested field-position zones.
type Zone string

const (
	ZoneGreen    Zone = "green"
	ZoneRed      Zone = "red"
	ZoneTightRed Zone = "tight_red"
)

// Yards-to-goal thresholds defining each zone.
const (
	GreenZoneThreshold    = 30
	RedZoneThreshold      = 20
	TightRedZoneThreshold = 10
)

// Zones in outermost-first order.
var Zones = []Zone{ZoneGreen, ZoneRed, ZoneTightRed}

// ZoneThreshold returns the yards-to-goal threshold for a zone.
func ZoneThreshold(z Zone) int {
	switch z {
	case ZoneGreen:
		return GreenZoneThreshold
	case ZoneRed:
		return RedZoneThreshold
	default:
		return TightRedZoneThreshold
	}
}

// TripOutcome is the accounting bucket a zone trip lands in. Failed is
// populated only by positively matching a qualifying drive outcome;
// everything else that is not a score stays Unresolved so that
// trips = tds + fgs + failed + unresolved holds exactly.
type TripOutcome string

const (
	TripTD         TripOutcome = "td"
	TripFG         TripOutcome = "fg"
	TripFailed     TripOutcome = "failed"
	TripUnresolved TripOutcome = "unresolved"
)

// ZoneTrip is a (drive, zone) pairing: the drive started at or inside the
// zone's threshold. A drive produces at most one trip per zone; traveling
// into a deeper zone mid-drive does not create additional trips.
type ZoneTrip struct {
	Zone    Zone
	Outcome TripOutcome
	Drive   *Drive
}

// ClassifyTrips returns the zone trips a drive produces, judged solely by
// its starting field position. Drives with an unknown starting spot are not
// classifiable and produce no trips.
func ClassifyTrips(d *Drive) []ZoneTrip {
	if d.StartYardsToGoal == UnknownYardsToGoal {
		return nil
	}

	var trips []ZoneTrip
	outcome := tripOutcome(d.Outcome)
	for _, z := range Zones {
		if d.StartYardsToGoal <= ZoneThreshold(z) {
			trips = append(trips, ZoneTrip{Zone: z, Outcome: outcome, Drive: d})
		}
	}
	return trips
}

// tripOutcome maps a drive outcome onto the trip accounting buckets. Only
// the three qualifying non-scoring outcomes count as failures; punts,
// end-of-half drives, and the rest are counted as trips but resolved to
// neither score nor failure.
func tripOutcome(o DriveOutcome) TripOutcome {
	switch o {
	case OutcomeTD:
		return TripTD
	case OutcomeFG:
		return TripFG
	case OutcomeTurnoverINT, OutcomeTurnoverFUM, OutcomeDowns, OutcomeMissedFG:
		return TripFailed
	default:
		return TripUnresolved
	}
}
