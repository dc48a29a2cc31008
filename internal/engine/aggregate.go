package engine

import "database/sql"

// RedZonePlay is the drill-down detail kept for red-zone trip plays only;
// the green and tight-red zones report summary counters.
type RedZonePlay struct {
	Opponent    string `json:"opponent"`
	Quarter     int    `json:"quarter"`
	Clock       string `json:"clock"`
	Down        int    `json:"down"`
	Distance    int    `json:"distance"`
	YardsToGoal int    `json:"yards_to_goal"`
	PlayType    string `json:"play_type"`
	Yards       int    `json:"yards"`
	Scoring     bool   `json:"scoring"`
	Description string `json:"description"`
}

// PenaltyLine is the accepted/declined split for one penalty type.
type PenaltyLine struct {
	Accepted int `json:"accepted"`
	Declined int `json:"declined"`
}

// Explosive-play yardage thresholds, gained on a non-negated play.
const (
	ExplosiveRushYards = 15
	ExplosivePassYards = 20
)

// GameAggregate is the per-team reduction of one game. It is derived from a
// freshly constructed input slice each time, so reprocessing a game is
// idempotent.
type GameAggregate struct {
	Team     string `json:"team"`
	Opponent string `json:"opponent"`

	GreenZoneTrips      int `json:"green_zone_trips"`
	GreenZoneTDs        int `json:"green_zone_tds"`
	GreenZoneFGs        int `json:"green_zone_fgs"`
	GreenZoneFailed     int `json:"green_zone_failed"`
	GreenZoneUnresolved int `json:"green_zone_unresolved"`

	RedZoneTrips      int           `json:"red_zone_trips"`
	RedZoneTDs        int           `json:"red_zone_tds"`
	RedZoneFGs        int           `json:"red_zone_fgs"`
	RedZoneFailed     int           `json:"red_zone_failed"`
	RedZoneUnresolved int           `json:"red_zone_unresolved"`
	RedZonePlays      []RedZonePlay `json:"red_zone_plays"`

	TightRedZoneTrips      int `json:"tight_red_zone_trips"`
	TightRedZoneTDs        int `json:"tight_red_zone_tds"`
	TightRedZoneFGs        int `json:"tight_red_zone_fgs"`
	TightRedZoneFailed     int `json:"tight_red_zone_failed"`
	TightRedZoneUnresolved int `json:"tight_red_zone_unresolved"`

	PostTurnoverDrives []PostTurnoverDrive `json:"post_turnover_drives"`
	PointsOffTurnovers int                 `json:"points_off_turnovers"`

	// Giveaways by this team and takeaways gained from the opponent,
	// counted separately per kind.
	TurnoversINT    int `json:"turnovers_int"`
	TurnoversFumble int `json:"turnovers_fumble"`
	TakeawaysINT    int `json:"takeaways_int"`
	TakeawaysFumble int `json:"takeaways_fumble"`

	ExplosiveRushes int `json:"explosive_rushes"`
	ExplosivePasses int `json:"explosive_passes"`

	// Fourth-down go-for-it only; punts and field-goal attempts excluded.
	FourthDownAttempts    int `json:"fourth_down_attempts"`
	FourthDownConversions int `json:"fourth_down_conversions"`

	PenaltyBreakdown map[string]*PenaltyLine `json:"penalty_breakdown"`

	// Plays excluded from zone classification because their spot notation
	// could not be resolved. Non-zero values are visible, not fatal.
	UnclassifiedPlays int `json:"unclassified_plays,omitempty"`
}

// AggregateGame reduces one team's drives, trips, turnover pairings, and
// flagged plays into a GameAggregate. The inputs are read-only; nothing is
// shared across teams or games.
func AggregateGame(team, opponent string, plays []Play, drives []Drive, events []TurnoverEvent, postTO []PostTurnoverDrive) *GameAggregate {
	agg := &GameAggregate{
		Team:               team,
		Opponent:           opponent,
		RedZonePlays:       []RedZonePlay{},
		PostTurnoverDrives: []PostTurnoverDrive{},
		PenaltyBreakdown:   map[string]*PenaltyLine{},
	}

	for i := range drives {
		d := &drives[i]
		if d.Offense != team {
			continue
		}
		for _, trip := range ClassifyTrips(d) {
			agg.addTrip(trip)
			if trip.Zone == ZoneRed {
				agg.appendRedZonePlays(d, opponent)
			}
		}
	}

	for _, ev := range events {
		switch {
		case ev.LostBy == team && ev.Kind == TurnoverINT:
			agg.TurnoversINT++
		case ev.LostBy == team && ev.Kind == TurnoverFUM:
			agg.TurnoversFumble++
		case ev.RecoveredBy == team && ev.Kind == TurnoverINT:
			agg.TakeawaysINT++
		case ev.RecoveredBy == team && ev.Kind == TurnoverFUM:
			agg.TakeawaysFumble++
		}
	}

	for _, ptd := range postTO {
		if ptd.RecoveredBy != team {
			continue
		}
		agg.PostTurnoverDrives = append(agg.PostTurnoverDrives, ptd)
		agg.PointsOffTurnovers += ptd.PointsScored
	}

	for _, p := range plays {
		if p.Team != team {
			continue
		}

		for _, pen := range p.Penalties {
			line, ok := agg.PenaltyBreakdown[pen.Type]
			if !ok {
				line = &PenaltyLine{}
				agg.PenaltyBreakdown[pen.Type] = line
			}
			if pen.Accepted {
				line.Accepted++
			} else {
				line.Declined++
			}
		}

		if p.Negated {
			continue
		}

		if p.YardsToGoal == UnknownYardsToGoal {
			agg.UnclassifiedPlays++
		}

		switch p.Type {
		case PlayRush:
			if p.YardsGained >= ExplosiveRushYards {
				agg.ExplosiveRushes++
			}
		case PlayPass:
			if p.YardsGained >= ExplosivePassYards {
				agg.ExplosivePasses++
			}
		}

		if p.Down == 4 && (p.Type == PlayRush || p.Type == PlayPass) && !isPointAfterTry(p) {
			agg.FourthDownAttempts++
			if p.Scoring || p.YardsGained >= p.Distance {
				agg.FourthDownConversions++
			}
		}
	}

	return agg
}

func (a *GameAggregate) addTrip(trip ZoneTrip) {
	switch trip.Zone {
	case ZoneGreen:
		a.GreenZoneTrips++
		switch trip.Outcome {
		case TripTD:
			a.GreenZoneTDs++
		case TripFG:
			a.GreenZoneFGs++
		case TripFailed:
			a.GreenZoneFailed++
		default:
			a.GreenZoneUnresolved++
		}
	case ZoneRed:
		a.RedZoneTrips++
		switch trip.Outcome {
		case TripTD:
			a.RedZoneTDs++
		case TripFG:
			a.RedZoneFGs++
		case TripFailed:
			a.RedZoneFailed++
		default:
			a.RedZoneUnresolved++
		}
	case ZoneTightRed:
		a.TightRedZoneTrips++
		switch trip.Outcome {
		case TripTD:
			a.TightRedZoneTDs++
		case TripFG:
			a.TightRedZoneFGs++
		case TripFailed:
			a.TightRedZoneFailed++
		default:
			a.TightRedZoneUnresolved++
		}
	}
}

func (a *GameAggregate) appendRedZonePlays(d *Drive, opponent string) {
	for _, p := range d.Plays {
		if p.Negated || p.Team != d.Offense {
			continue
		}
		a.RedZonePlays = append(a.RedZonePlays, RedZonePlay{
			Opponent:    opponent,
			Quarter:     p.Quarter,
			Clock:       p.Clock,
			Down:        p.Down,
			Distance:    p.Distance,
			YardsToGoal: p.YardsToGoal,
			PlayType:    string(p.Type),
			Yards:       p.YardsGained,
			Scoring:     p.Scoring,
			Description: p.EffectiveText,
		})
	}
}

// SeasonAggregate is the field-wise sum of a team's game aggregates plus
// recomputed rates. It is always derived by SumSeason, never accumulated in
// place, so regenerating after a single-game fix cannot double count.
type SeasonAggregate struct {
	Team  string `json:"team"`
	Games int    `json:"games"`

	GreenZoneTrips      int `json:"green_zone_trips"`
	GreenZoneTDs        int `json:"green_zone_tds"`
	GreenZoneFGs        int `json:"green_zone_fgs"`
	GreenZoneFailed     int `json:"green_zone_failed"`
	GreenZoneUnresolved int `json:"green_zone_unresolved"`

	RedZoneTrips      int `json:"red_zone_trips"`
	RedZoneTDs        int `json:"red_zone_tds"`
	RedZoneFGs        int `json:"red_zone_fgs"`
	RedZoneFailed     int `json:"red_zone_failed"`
	RedZoneUnresolved int `json:"red_zone_unresolved"`

	TightRedZoneTrips      int `json:"tight_red_zone_trips"`
	TightRedZoneTDs        int `json:"tight_red_zone_tds"`
	TightRedZoneFGs        int `json:"tight_red_zone_fgs"`
	TightRedZoneFailed     int `json:"tight_red_zone_failed"`
	TightRedZoneUnresolved int `json:"tight_red_zone_unresolved"`

	PointsOffTurnovers int `json:"points_off_turnovers"`
	TurnoversINT       int `json:"turnovers_int"`
	TurnoversFumble    int `json:"turnovers_fumble"`
	TakeawaysINT       int `json:"takeaways_int"`
	TakeawaysFumble    int `json:"takeaways_fumble"`

	ExplosiveRushes int `json:"explosive_rushes"`
	ExplosivePasses int `json:"explosive_passes"`

	FourthDownAttempts    int `json:"fourth_down_attempts"`
	FourthDownConversions int `json:"fourth_down_conversions"`

	PenaltyBreakdown map[string]*PenaltyLine `json:"penalty_breakdown"`

	// Rates are invalid ("no data") rather than zero when the denominator
	// is empty.
	GreenZoneTDPct    sql.NullFloat64 `json:"green_zone_td_pct"`
	GreenZoneScorePct sql.NullFloat64 `json:"green_zone_score_pct"`
	RedZoneTDPct      sql.NullFloat64 `json:"red_zone_td_pct"`
	RedZoneScorePct   sql.NullFloat64 `json:"red_zone_score_pct"`
	TightRedTDPct     sql.NullFloat64 `json:"tight_red_zone_td_pct"`
	TightRedScorePct  sql.NullFloat64 `json:"tight_red_zone_score_pct"`
	FourthDownPct     sql.NullFloat64 `json:"fourth_down_pct"`
	ExplosivesPerGame sql.NullFloat64 `json:"explosives_per_game"`
	PointsOffTOPerGame sql.NullFloat64 `json:"points_off_turnovers_per_game"`
}

// SumSeason reduces a team's game aggregates into a season aggregate. The
// reduction is associative and commutative, so re-running after fixing one
// game only requires reprocessing that game and re-summing.
func SumSeason(team string, games []*GameAggregate) *SeasonAggregate {
	s := &SeasonAggregate{
		Team:             team,
		PenaltyBreakdown: map[string]*PenaltyLine{},
	}

	for _, g := range games {
		if g == nil || g.Team != team {
			continue
		}
		s.Games++

		s.GreenZoneTrips += g.GreenZoneTrips
		s.GreenZoneTDs += g.GreenZoneTDs
		s.GreenZoneFGs += g.GreenZoneFGs
		s.GreenZoneFailed += g.GreenZoneFailed
		s.GreenZoneUnresolved += g.GreenZoneUnresolved

		s.RedZoneTrips += g.RedZoneTrips
		s.RedZoneTDs += g.RedZoneTDs
		s.RedZoneFGs += g.RedZoneFGs
		s.RedZoneFailed += g.RedZoneFailed
		s.RedZoneUnresolved += g.RedZoneUnresolved

		s.TightRedZoneTrips += g.TightRedZoneTrips
		s.TightRedZoneTDs += g.TightRedZoneTDs
		s.TightRedZoneFGs += g.TightRedZoneFGs
		s.TightRedZoneFailed += g.TightRedZoneFailed
		s.TightRedZoneUnresolved += g.TightRedZoneUnresolved

		s.PointsOffTurnovers += g.PointsOffTurnovers
		s.TurnoversINT += g.TurnoversINT
		s.TurnoversFumble += g.TurnoversFumble
		s.TakeawaysINT += g.TakeawaysINT
		s.TakeawaysFumble += g.TakeawaysFumble

		s.ExplosiveRushes += g.ExplosiveRushes
		s.ExplosivePasses += g.ExplosivePasses

		s.FourthDownAttempts += g.FourthDownAttempts
		s.FourthDownConversions += g.FourthDownConversions

		for penType, line := range g.PenaltyBreakdown {
			sum, ok := s.PenaltyBreakdown[penType]
			if !ok {
				sum = &PenaltyLine{}
				s.PenaltyBreakdown[penType] = sum
			}
			sum.Accepted += line.Accepted
			sum.Declined += line.Declined
		}
	}

	s.GreenZoneTDPct = rate(s.GreenZoneTDs, s.GreenZoneTrips)
	s.GreenZoneScorePct = rate(s.GreenZoneTDs+s.GreenZoneFGs, s.GreenZoneTrips)
	s.RedZoneTDPct = rate(s.RedZoneTDs, s.RedZoneTrips)
	s.RedZoneScorePct = rate(s.RedZoneTDs+s.RedZoneFGs, s.RedZoneTrips)
	s.TightRedTDPct = rate(s.TightRedZoneTDs, s.TightRedZoneTrips)
	s.TightRedScorePct = rate(s.TightRedZoneTDs+s.TightRedZoneFGs, s.TightRedZoneTrips)
	s.FourthDownPct = rate(s.FourthDownConversions, s.FourthDownAttempts)
	s.ExplosivesPerGame = rate(s.ExplosiveRushes+s.ExplosivePasses, s.Games)
	s.PointsOffTOPerGame = rate(s.PointsOffTurnovers, s.Games)

	return s
}

// rate performs division with an explicit no-data result instead of failing
// or reporting a misleading zero.
func rate(numerator, denominator int) sql.NullFloat64 {
	if denominator == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(numerator) / float64(denominator), Valid: true}
}
