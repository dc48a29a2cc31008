package engine

import "strings"

// TurnoverKind distinguishes interceptions from lost fumbles.
type TurnoverKind string

const (
	TurnoverINT TurnoverKind = "INT"
	TurnoverFUM TurnoverKind = "FUM"
)

// TurnoverEvent is a genuine change of possession: a non-negated
// interception or a fumble that actually changed hands.
type TurnoverEvent struct {
	Kind        TurnoverKind
	LostBy      string
	RecoveredBy string
	Play        Play
	PlayIndex   int
}

// PostTurnoverDrive pairs a turnover with the recovering team's next drive
// and the points that drive produced. DriveResult is "none" when the
// turnover was the game's final meaningful play.
type PostTurnoverDrive struct {
	TurnoverType    string `json:"turnover_type"`
	TurnoverBy      string `json:"turnover_by"`
	RecoveredBy     string `json:"recovered_by"`
	DriveResult     string `json:"drive_result"`
	PointsScored    int    `json:"points_scored"`
	PlayDescription string `json:"play_description"`
}

// DriveResultNone marks an orphaned turnover with no following drive.
const DriveResultNone = "none"

// DetectTurnovers scans the normalized play sequence for genuine turnover
// events. Negated plays never produce events; fumbles count only when the
// ball changed team possession. The recovering team for each event is the
// opponent of the team that lost the ball.
func DetectTurnovers(plays []Play, opponentOf func(team string) string) []TurnoverEvent {
	var events []TurnoverEvent
	for i, p := range plays {
		if p.Negated || !p.TurnoverRaw {
			continue
		}
		upper := strings.ToUpper(p.EffectiveText)
		var kind TurnoverKind
		switch {
		case strings.Contains(upper, "INTERCEPT"):
			kind = TurnoverINT
		case strings.Contains(upper, "FUMBLE"):
			if !changesPossession(plays, i) {
				continue
			}
			kind = TurnoverFUM
		default:
			// Flagged turnover with no recognizable description; skipping
			// keeps the failure local instead of fabricating a kind.
			continue
		}

		events = append(events, TurnoverEvent{
			Kind:        kind,
			LostBy:      p.Team,
			RecoveredBy: opponentOf(p.Team),
			Play:        p,
			PlayIndex:   i,
		})
	}
	return events
}

// LinkTurnovers pairs each turnover event with the next drive by the
// recovering team that begins after the event, producing one
// PostTurnoverDrive per event. Orphaned turnovers are represented
// explicitly with a none result and zero points, never omitted.
func LinkTurnovers(events []TurnoverEvent, drives []Drive) []PostTurnoverDrive {
	linked := make([]PostTurnoverDrive, 0, len(events))
	for _, ev := range events {
		ptd := PostTurnoverDrive{
			TurnoverType:    string(ev.Kind),
			TurnoverBy:      ev.LostBy,
			RecoveredBy:     ev.RecoveredBy,
			DriveResult:     DriveResultNone,
			PlayDescription: ev.Play.EffectiveText,
		}

		for i := range drives {
			d := &drives[i]
			if d.FirstPlayIndex > ev.PlayIndex && d.Offense == ev.RecoveredBy {
				ptd.DriveResult = string(d.Outcome)
				ptd.PointsScored = drivePoints(d)
				break
			}
		}

		linked = append(linked, ptd)
	}
	return linked
}

// drivePoints values a drive's outcome for points-off-turnover accounting.
// A safety scores for the defense, not the possessing team, so it
// contributes nothing here.
func drivePoints(d *Drive) int {
	switch d.Outcome {
	case OutcomeTD:
		return touchdownPoints(d)
	case OutcomeFG:
		return 3
	default:
		return 0
	}
}

// touchdownPoints resolves the value of a touchdown drive from the try that
// follows it. When the try is missing from the play stream the value
// defaults to 7 (documented approximation).
func touchdownPoints(d *Drive) int {
	for _, p := range d.Plays {
		if !isPointAfterTry(p) || p.Negated {
			continue
		}
		upper := strings.ToUpper(p.EffectiveText)
		if strings.Contains(upper, "KICK ATTEMPT") || strings.Contains(upper, "POINT AFTER") {
			if strings.Contains(upper, "GOOD") && !strings.Contains(upper, "NO GOOD") {
				return 7
			}
			return 6
		}
		// Two-point attempt by pass or rush.
		if strings.Contains(upper, "SUCCESSFUL") || strings.Contains(upper, "GOOD") {
			return 8
		}
		return 6
	}
	return 7
}
