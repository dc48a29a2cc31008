package engine

import "strings"

// DriveOutcome is the closed set of terminal results a drive can have.
type DriveOutcome string

const (
	OutcomeTD          DriveOutcome = "TD"
	OutcomeFG          DriveOutcome = "FG"
	OutcomeMissedFG    DriveOutcome = "MissedFG"
	OutcomePunt        DriveOutcome = "Punt"
	OutcomeDowns       DriveOutcome = "TurnoverOnDowns"
	OutcomeTurnoverINT DriveOutcome = "TurnoverINT"
	OutcomeTurnoverFUM DriveOutcome = "TurnoverFUM"
	OutcomeEndOfHalf   DriveOutcome = "EndOfHalf"
	OutcomeEndOfGame   DriveOutcome = "EndOfGame"
	OutcomeSafety      DriveOutcome = "Safety"

	// OutcomeIncomplete marks a drive whose play sequence ended without a
	// recognizable terminal event (data truncation). It is surfaced, never
	// guessed into another bucket.
	OutcomeIncomplete DriveOutcome = "Incomplete"
)

// Drive is a maximal run of consecutive plays by one offense between
// possession changes or the end of a half/game.
type Drive struct {
	Offense          string
	StartYardsToGoal int
	Plays            []Play
	Outcome          DriveOutcome

	// FirstPlayIndex is the position of the drive's opening offensive snap
	// in the game's play sequence, used to order drives against turnover
	// events.
	FirstPlayIndex int
}

// SegmentDrives partitions one game's normalized play sequence into drives.
// It is a single ordered pass holding a current-drive accumulator: a drive
// opens on the first offensive snap by a new offense and closes on a
// terminal play, a possession change, a half boundary, or the end of the
// stream. Kickoffs, return plays, negated plays, and point-after tries never
// open a drive or change possession on their own.
func SegmentDrives(plays []Play) []Drive {
	var drives []Drive
	var cur *Drive
	var pending []Play
	lastHalf := 0

	closeCurrent := func(outcome DriveOutcome) {
		if cur == nil {
			return
		}
		cur.Outcome = outcome
		drives = append(drives, *cur)
		cur = nil
	}

	for i := range plays {
		p := plays[i]

		if h := halfIndex(p.Quarter); cur != nil && lastHalf != 0 && h > lastHalf {
			closeCurrent(OutcomeEndOfHalf)
		}
		lastHalf = halfIndex(p.Quarter)

		switch {
		case p.Negated:
			// Voided plays stay in the sequence for penalty accounting but
			// never affect segmentation.
			if cur != nil {
				cur.Plays = append(cur.Plays, p)
			} else if len(drives) > 0 && drives[len(drives)-1].Offense == p.Team {
				drives[len(drives)-1].Plays = append(drives[len(drives)-1].Plays, p)
			} else {
				pending = append(pending, p)
			}
			continue

		case isKickoff(p):
			// Possession changes at the first offensive snap, not at the
			// kick or return. The kickoff rides along into the next drive.
			if cur != nil {
				closeCurrent(OutcomeIncomplete)
			}
			pending = append(pending, p)
			continue

		case isPointAfterTry(p):
			// Tries follow a touchdown that already closed its drive;
			// attach them there so point values can be refined later.
			if cur != nil {
				cur.Plays = append(cur.Plays, p)
			} else if len(drives) > 0 {
				drives[len(drives)-1].Plays = append(drives[len(drives)-1].Plays, p)
			}
			continue
		}

		if cur != nil && p.Team != cur.Offense {
			closeCurrent(OutcomeIncomplete)
		}

		if cur == nil {
			cur = &Drive{
				Offense:          p.Team,
				StartYardsToGoal: p.YardsToGoal,
				Plays:            pending,
				FirstPlayIndex:   i,
			}
			pending = nil
		}
		cur.Plays = append(cur.Plays, p)

		if outcome, ok := terminalOutcome(plays, i); ok {
			closeCurrent(outcome)
		}
	}

	if cur != nil {
		if len(plays) > 0 && plays[len(plays)-1].Quarter >= 4 {
			closeCurrent(OutcomeEndOfGame)
		} else {
			closeCurrent(OutcomeIncomplete)
		}
	}
	if len(pending) > 0 && len(drives) > 0 {
		drives[len(drives)-1].Plays = append(drives[len(drives)-1].Plays, pending...)
	}

	return drives
}

// terminalOutcome reports whether the play at index i ends its drive and
// with what outcome. Turnovers are checked first so that a defensive score
// on a return is still attributed to the offense as a turnover, not a TD.
func terminalOutcome(plays []Play, i int) (DriveOutcome, bool) {
	p := plays[i]
	if p.Negated {
		return "", false
	}
	upper := strings.ToUpper(p.EffectiveText)

	if p.TurnoverRaw {
		switch {
		case strings.Contains(upper, "INTERCEPT"):
			return OutcomeTurnoverINT, true
		case strings.Contains(upper, "FUMBLE"):
			if changesPossession(plays, i) {
				return OutcomeTurnoverFUM, true
			}
			// Fumble recovered by the offense keeps the drive alive.
		}
	}

	if strings.Contains(upper, "SAFETY") {
		return OutcomeSafety, true
	}

	if strings.Contains(upper, "FIELD GOAL") {
		if !strings.Contains(upper, "NO GOOD") && (p.Scoring || strings.Contains(upper, "GOOD")) {
			return OutcomeFG, true
		}
		return OutcomeMissedFG, true
	}

	if strings.Contains(upper, "PUNT") {
		return OutcomePunt, true
	}

	if p.Scoring {
		return OutcomeTD, true
	}

	if p.Down == 4 && (p.Type == PlayRush || p.Type == PlayPass) && p.YardsGained < p.Distance {
		return OutcomeDowns, true
	}

	return "", false
}

// changesPossession reports whether the ball belongs to a different team at
// the next meaningful snap after index i. A fumble on the game's final play
// counts as a change (the orphaned-turnover case).
func changesPossession(plays []Play, i int) bool {
	for j := i + 1; j < len(plays); j++ {
		next := plays[j]
		if next.Negated || isKickoff(next) || isPointAfterTry(next) {
			continue
		}
		return next.Team != plays[i].Team
	}
	return true
}

// halfIndex folds quarters into half buckets: 1-2, 3-4, overtime.
func halfIndex(quarter int) int {
	switch {
	case quarter <= 2:
		return 1
	case quarter <= 4:
		return 2
	default:
		return 3
	}
}

func isKickoff(p Play) bool {
	return strings.Contains(strings.ToUpper(p.EffectiveText), "KICKOFF")
}

// isPointAfterTry matches PAT kicks and two-point conversion attempts. Field
// goal attempts also read "attempt" but carry their own marker and are
// excluded first.
func isPointAfterTry(p Play) bool {
	upper := strings.ToUpper(p.EffectiveText)
	if strings.Contains(upper, "FIELD GOAL") {
		return false
	}
	return strings.Contains(upper, "KICK ATTEMPT") ||
		strings.Contains(upper, "PASS ATTEMPT") ||
		strings.Contains(upper, "RUSH ATTEMPT") ||
		strings.Contains(upper, "TWO-POINT") ||
		strings.Contains(upper, "POINT AFTER")
}
