package engine_test

import (
	"fmt"

	"github.com/fortuna/gridiron/internal/engine"
)

// recOpt mutates a Record under construction.
type recOpt func(*engine.Record)

// rec builds a parser record with sane defaults: a first-and-ten rush for
// no gain. Options layer the interesting bits on top.
func rec(team string, quarter int, spot, text string, opts ...recOpt) engine.Record {
	r := engine.Record{
		Team:     team,
		Quarter:  quarter,
		Clock:    "12:00",
		Down:     1,
		Distance: 10,
		Spot:     spot,
		PlayType: "rush",
		RawText:  text,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func down(d, distance int) recOpt {
	return func(r *engine.Record) {
		r.Down = d
		r.Distance = distance
	}
}

func rush(yards int) recOpt {
	return func(r *engine.Record) {
		r.PlayType = "rush"
		r.YardsGained = yards
	}
}

func pass(yards int) recOpt {
	return func(r *engine.Record) {
		r.PlayType = "pass"
		r.YardsGained = yards
	}
}

func kick() recOpt {
	return func(r *engine.Record) { r.PlayType = "kick" }
}

func scoring() recOpt {
	return func(r *engine.Record) { r.ScoringFlag = true }
}

func turnover() recOpt {
	return func(r *engine.Record) { r.TurnoverFlag = true }
}

func noPlay() recOpt {
	return func(r *engine.Record) {
		r.PenaltyFlags = append(r.PenaltyFlags, "no_play")
	}
}

func penalty(penType string, accepted bool) recOpt {
	return func(r *engine.Record) {
		prefix := "declined:"
		if accepted {
			prefix = "accepted:"
		}
		r.PenaltyFlags = append(r.PenaltyFlags, prefix+penType)
	}
}

func overturned() recOpt {
	return func(r *engine.Record) {
		r.ReviewFlags = append(r.ReviewFlags, "overturned")
	}
}

// spotFor returns ASU-relative spot notation for a yards-to-goal value when
// ASU has the ball: 65 yards to goal is the ASU 35, 15 yards to goal is the
// COLO 15.
func spotFor(ytg int) string {
	if ytg == 50 {
		return "50"
	}
	if ytg > 50 {
		return fmt.Sprintf("ASU%d", 100-ytg)
	}
	return fmt.Sprintf("COLO%d", ytg)
}

// touchdownDrive appends a short ASU touchdown drive starting at the given
// yards-to-goal, followed by the point-after try text.
func touchdownDrive(startYTG int, tryText string) []engine.Record {
	recs := []engine.Record{
		rec("ASU", 1, spotFor(startYTG), "B.Skattebo rush for 4 yards", rush(4)),
		rec("ASU", 1, spotFor(startYTG-4), "B.Skattebo rush for a TOUCHDOWN", rush(startYTG-4), scoring()),
	}
	if tryText != "" {
		recs = append(recs, rec("ASU", 1, "COLO3", tryText, kick()))
	}
	return recs
}

func processOne(t interface{ Fatalf(string, ...interface{}) }, records []engine.Record) *engine.GameResult {
	res, err := engine.ProcessGame(engine.GameInput{
		GameID:   "test-game",
		HomeTeam: "ASU",
		AwayTeam: "COLO",
		Records:  records,
	})
	if err != nil {
		t.Fatalf("ProcessGame: %v", err)
	}
	return res
}
