package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/gridiron/internal/engine"
)

func sampleGameRecords() []engine.Record {
	var records []engine.Record
	records = append(records, rec("ASU", 1, "ASU35", "J.Fernandez KICKOFF 65 yards, touchback", kick()))
	records = append(records,
		rec("COLO", 1, "COLO25", "M.Sanders rush for 4 yards", rush(4)),
		rec("COLO", 1, "COLO29", "R.Staub pass INTERCEPTED by X.Ross at the COLO41", pass(0), turnover()),
	)
	records = append(records, touchdownDrive(41, "I.Vellano kick attempt GOOD")...)
	records = append(records,
		rec("COLO", 2, "COLO30", "M.Sanders rush for 22 yards", rush(22)),
		rec("COLO", 2, "ASU48", "R.Staub pass complete for 31 yards", pass(31)),
		rec("COLO", 2, "ASU17", "M.Sanders rush for 1 yard", rush(1)),
		rec("COLO", 2, "ASU16", "B.Kelly 33 yard FIELD GOAL GOOD", kick(), down(4, 9), scoring()),
		rec("ASU", 2, "ASU25", "W.Hammond kneels down", rush(-1)),
		rec("ASU", 3, "ASU30", "B.Skattebo rush for 3 yards", rush(3)),
		rec("ASU", 3, "ASU33", "K.Macdonald punt 44 yards", kick(), down(4, 7)),
		rec("COLO", 4, "COLO21", "M.Sanders rush, FUMBLES, recovered by ASU at the COLO19", rush(0), turnover()),
		rec("ASU", 4, "COLO19", "B.Skattebo rush for 4 yards", rush(4)),
		rec("ASU", 4, "COLO15", "I.Vellano 32 yard FIELD GOAL GOOD", kick(), down(4, 6), scoring()),
		rec("COLO", 4, "COLO35", "R.Staub kneels down", rush(-1)),
	)
	return records
}

func TestProcessGameEndToEnd(t *testing.T) {
	res := processOne(t, sampleGameRecords())

	require.Empty(t, res.ValidationErrors)

	asu := res.Aggregates["ASU"]
	colo := res.Aggregates["COLO"]

	// ASU: pick-six-range INT takeaway cashed for 7, fumble takeaway for 3.
	assert.Equal(t, 1, asu.TakeawaysINT)
	assert.Equal(t, 1, asu.TakeawaysFumble)
	assert.Equal(t, 10, asu.PointsOffTurnovers)
	assert.Equal(t, 1, colo.TurnoversINT)
	assert.Equal(t, 1, colo.TurnoversFumble)

	// ASU red zone trip off the fumble recovery at the 19, ending in a FG.
	assert.Equal(t, 1, asu.RedZoneTrips)
	assert.Equal(t, 1, asu.RedZoneFGs)
	assert.Zero(t, asu.RedZoneFailed)

	// COLO's explosive plays: the 22 yard rush and 31 yard pass.
	assert.Equal(t, 1, colo.ExplosiveRushes)
	assert.Equal(t, 1, colo.ExplosivePasses)
}

func TestProcessGameRequiresTwoTeams(t *testing.T) {
	_, err := engine.ProcessGame(engine.GameInput{GameID: "g", HomeTeam: "ASU", AwayTeam: "ASU"})
	require.Error(t, err)

	_, err = engine.ProcessGame(engine.GameInput{GameID: "g", HomeTeam: "", AwayTeam: "COLO"})
	require.Error(t, err)
}

// Reprocessing the identical play sequence must yield byte-identical output.
func TestProcessGameIdempotent(t *testing.T) {
	first := processOne(t, sampleGameRecords())
	second := processOne(t, sampleGameRecords())

	a, err := json.Marshal(first.Aggregates)
	require.NoError(t, err)
	b, err := json.Marshal(second.Aggregates)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProcessGamesParallelMatchesSequential(t *testing.T) {
	inputs := make([]engine.GameInput, 6)
	for i := range inputs {
		inputs[i] = engine.GameInput{
			GameID:   "game-" + string(rune('a'+i)),
			HomeTeam: "ASU",
			AwayTeam: "COLO",
			Records:  sampleGameRecords(),
		}
	}

	sequential, seqErrs := engine.ProcessGames(inputs, 1)
	parallel, parErrs := engine.ProcessGames(inputs, 4)

	require.Empty(t, seqErrs)
	require.Empty(t, parErrs)
	require.Len(t, parallel, len(sequential))

	for i := range sequential {
		want, err := json.Marshal(sequential[i].Aggregates)
		require.NoError(t, err)
		got, err := json.Marshal(parallel[i].Aggregates)
		require.NoError(t, err)
		assert.Equal(t, want, got, "game %d", i)
	}
}

func TestValidateResultFlagsDefects(t *testing.T) {
	res := &engine.GameResult{
		Drives: []engine.Drive{
			{Offense: "", Outcome: engine.OutcomePunt},
			{Offense: "ASU"},
		},
		Events: []engine.TurnoverEvent{
			{Kind: engine.TurnoverINT, LostBy: "ASU", Play: engine.Play{Negated: true, EffectiveText: "bad"}},
		},
		Aggregates: map[string]*engine.GameAggregate{
			"ASU": {
				Team:         "ASU",
				RedZoneTrips: 1, RedZoneTDs: 1, RedZoneFGs: 1, // trips < resolved
			},
		},
	}

	errs := engine.ValidateResult(res)

	assert.NotEmpty(t, errs)
	joined := ""
	for _, e := range errs {
		joined += e + "\n"
	}
	assert.Contains(t, joined, "no offense")
	assert.Contains(t, joined, "no terminal outcome")
	assert.Contains(t, joined, "turnover effects")
	assert.Contains(t, joined, "zone accounting broken")
}
