package engine

import (
	"fmt"
	"strings"
	"sync"
)

// GameInput is one game's worth of parser records plus the two team
// identities, supplied as a fresh slice per run.
type GameInput struct {
	GameID   string
	HomeTeam string
	AwayTeam string
	Records  []Record
}

// GameResult holds every derived artifact for one game. Aggregates are
// keyed by team abbreviation.
type GameResult struct {
	GameID             string
	Plays              []Play
	Drives             []Drive
	Events             []TurnoverEvent
	PostTurnoverDrives []PostTurnoverDrive
	Aggregates         map[string]*GameAggregate
	ValidationErrors   []string
}

// ProcessGame runs the full pipeline for one game: normalize, segment,
// classify, link, aggregate, validate. It is a deterministic single pass;
// the play sequence must already be in game chronological order.
func ProcessGame(in GameInput) (*GameResult, error) {
	home := strings.ToUpper(strings.TrimSpace(in.HomeTeam))
	away := strings.ToUpper(strings.TrimSpace(in.AwayTeam))
	if home == "" || away == "" || home == away {
		return nil, fmt.Errorf("game %s: need two distinct teams, got %q vs %q", in.GameID, in.HomeTeam, in.AwayTeam)
	}

	plays := make([]Play, 0, len(in.Records))
	for _, rec := range in.Records {
		plays = append(plays, NormalizePlay(rec))
	}

	opponentOf := func(team string) string {
		if team == home {
			return away
		}
		return home
	}

	drives := SegmentDrives(plays)
	events := DetectTurnovers(plays, opponentOf)
	postTO := LinkTurnovers(events, drives)

	result := &GameResult{
		GameID:             in.GameID,
		Plays:              plays,
		Drives:             drives,
		Events:             events,
		PostTurnoverDrives: postTO,
		Aggregates: map[string]*GameAggregate{
			home: AggregateGame(home, away, plays, drives, events, postTO),
			away: AggregateGame(away, home, plays, drives, events, postTO),
		},
	}
	result.ValidationErrors = ValidateResult(result)

	return result, nil
}

// ProcessGames runs multiple independent games through worker goroutines
// with a fan-in that preserves input order. Games share no mutable state;
// only intra-game play order matters.
func ProcessGames(inputs []GameInput, workers int) ([]*GameResult, []error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	results := make([]*GameResult, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx], errs[idx] = ProcessGame(inputs[idx])
			}
		}()
	}
	for idx := range inputs {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	var failures []error
	for idx, err := range errs {
		if err != nil {
			failures = append(failures, fmt.Errorf("game %s: %w", inputs[idx].GameID, err))
		}
	}
	return results, failures
}
