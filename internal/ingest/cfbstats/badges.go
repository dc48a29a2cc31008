package cfbstats

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/teams"
)

// Badge is one national-ranking callout for a team, e.g.
// "Ranks 3rd in Big 12 in red zone TD% (71.43%)".
type Badge struct {
	TeamID   int     `json:"team_id"`
	Category string  `json:"category"`
	Rank     int     `json:"rank"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
}

const (
	redZoneTDCategory = "red_zone_td_pct"
	badgeCacheTTL     = 12 * time.Hour
)

// BadgeBuilder scrapes conference leaderboards and produces rank badges for
// the tracked teams.
type BadgeBuilder struct {
	client  *Client
	cache   *cache.RedisCache
	matcher *teams.Matcher
	teams   []*store.Team
}

// NewBadgeBuilder creates a badge builder. The cache may be nil; leaderboards
// are then fetched on every call.
func NewBadgeBuilder(client *Client, redisCache *cache.RedisCache, teamList []*store.Team) *BadgeBuilder {
	return &BadgeBuilder{
		client:  client,
		cache:   redisCache,
		matcher: teams.NewMatcher(teamList),
		teams:   teamList,
	}
}

// BuildRedZoneBadges fetches each represented conference's red zone
// leaderboard and returns badges for every tracked team found on it.
// Conferences without a known scope are skipped with a log line.
func (b *BadgeBuilder) BuildRedZoneBadges(ctx context.Context, year int) ([]Badge, error) {
	byConference := make(map[string][]*store.Team)
	for _, team := range b.teams {
		if !team.Conference.Valid {
			continue
		}
		conf := team.Conference.String
		byConference[conf] = append(byConference[conf], team)
	}

	var badges []Badge
	for conf, confTeams := range byConference {
		scope, ok := ConferenceIDs[conf]
		if !ok {
			log.Printf("[cfbstats] No leaderboard scope for conference %q, skipping", conf)
			continue
		}

		board, err := b.leaderboard(ctx, year, conf, scope)
		if err != nil {
			log.Printf("[cfbstats] Error fetching %s leaderboard: %v", conf, err)
			continue
		}

		badges = append(badges, b.badgesFromBoard(board, conf, confTeams)...)
	}

	return badges, nil
}

func (b *BadgeBuilder) badgesFromBoard(board *Leaderboard, conf string, confTeams []*store.Team) []Badge {
	teamCol, ok := FindColumn(board.Headers, "Team")
	if !ok {
		return nil
	}
	rankCol, ok := FindColumn(board.Headers, "Rank", "Rk", "#")
	if !ok {
		return nil
	}
	tdCol, ok := FindColumn(board.Headers, "TD %", "TD%", "TD Pct")
	if !ok {
		return nil
	}

	tracked := make(map[int]bool, len(confTeams))
	for _, team := range confTeams {
		tracked[team.TeamID] = true
	}

	var badges []Badge
	for _, row := range board.Rows {
		team, ok := b.matcher.Match(row[teamCol])
		if !ok || !tracked[team.TeamID] {
			continue
		}

		rank, ok := ParseRank(row[rankCol])
		if !ok {
			continue
		}

		pct, ok := ParsePercent(row[tdCol])
		if !ok {
			continue
		}

		badges = append(badges, Badge{
			TeamID:   team.TeamID,
			Category: redZoneTDCategory,
			Rank:     rank,
			Value:    pct,
			Label: fmt.Sprintf("Ranks %s in %s in red zone TD%% (%.2f%%)",
				Ordinal(rank), conf, pct),
		})
	}

	return badges
}

// leaderboard returns a conference leaderboard, from Redis when fresh.
func (b *BadgeBuilder) leaderboard(ctx context.Context, year int, conf, scope string) (*Leaderboard, error) {
	key := fmt.Sprintf("cfbstats:leaderboard:%d:%s:category%02d", year, scope, RedZoneCategory)

	if b.cache != nil {
		cached := &Leaderboard{}
		hit, err := b.cache.GetJSON(ctx, key, cached)
		if err != nil {
			log.Printf("[cfbstats] Cache read error for %s: %v", conf, err)
		} else if hit {
			return cached, nil
		}
	}

	html, err := b.client.FetchLeaderboard(ctx, year, scope, RedZoneCategory)
	if err != nil {
		return nil, err
	}

	doc, err := ParseHTML(html)
	if err != nil {
		return nil, err
	}

	board, err := ParseLeaderboard(doc)
	if err != nil {
		return nil, err
	}

	if b.cache != nil {
		if err := b.cache.SetJSON(ctx, key, board, badgeCacheTTL); err != nil {
			log.Printf("[cfbstats] Cache write error for %s: %v", conf, err)
		}
	}

	return board, nil
}
