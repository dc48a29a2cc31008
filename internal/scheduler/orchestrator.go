package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/ingest/cfbstats"
	"github.com/fortuna/gridiron/internal/ingest/pbp"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/fortuna/gridiron/internal/store/repository"
)

// Orchestrator manages scheduled tasks: the export directory scan and the
// daily leaderboard badge refresh
type Orchestrator struct {
	db       *store.Database
	cache    *cache.RedisCache
	config   *Config
	ingester *pbp.Ingester
	cancel   context.CancelFunc

	// Task coordination
	scanCtx     context.Context
	scanCancel  context.CancelFunc
	badgeCtx    context.Context
	badgeCancel context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	ExportDir          string        // Directory the parser drops JSON exports into
	ScanInterval       time.Duration // Default: 30s
	BadgeRefreshHour   int           // Default: 5 (5 AM, after overnight stat updates)
	EnableExportScan   bool          // Default: true
	EnableBadgeRefresh bool          // Default: true
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		ExportDir:          "exports",
		ScanInterval:       30 * time.Second,
		BadgeRefreshHour:   5,
		EnableExportScan:   true,
		EnableBadgeRefresh: true,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(db *store.Database, redisCache *cache.RedisCache, ingester *pbp.Ingester, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		db:       db,
		cache:    redisCache,
		config:   config,
		ingester: ingester,
	}
}

// Start begins all scheduled tasks and blocks until the context is cancelled
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("╔════════════════════════════════════════╗")
	log.Println("║   Gridiron Scheduler Orchestrator     ║")
	log.Println("╚════════════════════════════════════════╝")
	log.Printf("Export scan: %v (dir: %s, interval: %v)", o.config.EnableExportScan, o.config.ExportDir, o.config.ScanInterval)
	log.Printf("Badge refresh: %v (at %02d:00)", o.config.EnableBadgeRefresh, o.config.BadgeRefreshHour)
	log.Println()

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableExportScan {
		o.scanCtx, o.scanCancel = context.WithCancel(ctx)
		go o.runExportScan(o.scanCtx)
	}

	if o.config.EnableBadgeRefresh {
		o.badgeCtx, o.badgeCancel = context.WithCancel(ctx)
		go o.runBadgeRefresh(o.badgeCtx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// runExportScan re-scans the export directory on an interval. Ingestion is
// idempotent, so picking up an already-processed export is harmless.
func (o *Orchestrator) runExportScan(ctx context.Context) {
	log.Printf("→ Export scan started (interval: %v)", o.config.ScanInterval)

	ticker := time.NewTicker(o.config.ScanInterval)
	defer ticker.Stop()

	// Run immediately on start
	o.scanExports(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Export scan stopped")
			return
		case <-ticker.C:
			o.scanExports(ctx)
		}
	}
}

// scanExports ingests every export in the directory and, if anything was
// written, drops the cached season aggregates so the next read re-sums
func (o *Orchestrator) scanExports(ctx context.Context) {
	count, err := o.ingester.IngestDirectory(ctx, o.config.ExportDir)
	if err != nil {
		log.Printf("  ⚠️  Export scan failed: %v", err)
		return
	}

	if count == 0 {
		return
	}

	log.Printf("  ✓ Ingested %d exports from %s", count, o.config.ExportDir)
	o.invalidateSeasonCaches(ctx)
}

// runBadgeRefresh scrapes conference leaderboards once a day and persists
// the resulting rank badges
func (o *Orchestrator) runBadgeRefresh(ctx context.Context) {
	log.Printf("→ Badge refresh scheduler started (runs at %02d:00 daily)", o.config.BadgeRefreshHour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.BadgeRefreshHour, 0, 0, 0, now.Location())

		// If we've passed today's run time, schedule for tomorrow
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next badge refresh: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Badge refresh scheduler stopped")
			return
		case <-time.After(waitDuration):
			log.Println("═══ Badge Refresh Starting ═══")
			if err := o.RefreshBadges(ctx); err != nil {
				log.Printf("❌ Badge refresh failed: %v", err)
			}
			log.Println("═══ Badge Refresh Complete ═══")
		}
	}
}

// RefreshBadges scrapes the current season's conference leaderboards and
// upserts a zone badge row per tracked team found on them
func (o *Orchestrator) RefreshBadges(ctx context.Context) error {
	startTime := time.Now()

	season, err := o.activeSeason(ctx)
	if err != nil {
		return err
	}

	year, err := strconv.Atoi(season.Year)
	if err != nil {
		return fmt.Errorf("season year %q is not numeric: %w", season.Year, err)
	}

	teamRepo := repository.NewTeamRepository(o.db)
	teamList, err := teamRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}

	client, err := cfbstats.NewClient()
	if err != nil {
		return fmt.Errorf("creating cfbstats client: %w", err)
	}
	defer client.Close()

	builder := cfbstats.NewBadgeBuilder(client, o.cache, teamList)
	badges, err := builder.BuildRedZoneBadges(ctx, year)
	if err != nil {
		return fmt.Errorf("building badges: %w", err)
	}

	statsRepo := repository.NewStatsRepository(o.db)
	saved := 0
	for _, badge := range badges {
		row := &store.ZoneBadge{
			TeamID:    badge.TeamID,
			SeasonID:  season.SeasonID,
			Category:  badge.Category,
			Rank:      badge.Rank,
			RankLabel: badge.Label,
			Value:     sql.NullString{String: fmt.Sprintf("%.2f", badge.Value), Valid: true},
			FetchedAt: time.Now(),
		}
		if err := statsRepo.UpsertBadge(ctx, row); err != nil {
			log.Printf("  ⚠️  Failed to save badge for team %d: %v", badge.TeamID, err)
			continue
		}
		saved++
	}

	log.Printf("✓ Badge refresh complete: %d badges saved in %v", saved, time.Since(startTime).Round(time.Second))
	return nil
}

// invalidateSeasonCaches drops every tracked team's cached season aggregate
// for the active season
func (o *Orchestrator) invalidateSeasonCaches(ctx context.Context) {
	if o.cache == nil {
		return
	}

	season, err := o.activeSeason(ctx)
	if err != nil {
		log.Printf("  ⚠️  Cache invalidation skipped: %v", err)
		return
	}

	teamRepo := repository.NewTeamRepository(o.db)
	teamList, err := teamRepo.GetAll(ctx)
	if err != nil {
		log.Printf("  ⚠️  Cache invalidation skipped: %v", err)
		return
	}

	keys := make([]string, 0, len(teamList))
	for _, team := range teamList {
		keys = append(keys, fmt.Sprintf("gridiron:season:%d:%d", season.SeasonID, team.TeamID))
	}

	if err := o.cache.Delete(ctx, keys...); err != nil {
		log.Printf("  ⚠️  Cache invalidation error: %v", err)
	}
}

func (o *Orchestrator) activeSeason(ctx context.Context) (*store.Season, error) {
	seasonRepo := repository.NewSeasonRepository(o.db)
	season, err := seasonRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("no active season: %w", err)
	}
	return season, nil
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	log.Println("Stopping scheduler orchestrator...")

	if o.scanCancel != nil {
		o.scanCancel()
	}

	if o.badgeCancel != nil {
		o.badgeCancel()
	}

	if o.cancel != nil {
		o.cancel()
	}

	log.Println("✓ Scheduler orchestrator stopped")
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"export_scan_enabled":   o.config.EnableExportScan,
		"export_dir":            o.config.ExportDir,
		"scan_interval":         o.config.ScanInterval.String(),
		"badge_refresh_enabled": o.config.EnableBadgeRefresh,
		"badge_refresh_hour":    o.config.BadgeRefreshHour,
	}
}
