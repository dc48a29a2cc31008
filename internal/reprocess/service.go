package reprocess

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fortuna/gridiron/internal/ingest/pbp"
	"github.com/fortuna/gridiron/internal/store"
)

// Request represents a reprocess invocation request.
type Request struct {
	SeasonYear string
	StartDate  *time.Time
	EndDate    *time.Time
	GameIDs    []string
	DryRun     bool
}

// DeriveType infers the job type based on populated fields.
func (r Request) DeriveType() (JobType, error) {
	if len(r.GameIDs) > 0 {
		return JobTypeGame, nil
	}
	if r.StartDate != nil && r.EndDate != nil {
		return JobTypeDateRange, nil
	}
	if r.SeasonYear != "" {
		return JobTypeSeason, nil
	}
	return "", fmt.Errorf("unable to determine job type from request")
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo   *Repository
	runner *Runner

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(db *store.Database, ingester *pbp.Ingester, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[reprocess] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		runner:       NewRunner(db, ingester),
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	job := &Job{
		JobID:         uuid.New().String(),
		JobType:       jobType,
		Status:        JobStatusQueued,
		StatusMessage: sql.NullString{String: "Queued", Valid: true},
	}

	switch jobType {
	case JobTypeGame:
		job.GameIDs = req.GameIDs
		job.SeasonYear = sql.NullString{String: req.SeasonYear, Valid: req.SeasonYear != ""}
		job.ProgressTotal = len(req.GameIDs)
	case JobTypeSeason:
		job.SeasonYear = sql.NullString{String: req.SeasonYear, Valid: true}
	case JobTypeDateRange:
		job.SeasonYear = sql.NullString{String: req.SeasonYear, Valid: req.SeasonYear != ""}
		job.StartDate = sql.NullTime{Time: truncateDate(*req.StartDate), Valid: true}
		job.EndDate = sql.NullTime{Time: truncateDate(*req.EndDate), Valid: true}
		if job.EndDate.Time.Before(job.StartDate.Time) {
			return nil, fmt.Errorf("end_date precedes start_date")
		}
	}

	stored, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, err
	}

	_ = s.repo.AppendEvent(ctx, stored.JobID, "queued", "Job queued", nil, nil)

	return stored, nil
}

// GetJob returns a single job by ID.
func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJob(ctx, jobID)
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	spec, err := s.buildSpec(job)
	if err != nil {
		s.logger.Printf("invalid job spec %s: %v", job.JobID, err)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Invalid job specification", err)
		return
	}

	reporter := &jobReporter{
		ctx:   s.ctx,
		repo:  s.repo,
		jobID: job.JobID,
		total: job.ProgressTotal,
	}

	if err := s.runner.Run(s.ctx, spec, reporter); err != nil {
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Job failed", err)
		return
	}

	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}

func (s *Service) buildSpec(job *Job) (JobSpec, error) {
	spec := JobSpec{
		Type:       job.JobType,
		SeasonYear: job.SeasonYear.String,
	}

	switch job.JobType {
	case JobTypeGame:
		if len(job.GameIDs) == 0 {
			return spec, fmt.Errorf("game job missing game_ids")
		}
		spec.GameIDs = job.GameIDs
	case JobTypeSeason:
		if !job.SeasonYear.Valid {
			return spec, fmt.Errorf("season job missing season_year")
		}
	case JobTypeDateRange:
		if !job.StartDate.Valid || !job.EndDate.Valid {
			return spec, fmt.Errorf("job missing start/end dates")
		}
		spec.Start = job.StartDate.Time
		spec.End = job.EndDate.Time
	default:
		return spec, fmt.Errorf("unknown job type %s", job.JobType)
	}

	return spec, nil
}

type jobReporter struct {
	ctx   context.Context
	repo  *Repository
	jobID string
	total int
}

func (r *jobReporter) OnJobStart(spec JobSpec) {
	if r.total == 0 {
		r.total = len(spec.GameIDs)
	}
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, 0, r.total, "Job starting")
}

func (r *jobReporter) OnGameProcessed(gameID string) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "game", fmt.Sprintf("Game %s reprocessed", gameID), nil, nil)
}

func (r *jobReporter) OnProgress(message string, current int, total int) {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, current, valueOr(total, r.total), message)
}

func (r *jobReporter) OnJobComplete() {
	_ = r.repo.UpdateProgress(r.ctx, r.jobID, r.total, r.total, "Job complete")
}

func (r *jobReporter) OnJobError(err error) {
	_ = r.repo.AppendEvent(r.ctx, r.jobID, "error", err.Error(), nil, nil)
}

func valueOr(val, fallback int) int {
	if val > 0 {
		return val
	}
	return fallback
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
