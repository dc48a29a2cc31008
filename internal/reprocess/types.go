package reprocess

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// JobType enumerates the supported reprocess job variants.
type JobType string

const (
	JobTypeSeason    JobType = "season"
	JobTypeDateRange JobType = "date_range"
	JobTypeGame      JobType = "game"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job models the database representation of a reprocess job. GameIDs holds
// export identifiers, not database keys, so callers can resubmit the IDs
// they already know from the parser.
type Job struct {
	JobID           string         `json:"job_id"`
	JobType         JobType        `json:"job_type"`
	SeasonYear      sql.NullString `json:"season_year,omitempty"`
	StartDate       sql.NullTime   `json:"start_date,omitempty"`
	EndDate         sql.NullTime   `json:"end_date,omitempty"`
	GameIDs         pq.StringArray `json:"game_ids,omitempty"`
	Status          JobStatus      `json:"status"`
	StatusMessage   sql.NullString `json:"status_message,omitempty"`
	ProgressCurrent int            `json:"progress_current"`
	ProgressTotal   int            `json:"progress_total"`
	LastError       sql.NullString `json:"last_error,omitempty"`
	RetryCount      int            `json:"retry_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	StartedAt       sql.NullTime   `json:"started_at,omitempty"`
	CompletedAt     sql.NullTime   `json:"completed_at,omitempty"`
}

// Copy returns a shallow copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	return &cpy
}

// JobSpec describes the work to be performed by the runner.
type JobSpec struct {
	Type       JobType
	SeasonYear string
	Start      time.Time
	End        time.Time
	GameIDs    []string
	DryRun     bool
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnGameProcessed(gameID string)
	OnProgress(message string, current int, total int)
	OnJobComplete()
	OnJobError(err error)
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
