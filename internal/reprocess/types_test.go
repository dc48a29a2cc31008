package reprocess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeriveType(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	tests := []struct {
		name string
		req  Request
		want JobType
	}{
		{"explicit games win", Request{GameIDs: []string{"g1"}, SeasonYear: "2025"}, JobTypeGame},
		{"date range", Request{StartDate: &start, EndDate: &end}, JobTypeDateRange},
		{"season only", Request{SeasonYear: "2025"}, JobTypeSeason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.DeriveType()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Request{}.DeriveType()
	assert.Error(t, err)
}

func TestJobCopy(t *testing.T) {
	job := &Job{JobID: "a", Status: JobStatusQueued}
	cpy := job.Copy()

	cpy.Status = JobStatusRunning
	assert.Equal(t, JobStatusQueued, job.Status)

	var nilJob *Job
	assert.Nil(t, nilJob.Copy())
}
