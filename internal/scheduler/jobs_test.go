package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls++
	return f.err
}

type fakePruner struct {
	deleted int64
	err     error
	cutoff  time.Time
}

func (f *fakePruner) DeleteOlderThan(cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.deleted, f.err
}

func TestRefreshJobRunsService(t *testing.T) {
	r := &fakeRefresher{}
	job := NewRefreshJob(r, zerolog.Nop())

	assert.Equal(t, "market_refresh", job.Name())
	assert.NoError(t, job.Run())
	assert.Equal(t, 1, r.calls)
}

func TestRefreshJobPropagatesError(t *testing.T) {
	r := &fakeRefresher{err: errors.New("feed down")}
	job := NewRefreshJob(r, zerolog.Nop())

	assert.Error(t, job.Run())
}

func TestCleanupJobPrunesAll(t *testing.T) {
	a := &fakePruner{deleted: 3}
	b := &fakePruner{deleted: 7}
	job := NewCleanupJob(zerolog.Nop(), a, b, nil)

	assert.NoError(t, job.Run())

	wantCutoff := time.Now().Add(-historyRetention)
	assert.WithinDuration(t, wantCutoff, a.cutoff, time.Minute)
	assert.WithinDuration(t, wantCutoff, b.cutoff, time.Minute)
}

func TestCleanupJobStopsOnError(t *testing.T) {
	a := &fakePruner{err: errors.New("locked")}
	job := NewCleanupJob(zerolog.Nop(), a)

	assert.Error(t, job.Run())
}
