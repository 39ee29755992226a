package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestScheduler_RunsJobsOnInterval(t *testing.T) {
	refresher := &countingRefresher{}
	scheduler := NewScheduler()
	NewReportJobs(refresher, 10*time.Millisecond).RegisterJobs(scheduler)

	scheduler.Start(context.Background())
	require.Eventually(t, func() bool {
		return refresher.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	scheduler.Stop()
	stopped := refresher.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, refresher.calls.Load())
}

func TestScheduler_DisabledJob(t *testing.T) {
	refresher := &countingRefresher{}
	scheduler := NewScheduler()
	NewReportJobs(refresher, 0).RegisterJobs(scheduler)

	scheduler.RunOnce(context.Background())
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestScheduler_RunOnceSurvivesFailures(t *testing.T) {
	failing := &countingRefresher{err: errors.New("store unavailable")}
	healthy := &countingRefresher{}

	scheduler := NewScheduler()
	scheduler.AddJob("failing", time.Hour, failing.Refresh)
	scheduler.AddJob("healthy", time.Hour, healthy.Refresh)

	scheduler.RunOnce(context.Background())
	assert.Equal(t, int32(1), failing.calls.Load())
	assert.Equal(t, int32(1), healthy.calls.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	NewScheduler().Stop()
}
