package cron

import (
	"context"
	"time"
)

// ReportResyncJob is the name of the job that republishes the live hours report.
const ReportResyncJob = "report-resync"

// ReportRefresher reloads the hours report from the stores and republishes it.
type ReportRefresher interface {
	Refresh(ctx context.Context) error
}

type ReportJobs struct {
	refresher ReportRefresher
	interval  time.Duration
}

func NewReportJobs(refresher ReportRefresher, interval time.Duration) *ReportJobs {
	return &ReportJobs{refresher: refresher, interval: interval}
}

// RegisterJobs adds the resync job, which covers change notifications lost
// while the snapshot listener was reconnecting.
func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(ReportResyncJob, j.interval, j.refresher.Refresh)
}
