package scheduler

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 2 * time.Minute

var ErrUnknownJob = errs.New("unknown scheduled job")

// Job is one periodic maintenance task. Run reports how many rows it touched.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) (int64, error)
}

// Scheduler runs maintenance jobs on cron specs. A job never overlaps itself.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]Job
	metrics *metrics.Metrics
	logger  *slog.Logger
	baseCtx context.Context
	stop    context.CancelFunc
}

func New(jobs []Job, m *metrics.Metrics, logger *slog.Logger) (*Scheduler, error) {
	baseCtx, stop := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger}),
			cron.SkipIfStillRunning(cronLogger{logger}),
		)),
		jobs:    make(map[string]Job, len(jobs)),
		metrics: m,
		logger:  logger,
		baseCtx: baseCtx,
		stop:    stop,
	}
	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.Spec, func() { _ = s.run(s.baseCtx, job) }); err != nil {
			stop()
			return nil, errs.Wrapf(err, "invalid schedule %q for job %s", job.Spec, job.Name)
		}
		s.jobs[job.Name] = job
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop waits for running jobs until ctx expires, then cancels them.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.stop()
		return nil
	case <-ctx.Done():
		s.stop()
		return ctx.Err()
	}
}

// RunNow executes a registered job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return errs.Wrap(ErrUnknownJob, name)
	}
	return s.run(ctx, job)
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	started := time.Now()
	n, err := job.Run(ctx)
	if err != nil {
		s.metrics.JobRuns.WithLabelValues(job.Name, "error").Inc()
		s.logger.Error("scheduled job failed", "job", job.Name, "error", err)
		return err
	}
	s.metrics.JobRuns.WithLabelValues(job.Name, "ok").Inc()
	if n > 0 {
		s.logger.Info("scheduled job finished", "job", job.Name, "affected", n, "elapsed", time.Since(started))
	}
	return nil
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
