// Package jobs runs background maintenance for the CRM data layer on cron
// schedules.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type scheduledJob struct {
	id   cron.EntryID
	expr string
	job  cron.Job
}

// Scheduler keeps named jobs on a cron with a leading seconds field.
// Overlapping runs of the same job are skipped and panics are recovered,
// whether a run comes from the schedule or from RunNow.
type Scheduler struct {
	cron   *cron.Cron
	chain  cron.Chain
	logger *zap.Logger
	mu     sync.Mutex
	jobs   map[string]scheduledJob
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	cronLog := cronLogger{logger.Named("cron").Sugar()}
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds(), cron.WithLogger(cronLog)),
		chain:  cron.NewChain(cron.SkipIfStillRunning(cronLog), cron.Recover(cronLog)),
		logger: logger,
		jobs:   make(map[string]scheduledJob),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Int("jobs", len(s.JobNames())))
	s.cron.Start()
}

// Stop halts the cron. The returned context is done once in-flight runs
// have returned.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob registers job under name. cronExpr takes a seconds field or a
// descriptor:
//   - "0 15 3 * * *" - At 03:15:00 every day
//   - "@every 10m"   - Every ten minutes
func (s *Scheduler) AddJob(name string, cronExpr string, job func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	wrapped := s.chain.Then(cron.FuncJob(s.timed(name, job)))
	entryID, err := s.cron.AddJob(cronExpr, wrapped)
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = scheduledJob{id: entryID, expr: cronExpr, job: wrapped}
	s.logger.Debug("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))
	return nil
}

// RunNow starts a registered job in its own goroutine outside the cron
// schedule. It is skipped if the job is already running.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	j, exists := s.jobs[name]
	s.mu.Unlock()
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	go j.job.Run()
	return nil
}

func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(j.id)
	delete(s.jobs, name)

	s.logger.Debug("removed scheduled job", zap.String("job_name", name))
	return nil
}

// JobNames returns the registered job names, sorted.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schedules maps each job name to its cron expression.
func (s *Scheduler) Schedules() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.jobs))
	for name, j := range s.jobs {
		out[name] = j.expr
	}
	return out
}

func (s *Scheduler) timed(name string, job func()) func() {
	return func() {
		start := time.Now()
		s.logger.Info("running scheduled job", zap.String("job_name", name))
		job()
		s.logger.Info("completed scheduled job",
			zap.String("job_name", name),
			zap.Duration("elapsed", time.Since(start)))
	}
}

// cronLogger routes robfig/cron's own messages through zap
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
