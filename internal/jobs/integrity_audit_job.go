package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"go.uber.org/zap"
)

// IntegrityAuditJobName is the name of the relational integrity sweep
const IntegrityAuditJobName = "integrity_audit"

// GraphSource loads every persisted record into a graph.
// repository.GraphLoader implements it.
type GraphSource interface {
	LoadAll(ctx context.Context) (*domain.Graph, error)
}

// AuditReport summarises one sweep
type AuditReport struct {
	Violations []*domain.IntegrityError
	ByRule     map[string]int
	Duration   time.Duration
}

// IntegrityAuditJob loads the whole graph and reports every purchase order
// whose primary job lies outside it and every client whose assignment
// history does not have exactly one matching active row.
type IntegrityAuditJob struct {
	source  GraphSource
	logger  *zap.Logger
	timeout time.Duration
}

// NewIntegrityAuditJob creates a new integrity audit job.
// The timeout bounds a single sweep.
func NewIntegrityAuditJob(source GraphSource, logger *zap.Logger, timeout time.Duration) *IntegrityAuditJob {
	return &IntegrityAuditJob{
		source:  source,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one sweep. This is called by the scheduler.
func (j *IntegrityAuditJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.Audit(ctx); err != nil {
		j.logger.Error("integrity audit failed", zap.Error(err))
	}
}

// Audit loads the graph, logs each violation at error level and returns the
// report
func (j *IntegrityAuditJob) Audit(ctx context.Context) (*AuditReport, error) {
	start := time.Now()

	g, err := j.source.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load graph: %w", err)
	}

	report := &AuditReport{
		Violations: domain.IntegrityErrors(g.CheckIntegrity()),
		ByRule:     make(map[string]int),
	}
	for _, v := range report.Violations {
		report.ByRule[v.Rule]++
		j.logger.Error("integrity violation",
			zap.String("rule", v.Rule),
			zap.String("entity", v.Entity),
			zap.String("detail", v.Detail))
	}
	report.Duration = time.Since(start)

	j.logger.Info("integrity audit completed",
		zap.Int("violations", len(report.Violations)),
		zap.Int(domain.RulePrimaryJobCycle, report.ByRule[domain.RulePrimaryJobCycle]),
		zap.Int(domain.RuleSingleActiveAssignment, report.ByRule[domain.RuleSingleActiveAssignment]),
		zap.Int(domain.RuleAssignmentMismatch, report.ByRule[domain.RuleAssignmentMismatch]),
		zap.Duration("duration", report.Duration))

	return report, nil
}

// RegisterIntegrityAuditJob registers the sweep with the scheduler.
// If runAtStartup is true a first sweep starts right away.
func RegisterIntegrityAuditJob(scheduler *Scheduler, source GraphSource, logger *zap.Logger, cronExpr string, timeout time.Duration, runAtStartup bool) error {
	job := NewIntegrityAuditJob(source, logger, timeout)
	if err := scheduler.AddJob(IntegrityAuditJobName, cronExpr, job.Run); err != nil {
		return err
	}
	if runAtStartup {
		return scheduler.RunNow(IntegrityAuditJobName)
	}
	return nil
}
