package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type staticGraph struct {
	g   *domain.Graph
	err error
}

func (s staticGraph) LoadAll(context.Context) (*domain.Graph, error) {
	return s.g, s.err
}

func brokenGraph() *domain.Graph {
	now := time.Now().UTC()
	g := domain.NewGraph()
	g.PutClient(domain.Client{ID: "c-1", SalesRepUsername: "jd", CompanyID: 1})
	g.PutAssignment(domain.ClientSalesRepCompany{ClientID: "c-1", SalesRepUsername: "jd", CompanyID: 1, FromDate: now, IsActive: true})
	g.PutAssignment(domain.ClientSalesRepCompany{ClientID: "c-1", SalesRepUsername: "mk", CompanyID: 1, FromDate: now, IsActive: true})

	primary := "j-2"
	g.PutPurchaseOrder(domain.PurchaseOrder{ID: 10, ClientID: "c-1", PrimaryJobID: &primary})
	g.PutPurchaseOrder(domain.PurchaseOrder{ID: 11, ClientID: "c-1"})
	g.PutJob(domain.Job{ID: "j-2", PurchaseOrderID: 11})
	return g
}

func TestIntegrityAuditJob_ReportsViolations(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	job := jobs.NewIntegrityAuditJob(staticGraph{g: brokenGraph()}, zap.New(core), time.Minute)

	report, err := job.Audit(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Violations, 2)
	assert.Equal(t, 1, report.ByRule[domain.RulePrimaryJobCycle])
	assert.Equal(t, 1, report.ByRule[domain.RuleSingleActiveAssignment])

	violations := logs.FilterMessage("integrity violation").All()
	require.Len(t, violations, 2)
	for _, entry := range violations {
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		fields := entry.ContextMap()
		assert.Contains(t, fields, "rule")
		assert.Contains(t, fields, "entity")
	}
	assert.Equal(t, 1, logs.FilterMessage("integrity audit completed").Len())
}

func TestIntegrityAuditJob_CleanGraph(t *testing.T) {
	job := jobs.NewIntegrityAuditJob(staticGraph{g: domain.NewGraph()}, zap.NewNop(), time.Minute)

	report, err := job.Audit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Violations)
}

func TestIntegrityAuditJob_LoadFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	job := jobs.NewIntegrityAuditJob(staticGraph{err: errors.New("connection refused")}, zap.New(core), time.Minute)

	_, err := job.Audit(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	job.Run()
	assert.Equal(t, 1, logs.FilterMessage("integrity audit failed").Len())
}

func TestRegisterIntegrityAuditJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	err := jobs.RegisterIntegrityAuditJob(s, staticGraph{g: domain.NewGraph()}, zap.NewNop(), "0 15 3 * * *", time.Minute, false)
	require.NoError(t, err)
	assert.Equal(t, []string{jobs.IntegrityAuditJobName}, s.JobNames())
}
