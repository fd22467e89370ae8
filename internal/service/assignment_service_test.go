package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/repository"
	"github.com/stitchdesk/crm/internal/service"
	"github.com/stitchdesk/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func newAssignmentService(db *gorm.DB) *service.AssignmentService {
	return service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewClientRepository(db),
		repository.NewSalesRepRepository(db),
		zap.NewNop(),
		db,
	)
}

func TestAssignmentService_Reassign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newAssignmentService(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	other := testutil.CreateTestCompany(t, db, "Other Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	mk := testutil.CreateTestSalesRep(t, db, "mk", other.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", jd)

	current, err := svc.Reassign(ctx, service.ReassignInput{
		ClientID:         client.ID,
		SalesRepUsername: mk.Username,
		CompanyID:        other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "mk", current.SalesRepUsername)
	assert.Equal(t, other.ID, current.CompanyID)
	assert.True(t, current.IsCurrent())

	stored, err := repository.NewClientRepository(db).GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "mk", stored.SalesRepUsername)
	assert.Equal(t, other.ID, stored.CompanyID)

	history, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "mk", history[0].SalesRepUsername)
	assert.Equal(t, "jd", history[1].SalesRepUsername)
	assert.False(t, history[1].IsActive)
	require.NotNil(t, history[1].ToDate)
	assert.False(t, history[1].ToDate.Before(history[1].FromDate))

	assertSingleActive(t, db, client.ID)
}

func TestAssignmentService_ReassignSameRepIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newAssignmentService(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", jd)

	before, err := svc.CurrentAssignment(ctx, client.ID)
	require.NoError(t, err)

	after, err := svc.Reassign(ctx, service.ReassignInput{
		ClientID:         client.ID,
		SalesRepUsername: jd.Username,
		CompanyID:        acme.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, before.FromDate.Unix(), after.FromDate.Unix())

	history, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestAssignmentService_ReassignBackReopensRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	core, logs := observer.New(zapcore.InfoLevel)
	svc := service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewClientRepository(db),
		repository.NewSalesRepRepository(db),
		zap.New(core),
		db,
	)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	mk := testutil.CreateTestSalesRep(t, db, "mk", acme.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", jd)

	_, err := svc.Reassign(ctx, service.ReassignInput{ClientID: client.ID, SalesRepUsername: mk.Username, CompanyID: acme.ID})
	require.NoError(t, err)
	current, err := svc.Reassign(ctx, service.ReassignInput{ClientID: client.ID, SalesRepUsername: jd.Username, CompanyID: acme.ID})
	require.NoError(t, err)
	assert.Equal(t, "jd", current.SalesRepUsername)
	assert.Nil(t, current.ToDate)

	history, err := svc.History(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2, "identity is (client, rep), so the old row is reused")

	// the replaced period is kept in the log
	reopened := logs.FilterMessage("reopening previous assignment").AllUntimed()
	require.Len(t, reopened, 1)
	fields := reopened[0].ContextMap()
	assert.Equal(t, client.ID, fields["client_id"])
	assert.Equal(t, "jd", fields["sales_rep"])
	assert.Equal(t, int64(acme.ID), fields["previous_company_id"])
	assert.Contains(t, fields, "previous_from")
	assert.NotNil(t, fields["previous_to"])

	assertSingleActive(t, db, client.ID)
}

func TestAssignmentService_ReassignErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newAssignmentService(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", jd)

	tests := []struct {
		name    string
		input   service.ReassignInput
		wantErr error
	}{
		{"missing client", service.ReassignInput{ClientID: "missing", SalesRepUsername: "jd", CompanyID: acme.ID}, service.ErrClientNotFound},
		{"missing rep", service.ReassignInput{ClientID: client.ID, SalesRepUsername: "zz", CompanyID: acme.ID}, service.ErrSalesRepNotFound},
		{"bad username", service.ReassignInput{ClientID: client.ID, SalesRepUsername: "j-d", CompanyID: acme.ID}, service.ErrInvalidInput},
		{"bad company", service.ReassignInput{ClientID: client.ID, SalesRepUsername: "jd", CompanyID: 0}, service.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reassign(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assertSingleActive(t, db, client.ID)
}

func TestAssignmentService_CurrentAssignmentReportsMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newAssignmentService(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", jd)

	// Drift the client away from its assignment behind the service's back
	require.NoError(t, repository.NewClientRepository(db).UpdateAssignment(ctx, nil, client.ID, "mk", acme.ID, time.Now()))

	_, err := svc.CurrentAssignment(ctx, client.ID)
	require.ErrorIs(t, err, domain.ErrIntegrity)
	violations := domain.IntegrityErrors(err)
	require.Len(t, violations, 1)
	assert.Equal(t, domain.RuleAssignmentMismatch, violations[0].Rule)

	// Closing the only active row leaves nothing current
	require.NoError(t, repository.NewAssignmentRepository(db).Close(ctx, nil, client.ID, jd.Username, time.Now()))
	_, err = svc.CurrentAssignment(ctx, client.ID)
	assert.ErrorIs(t, err, service.ErrNoActiveAssignment)
}

func TestAssignmentService_ClientsServedBy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newAssignmentService(db)
	ctx := context.Background()

	acme := testutil.CreateTestCompany(t, db, "Acme Stitch")
	jd := testutil.CreateTestSalesRep(t, db, "jd", acme.ID)
	testutil.CreateTestClient(t, db, "Bobs Shirts", jd)
	testutil.CreateTestClient(t, db, "Hat Hut", jd)

	rows, err := svc.ClientsServedBy(ctx, jd.Username)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.ClientsServedBy(ctx, "zz")
	assert.ErrorIs(t, err, service.ErrSalesRepNotFound)
}

func assertSingleActive(t *testing.T, db *gorm.DB, clientID string) {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&domain.ClientSalesRepCompany{}).
		Where("client_id = ? AND is_active = ?", clientID, true).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
