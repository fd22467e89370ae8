package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stitchdesk/crm/internal/domain"
	"github.com/stitchdesk/crm/internal/repository"
	"github.com/stitchdesk/crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAssignmentRepository_CloseAndReopen(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Acme Stitch")
	rep := testutil.CreateTestSalesRep(t, db, "jd", company.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", rep)

	active, err := repo.ListActiveByClient(ctx, nil, client.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsCurrent())

	closedAt := time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.Close(ctx, nil, client.ID, rep.Username, closedAt))

	active, err = repo.ListActiveByClient(ctx, nil, client.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	row, err := repo.Get(ctx, nil, client.ID, rep.Username)
	require.NoError(t, err)
	assert.False(t, row.IsActive)
	require.NotNil(t, row.ToDate)
	assert.WithinDuration(t, closedAt, *row.ToDate, time.Second)

	reopenedAt := closedAt.Add(time.Hour)
	require.NoError(t, repo.Reopen(ctx, nil, client.ID, rep.Username, company.ID, reopenedAt))

	row, err = repo.Get(ctx, nil, client.ID, rep.Username)
	require.NoError(t, err)
	assert.True(t, row.IsCurrent())
	assert.WithinDuration(t, reopenedAt, row.FromDate, time.Second)
}

func TestAssignmentRepository_CloseMissingRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)

	err := repo.Close(context.Background(), nil, "nope", "xx", time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAssignmentRepository_SecondActiveRowRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)

	company := testutil.CreateTestCompany(t, db, "Acme Stitch")
	rep := testutil.CreateTestSalesRep(t, db, "jd", company.ID)
	other := testutil.CreateTestSalesRep(t, db, "mk", company.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", rep)

	err := repo.Create(context.Background(), nil, &domain.ClientSalesRepCompany{
		ClientID:         client.ID,
		SalesRepUsername: other.Username,
		CompanyID:        company.ID,
		FromDate:         time.Now().UTC(),
		IsActive:         true,
	})
	assert.Error(t, err, "partial unique index allows one active row per client")
}

func TestAssignmentRepository_HistoryOrdering(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewAssignmentRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Acme Stitch")
	first := testutil.CreateTestSalesRep(t, db, "aa", company.ID)
	second := testutil.CreateTestSalesRep(t, db, "bb", company.ID)
	client := testutil.CreateTestClient(t, db, "Bobs Shirts", first)

	later := time.Now().UTC().Add(24 * time.Hour)
	require.NoError(t, repo.Close(ctx, nil, client.ID, first.Username, later))
	require.NoError(t, repo.Create(ctx, nil, &domain.ClientSalesRepCompany{
		ClientID:         client.ID,
		SalesRepUsername: second.Username,
		CompanyID:        company.ID,
		FromDate:         later,
		IsActive:         true,
	}))

	history, err := repo.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "bb", history[0].SalesRepUsername)
	assert.Equal(t, "aa", history[1].SalesRepUsername)

	served, err := repo.ListBySalesRep(ctx, first.Username)
	require.NoError(t, err)
	require.Len(t, served, 1)
	assert.Equal(t, client.ID, served[0].ClientID)
}
