package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/internal/tenant/repository"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.Tenant{}))
	require.NoError(t, conn.Exec(`CREATE TABLE contracts (id INTEGER PRIMARY KEY, tenant_id INTEGER)`).Error)
	require.NoError(t, conn.Exec(`CREATE TABLE contract_tenants (contract_id INTEGER, tenant_id INTEGER)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
	}), conn
}

func TestCreateAndLookupByUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	dob := date.New(1998, time.May, 20)

	created, err := svc.Create(ctx, domain.CreateRequest{
		FullName:       "Nguyen Van A",
		Phone:          "0901234567",
		IdentityNumber: "079098001234",
		DateOfBirth:    &dob,
		UserID:         "42",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, created.Status)

	got, err := svc.GetByUserID(ctx, "42")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.DateOfBirth)
	require.Equal(t, "1998-05-20", got.DateOfBirth.String())

	_, err = svc.GetByUserID(ctx, "43")
	require.True(t, ierr.IsNotFound(err))
}

func TestIdentityNumberIsUnique(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{FullName: "A", Phone: "1", IdentityNumber: "ID-1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{FullName: "B", Phone: "2", IdentityNumber: "ID-1"})
	require.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	// tenants without identity numbers never collide
	_, err = svc.Create(ctx, domain.CreateRequest{FullName: "C", Phone: "3"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{FullName: "D", Phone: "4"})
	require.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{FullName: "A"})
	require.True(t, ierr.IsInvalidInput(err))

	_, err = svc.Create(ctx, domain.CreateRequest{FullName: "A", Phone: "1", Email: "not-an-email"})
	require.True(t, ierr.IsInvalidInput(err))
	require.Equal(t, "must be a valid email", ierr.ReportableDetails(err)["email"])
}

func TestUpdateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, domain.CreateRequest{FullName: "Tran Thi B", Phone: "0912000111"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{FullName: "Le Van C", Phone: "0933000222"})
	require.NoError(t, err)

	inactive := "INACTIVE"
	updated, err := svc.Update(ctx, a.ID.String(), domain.UpdateRequest{Status: &inactive})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInactive, updated.Status)

	active, err := svc.List(ctx, domain.ListRequest{Status: "ACTIVE"})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Le Van C", active[0].FullName)

	found, err := svc.List(ctx, domain.ListRequest{Query: "tran"})
	require.NoError(t, err)
	require.Len(t, found, 1)
}

func TestDeleteRejectedWhileOnContract(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	tenant, err := svc.Create(ctx, domain.CreateRequest{FullName: "Co Tenant", Phone: "1"})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`INSERT INTO contracts (id, tenant_id) VALUES (1, 99)`).Error)
	require.NoError(t, conn.Exec(`INSERT INTO contract_tenants (contract_id, tenant_id) VALUES (1, ?)`, tenant.ID).Error)

	require.ErrorIs(t, svc.Delete(ctx, tenant.ID.String()), domain.ErrHasContracts)

	require.NoError(t, conn.Exec(`DELETE FROM contract_tenants`).Error)
	require.NoError(t, svc.Delete(ctx, tenant.ID.String()))
}
