package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/cache"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	"github.com/smallbiznis/boardinghouse/internal/servicetype/repository"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.ServiceType{}))
	require.NoError(t, conn.Exec(`CREATE TABLE room_services (id INTEGER PRIMARY KEY, room_id INTEGER, service_type_id INTEGER)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
		Cache: cache.NewCatalogCache(clk),
	}), conn
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{
		Name:         " Electricity ",
		Category:     "electricity",
		Unit:         "kWh",
		PricePerUnit: decimal.NewFromInt(3500),
	})
	require.NoError(t, err)
	require.Equal(t, "Electricity", created.Name)
	require.Equal(t, domain.CategoryElectricity, created.Category)
	require.True(t, created.IsActive)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
	require.True(t, decimal.NewFromInt(3500).Equal(got.PricePerUnit))
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Gas", Category: "GAS"})
	require.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Water", Category: "WATER", PricePerUnit: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrNegativePrice)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Water", Category: "WATER", PricePerUnit: decimal.NewFromInt(15000)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "water", Category: "WATER"})
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	require.True(t, ierr.IsConflict(err))
}

func TestGetUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "abc")
	require.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(context.Background(), "12345")
	require.True(t, ierr.IsNotFound(err))
}

func TestUpdateAndActiveListCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	wifi, err := svc.Create(ctx, domain.CreateRequest{Name: "Wifi", Category: "FIXED", PricePerUnit: decimal.NewFromInt(100000)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Cleaning", Category: "FIXED", PricePerUnit: decimal.NewFromInt(50000)})
	require.NoError(t, err)

	active, err := svc.List(ctx, domain.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 2)

	inactive := false
	_, err = svc.Update(ctx, wifi.ID.String(), domain.UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	active, err = svc.List(ctx, domain.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "Cleaning", active[0].Name)

	all, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestAssignedServiceTypeIsProtected(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	st, err := svc.Create(ctx, domain.CreateRequest{Name: "Electricity", Category: "ELECTRICITY", PricePerUnit: decimal.NewFromInt(3500)})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`INSERT INTO room_services (id, room_id, service_type_id) VALUES (1, 1, ?)`, st.ID).Error)

	err = svc.Delete(ctx, st.ID.String())
	require.ErrorIs(t, err, domain.ErrInUse)

	water := "WATER"
	_, err = svc.Update(ctx, st.ID.String(), domain.UpdateRequest{Category: &water})
	require.ErrorIs(t, err, domain.ErrCategoryLocked)

	price := decimal.NewFromInt(4000)
	updated, err := svc.Update(ctx, st.ID.String(), domain.UpdateRequest{PricePerUnit: &price})
	require.NoError(t, err)
	require.True(t, price.Equal(updated.PricePerUnit))
}

func TestDeleteUnassigned(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st, err := svc.Create(ctx, domain.CreateRequest{Name: "Parking", Category: "FIXED", PricePerUnit: decimal.NewFromInt(20000)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, st.ID.String()))

	_, err = svc.Get(ctx, st.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
