package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&domain.BoardingHouse{}))
	require.NoError(t, conn.Exec(`CREATE TABLE rooms (id INTEGER PRIMARY KEY, boarding_house_id INTEGER)`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	}), conn
}

func TestCreateDerivesSlug(t *testing.T) {
	svc, _ := newTestService(t)

	house, err := svc.Create(context.Background(), domain.CreateRequest{Name: "Sunshine Boarding House", Address: "12 Le Loi"})
	require.NoError(t, err)
	require.Equal(t, "sunshine-boarding-house", house.Slug)
	require.Equal(t, 1, house.NumberOfFloors)

	_, err = svc.Create(context.Background(), domain.CreateRequest{Name: "  "})
	require.True(t, ierr.IsInvalidInput(err))
}

func TestUpdateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, domain.CreateRequest{Name: "Alpha"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Beta"})
	require.NoError(t, err)

	name := "Alpha Riverside"
	floors := 4
	updated, err := svc.Update(ctx, a.ID.String(), domain.UpdateRequest{Name: &name, NumberOfFloors: &floors})
	require.NoError(t, err)
	require.Equal(t, "alpha-riverside", updated.Slug)
	require.Equal(t, 4, updated.NumberOfFloors)

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Alpha Riverside", all[0].Name)

	filtered, err := svc.List(ctx, domain.ListRequest{Name: "river"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func TestDeleteRejectedWhileRoomsExist(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	house, err := svc.Create(ctx, domain.CreateRequest{Name: "Gamma"})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`INSERT INTO rooms (id, boarding_house_id) VALUES (1, ?)`, house.ID).Error)

	err = svc.Delete(ctx, house.ID.String())
	require.ErrorIs(t, err, domain.ErrHasRooms)

	require.NoError(t, conn.Exec(`DELETE FROM rooms`).Error)
	require.NoError(t, svc.Delete(ctx, house.ID.String()))

	_, err = svc.Get(ctx, house.ID.String())
	require.True(t, ierr.IsNotFound(err))
}
