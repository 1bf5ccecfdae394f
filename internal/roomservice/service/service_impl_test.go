package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/boardinghouse/internal/clock"
	ierr "github.com/smallbiznis/boardinghouse/internal/errors"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomrepository "github.com/smallbiznis/boardinghouse/internal/room/repository"
	"github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	"github.com/smallbiznis/boardinghouse/internal/roomservice/repository"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	servicetyperepository "github.com/smallbiznis/boardinghouse/internal/servicetype/repository"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc         domain.Service
	db          *gorm.DB
	room        roomdomain.Room
	electricity servicetypedomain.ServiceType
	internet    servicetypedomain.ServiceType
	retired     servicetypedomain.ServiceType
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&roomdomain.Room{}, &servicetypedomain.ServiceType{}, &domain.RoomService{}))

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	room := roomdomain.Room{ID: 1, BoardingHouseID: 1, Code: "R101", Floor: 1, MaxOccupants: 2, BaseRent: decimal.NewFromInt(3000000), Status: roomdomain.StatusAvailable, CreatedAt: now, UpdatedAt: now}
	electricity := servicetypedomain.ServiceType{ID: 2, Name: "Electricity", Category: servicetypedomain.CategoryElectricity, Unit: "kWh", PricePerUnit: decimal.NewFromInt(3500), IsActive: true, CreatedAt: now, UpdatedAt: now}
	internet := servicetypedomain.ServiceType{ID: 3, Name: "Internet", Category: servicetypedomain.CategoryFixed, PricePerUnit: decimal.NewFromInt(200000), IsActive: true, CreatedAt: now, UpdatedAt: now}
	retired := servicetypedomain.ServiceType{ID: 4, Name: "Cable TV", Category: servicetypedomain.CategoryFixed, PricePerUnit: decimal.NewFromInt(50000), IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, conn.Create(&room).Error)
	require.NoError(t, conn.Create(&electricity).Error)
	require.NoError(t, conn.Create(&internet).Error)
	require.NoError(t, conn.Create(&retired).Error)
	require.NoError(t, conn.Model(&retired).Update("is_active", false).Error)
	retired.IsActive = false

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	svc := New(Params{
		DB:              conn,
		Log:             zap.NewNop(),
		GenID:           node,
		Clock:           clock.NewFakeClock(now),
		Repo:            repository.Provide(),
		RoomRepo:        roomrepository.Provide(),
		ServiceTypeRepo: servicetyperepository.Provide(),
	})
	return fixture{svc: svc, db: conn, room: room, electricity: electricity, internet: internet, retired: retired}
}

func TestAssignFallsBackToDefaultPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.electricity.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, view.PricePerUnit)
	require.Nil(t, view.FixedPrice)
	require.True(t, decimal.NewFromInt(3500).Equal(*view.PricePerUnit))

	fixed := decimal.NewFromInt(180000)
	view, err = f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.internet.ID.String(), FixedPrice: &fixed})
	require.NoError(t, err)
	require.Nil(t, view.PricePerUnit)
	require.True(t, fixed.Equal(*view.FixedPrice))

	views, err := f.svc.ListByRoom(ctx, f.room.ID.String())
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "Electricity", views[0].ServiceTypeName)
	require.Equal(t, servicetypedomain.CategoryElectricity, views[0].ServiceCategory)

	pricing, ok := views[1].Pricing().(servicetypedomain.FixedPricing)
	require.True(t, ok)
	require.True(t, fixed.Equal(pricing.FixedPrice))
}

func TestAssignRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := decimal.NewFromInt(100)

	_, err := f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.electricity.ID.String(), FixedPrice: &price})
	require.True(t, ierr.IsInvalidInput(err))

	_, err = f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.retired.ID.String()})
	require.ErrorIs(t, err, domain.ErrInactiveService)
	require.True(t, ierr.IsInvalidState(err))

	_, err = f.svc.Create(ctx, domain.CreateRequest{RoomID: "77", ServiceTypeID: f.electricity.ID.String()})
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.electricity.ID.String()})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.electricity.ID.String()})
	require.ErrorIs(t, err, domain.ErrDuplicateAssignment)
}

func TestUpdatePriceKeepsCategoryField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, domain.CreateRequest{RoomID: f.room.ID.String(), ServiceTypeID: f.electricity.ID.String()})
	require.NoError(t, err)

	price := decimal.NewFromInt(4000)
	updated, err := f.svc.Update(ctx, view.ID.String(), domain.UpdateRequest{PricePerUnit: &price})
	require.NoError(t, err)
	require.True(t, price.Equal(*updated.PricePerUnit))

	_, err = f.svc.Update(ctx, view.ID.String(), domain.UpdateRequest{FixedPrice: &price})
	require.True(t, ierr.IsInvalidInput(err))

	require.NoError(t, f.svc.Delete(ctx, view.ID.String()))
	views, err := f.svc.ListByRoom(ctx, f.room.ID.String())
	require.NoError(t, err)
	require.Empty(t, views)
}
