// Package seed installs a small demo dataset for local environments.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/date"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	demoHouseName    = "Sunshine Boarding House"
	demoTenantName   = "Nguyen Van A"
	demoTenantPhone  = "0901234567"
	demoContractCode = "CT-2024-001"
)

type demoRoom struct {
	code     string
	floor    int
	baseRent int64
}

var demoRooms = []demoRoom{
	{code: "R101", floor: 1, baseRent: 3_000_000},
	{code: "R102", floor: 1, baseRent: 3_500_000},
	{code: "R201", floor: 2, baseRent: 3_200_000},
}

var demoServices = []servicetypedomain.ServiceType{
	{Name: "Electricity", Category: servicetypedomain.CategoryElectricity, Unit: "kWh", PricePerUnit: decimal.NewFromInt(3_000)},
	{Name: "Water", Category: servicetypedomain.CategoryWater, Unit: "m³", PricePerUnit: decimal.NewFromInt(15_000)},
	{Name: "Internet", Category: servicetypedomain.CategoryFixed, Unit: "month", PricePerUnit: decimal.NewFromInt(200_000)},
}

// EnsureDemoData seeds the demo house, rooms, tenant, catalog and one ACTIVE
// contract. Every record is looked up by its natural key first, so running
// it again changes nothing.
func EnsureDemoData(ctx context.Context, db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id generator is required")
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		house := boardinghousedomain.BoardingHouse{
			ID:             node.Generate(),
			Name:           demoHouseName,
			Slug:           slug.Make(demoHouseName),
			Address:        "12 Le Loi, District 1, Ho Chi Minh City",
			NumberOfFloors: 2,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := firstOrCreate(tx, &house, "slug = ?", house.Slug); err != nil {
			return err
		}

		rooms := make(map[string]roomdomain.Room, len(demoRooms))
		for _, spec := range demoRooms {
			room := roomdomain.Room{
				ID:              node.Generate(),
				BoardingHouseID: house.ID,
				Code:            spec.code,
				Floor:           spec.floor,
				Area:            decimal.NewFromInt(20),
				MaxOccupants:    2,
				BaseRent:        decimal.NewFromInt(spec.baseRent),
				Status:          roomdomain.StatusAvailable,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := firstOrCreate(tx, &room, "code = ?", room.Code); err != nil {
				return err
			}
			rooms[room.Code] = room
		}

		tenant := tenantdomain.Tenant{
			ID:        node.Generate(),
			FullName:  demoTenantName,
			Phone:     demoTenantPhone,
			Email:     "nguyenvana@example.com",
			Status:    tenantdomain.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := firstOrCreate(tx, &tenant, "full_name = ? AND phone = ?", tenant.FullName, tenant.Phone); err != nil {
			return err
		}

		r101 := rooms["R101"]
		for _, spec := range demoServices {
			st := spec
			st.ID, st.IsActive, st.CreatedAt, st.UpdatedAt = node.Generate(), true, now, now
			if err := firstOrCreate(tx, &st, "name = ?", st.Name); err != nil {
				return err
			}
			assignment := roomservicedomain.RoomService{
				ID:            node.Generate(),
				RoomID:        r101.ID,
				ServiceTypeID: st.ID,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := firstOrCreate(tx, &assignment, "room_id = ? AND service_type_id = ?", r101.ID, st.ID); err != nil {
				return err
			}
		}

		activatedAt := now
		contract := contractdomain.Contract{
			ID:           node.Generate(),
			Code:         demoContractCode,
			RoomID:       r101.ID,
			TenantID:     tenant.ID,
			StartDate:    date.New(2024, time.January, 1),
			EndDate:      date.New(2024, time.December, 31),
			Deposit:      decimal.NewFromInt(6_000_000),
			MonthlyRent:  decimal.NewFromInt(3_000_000),
			BillingCycle: contractdomain.BillingCycleMonthly,
			StoredStatus: contractdomain.StatusActive,
			ActivatedAt:  &activatedAt,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		created, err := createIfMissing(tx, &contract, "code = ?", contract.Code)
		if err != nil {
			return err
		}
		if created {
			if err := tx.Model(&roomdomain.Room{}).
				Where("id = ?", r101.ID).
				Updates(map[string]any{"status": roomdomain.StatusOccupied, "updated_at": now}).Error; err != nil {
				return err
			}
			log.Info("demo data seeded",
				zap.String("boarding_house_id", house.ID.String()),
				zap.String("contract_code", contract.Code),
			)
		}
		return nil
	})
}

// firstOrCreate loads the row matching query into dest, or inserts dest.
func firstOrCreate[T any](tx *gorm.DB, dest *T, query string, args ...any) error {
	_, err := createIfMissing(tx, dest, query, args...)
	return err
}

func createIfMissing[T any](tx *gorm.DB, dest *T, query string, args ...any) (bool, error) {
	var existing T
	err := tx.Where(query, args...).First(&existing).Error
	if err == nil {
		*dest = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, tx.Create(dest).Error
}
