package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	auditdomain "github.com/smallbiznis/boardinghouse/internal/audit/domain"
	boardinghousedomain "github.com/smallbiznis/boardinghouse/internal/boardinghouse/domain"
	contractdomain "github.com/smallbiznis/boardinghouse/internal/contract/domain"
	invoicedomain "github.com/smallbiznis/boardinghouse/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/boardinghouse/internal/payment/domain"
	roomdomain "github.com/smallbiznis/boardinghouse/internal/room/domain"
	roomservicedomain "github.com/smallbiznis/boardinghouse/internal/roomservice/domain"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
	tenantdomain "github.com/smallbiznis/boardinghouse/internal/tenant/domain"
	"github.com/smallbiznis/boardinghouse/pkg/db"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Models lists every persisted domain model in dependency order.
func Models() []any {
	return []any{
		&boardinghousedomain.BoardingHouse{},
		&roomdomain.Room{},
		&tenantdomain.Tenant{},
		&contractdomain.Contract{},
		&contractdomain.ContractTenant{},
		&servicetypedomain.ServiceType{},
		&roomservicedomain.RoomService{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceItem{},
		&paymentdomain.Payment{},
		&auditdomain.AuditLog{},
	}
}

// Apply brings the schema up to date. Postgres runs the embedded SQL
// migrations; other dialects use gorm AutoMigrate plus the partial index
// guarding one ACTIVE contract per room where the dialect supports it.
func Apply(conn *gorm.DB, dbType string) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}
	switch dbType {
	case db.TypePostgres, "":
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	default:
		if err := conn.AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		if dbType == db.TypeSQLite {
			return conn.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_contracts_room_active ON contracts (room_id) WHERE status = 'ACTIVE'`).Error
		}
		return nil
	}
}

// RunMigrations applies the embedded postgres migrations to db.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Closing the migrator would close the shared *sql.DB.

	return nil
}
