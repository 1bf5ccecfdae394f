package migration

import (
	"testing"

	"github.com/smallbiznis/boardinghouse/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySQLite(t *testing.T) {
	conn, err := db.NewTest()
	require.NoError(t, err)

	require.NoError(t, Apply(conn, db.TypeSQLite))
	// Idempotent on restart.
	require.NoError(t, Apply(conn, db.TypeSQLite))

	for _, table := range []string{"boarding_houses", "rooms", "tenants", "contracts", "contract_tenants", "service_types", "room_services", "invoices", "invoice_items", "payments", "audit_logs"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	require.NoError(t, conn.Exec(`INSERT INTO contracts (id, code, room_id, tenant_id, start_date, end_date, deposit, monthly_rent, billing_cycle, status, created_at, updated_at)
		VALUES (1, 'CT-1', 10, 20, '2024-01-01', '2024-12-31', 0, 1, 'MONTHLY', 'ACTIVE', '2024-01-01', '2024-01-01')`).Error)
	err = conn.Exec(`INSERT INTO contracts (id, code, room_id, tenant_id, start_date, end_date, deposit, monthly_rent, billing_cycle, status, created_at, updated_at)
		VALUES (2, 'CT-2', 10, 21, '2024-01-01', '2024-12-31', 0, 1, 'MONTHLY', 'ACTIVE', '2024-01-01', '2024-01-01')`).Error
	assert.True(t, db.IsDuplicateKeyErr(err), "second ACTIVE contract on the room must violate the partial index: %v", err)
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	entries, err := embeddedMigrations.ReadDir(migrationsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
