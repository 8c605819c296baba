package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"stockroom/internal/infrastructure/migrations"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/stockroom_test?parseTime=true&loc=UTC"

// SetupTestDB opens the test database named by TEST_DATABASE_DSN and migrates it.
// The test is skipped when the database is unreachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := migrations.Run(context.Background(), db, "up"); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	CleanTables(t, db)
	t.Cleanup(func() {
		CleanTables(t, db)
		db.Close()
	})
	return db
}

// CleanTables empties every table, children first.
func CleanTables(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{"audit_logs", "components_assets", "components", "assets", "users", "locations", "categories", "companies"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// Fixtures holds the reference rows most component tests need.
type Fixtures struct {
	CompanyID  int64
	CategoryID int64
	LocationID int64
	UserID     int64
	AssetID    int64
}

func SeedFixtures(t *testing.T, db *sql.DB) Fixtures {
	t.Helper()

	var f Fixtures
	f.CompanyID = insert(t, db, `INSERT INTO companies (name) VALUES (?)`, "Acme")
	f.CategoryID = insert(t, db, `INSERT INTO categories (name) VALUES (?)`, "Memory")
	f.LocationID = insert(t, db, `INSERT INTO locations (name) VALUES (?)`, "Warehouse")
	f.UserID = insert(t, db, `INSERT INTO users (username, company_id) VALUES (?, ?)`, "admin", f.CompanyID)
	f.AssetID = SeedAsset(t, db, "WS-001", &f.CompanyID)
	return f
}

func SeedAsset(t *testing.T, db *sql.DB, tag string, companyID *int64) int64 {
	t.Helper()
	return insert(t, db, `INSERT INTO assets (name, asset_tag, company_id) VALUES (?, ?, ?)`, "Workstation "+tag, tag, companyID)
}

func insert(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	result, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("seeding: %v", err)
	}
	return id
}
