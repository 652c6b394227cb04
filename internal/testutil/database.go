// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"kardbook/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels is the list of all GORM models to auto-migrate in tests.
var allModels = []interface{}{
	&models.User{},
	&models.Card{},
	&models.Income{},
	&models.Expense{},
}

// customKinds lists the label tables that share the CustomType row shape.
var customKinds = []models.CustomKind{
	models.CustomKindAccountType,
	models.CustomKindIncomeType,
	models.CustomKindExpenseType,
}

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// Each call gets its own named database so parallel tests stay isolated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	for _, kind := range customKinds {
		if err := db.Table(kind.Table()).AutoMigrate(&models.CustomType{}); err != nil {
			t.Fatalf("failed to migrate %s table: %v", kind.Table(), err)
		}
	}

	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
