package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"kardbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email/username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	n := nextID()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d@test.com", n), fmt.Sprintf("user%d", n))
}

// CreateTestUserWithName creates a user with the given email and username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  string(hash),
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCard creates a card with zero balance.
func CreateTestCard(t *testing.T, db *gorm.DB, userID string) *models.Card {
	t.Helper()
	return CreateTestCardWithBalance(t, db, userID, 0)
}

// CreateTestCardWithBalance creates a card with the given balance.
func CreateTestCardWithBalance(t *testing.T, db *gorm.DB, userID string, balance float64) *models.Card {
	t.Helper()

	card := &models.Card{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Card %d", nextID()),
		Balance:  balance,
		IsActive: true,
	}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("failed to create test card: %v", err)
	}
	return card
}

// CreateTestCustomType creates a label row of the given kind.
func CreateTestCustomType(t *testing.T, db *gorm.DB, userID string, kind models.CustomKind) *models.CustomType {
	t.Helper()

	ct := &models.CustomType{
		UserID:   userID,
		Name:     fmt.Sprintf("Test %s %d", kind.Label(), nextID()),
		IsActive: true,
	}
	if err := db.Table(kind.Table()).Create(ct).Error; err != nil {
		t.Fatalf("failed to create test %s: %v", kind.Label(), err)
	}
	return ct
}

// CreateTestIncome creates an income row without touching the card balance.
func CreateTestIncome(t *testing.T, db *gorm.DB, userID, cardID string, amount float64) *models.Income {
	t.Helper()

	income := &models.Income{
		UserID:   userID,
		CardID:   cardID,
		Amount:   amount,
		IsActive: true,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income: %v", err)
	}
	return income
}

// CreateTestExpense creates an expense row without touching the card balance.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, cardID string, amount float64) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:   userID,
		CardID:   cardID,
		Amount:   amount,
		IsActive: true,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
