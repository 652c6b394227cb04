package services

import (
	"gorm.io/gorm"

	"kardbook/internal/models"
	"kardbook/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(email, username, firstName, lastName, password string) (*models.User, error)
	AuthenticateUser(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ChangePassword(username, currentPassword, newPassword string) error
	DeleteUser(userID string) error
}

// CardServicer defines the contract for card-related business logic.
type CardServicer interface {
	CreateCard(userID, name, description string, accountTypeID *string, balance float64) (*models.Card, error)
	GetUserCards(userID string) ([]models.Card, error)
	GetCardByID(userID, cardID string) (*models.Card, error)
	UpdateCard(userID, cardID, name, description string, accountTypeID *string, balance float64) (*models.Card, error)
	DeleteCard(userID, cardID string) error
	ApplyBalanceDelta(tx *gorm.DB, cardID string, delta float64) error
}

// CategoryServicer defines the contract for the user-defined label tables
// (account types, income types, expense types).
type CategoryServicer interface {
	CreateCategory(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error)
	ListCategories(userID string, kind models.CustomKind) ([]models.CustomType, error)
	GetCategoryByID(userID string, kind models.CustomKind, categoryID string) (*models.CustomType, error)
	UpdateCategory(userID string, kind models.CustomKind, categoryID, name, description string) (*models.CustomType, error)
	DeleteCategory(userID string, kind models.CustomKind, categoryID string) error
}

// CardEntries bundles one page each of a card's active incomes and expenses.
type CardEntries struct {
	Incomes  pagination.PageResponse[models.Income]
	Expenses pagination.PageResponse[models.Expense]
}

// LedgerServicer defines the contract for income/expense entries. Every
// mutation keeps the owning card's balance consistent with the set of
// active entries.
type LedgerServicer interface {
	AddIncome(userID, cardID string, typeID *string, amount float64, description string) (*models.Income, error)
	GetIncomeByID(userID, incomeID string) (*models.Income, error)
	UpdateIncome(userID, incomeID string, typeID *string, amount float64, description string) (*models.Income, error)
	RemoveIncome(userID, incomeID string) error

	AddExpense(userID, cardID string, typeID *string, amount float64, description string) (*models.Expense, error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, typeID *string, amount float64, description string) (*models.Expense, error)
	RemoveExpense(userID, expenseID string) error

	GetCardEntries(userID, cardID string, page pagination.PageRequest) (*CardEntries, error)
}
