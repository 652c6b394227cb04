package models

// CustomKind selects which of the user-defined label tables an operation
// targets. The three tables share one row shape.
type CustomKind string

const (
	CustomKindAccountType CustomKind = "account-type"
	CustomKindIncomeType  CustomKind = "income-type"
	CustomKindExpenseType CustomKind = "expense-type"
)

// ParseCustomKind maps a URL slug to a CustomKind.
func ParseCustomKind(s string) (CustomKind, bool) {
	switch CustomKind(s) {
	case CustomKindAccountType, CustomKindIncomeType, CustomKindExpenseType:
		return CustomKind(s), true
	default:
		return "", false
	}
}

// Table returns the database table backing the kind.
func (k CustomKind) Table() string {
	switch k {
	case CustomKindAccountType:
		return "account_types"
	case CustomKindIncomeType:
		return "income_types"
	case CustomKindExpenseType:
		return "expense_types"
	}
	return ""
}

// Label returns a human-readable name for the kind.
func (k CustomKind) Label() string {
	switch k {
	case CustomKindAccountType:
		return "Account Type"
	case CustomKindIncomeType:
		return "Income Type"
	case CustomKindExpenseType:
		return "Expense Type"
	}
	return ""
}

// CustomType is a user-defined category label. The same struct maps onto
// the account_types, income_types, and expense_types tables; callers pick
// the table with CustomKind.Table().
type CustomType struct {
	Base
	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:200" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
