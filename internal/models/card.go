package models

// Card represents a user-owned financial account with a running balance.
type Card struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string  `gorm:"size:100;not null" json:"name"`
	Description   string  `gorm:"size:200" json:"description"`
	AccountTypeID *string `gorm:"type:uuid" json:"account_type_id,omitempty"`
	Balance       float64 `gorm:"not null;default:0" json:"balance"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`

	Incomes  []Income  `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"incomes,omitempty"`
	Expenses []Expense `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}

// TypeRef returns the account type reference, or "" when uncategorized.
func (c Card) TypeRef() string {
	if c.AccountTypeID == nil {
		return ""
	}
	return *c.AccountTypeID
}
