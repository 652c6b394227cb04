package models

// User represents the user model in the database
type User struct {
	Base
	Email     string `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Username  string `gorm:"size:45;uniqueIndex;not null" json:"username"`
	FirstName string `gorm:"size:45" json:"first_name"`
	LastName  string `gorm:"size:45" json:"last_name"`
	Password  string `gorm:"size:200;not null" json:"-"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	Cards    []Card    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	Incomes  []Income  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"incomes,omitempty"`
	Expenses []Expense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"expenses,omitempty"`
}
