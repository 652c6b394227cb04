package models

// Income is a credit entry against a card. Creating one raises the card's
// balance by Amount; soft-deleting it lowers the balance back.
type Income struct {
	Base
	UserID      string  `gorm:"type:uuid;not null;index" json:"user_id"`
	CardID      string  `gorm:"type:uuid;not null;index" json:"card_id"`
	TypeID      *string `gorm:"type:uuid" json:"type_id,omitempty"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Description string  `gorm:"size:200" json:"description"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}
