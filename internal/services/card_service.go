package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/models"
)

// cardService handles card-related business logic.
type cardService struct {
	db *gorm.DB
}

// NewCardService creates a new CardServicer.
func NewCardService(db *gorm.DB) CardServicer {
	return &cardService{db: db}
}

// CreateCard creates a new card for a user. The balance starts at the value
// supplied by the owner, not necessarily zero.
func (s *cardService) CreateCard(userID, name, description string, accountTypeID *string, balance float64) (*models.Card, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "card name is required")
	}

	card := &models.Card{
		UserID:        userID,
		Name:          name,
		Description:   description,
		AccountTypeID: accountTypeID,
		Balance:       balance,
		IsActive:      true,
	}

	if err := s.db.Create(card).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// GetUserCards retrieves all active cards owned by a user.
func (s *cardService) GetUserCards(userID string) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at").
		Find(&cards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cards, nil
}

// GetCardByID retrieves a card by ID for a specific user. Cards owned by
// other users surface as not found.
func (s *cardService) GetCardByID(userID, cardID string) (*models.Card, error) {
	var card models.Card
	if err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", cardID, userID, true).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &card, nil
}

// UpdateCard overwrites a card's editable fields. Writing the balance
// directly re-bases the running total; subsequent entries adjust from the
// new value.
func (s *cardService) UpdateCard(userID, cardID, name, description string, accountTypeID *string, balance float64) (*models.Card, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "card name is required")
	}

	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":            name,
		"description":     description,
		"account_type_id": accountTypeID,
		"balance":         balance,
	}
	if err := s.db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return card, nil
}

// DeleteCard removes a card and all entries recorded against it.
func (s *cardService) DeleteCard(userID, cardID string) error {
	card, err := s.GetCardByID(userID, cardID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).Delete(&models.Income{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("card_id = ?", card.ID).Delete(&models.Expense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(card).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ApplyBalanceDelta adjusts a card's balance by delta as a single SQL
// increment. The read-modify-write happens inside the database, so
// concurrent mutations against the same card serialize on the row instead
// of losing updates.
func (s *cardService) ApplyBalanceDelta(tx *gorm.DB, cardID string, delta float64) error {
	if err := tx.Model(&models.Card{}).
		Where("id = ?", cardID).
		Update("balance", gorm.Expr("balance + ?", delta)).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
