package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/models"
	"kardbook/internal/pagination"
)

// ledgerService handles income and expense entries. Every mutation pairs
// the entry write with a balance adjustment on the owning card inside one
// database transaction, so a crash mid-operation never leaves the balance
// out of step with the entries.
//
// The arithmetic is symmetric: incomes add on create and subtract on
// removal, expenses subtract on create and add back on removal, and amount
// edits reconcile by the difference.
type ledgerService struct {
	db          *gorm.DB
	cardService CardServicer
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB, cardService CardServicer) LedgerServicer {
	return &ledgerService{
		db:          db,
		cardService: cardService,
	}
}

func validateAmount(amount float64) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	return nil
}

// AddIncome records a new income entry and raises the card's balance by the
// amount. The caller must own the card.
func (s *ledgerService) AddIncome(userID, cardID string, typeID *string, amount float64, description string) (*models.Income, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	card, err := s.cardService.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	income := &models.Income{
		UserID:      userID,
		CardID:      card.ID,
		TypeID:      typeID,
		Amount:      amount,
		Description: description,
		IsActive:    true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.cardService.ApplyBalanceDelta(tx, card.ID, amount)
	})
	if err != nil {
		return nil, err
	}
	return income, nil
}

// GetIncomeByID retrieves an active income entry for a specific user.
func (s *ledgerService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	var income models.Income
	if err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", incomeID, userID, true).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncome edits an income entry. When the amount changes, the card's
// balance moves by the difference between the new and old amounts; an
// unchanged amount leaves the balance untouched. The entry is read inside
// the transaction and the write is guarded on the amount the delta was
// computed from, so a concurrent edit or removal cannot desync the balance.
func (s *ledgerService) UpdateIncome(userID, incomeID string, typeID *string, amount float64, description string) (*models.Income, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var income models.Income
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", incomeID, userID, true).First(&income).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		delta := amount - income.Amount
		updates := map[string]interface{}{
			"type_id":     typeID,
			"amount":      amount,
			"description": description,
		}
		res := tx.Model(&models.Income{}).
			Where("id = ? AND is_active = ? AND amount = ?", income.ID, true, income.Amount).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent writer changed or removed the entry first.
			return apperrors.ErrEntryNotFound
		}
		if delta == 0 {
			return nil
		}
		return s.cardService.ApplyBalanceDelta(tx, income.CardID, delta)
	})
	if err != nil {
		return nil, err
	}

	income.TypeID = typeID
	income.Amount = amount
	income.Description = description
	return &income, nil
}

// RemoveIncome soft-deletes an income entry and subtracts its amount from
// the card's balance. The row stays in storage with is_active = false. The
// flag flip is guarded on is_active, so two concurrent removals of the same
// entry subtract at most once.
func (s *ledgerService) RemoveIncome(userID, incomeID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var income models.Income
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", incomeID, userID, true).First(&income).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Model(&models.Income{}).
			Where("id = ? AND is_active = ? AND amount = ?", income.ID, true, income.Amount).
			Update("is_active", false)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEntryNotFound
		}
		return s.cardService.ApplyBalanceDelta(tx, income.CardID, -income.Amount)
	})
}

// AddExpense records a new expense entry and lowers the card's balance by
// the amount. The caller must own the card.
func (s *ledgerService) AddExpense(userID, cardID string, typeID *string, amount float64, description string) (*models.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	card, err := s.cardService.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		CardID:      card.ID,
		TypeID:      typeID,
		Amount:      amount,
		Description: description,
		IsActive:    true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.cardService.ApplyBalanceDelta(tx, card.ID, -amount)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpenseByID retrieves an active expense entry for a specific user.
func (s *ledgerService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ? AND is_active = ?", expenseID, userID, true).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense edits an expense entry, reconciling the card's balance by
// the difference when the amount changes. Reads and guarded writes follow
// the same transactional pattern as UpdateIncome.
func (s *ledgerService) UpdateExpense(userID, expenseID string, typeID *string, amount float64, description string) (*models.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var expense models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", expenseID, userID, true).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		delta := amount - expense.Amount
		updates := map[string]interface{}{
			"type_id":     typeID,
			"amount":      amount,
			"description": description,
		}
		res := tx.Model(&models.Expense{}).
			Where("id = ? AND is_active = ? AND amount = ?", expense.ID, true, expense.Amount).
			Updates(updates)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEntryNotFound
		}
		if delta == 0 {
			return nil
		}
		// A larger expense lowers the balance further.
		return s.cardService.ApplyBalanceDelta(tx, expense.CardID, -delta)
	})
	if err != nil {
		return nil, err
	}

	expense.TypeID = typeID
	expense.Amount = amount
	expense.Description = description
	return &expense, nil
}

// RemoveExpense soft-deletes an expense entry and adds its amount back to
// the card's balance. Guarded like RemoveIncome, so the refund applies at
// most once.
func (s *ledgerService) RemoveExpense(userID, expenseID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ? AND user_id = ? AND is_active = ?", expenseID, userID, true).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEntryNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		res := tx.Model(&models.Expense{}).
			Where("id = ? AND is_active = ? AND amount = ?", expense.ID, true, expense.Amount).
			Update("is_active", false)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrEntryNotFound
		}
		return s.cardService.ApplyBalanceDelta(tx, expense.CardID, expense.Amount)
	})
}

// GetCardEntries retrieves one page each of a card's active incomes and
// expenses, newest first. The caller must own the card.
func (s *ledgerService) GetCardEntries(userID, cardID string, page pagination.PageRequest) (*CardEntries, error) {
	card, err := s.cardService.GetCardByID(userID, cardID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	incomeBase := s.db.Model(&models.Income{}).
		Where("user_id = ? AND card_id = ? AND is_active = ?", userID, card.ID, true)
	var incomeTotal int64
	if err := incomeBase.Count(&incomeTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var incomes []models.Income
	if err := incomeBase.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	expenseBase := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND card_id = ? AND is_active = ?", userID, card.ID, true)
	var expenseTotal int64
	if err := expenseBase.Count(&expenseTotal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var expenses []models.Expense
	if err := expenseBase.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &CardEntries{
		Incomes:  pagination.NewPageResponse(incomes, page.Page, page.PageSize, incomeTotal),
		Expenses: pagination.NewPageResponse(expenses, page.Page, page.PageSize, expenseTotal),
	}, nil
}
