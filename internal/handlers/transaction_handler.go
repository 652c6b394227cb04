package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/models"
	"kardbook/internal/pagination"
	"kardbook/internal/services"
)

// TransactionHandler handles the income/expense pages for a card.
type TransactionHandler struct {
	ledgerService   services.LedgerServicer
	cardService     services.CardServicer
	categoryService services.CategoryServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService services.LedgerServicer, cardService services.CardServicer, categoryService services.CategoryServicer) *TransactionHandler {
	return &TransactionHandler{
		ledgerService:   ledgerService,
		cardService:     cardService,
		categoryService: categoryService,
	}
}

// EntryForm represents the add/edit transaction form fields.
type EntryForm struct {
	Amount      float64 `form:"amount" binding:"required,gt=0"`
	TypeID      string  `form:"type_id"`
	Description string  `form:"description" binding:"max=200"`
}

// ListByCard renders one page of a card's active incomes and expenses.
func (h *TransactionHandler) ListByCard(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "cardID")
	if err != nil {
		renderError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Invalid page parameters"))
		return
	}

	card, err := h.cardService.GetCardByID(ident.UserID, cardID)
	if err != nil {
		renderError(c, err)
		return
	}

	entries, err := h.ledgerService.GetCardEntries(ident.UserID, cardID, page)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "transactions.html", gin.H{
		"User":     ident.Username,
		"Card":     card,
		"Incomes":  entries.Incomes,
		"Expenses": entries.Expenses,
	})
}

// AddIncomePage renders the add-income form for a card.
func (h *TransactionHandler) AddIncomePage(c *gin.Context) {
	h.renderEntryForm(c, "income", nil, nil)
}

// AddIncome records an income against the card and redirects back to it.
func (h *TransactionHandler) AddIncome(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "cardID")
	if err != nil {
		renderError(c, err)
		return
	}

	var form EntryForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a positive number"))
		return
	}

	if _, err := h.ledgerService.AddIncome(ident.UserID, cardID, optionalID(form.TypeID), form.Amount, form.Description); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+cardID)
}

// EditIncomePage renders the edit form for an income entry.
func (h *TransactionHandler) EditIncomePage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	income, err := h.ledgerService.GetIncomeByID(ident.UserID, incomeID)
	if err != nil {
		renderError(c, err)
		return
	}

	entry := entryView{
		ID:          income.ID,
		CardID:      income.CardID,
		TypeID:      income.TypeID,
		Amount:      income.Amount,
		Description: income.Description,
	}
	h.renderEntryForm(c, "income", &entry, nil)
}

// EditIncome applies the form to an income entry, reconciling the card's
// balance, then redirects back to the card.
func (h *TransactionHandler) EditIncome(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	var form EntryForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a positive number"))
		return
	}

	income, err := h.ledgerService.UpdateIncome(ident.UserID, incomeID, optionalID(form.TypeID), form.Amount, form.Description)
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+income.CardID)
}

// DeleteIncome soft-deletes an income entry and redirects back to the card.
func (h *TransactionHandler) DeleteIncome(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	income, err := h.ledgerService.GetIncomeByID(ident.UserID, incomeID)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.ledgerService.RemoveIncome(ident.UserID, incomeID); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+income.CardID)
}

// AddExpensePage renders the add-expense form for a card.
func (h *TransactionHandler) AddExpensePage(c *gin.Context) {
	h.renderEntryForm(c, "expense", nil, nil)
}

// AddExpense records an expense against the card and redirects back to it.
func (h *TransactionHandler) AddExpense(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "cardID")
	if err != nil {
		renderError(c, err)
		return
	}

	var form EntryForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a positive number"))
		return
	}

	if _, err := h.ledgerService.AddExpense(ident.UserID, cardID, optionalID(form.TypeID), form.Amount, form.Description); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+cardID)
}

// EditExpensePage renders the edit form for an expense entry.
func (h *TransactionHandler) EditExpensePage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	expense, err := h.ledgerService.GetExpenseByID(ident.UserID, expenseID)
	if err != nil {
		renderError(c, err)
		return
	}

	entry := entryView{
		ID:          expense.ID,
		CardID:      expense.CardID,
		TypeID:      expense.TypeID,
		Amount:      expense.Amount,
		Description: expense.Description,
	}
	h.renderEntryForm(c, "expense", &entry, nil)
}

// EditExpense applies the form to an expense entry, reconciling the card's
// balance, then redirects back to the card.
func (h *TransactionHandler) EditExpense(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	var form EntryForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a positive number"))
		return
	}

	expense, err := h.ledgerService.UpdateExpense(ident.UserID, expenseID, optionalID(form.TypeID), form.Amount, form.Description)
	if err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+expense.CardID)
}

// DeleteExpense soft-deletes an expense entry and redirects back to the card.
func (h *TransactionHandler) DeleteExpense(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	expense, err := h.ledgerService.GetExpenseByID(ident.UserID, expenseID)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.ledgerService.RemoveExpense(ident.UserID, expenseID); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions/card/"+expense.CardID)
}

// entryView is the kind-neutral shape the transaction form renders.
type entryView struct {
	ID          string
	CardID      string
	TypeID      *string
	Amount      float64
	Description string
}

// TypeRef returns the entry's type reference, or "" when uncategorized.
func (e entryView) TypeRef() string {
	if e.TypeID == nil {
		return ""
	}
	return *e.TypeID
}

// renderEntryForm renders the shared add/edit form. For add pages the card
// comes from the :cardID path segment; for edit pages it comes from the
// entry being edited.
func (h *TransactionHandler) renderEntryForm(c *gin.Context, kind string, entry *entryView, card *models.Card) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if card == nil {
		cardID := ""
		if entry != nil {
			cardID = entry.CardID
		} else {
			cardID, err = parsePathID(c, "cardID")
			if err != nil {
				renderError(c, err)
				return
			}
		}
		card, err = h.cardService.GetCardByID(ident.UserID, cardID)
		if err != nil {
			renderError(c, err)
			return
		}
	}

	typeKind := models.CustomKindIncomeType
	if kind == "expense" {
		typeKind = models.CustomKindExpenseType
	}
	options, err := h.categoryService.ListCategories(ident.UserID, typeKind)
	if err != nil {
		renderError(c, err)
		return
	}

	action := "/transactions/card/" + card.ID + "/add-" + kind
	if entry != nil {
		action = "/transactions/edit-" + kind + "/" + entry.ID
	}

	c.HTML(http.StatusOK, "transaction-form.html", gin.H{
		"User":    ident.Username,
		"Card":    card,
		"Kind":    kind,
		"Options": options,
		"Entry":   entry,
		"Action":  action,
	})
}
