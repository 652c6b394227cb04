package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kardbook/internal/models"
	"kardbook/internal/services"
)

// CardHandler handles the card CRUD pages.
type CardHandler struct {
	cardService     services.CardServicer
	categoryService services.CategoryServicer
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService services.CardServicer, categoryService services.CategoryServicer) *CardHandler {
	return &CardHandler{
		cardService:     cardService,
		categoryService: categoryService,
	}
}

// CardForm represents the add/edit card form fields.
type CardForm struct {
	Name        string  `form:"name" binding:"required,max=100"`
	Description string  `form:"description" binding:"max=200"`
	CardType    string  `form:"card_type"`
	Balance     float64 `form:"balance"`
}

// List renders all of the user's cards.
func (h *CardHandler) List(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cards, err := h.cardService.GetUserCards(ident.UserID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "cards.html", gin.H{
		"User":  ident.Username,
		"Cards": cards,
	})
}

// AddCardPage renders the add-card form with the user's account types.
func (h *CardHandler) AddCardPage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardTypes, err := h.categoryService.ListCategories(ident.UserID, models.CustomKindAccountType)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "card-form.html", gin.H{
		"User":      ident.Username,
		"CardTypes": cardTypes,
		"Action":    "/cards/add-card",
	})
}

// AddCard creates a card from the submitted form and redirects to the list.
func (h *CardHandler) AddCard(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var form CardForm
	if err := c.ShouldBind(&form); err != nil {
		h.rerenderCardForm(c, ident.Username, nil, "/cards/add-card", "Invalid card details")
		return
	}

	if _, err := h.cardService.CreateCard(ident.UserID, form.Name, form.Description, optionalID(form.CardType), form.Balance); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cards")
}

// EditCardPage renders the edit form for one of the user's cards.
func (h *CardHandler) EditCardPage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	card, err := h.cardService.GetCardByID(ident.UserID, cardID)
	if err != nil {
		renderError(c, err)
		return
	}

	cardTypes, err := h.categoryService.ListCategories(ident.UserID, models.CustomKindAccountType)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "card-form.html", gin.H{
		"User":      ident.Username,
		"Card":      card,
		"CardTypes": cardTypes,
		"Action":    "/cards/edit-card/" + card.ID,
	})
}

// EditCard applies the submitted form to the card and redirects to the list.
func (h *CardHandler) EditCard(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	var form CardForm
	if err := c.ShouldBind(&form); err != nil {
		card, getErr := h.cardService.GetCardByID(ident.UserID, cardID)
		if getErr != nil {
			renderError(c, getErr)
			return
		}
		h.rerenderCardForm(c, ident.Username, card, "/cards/edit-card/"+cardID, "Invalid card details")
		return
	}

	if _, err := h.cardService.UpdateCard(ident.UserID, cardID, form.Name, form.Description, optionalID(form.CardType), form.Balance); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cards")
}

// DeleteCard removes a card and its entries, then redirects to the list.
func (h *CardHandler) DeleteCard(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	cardID, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.cardService.DeleteCard(ident.UserID, cardID); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/cards")
}

func (h *CardHandler) rerenderCardForm(c *gin.Context, username string, card *models.Card, action, msg string) {
	cardTypes, err := h.categoryService.ListCategories(userIDFromContext(c), models.CustomKindAccountType)
	if err != nil {
		cardTypes = nil
	}
	c.HTML(http.StatusOK, "card-form.html", gin.H{
		"User":      username,
		"Card":      card,
		"CardTypes": cardTypes,
		"Action":    action,
		"Msg":       msg,
	})
}

func userIDFromContext(c *gin.Context) string {
	ident, _ := currentIdentity(c)
	return ident.UserID
}
