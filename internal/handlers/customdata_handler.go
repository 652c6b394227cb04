package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/models"
	"kardbook/internal/services"
)

// CustomDataHandler handles the CRUD pages for the user-defined label
// tables: account types, income types, and expense types. The kind comes
// from the :cdType path segment.
type CustomDataHandler struct {
	categoryService services.CategoryServicer
}

// NewCustomDataHandler creates a new CustomDataHandler
func NewCustomDataHandler(categoryService services.CategoryServicer) *CustomDataHandler {
	return &CustomDataHandler{categoryService: categoryService}
}

// CustomDataForm represents the add/edit label form fields.
type CustomDataForm struct {
	Name        string `form:"name" binding:"required,max=100"`
	Description string `form:"description" binding:"max=200"`
}

func parseKind(c *gin.Context) (models.CustomKind, error) {
	kind, ok := models.ParseCustomKind(c.Param("cdType"))
	if !ok {
		return "", apperrors.ErrUnknownKind
	}
	return kind, nil
}

// List renders all of the user's labels of one kind.
func (h *CustomDataHandler) List(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	items, err := h.categoryService.ListCategories(ident.UserID, kind)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "custom-data.html", gin.H{
		"User":      ident.Username,
		"Kind":      string(kind),
		"KindLabel": kind.Label(),
		"Items":     items,
	})
}

// AddPage renders the add form for one kind.
func (h *CustomDataHandler) AddPage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "custom-data-form.html", gin.H{
		"User":      ident.Username,
		"Kind":      string(kind),
		"KindLabel": kind.Label(),
		"Action":    "/custom-data/add-custom-data/" + string(kind),
	})
}

// Add creates a label and redirects to the kind's list.
func (h *CustomDataHandler) Add(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var form CustomDataForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "custom-data-form.html", gin.H{
			"User":      ident.Username,
			"Kind":      string(kind),
			"KindLabel": kind.Label(),
			"Action":    "/custom-data/add-custom-data/" + string(kind),
			"Msg":       "Name is required",
		})
		return
	}

	if _, err := h.categoryService.CreateCategory(ident.UserID, kind, form.Name, form.Description); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/custom-data/"+string(kind))
}

// EditPage renders the edit form for one of the user's labels.
func (h *CustomDataHandler) EditPage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	item, err := h.categoryService.GetCategoryByID(ident.UserID, kind, id)
	if err != nil {
		renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "custom-data-form.html", gin.H{
		"User":      ident.Username,
		"Kind":      string(kind),
		"KindLabel": kind.Label(),
		"Item":      item,
		"Action":    "/custom-data/edit-custom-data/" + string(kind) + "/" + item.ID,
	})
}

// Edit applies the submitted form to the label and redirects to the list.
func (h *CustomDataHandler) Edit(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	var form CustomDataForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, apperrors.WithMessage(apperrors.ErrValidation, "Name is required"))
		return
	}

	if _, err := h.categoryService.UpdateCategory(ident.UserID, kind, id, form.Name, form.Description); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/custom-data/"+string(kind))
}

// Delete removes a label and redirects to the list.
func (h *CustomDataHandler) Delete(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	kind, err := parseKind(c)
	if err != nil {
		renderError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(ident.UserID, kind, id); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/custom-data/"+string(kind))
}
