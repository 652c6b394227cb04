package handlers

import (
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"kardbook/internal/models"
)

func setupCustomDataRouter(handler *CustomDataHandler) *gin.Engine {
	r := newTestRouter()
	group := r.Group("/custom-data")
	group.Use(injectIdentity(testUserID, "alice"))
	group.GET("/:cdType", handler.List)
	group.GET("/add-custom-data/:cdType", handler.AddPage)
	group.POST("/add-custom-data/:cdType", handler.Add)
	group.GET("/edit-custom-data/:cdType/:id", handler.EditPage)
	group.POST("/edit-custom-data/:cdType/:id", handler.Edit)
	group.GET("/delete/:cdType/:id", handler.Delete)
	return r
}

func TestCustomDataList(t *testing.T) {
	t.Run("renders_items", func(t *testing.T) {
		svc := &mockCategoryService{
			listCategoriesFn: func(userID string, kind models.CustomKind) ([]models.CustomType, error) {
				if kind != models.CustomKindIncomeType {
					t.Errorf("expected income-type kind, got %s", kind)
				}
				salary := models.CustomType{Name: "Salary"}
				salary.ID = testItemID
				return []models.CustomType{salary}, nil
			},
		}
		r := setupCustomDataRouter(NewCustomDataHandler(svc))

		rec := doGet(r, "/custom-data/income-type")
		if rec.Code != 200 {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		assertBodyContains(t, rec, "Salary")
		assertBodyContains(t, rec, "Income Type")
	})

	t.Run("unknown_kind", func(t *testing.T) {
		r := setupCustomDataRouter(NewCustomDataHandler(&mockCategoryService{}))

		rec := doGet(r, "/custom-data/budget-type")
		if rec.Code != 404 {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
		assertBodyContains(t, rec, "Unknown custom data kind")
	})
}

func TestCustomDataAdd(t *testing.T) {
	t.Run("valid_form_creates_and_redirects", func(t *testing.T) {
		var gotKind models.CustomKind
		var gotName string
		svc := &mockCategoryService{
			createCategoryFn: func(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error) {
				gotKind = kind
				gotName = name
				return &models.CustomType{}, nil
			},
		}
		r := setupCustomDataRouter(NewCustomDataHandler(svc))

		rec := doForm(r, "/custom-data/add-custom-data/expense-type", url.Values{
			"name":        {"Groceries"},
			"description": {"weekly shop"},
		})
		assertRedirect(t, rec, "/custom-data/expense-type")
		if gotKind != models.CustomKindExpenseType || gotName != "Groceries" {
			t.Errorf("unexpected create args: %s %s", gotKind, gotName)
		}
	})

	t.Run("missing_name_rerenders_form", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error) {
				t.Error("CreateCategory should not be called on invalid form")
				return nil, nil
			},
		}
		r := setupCustomDataRouter(NewCustomDataHandler(svc))

		rec := doForm(r, "/custom-data/add-custom-data/expense-type", url.Values{})
		if rec.Code != 200 {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		assertBodyContains(t, rec, "Name is required")
	})
}

func TestCustomDataEdit(t *testing.T) {
	var gotName string
	svc := &mockCategoryService{
		updateCategoryFn: func(userID string, kind models.CustomKind, categoryID, name, description string) (*models.CustomType, error) {
			gotName = name
			if categoryID != testItemID {
				t.Errorf("expected category %s, got %s", testItemID, categoryID)
			}
			return &models.CustomType{}, nil
		},
	}
	r := setupCustomDataRouter(NewCustomDataHandler(svc))

	rec := doForm(r, "/custom-data/edit-custom-data/account-type/"+testItemID, url.Values{
		"name": {"Bank"},
	})
	assertRedirect(t, rec, "/custom-data/account-type")
	if gotName != "Bank" {
		t.Errorf("expected name Bank, got %s", gotName)
	}
}

func TestCustomDataDelete(t *testing.T) {
	called := false
	svc := &mockCategoryService{
		deleteCategoryFn: func(userID string, kind models.CustomKind, categoryID string) error {
			called = true
			return nil
		},
	}
	r := setupCustomDataRouter(NewCustomDataHandler(svc))

	rec := doGet(r, "/custom-data/delete/account-type/"+testItemID)
	assertRedirect(t, rec, "/custom-data/account-type")
	if !called {
		t.Error("expected DeleteCategory to be called")
	}
}
