package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kardbook/internal/models"
	"kardbook/internal/pagination"
	"kardbook/internal/services"
	"kardbook/internal/validator"
	"kardbook/web"
)

// Fixed IDs for requests that must carry valid UUIDs.
const (
	testUserID = "0190b5e8-0000-7000-8000-000000000001"
	testCardID = "0190b5e8-0000-7000-8000-000000000002"
	testItemID = "0190b5e8-0000-7000-8000-000000000003"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// --- mock services ---

type mockUserService struct {
	registerFn         func(email, username, firstName, lastName, password string) (*models.User, error)
	authenticateUserFn func(username, password string) (*models.User, error)
	getUserByIDFn      func(id string) (*models.User, error)
	changePasswordFn   func(username, currentPassword, newPassword string) error
	deleteUserFn       func(userID string) error
}

func (m *mockUserService) Register(email, username, firstName, lastName, password string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(email, username, firstName, lastName, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) AuthenticateUser(username, password string) (*models.User, error) {
	if m.authenticateUserFn != nil {
		return m.authenticateUserFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ChangePassword(username, currentPassword, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(username, currentPassword, newPassword)
	}
	return nil
}

func (m *mockUserService) DeleteUser(userID string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(userID)
	}
	return nil
}

type mockCardService struct {
	createCardFn   func(userID, name, description string, accountTypeID *string, balance float64) (*models.Card, error)
	getUserCardsFn func(userID string) ([]models.Card, error)
	getCardByIDFn  func(userID, cardID string) (*models.Card, error)
	updateCardFn   func(userID, cardID, name, description string, accountTypeID *string, balance float64) (*models.Card, error)
	deleteCardFn   func(userID, cardID string) error
}

func (m *mockCardService) CreateCard(userID, name, description string, accountTypeID *string, balance float64) (*models.Card, error) {
	if m.createCardFn != nil {
		return m.createCardFn(userID, name, description, accountTypeID, balance)
	}
	return &models.Card{}, nil
}

func (m *mockCardService) GetUserCards(userID string) ([]models.Card, error) {
	if m.getUserCardsFn != nil {
		return m.getUserCardsFn(userID)
	}
	return nil, nil
}

func (m *mockCardService) GetCardByID(userID, cardID string) (*models.Card, error) {
	if m.getCardByIDFn != nil {
		return m.getCardByIDFn(userID, cardID)
	}
	card := &models.Card{UserID: userID, Name: "Card"}
	card.ID = cardID
	return card, nil
}

func (m *mockCardService) UpdateCard(userID, cardID, name, description string, accountTypeID *string, balance float64) (*models.Card, error) {
	if m.updateCardFn != nil {
		return m.updateCardFn(userID, cardID, name, description, accountTypeID, balance)
	}
	return &models.Card{}, nil
}

func (m *mockCardService) DeleteCard(userID, cardID string) error {
	if m.deleteCardFn != nil {
		return m.deleteCardFn(userID, cardID)
	}
	return nil
}

func (m *mockCardService) ApplyBalanceDelta(_ *gorm.DB, _ string, _ float64) error {
	return nil
}

type mockCategoryService struct {
	createCategoryFn  func(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error)
	listCategoriesFn  func(userID string, kind models.CustomKind) ([]models.CustomType, error)
	getCategoryByIDFn func(userID string, kind models.CustomKind, categoryID string) (*models.CustomType, error)
	updateCategoryFn  func(userID string, kind models.CustomKind, categoryID, name, description string) (*models.CustomType, error)
	deleteCategoryFn  func(userID string, kind models.CustomKind, categoryID string) error
}

func (m *mockCategoryService) CreateCategory(userID string, kind models.CustomKind, name, description string) (*models.CustomType, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, kind, name, description)
	}
	return &models.CustomType{}, nil
}

func (m *mockCategoryService) ListCategories(userID string, kind models.CustomKind) ([]models.CustomType, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(userID, kind)
	}
	return nil, nil
}

func (m *mockCategoryService) GetCategoryByID(userID string, kind models.CustomKind, categoryID string) (*models.CustomType, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, kind, categoryID)
	}
	ct := &models.CustomType{UserID: userID}
	ct.ID = categoryID
	return ct, nil
}

func (m *mockCategoryService) UpdateCategory(userID string, kind models.CustomKind, categoryID, name, description string) (*models.CustomType, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, kind, categoryID, name, description)
	}
	return &models.CustomType{}, nil
}

func (m *mockCategoryService) DeleteCategory(userID string, kind models.CustomKind, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, kind, categoryID)
	}
	return nil
}

type mockLedgerService struct {
	addIncomeFn      func(userID, cardID string, typeID *string, amount float64, description string) (*models.Income, error)
	getIncomeByIDFn  func(userID, incomeID string) (*models.Income, error)
	updateIncomeFn   func(userID, incomeID string, typeID *string, amount float64, description string) (*models.Income, error)
	removeIncomeFn   func(userID, incomeID string) error
	addExpenseFn     func(userID, cardID string, typeID *string, amount float64, description string) (*models.Expense, error)
	getExpenseByIDFn func(userID, expenseID string) (*models.Expense, error)
	updateExpenseFn  func(userID, expenseID string, typeID *string, amount float64, description string) (*models.Expense, error)
	removeExpenseFn  func(userID, expenseID string) error
	getCardEntriesFn func(userID, cardID string, page pagination.PageRequest) (*services.CardEntries, error)
}

func (m *mockLedgerService) AddIncome(userID, cardID string, typeID *string, amount float64, description string) (*models.Income, error) {
	if m.addIncomeFn != nil {
		return m.addIncomeFn(userID, cardID, typeID, amount, description)
	}
	return &models.Income{CardID: cardID}, nil
}

func (m *mockLedgerService) GetIncomeByID(userID, incomeID string) (*models.Income, error) {
	if m.getIncomeByIDFn != nil {
		return m.getIncomeByIDFn(userID, incomeID)
	}
	income := &models.Income{UserID: userID, CardID: testCardID}
	income.ID = incomeID
	return income, nil
}

func (m *mockLedgerService) UpdateIncome(userID, incomeID string, typeID *string, amount float64, description string) (*models.Income, error) {
	if m.updateIncomeFn != nil {
		return m.updateIncomeFn(userID, incomeID, typeID, amount, description)
	}
	return &models.Income{CardID: testCardID}, nil
}

func (m *mockLedgerService) RemoveIncome(userID, incomeID string) error {
	if m.removeIncomeFn != nil {
		return m.removeIncomeFn(userID, incomeID)
	}
	return nil
}

func (m *mockLedgerService) AddExpense(userID, cardID string, typeID *string, amount float64, description string) (*models.Expense, error) {
	if m.addExpenseFn != nil {
		return m.addExpenseFn(userID, cardID, typeID, amount, description)
	}
	return &models.Expense{CardID: cardID}, nil
}

func (m *mockLedgerService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	expense := &models.Expense{UserID: userID, CardID: testCardID}
	expense.ID = expenseID
	return expense, nil
}

func (m *mockLedgerService) UpdateExpense(userID, expenseID string, typeID *string, amount float64, description string) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, typeID, amount, description)
	}
	return &models.Expense{CardID: testCardID}, nil
}

func (m *mockLedgerService) RemoveExpense(userID, expenseID string) error {
	if m.removeExpenseFn != nil {
		return m.removeExpenseFn(userID, expenseID)
	}
	return nil
}

func (m *mockLedgerService) GetCardEntries(userID, cardID string, page pagination.PageRequest) (*services.CardEntries, error) {
	if m.getCardEntriesFn != nil {
		return m.getCardEntriesFn(userID, cardID, page)
	}
	return &services.CardEntries{}, nil
}

// --- test helpers ---

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	return r
}

// injectIdentity stands in for AuthMiddleware in handler tests.
func injectIdentity(userID, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != 302 {
		t.Fatalf("expected status 302, got %d\nbody: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func assertBodyContains(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("expected body to contain %q\nbody: %s", want, rec.Body.String())
	}
}
