package integration

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kardbook/internal/handlers"
	"kardbook/internal/logger"
	"kardbook/internal/middleware"
	"kardbook/internal/services"
	"kardbook/internal/testutil"
	"kardbook/internal/validator"
	"kardbook/web"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)

	// Services
	userService := services.NewUserService(db)
	cardService := services.NewCardService(db)
	categoryService := services.NewCategoryService(db)
	ledgerService := services.NewLedgerService(db, cardService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	cardHandler := handlers.NewCardHandler(cardService, categoryService)
	customDataHandler := handlers.NewCustomDataHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, cardService, categoryService)

	// Router, mirroring the production route table
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(web.Templates())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/cards")
	})

	auth := router.Group("/auth")
	auth.GET("", authHandler.LoginPage)
	auth.POST("", authHandler.Login)
	auth.GET("/logout", authHandler.Logout)
	auth.GET("/register", authHandler.RegisterPage)
	auth.POST("/register", authHandler.Register)

	account := router.Group("/auth")
	account.Use(middleware.AuthMiddleware())
	account.GET("/home", authHandler.Home)
	account.GET("/change-password", authHandler.ChangePasswordPage)
	account.POST("/change-password", authHandler.ChangePassword)
	account.GET("/delete-account", authHandler.DeleteAccount)

	cards := router.Group("/cards")
	cards.Use(middleware.AuthMiddleware())
	cards.GET("", cardHandler.List)
	cards.GET("/add-card", cardHandler.AddCardPage)
	cards.POST("/add-card", cardHandler.AddCard)
	cards.GET("/edit-card/:id", cardHandler.EditCardPage)
	cards.POST("/edit-card/:id", cardHandler.EditCard)
	cards.GET("/delete/:id", cardHandler.DeleteCard)

	customData := router.Group("/custom-data")
	customData.Use(middleware.AuthMiddleware())
	customData.GET("/:cdType", customDataHandler.List)
	customData.GET("/add-custom-data/:cdType", customDataHandler.AddPage)
	customData.POST("/add-custom-data/:cdType", customDataHandler.Add)
	customData.GET("/edit-custom-data/:cdType/:id", customDataHandler.EditPage)
	customData.POST("/edit-custom-data/:cdType/:id", customDataHandler.Edit)
	customData.GET("/delete/:cdType/:id", customDataHandler.Delete)

	transactions := router.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware())
	transactions.GET("/card/:cardID", transactionHandler.ListByCard)
	transactions.GET("/card/:cardID/add-income", transactionHandler.AddIncomePage)
	transactions.POST("/card/:cardID/add-income", transactionHandler.AddIncome)
	transactions.GET("/card/:cardID/add-expense", transactionHandler.AddExpensePage)
	transactions.POST("/card/:cardID/add-expense", transactionHandler.AddExpense)
	transactions.GET("/edit-income/:id", transactionHandler.EditIncomePage)
	transactions.POST("/edit-income/:id", transactionHandler.EditIncome)
	transactions.GET("/edit-expense/:id", transactionHandler.EditExpensePage)
	transactions.POST("/edit-expense/:id", transactionHandler.EditExpense)
	transactions.GET("/delete-income/:id", transactionHandler.DeleteIncome)
	transactions.GET("/delete-expense/:id", transactionHandler.DeleteExpense)

	return &testApp{DB: db, Router: router}
}

// --- request helpers ---

func (app *testApp) get(path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) postForm(path, cookie string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the registration form.
func (app *testApp) register(t *testing.T, username string) {
	t.Helper()

	rec := app.postForm("/auth/register", "", url.Values{
		"email":     {username + "@example.com"},
		"username":  {username},
		"firstname": {"Test"},
		"lastname":  {"User"},
		"password":  {"password123"},
		"password2": {"password123"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("registration failed with status %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "User successfully created") {
		t.Fatalf("registration did not succeed: %s", rec.Body.String())
	}
}

// login signs in through the login form and returns the session cookie value.
func (app *testApp) login(t *testing.T, username string) string {
	t.Helper()

	rec := app.postForm("/auth", "", url.Values{
		"email":    {username},
		"password": {"password123"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatal("login response carried no session cookie")
	return ""
}

// signup registers a user and signs in, returning the session cookie.
func (app *testApp) signup(t *testing.T, username string) string {
	t.Helper()
	app.register(t, username)
	return app.login(t, username)
}
