package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/middleware"
	"kardbook/internal/services"
)

// AuthHandler handles login, registration, and account management pages.
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterForm represents the registration form fields.
type RegisterForm struct {
	Email     string `form:"email" binding:"required,email,max=50"`
	Username  string `form:"username" binding:"required,username"`
	FirstName string `form:"firstname" binding:"required,max=45"`
	LastName  string `form:"lastname" binding:"required,max=45"`
	Password  string `form:"password" binding:"required,min=8,max=128"`
	Password2 string `form:"password2" binding:"required,eqfield=Password"`
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the submitted credentials. On success it sets the
// HTTP-only access token cookie and redirects to the home page; on failure
// it re-renders the login form with a message and no cookie.
//
// The login form's field is named "email" but holds the username.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.userService.AuthenticateUser(username, password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Msg": apperrors.ErrInvalidCredentials.Message,
		})
		return
	}

	token, err := middleware.GenerateAccessToken(user)
	if err != nil {
		renderError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	middleware.SetAuthCookie(c, token)
	c.Redirect(http.StatusFound, "/auth/home")
}

// Logout clears the access token cookie and shows the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Msg": "Logout Successful",
	})
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register creates a new user from the registration form. Mismatched
// passwords and taken usernames/emails re-render the form with a message
// and write no row.
func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Msg": "Invalid registration request",
		})
		return
	}

	if _, err := h.userService.Register(form.Email, form.Username, form.FirstName, form.LastName, form.Password); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Msg": "Invalid registration request",
		})
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Msg": "User successfully created",
	})
}

// Home renders the landing page for an authenticated user.
func (h *AuthHandler) Home(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.html", gin.H{
		"User": ident.Username,
	})
}

// ChangePasswordPage renders the change-password form.
func (h *AuthHandler) ChangePasswordPage(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "change-password.html", gin.H{
		"User": ident.Username,
	})
}

// ChangePassword verifies the current password for the signed-in user and
// stores the new one, then clears the session cookie.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	current := c.PostForm("password")
	next := c.PostForm("password2")

	if err := h.userService.ChangePassword(ident.Username, current, next); err != nil {
		c.HTML(http.StatusOK, "change-password.html", gin.H{
			"User": ident.Username,
			"Msg":  "Incorrect Username or Password",
		})
		return
	}

	middleware.ClearAuthCookie(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Msg": "Password Changed Successfully",
	})
}

// DeleteAccount removes the signed-in user and everything the user owns,
// then clears the session cookie.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	ident, err := currentIdentity(c)
	if err != nil {
		renderError(c, err)
		return
	}

	if err := h.userService.DeleteUser(ident.UserID); err != nil {
		renderError(c, err)
		return
	}

	middleware.ClearAuthCookie(c)
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Msg": "Account deleted",
	})
}
