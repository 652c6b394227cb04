package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"kardbook/internal/config"
	"kardbook/internal/models"
)

// CookieName is the HTTP-only cookie carrying the signed access token.
const CookieName = "access_token"

const (
	userIDKey   = "userID"
	usernameKey = "username"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// TokenClaims represents the claims in the access token. The username
// travels in the registered "sub" claim; the user ID in "id".
type TokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// GenerateAccessToken generates a signed access token for a user.
func GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "kardbook",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseAccessToken validates a token string and returns its claims.
func ParseAccessToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}
	if claims.UserID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("incomplete token claims")
	}
	return claims, nil
}

// SetAuthCookie attaches the access token to the response as an HTTP-only
// cookie scoped to the whole site.
func SetAuthCookie(c *gin.Context, token string) {
	maxAge := int(config.Get().JWTExpirationDur.Seconds())
	c.SetCookie(CookieName, token, maxAge, "/", "", false, true)
}

// ClearAuthCookie expires the access token cookie.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// AuthMiddleware resolves the requester's identity from the access token
// cookie and stores it in the context. Requests with a missing, invalid, or
// expired token are redirected to the login page.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(CookieName)
		if err != nil || tokenString == "" {
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}

		claims, err := ParseAccessToken(tokenString)
		if err != nil {
			ClearAuthCookie(c)
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Subject)
		c.Next()
	}
}

// Identity is the resolved requester stored in the request context.
type Identity struct {
	UserID   string
	Username string
}

// CurrentIdentity returns the identity placed in the context by
// AuthMiddleware, or false when the request is unauthenticated.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := c.Get(userIDKey)
	if !ok {
		return Identity{}, false
	}
	username, _ := c.Get(usernameKey)
	name, _ := username.(string)
	return Identity{UserID: userID.(string), Username: name}, true
}
