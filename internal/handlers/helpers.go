package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kardbook/internal/errors"
	"kardbook/internal/logger"
	"kardbook/internal/middleware"
	"kardbook/internal/uuid"
)

// currentIdentity extracts the authenticated identity from the Gin context.
// Returns ErrUnauthenticated if not present.
func currentIdentity(c *gin.Context) (middleware.Identity, error) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.Identity{}, apperrors.ErrUnauthenticated
	}
	return ident, nil
}

// parsePathID parses a UUID path parameter.
// Returns ErrValidation if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "Invalid "+param)
	}
	return id, nil
}

// optionalID converts an optional form value into a nullable reference,
// dropping anything that is not a UUID.
func optionalID(s string) *string {
	if s == "" || !uuid.IsValid(s) {
		return nil
	}
	return &s
}

// renderError translates a typed error into the user-visible response:
// unauthenticated requests are redirected to the login page, everything
// else renders the error page with the AppError's status. Internal causes
// are logged, never shown.
func renderError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		if appErr.Code == apperrors.ErrUnauthenticated.Code {
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}
		c.HTML(appErr.StatusCode, "error.html", gin.H{
			"Status":  appErr.StatusCode,
			"Message": appErr.Message,
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.HTML(apperrors.ErrInternalServer.StatusCode, "error.html", gin.H{
		"Status":  apperrors.ErrInternalServer.StatusCode,
		"Message": apperrors.ErrInternalServer.Message,
	})
}
