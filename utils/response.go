package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp-backend/apperrors"
)

// RespondWithError writes the standard {"error": message} body.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// RespondWithAppError maps the domain error kinds onto HTTP status codes.
func RespondWithAppError(c *gin.Context, err error) {
	var validation *apperrors.ValidationError
	var notFound *apperrors.NotFoundError
	var denied *apperrors.AccessDeniedError

	switch {
	case errors.As(err, &validation):
		body := gin.H{"error": validation.Message}
		if validation.Field != "" {
			body["field"] = validation.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFound):
		RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &denied):
		status := http.StatusForbidden
		if !denied.Authenticated {
			status = http.StatusUnauthorized
		}
		RespondWithError(c, status, denied.Error())
	default:
		_ = c.Error(err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
