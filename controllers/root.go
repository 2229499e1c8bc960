package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIRoot lists the collection endpoints.
func APIRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"users":             absoluteURL(c, "/api/users/"),
		"reservations":      absoluteURL(c, "/api/reservations/"),
		"tours":             absoluteURL(c, "/api/tours/"),
		"tour-reservations": absoluteURL(c, "/api/tour-reservations/"),
	})
}
