package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelapp-backend/apperrors"
	"travelapp-backend/utils"
)

// idParam parses the :id path segment and answers 404 when it is not a
// positive integer.
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return uint(id), true
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.Validation(name, "Select a valid choice.")
	}
	return &value, nil
}

func uintQuery(c *gin.Context, name string) (*uint, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.Validation(name, "Select a valid choice. That choice is not one of the available choices.")
	}
	id := uint(value)
	return &id, nil
}

func stringQuery(c *gin.Context, name string) *string {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

// bindJSON binds the request body and answers 400 on malformed input.
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return false
	}
	return true
}

func respondDeleted(c *gin.Context, deleted bool, err error) {
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if !deleted {
		utils.RespondWithError(c, http.StatusNotFound, "Not found.")
		return
	}
	c.Status(http.StatusNoContent)
}

func requiredField(name string) error {
	return apperrors.Validation(name, "This field is required.")
}
