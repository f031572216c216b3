package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omarhamdan/safra/internal/models"
)

// respondErr is the single place sentinel errors become HTTP statuses.
// Conflicts and bad credentials deliberately map to 400, matching what API
// clients already handle for duplicate phones, taken seats and failed
// logins; 401 is only for token problems.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalid):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
	}
}
