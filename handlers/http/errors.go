package httpHandler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/controllers"
	"storefront/repositories"
	"storefront/usecases"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controllers.ErrNotSignedIn), errors.Is(err, usecases.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecases.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, usecases.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request body",
		"details": err.Error(),
	})
}

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID.Error(), "param": name})
		return 0, false
	}
	return uint(id), true
}
