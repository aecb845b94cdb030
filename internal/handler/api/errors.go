package api

import (
	"errors"
	"net/http"
	"time"

	"lastresort/internal/handler/httperr"
	"lastresort/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithAllocError maps the allocation error taxonomy onto HTTP statuses.
// Busy is the only retryable outcome and carries a Retry-After hint.
func abortWithAllocError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time range", nil)
	case errors.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation conflict", nil)
	case errors.Is(err, errs.ErrInsufficientAdjacency):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Insufficient adjacent rooms", nil)
	case errors.Is(err, errs.ErrBusy):
		httperr.AbortRetryable(c, http.StatusServiceUnavailable, err, "Rooms busy, retry shortly", time.Second)
	case errors.Is(err, errs.ErrNotFound), errors.Is(err, errs.ErrCustomerNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
