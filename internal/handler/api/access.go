package api

import (
	"net/http"

	reqdto "lastresort/internal/handler/dto/request"
	resdto "lastresort/internal/handler/dto/response"
	"lastresort/internal/handler/httperr"
	"lastresort/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccessHandler struct {
	access usecase.AccessCommands
}

func NewAccessHandler(access usecase.AccessCommands) *AccessHandler {
	return &AccessHandler{access: access}
}

// @Summary Record card swipe
// @Description Append a swipe to the access log; denied swipes are recorded too
// @Tags access
// @Accept json
// @Produce json
// @Param request body reqdto.RecordSwipeRequest true "Swipe details"
// @Success 201 {object} resdto.AccessEventResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /access/swipes [post]
func (h *AccessHandler) RecordSwipe(c *gin.Context) {
	var req reqdto.RecordSwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	ev, err := h.access.RecordSwipe(c.Request.Context(), req.CardID, req.ReaderID, req.Timestamp)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAccessEvent(ev))
}

// @Summary List access events for a reservation
// @Description Swipes at the reservation's rooms within its time range, ordered by timestamp then sequence
// @Tags access
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {array} resdto.AccessEventResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/access-events [get]
func (h *AccessHandler) EventsForReservation(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return
	}

	events, err := h.access.EventsForReservation(c.Request.Context(), reservationID)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	out := make([]*resdto.AccessEventResponse, 0)
	for ev := range events {
		out = append(out, resdto.FromAccessEvent(ev))
	}

	c.JSON(http.StatusOK, out)
}
