package api

import (
	"net/http"

	"lastresort/internal/domain/reservation"
	"lastresort/internal/domain/room"
	reqdto "lastresort/internal/handler/dto/request"
	resdto "lastresort/internal/handler/dto/response"
	"lastresort/internal/handler/httperr"
	"lastresort/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	rooms usecase.RoomOperations
}

func NewRoomHandler(rooms usecase.RoomOperations) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// @Summary Update room status
// @Description Staff-only status change; blocking states suppress new bookings
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.UpdateRoomStatusRequest true "New status"
// @Success 204
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /rooms/{id}/status [put]
func (h *RoomHandler) UpdateStatus(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	var req reqdto.UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	if err := h.rooms.SetStatus(c.Request.Context(), roomID, room.Status(req.Status)); err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Check room availability
// @Description Reports whether the room is bookable for the given half-open range
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param start query string true "Range start (RFC3339)"
// @Param end query string true "Range end (RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room ID format", nil)
		return
	}

	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	rng, err := reservation.NewTimeRange(query.Start, query.End)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	available, err := h.rooms.Availability(c.Request.Context(), roomID, rng)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		RoomID:    roomID,
		Start:     rng.Start(),
		End:       rng.End(),
		Available: available,
	})
}
