package api

import (
	"errors"
	"net/http"

	"lastresort/internal/domain/reservation"
	reqdto "lastresort/internal/handler/dto/request"
	resdto "lastresort/internal/handler/dto/response"
	"lastresort/internal/handler/httperr"
	"lastresort/internal/pkg/clock"
	"lastresort/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	booking usecase.BookingCommands
	clock   clock.Clock
}

func NewReservationHandler(booking usecase.BookingCommands, clk clock.Clock) *ReservationHandler {
	return &ReservationHandler{
		booking: booking,
		clock:   clk,
	}
}

// @Summary Create reservation
// @Description Book a room, or an adjacent combination, for a half-open time range
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams()
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	res, err := h.booking.CreateReservation(c.Request.Context(), params)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(res, h.clock.Now()))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	res, err := h.booking.GetReservation(c.Request.Context(), id)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res, h.clock.Now()))
}

// @Summary Modify reservation
// @Description Move a confirmed reservation to a new time range over the same rooms
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ModifyReservationRequest true "New time range"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [patch]
func (h *ReservationHandler) ModifyReservation(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	var req reqdto.ModifyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	rng, err := req.ToRange()
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	res, err := h.booking.ModifyReservation(c.Request.Context(), id, rng)
	if err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res, h.clock.Now()))
}

// @Summary Cancel reservation
// @Description Release every interval the reservation holds; double-cancel is an error
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	if err := h.booking.CancelReservation(c.Request.Context(), id); err != nil {
		abortWithAllocError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Attach event
// @Description Attach a meeting-space event to a confirmed reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.AttachEventRequest true "Event details"
// @Success 201 {object} resdto.EventResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/event [post]
func (h *ReservationHandler) AttachEvent(c *gin.Context) {
	id, ok := h.reservationID(c)
	if !ok {
		return
	}

	var req reqdto.AttachEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	ev, err := h.booking.AttachEvent(c.Request.Context(), id, req.Name, req.GuestCount)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrEventNotAllowed):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation is not confirmed", nil)
		case errors.Is(err, reservation.ErrEventAttached):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation already has an event", nil)
		case errors.Is(err, reservation.ErrInvalidGuests):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Guest count must be positive", nil)
		default:
			abortWithAllocError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromEvent(ev))
}

func (h *ReservationHandler) reservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
