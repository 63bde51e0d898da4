package api

import (
	"net/http"

	reqdto "calendar-booking/internal/handler/dto/request"
	resdto "calendar-booking/internal/handler/dto/response"
	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	cmds commands.BookingCommands
}

func NewBookingHandler(cmds commands.BookingCommands) *BookingHandler {
	return &BookingHandler{cmds: cmds}
}

// @Summary Create booking
// @Description Book an offered slot. The slot is re-checked against the calendar before insert.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	input, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid isoStart", nil)
		return
	}
	result, err := h.cmds.CreateBooking(c.Request.Context(), input)
	if err != nil {
		abortWithUseCaseError(c, err, "Booking failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCreateBookingResult(result))
}

// @Summary Cancel own booking
// @Description Cancel a booking with the signed token from the confirmation email
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CancelWithTokenRequest true "Cancel token"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/cancel [post]
func (h *BookingHandler) CancelWithToken(c *gin.Context) {
	var req reqdto.CancelWithTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CancelWithToken(c.Request.Context(), req.Token)
	if err != nil {
		abortWithUseCaseError(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, resdto.CancelResponse{OK: true, ID: result.EventID})
}
