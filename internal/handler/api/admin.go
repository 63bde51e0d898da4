package api

import (
	"net/http"

	reqdto "calendar-booking/internal/handler/dto/request"
	resdto "calendar-booking/internal/handler/dto/response"
	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/usecase/commands"
	"calendar-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewAdminHandler(cmds commands.BookingCommands, q queries.BookingQueries) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q}
}

// @Summary List upcoming bookings
// @Description Events for the next 90 days; site bookings only unless all=1
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param all query string false "Set to 1 to include every event"
// @Param debug query string false "Set to 1 to include counters"
// @Success 200 {object} resdto.AdminEventsResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/admin/events [get]
func (h *AdminHandler) ListEvents(c *gin.Context) {
	list, err := h.q.ListUpcoming(c.Request.Context(), c.Query("all") == "1")
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to list events")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(list, c.Query("debug") == "1"))
}

// @Summary Cancel booking
// @Description Delete the event and notify the client and owner
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.EventIDRequest true "Event id"
// @Success 200 {object} resdto.OKResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/cancel [post]
func (h *AdminHandler) Cancel(c *gin.Context) {
	var req reqdto.EventIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing id", nil)
		return
	}
	if _, err := h.cmds.CancelBooking(c.Request.Context(), req.ID); err != nil {
		abortWithUseCaseError(c, err, "Cancel failed")
		return
	}
	c.JSON(http.StatusOK, resdto.OKResponse{OK: true})
}

// @Summary Complete booking
// @Description Mark the booking completed and send a thank-you email once
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.EventIDRequest true "Event id"
// @Success 200 {object} resdto.OKResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/complete [post]
func (h *AdminHandler) Complete(c *gin.Context) {
	var req reqdto.EventIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Missing id", nil)
		return
	}
	if err := h.cmds.CompleteBooking(c.Request.Context(), req.ID); err != nil {
		abortWithUseCaseError(c, err, "Complete failed")
		return
	}
	c.JSON(http.StatusOK, resdto.OKResponse{OK: true})
}

// @Summary Send test email
// @Description Synchronous SMTP probe; defaults to the owner address
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param to query string false "Recipient"
// @Success 200 {object} resdto.TestEmailResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/admin/test-email [post]
func (h *AdminHandler) SendTestEmail(c *gin.Context) {
	result, err := h.cmds.SendTestEmail(c.Request.Context(), c.Query("to"))
	if err != nil {
		abortWithUseCaseError(c, err, "Test email failed")
		return
	}
	c.JSON(http.StatusOK, resdto.TestEmailResponse{OK: true, To: result.To, MessageID: result.MessageID})
}
