package api

import (
	"net/http"

	resdto "calendar-booking/internal/handler/dto/response"
	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errMissingDate = errs.New("date query parameter is required")

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary List services
// @Description List bookable services and their durations
// @Tags availability
// @Produce json
// @Success 200 {array} resdto.ServiceResponse
// @Router /api/services [get]
func (h *AvailabilityHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromServices(h.q.Services()))
}

// @Summary Get availability
// @Description Offerable start times for one civil day in the business time zone
// @Tags availability
// @Produce json
// @Param date query string true "Civil date (YYYY-MM-DD)"
// @Param service query string false "Service name"
// @Param debug query string false "Set to 1 to include intermediate intervals"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingDate, "Missing date", nil)
		return
	}
	view, err := h.q.ComputeSlots(c.Request.Context(), date, c.Query("service"), c.Query("debug") == "1")
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load availability")
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
