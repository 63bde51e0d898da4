package api

import (
	"net/http"

	"calendar-booking/internal/handler/httperr"
	"calendar-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortWithUseCaseError maps the use case taxonomy to a status. Upstream
// detail stays in the logged error, never in the body.
func abortWithUseCaseError(c *gin.Context, err error, fallback string) {
	switch {
	case errs.IsAny(err, errs.ErrValidation, errs.ErrInvalidDate, errs.ErrUnknownLocation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, validationMessage(err), nil)
	case errs.Is(err, errs.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "That time is no longer available", nil)
	case errs.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.IsAny(err, errs.ErrUnauthorized, errs.ErrInvalidCancelToken, errs.ErrSelfCancelDisabled):
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired link", nil)
	case errs.Is(err, errs.ErrCalendarFailure):
		httperr.AbortWithError(c, http.StatusBadGateway, err, fallback, nil)
	case errs.Is(err, errs.ErrMailNotConfigured):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Email is not configured", nil)
	case errs.Is(err, errs.ErrDeliveryFailed):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Email delivery failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
	}
}

func validationMessage(err error) string {
	if errs.Is(err, errs.ErrInvalidDate) {
		return "Invalid date"
	}
	return "Invalid request: " + errs.Cause(err).Error()
}
