package shared

import (
	"calendar-booking/internal/infra"
	"calendar-booking/internal/pkg/errs"
)

// MapCalendarError turns a gateway error into the use case taxonomy. The
// upstream detail is kept in the chain for logs but never in the mark.
func MapCalendarError(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrBookingNotFound)
	}
	return errs.Mark(err, errs.ErrCalendarFailure)
}
