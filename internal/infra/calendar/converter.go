package calendar

import (
	"calendar-booking/internal/domain/booking"

	gcal "google.golang.org/api/calendar/v3"
)

const transparencyTransparent = "transparent"

func toDomainEvent(item *gcal.Event) *booking.Event {
	if item == nil {
		return nil
	}
	ev := &booking.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       toDomainTime(item.Start),
		End:         toDomainTime(item.End),
		Transparent: item.Transparency == transparencyTransparent,
		Status:      item.Status,
	}
	for _, a := range item.Attendees {
		if a != nil && a.Email != "" {
			ev.Attendees = append(ev.Attendees, a.Email)
		}
	}
	if item.ExtendedProperties != nil && len(item.ExtendedProperties.Private) > 0 {
		ev.Private = make(map[string]string, len(item.ExtendedProperties.Private))
		for k, v := range item.ExtendedProperties.Private {
			ev.Private[k] = v
		}
	}
	return ev
}

func toDomainTime(t *gcal.EventDateTime) booking.EventTime {
	if t == nil {
		return booking.EventTime{}
	}
	return booking.EventTime{Date: t.Date, DateTime: t.DateTime, TimeZone: t.TimeZone}
}

// toGoogleEvent builds the insert payload. Attendees are only sent when the
// calendar credentials are allowed to invite.
func toGoogleEvent(ev *booking.Event, withAttendees bool) *gcal.Event {
	out := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       toGoogleTime(ev.Start),
		End:         toGoogleTime(ev.End),
	}
	if ev.Transparent {
		out.Transparency = transparencyTransparent
	}
	if withAttendees {
		for _, email := range ev.Attendees {
			out.Attendees = append(out.Attendees, &gcal.EventAttendee{Email: email})
		}
	}
	if len(ev.Private) > 0 {
		out.ExtendedProperties = &gcal.EventExtendedProperties{Private: copyMap(ev.Private)}
	}
	return out
}

func toGoogleTime(t booking.EventTime) *gcal.EventDateTime {
	return &gcal.EventDateTime{Date: t.Date, DateTime: t.DateTime, TimeZone: t.TimeZone}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
