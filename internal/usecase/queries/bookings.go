package queries

import (
	"context"
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/usecase/shared"
)

const (
	DefaultListDays = 90
	listPageSize    = 250
	sampleSize      = 5
)

type BookingQueries interface {
	ListUpcoming(ctx context.Context, includeAll bool) (*BookingList, error)
}

type bookingQueriesImpl struct {
	gateway shared.CalendarGateway
	codec   *booking.Codec
	clock   clock.Clock
	days    int
}

func NewBookingQueries(gateway shared.CalendarGateway, codec *booking.Codec, clock clock.Clock, days int) BookingQueries {
	if days <= 0 {
		days = DefaultListDays
	}
	return &bookingQueriesImpl{gateway: gateway, codec: codec, clock: clock, days: days}
}

// ListUpcoming walks every page between now and the listing horizon. Unless
// includeAll is set, only events the classifier recognises are returned.
func (q *bookingQueriesImpl) ListUpcoming(ctx context.Context, includeAll bool) (*BookingList, error) {
	from := q.clock.Now()
	to := from.Add(time.Duration(q.days) * 24 * time.Hour)
	list := &BookingList{From: from, To: to, Items: []*booking.Record{}}

	query := shared.EventQuery{TimeMin: from, TimeMax: to, MaxResults: listPageSize}
	for {
		page, err := q.gateway.ListEvents(ctx, query)
		if err != nil {
			return nil, shared.MapCalendarError(err)
		}
		for _, ev := range page.Events {
			if len(list.SampleSummaries) < sampleSize {
				list.SampleSummaries = append(list.SampleSummaries, sampleSummary(ev))
			}
			list.Total++
			if !q.codec.IsSiteBooking(ev) {
				if includeAll {
					list.Items = append(list.Items, q.codec.Decode(ev))
				}
				continue
			}
			list.Matched++
			list.Items = append(list.Items, q.codec.Decode(ev))
		}
		if page.NextPageToken == "" {
			break
		}
		query.PageToken = page.NextPageToken
	}
	return list, nil
}

func sampleSummary(ev *booking.Event) string {
	if ev.Summary == "" {
		return "(no summary)"
	}
	return ev.Summary
}
