// Package calendar talks to the Google Calendar API on behalf of one
// service account and one calendar.
package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/interval"
	"calendar-booking/internal/infra"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/shared"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	sendUpdatesNone = "none"
	sendUpdatesAll  = "all"
	orderByStart    = "startTime"
)

var ErrMissingCredentials = errs.New("calendar credentials are not configured")

// NewService builds an authenticated API client. Inline service account
// credentials win over a credentials file.
func NewService(ctx context.Context, cfg config.CalendarConfig) (*gcal.Service, error) {
	var client *http.Client
	switch {
	case cfg.ClientEmail != "" && cfg.PrivateKey != "":
		conf := &jwt.Config{
			Email:      cfg.ClientEmail,
			PrivateKey: cfg.PrivateKeyPEM(),
			Scopes:     []string{gcal.CalendarScope},
			TokenURL:   google.JWTTokenURL,
		}
		client = conf.Client(ctx)
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, errs.Wrap(err, "read calendar credentials file")
		}
		conf, err := google.JWTConfigFromJSON(data, gcal.CalendarScope)
		if err != nil {
			return nil, errs.Wrap(err, "parse calendar credentials file")
		}
		client = conf.Client(ctx)
	default:
		return nil, ErrMissingCredentials
	}

	svc, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errs.Wrap(err, "failed to create calendar service")
	}
	return svc, nil
}

type Gateway struct {
	svc             *gcal.Service
	calendarID      string
	zone            string
	inviteAttendees bool
	timeout         time.Duration
	logger          *slog.Logger
}

func NewGateway(svc *gcal.Service, cfg config.CalendarConfig, logger *slog.Logger) *Gateway {
	return &Gateway{
		svc:             svc,
		calendarID:      cfg.ID,
		zone:            cfg.TimeZone,
		inviteAttendees: cfg.InviteAttendees,
		timeout:         cfg.RequestTimeout,
		logger:          logger.With(slog.String("component", "calendar"), slog.String("calendar_id", cfg.ID)),
	}
}

func (g *Gateway) ListEvents(ctx context.Context, q shared.EventQuery) (*shared.EventPage, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	call := g.svc.Events.List(g.calendarID).
		Context(ctx).
		TimeMin(q.TimeMin.Format(time.RFC3339)).
		TimeMax(q.TimeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy(orderByStart)
	if g.zone != "" {
		call = call.TimeZone(g.zone)
	}
	if q.MaxResults > 0 {
		call = call.MaxResults(q.MaxResults)
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, g.wrap("list events", err)
	}

	page := &shared.EventPage{
		Events:        make([]*booking.Event, 0, len(res.Items)),
		NextPageToken: res.NextPageToken,
	}
	for _, item := range res.Items {
		if item == nil || item.Status == "cancelled" {
			continue
		}
		page.Events = append(page.Events, toDomainEvent(item))
	}
	return page, nil
}

func (g *Gateway) GetEvent(ctx context.Context, eventID string) (*booking.Event, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	item, err := g.svc.Events.Get(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, g.wrap("get event", err)
	}
	if item.Status == "cancelled" {
		return nil, infra.WrapGatewayErr(g.logger, infra.KindNotFound, "get event: event is cancelled", nil)
	}
	return toDomainEvent(item), nil
}

func (g *Gateway) InsertEvent(ctx context.Context, ev *booking.Event) (*booking.Event, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	sendUpdates := sendUpdatesNone
	if g.inviteAttendees {
		sendUpdates = sendUpdatesAll
	}
	created, err := g.svc.Events.Insert(g.calendarID, toGoogleEvent(ev, g.inviteAttendees)).
		Context(ctx).
		SendUpdates(sendUpdates).
		Do()
	if err != nil {
		return nil, g.wrap("insert event", err)
	}
	return toDomainEvent(created), nil
}

// PatchEvent replaces the private metadata map. Callers merge before
// patching so keys they did not touch survive.
func (g *Gateway) PatchEvent(ctx context.Context, eventID string, patch booking.EventPatch) (*booking.Event, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	body := &gcal.Event{}
	if patch.Private != nil {
		body.ExtendedProperties = &gcal.EventExtendedProperties{Private: copyMap(patch.Private)}
	}
	updated, err := g.svc.Events.Patch(g.calendarID, eventID, body).
		Context(ctx).
		SendUpdates(sendUpdatesNone).
		Do()
	if err != nil {
		return nil, g.wrap("patch event", err)
	}
	return toDomainEvent(updated), nil
}

func (g *Gateway) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).SendUpdates(sendUpdatesNone).Do(); err != nil {
		return g.wrap("delete event", err)
	}
	return nil
}

func (g *Gateway) QueryFreeBusy(ctx context.Context, window interval.Interval) ([]shared.BusyPeriod, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	req := &gcal.FreeBusyRequest{
		TimeMin:  window.Start.Format(time.RFC3339),
		TimeMax:  window.End.Format(time.RFC3339),
		TimeZone: g.zone,
		Items:    []*gcal.FreeBusyRequestItem{{Id: g.calendarID}},
	}
	res, err := g.svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, g.wrap("query free/busy", err)
	}

	cal, ok := res.Calendars[g.calendarID]
	if !ok {
		return nil, infra.WrapGatewayErr(g.logger, infra.KindMalformed, "free/busy response has no entry for calendar", nil)
	}
	if len(cal.Errors) > 0 {
		first := cal.Errors[0]
		return nil, infra.WrapGatewayErr(g.logger, infra.KindUpstreamFailure, "free/busy calendar error",
			errs.Newf("%s (%s)", first.Reason, first.Domain))
	}

	out := make([]shared.BusyPeriod, 0, len(cal.Busy))
	for _, p := range cal.Busy {
		if p == nil {
			continue
		}
		out = append(out, shared.BusyPeriod{Start: p.Start, End: p.End})
	}
	return out, nil
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// wrap classifies API errors. 404 and 410 mean the event is gone; anything
// else is logged with the upstream detail and reported as a failure.
func (g *Gateway) wrap(op string, err error) error {
	var apiErr *googleapi.Error
	if errs.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound, http.StatusGone:
			return infra.WrapGatewayErr(g.logger, infra.KindNotFound, op, err)
		}
		g.logger.Error("calendar API error",
			slog.String("op", op),
			slog.Int("code", apiErr.Code),
			slog.String("message", apiErr.Message),
		)
	}
	return infra.WrapGatewayErr(g.logger, infra.KindUpstreamFailure, op, err)
}

func NewGatewayFromConfig(svc *gcal.Service, cfg config.Config, logger *slog.Logger) *Gateway {
	return NewGateway(svc, cfg.Calendar, logger)
}
