package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/domain/schedule"
	"calendar-booking/internal/pkg/canceltoken"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/queries"
	"calendar-booking/internal/usecase/shared"
)

var ErrMissingEventID = errs.New("event id is required")

type CreateBookingInput struct {
	Start    time.Time
	Service  string
	Name     string
	Email    string
	Location string
	Address  string
}

type CreateBookingResult struct {
	EventID     string
	Start       time.Time
	End         time.Time
	Service     string
	Location    booking.Location
	TravelFee   int
	CancelToken string
	CancelURL   string
}

type CancelResult struct {
	EventID     string
	ClientEmail string
}

type TestEmailResult struct {
	To        string
	MessageID string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error)
	CancelBooking(ctx context.Context, eventID string) (*CancelResult, error)
	CancelWithToken(ctx context.Context, token string) (*CancelResult, error)
	CompleteBooking(ctx context.Context, eventID string) error
	IssueCancelToken(eventID string) (string, error)
	VerifyCancelToken(token string) (string, error)
	SendTestEmail(ctx context.Context, to string) (*TestEmailResult, error)
}

type bookingUseCaseImpl struct {
	gateway      shared.CalendarGateway
	availability queries.AvailabilityQueries
	catalog      *schedule.Catalog
	codec        *booking.Codec
	signer       *canceltoken.Signer
	composer     *Composer
	notifier     shared.Notifier
	mailer       shared.MailSender
	logger       *slog.Logger
}

func NewBookingUseCase(
	gateway shared.CalendarGateway,
	availability queries.AvailabilityQueries,
	catalog *schedule.Catalog,
	codec *booking.Codec,
	signer *canceltoken.Signer,
	composer *Composer,
	notifier shared.Notifier,
	mailer shared.MailSender,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		gateway:      gateway,
		availability: availability,
		catalog:      catalog,
		codec:        codec,
		signer:       signer,
		composer:     composer,
		notifier:     notifier,
		mailer:       mailer,
		logger:       logger,
	}
}

// CreateBooking validates the request, re-checks the slot against fresh
// availability and inserts the event. Another request can still take the
// same slot between the check and the insert.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*CreateBookingResult, error) {
	svc := u.catalog.Lookup(in.Service)
	b, err := booking.NewBooking(booking.Draft{
		Start:    in.Start,
		End:      in.Start.Add(svc.Duration()),
		Email:    in.Email,
		Name:     in.Name,
		Service:  in.Service,
		Location: in.Location,
		Address:  in.Address,
	})
	if err != nil {
		if errs.Is(err, booking.ErrInvalidLocation) {
			err = errs.Mark(err, errs.ErrUnknownLocation)
		}
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	offered, err := u.availability.IsOffered(ctx, b.Start(), b.Service())
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, errs.Mark(errs.Newf("start %s not offered for %q", b.Start().Format(time.RFC3339), b.Service()), errs.ErrSlotUnavailable)
	}

	created, err := u.gateway.InsertEvent(ctx, u.codec.Encode(b))
	if err != nil {
		return nil, shared.MapCalendarError(err)
	}
	b = b.WithEventID(created.ID)

	result := &CreateBookingResult{
		EventID:   b.EventID(),
		Start:     b.Start(),
		End:       b.End(),
		Service:   b.Service(),
		Location:  b.Location(),
		TravelFee: b.TravelFee(),
	}
	if u.signer.Enabled() {
		token, err := u.signer.Issue(b.EventID())
		if err != nil {
			u.logger.Warn("failed to issue cancel token", slog.String("event_id", b.EventID()), slog.String("error", err.Error()))
		} else {
			result.CancelToken = token
			result.CancelURL = u.composer.CancelURL(token)
		}
	}

	u.notifier.Notify(ctx, u.composer.BookingConfirmation(b, result.CancelURL))
	u.notifyOwner(ctx, u.composer.BookingNotice(b))

	u.logger.Info("booking created",
		slog.String("event_id", b.EventID()),
		slog.String("service", b.Service()),
		slog.String("location", b.Location().String()),
	)
	return result, nil
}

func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, eventID string) (*CancelResult, error) {
	return u.cancel(ctx, eventID, InitiatorStaff)
}

// CancelWithToken verifies the token before touching the calendar.
func (u *bookingUseCaseImpl) CancelWithToken(ctx context.Context, token string) (*CancelResult, error) {
	if !u.signer.Enabled() {
		return nil, errs.ErrSelfCancelDisabled
	}
	eventID, err := u.VerifyCancelToken(token)
	if err != nil {
		return nil, err
	}
	return u.cancel(ctx, eventID, InitiatorClient)
}

func (u *bookingUseCaseImpl) cancel(ctx context.Context, eventID string, by Initiator) (*CancelResult, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, errs.Mark(ErrMissingEventID, errs.ErrValidation)
	}

	ev, err := u.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return nil, shared.MapCalendarError(err)
	}
	summary := u.composer.Summarize(u.codec, ev)

	if err := u.gateway.DeleteEvent(ctx, eventID); err != nil {
		return nil, shared.MapCalendarError(err)
	}

	if summary.ClientEmail != "" {
		u.notifier.Notify(ctx, u.composer.CancelledToClient(summary, by))
	}
	u.notifyOwner(ctx, u.composer.CancelNotice(summary, by))

	u.logger.Info("booking canceled", slog.String("event_id", eventID), slog.String("by", string(by)))
	return &CancelResult{EventID: eventID, ClientEmail: summary.ClientEmail}, nil
}

// CompleteBooking sets the completion flags without dropping other metadata.
// The thank-you email goes out at most once.
func (u *bookingUseCaseImpl) CompleteBooking(ctx context.Context, eventID string) error {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return errs.Mark(ErrMissingEventID, errs.ErrValidation)
	}

	ev, err := u.gateway.GetEvent(ctx, eventID)
	if err != nil {
		return shared.MapCalendarError(err)
	}
	alreadyThanked := ev.PrivateValue(booking.KeyThankYouSent) == "true"
	summary := u.composer.Summarize(u.codec, ev)

	patch := booking.EventPatch{Private: booking.ApplyCompletion(ev.Private)}
	if _, err := u.gateway.PatchEvent(ctx, eventID, patch); err != nil {
		return shared.MapCalendarError(err)
	}

	if summary.ClientEmail != "" && !alreadyThanked {
		u.notifier.Notify(ctx, u.composer.ThankYou(summary))
	}
	u.notifyOwner(ctx, u.composer.CompletionNotice(summary))

	u.logger.Info("booking completed", slog.String("event_id", eventID), slog.Bool("thank_you_skipped", alreadyThanked))
	return nil
}

func (u *bookingUseCaseImpl) IssueCancelToken(eventID string) (string, error) {
	token, err := u.signer.Issue(eventID)
	if err != nil {
		if errs.Is(err, canceltoken.ErrDisabled) {
			return "", errs.Mark(err, errs.ErrSelfCancelDisabled)
		}
		return "", errs.Mark(err, errs.ErrValidation)
	}
	return token, nil
}

func (u *bookingUseCaseImpl) VerifyCancelToken(token string) (string, error) {
	eventID, err := u.signer.Verify(strings.TrimSpace(token))
	if err != nil {
		return "", errs.Mark(err, errs.ErrInvalidCancelToken)
	}
	return eventID, nil
}

// SendTestEmail bypasses the notifier so delivery errors reach the caller.
func (u *bookingUseCaseImpl) SendTestEmail(ctx context.Context, to string) (*TestEmailResult, error) {
	if !u.mailer.Enabled() {
		return nil, errs.ErrMailNotConfigured
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = u.composer.OwnerEmail()
	}
	if to == "" {
		return nil, errs.Mark(errs.New("no recipient for test email"), errs.ErrValidation)
	}

	msg := u.composer.SMTPTest(to)
	messageID, err := u.mailer.Send(ctx, msg)
	if err != nil {
		u.logger.Error("SMTP test failed", slog.String("to", to), slog.String("error", err.Error()))
		return nil, errs.Mark(err, errs.ErrDeliveryFailed)
	}
	return &TestEmailResult{To: to, MessageID: messageID}, nil
}

func (u *bookingUseCaseImpl) notifyOwner(ctx context.Context, msg shared.Message) {
	if msg.To == "" {
		return
	}
	u.notifier.Notify(ctx, msg)
}
