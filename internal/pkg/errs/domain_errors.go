package errs

// Sentinel errors shared by the command and query layers
var (
	// Validation errors: rejected before any calendar call
	ErrValidation      = New("validation failed")
	ErrInvalidDate     = New("invalid date")
	ErrUnknownLocation = New("unknown location")

	// Availability errors
	ErrSlotUnavailable = New("slot unavailable")

	// Calendar errors
	ErrBookingNotFound = New("booking not found")
	ErrCalendarFailure = New("calendar operation failed")

	// Authorization errors
	ErrUnauthorized       = New("unauthorized")
	ErrInvalidCancelToken = New("invalid cancel token")
	ErrSelfCancelDisabled = New("self-service cancellation disabled")
)

// Notification errors: only surfaced by the synchronous SMTP probe
var (
	ErrMailNotConfigured = New("mail delivery not configured")
	ErrDeliveryFailed    = New("mail delivery failed")
)
