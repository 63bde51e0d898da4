package config

import (
	"fmt"
	"strings"
	"time"

	"calendar-booking/internal/domain/schedule"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, calendar id, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - optional secrets (SMTP, cancel secret): an empty value disables the feature, never the process
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	Calendar  CalendarConfig
	Business  BusinessConfig
	Schedule  ScheduleConfig
	Admin     AdminConfig
	Cancel    CancelConfig
	SMTP      SMTPConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone   string `envconfig:"LOG_TIMEZONE" default:"America/Los_Angeles"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type CalendarConfig struct {
	ID              string        `envconfig:"CALENDAR_ID" required:"true"`
	ClientEmail     string        `envconfig:"GOOGLE_CLIENT_EMAIL"`
	PrivateKey      string        `envconfig:"GOOGLE_PRIVATE_KEY"`
	CredentialsFile string        `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`
	TimeZone        string        `envconfig:"TIMEZONE" default:"America/Los_Angeles"`
	BusySource      string        `envconfig:"BUSY_SOURCE" default:"events"`
	InviteAttendees bool          `envconfig:"CALENDAR_INVITE_ATTENDEES" default:"false"`
	RequestTimeout  time.Duration `envconfig:"CALENDAR_TIMEOUT" default:"10s"`
	AdminListDays   int           `envconfig:"ADMIN_LIST_DAYS" default:"90"`
}

// PrivateKeyPEM restores newlines that hosting dashboards store as a literal "\n".
func (c CalendarConfig) PrivateKeyPEM() []byte {
	return []byte(strings.ReplaceAll(c.PrivateKey, `\n`, "\n"))
}

type BusinessConfig struct {
	Name          string `envconfig:"BUSINESS_NAME" default:"Revive Studio"`
	SourceMarker  string `envconfig:"BOOKING_SOURCE" default:"revive-site"`
	PolicyText    string `envconfig:"BOOKING_POLICY" default:"24h reschedule; $25 late-cancel fee."`
	OwnerEmail    string `envconfig:"OWNER_EMAIL"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL"`
}

type ScheduleConfig struct {
	Hours               schedule.WeeklyHours `envconfig:"BUSINESS_HOURS" default:"sun=closed;mon=17:00-21:00;tue=17:00-21:00;wed=17:00-21:00;thu=17:00-21:00;fri=17:00-21:00;sat=09:00-17:00"`
	ServiceDurations    map[string]int       `envconfig:"SERVICE_DURATIONS" default:"Gentle Recovery Flow (60 min):60,Total Body Renewal (60 min):60,Radiance Facial Flow (45 min):45"`
	FallbackDurationMin int                  `envconfig:"FALLBACK_DURATION_MIN" default:"60"`
	PreBufferMin        int                  `envconfig:"PRE_BUFFER_MIN" default:"15"`
	PostBufferMin       int                  `envconfig:"POST_BUFFER_MIN" default:"15"`
	StepMin             int                  `envconfig:"SLOT_STEP_MIN" default:"15"`
	Mode                string               `envconfig:"SLOT_MODE" default:"buffered"`
}

func (c ScheduleConfig) Step() time.Duration {
	return time.Duration(c.StepMin) * time.Minute
}

type AdminConfig struct {
	Token     string `envconfig:"ADMIN_TOKEN"`
	TokenHash string `envconfig:"ADMIN_TOKEN_BCRYPT"`
}

type CancelConfig struct {
	Secret     string `envconfig:"CANCEL_SECRET"`
	MaxAgeDays int    `envconfig:"CANCEL_MAX_AGE_DAYS" default:"30"`
}

type SMTPConfig struct {
	Host  string        `envconfig:"SMTP_HOST"`
	Port  int           `envconfig:"SMTP_PORT" default:"465"`
	User  string        `envconfig:"SMTP_USER"`
	Pass  string        `envconfig:"SMTP_PASS"`
	From  string        `envconfig:"FROM_EMAIL"`
	Dial  time.Duration `envconfig:"SMTP_DIAL_TIMEOUT" default:"10s"`
	Debug bool          `envconfig:"SMTP_DEBUG" default:"false"`
}

func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c SMTPConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type NotifyConfig struct {
	Mode             string        `envconfig:"NOTIFY_MODE" default:"async"`
	Workers          int           `envconfig:"NOTIFY_WORKERS" default:"4"`
	SendTimeout      time.Duration `envconfig:"NOTIFY_SEND_TIMEOUT" default:"20s"`
	RedisAddr        string        `envconfig:"NOTIFY_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword    string        `envconfig:"NOTIFY_REDIS_PASSWORD"`
	RedisDB          int           `envconfig:"NOTIFY_REDIS_DB" default:"0"`
	QueueConcurrency int           `envconfig:"NOTIFY_QUEUE_CONCURRENCY" default:"5"`
	MaxRetry         int           `envconfig:"NOTIFY_MAX_RETRY" default:"3"`
}

type RateLimitConfig struct {
	BookingsPerMinute int `envconfig:"RATE_LIMIT_BOOKINGS_PER_MIN" default:"10"`
	Burst             int `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

// OwnerAddress is where staff notices go: OWNER_EMAIL, else the SMTP sender.
func (c Config) OwnerAddress() string {
	if c.Business.OwnerEmail != "" {
		return c.Business.OwnerEmail
	}
	return c.SMTP.Sender()
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	hours, _ := schedule.ParseWeeklyHours("sun=closed;mon=17:00-21:00;tue=17:00-21:00;wed=17:00-21:00;thu=17:00-21:00;fri=17:00-21:00;sat=09:00-17:00")
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "America/Los_Angeles",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Calendar: CalendarConfig{
			ID:             "test-calendar@example.com",
			TimeZone:       "America/Los_Angeles",
			BusySource:     "events",
			RequestTimeout: 5 * time.Second,
			AdminListDays:  90,
		},
		Business: BusinessConfig{
			Name:          "Revive Studio",
			SourceMarker:  "revive-site",
			PolicyText:    "24h reschedule; $25 late-cancel fee.",
			OwnerEmail:    "owner@example.com",
			PublicBaseURL: "http://localhost:3000",
		},
		Schedule: ScheduleConfig{
			Hours: hours,
			ServiceDurations: map[string]int{
				"Gentle Recovery Flow (60 min)": 60,
				"Total Body Renewal (60 min)":   60,
				"Radiance Facial Flow (45 min)": 45,
			},
			FallbackDurationMin: 60,
			PreBufferMin:        15,
			PostBufferMin:       15,
			StepMin:             15,
			Mode:                "buffered",
		},
		Admin: AdminConfig{
			Token: "test-admin-token",
		},
		Cancel: CancelConfig{
			Secret:     "test-cancel-secret",
			MaxAgeDays: 30,
		},
		Notify: NotifyConfig{
			Mode:        "async",
			Workers:     2,
			SendTimeout: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			BookingsPerMinute: 60,
			Burst:             10,
		},
	}
}
