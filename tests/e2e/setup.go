//go:build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"calendar-booking/cmd/bootstrap"
	"calendar-booking/cmd/bootstrap/components"
	"calendar-booking/internal/pkg/clock"
	"calendar-booking/internal/pkg/config"
	"calendar-booking/internal/usecase/shared"
	"calendar-booking/tests/common/calendartest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

var (
	redisContainerOnce sync.Once
	redisTestContainer testcontainers.Container

	mailpitContainerOnce sync.Once
	mailpitTestContainer testcontainers.Container
)

// Now is the frozen instant every e2e app runs at: Monday 2025-03-03 10:00 in
// Los Angeles.
var Now = time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC)

type ContainerInfo struct {
	Host string
	Port nat.Port
}

func (c ContainerInfo) Addr() string {
	return c.Host + ":" + c.Port.Port()
}

// ------------------------------------------------------------
// Per-process setup
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, *calendartest.Gateway, *Mailbox, config.Config) {
	redisInfo, smtpInfo, apiInfo := startContainers(t)

	cfg := createTestConfig(redisInfo, smtpInfo)
	gateway := calendartest.New()

	router, app := buildE2EApp(cfg, gateway)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	slog.Info("E2E environment ready",
		"redis", redisInfo.Addr(),
		"smtp", smtpInfo.Addr(),
	)

	return router, gateway, &Mailbox{baseURL: "http://" + apiInfo.Addr()}, cfg
}

func startContainers(t *testing.T) (redisInfo, smtpInfo, apiInfo ContainerInfo) {
	gin.SetMode(gin.TestMode)
	startRedisContainerOnce(t)
	startMailpitContainerOnce(t)

	var err error
	redisInfo, err = getContainerHostPort(redisTestContainer, "6379/tcp")
	require.NoError(t, err, "failed to resolve redis port")
	smtpInfo, err = getContainerHostPort(mailpitTestContainer, "1025/tcp")
	require.NoError(t, err, "failed to resolve mailpit smtp port")
	apiInfo, err = getContainerHostPort(mailpitTestContainer, "8025/tcp")
	require.NoError(t, err, "failed to resolve mailpit api port")
	return redisInfo, smtpInfo, apiInfo
}

// ------------------------------------------------------------
// App construction
// The calendar is the in-memory gateway; SMTP and the task queue are real.
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config, gateway *calendartest.Gateway) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	testGatewayModule := fx.Module("testgateway",
		fx.Provide(
			func() shared.CalendarGateway { return gateway },
			bootstrap.NewAnchor,
			components.NewBusySource,
		),
	)

	app := fx.New(
		testConfigModule,
		testGatewayModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.NotifierModule,
		bootstrap.CancelTokenModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Decorate(func(clock.Clock) clock.Clock { return clock.NewFixedClock(Now) }),

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}
	return router, app
}

func createTestConfig(redisInfo, smtpInfo ContainerInfo) config.Config {
	cfg := config.NewTestConfig()
	cfg.SMTP = config.SMTPConfig{
		Host: smtpInfo.Host,
		Port: mustAtoi(smtpInfo.Port.Port()),
		From: "bookings@revive.example",
		Dial: 5 * time.Second,
	}
	cfg.Notify.Mode = bootstrap.NotifyModeQueue
	cfg.Notify.RedisAddr = redisInfo.Addr()
	cfg.Notify.QueueConcurrency = 2
	cfg.Notify.MaxRetry = 1
	return cfg
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ------------------------------------------------------------
// Shared container startup
// ------------------------------------------------------------
func startGenericContainer(req testcontainers.ContainerRequest, timeoutSec int) (testcontainers.Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSec)*time.Second)
	defer cancel()

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func startRedisContainerOnce(t *testing.T) {
	redisContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			Cmd:          []string{"redis-server", "--save", "", "--appendonly", "no"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		redisTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "failed to start redis container")

		t.Cleanup(func() {
			terminate(redisTestContainer, "redis")
		})
	})
}

func startMailpitContainerOnce(t *testing.T) {
	mailpitContainerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "axllent/mailpit:latest",
			ExposedPorts: []string{"1025/tcp", "8025/tcp"},
			Env: map[string]string{
				"MP_SMTP_AUTH_ACCEPT_ANY":     "1",
				"MP_SMTP_AUTH_ALLOW_INSECURE": "1",
			},
			WaitingFor: wait.ForHTTP("/livez").WithPort("8025/tcp").WithStartupTimeout(60 * time.Second),
			Labels:     map[string]string{"purpose": "e2e-tests"},
		}

		var err error
		mailpitTestContainer, err = startGenericContainer(req, 120)
		require.NoError(t, err, "failed to start mailpit container")

		t.Cleanup(func() {
			terminate(mailpitTestContainer, "mailpit")
		})
	})
}

func terminate(c testcontainers.Container, name string) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Terminate(ctx); err != nil {
		slog.Warn("failed to terminate container", "container", name, "error", err.Error())
	}
}

func getContainerHostPort(c testcontainers.Container, port string) (ContainerInfo, error) {
	ctx := context.Background()
	mappedPort, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		return ContainerInfo{}, err
	}
	host, err := c.Host(ctx)
	if err != nil {
		return ContainerInfo{}, err
	}
	return ContainerInfo{Host: host, Port: mappedPort}, nil
}

// ------------------------------------------------------------
// Mailpit API
// ------------------------------------------------------------

// MailSummary is one entry of the Mailpit message list.
type MailSummary struct {
	MessageID string `json:"MessageID"`
	Subject   string `json:"Subject"`
	To        []struct {
		Address string `json:"Address"`
	} `json:"To"`
}

func (m MailSummary) Recipient() string {
	if len(m.To) == 0 {
		return ""
	}
	return m.To[0].Address
}

type Mailbox struct {
	baseURL string
}

func (m *Mailbox) Messages(t *testing.T) []MailSummary {
	t.Helper()
	resp, err := http.Get(m.baseURL + "/api/v1/messages")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Messages []MailSummary `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Messages
}

// WaitFor polls until a message to addr whose subject contains subject shows
// up, then returns it.
func (m *Mailbox) WaitFor(t *testing.T, addr, subject string) MailSummary {
	t.Helper()
	var found MailSummary
	require.Eventually(t, func() bool {
		for _, msg := range m.Messages(t) {
			if msg.Recipient() == addr && containsFold(msg.Subject, subject) {
				found = msg
				return true
			}
		}
		return false
	}, 20*time.Second, 250*time.Millisecond, "no mail to %s with subject %q", addr, subject)
	return found
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *Mailbox) Clear(t *testing.T) {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, m.baseURL+"/api/v1/messages", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router   *gin.Engine
	Calendar *calendartest.Gateway
	Mailbox  *Mailbox
	Config   config.Config
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, gateway, mailbox, cfg := setupE2EEnvironment(t)
	s.Router = router
	s.Calendar = gateway
	s.Mailbox = mailbox
	s.Config = cfg
	require.NotNil(t, s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Calendar.Reset()
	s.Mailbox.Clear(s.T())
}
