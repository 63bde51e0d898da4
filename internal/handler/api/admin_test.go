//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"calendar-booking/internal/domain/booking"
	"calendar-booking/internal/handler/api"
	"calendar-booking/internal/handler/middleware"
	resdto "calendar-booking/internal/handler/dto/response"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/commands"
	"calendar-booking/internal/usecase/queries"
	"calendar-booking/tests/common/httptest"
	commandsmock "calendar-booking/tests/mock/commands"
	queriesmock "calendar-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.AdminHandler
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewAdminHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/admin/events", s.handler.ListEvents)
	s.router.POST("/admin/cancel", s.handler.Cancel)
	s.router.POST("/admin/complete", s.handler.Complete)
	s.router.POST("/admin/test-email", s.handler.SendTestEmail)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) TestListEvents() {
	list := &queries.BookingList{
		Total:   3,
		Matched: 1,
		Items: []*booking.Record{
			{EventID: "evt_1", Summary: "Booking: Ada — Total Body Renewal (60 min)", Service: "Total Body Renewal (60 min)", ClientEmail: "client@example.com", MatchedRule: "source"},
		},
		SampleSummaries: []string{"Booking: Ada", "Lunch", "Dentist"},
	}

	s.Run("success: site bookings without counters", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any(), false).Return(list, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/events", nil, "")

		var body resdto.AdminEventsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.OK)
		s.Require().Len(body.Events, 1)
		s.Equal("client@example.com", body.Events[0].ClientEmail)
		s.Nil(body.Total)
		s.Empty(body.SampleSummaries)
	})

	s.Run("all and debug flags", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any(), true).Return(list, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/events?all=1&debug=1", nil, "")

		var body resdto.AdminEventsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Total)
		s.Equal(3, *body.Total)
		s.Equal(1, *body.Filtered)
		s.Len(body.SampleSummaries, 3)
	})

	s.Run("error: 502 when the calendar fails", func() {
		s.mockQueries.EXPECT().ListUpcoming(gomock.Any(), false).
			Return(nil, errs.Mark(errs.New("list"), errs.ErrCalendarFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/events", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Failed to list events")
	})
}

func (s *AdminHandlerTestSuite) TestCancel() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), "evt_1").
			Return(&commands.CancelResult{EventID: "evt_1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/cancel", map[string]string{"id": "evt_1"}, "")

		var body resdto.OKResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.OK)
	})

	s.Run("error: 400 when id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/cancel", map[string]string{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing id")
	})

	s.Run("error: 404 for an unknown event", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), "missing").
			Return(nil, errs.Mark(errs.New("not found"), errs.ErrBookingNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/cancel", map[string]string{"id": "missing"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *AdminHandlerTestSuite) TestComplete() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), "evt_1").Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/complete", map[string]string{"id": "evt_1"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/complete", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Missing id")
	})

	s.Run("error: 404 for an unknown event", func() {
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), "missing").
			Return(errs.Mark(errs.New("not found"), errs.ErrBookingNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/complete", map[string]string{"id": "missing"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *AdminHandlerTestSuite) TestSendTestEmail() {
	s.Run("success: defaults to the owner", func() {
		s.mockCommands.EXPECT().SendTestEmail(gomock.Any(), "").
			Return(&commands.TestEmailResult{To: "owner@example.com", MessageID: "m-1"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/test-email", nil, "")

		var body resdto.TestEmailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("owner@example.com", body.To)
		s.Equal("m-1", body.MessageID)
	})

	s.Run("explicit recipient", func() {
		s.mockCommands.EXPECT().SendTestEmail(gomock.Any(), "ops@example.com").
			Return(&commands.TestEmailResult{To: "ops@example.com"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/test-email?to=ops@example.com", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 503 when SMTP is not configured", func() {
		s.mockCommands.EXPECT().SendTestEmail(gomock.Any(), "").Return(nil, errs.ErrMailNotConfigured).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/test-email", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "not configured")
	})

	s.Run("error: 502 when delivery fails", func() {
		s.mockCommands.EXPECT().SendTestEmail(gomock.Any(), "").
			Return(nil, errs.Mark(errs.New("535 auth"), errs.ErrDeliveryFailed)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/test-email", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Email delivery failed")
	})
}
