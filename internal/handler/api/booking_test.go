//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"calendar-booking/internal/handler/api"
	"calendar-booking/internal/handler/middleware"
	resdto "calendar-booking/internal/handler/dto/response"
	"calendar-booking/internal/pkg/errs"
	"calendar-booking/internal/usecase/commands"
	"calendar-booking/tests/common/builder"
	"calendar-booking/tests/common/httptest"
	"calendar-booking/tests/common/testutil"
	commandsmock "calendar-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands)

	s.router.POST("/bookings", s.handler.CreateBooking)
	s.router.POST("/bookings/cancel", s.handler.CancelWithToken)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	expectedResult := b.BuildCreateResult()

	validation := []testCaseBooking{
		{name: "missing field: isoStart", mutate: testutil.Without("isoStart"), expectCode: http.StatusBadRequest},
		{name: "missing field: service", mutate: testutil.Without("service"), expectCode: http.StatusBadRequest},
		{name: "missing field: email", mutate: testutil.Without("email"), expectCode: http.StatusBadRequest},
		{name: "malformed email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "unknown location", mutate: testutil.Field("location", "outcall"), expectCode: http.StatusBadRequest},
		{name: "isoStart without offset", mutate: testutil.Field("isoStart", "2025-03-03T19:15:00"), expectCode: http.StatusBadRequest},
		{name: "address too long", mutate: testutil.Field("address", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
		{name: "name omitted", mutate: testutil.Without("name"), expectCode: http.StatusCreated},
		{name: "location omitted", mutate: testutil.Without("location"), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.True(in.Start.Equal(b.Start))
				s.Equal(b.Service, in.Service)
				s.Equal(b.Email, in.Email)
				s.Equal("studio", in.Location)
				return expectedResult, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.True(body.OK)
		s.Equal(expectedResult.EventID, body.ID)
		s.Equal("studio", body.Location)
		s.Equal(expectedResult.CancelURL, body.CancelURL)
	})

	s.Run("location defaults to studio", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CreateBookingInput) (*commands.CreateBookingResult, error) {
				s.Equal("studio", in.Location)
				s.Empty(in.Name)
				return expectedResult, nil
			}).Times(1)

		requestMap := testutil.JSONMap(s.T(), reqBody, testutil.Without("location"), testutil.Without("name"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.JSONMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
						Return(expectedResult, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "mobile without address",
				commandsError:  errs.Mark(errs.New("address is required for mobile"), errs.ErrValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "unknown location",
				commandsError:  errs.Mark(errs.New("location"), errs.ErrUnknownLocation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "slot taken",
				commandsError:  errs.Mark(errs.New("start not offered"), errs.ErrSlotUnavailable),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "no longer available",
			},
			{
				name:           "calendar unreachable",
				commandsError:  errs.Mark(errs.New("503 from upstream"), errs.ErrCalendarFailure),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "Booking failed",
			},
			{
				name:           "unexpected error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Booking failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "upstream")
			})
		}
	})
}

// ================================================================================
// TestCancelWithToken
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelWithToken() {
	url := "/bookings/cancel"

	s.Run("success: returns the cancelled id", func() {
		s.mockCommands.EXPECT().CancelWithToken(gomock.Any(), "signed-token").
			Return(&commands.CancelResult{EventID: "evt_1", ClientEmail: "client@example.com"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"token": "signed-token"}, "")

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.OK)
		s.Equal("evt_1", body.ID)
	})

	s.Run("error: 400 when token is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "tampered token", commandsError: errs.Mark(errs.New("bad signature"), errs.ErrInvalidCancelToken), expectedStatus: http.StatusUnauthorized},
			{name: "self cancel disabled", commandsError: errs.ErrSelfCancelDisabled, expectedStatus: http.StatusUnauthorized},
			{name: "event already gone", commandsError: errs.Mark(errs.New("gone"), errs.ErrBookingNotFound), expectedStatus: http.StatusNotFound},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelWithToken(gomock.Any(), "t").Return(nil, tc.commandsError).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]string{"token": "t"}, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}
