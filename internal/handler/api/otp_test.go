//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/commands"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	commandsmock "rental-booking/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OTPHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOTPCommands
	actor        user.Actor
	bookingID    uuid.UUID
}

func (s *OTPHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOTPCommands(s.mockCtrl)
	h := api.NewOTPHandler(s.mockCommands)

	s.actor = user.NewActor(uuid.New(), user.RoleGuest)
	s.bookingID = uuid.New()
	auth := stubAuth(&s.actor)

	s.router.POST("/api/bookings/:id/otp", auth, h.Generate)
	s.router.POST("/api/bookings/:id/otp/resend", auth, h.Resend)
	s.router.POST("/api/bookings/:id/otp/verify", auth, h.Verify)
}

func (s *OTPHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOTPHandlerSuite(t *testing.T) {
	suite.Run(t, new(OTPHandlerTestSuite))
}

func (s *OTPHandlerTestSuite) issued(purpose otp.Purpose, code string) *commands.IssuedChallenge {
	return &commands.IssuedChallenge{
		ChallengeID: uuid.New(),
		BookingID:   s.bookingID,
		Purpose:     purpose,
		ExpiresAt:   builder.FixedNow.Add(10 * time.Minute),
		Code:        code,
	}
}

// ================================================================================
// TestGenerate
// ================================================================================

func (s *OTPHandlerTestSuite) TestGenerate() {
	url := "/api/bookings/" + s.bookingID.String() + "/otp"

	s.Run("success: returns 201 Created with the challenge", func() {
		ch := s.issued(otp.PurposeBookingConfirmation, "")
		s.mockCommands.EXPECT().GenerateOTP(gomock.Any(), s.actor, s.bookingID, otp.PurposeBookingConfirmation).
			Return(ch, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"purpose": "booking_confirmation"}, bearer)

		var body resdto.ChallengeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(ch.ChallengeID, body.ChallengeID)
		s.Equal(s.bookingID, body.BookingID)
		s.Equal("booking_confirmation", body.Purpose)
		s.NotContains(rec.Body.String(), `"code"`)
	})

	s.Run("success: exposes the code when the development channel is on", func() {
		s.mockCommands.EXPECT().GenerateOTP(gomock.Any(), s.actor, s.bookingID, otp.PurposeBookingModification).
			Return(s.issued(otp.PurposeBookingModification, "042517"), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"purpose": "booking_modification"}, bearer)

		var body resdto.ChallengeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("042517", body.Code)
	})

	s.Run("error: 400 Bad Request for unknown purpose", func() {
		for _, body := range []map[string]any{{"purpose": "login"}, {}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "booking not visible", err: booking.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
			{name: "not a participant", err: booking.ErrBookingAccessDenied, expectedStatus: http.StatusForbidden},
			{name: "already confirmed", err: booking.ErrInvalidTransition, expectedStatus: http.StatusUnprocessableEntity},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().GenerateOTP(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"purpose": "booking_confirmation"}, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestResend
// ================================================================================

func (s *OTPHandlerTestSuite) TestResend() {
	url := "/api/bookings/" + s.bookingID.String() + "/otp/resend"

	s.Run("success: returns 201 Created", func() {
		s.mockCommands.EXPECT().ResendOTP(gomock.Any(), s.actor, s.bookingID, otp.PurposeBookingConfirmation).
			Return(s.issued(otp.PurposeBookingConfirmation, ""), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"purpose": "booking_confirmation"}, bearer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 409 Conflict inside the cooldown", func() {
		s.mockCommands.EXPECT().ResendOTP(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, otp.ErrResendTooSoon).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"purpose": "booking_confirmation"}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "too soon")
	})
}

// ================================================================================
// TestVerify
// ================================================================================

func (s *OTPHandlerTestSuite) TestVerify() {
	url := "/api/bookings/" + s.bookingID.String() + "/otp/verify"

	s.Run("success: confirmation returns the confirmed booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		view.ID = s.bookingID
		view.Status = booking.StatusConfirmed.String()
		res := &commands.VerifyOTPResult{
			Verified:     true,
			AttemptsLeft: 2,
			ChallengeID:  uuid.New(),
			Purpose:      otp.PurposeBookingConfirmation,
			Booking:      view,
		}
		s.mockCommands.EXPECT().VerifyOTP(gomock.Any(), s.actor, s.bookingID, "123456").Return(res, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "123456"}, bearer)

		var body resdto.VerifyOTPResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Verified)
		s.Equal(res.ChallengeID, body.ChallengeID)
		s.Require().NotNil(body.Booking)
		s.Equal("confirmed", body.Booking.Status)
	})

	s.Run("success: wrong code reports remaining attempts", func() {
		res := &commands.VerifyOTPResult{
			Verified:     false,
			AttemptsLeft: 1,
			ChallengeID:  uuid.New(),
			Purpose:      otp.PurposeBookingConfirmation,
		}
		s.mockCommands.EXPECT().VerifyOTP(gomock.Any(), s.actor, s.bookingID, "000000").Return(res, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "000000"}, bearer)

		var body resdto.VerifyOTPResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Verified)
		s.Equal(1, body.AttemptsLeft)
		s.Nil(body.Booking)
	})

	s.Run("error: 400 Bad Request for malformed codes", func() {
		for _, code := range []any{"12345", "1234567", "12a456", 123456, ""} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": code}, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "expired", err: otp.ErrChallengeExpired, expectedStatus: http.StatusGone, expectedMsg: "expired"},
			{name: "attempts exhausted", err: otp.ErrMaxAttemptsExceeded, expectedStatus: http.StatusTooManyRequests, expectedMsg: "exhausted"},
			{name: "no active challenge", err: otp.ErrChallengeNotFound, expectedStatus: http.StatusNotFound},
			{name: "someone else's challenge", err: otp.ErrChallengeNotOwned, expectedStatus: http.StatusForbidden},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().VerifyOTP(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"code": "123456"}, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
