//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/testutil"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actor        user.Actor
	builder      *builder.BookingBuilder
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.builder = builder.NewBookingBuilder()
	s.actor = user.NewActor(s.builder.GuestID, user.RoleGuest)
	auth := stubAuth(&s.actor)

	s.router.POST("/api/bookings", auth, s.handler.Create)
	s.router.GET("/api/bookings", auth, s.handler.List)
	s.router.GET("/api/bookings/:id", auth, s.handler.Get)
	s.router.PATCH("/api/bookings/:id", auth, s.handler.Modify)
	s.router.POST("/api/bookings/:id/cancel", auth, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
	// failing field and tag, when the validator rejects the body
	field, tag string
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	reqBody := s.builder.BuildCreateRequestDTO()
	view := s.builder.BuildView()

	s.Run("success: returns 201 Created with Location", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.actor, gomock.Any(), (*uuid.UUID)(nil)).
			DoAndReturn(func(_ context.Context, _ user.Actor, in commands.CreateBookingInput, _ *uuid.UUID) (*commands.CreateBookingResult, error) {
				s.Equal(s.builder.PropertyID, in.PropertyID)
				s.True(in.CheckIn.Equal(s.builder.CheckIn))
				s.True(in.CheckOut.Equal(s.builder.CheckOut))
				s.Equal(2, in.Adults)
				return &commands.CreateBookingResult{Booking: view}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("2030-06-10", body.CheckIn)
		s.Equal("2030-06-13", body.CheckOut)
		s.Equal("pending", body.Status)
		s.Equal(view.Price.Total, body.Price.Total)
		s.NotNil(body.Modifications)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Location":                 "/api/bookings/" + view.ID.String(),
			api.IdempotentReplayHeader: "",
		})
	})

	s.Run("success: replay with the same Idempotency-Key returns 200", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), s.actor, gomock.Any(), &key).
			Return(&commands.CreateBookingResult{Booking: view, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{api.IdempotencyKeyHeader: key.String()}, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{api.IdempotentReplayHeader: "true"})
	})

	s.Run("error: 400 Bad Request for malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{api.IdempotencyKeyHeader: "not-a-uuid"}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid idempotency key format")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "adults boundary OK (1)", mutate: testutil.Field("adults", 1), expectCode: http.StatusCreated},
			{name: "adults invalid (0)", mutate: testutil.Field("adults", 0), expectCode: http.StatusBadRequest, field: "adults", tag: "required"},
			{name: "children invalid (-1)", mutate: testutil.Field("children", -1), expectCode: http.StatusBadRequest, field: "children", tag: "min"},
			{name: "checkIn wrong layout", mutate: testutil.Field("checkIn", "2030/06/10"), expectCode: http.StatusBadRequest, field: "checkIn", tag: "isodate"},
			{name: "checkOut not a date", mutate: testutil.Field("checkOut", "tomorrow"), expectCode: http.StatusBadRequest, field: "checkOut", tag: "isodate"},
			{name: "propertyId not a uuid", mutate: testutil.Field("propertyId", "abc"), expectCode: http.StatusBadRequest},
			{name: "missing field: propertyId", mutate: testutil.Field("propertyId", nil), expectCode: http.StatusBadRequest, field: "propertyId", tag: "required"},
			{name: "missing field: checkIn", mutate: testutil.Field("checkIn", nil), expectCode: http.StatusBadRequest, field: "checkIn", tag: "required"},
			{name: "missing field: checkOut", mutate: testutil.Field("checkOut", nil), expectCode: http.StatusBadRequest, field: "checkOut", tag: "required"},
			{name: "missing field: adults", mutate: testutil.Field("adults", nil), expectCode: http.StatusBadRequest, field: "adults", tag: "required"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.RequestMap(s.T(), reqBody, tc.mutate)
				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
						Return(&commands.CreateBookingResult{Booking: view}, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, bearer)
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
				}
				if tc.field != "" {
					httptest.AssertValidationDetail(s.T(), rec, tc.field, tc.tag)
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "dates taken", err: booking.ErrDatesUnavailable, expectedStatus: http.StatusConflict, expectedMsg: "not available"},
			{name: "too many guests", err: booking.ErrCapacityExceeded, expectedStatus: http.StatusBadRequest, expectedMsg: "capacity"},
			{name: "check-in in the past", err: booking.ErrCheckInInPast, expectedStatus: http.StatusBadRequest, expectedMsg: "past"},
			{name: "unknown property", err: queries.ErrPropertyNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "property not found"},
			{name: "idempotency key reused with another body", err: commands.ErrIdempotencyMismatch, expectedStatus: http.StatusConflict},
			{name: "idempotency key still processing", err: commands.ErrIdempotencyInProgress, expectedStatus: http.StatusConflict},
			{name: "storage failure", err: errors.New("connection reset"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				s.NotContains(rec.Body.String(), "connection reset")
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := s.builder.BuildView()
	url := "/api/bookings/" + view.ID.String()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.GuestID, body.GuestID)
		s.Equal(view.HostID, body.HostID)
		s.Equal(3, body.Nights)
		s.Equal("unpaid", body.Payment.Status)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/invalid-uuid", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 404 Not Found for a booking the actor cannot see", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actor, view.ID).
			Return(nil, booking.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	view := s.builder.BuildView()
	item := &queries.BookingListItem{
		ID:         view.ID,
		PropertyID: view.PropertyID,
		GuestID:    view.GuestID,
		HostID:     view.HostID,
		CheckIn:    view.CheckIn,
		CheckOut:   view.CheckOut,
		Status:     view.Status,
		Total:      view.Price.Total,
		Currency:   view.Price.Currency,
		CreatedAt:  view.CreatedAt,
	}

	s.Run("success: returns items and the next cursor", func() {
		next := &queries.Cursor{After: "next-page"}
		s.mockQueries.EXPECT().ListByActor(gomock.Any(), s.actor, (*queries.Cursor)(nil), 0).
			Return([]*queries.BookingListItem{item}, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings", nil, bearer)

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Items, 1)
		s.Equal(view.ID, body.Items[0].ID)
		s.Equal("2030-06-10", body.Items[0].CheckIn)
		s.Equal("next-page", body.NextCursor)
	})

	s.Run("success: passes cursor and limit through", func() {
		s.mockQueries.EXPECT().ListByActor(gomock.Any(), s.actor, &queries.Cursor{After: "abc"}, 50).
			Return([]*queries.BookingListItem{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=abc&limit=50", nil, bearer)

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Empty(body.NextCursor)
	})

	s.Run("error: 400 Bad Request for limit out of range", func() {
		for _, q := range []string{"limit=201", "limit=-1", "limit=abc"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?"+q, nil, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: 400 Bad Request for a corrupted cursor", func() {
		s.mockQueries.EXPECT().ListByActor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings?after=garbage", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid pagination cursor")
	})
}

// ================================================================================
// TestModify
// ================================================================================

func (s *BookingHandlerTestSuite) TestModify() {
	view := s.builder.BuildView()
	url := "/api/bookings/" + view.ID.String()
	challengeID := uuid.New()
	reqBody := map[string]any{
		"checkOut":    "2030-06-14",
		"adults":      3,
		"challengeId": challengeID.String(),
	}

	s.Run("success: returns 200 OK with the modified booking", func() {
		modified := *view
		modified.CheckOut = time.Date(2030, time.June, 14, 0, 0, 0, 0, time.UTC)
		modified.Adults = 3
		s.mockCommands.EXPECT().ModifyBooking(gomock.Any(), s.actor, view.ID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ user.Actor, _ uuid.UUID, in commands.ModifyBookingInput) (*queries.BookingView, error) {
				s.Nil(in.CheckIn)
				s.Require().NotNil(in.CheckOut)
				s.Equal("2030-06-14", in.CheckOut.Format(reqdto.DateLayout))
				s.Require().NotNil(in.Adults)
				s.Equal(3, *in.Adults)
				s.Nil(in.Children)
				s.Equal(challengeID, in.ChallengeID)
				return &modified, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("2030-06-14", body.CheckOut)
		s.Equal(3, body.Adults)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing field: challengeId", mutate: testutil.Field("challengeId", nil)},
			{name: "adults invalid (0)", mutate: testutil.Field("adults", 0)},
			{name: "checkIn wrong layout", mutate: testutil.Field("checkIn", "14-06-2030")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.RequestMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, requestMap, bearer)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "no verified proof", err: otp.ErrInvalidProof, expectedStatus: http.StatusUnprocessableEntity},
			{name: "cancelled booking", err: booking.ErrNotModifiable, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "no longer be modified"},
			{name: "new dates taken", err: booking.ErrDatesUnavailable, expectedStatus: http.StatusConflict},
			{name: "nothing changes", err: booking.ErrNoChanges, expectedStatus: http.StatusBadRequest},
			{name: "not a participant", err: booking.ErrBookingAccessDenied, expectedStatus: http.StatusForbidden},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ModifyBooking(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	view := s.builder.BuildView()
	url := "/api/bookings/" + view.ID.String() + "/cancel"

	cancelled := *view
	cancelled.Status = booking.StatusCancelled.String()
	cancelled.Cancellation = &queries.CancellationView{
		CancelledBy: s.builder.GuestID,
		CancelledAt: builder.FixedNow,
		Reason:      "plans changed",
	}

	s.Run("success: returns 200 OK with the cancellation", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, view.ID, "plans changed").
			Return(&cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "plans changed"}, bearer)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body.Status)
		s.Require().NotNil(body.Cancellation)
		s.Equal("plans changed", body.Cancellation.Reason)
		s.Equal(s.builder.GuestID, body.Cancellation.CancelledBy)
	})

	s.Run("success: body is optional", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), s.actor, view.ID, "").
			Return(&cancelled, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for an overlong reason", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": strings.Repeat("a", 501)}, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "inside the 24h window", err: booking.ErrCancellationWindow, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "24h"},
			{name: "already cancelled", err: booking.ErrAlreadyCancelled, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "already cancelled"},
			{name: "unknown booking", err: booking.ErrBookingNotFound, expectedStatus: http.StatusNotFound},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), gomock.Any(), view.ID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
