//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/httptest"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PropertyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockPropertyQueries
	actor       user.Actor
	propertyID  uuid.UUID
	checkIn     time.Time
	checkOut    time.Time
}

func (s *PropertyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(reqdto.RegisterValidators())
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockPropertyQueries(s.mockCtrl)
	h := api.NewPropertyHandler(s.mockQueries)

	s.actor = user.NewActor(uuid.New(), user.RoleGuest)
	s.propertyID = uuid.New()
	s.checkIn = time.Date(2030, time.May, 20, 0, 0, 0, 0, time.UTC)
	s.checkOut = time.Date(2030, time.May, 23, 0, 0, 0, 0, time.UTC)
	auth := stubAuth(&s.actor)

	s.router.GET("/api/properties/:id/quote", auth, h.Quote)
	s.router.GET("/api/properties/:id/availability", auth, h.Availability)
}

func (s *PropertyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPropertyHandlerSuite(t *testing.T) {
	suite.Run(t, new(PropertyHandlerTestSuite))
}

func (s *PropertyHandlerTestSuite) stayURL(kind string) string {
	return "/api/properties/" + s.propertyID.String() + "/" + kind + "?checkIn=2030-05-20&checkOut=2030-05-23"
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *PropertyHandlerTestSuite) TestQuote() {
	s.Run("success: returns the price breakdown", func() {
		view := &queries.QuoteView{
			PropertyID: s.propertyID,
			CheckIn:    s.checkIn,
			CheckOut:   s.checkOut,
			PriceView: queries.PriceView{
				PolicyName:  "standard",
				Currency:    "USD",
				BasePrice:   1000,
				Nights:      3,
				Subtotal:    3000,
				CleaningFee: 100,
				ServiceFee:  300,
				Total:       3400,
				AppliedFactors: []queries.FactorView{
					{Name: "demand", Multiplier: 1},
				},
			},
		}
		s.mockQueries.EXPECT().Quote(gomock.Any(), s.propertyID, s.checkIn, s.checkOut).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.stayURL("quote"), nil, bearer)

		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.propertyID, body.PropertyID)
		s.Equal("2030-05-20", body.CheckIn)
		s.Equal("2030-05-23", body.CheckOut)
		s.Equal(int64(3400), body.Price.Total)
		s.Equal(int64(300), body.Price.ServiceFee)
		s.Require().Len(body.Price.AppliedFactors, 1)
		s.Equal("demand", body.Price.AppliedFactors[0].Name)
	})

	s.Run("error: 400 Bad Request for missing or malformed dates", func() {
		base := "/api/properties/" + s.propertyID.String() + "/quote"
		for _, q := range []string{"", "?checkIn=2030-05-20", "?checkIn=20-05-2030&checkOut=2030-05-23"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base+q, nil, bearer)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []statusCase{
			{name: "unknown property", err: queries.ErrPropertyNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "property not found"},
			{name: "inverted stay", err: booking.ErrInvalidStayRange, expectedStatus: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.stayURL("quote"), nil, bearer)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *PropertyHandlerTestSuite) TestAvailability() {
	s.Run("success: reports availability", func() {
		view := &queries.AvailabilityView{PropertyID: s.propertyID, CheckIn: s.checkIn, CheckOut: s.checkOut, Available: false}
		s.mockQueries.EXPECT().Availability(gomock.Any(), s.propertyID, s.checkIn, s.checkOut).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.stayURL("availability"), nil, bearer)

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Available)
		s.Equal("2030-05-20", body.CheckIn)
	})

	s.Run("error: 400 Bad Request for invalid property id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/properties/x/availability?checkIn=2030-05-20&checkOut=2030-05-23", nil, bearer)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid property id")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, s.stayURL("availability"), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
