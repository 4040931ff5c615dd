package response

import (
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type QuoteResponse struct {
	PropertyID uuid.UUID     `json:"propertyId"`
	CheckIn    string        `json:"checkIn"`
	CheckOut   string        `json:"checkOut"`
	Price      PriceResponse `json:"price"`
}

type AvailabilityResponse struct {
	PropertyID uuid.UUID `json:"propertyId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Available  bool      `json:"available"`
}

func FromQuoteView(v *queries.QuoteView) (*QuoteResponse, error) {
	resp, err := copyInto[QuoteResponse](v)
	if err != nil {
		return nil, err
	}
	price, err := copyInto[PriceResponse](&v.PriceView)
	if err != nil {
		return nil, err
	}
	resp.Price = *price
	if resp.Price.AppliedFactors == nil {
		resp.Price.AppliedFactors = []FactorResponse{}
	}
	return resp, nil
}

func FromAvailabilityView(v *queries.AvailabilityView) (*AvailabilityResponse, error) {
	return copyInto[AvailabilityResponse](v)
}
