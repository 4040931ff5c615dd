package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID              `json:"id"`
	PropertyID    uuid.UUID              `json:"propertyId"`
	GuestID       uuid.UUID              `json:"guestId"`
	HostID        uuid.UUID              `json:"hostId"`
	CheckIn       string                 `json:"checkIn"`
	CheckOut      string                 `json:"checkOut"`
	Nights        int                    `json:"nights"`
	Adults        int                    `json:"adults"`
	Children      int                    `json:"children"`
	Status        string                 `json:"status"`
	Price         PriceResponse          `json:"price"`
	Payment       PaymentInfoResponse    `json:"payment"`
	Cancellation  *CancellationResponse  `json:"cancellation,omitempty"`
	Modifications []ModificationResponse `json:"modifications"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

type PriceResponse struct {
	PolicyName     string           `json:"policyName"`
	Currency       string           `json:"currency"`
	BasePrice      int64            `json:"basePrice"`
	Nights         int              `json:"nights"`
	Subtotal       int64            `json:"subtotal"`
	CleaningFee    int64            `json:"cleaningFee"`
	ServiceFee     int64            `json:"serviceFee"`
	Taxes          int64            `json:"taxes"`
	Total          int64            `json:"total"`
	AppliedFactors []FactorResponse `json:"appliedFactors"`
}

type FactorResponse struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type PaymentInfoResponse struct {
	PaymentID *uuid.UUID `json:"paymentId,omitempty"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

type CancellationResponse struct {
	CancelledBy uuid.UUID `json:"cancelledBy"`
	CancelledAt time.Time `json:"cancelledAt"`
	Reason      string    `json:"reason"`
}

type ModificationResponse struct {
	ModifiedBy    uuid.UUID `json:"modifiedBy"`
	ModifiedAt    time.Time `json:"modifiedAt"`
	ChallengeID   uuid.UUID `json:"challengeId"`
	ChangedFields []string  `json:"changedFields"`
}

type BookingListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"propertyId"`
	GuestID    uuid.UUID `json:"guestId"`
	HostID     uuid.UUID `json:"hostId"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Status     string    `json:"status"`
	Total      int64     `json:"total"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor string                     `json:"nextCursor,omitempty"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	resp, err := copyInto[BookingResponse](v)
	if err != nil {
		return nil, err
	}
	if resp.Modifications == nil {
		resp.Modifications = []ModificationResponse{}
	}
	if resp.Price.AppliedFactors == nil {
		resp.Price.AppliedFactors = []FactorResponse{}
	}
	return resp, nil
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) (*BookingListResponse, error) {
	resp := &BookingListResponse{Items: make([]*BookingListItemResponse, len(items))}
	for i, item := range items {
		r, err := copyInto[BookingListItemResponse](item)
		if err != nil {
			return nil, err
		}
		resp.Items[i] = r
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp, nil
}
