package response

import (
	"time"

	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type ChallengeResponse struct {
	ChallengeID uuid.UUID `json:"challengeId"`
	BookingID   uuid.UUID `json:"bookingId"`
	Purpose     string    `json:"purpose"`
	ExpiresAt   time.Time `json:"expiresAt"`
	// Code is only present when the development delivery channel is on.
	Code string `json:"code,omitempty"`
}

type VerifyOTPResponse struct {
	Verified     bool             `json:"verified"`
	AttemptsLeft int              `json:"attemptsLeft"`
	ChallengeID  uuid.UUID        `json:"challengeId"`
	Purpose      string           `json:"purpose"`
	Booking      *BookingResponse `json:"booking,omitempty"`
}

func FromIssuedChallenge(ch *commands.IssuedChallenge) *ChallengeResponse {
	return &ChallengeResponse{
		ChallengeID: ch.ChallengeID,
		BookingID:   ch.BookingID,
		Purpose:     ch.Purpose.String(),
		ExpiresAt:   ch.ExpiresAt,
		Code:        ch.Code,
	}
}

func FromVerifyResult(res *commands.VerifyOTPResult) (*VerifyOTPResponse, error) {
	resp := &VerifyOTPResponse{
		Verified:     res.Verified,
		AttemptsLeft: res.AttemptsLeft,
		ChallengeID:  res.ChallengeID,
		Purpose:      res.Purpose.String(),
	}
	if res.Booking != nil {
		b, err := FromBookingView(res.Booking)
		if err != nil {
			return nil, err
		}
		resp.Booking = b
	}
	return resp, nil
}
