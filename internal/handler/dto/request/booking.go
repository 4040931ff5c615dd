package request

import (
	"rental-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
	CheckIn    string    `json:"checkIn" binding:"required,isodate"`
	CheckOut   string    `json:"checkOut" binding:"required,isodate"`
	Adults     int       `json:"adults" binding:"required,min=1"`
	Children   int       `json:"children" binding:"min=0"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		PropertyID: r.PropertyID,
		CheckIn:    ParseDate(r.CheckIn),
		CheckOut:   ParseDate(r.CheckOut),
		Adults:     r.Adults,
		Children:   r.Children,
	}
}

// ModifyBookingRequest is a partial update; omitted fields keep their values.
type ModifyBookingRequest struct {
	CheckIn     *string   `json:"checkIn,omitempty" binding:"omitempty,isodate"`
	CheckOut    *string   `json:"checkOut,omitempty" binding:"omitempty,isodate"`
	Adults      *int      `json:"adults,omitempty" binding:"omitempty,min=1"`
	Children    *int      `json:"children,omitempty" binding:"omitempty,min=0"`
	ChallengeID uuid.UUID `json:"challengeId" binding:"required"`
}

func (r ModifyBookingRequest) ToInput() commands.ModifyBookingInput {
	return commands.ModifyBookingInput{
		CheckIn:     parseDatePtr(r.CheckIn),
		CheckOut:    parseDatePtr(r.CheckOut),
		Adults:      r.Adults,
		Children:    r.Children,
		ChallengeID: r.ChallengeID,
	}
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type ListBookingsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type StayQuery struct {
	CheckIn  string `form:"checkIn" binding:"required,isodate"`
	CheckOut string `form:"checkOut" binding:"required,isodate"`
}
