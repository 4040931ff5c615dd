package otp

type Purpose string

const (
	PurposeBookingConfirmation Purpose = "booking_confirmation"
	PurposeBookingModification Purpose = "booking_modification"
	PurposeBookingCancellation Purpose = "booking_cancellation"
)

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeBookingConfirmation, PurposeBookingModification, PurposeBookingCancellation:
		return true
	default:
		return false
	}
}

func NewPurpose(s string) (Purpose, error) {
	p := Purpose(s)
	if !p.IsValid() {
		return "", ErrInvalidPurpose
	}
	return p, nil
}

// VerifyResult is the outcome of a verify call that did not hit a hard stop.
type VerifyResult struct {
	Verified     bool
	AttemptsLeft int
}
