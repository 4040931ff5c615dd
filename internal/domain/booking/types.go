package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Holding reports whether the status blocks the booked dates for others.
func (s Status) Holding() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses are the statuses that take part in overlap exclusion.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// PaymentState mirrors the linked payment as far as the booking cares.
type PaymentState string

const (
	PaymentUnpaid   PaymentState = "unpaid"
	PaymentPending  PaymentState = "pending"
	PaymentPaid     PaymentState = "paid"
	PaymentFailed   PaymentState = "failed"
	PaymentRefunded PaymentState = "refunded"
	PaymentVoided   PaymentState = "voided"
)

func (s PaymentState) String() string {
	return string(s)
}

// Changed field names recorded in the modification history.
const (
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldAdults   = "adults"
	FieldChildren = "children"
	FieldTotal    = "total"
)
