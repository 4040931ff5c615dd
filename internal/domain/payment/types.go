package payment

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusRefunded   Status = "refunded"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the gateway can no longer change the payment.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusFailed, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

const DefaultMethod = "card"

// Charges is the breakdown a payment amount was derived from.
type Charges struct {
	Base        int64 `json:"base"`
	ServiceFee  int64 `json:"serviceFee"`
	CleaningFee int64 `json:"cleaningFee"`
	Taxes       int64 `json:"taxes"`
	Discount    int64 `json:"discount"`
}

func (c Charges) Total() int64 {
	return c.Base + c.ServiceFee + c.CleaningFee + c.Taxes - c.Discount
}
