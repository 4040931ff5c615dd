package payment

import (
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus          = errs.Mark(errs.New("invalid payment status"), errs.ErrValidation)
	ErrInvalidAmount          = errs.Mark(errs.New("payment amount must be positive"), errs.ErrValidation)
	ErrChargesMismatch        = errs.Mark(errs.New("charges do not add up to the payment amount"), errs.ErrValidation)
	ErrInvalidRefundAmount    = errs.Mark(errs.New("refund amount must be positive"), errs.ErrValidation)
	ErrEmptyTransactionID     = errs.Mark(errs.New("transaction id is required"), errs.ErrValidation)
	ErrPaymentNotFound        = errs.Mark(errs.New("payment not found"), errs.ErrNotFound)
	ErrRefundAmountExceeded   = errs.Mark(errs.New("refund amount exceeds payment amount"), errs.ErrAmountExceeded)
	ErrNotRefundable          = errs.Mark(errs.New("only completed payments can be refunded"), errs.ErrNotRefundable)
	ErrInvalidTransition      = errs.Mark(errs.New("payment status transition not allowed"), errs.ErrPolicyViolation)
	ErrTransactionIDImmutable = errs.Mark(errs.New("payment already completed with another transaction id"), errs.ErrConflict)
	ErrPriceLocked            = errs.Mark(errs.New("payment is already being charged; the price can no longer change"), errs.ErrPolicyViolation)
)

type NewParams struct {
	BookingID  uuid.UUID
	UserID     uuid.UUID
	PropertyID uuid.UUID
	Amount     int64
	Currency   string
	Method     string
	Charges    Charges
	CreatedAt  time.Time
}

type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	userID        uuid.UUID
	propertyID    uuid.UUID
	amount        int64
	currency      string
	method        string
	status        Status
	transactionID *string
	charges       Charges
	refundAmount  int64
	refundReason  *string
	failureReason *string
	paidAt        *time.Time
	refundedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(p NewParams) (*Payment, error) {
	if p.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.Charges.Total() != p.Amount {
		return nil, ErrChargesMismatch
	}
	method := p.Method
	if method == "" {
		method = DefaultMethod
	}
	now := p.CreatedAt.UTC()
	return &Payment{
		id:         uuid.New(),
		bookingID:  p.BookingID,
		userID:     p.UserID,
		propertyID: p.PropertyID,
		amount:     p.Amount,
		currency:   p.Currency,
		method:     method,
		status:     StatusPending,
		charges:    p.Charges,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructPayment(
	id, bookingID, userID, propertyID uuid.UUID,
	amount int64,
	currency, method string,
	status Status,
	transactionID *string,
	charges Charges,
	refundAmount int64,
	refundReason, failureReason *string,
	paidAt, refundedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		userID:        userID,
		propertyID:    propertyID,
		amount:        amount,
		currency:      currency,
		method:        method,
		status:        status,
		transactionID: transactionID,
		charges:       charges,
		refundAmount:  refundAmount,
		refundReason:  refundReason,
		failureReason: failureReason,
		paidAt:        paidAt,
		refundedAt:    refundedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Payment) StartProcessing(now time.Time) error {
	switch p.status {
	case StatusProcessing:
		return nil
	case StatusPending:
		p.status = StatusProcessing
		p.updatedAt = now.UTC()
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Complete is idempotent: a repeated delivery with the same transaction id
// is a no-op and reports false. The id is assigned on the first completion only.
func (p *Payment) Complete(transactionID string, paidAt time.Time) (bool, error) {
	if transactionID == "" {
		return false, ErrEmptyTransactionID
	}
	switch p.status {
	case StatusCompleted, StatusRefunded:
		if p.transactionID != nil && *p.transactionID != transactionID {
			return false, ErrTransactionIDImmutable
		}
		return false, nil
	case StatusPending, StatusProcessing:
	default:
		return false, ErrInvalidTransition
	}

	id := transactionID
	t := paidAt.UTC()
	p.transactionID = &id
	p.paidAt = &t
	p.status = StatusCompleted
	p.updatedAt = t
	return true, nil
}

// Fail is idempotent for payments already failed.
func (p *Payment) Fail(reason string, now time.Time) (bool, error) {
	switch p.status {
	case StatusFailed:
		return false, nil
	case StatusPending, StatusProcessing:
	default:
		return false, ErrInvalidTransition
	}
	p.status = StatusFailed
	p.failureReason = &reason
	p.updatedAt = now.UTC()
	return true, nil
}

// Cancel voids a payment that has not been captured yet.
func (p *Payment) Cancel(reason string, now time.Time) (bool, error) {
	switch p.status {
	case StatusCancelled:
		return false, nil
	case StatusPending, StatusProcessing:
	default:
		return false, ErrInvalidTransition
	}
	p.status = StatusCancelled
	p.failureReason = &reason
	p.updatedAt = now.UTC()
	return true, nil
}

func (p *Payment) Refund(amount int64, reason string, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidRefundAmount
	}
	if p.status != StatusCompleted {
		return ErrNotRefundable
	}
	if amount > p.amount {
		return ErrRefundAmountExceeded
	}
	t := now.UTC()
	p.status = StatusRefunded
	p.refundAmount = amount
	p.refundReason = &reason
	p.refundedAt = &t
	p.updatedAt = t
	return nil
}

// Reprice follows a booking modification while nothing has been charged yet.
func (p *Payment) Reprice(charges Charges, now time.Time) error {
	if p.status != StatusPending {
		return ErrPriceLocked
	}
	total := charges.Total()
	if total <= 0 {
		return ErrInvalidAmount
	}
	p.charges = charges
	p.amount = total
	p.updatedAt = now.UTC()
	return nil
}

func (p *Payment) ID() uuid.UUID          { return p.id }
func (p *Payment) BookingID() uuid.UUID   { return p.bookingID }
func (p *Payment) UserID() uuid.UUID      { return p.userID }
func (p *Payment) PropertyID() uuid.UUID  { return p.propertyID }
func (p *Payment) Amount() int64          { return p.amount }
func (p *Payment) Currency() string       { return p.currency }
func (p *Payment) Method() string         { return p.method }
func (p *Payment) Status() Status         { return p.status }
func (p *Payment) TransactionID() *string { return p.transactionID }
func (p *Payment) Charges() Charges       { return p.charges }
func (p *Payment) RefundAmount() int64    { return p.refundAmount }
func (p *Payment) RefundReason() *string  { return p.refundReason }
func (p *Payment) FailureReason() *string { return p.failureReason }
func (p *Payment) PaidAt() *time.Time     { return p.paidAt }
func (p *Payment) RefundedAt() *time.Time { return p.refundedAt }
func (p *Payment) CreatedAt() time.Time   { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time   { return p.updatedAt }
