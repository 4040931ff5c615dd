package queries

import (
	"context"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/infra"

	"github.com/google/uuid"
)

type PaymentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type PaymentQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*PaymentView, error)
}

type paymentQueriesImpl struct {
	store PaymentReadStore
}

func NewPaymentQueries(store PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{store: store}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*PaymentView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, err
	}
	if !actor.CanAccessBooking(view.UserID, view.HostID) {
		return nil, payment.ErrPaymentNotFound
	}
	return view, nil
}

func PaymentViewFromDomain(p *payment.Payment, hostID uuid.UUID) *PaymentView {
	ch := p.Charges()
	return &PaymentView{
		ID:            p.ID(),
		BookingID:     p.BookingID(),
		UserID:        p.UserID(),
		PropertyID:    p.PropertyID(),
		HostID:        hostID,
		Amount:        p.Amount(),
		Currency:      p.Currency(),
		Method:        p.Method(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		Charges: ChargesView{
			Base:        ch.Base,
			ServiceFee:  ch.ServiceFee,
			CleaningFee: ch.CleaningFee,
			Taxes:       ch.Taxes,
			Discount:    ch.Discount,
		},
		RefundAmount:  p.RefundAmount(),
		RefundReason:  p.RefundReason(),
		FailureReason: p.FailureReason(),
		PaidAt:        p.PaidAt(),
		RefundedAt:    p.RefundedAt(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}
