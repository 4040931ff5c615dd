package readstore

import (
	"context"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentViewQueries interface {
	GetPaymentView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetPaymentViewRow, error)
}

type PaymentReadStore struct {
	queries PaymentViewQueries
	db      sqlc.DBTX
}

func NewPaymentReadStore(queries PaymentViewQueries, db sqlc.DBTX) *PaymentReadStore {
	return &PaymentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row, err := r.queries.GetPaymentView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}

	return rowToPaymentView(row), nil
}

func rowToPaymentView(row sqlc.GetPaymentViewRow) *queries.PaymentView {
	return &queries.PaymentView{
		ID:            row.ID,
		BookingID:     row.BookingID,
		UserID:        row.UserID,
		PropertyID:    row.PropertyID,
		HostID:        row.HostID,
		Amount:        row.Amount,
		Currency:      row.Currency,
		Method:        row.Method,
		Status:        row.Status,
		TransactionID: pgconv.StringPtrFromPgtype(row.TransactionID),
		Charges: queries.ChargesView{
			Base:        row.ChargeBase,
			ServiceFee:  row.ChargeServiceFee,
			CleaningFee: row.ChargeCleaningFee,
			Taxes:       row.ChargeTaxes,
			Discount:    row.ChargeDiscount,
		},
		RefundAmount:  row.RefundAmount,
		RefundReason:  pgconv.StringPtrFromPgtype(row.RefundReason),
		FailureReason: pgconv.StringPtrFromPgtype(row.FailureReason),
		PaidAt:        pgconv.TimePtrFromPgtype(row.PaidAt),
		RefundedAt:    pgconv.TimePtrFromPgtype(row.RefundedAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
