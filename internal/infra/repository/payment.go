package repository

import (
	"context"
	"time"

	"rental-booking/internal/domain/payment"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PaymentWriteQueries interface {
	CreatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreatePaymentParams) error
	UpdatePayment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdatePaymentParams) (int64, error)
	GetPaymentForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Payments, error)
	ListStalePayments(ctx context.Context, db sqlc.DBTX, arg sqlc.ListStalePaymentsParams) ([]sqlc.Payments, error)
}

type PaymentRepository struct {
	queries PaymentWriteQueries
	db      sqlc.DBTX
}

func NewPaymentRepository(queries PaymentWriteQueries, db sqlc.DBTX) *PaymentRepository {
	return &PaymentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error {
	if err := r.queries.CreatePayment(ctx, tx, converter.PaymentToCreateParams(p)); err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, tx sqlc.DBTX, p *payment.Payment) error {
	rows, err := r.queries.UpdatePayment(ctx, tx, converter.PaymentToUpdateParams(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update payment", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *PaymentRepository) FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*payment.Payment, error) {
	row, err := r.queries.GetPaymentForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}

	p, err := converter.PaymentFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert payment", err, infra.KindValidation)
	}
	return p, nil
}

// ListStale locks pending or processing payments untouched since updatedBefore.
func (r *PaymentRepository) ListStale(ctx context.Context, tx sqlc.DBTX, updatedBefore time.Time, limit int32) ([]*payment.Payment, error) {
	rows, err := r.queries.ListStalePayments(ctx, tx, sqlc.ListStalePaymentsParams{
		UpdatedBefore: pgconv.TimeToPgtype(updatedBefore),
		MaxRows:       limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stale payments", err)
	}

	result := make([]*payment.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := converter.PaymentFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert payment", err, infra.KindValidation)
		}
		result = append(result, p)
	}
	return result, nil
}
