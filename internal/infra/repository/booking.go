package repository

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	LockPropertyBookings(ctx context.Context, db sqlc.DBTX, propertyID uuid.UUID) error
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	UpdateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingParams) (int64, error)
	GetBookingForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListFinishedBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListFinishedBookingsParams) ([]sqlc.Bookings, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) LockProperty(ctx context.Context, tx sqlc.DBTX, propertyID uuid.UUID) error {
	if err := r.queries.LockPropertyBookings(ctx, tx, propertyID); err != nil {
		return infra.WrapRepoErr("failed to lock property bookings", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	params, err := converter.BookingToCreateParams(b)
	if err != nil {
		return infra.WrapRepoErr("failed to convert booking", err, infra.KindValidation)
	}

	if err := r.queries.CreateBooking(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx sqlc.DBTX, b *booking.Booking) error {
	params, err := converter.BookingToUpdateParams(b)
	if err != nil {
		return infra.WrapRepoErr("failed to convert booking", err, infra.KindValidation)
	}

	rows, err := r.queries.UpdateBooking(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	b, err := converter.BookingFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindValidation)
	}
	return b, nil
}

// ListFinished locks confirmed bookings whose check-out day has been reached.
func (r *BookingRepository) ListFinished(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int32) ([]*booking.Booking, error) {
	params := sqlc.ListFinishedBookingsParams{
		Today:   pgconv.DateToPgtype(now.UTC()),
		MaxRows: limit,
	}

	rows, err := r.queries.ListFinishedBookings(ctx, tx, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list finished bookings", err)
	}

	result := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := converter.BookingFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking", err, infra.KindValidation)
		}
		result = append(result, b)
	}

	return result, nil
}
