package readstore

import (
	"context"
	"time"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type AvailabilityReadQueries interface {
	CountOverlappingBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.CountOverlappingBookingsParams) (int64, error)
	SumBookedNights(ctx context.Context, db sqlc.DBTX, arg sqlc.SumBookedNightsParams) (int64, error)
}

type AvailabilityReadStore struct {
	queries AvailabilityReadQueries
}

func NewAvailabilityReadStore(queries AvailabilityReadQueries) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		queries: queries,
	}
}

// CountOverlapping counts pending and confirmed stays intersecting [checkIn, checkOut).
func (r *AvailabilityReadStore) CountOverlapping(ctx context.Context, db sqlc.DBTX, propertyID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error) {
	n, err := r.queries.CountOverlappingBookings(ctx, db, sqlc.CountOverlappingBookingsParams{
		PropertyID: propertyID,
		CheckOut:   pgconv.DateToPgtype(checkOut),
		CheckIn:    pgconv.DateToPgtype(checkIn),
		ExcludeID:  pgconv.UUIDPtrToPgtype(exclude),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return n, nil
}

// BookedNights sums holding nights inside [from, to), leaving out exclude when set.
func (r *AvailabilityReadStore) BookedNights(ctx context.Context, db sqlc.DBTX, propertyID uuid.UUID, from, to time.Time, exclude *uuid.UUID) (int64, error) {
	n, err := r.queries.SumBookedNights(ctx, db, sqlc.SumBookedNightsParams{
		WindowEnd:   pgconv.DateToPgtype(to),
		WindowStart: pgconv.DateToPgtype(from),
		PropertyID:  propertyID,
		ExcludeID:   pgconv.UUIDPtrToPgtype(exclude),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum booked nights", err)
	}
	return n, nil
}
