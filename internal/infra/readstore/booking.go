package readstore

import (
	"context"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsParams) ([]sqlc.ListBookingsRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
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

	return queries.BookingViewFromDomain(b), nil
}

// List returns one keyset page ordered by (created_at, id) descending.
func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingListFilter) ([]*queries.BookingListItem, error) {
	params := sqlc.ListBookingsParams{
		ParticipantID:  pgconv.UUIDPtrToPgtype(filter.ParticipantID),
		AfterCreatedAt: pgconv.TimePtrToPgtype(filter.AfterCreatedAt),
		AfterID:        pgconv.UUIDPtrToPgtype(filter.AfterID),
		MaxRows:        filter.Limit,
	}

	rows, err := r.queries.ListBookings(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}

	result := make([]*queries.BookingListItem, len(rows))
	for i, row := range rows {
		result[i] = toBookingListItem(row)
	}

	return result, nil
}

func toBookingListItem(row sqlc.ListBookingsRow) *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:         row.ID,
		PropertyID: row.PropertyID,
		GuestID:    row.GuestID,
		HostID:     row.HostID,
		CheckIn:    pgconv.DateFromPgtype(row.CheckIn),
		CheckOut:   pgconv.DateFromPgtype(row.CheckOut),
		Status:     row.Status,
		Total:      row.Total,
		Currency:   row.Currency,
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

