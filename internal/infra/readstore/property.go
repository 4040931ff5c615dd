package readstore

import (
	"context"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PropertyReadQueries interface {
	GetPropertyByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Properties, error)
}

type PropertyReadStore struct {
	queries PropertyReadQueries
}

func NewPropertyReadStore(queries PropertyReadQueries) *PropertyReadStore {
	return &PropertyReadStore{
		queries: queries,
	}
}

func (r *PropertyReadStore) FindByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*shared.PropertySnapshot, error) {
	row, err := r.queries.GetPropertyByID(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err)
	}

	return toPropertySnapshotFromRow(row), nil
}

func toPropertySnapshotFromRow(row sqlc.Properties) *shared.PropertySnapshot {
	amenities := make([]string, len(row.Amenities))
	copy(amenities, row.Amenities)
	return &shared.PropertySnapshot{
		ID:          row.ID,
		HostID:      row.HostID,
		Title:       row.Title,
		Location:    row.Location,
		Category:    row.Category,
		Rating:      row.Rating,
		Amenities:   amenities,
		BasePrice:   row.BasePrice,
		CleaningFee: row.CleaningFee,
		Currency:    row.Currency,
		MaxGuests:   int(row.MaxGuests),
	}
}
