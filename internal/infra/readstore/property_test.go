//go:build unit

package readstore

import (
	"context"
	"testing"

	"rental-booking/internal/infra"
	sqlc "rental-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPropertyReadQueries struct {
	mock.Mock
}

func (m *MockPropertyReadQueries) GetPropertyByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Properties, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Properties), args.Error(1)
}

func TestPropertyReadStore_FindByID(t *testing.T) {
	row := sqlc.Properties{
		ID:          uuid.New(),
		HostID:      uuid.New(),
		Title:       "Seaside loft",
		Location:    "Miami Beach, FL",
		Category:    "apartment",
		Rating:      4.8,
		Amenities:   []string{"wifi", "pool"},
		BasePrice:   15000,
		CleaningFee: 4000,
		Currency:    "USD",
		MaxGuests:   4,
	}

	tests := []struct {
		name      string
		mockErr   error
		wantKind  infra.RepositoryErrorKind
		wantFound bool
	}{
		{name: "success", wantFound: true},
		{name: "not found", mockErr: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockPropertyReadQueries)
			ret := row
			if tt.mockErr != nil {
				ret = sqlc.Properties{}
			}
			mockQueries.On("GetPropertyByID", mock.Anything, mock.Anything, row.ID).Return(ret, tt.mockErr)

			store := NewPropertyReadStore(mockQueries)
			snap, err := store.FindByID(context.Background(), nil, row.ID)

			if tt.wantFound {
				assert.NoError(t, err)
				assert.Equal(t, row.HostID, snap.HostID)
				assert.Equal(t, 4, snap.MaxGuests)
				assert.Equal(t, []string{"wifi", "pool"}, snap.Amenities)
			} else {
				assert.Nil(t, snap)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			mockQueries.AssertExpectations(t)
		})
	}
}
