//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	repositorymock "rental-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIdempotencyRepository_TryInsert(t *testing.T) {
	ctx := context.Background()
	key, userID := uuid.New(), uuid.New()
	expiresAt := time.Date(2030, time.May, 2, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		rows         int64
		queryErr     error
		wantInserted bool
		wantErr      bool
	}{
		{name: "fresh key inserted", rows: 1, wantInserted: true},
		{name: "existing key left untouched", rows: 0, wantInserted: false},
		{name: "database failure", queryErr: errors.New("boom"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

			mockQueries.EXPECT().TryInsertIdempotencyKey(ctx, mockDB, sqlc.TryInsertIdempotencyKeyParams{
				Key:         key,
				UserID:      userID,
				Endpoint:    "POST /bookings",
				RequestHash: "abc",
				ExpiresAt:   pgTime(expiresAt),
			}).Return(tc.rows, tc.queryErr)

			inserted, err := repo.TryInsert(ctx, mockDB, key, userID, "POST /bookings", "abc", expiresAt)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantInserted, inserted)
		})
	}
}

func TestIdempotencyRepository_ClaimExpired(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockIdempotencyWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewIdempotencyRepository(mockQueries, mockDB)

	key, userID := uuid.New(), uuid.New()
	now := time.Date(2030, time.May, 2, 12, 0, 0, 0, time.UTC)

	mockQueries.EXPECT().ClaimExpiredIdempotencyKey(ctx, mockDB, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, arg sqlc.ClaimExpiredIdempotencyKeyParams) (int64, error) {
			assert.Equal(t, key, arg.Key)
			assert.Equal(t, "new-hash", arg.RequestHash)
			assert.True(t, arg.NewExpiresAt.Time.After(arg.Now.Time))
			return 1, nil
		})

	n, err := repo.ClaimExpired(ctx, mockDB, key, userID, "new-hash", now, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
