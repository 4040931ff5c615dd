//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/tests/common/builder"
	repositorymock "rental-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(nil)
			},
		},
		{
			name: "error: overlapping stay rejected by exclusion constraint",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				excl := &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_no_overlap"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(excl)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: database failure",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, tx sqlc.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(errors.New("connection reset"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b := builder.NewBookingBuilder().MustBuildDomain()
			tc.setupMock(mockQueries, mockDB)

			err := repo.Create(ctx, mockDB, b)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingRepository_CreateParams(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	b := builder.NewBookingBuilder().MustBuildDomain()

	mockQueries.EXPECT().CreateBooking(ctx, mockDB, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, arg sqlc.CreateBookingParams) error {
			assert.Equal(t, b.ID(), arg.ID)
			assert.Equal(t, "pending", arg.Status)
			assert.Equal(t, "unpaid", arg.PaymentStatus)
			assert.Equal(t, b.Stay().CheckIn(), arg.CheckIn.Time)
			assert.Equal(t, b.Price().Total, arg.Total)
			assert.JSONEq(t, "[]", string(arg.Modifications))
			return nil
		})

	require.NoError(t, repo.Create(ctx, mockDB, b))
}

// =============================================================================
// Update / Find Booking Tests
// =============================================================================

func TestBookingRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		rows       int64
		queryErr   error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: one row updated", rows: 1},
		{name: "error: booking vanished", rows: 0, expectKind: infra.KindNotFound},
		{name: "error: database failure", queryErr: errors.New("timeout"), expectKind: infra.KindDBFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries, mockDB)

			b := builder.NewBookingBuilder().MustBuildDomain()
			mockQueries.EXPECT().UpdateBooking(ctx, mockDB, gomock.Any()).Return(tc.rows, tc.queryErr)

			err := repo.Update(ctx, mockDB, b)
			if tc.expectKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}

func TestBookingRepository_FindByIDForUpdate(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	b := builder.NewBookingBuilder().MustBuildDomain()
	created, err := converter.BookingToCreateParams(b)
	require.NoError(t, err)
	row := sqlc.Bookings{
		ID:             created.ID,
		PropertyID:     created.PropertyID,
		GuestID:        created.GuestID,
		HostID:         created.HostID,
		CheckIn:        created.CheckIn,
		CheckOut:       created.CheckOut,
		Adults:         created.Adults,
		Children:       created.Children,
		Status:         created.Status,
		PricePolicy:    created.PricePolicy,
		Currency:       created.Currency,
		BasePrice:      created.BasePrice,
		Subtotal:       created.Subtotal,
		CleaningFee:    created.CleaningFee,
		ServiceFee:     created.ServiceFee,
		Taxes:          created.Taxes,
		Total:          created.Total,
		AppliedFactors: created.AppliedFactors,
		PaymentStatus:  created.PaymentStatus,
		Modifications:  created.Modifications,
		CreatedAt:      created.CreatedAt,
		UpdatedAt:      created.UpdatedAt,
	}

	t.Run("found", func(t *testing.T) {
		mockQueries.EXPECT().GetBookingForUpdate(ctx, mockDB, b.ID()).Return(row, nil)

		got, err := repo.FindByIDForUpdate(ctx, mockDB, b.ID())
		require.NoError(t, err)
		assert.Equal(t, b.ID(), got.ID())
		assert.Equal(t, b.Nights(), got.Nights())
		assert.Equal(t, b.Price().Total, got.Price().Total)
	})

	t.Run("not found", func(t *testing.T) {
		missing := uuid.New()
		mockQueries.EXPECT().GetBookingForUpdate(ctx, mockDB, missing).Return(sqlc.Bookings{}, pgx.ErrNoRows)

		got, err := repo.FindByIDForUpdate(ctx, mockDB, missing)
		assert.Nil(t, got)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestBookingRepository_ListFinished(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewBookingRepository(mockQueries, mockDB)

	now := time.Date(2030, time.June, 13, 15, 30, 0, 0, time.UTC)
	mockQueries.EXPECT().ListFinishedBookings(ctx, mockDB, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, arg sqlc.ListFinishedBookingsParams) ([]sqlc.Bookings, error) {
			assert.Equal(t, time.Date(2030, time.June, 13, 0, 0, 0, 0, time.UTC), arg.Today.Time)
			assert.Equal(t, int32(50), arg.MaxRows)
			return nil, nil
		})

	got, err := repo.ListFinished(ctx, mockDB, now, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// mockDBTX satisfies sqlc.DBTX; queries are mocked one layer up.
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
