package repository

import (
	"context"
	"time"

	"rental-booking/internal/domain/otp"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/repository/converter"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ChallengeWriteQueries interface {
	CreateOTPChallenge(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateOTPChallengeParams) error
	UpdateOTPChallenge(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOTPChallengeParams) (int64, error)
	DeleteUnverifiedOTPChallenges(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (int64, error)
	GetUnverifiedOTPChallengeForUpdate(ctx context.Context, db sqlc.DBTX, bookingID uuid.UUID) (sqlc.OtpChallenges, error)
	GetOTPChallengeForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.OtpChallenges, error)
	DeleteExpiredOTPChallenges(ctx context.Context, db sqlc.DBTX, expiresAt pgtype.Timestamptz) (int64, error)
}

type ChallengeRepository struct {
	queries ChallengeWriteQueries
	db      sqlc.DBTX
}

func NewChallengeRepository(queries ChallengeWriteQueries, db sqlc.DBTX) *ChallengeRepository {
	return &ChallengeRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ChallengeRepository) Create(ctx context.Context, tx sqlc.DBTX, c *otp.Challenge) error {
	if err := r.queries.CreateOTPChallenge(ctx, tx, converter.ChallengeToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create otp challenge", err)
	}
	return nil
}

func (r *ChallengeRepository) Update(ctx context.Context, tx sqlc.DBTX, c *otp.Challenge) error {
	rows, err := r.queries.UpdateOTPChallenge(ctx, tx, converter.ChallengeToUpdateParams(c))
	if err != nil {
		return infra.WrapRepoErr("failed to update otp challenge", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("otp challenge not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ChallengeRepository) DeleteUnverified(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteUnverifiedOTPChallenges(ctx, tx, bookingID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete unverified otp challenges", err)
	}
	return n, nil
}

func (r *ChallengeRepository) FindUnverifiedForUpdate(ctx context.Context, tx sqlc.DBTX, bookingID uuid.UUID) (*otp.Challenge, error) {
	row, err := r.queries.GetUnverifiedOTPChallengeForUpdate(ctx, tx, bookingID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("otp challenge not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unverified otp challenge", err)
	}
	return r.toDomain(row)
}

func (r *ChallengeRepository) FindByIDForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*otp.Challenge, error) {
	row, err := r.queries.GetOTPChallengeForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("otp challenge not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find otp challenge by ID", err)
	}
	return r.toDomain(row)
}

func (r *ChallengeRepository) DeleteExpired(ctx context.Context, tx sqlc.DBTX, before time.Time) (int64, error) {
	n, err := r.queries.DeleteExpiredOTPChallenges(ctx, tx, pgconv.TimeToPgtype(before))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired otp challenges", err)
	}
	return n, nil
}

func (r *ChallengeRepository) toDomain(row sqlc.OtpChallenges) (*otp.Challenge, error) {
	c, err := converter.ChallengeFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert otp challenge", err, infra.KindValidation)
	}
	return c, nil
}
