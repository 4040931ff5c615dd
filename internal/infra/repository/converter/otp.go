package converter

import (
	"rental-booking/internal/domain/otp"
	sqlc "rental-booking/internal/infra/sqlc/generated"
	"rental-booking/internal/pkg/pgconv"
)

func ChallengeToCreateParams(c *otp.Challenge) sqlc.CreateOTPChallengeParams {
	return sqlc.CreateOTPChallengeParams{
		ID:          c.ID(),
		BookingID:   c.BookingID(),
		UserID:      c.UserID(),
		CodeHash:    c.CodeHash(),
		Purpose:     c.Purpose().String(),
		Verified:    c.Verified(),
		Attempts:    pgconv.IntToInt32(c.Attempts()),
		MaxAttempts: pgconv.IntToInt32(c.MaxAttempts()),
		ExpiresAt:   pgconv.TimeToPgtype(c.ExpiresAt()),
		CreatedAt:   pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func ChallengeToUpdateParams(c *otp.Challenge) sqlc.UpdateOTPChallengeParams {
	return sqlc.UpdateOTPChallengeParams{
		ID:         c.ID(),
		Verified:   c.Verified(),
		Attempts:   pgconv.IntToInt32(c.Attempts()),
		VerifiedAt: pgconv.TimePtrToPgtype(c.VerifiedAt()),
		ConsumedAt: pgconv.TimePtrToPgtype(c.ConsumedAt()),
	}
}

func ChallengeFromInfra(row sqlc.OtpChallenges) (*otp.Challenge, error) {
	purpose, err := otp.NewPurpose(row.Purpose)
	if err != nil {
		return nil, err
	}
	return otp.ReconstructChallenge(
		row.ID, row.BookingID, row.UserID,
		row.CodeHash,
		purpose,
		row.Verified,
		int(row.Attempts), int(row.MaxAttempts),
		pgconv.TimeFromPgtype(row.ExpiresAt), pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.VerifiedAt), pgconv.TimePtrFromPgtype(row.ConsumedAt),
	), nil
}
