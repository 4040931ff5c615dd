//go:build unit

package otp_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"rental-booking/internal/domain/otp"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2030, time.May, 1, 12, 0, 0, 0, time.UTC)

func newHasher(t *testing.T) *otp.CodeHasher {
	t.Helper()
	h, err := otp.NewCodeHasher("unit-test-secret")
	require.NoError(t, err)
	return h
}

func issue(t *testing.T, h *otp.CodeHasher, code string) *otp.Challenge {
	t.Helper()
	c, err := otp.Issue(uuid.New(), uuid.New(), otp.PurposeBookingConfirmation, code, h, otp.DefaultPolicy(), issuedAt)
	require.NoError(t, err)
	return c
}

func TestGenerateCode(t *testing.T) {
	for range 50 {
		code, err := otp.GenerateCode(nil)
		require.NoError(t, err)
		assert.True(t, otp.IsWellFormedCode(code), code)
	}

	t.Run("keeps leading zeros", func(t *testing.T) {
		code, err := otp.GenerateCode(bytes.NewReader(make([]byte, 64)))
		require.NoError(t, err)
		assert.Equal(t, "000000", code)
	})

	t.Run("surfaces entropy failures", func(t *testing.T) {
		_, err := otp.GenerateCode(bytes.NewReader(nil))
		assert.ErrorIs(t, err, io.EOF)
	})
}

func TestCodeHasher(t *testing.T) {
	h := newHasher(t)
	id := uuid.New()

	hash := h.Hash(id, "123456")
	assert.NotContains(t, hash, "123456")
	assert.True(t, h.Matches(id, "123456", hash))
	assert.False(t, h.Matches(id, "123457", hash))
	assert.False(t, h.Matches(uuid.New(), "123456", hash), "hash is bound to the challenge id")

	other, err := otp.NewCodeHasher("another-secret")
	require.NoError(t, err)
	assert.False(t, other.Matches(id, "123456", hash))

	_, err = otp.NewCodeHasher("")
	assert.ErrorIs(t, err, otp.ErrEmptySecret)
}

func TestIssue(t *testing.T) {
	h := newHasher(t)
	c := issue(t, h, "123456")

	assert.Equal(t, issuedAt.Add(10*time.Minute), c.ExpiresAt())
	assert.Equal(t, 0, c.Attempts())
	assert.Equal(t, 3, c.AttemptsLeft())
	assert.False(t, c.Verified())

	_, err := otp.Issue(uuid.New(), uuid.New(), "login", "123456", h, otp.DefaultPolicy(), issuedAt)
	assert.ErrorIs(t, err, otp.ErrInvalidPurpose)

	_, err = otp.Issue(uuid.New(), uuid.New(), otp.PurposeBookingModification, "12a456", h, otp.DefaultPolicy(), issuedAt)
	assert.ErrorIs(t, err, otp.ErrInvalidCodeFormat)
}

func TestVerify(t *testing.T) {
	h := newHasher(t)
	now := issuedAt.Add(time.Minute)

	t.Run("correct code verifies", func(t *testing.T) {
		c := issue(t, h, "123456")
		res, err := c.Verify("123456", h, now)
		require.NoError(t, err)
		assert.True(t, res.Verified)
		assert.Equal(t, 2, res.AttemptsLeft)
		assert.True(t, c.Verified())
		assert.Equal(t, now, *c.VerifiedAt())

		_, err = c.Verify("123456", h, now)
		assert.ErrorIs(t, err, otp.ErrAlreadyVerified)
	})

	t.Run("wrong code consumes an attempt", func(t *testing.T) {
		c := issue(t, h, "123456")
		res, err := c.Verify("000000", h, now)
		require.NoError(t, err)
		assert.False(t, res.Verified)
		assert.Equal(t, 2, res.AttemptsLeft)
		assert.Equal(t, 1, c.Attempts())
	})

	t.Run("fourth call fails even with the correct code", func(t *testing.T) {
		c := issue(t, h, "123456")
		for i := 0; i < 3; i++ {
			res, err := c.Verify("999999", h, now)
			require.NoError(t, err)
			assert.Equal(t, 2-i, res.AttemptsLeft)
		}

		_, err := c.Verify("123456", h, now)
		assert.ErrorIs(t, err, otp.ErrMaxAttemptsExceeded)
		assert.True(t, errs.Is(err, errs.ErrSecurity))
		assert.Equal(t, 3, c.Attempts())
		assert.False(t, c.Verified())
	})

	t.Run("expired challenge", func(t *testing.T) {
		c := issue(t, h, "123456")
		_, err := c.Verify("123456", h, c.ExpiresAt().Add(time.Second))
		assert.ErrorIs(t, err, otp.ErrChallengeExpired)
		assert.Equal(t, 0, c.Attempts(), "expired calls do not consume attempts")

		res, err := issue(t, h, "123456").Verify("123456", h, c.ExpiresAt())
		require.NoError(t, err, "expiry instant itself is still valid")
		assert.True(t, res.Verified)
	})

	t.Run("attempt cap is checked before expiry", func(t *testing.T) {
		c := otp.ReconstructChallenge(uuid.New(), uuid.New(), uuid.New(), "", otp.PurposeBookingConfirmation,
			false, 3, 3, issuedAt, issuedAt, nil, nil)
		_, err := c.Verify("123456", h, issuedAt.Add(time.Hour))
		assert.ErrorIs(t, err, otp.ErrMaxAttemptsExceeded)
	})
}

func TestConsume(t *testing.T) {
	h := newHasher(t)
	bookingID := uuid.New()
	newVerified := func() *otp.Challenge {
		c, err := otp.Issue(bookingID, uuid.New(), otp.PurposeBookingModification, "123456", h, otp.DefaultPolicy(), issuedAt)
		require.NoError(t, err)
		_, err = c.Verify("123456", h, issuedAt)
		require.NoError(t, err)
		return c
	}

	t.Run("single use", func(t *testing.T) {
		c := newVerified()
		require.NoError(t, c.Consume(bookingID, otp.PurposeBookingModification, issuedAt))
		assert.NotNil(t, c.ConsumedAt())
		assert.ErrorIs(t, c.Consume(bookingID, otp.PurposeBookingModification, issuedAt), otp.ErrInvalidProof)
	})

	t.Run("must match booking and purpose", func(t *testing.T) {
		c := newVerified()
		assert.ErrorIs(t, c.Consume(uuid.New(), otp.PurposeBookingModification, issuedAt), otp.ErrInvalidProof)
		assert.ErrorIs(t, c.Consume(bookingID, otp.PurposeBookingConfirmation, issuedAt), otp.ErrInvalidProof)
	})

	t.Run("unverified or expired proof rejected", func(t *testing.T) {
		c, err := otp.Issue(bookingID, uuid.New(), otp.PurposeBookingModification, "123456", h, otp.DefaultPolicy(), issuedAt)
		require.NoError(t, err)
		assert.ErrorIs(t, c.Consume(bookingID, otp.PurposeBookingModification, issuedAt), otp.ErrInvalidProof)

		v := newVerified()
		err = v.Consume(bookingID, otp.PurposeBookingModification, v.ExpiresAt().Add(time.Second))
		assert.ErrorIs(t, err, otp.ErrInvalidProof)
		assert.True(t, errs.Is(err, errs.ErrPolicyViolation))
	})
}
