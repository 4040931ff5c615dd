package otp

import (
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultTTL         = 10 * time.Minute
	DefaultMaxAttempts = 3
)

var (
	ErrInvalidPurpose      = errs.Mark(errs.New("invalid otp purpose"), errs.ErrValidation)
	ErrInvalidCodeFormat   = errs.Mark(errs.New("otp code must be 6 digits"), errs.ErrValidation)
	ErrEmptySecret         = errs.New("otp hashing secret is empty")
	ErrChallengeNotFound   = errs.Mark(errs.New("no active otp challenge"), errs.ErrNotFound)
	ErrChallengeExpired    = errs.Mark(errs.New("otp challenge expired"), errs.ErrSecurity)
	ErrMaxAttemptsExceeded = errs.Mark(errs.New("otp attempts exhausted"), errs.ErrSecurity)
	ErrAlreadyVerified     = errs.Mark(errs.New("otp challenge already verified"), errs.ErrConflict)
	ErrChallengeNotOwned   = errs.Mark(errs.New("otp challenge belongs to another user"), errs.ErrUnauthorized)
	ErrInvalidProof        = errs.Mark(errs.New("a verified, unused otp challenge for this booking is required"), errs.ErrPolicyViolation)
	ErrResendTooSoon       = errs.Mark(errs.New("otp resend requested too soon"), errs.ErrConflict)
)

type Policy struct {
	TTL         time.Duration
	MaxAttempts int
}

func DefaultPolicy() Policy {
	return Policy{TTL: DefaultTTL, MaxAttempts: DefaultMaxAttempts}
}

type Challenge struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	userID      uuid.UUID
	codeHash    string
	purpose     Purpose
	verified    bool
	attempts    int
	maxAttempts int
	expiresAt   time.Time
	createdAt   time.Time
	verifiedAt  *time.Time
	consumedAt  *time.Time
}

// Issue creates a challenge for an already generated code. Only the hash is kept.
func Issue(bookingID, userID uuid.UUID, purpose Purpose, code string, hasher *CodeHasher, policy Policy, now time.Time) (*Challenge, error) {
	if !purpose.IsValid() {
		return nil, ErrInvalidPurpose
	}
	if !IsWellFormedCode(code) {
		return nil, ErrInvalidCodeFormat
	}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	if policy.TTL <= 0 {
		policy.TTL = DefaultTTL
	}

	id := uuid.New()
	issuedAt := now.UTC()
	return &Challenge{
		id:          id,
		bookingID:   bookingID,
		userID:      userID,
		codeHash:    hasher.Hash(id, code),
		purpose:     purpose,
		maxAttempts: policy.MaxAttempts,
		expiresAt:   issuedAt.Add(policy.TTL),
		createdAt:   issuedAt,
	}, nil
}

func ReconstructChallenge(
	id, bookingID, userID uuid.UUID,
	codeHash string,
	purpose Purpose,
	verified bool,
	attempts, maxAttempts int,
	expiresAt, createdAt time.Time,
	verifiedAt, consumedAt *time.Time,
) *Challenge {
	return &Challenge{
		id:          id,
		bookingID:   bookingID,
		userID:      userID,
		codeHash:    codeHash,
		purpose:     purpose,
		verified:    verified,
		attempts:    attempts,
		maxAttempts: maxAttempts,
		expiresAt:   expiresAt,
		createdAt:   createdAt,
		verifiedAt:  verifiedAt,
		consumedAt:  consumedAt,
	}
}

// Verify checks the attempt cap before expiry, and both before comparing.
// Every call that reaches the comparison consumes one attempt, so the
// caller must persist the challenge whether or not the code matched.
func (c *Challenge) Verify(code string, hasher *CodeHasher, now time.Time) (VerifyResult, error) {
	if c.verified {
		return VerifyResult{}, ErrAlreadyVerified
	}
	if c.attempts >= c.maxAttempts {
		return VerifyResult{AttemptsLeft: 0}, ErrMaxAttemptsExceeded
	}
	if now.After(c.expiresAt) {
		return VerifyResult{AttemptsLeft: c.AttemptsLeft()}, ErrChallengeExpired
	}

	c.attempts++
	if !hasher.Matches(c.id, code, c.codeHash) {
		return VerifyResult{Verified: false, AttemptsLeft: c.AttemptsLeft()}, nil
	}

	t := now.UTC()
	c.verified = true
	c.verifiedAt = &t
	return VerifyResult{Verified: true, AttemptsLeft: c.AttemptsLeft()}, nil
}

// Consume spends a verified challenge as proof for a single state change.
func (c *Challenge) Consume(bookingID uuid.UUID, purpose Purpose, now time.Time) error {
	if c.bookingID != bookingID || c.purpose != purpose {
		return ErrInvalidProof
	}
	if !c.verified || c.consumedAt != nil {
		return ErrInvalidProof
	}
	if now.After(c.expiresAt) {
		return ErrInvalidProof
	}
	t := now.UTC()
	c.consumedAt = &t
	return nil
}

func (c *Challenge) AttemptsLeft() int {
	left := c.maxAttempts - c.attempts
	if left < 0 {
		return 0
	}
	return left
}

func (c *Challenge) IsExpired(now time.Time) bool {
	return now.After(c.expiresAt)
}

func IsWellFormedCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (c *Challenge) ID() uuid.UUID          { return c.id }
func (c *Challenge) BookingID() uuid.UUID   { return c.bookingID }
func (c *Challenge) UserID() uuid.UUID      { return c.userID }
func (c *Challenge) CodeHash() string       { return c.codeHash }
func (c *Challenge) Purpose() Purpose       { return c.purpose }
func (c *Challenge) Verified() bool         { return c.verified }
func (c *Challenge) Attempts() int          { return c.attempts }
func (c *Challenge) MaxAttempts() int       { return c.maxAttempts }
func (c *Challenge) ExpiresAt() time.Time   { return c.expiresAt }
func (c *Challenge) CreatedAt() time.Time   { return c.createdAt }
func (c *Challenge) VerifiedAt() *time.Time { return c.verifiedAt }
func (c *Challenge) ConsumedAt() *time.Time { return c.consumedAt }
