package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const CodeLength = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateCode draws a uniform 6-digit code from a cryptographic source.
// A nil reader means crypto/rand.
func GenerateCode(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, codeSpace)
	if err != nil {
		return "", errs.Wrap(err, "generate otp code")
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

// CodeHasher stores codes as keyed BLAKE2b digests bound to the challenge id.
type CodeHasher struct {
	key []byte
}

func NewCodeHasher(secret string) (*CodeHasher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	key := []byte(secret)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	return &CodeHasher{key: key}, nil
}

func (h *CodeHasher) Hash(challengeID uuid.UUID, code string) string {
	// New256 only fails for keys above 64 bytes, which NewCodeHasher rules out
	mac, _ := blake2b.New256(h.key)
	mac.Write(challengeID[:])
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *CodeHasher) Matches(challengeID uuid.UUID, code, hash string) bool {
	expected := h.Hash(challengeID, code)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}
