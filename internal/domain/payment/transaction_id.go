package payment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"rental-booking/internal/pkg/errs"
)

const transactionIDPrefix = "TXN"

// NewTransactionID builds an id of the form TXN-20300501120000-1a2b3c4d.
// It is called explicitly before the completing write.
func NewTransactionID(now time.Time, entropy io.Reader) (string, error) {
	if entropy == nil {
		entropy = rand.Reader
	}
	var b [4]byte
	if _, err := io.ReadFull(entropy, b[:]); err != nil {
		return "", errs.Wrap(err, "read transaction id entropy")
	}
	return fmt.Sprintf("%s-%s-%s", transactionIDPrefix, now.UTC().Format("20060102150405"), hex.EncodeToString(b[:])), nil
}
