//go:build unit || e2e

package testutil

import (
	"fmt"
	"testing"

	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

// AssertErrorIs is assert.ErrorIs with errs.Is semantics, so marks attached
// by the usecase layer are followed.
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...any) bool {
	t.Helper()
	if errs.Is(err, target) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("error chain does not match target\nexpected: %v\nactual:   %v", target, err), msgAndArgs...)
}

func RequireErrorIs(t *testing.T, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !AssertErrorIs(t, err, target, msgAndArgs...) {
		t.FailNow()
	}
}
