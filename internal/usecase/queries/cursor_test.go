//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor_RoundTrip(t *testing.T) {
	createdAt := time.Date(2030, 5, 1, 12, 30, 15, 123456789, time.UTC)
	id := uuid.New()

	gotTime, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(createdAt, id))

	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	// nanoseconds below a microsecond are dropped
	assert.True(t, createdAt.Truncate(time.Microsecond).Equal(gotTime))
}

func TestDecodeAfterCursor_Invalid(t *testing.T) {
	encode := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "garbage!"},
		{name: "unknown version", cursor: encode("v2:1-" + uuid.NewString())},
		{name: "missing separator", cursor: encode("v1:12345")},
		{name: "bad timestamp", cursor: encode("v1:abc-" + uuid.NewString())},
		{name: "bad id", cursor: encode("v1:12345-not-a-uuid")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
