//go:build unit

package pgconv_test

import (
	"math"
	"testing"
	"time"

	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestDateConversion(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	in := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)

	pd := pgconv.DateToPgtype(in)
	assert.True(t, pd.Valid)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), pgconv.DateFromPgtype(pd))
	assert.True(t, pgconv.DateFromPgtype(pgtype.Date{}).IsZero())
}

func TestNullableConversions(t *testing.T) {
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(nil)))
	id := uuid.New()
	assert.Equal(t, &id, pgconv.UUIDPtrFromPgtype(pgconv.UUIDPtrToPgtype(&id)))

	assert.Nil(t, pgconv.TimePtrFromPgtype(pgconv.TimePtrToPgtype(nil)))
	var n int64 = 42
	assert.Equal(t, &n, pgconv.Int64PtrFromPgtype(pgconv.Int64PtrToPgtype(&n)))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(assert.AnError))
}

func TestIntToInt32(t *testing.T) {
	assert.Equal(t, int32(7), pgconv.IntToInt32(7))
	assert.Equal(t, int32(math.MaxInt32), pgconv.IntToInt32(math.MaxInt32+1))
	assert.Equal(t, int32(math.MinInt32), pgconv.IntToInt32(math.MinInt32-1))
}
