//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by pools, connections and transactions.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PropertyFixture struct {
	HostID      uuid.UUID
	Title       string
	Location    string
	Category    string
	Amenities   []string
	BasePrice   int64
	CleaningFee int64
	MaxGuests   int
}

// DefaultPropertyFixture prices at 1000/night with a 100 cleaning fee.
func DefaultPropertyFixture(hostID uuid.UUID) PropertyFixture {
	return PropertyFixture{
		HostID:      hostID,
		Title:       "Quiet flat",
		Location:    "Springfield",
		Category:    "apartment",
		BasePrice:   1000,
		CleaningFee: 100,
		MaxGuests:   4,
	}
}

func CreateTestProperty(t *testing.T, db DBLike, f PropertyFixture) uuid.UUID {
	t.Helper()

	amenities := f.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	propertyID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO properties (id, host_id, title, location, category, amenities, base_price, cleaning_fee, currency, max_guests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'USD', $9)`,
		propertyID, f.HostID, f.Title, f.Location, f.Category, amenities, f.BasePrice, f.CleaningFee, f.MaxGuests)
	require.NoError(t, err)

	return propertyID
}

// SeedHostID owns the seeded reference property.
var SeedHostID = uuid.MustParse("00000000-0000-0000-0000-00000000aaaa")

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO properties (id, host_id, title, location, category, base_price, cleaning_fee, currency, max_guests)
		VALUES (gen_random_uuid(), $1, 'Reference cabin', 'Lakeside', 'cabin', 1500, 150, 'USD', 6)
	`, SeedHostID)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
