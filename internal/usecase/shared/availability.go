package shared

import (
	"context"

	"rental-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type AvailabilityChecker struct{}

func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

// IsAvailable reports whether no pending or confirmed booking of the property
// overlaps the half-open stay. Pass tx.Reads() to check under the property lock.
// An overlap is a false result, not an error.
func (c *AvailabilityChecker) IsAvailable(
	ctx context.Context,
	reads CommandReads,
	propertyID uuid.UUID,
	stay booking.StayRange,
	exclude *uuid.UUID,
) (bool, error) {
	n, err := reads.CountOverlapping(ctx, propertyID, stay.CheckIn(), stay.CheckOut(), exclude)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
