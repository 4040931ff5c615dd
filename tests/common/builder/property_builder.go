//go:build unit || e2e

package builder

import (
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PropertyBuilder struct {
	snapshot shared.PropertySnapshot
}

// NewPropertyBuilder prices at 1000/night with no location, demand or feature premium.
func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{snapshot: shared.PropertySnapshot{
		ID:          uuid.New(),
		HostID:      uuid.New(),
		Title:       "Quiet flat",
		Location:    "Springfield",
		Category:    "apartment",
		Rating:      4.2,
		BasePrice:   1000,
		CleaningFee: 100,
		Currency:    "USD",
		MaxGuests:   4,
	}}
}

func (b *PropertyBuilder) With(mutate func(*shared.PropertySnapshot)) *PropertyBuilder {
	mutate(&b.snapshot)
	return b
}

func (b *PropertyBuilder) Build() shared.PropertySnapshot {
	s := b.snapshot
	s.Amenities = append([]string(nil), b.snapshot.Amenities...)
	return s
}
