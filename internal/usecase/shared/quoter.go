package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/pkg/config"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// Quoter combines the dynamic pricing overlay with the fee policy.
type Quoter struct {
	calc             *pricing.Calculator
	lastMinuteWindow time.Duration
	demandWindowDays int
}

func NewQuoter(calc *pricing.Calculator, cfg config.Config) *Quoter {
	window := cfg.Pricing.DemandWindowDays
	if window <= 0 {
		window = 30
	}
	return &Quoter{
		calc:             calc,
		lastMinuteWindow: cfg.Pricing.LastMinuteWindow,
		demandWindowDays: window,
	}
}

// Quote prices stay at prop. exclude names a booking being repriced so its own
// nights do not count toward demand.
func (q *Quoter) Quote(ctx context.Context, reads CommandReads, prop *PropertySnapshot, stay booking.StayRange, exclude *uuid.UUID, now time.Time) (pricing.Quote, error) {
	demand, err := q.demandFactor(ctx, reads, prop, stay, exclude)
	if err != nil {
		return pricing.Quote{}, err
	}

	nightly, factors := pricing.Adjust(prop.BasePrice, pricing.Context{
		CheckIn:            stay.CheckIn(),
		LocationTier:       pricing.TierForLocation(prop.Location),
		DemandFactor:       demand,
		LengthOfStayNights: stay.Nights(),
		IsLastMinute:       stay.CheckIn().Sub(now) < q.lastMinuteWindow,
		Amenities:          prop.Amenities,
		Category:           prop.Category,
		Rating:             prop.Rating,
	})

	quote, err := q.calc.Quote(nightly, stay.Nights(), prop.CleaningFee)
	if err != nil {
		return pricing.Quote{}, err
	}
	if prop.Currency != "" {
		quote.Currency = prop.Currency
	}
	quote.AppliedFactors = factors
	return quote, nil
}

// demandFactor is 1 + occupancy of the nights following check-in.
func (q *Quoter) demandFactor(ctx context.Context, reads CommandReads, prop *PropertySnapshot, stay booking.StayRange, exclude *uuid.UUID) (float64, error) {
	from := stay.CheckIn()
	to := from.Add(time.Duration(q.demandWindowDays) * day)
	booked, err := reads.BookedNights(ctx, prop.ID, from, to, exclude)
	if err != nil {
		return 0, err
	}
	occupancy := float64(booked) / float64(q.demandWindowDays)
	if occupancy > 1 {
		occupancy = 1
	}
	return 1 + occupancy, nil
}
