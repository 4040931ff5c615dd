package pricing

import (
	"strings"
	"time"
)

type LocationTier int

const (
	TierStandard LocationTier = iota
	Tier1
	Tier2
)

const (
	FactorSeasonal       = "seasonal"
	FactorDemand         = "demand"
	FactorLocation       = "location"
	FactorLengthOfStay   = "length_of_stay"
	FactorLastMinute     = "last_minute"
	FactorDayOfWeek      = "day_of_week"
	FactorFeaturePremium = "feature_premium"
)

var (
	tier1Keywords = []string{
		"paris", "london", "new york", "tokyo", "sydney",
		"dubai", "singapore", "barcelona", "rome", "los angeles",
	}
	tier2Keywords = []string{
		"amsterdam", "berlin", "lisbon", "prague", "vienna",
		"miami", "san francisco", "bali", "cape town", "istanbul",
	}
)

// Factor is one multiplier that changed the price.
type Factor struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

type Context struct {
	CheckIn            time.Time
	LocationTier       LocationTier
	DemandFactor       float64
	LengthOfStayNights int
	IsLastMinute       bool
	Amenities          []string
	Category           string
	Rating             float64
}

// TierForLocation matches the location against the city keyword lists.
func TierForLocation(location string) LocationTier {
	l := strings.ToLower(location)
	for _, k := range tier1Keywords {
		if strings.Contains(l, k) {
			return Tier1
		}
	}
	for _, k := range tier2Keywords {
		if strings.Contains(l, k) {
			return Tier2
		}
	}
	return TierStandard
}

// Adjust applies the overlay multipliers in a fixed order and returns
// round(basePrice * product) with every multiplier that was not 1.
func Adjust(basePrice int64, ctx Context) (int64, []Factor) {
	steps := []Factor{
		{Name: FactorSeasonal, Multiplier: seasonalMultiplier(ctx.CheckIn.Month())},
		{Name: FactorDemand, Multiplier: demandMultiplier(ctx.DemandFactor)},
		{Name: FactorLocation, Multiplier: locationMultiplier(ctx.LocationTier)},
		{Name: FactorLengthOfStay, Multiplier: lengthOfStayMultiplier(ctx.LengthOfStayNights)},
		{Name: FactorLastMinute, Multiplier: lastMinuteMultiplier(ctx.IsLastMinute)},
		{Name: FactorDayOfWeek, Multiplier: dayOfWeekMultiplier(ctx.CheckIn.Weekday())},
		{Name: FactorFeaturePremium, Multiplier: featurePremium(ctx.Amenities, ctx.Category, ctx.Rating)},
	}

	product := 1.0
	applied := make([]Factor, 0, len(steps))
	for _, f := range steps {
		if f.Multiplier == 1.0 {
			continue
		}
		product *= f.Multiplier
		applied = append(applied, f)
	}

	return roundAmount(float64(basePrice) * product), applied
}

func seasonalMultiplier(m time.Month) float64 {
	switch m {
	case time.December, time.January, time.February, time.June, time.July, time.August:
		return 1.30
	case time.April, time.October:
		return 0.85
	default:
		return 1.0
	}
}

func demandMultiplier(demand float64) float64 {
	switch {
	case demand > 1.5:
		return 1.40
	case demand > 1.2:
		return 1.20
	case demand > 0.8:
		return 1.0
	default:
		return 0.90
	}
}

func locationMultiplier(tier LocationTier) float64 {
	switch tier {
	case Tier1:
		return 1.25
	case Tier2:
		return 1.15
	default:
		return 1.0
	}
}

func lengthOfStayMultiplier(nights int) float64 {
	switch {
	case nights >= 30:
		return 0.65
	case nights >= 14:
		return 0.75
	case nights >= 7:
		return 0.85
	default:
		return 1.0
	}
}

func lastMinuteMultiplier(lastMinute bool) float64 {
	if lastMinute {
		return 0.85
	}
	return 1.0
}

func dayOfWeekMultiplier(d time.Weekday) float64 {
	if d == time.Friday || d == time.Saturday {
		return 1.15
	}
	return 1.0
}

func featurePremium(amenities []string, category string, rating float64) float64 {
	premium := 0.0
	seen := make(map[string]bool, len(amenities))
	for _, a := range amenities {
		key := strings.ToLower(strings.TrimSpace(a))
		if seen[key] {
			continue
		}
		seen[key] = true
		switch key {
		case "pool":
			premium += 0.05
		case "ocean view":
			premium += 0.10
		case "hot tub":
			premium += 0.05
		}
	}
	switch strings.ToLower(category) {
	case "luxury", "villa":
		premium += 0.15
	}
	if rating >= 4.8 {
		premium += 0.08
	}
	return 1 + premium
}
