package pricing

import (
	"math"

	"rental-booking/internal/pkg/errs"
)

var (
	ErrInvalidNights   = errs.Mark(errs.New("nights must be at least one"), errs.ErrValidation)
	ErrNegativeAmount  = errs.Mark(errs.New("price components cannot be negative"), errs.ErrValidation)
	ErrInvalidFeeRate  = errs.Mark(errs.New("fee rates must be between 0 and 1"), errs.ErrValidation)
	ErrEmptyPolicyName = errs.Mark(errs.New("fee policy requires a name"), errs.ErrValidation)
)

const DefaultServiceFeeRate = 0.10

// FeePolicy is the single named fee schedule applied to every quote,
// whether it is produced for a booking or for a payment charge.
type FeePolicy struct {
	Name           string
	ServiceFeeRate float64
	TaxRate        float64
	Currency       string
}

func NewFeePolicy(name string, serviceFeeRate, taxRate float64, currency string) (FeePolicy, error) {
	if name == "" {
		return FeePolicy{}, ErrEmptyPolicyName
	}
	if serviceFeeRate < 0 || serviceFeeRate > 1 || taxRate < 0 || taxRate > 1 {
		return FeePolicy{}, ErrInvalidFeeRate
	}
	return FeePolicy{
		Name:           name,
		ServiceFeeRate: serviceFeeRate,
		TaxRate:        taxRate,
		Currency:       currency,
	}, nil
}

// Quote is a fresh price breakdown. Amounts are in minor currency units.
type Quote struct {
	PolicyName     string
	Currency       string
	BasePrice      int64
	Nights         int
	Subtotal       int64
	ServiceFee     int64
	CleaningFee    int64
	Taxes          int64
	Total          int64
	AppliedFactors []Factor
}

type Calculator struct {
	policy FeePolicy
}

func NewCalculator(policy FeePolicy) *Calculator {
	return &Calculator{policy: policy}
}

func (c *Calculator) Policy() FeePolicy {
	return c.policy
}

// Quote computes subtotal = basePrice*nights, serviceFee = round(subtotal*rate),
// taxes = round(subtotal*taxRate), total = subtotal+serviceFee+cleaningFee+taxes.
func (c *Calculator) Quote(basePrice int64, nights int, cleaningFee int64) (Quote, error) {
	if nights < 1 {
		return Quote{}, ErrInvalidNights
	}
	if basePrice < 0 || cleaningFee < 0 {
		return Quote{}, ErrNegativeAmount
	}

	subtotal := basePrice * int64(nights)
	serviceFee := roundAmount(float64(subtotal) * c.policy.ServiceFeeRate)
	taxes := roundAmount(float64(subtotal) * c.policy.TaxRate)

	return Quote{
		PolicyName:  c.policy.Name,
		Currency:    c.policy.Currency,
		BasePrice:   basePrice,
		Nights:      nights,
		Subtotal:    subtotal,
		ServiceFee:  serviceFee,
		CleaningFee: cleaningFee,
		Taxes:       taxes,
		Total:       subtotal + serviceFee + cleaningFee + taxes,
	}, nil
}

func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}
