package momentum

import (
	"github.com/shopspring/decimal"
)

// MinSamples is the minimum number of newest-first closes required to rank a
// market. Anything shorter is excluded from selection, not an error.
const MinSamples = 60

const (
	shortOffset    = 15
	longOffset     = 59
	overheatOffset = 30
)

var (
	shortWeight       = decimal.NewFromFloat(0.6)
	longWeight        = decimal.NewFromFloat(0.4)
	overheatThreshold = decimal.NewFromInt(10)
	hundred           = decimal.NewFromInt(100)
)

// Candidate is the derived momentum record for a single market.
type Candidate struct {
	Market     string
	Price      decimal.Decimal
	Change15   decimal.NullDecimal
	Change60   decimal.NullDecimal
	Score      decimal.Decimal
	Overheated bool
}

// Change computes percentage change between a current and reference price.
// A zero, negative, or missing reference yields an invalid NullDecimal
// instead of dividing.
func Change(current, reference decimal.Decimal) decimal.NullDecimal {
	if reference.Sign() <= 0 {
		return decimal.NullDecimal{}
	}
	pct := current.Sub(reference).Div(reference).Mul(hundred)
	return decimal.NullDecimal{Decimal: pct, Valid: true}
}

// Score combines the short and long changes with 0.6/0.4 weights. Negative or
// unavailable changes contribute zero, so only upward momentum scores.
func Score(chg15, chg60 decimal.NullDecimal) decimal.Decimal {
	return clipPositive(chg15).Mul(shortWeight).Add(clipPositive(chg60).Mul(longWeight))
}

func clipPositive(chg decimal.NullDecimal) decimal.Decimal {
	if !chg.Valid || chg.Decimal.Sign() < 0 {
		return decimal.Zero
	}
	return chg.Decimal
}

// Overheated reports whether the 30-sample-back change is at least 10%.
// Fewer than 31 samples is simply not overheated.
func Overheated(closes []decimal.Decimal) bool {
	if len(closes) <= overheatOffset {
		return false
	}
	chg := Change(closes[0], closes[overheatOffset])
	return chg.Valid && chg.Decimal.GreaterThanOrEqual(overheatThreshold)
}

// Evaluate derives a candidate from newest-first closes. Returns false when
// fewer than MinSamples closes are available.
//
// The "60-minute" change is measured against the sample 59 indices back, not
// a full 60. The upstream feed has always been consumed that way and fixing
// it would shift every historical score, so the offset stays.
func Evaluate(market string, closes []decimal.Decimal) (Candidate, bool) {
	if len(closes) < MinSamples {
		return Candidate{}, false
	}

	chg15 := Change(closes[0], closes[shortOffset])
	chg60 := Change(closes[0], closes[longOffset])

	return Candidate{
		Market:     market,
		Price:      closes[0],
		Change15:   chg15,
		Change60:   chg60,
		Score:      Score(chg15, chg60),
		Overheated: Overheated(closes),
	}, true
}
