package momentum

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func valid(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d(v), Valid: true}
}

func TestChangeUnavailableForZeroOrNegativeReference(t *testing.T) {
	require.False(t, Change(d("100"), decimal.Zero).Valid)
	require.False(t, Change(d("100"), d("-5")).Valid)
}

func TestChangeComputesPercent(t *testing.T) {
	chg := Change(d("110"), d("100"))
	require.True(t, chg.Valid)
	require.True(t, chg.Decimal.Equal(d("10")), "expected 10, got %s", chg.Decimal)

	chg = Change(d("90"), d("100"))
	require.True(t, chg.Valid)
	require.True(t, chg.Decimal.Equal(d("-10")))
}

func TestScoreWeightsAndClipping(t *testing.T) {
	// 10 * 0.6 + 10 * 0.4 = 10
	score := Score(valid("10"), valid("10"))
	require.True(t, score.Equal(d("10")), "got %s", score)

	// negative contributions are clipped to zero
	require.True(t, Score(valid("-5"), valid("-3")).IsZero())
	require.True(t, Score(valid("-5"), valid("10")).Equal(d("4")))

	// unavailable counts as zero
	require.True(t, Score(decimal.NullDecimal{}, valid("10")).Equal(d("4")))
	require.True(t, Score(decimal.NullDecimal{}, decimal.NullDecimal{}).IsZero())
}

func TestScoreMonotonicInBothChanges(t *testing.T) {
	base := Score(valid("5"), valid("5"))
	require.True(t, Score(valid("6"), valid("5")).GreaterThan(base))
	require.True(t, Score(valid("5"), valid("6")).GreaterThan(base))
}

func flatCloses(n int, price string) []decimal.Decimal {
	closes := make([]decimal.Decimal, n)
	for i := range closes {
		closes[i] = d(price)
	}
	return closes
}

func TestOverheatedRequires31Samples(t *testing.T) {
	closes := flatCloses(30, "100")
	closes[0] = d("200")
	require.False(t, Overheated(closes))
}

func TestOverheatedThresholdBoundary(t *testing.T) {
	closes := flatCloses(31, "100")

	closes[0] = d("110") // exactly +10%
	require.True(t, Overheated(closes))

	closes[0] = d("109.99")
	require.False(t, Overheated(closes))
}

func TestEvaluateRejectsShortSeries(t *testing.T) {
	_, ok := Evaluate("KRW-ABC", flatCloses(59, "100"))
	require.False(t, ok)
}

func TestEvaluateDerivesCandidate(t *testing.T) {
	closes := flatCloses(60, "100")
	closes[0] = d("110")

	c, ok := Evaluate("KRW-XYZ", closes)
	require.True(t, ok)
	require.Equal(t, "KRW-XYZ", c.Market)
	require.True(t, c.Price.Equal(d("110")))
	require.True(t, c.Change15.Valid)
	require.True(t, c.Change15.Decimal.Equal(d("10")))
	require.True(t, c.Change60.Valid)
	require.True(t, c.Change60.Decimal.Equal(d("10")))
	require.True(t, c.Score.Equal(d("10")))
	require.True(t, c.Overheated)
}

func TestEvaluateFlatSeriesScoresZero(t *testing.T) {
	c, ok := Evaluate("KRW-ABC", flatCloses(60, "100"))
	require.True(t, ok)
	require.True(t, c.Score.IsZero())
	require.False(t, c.Overheated)
}

func TestEvaluateZeroReferenceIsUnavailable(t *testing.T) {
	closes := flatCloses(60, "100")
	closes[15] = decimal.Zero
	closes[59] = decimal.Zero

	c, ok := Evaluate("KRW-NEW", closes)
	require.True(t, ok)
	require.False(t, c.Change15.Valid)
	require.False(t, c.Change60.Valid)
	require.True(t, c.Score.IsZero())
}
