package alerting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"momentum-scout/internal/momentum"
)

func valid(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(v), Valid: true}
}

func TestRenderCandidateLine(t *testing.T) {
	c := momentum.Candidate{
		Market:   "KRW-XYZ",
		Price:    decimal.RequireFromString("1234567.8"),
		Change15: valid("10"),
		Change60: valid("3.456"),
	}

	line := RenderCandidate(c)
	require.Equal(t, "[entry-signal] KRW-XYZ / 1,234,567 / 10.00% / 3.46% / N/A / N/A / N/A / momentum top candidate", line)
}

func TestRenderCandidateOverheatReason(t *testing.T) {
	c := momentum.Candidate{
		Market:     "KRW-XYZ",
		Price:      decimal.NewFromInt(100),
		Change15:   valid("12"),
		Change60:   valid("11"),
		Overheated: true,
	}

	line := RenderCandidate(c)
	require.Contains(t, line, "momentum top candidate (overheat warning)")
}

func TestRenderCandidateUnavailableFields(t *testing.T) {
	c := momentum.Candidate{Market: "KRW-NEW"}

	line := RenderCandidate(c)
	require.Equal(t, "[entry-signal] KRW-NEW / N/A / N/A / N/A / N/A / N/A / N/A / momentum top candidate", line)
}

func TestRenderNoCandidateLine(t *testing.T) {
	require.Equal(t, "[entry-signal] no candidate / N/A / N/A / N/A / N/A / N/A / N/A / insufficient data", RenderNoCandidate())
}

func TestGroupThousands(t *testing.T) {
	require.Equal(t, "7", groupThousands(7))
	require.Equal(t, "999", groupThousands(999))
	require.Equal(t, "1,000", groupThousands(1000))
	require.Equal(t, "68,250,000", groupThousands(68250000))
}
