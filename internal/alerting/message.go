package alerting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"momentum-scout/internal/momentum"
)

const (
	messageTag   = "[entry-signal]"
	notAvailable = "N/A"

	reasonTop      = "momentum top candidate"
	reasonOverheat = "momentum top candidate (overheat warning)"
)

// RenderCandidate formats the single-line alert for a selected candidate:
// tag, market, integer price, 15m and 60m changes, then N/A placeholders for
// 24h-vs-7d, open interest, and funding, which are not derivable from the
// public REST feed, and the reason.
func RenderCandidate(c momentum.Candidate) string {
	fields := []string{
		formatPrice(c.Price),
		formatChange(c.Change15),
		formatChange(c.Change60),
		notAvailable,
		notAvailable,
		notAvailable,
		Reason(c.Overheated),
	}
	return fmt.Sprintf("%s %s / %s", messageTag, c.Market, strings.Join(fields, " / "))
}

// RenderNoCandidate is the fixed line sent when a scan yields nothing.
func RenderNoCandidate() string {
	fields := []string{
		notAvailable, notAvailable, notAvailable,
		notAvailable, notAvailable, notAvailable,
		"insufficient data",
	}
	return fmt.Sprintf("%s no candidate / %s", messageTag, strings.Join(fields, " / "))
}

// Reason annotates the alert; overheat warns but never filters.
func Reason(overheated bool) string {
	if overheated {
		return reasonOverheat
	}
	return reasonTop
}

func formatChange(chg decimal.NullDecimal) string {
	if !chg.Valid {
		return notAvailable
	}
	return chg.Decimal.StringFixed(2) + "%"
}

func formatPrice(price decimal.Decimal) string {
	if price.Sign() <= 0 {
		return notAvailable
	}
	return groupThousands(price.IntPart())
}

func groupThousands(v int64) string {
	digits := strconv.FormatInt(v, 10)

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
