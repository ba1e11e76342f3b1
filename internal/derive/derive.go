// Package derive computes UI-facing aggregates from the composed view model.
// Every function is deterministic given (data, now): wall-clock time is
// always an explicit parameter, never read inside, so callers can test exact
// boundaries without mocking global clocks.
package derive

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// PercentOfLimit returns used/limit as a 0..100 percentage, clamped.
// A non-positive limit reads as 0% rather than dividing by zero.
func PercentOfLimit(used, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	pct := used / limit * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// UntilNextSettlement returns the duration from now to the next top-of-hour
// boundary in now's location. Settlement runs hourly server-side; exactly on
// the boundary the next settlement is a full hour away. The boundary is
// rebuilt from the wall-clock fields rather than truncated, so fractional
// zone offsets still land on the local top of the hour.
func UntilNextSettlement(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d, now.Hour(), 0, 0, 0, now.Location()).Add(time.Hour)
	return next.Sub(now)
}

// HoursUntilSettlement is UntilNextSettlement expressed in fractional hours.
func HoursUntilSettlement(now time.Time) float64 {
	return UntilNextSettlement(now).Hours()
}

// FoodRemainingHours returns how many hours the available food covers at the
// given hourly consumption rate. A non-positive rate means nothing is
// consuming food, reported as +Inf so it never trips the warning.
func FoodRemainingHours(available, ratePerHour float64) float64 {
	if ratePerHour <= 0 {
		return math.Inf(1)
	}
	if available <= 0 {
		return 0
	}
	return available / ratePerHour
}

// IsLowFood reports whether remaining food coverage warrants a warning.
// The documented boundary is strictly "<": exactly FoodWarningHours is fine.
func IsLowFood(hoursRemaining float64) bool {
	return hoursRemaining < FoodWarningHours
}

// IsLowDurability reports whether a tool's remaining durability warrants a
// warning. Strictly "<": exactly ToolDurabilityWarning is fine.
func IsLowDurability(durability float64) bool {
	return durability < ToolDurabilityWarning
}

// FormatMagnitude renders large values in the product's compact form:
// "1.2K", "3.4M", "5.6B". Values below 1000 render with comma grouping.
func FormatMagnitude(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= MagnitudeBillion:
		return trimTrailingZero(v/MagnitudeBillion) + "B"
	case abs >= MagnitudeMillion:
		return trimTrailingZero(v/MagnitudeMillion) + "M"
	case abs >= MagnitudeThousand:
		return trimTrailingZero(v/MagnitudeThousand) + "K"
	default:
		return humanize.CommafWithDigits(v, 1)
	}
}

// trimTrailingZero formats with one decimal, dropping ".0".
func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}
