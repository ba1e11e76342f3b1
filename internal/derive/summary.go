package derive

import (
	"math"
	"time"

	"github.com/yieldland/minehub/internal/domain"
)

// Summary is the derived block served alongside the raw view: settlement
// countdown, warning flags and display strings. Food coverage is reported
// through FoodUnlimited rather than +Inf because the block is JSON-encoded.
type Summary struct {
	HoursUntilSettlement  float64  `json:"hours_until_settlement"`
	NextSettlementSeconds int64    `json:"next_settlement_seconds"`
	FoodRemainingHours    float64  `json:"food_remaining_hours"`
	FoodUnlimited         bool     `json:"food_unlimited"`
	LowFood               bool     `json:"low_food"`
	LowDurabilityTools    []string `json:"low_durability_tools,omitempty"`
	UsableTools           int      `json:"usable_tools"`
	TotalOutputDisplay    string   `json:"total_output_display"`
	TotalValueDisplay     string   `json:"total_value_display"`
	TotalResourcesDisplay string   `json:"total_resources_display"`
}

// BuildSummary derives the summary from the composed view at the given time.
func BuildSummary(view domain.AggregatedView, now time.Time) Summary {
	s := Summary{
		HoursUntilSettlement:  HoursUntilSettlement(now),
		NextSettlementSeconds: int64(UntilNextSettlement(now).Seconds()),
		TotalOutputDisplay:    FormatMagnitude(view.TotalOutput),
		TotalValueDisplay:     FormatMagnitude(view.TotalValue),
		TotalResourcesDisplay: FormatMagnitude(view.Resources.TotalAvailable()),
	}

	food := view.Resources.Get(domain.ResourceGrain).Available
	burnRate := float64(view.ActiveSessions) * FoodBurnPerSessionHour
	hours := FoodRemainingHours(food, burnRate)
	if math.IsInf(hours, 1) {
		s.FoodUnlimited = true
	} else {
		s.FoodRemainingHours = hours
		s.LowFood = IsLowFood(hours)
	}

	for _, tool := range view.Tools {
		if IsLowDurability(tool.Durability) {
			s.LowDurabilityTools = append(s.LowDurabilityTools, tool.ID)
		}
		if tool.IsUsable() {
			s.UsableTools++
		}
	}
	return s
}
