package derive

// Warning thresholds. Tests assert exact boundary behavior against these,
// so they must stay named constants rather than inline literals.
const (
	// FoodWarningHours triggers the low-food warning when remaining food
	// covers strictly less than this many hours. Exactly 2.0h does not warn.
	FoodWarningHours = 2.0

	// ToolDurabilityWarning triggers the low-durability warning when a
	// tool's remaining durability is strictly below this absolute value.
	ToolDurabilityWarning = 100.0

	// ToolDurabilityMax is the durability a freshly synthesized tool carries.
	ToolDurabilityMax = 1500.0

	// FoodBurnPerSessionHour is the estimated grain consumed per active
	// session per hour, used only for the food-coverage estimate shown to the
	// user. The authoritative burn happens server-side.
	FoodBurnPerSessionHour = 1.0
)

// Magnitude formatting breakpoints
const (
	MagnitudeThousand = 1_000
	MagnitudeMillion  = 1_000_000
	MagnitudeBillion  = 1_000_000_000
)
