package scheduler

// BudgetScaleFactor scales the per-theme budget used by the compatibility
// filter. The production value of 1450 predates the KRW-to-USD migration of
// the catalog prices; keep it until product confirms the intended scale.
const BudgetScaleFactor = 1450.0

// Config carries the tunable tables and constants of the scheduling engine.
// Everything here has a default; tests and callers may override any field.
type Config struct {
	// BudgetScale multiplies the raw budget before the per-theme split in
	// the compatibility filter. See BudgetScaleFactor.
	BudgetScale float64

	// MaxPerTheme caps how many ranked candidates survive per theme.
	MaxPerTheme int

	// CommonHours is the set of typical visiting times used by the coarse
	// availability prefilter, checked against Monday through Friday.
	CommonHours []string

	// ThemeDurations maps a theme to the default visit duration string.
	ThemeDurations map[string]string

	// DefaultDuration is used for themes missing from ThemeDurations.
	DefaultDuration string

	// RegionAdjacency scores pairs of regions that are near each other but
	// not the same. Keys are lowercase region names, scores 40-90.
	RegionAdjacency map[string]map[string]float64

	// RotationTimes is the fixed time rotation used when a candidate has no
	// recorded Monday opening time.
	RotationTimes []string

	// TierMultipliers maps a solution type to its cost multiplier.
	TierMultipliers map[string]float64

	// ItemSpacingMinutes separates consecutive items within a day.
	ItemSpacingMinutes int

	// RepairStepMinutes is the slot granularity of conflict repair.
	RepairStepMinutes int

	// RepairMinShiftMinutes is the minimum distance a repaired time must
	// keep from the original time.
	RepairMinShiftMinutes int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		BudgetScale: BudgetScaleFactor,
		MaxPerTheme: 10,
		CommonHours: []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"},
		ThemeDurations: map[string]string{
			"dermatology":     "1h30",
			"face surgery":    "5h",
			"plastic surgery": "4h",
			"skincare":        "1h30",
			"hair":            "2h30",
			"dental":          "2h",
			"wellness":        "2h",
			"massage":         "1h",
		},
		DefaultDuration: "2h",
		RegionAdjacency: map[string]map[string]float64{
			"seoul":   {"incheon": 85, "gyeonggi": 90, "gangwon": 55, "busan": 45, "jeju": 40},
			"incheon": {"seoul": 85, "gyeonggi": 80},
			"busan":   {"seoul": 45, "daegu": 70, "ulsan": 80},
			"daegu":   {"busan": 70, "ulsan": 65},
			"jeju":    {"seoul": 40, "busan": 45},
		},
		RotationTimes: []string{"09:00", "13:00", "16:00"},
		TierMultipliers: map[string]float64{
			"topranking": 1.0,
			"premium":    1.5,
			"budget":     0.6,
		},
		ItemSpacingMinutes:    180,
		RepairStepMinutes:     30,
		RepairMinShiftMinutes: 30,
	}
}
