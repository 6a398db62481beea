package scheduler

import (
	"strconv"
	"strings"
)

const defaultDurationMinutes = 120

// durationForTheme returns the configured visit duration for a theme,
// falling back to the default for unlisted themes.
func (cfg *Config) durationForTheme(theme string) string {
	if d, ok := cfg.ThemeDurations[strings.ToLower(strings.TrimSpace(theme))]; ok {
		return d
	}
	return cfg.DefaultDuration
}

// parseDurationMinutes reads the free-form duration strings used on
// schedule items: "2h", "1h30", "30min", "45m". Unparseable input falls
// back to two hours so repair can still bound the last slot.
func parseDurationMinutes(s string) int {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return defaultDurationMinutes
	}
	if v, ok := strings.CutSuffix(s, "min"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
		return defaultDurationMinutes
	}
	if hours, rest, ok := strings.Cut(s, "h"); ok {
		h, err := strconv.Atoi(strings.TrimSpace(hours))
		if err != nil || h < 0 {
			return defaultDurationMinutes
		}
		minutes := h * 60
		rest = strings.TrimSuffix(strings.TrimSpace(rest), "m")
		if rest != "" {
			m, err := strconv.Atoi(rest)
			if err != nil || m < 0 {
				return defaultDurationMinutes
			}
			minutes += m
		}
		if minutes > 0 {
			return minutes
		}
		return defaultDurationMinutes
	}
	if v, ok := strings.CutSuffix(s, "m"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			return n
		}
	}
	return defaultDurationMinutes
}
