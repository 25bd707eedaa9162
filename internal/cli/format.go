// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders integer cents as a currency string.
// e.g., 123456 -> "$1,234.56"
func FormatMoney(cents int64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	if cents < 0 {
		return "-" + FormatMoney(-cents, symbol)
	}
	return fmt.Sprintf("%s%s.%02d", symbol, FormatNumber(cents/100), cents%100)
}

// FormatSignedMoney renders cents with an explicit sign, for deltas.
func FormatSignedMoney(cents int64, symbol string) string {
	if cents >= 0 {
		return "+" + FormatMoney(cents, symbol)
	}
	return FormatMoney(cents, symbol)
}

// FormatCompactMoney renders cents with human-readable suffixes for wide
// summaries. e.g., 123456789 -> "$1.2M"
func FormatCompactMoney(cents int64, symbol string) string {
	if symbol == "" {
		symbol = "$"
	}
	if cents < 0 {
		return "-" + FormatCompactMoney(-cents, symbol)
	}
	dollars := float64(cents) / 100
	switch {
	case dollars >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", symbol, dollars/1_000_000)
	case dollars >= 10_000:
		return fmt.Sprintf("%s%.1fK", symbol, dollars/1_000)
	default:
		return FormatMoney(cents, symbol)
	}
}

// FormatDuration formats seconds into a human-readable duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMonth renders a "2006-01" month key as "Jan 2006".
func FormatMonth(key string) string {
	months := map[string]string{
		"01": "Jan", "02": "Feb", "03": "Mar", "04": "Apr",
		"05": "May", "06": "Jun", "07": "Jul", "08": "Aug",
		"09": "Sep", "10": "Oct", "11": "Nov", "12": "Dec",
	}
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return key
	}
	name, ok := months[parts[1]]
	if !ok {
		return key
	}
	return name + " " + parts[0]
}
