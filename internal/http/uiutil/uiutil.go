// Package uiutil formats values for console templates.
package uiutil

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts used across screens.
const (
	DateLayout     = "2 Jan 2006"
	DateTimeLayout = "2 Jan 2006 15:04"
)

// FormatDate renders t as "2 Jan 2006", or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// FormatDateTime renders t as "2 Jan 2006 15:04", or "" for the zero time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateTimeLayout)
}

// RelativeTime describes t relative to now ("5 minutes ago"). Future times read "just now";
// anything older than a week falls back to the date.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute") + " ago"
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour") + " ago"
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day") + " ago"
	default:
		return FormatDate(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}

// Truncate shortens text to limit runes, ending with an ellipsis when cut.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// Humanize turns an enum such as "AWAITING_EVIDENCE" into "Awaiting evidence".
func Humanize(v string) string {
	v = strings.ToLower(strings.ReplaceAll(v, "_", " "))
	if v == "" {
		return ""
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

// StatusTone picks the badge colour for a status value.
func StatusTone(status string) string {
	switch strings.ToUpper(status) {
	case "COMPLETED", "RESOLVED", "PAID", "SUCCEEDED", "ACTIVE":
		return "success"
	case "DISPUTED", "OVERDUE", "FAILED", "SUSPENDED", "URGENT", "PAST_DUE":
		return "danger"
	case "AWAITING_FINAL_PRICE_CONFIRMATION", "AWAITING_EVIDENCE", "UNDER_REVIEW", "PENDING", "HIGH",
		"PARTIALLY_REFUNDED":
		return "warning"
	case "CANCELLED", "CLOSED", "REFUNDED", "CANCELED":
		return "muted"
	default:
		return "info"
	}
}
