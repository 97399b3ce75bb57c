package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatScore formats a derived score with two decimal places.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

// FormatPrice formats an entry price.
func FormatPrice(price float64) string {
	if price >= 10 {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.4f", price)
}

// intString renders a raw factor with explicit sign.
func intString(v int) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", v)
}

// FormatDate formats a date for table output.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// PadRight pads a string to the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
