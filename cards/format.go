package cards

import (
	"strconv"
	"time"
)

// FormatMatchDate renders a YYYY-MM-DD date as "January 2nd, 2025".
// Values that are not dates are returned unchanged.
func FormatMatchDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("January") + " " + ordinal(t.Day()) + ", " + strconv.Itoa(t.Year())
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
