package workflow

import (
	"fmt"
	"strings"
	"time"
)

// DefaultStaleDays is the window beyond which a cheque date is stale.
const DefaultStaleDays = 180

// ValidateDate checks a raw cheque date against the DDMMYYYY convention.
// Six-digit dates carry a two-digit year: suffixes at or below the current
// year's map to 20xx, later suffixes to 19xx. The date must not be in the
// future and must fall within the stale window of now.
func ValidateDate(raw string, now time.Time, staleDays int) (bool, string) {
	s := strings.TrimSpace(raw)

	if len(s) == 6 {
		suffix := s[4:]
		century := "19"
		if suffix <= now.Format("06") {
			century = "20"
		}
		s = s[:4] + century + suffix
	}

	if len(s) != 8 {
		return false, fmt.Sprintf("Invalid format (Expected DDMMYYYY, got %s)", s)
	}

	date, err := time.Parse("02012006", s)
	if err != nil {
		return false, "Invalid calendar date (e.g., Feb 30th)"
	}

	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	if date.After(today) {
		return false, fmt.Sprintf("Post-dated cheque (Date: %s)", date.Format("2006-01-02"))
	}

	if date.Before(today.AddDate(0, 0, -staleDays)) {
		return false, fmt.Sprintf("Stale-dated cheque (Date is older than %d days)", staleDays)
	}

	return true, "Date is valid"
}
