package profile

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s().\-]{7,}$`)

	currencySymbols = []string{"$", "€", "£", "¥", "USD", "EUR", "GBP"}

	dateFormats = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"01/02/2006",
		"1/2/2006",
		"2006/01/02",
		"02-Jan-2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
)

// parseNumeric accepts plain numbers plus currency, percent, thousands
// separators and accounting-style parentheses for negatives
func parseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}

	for _, symbol := range currencySymbols {
		s = strings.ReplaceAll(s, symbol, "")
	}
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

func isBoolean(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "false", "yes", "no", "y", "n":
		return true
	}
	return false
}

func isDate(raw string) bool {
	s := strings.TrimSpace(raw)
	for _, format := range dateFormats {
		if _, err := time.Parse(format, s); err == nil {
			return true
		}
	}
	return false
}

func isEmail(raw string) bool {
	return emailPattern.MatchString(strings.TrimSpace(raw))
}

func isPhone(raw string) bool {
	s := strings.TrimSpace(raw)
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}
