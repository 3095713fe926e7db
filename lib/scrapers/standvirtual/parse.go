package standvirtual

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonNumericRegex = regexp.MustCompile(`[^\d,.]`)

// ParsePrice converts a price fragment such as "15.000 €" or "15,000.50"
// into its numeric value. Both european and american separator
// conventions show up in listings.
func ParsePrice(text string) (float64, error) {
	clean := nonNumericRegex.ReplaceAllString(text, "")
	if clean == "" {
		return 0, fmt.Errorf("no numeric content in price %q", text)
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(clean, ",") > strings.LastIndex(clean, ".") {
			// european: 15.000,00
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// american: 15,000.00
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasComma:
		parts := strings.Split(clean, ",")
		if len(parts[len(parts)-1]) <= 2 {
			// decimal comma
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			// thousands separator
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case hasDot:
		parts := strings.Split(clean, ".")
		if len(parts[len(parts)-1]) == 3 {
			// thousands separator: 15.000
			clean = strings.ReplaceAll(clean, ".", "")
		}
	}

	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	return price, nil
}

var digitsRegex = regexp.MustCompile(`\d+`)

// ParseMileage extracts the numeric kilometer reading from text like
// "120 000 km".
func ParseMileage(text string) (int, error) {
	groups := digitsRegex.FindAllString(text, -1)
	if len(groups) == 0 {
		return 0, fmt.Errorf("no numeric content in mileage %q", text)
	}
	km, err := strconv.Atoi(strings.Join(groups, ""))
	if err != nil {
		return 0, fmt.Errorf("parse mileage %q: %w", text, err)
	}
	return km, nil
}

var yearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractYear finds a four digit year anywhere in the text, 0 when absent.
func ExtractYear(text string) int {
	match := yearRegex.FindString(text)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}
