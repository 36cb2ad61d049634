// Package format renders engine figures for reports and generated text.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 2)
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// WholeCurrency returns a currency string rounded to whole dollars (e.g., "$6,250,000").
func WholeCurrency(amount float64) string {
	formatted := formatPositive(math.Abs(amount), 0)
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Area returns a square-metre figure with separators (e.g., "51,000 sqm").
func Area(sqm float64) string {
	sign := ""
	if sqm < 0 {
		sign = "-"
	}
	return sign + formatPositive(math.Abs(sqm), 0) + " sqm"
}

// Hectares returns a site area in hectares to two decimals (e.g., "2.00 ha").
func Hectares(ha float64) string {
	return fmt.Sprintf("%.2f ha", ha)
}

// Ratio returns a floor space ratio in the conventional "2.55:1" notation.
func Ratio(fsr float64) string {
	return fmt.Sprintf("%.2f:1", fsr)
}

// Percent returns a percentage to one decimal place (e.g., "104.9%").
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatPositive(value float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return intPart + "." + parts[1]
	}
	return intPart
}

// Metres returns a height rounded to one decimal with trailing zeros dropped (e.g., "31m", "8.9m").
func Metres(value float64) string {
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "m"
}
