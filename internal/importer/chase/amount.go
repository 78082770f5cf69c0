package chase

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a Chase amount string into signed cents.
// Examples: "-5.75" -> -575, "2500.00" -> 250000, "1,234.56" -> 123456.
func parseAmount(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}

	clean := strings.ReplaceAll(s, ",", "")
	clean = strings.TrimPrefix(clean, "$")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount value: %s", s)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
