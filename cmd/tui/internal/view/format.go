package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const requestTimeout = 30 * time.Second

// FormatAmount formats an amount stored as cents into a dollar string,
// keeping the sign. -4525 becomes "-$45.25".
func FormatAmount(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}

	return "$" + d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// APICtx returns a context with a standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
