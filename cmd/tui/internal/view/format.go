package view

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// FormatQty renders a quantity with its unit, dropping trailing zeros.
func FormatQty(q decimal.Decimal, unit string) string {
	s := q.String()
	if unit != "" {
		s += " " + unit
	}

	return s
}

// FormatDate formats a time.Time into YYYY-MM-DD HH:MM.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// ParseQty accepts both "12.5" and the comma decimal separator "12,5".
func ParseQty(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
