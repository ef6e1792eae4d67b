package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount with two fractional digits.
//
// On input it accepts JSON numbers as well as numeric strings ("500",
// "499.99"); anything unparseable is remembered so that validation can report
// it as a field error instead of failing the whole JSON decode. On output it
// always renders as a fixed two-decimal string, e.g. "500.00", which is what
// the API has always returned for DECIMAL columns.
type Money struct {
	dec     decimal.Decimal
	set     bool
	invalid bool
}

// NewMoney wraps a decimal as Money.
func NewMoney(d decimal.Decimal) Money {
	return Money{dec: d, set: true}
}

// MoneyFromString parses a decimal string into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Money{dec: d, set: true}, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.dec }

// IsSet reports whether a value was provided at all.
func (m Money) IsSet() bool { return m.set }

// IsValid reports whether the provided value parsed as a number.
func (m Money) IsValid() bool { return !m.invalid }

// Positive reports whether the amount is strictly greater than zero.
func (m Money) Positive() bool { return m.dec.IsPositive() }

// String renders the amount with exactly two decimal places.
func (m Money) String() string { return m.dec.StringFixed(2) }

// UnmarshalJSON accepts a JSON number or a numeric string. A malformed value
// does not abort decoding; it marks the Money invalid for later validation.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		*m = Money{set: true, invalid: true}
		return nil
	}
	*m = Money{dec: d, set: true}
	return nil
}

// MarshalJSON renders the amount as a quoted two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.dec.StringFixed(2) + `"`), nil
}

// Value implements driver.Valuer, storing the amount as a numeric string.
func (m Money) Value() (driver.Value, error) {
	return m.dec.StringFixed(2), nil
}

// Scan implements sql.Scanner for NUMERIC, REAL, INTEGER and TEXT columns.
func (m *Money) Scan(src any) error {
	if src == nil {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scanning amount: %w", err)
	}
	*m = Money{dec: d, set: true}
	return nil
}
