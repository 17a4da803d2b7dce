// Package optics models an optical prescription (receita) and derives the
// near-vision correction from the far-vision correction plus the addition.
//
// Every function in this package is total: malformed numeric input never
// produces an error, it degrades to an absent value. Form fields are
// re-evaluated on every keystroke, so a half-typed "-" or "1." must not
// interrupt the caller.
package optics

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value is an optional decimal field of a prescription.
// The zero Value is absent ("field not provided"), which is distinct from a
// provided zero.
type Value struct {
	d     decimal.Decimal
	valid bool
}

// NewValue wraps a decimal as a present value.
func NewValue(d decimal.Decimal) Value {
	return Value{d: d, valid: true}
}

// ValueFromFloat wraps a float as a present value.
func ValueFromFloat(f float64) Value {
	return NewValue(decimal.NewFromFloat(f))
}

// ValueFromNull converts a nullable database decimal.
func ValueFromNull(n decimal.NullDecimal) Value {
	if !n.Valid {
		return Value{}
	}
	return NewValue(n.Decimal)
}

// ParseValue reads a value typed into a form field.
//
// Everything except digits, '.' and a leading '-' is discarded, so already
// formatted strings such as "+2.00" or "-1.50 D" parse back to their
// magnitude. A ',' is read as the decimal separator. Empty or unparseable
// input yields an absent value.
func ParseValue(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}
	}

	negative := strings.HasPrefix(s, "-")

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '.' || r == ',':
			b.WriteByte('.')
		}
	}
	if digits == 0 {
		return Value{}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return Value{}
	}
	return NewValue(d)
}

// Present reports whether the field was provided.
func (v Value) Present() bool {
	return v.valid
}

// IsZero reports whether the field was provided and equals zero.
func (v Value) IsZero() bool {
	return v.valid && v.d.IsZero()
}

// Decimal returns the underlying decimal; zero when absent.
func (v Value) Decimal() decimal.Decimal {
	if !v.valid {
		return decimal.Zero
	}
	return v.d
}

// Null converts the value for a nullable database column.
func (v Value) Null() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: v.d, Valid: v.valid}
}

// Equal reports whether both values are absent, or both present and equal.
func (v Value) Equal(o Value) bool {
	if v.valid != o.valid {
		return false
	}
	return !v.valid || v.d.Equal(o.d)
}

// Round rounds half away from zero to the given number of places.
func (v Value) Round(places int32) Value {
	if !v.valid {
		return v
	}
	return NewValue(v.d.Round(places))
}

// Plain renders the value with two decimals and no forced sign, or "" when
// absent.
func (v Value) Plain() string {
	if !v.valid {
		return ""
	}
	return v.d.StringFixed(2)
}
