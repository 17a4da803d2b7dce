package optics

import "github.com/shopspring/decimal"

// FormatSpherical renders a spherical power with two decimals and an
// explicit sign: "+2.00", "-1.25", "+0.00". Unparseable input renders "".
// The output parses back to the same value, so formatting is idempotent.
func FormatSpherical(raw string) string {
	return formatSigned(ParseValue(raw))
}

// FormatCylinder renders a cylindrical power in negative-cylinder notation:
// the magnitude with two decimals and a leading '-', whatever sign was
// typed. Zero renders unsigned as "0.00". Unparseable input renders "".
func FormatCylinder(raw string) string {
	return formatNegative(ParseValue(raw))
}

// FormatAddition renders an addition power: "+1.50", with zero unsigned as
// "0.00". Unparseable input renders "".
func FormatAddition(raw string) string {
	v := ParseValue(raw)
	if !v.Present() {
		return ""
	}
	r := v.Decimal().Round(2)
	if r.IsZero() {
		return zeroPower
	}
	return formatSigned(NewValue(r))
}

// FormatAxis renders an axis as whole degrees. Values outside [0, 180] and
// unparseable input render "".
func FormatAxis(raw string) string {
	return formatDegrees(ParseValue(raw))
}

// FormatMillimeters renders a DNP or segment height with two decimals.
// Non-positive and unparseable input render "".
func FormatMillimeters(raw string) string {
	v := ParseValue(raw)
	if !v.Present() || !v.Decimal().IsPositive() {
		return ""
	}
	return v.Decimal().StringFixed(2)
}

const zeroPower = "0.00"

func formatSigned(v Value) string {
	if !v.Present() {
		return ""
	}
	r := v.Decimal().Round(2)
	if r.Sign() < 0 {
		return r.StringFixed(2)
	}
	return "+" + r.StringFixed(2)
}

func formatNegative(v Value) string {
	if !v.Present() {
		return ""
	}
	r := v.Decimal().Abs().Round(2)
	if r.IsZero() {
		return zeroPower
	}
	return "-" + r.StringFixed(2)
}

var (
	minAxis = decimal.Zero
	maxAxis = decimal.NewFromInt(180)
)

func formatDegrees(v Value) string {
	if !v.Present() {
		return ""
	}
	r := v.Decimal().Round(0)
	if r.LessThan(minAxis) || r.GreaterThan(maxAxis) {
		return ""
	}
	return r.String()
}
