package optics

import "github.com/shopspring/decimal"

var step = decimal.RequireFromString("0.25")

// SphereOptions lists the selectable spherical powers from +15.00 down to
// -15.00 in 0.25 steps, formatted as FormatSpherical renders them.
func SphereOptions() []string {
	return steps(decimal.NewFromInt(15), decimal.NewFromInt(-15), formatSigned)
}

// CylinderOptions lists the selectable cylindrical powers from 0.00 down to
// -15.00 in 0.25 steps, zero unsigned.
func CylinderOptions() []string {
	return steps(decimal.Zero, decimal.NewFromInt(-15), formatNegative)
}

// AdditionOptions lists the selectable additions from 0.00 up to +4.00 in
// 0.25 steps, zero unsigned.
func AdditionOptions() []string {
	return steps(decimal.Zero, decimal.NewFromInt(4), func(v Value) string {
		return FormatAddition(v.Plain())
	})
}

// steps walks from one bound to the other, inclusive, in either direction.
func steps(from, to decimal.Decimal, format func(Value) string) []string {
	delta := step
	if to.LessThan(from) {
		delta = step.Neg()
	}

	n := to.Sub(from).Abs().Div(step).IntPart() + 1
	out := make([]string, 0, n)
	for cur := from; int64(len(out)) < n; cur = cur.Add(delta) {
		out = append(out, format(NewValue(cur)))
	}
	return out
}
