package optics

import "github.com/shopspring/decimal"

// Issue describes a far-vision field that is present but out of range.
type Issue struct {
	Field   string
	Message string
}

var (
	sphereLimit   = decimal.NewFromInt(20)
	additionLimit = decimal.NewFromInt(4)
)

// Check validates the present fields of a far correction before it is
// stored. Absent fields are never an issue. Field names carry the eye
// suffix used by the receita columns, e.g. "esferico_longe_od".
func Check(e Eye, far FarVision) []Issue {
	var issues []Issue
	add := func(field, msg string) {
		issues = append(issues, Issue{Field: ColumnName(field, e), Message: msg})
	}

	if far.Sphere.Present() && far.Sphere.Decimal().Abs().GreaterThan(sphereLimit) {
		add("esferico_longe", "must be between -20.00 and +20.00")
	}
	if far.Cylinder.Present() && far.Cylinder.Decimal().Abs().GreaterThan(sphereLimit) {
		add("cilindrico_longe", "must be between -20.00 and 0.00")
	}
	if far.Axis.Present() {
		a := far.Axis.Decimal()
		if !a.Equal(a.Truncate(0)) || a.LessThan(minAxis) || a.GreaterThan(maxAxis) {
			add("eixo_longe", "must be a whole number of degrees between 0 and 180")
		}
	}
	if far.NearPupillaryDistance.Present() && !far.NearPupillaryDistance.Decimal().IsPositive() {
		add("dnp_longe", "must be positive")
	}
	if far.SegmentHeight.Present() && !far.SegmentHeight.Decimal().IsPositive() {
		add("altura", "must be positive")
	}
	if far.Addition.Present() {
		a := far.Addition.Decimal()
		if a.IsNegative() || a.GreaterThan(additionLimit) {
			add("adicao", "must be between 0.00 and +4.00")
		}
	}
	return issues
}

// NormalizeCylinder rewrites a cylinder in negative-cylinder notation.
// Absent stays absent.
func NormalizeCylinder(v Value) Value {
	if !v.Present() {
		return v
	}
	return NewValue(v.Decimal().Abs().Neg())
}

// ColumnName appends the eye suffix to a receita column base name.
func ColumnName(base string, e Eye) string {
	if e == Left {
		return base + "_oe"
	}
	return base + "_od"
}
