package optics

// DeriveNearVision computes the near correction for one eye.
//
// Near vision exists only for a present sphere and a present, non-zero
// addition. Otherwise the result is the empty NearVision and false, so a
// cleared addition never leaves a stale near sphere behind.
//
// The near sphere is far sphere + addition rounded half away from zero to
// two places. Cylinder and axis are copied unchanged.
func DeriveNearVision(far FarVision) (NearVision, bool) {
	if !far.Sphere.Present() || !far.Addition.Present() || far.Addition.IsZero() {
		return NearVision{}, false
	}

	sphere := far.Sphere.Decimal().Add(far.Addition.Decimal()).Round(2)
	return NearVision{
		Sphere:   NewValue(sphere),
		Cylinder: far.Cylinder,
		Axis:     far.Axis,
	}, true
}

// FormattedNear is a near correction rendered for display.
type FormattedNear struct {
	Sphere   string `json:"sphere"`
	Cylinder string `json:"cylinder"`
	Axis     string `json:"axis"`
}

// Format renders the near correction with the shop's sign conventions.
// Absent fields render as "".
func (n NearVision) Format() FormattedNear {
	return FormattedNear{
		Sphere:   formatSigned(n.Sphere),
		Cylinder: formatNegative(n.Cylinder),
		Axis:     formatDegrees(n.Axis),
	}
}

// DeriveFromInput runs the derivation directly on raw form strings, as typed.
// It backs live form previews where nothing has been parsed yet.
func DeriveFromInput(sphere, cylinder, axis, addition string) FormattedNear {
	near, ok := DeriveNearVision(FarVision{
		Sphere:   ParseValue(sphere),
		Cylinder: ParseValue(cylinder),
		Axis:     ParseValue(axis),
		Addition: ParseValue(addition),
	})
	if !ok {
		return FormattedNear{}
	}
	return near.Format()
}
