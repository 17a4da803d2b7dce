package optics

// Eye keys every paired prescription field.
type Eye int

const (
	Right Eye = iota // OD, oculus dexter
	Left             // OE, olho esquerdo
)

// Eyes lists both eyes in display order.
var Eyes = [...]Eye{Right, Left}

// String returns the clinical abbreviation used on prescriptions.
func (e Eye) String() string {
	if e == Left {
		return "OE"
	}
	return "OD"
}

// FarVision is one eye's distance correction as written by the optometrist.
type FarVision struct {
	Sphere                Value // diopters
	Cylinder              Value // diopters, negative-cylinder notation
	Axis                  Value // integer degrees in [0, 180]
	NearPupillaryDistance Value // DNP, millimeters
	SegmentHeight         Value // altura, millimeters
	Addition              Value // diopters, 0 or absent means single vision
}

// NearVision is the reading correction derived from FarVision.
// The zero NearVision is the absent correction.
type NearVision struct {
	Sphere   Value
	Cylinder Value
	Axis     Value
}

// IsEmpty reports whether no near correction is present.
func (n NearVision) IsEmpty() bool {
	return !n.Sphere.Present() && !n.Cylinder.Present() && !n.Axis.Present()
}

// EyePrescription pairs one eye's far correction with its derived near one.
type EyePrescription struct {
	Far  FarVision
	Near NearVision
}

// Prescription is the full receita: far and near vision for both eyes.
// It is an immutable value; With* methods return updated copies.
type Prescription struct {
	eyes [2]EyePrescription
}

// NewPrescription builds a prescription from both far corrections and
// derives the near fields of each eye.
func NewPrescription(right, left FarVision) Prescription {
	var p Prescription
	p.eyes[Right] = deriveEye(right)
	p.eyes[Left] = deriveEye(left)
	return p
}

// Eye returns the correction for one eye.
func (p Prescription) Eye(e Eye) EyePrescription {
	return p.eyes[e]
}

// Far returns the far correction of one eye.
func (p Prescription) Far(e Eye) FarVision {
	return p.eyes[e].Far
}

// Near returns the derived near correction of one eye.
func (p Prescription) Near(e Eye) NearVision {
	return p.eyes[e].Near
}

// WithFar returns a copy with one eye's far correction replaced and that
// eye's near correction re-derived. The other eye is left untouched.
func (p Prescription) WithFar(e Eye, far FarVision) Prescription {
	p.eyes[e] = deriveEye(far)
	return p
}

// Restore rebuilds a prescription from stored rows, keeping the stored near
// values as they are. Use Rederive to bring them back in line with the far
// values.
func Restore(right, left EyePrescription) Prescription {
	var p Prescription
	p.eyes[Right] = right
	p.eyes[Left] = left
	return p
}

// Rederive recomputes the near correction of both eyes.
func (p Prescription) Rederive() Prescription {
	return NewPrescription(p.eyes[Right].Far, p.eyes[Left].Far)
}

func deriveEye(far FarVision) EyePrescription {
	near, _ := DeriveNearVision(far)
	return EyePrescription{Far: far, Near: near}
}
