package request

// PrescriptionRequest carries the far-vision fields of a receita as typed
// into the form. Near-vision fields are derived and never accepted. In
// updates an omitted field is unchanged and "" clears it.
type PrescriptionRequest struct {
	ServiceOrderID string `json:"id_os"`

	SphereOD   *FormValue `json:"esferico_longe_od"`
	CylinderOD *FormValue `json:"cilindrico_longe_od"`
	AxisOD     *FormValue `json:"eixo_longe_od"`
	DNPOD      *FormValue `json:"dnp_longe_od"`
	HeightOD   *FormValue `json:"altura_od"`
	AdditionOD *FormValue `json:"adicao_od"`

	SphereOE   *FormValue `json:"esferico_longe_oe"`
	CylinderOE *FormValue `json:"cilindrico_longe_oe"`
	AxisOE     *FormValue `json:"eixo_longe_oe"`
	DNPOE      *FormValue `json:"dnp_longe_oe"`
	HeightOE   *FormValue `json:"altura_oe"`
	AdditionOE *FormValue `json:"adicao_oe"`
}

// DeriveEyeRequest is one eye of a live derivation preview
type DeriveEyeRequest struct {
	Sphere   *FormValue `json:"esferico"`
	Cylinder *FormValue `json:"cilindrico"`
	Axis     *FormValue `json:"eixo"`
	Addition *FormValue `json:"adicao"`
}

// DeriveRequest asks for the near vision of both eyes
type DeriveRequest struct {
	Right DeriveEyeRequest `json:"od"`
	Left  DeriveEyeRequest `json:"oe"`
}
