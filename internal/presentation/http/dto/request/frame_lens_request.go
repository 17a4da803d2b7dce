package request

// FrameLensRequest carries a frame/lens selection. id_os is required on
// creation and ignored on update.
type FrameLensRequest struct {
	ServiceOrderID  string  `json:"id_os"`
	FrameBrand      *string `json:"marca_armacao"`
	FrameReference  *string `json:"referencia_armacao"`
	FrameMaterial   *string `json:"material_armacao"`
	Lens            *string `json:"lente_comprada"`
	Treatment       *string `json:"tratamento"`
	Tint            *string `json:"coloracao"`
	Horizontal      *string `json:"horizontal"`
	Vertical        *string `json:"vertical"`
	Bridge          *string `json:"ponte"`
	LargestDiagonal *string `json:"diagonal_maior"`
}
