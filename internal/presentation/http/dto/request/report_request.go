package request

// ReportQuery bounds the period of the report summary (YYYY-MM-DD)
type ReportQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}
