package request

import (
	"bytes"
	"encoding/json"
)

// FormValue is a numeric form field as typed. It accepts a JSON string or a
// JSON number, so "+1.50", "1,50" and 1.5 are all taken as typed.
type FormValue string

// UnmarshalJSON implements json.Unmarshaler.
func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// Ptr returns the raw string, or nil when the field was not sent.
func (v *FormValue) Ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// String returns the raw string, "" when the field was not sent.
func (v *FormValue) String() string {
	if v == nil {
		return ""
	}
	return string(*v)
}
