package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrNotScalar is returned when a FormText field holds an object or array.
var ErrNotScalar = errors.New("expected a string, number or boolean")

// FormText is a form field that accepts any JSON scalar and keeps its text
// form. Browsers and form libraries send numeric inputs (phone numbers, ids)
// as numbers, so a string-only field would reject them.
//
// Falsy values (null, false, 0, "") decode to the empty string, which lets a
// `validate:"required"` tag treat them as missing.
type FormText string

// UnmarshalJSON implements json.Unmarshaler.
func (t *FormText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return ErrNotScalar
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = FormText(s)
	case bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*t = ""
	case bytes.Equal(data, []byte("true")):
		*t = "true"
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		*t = FormText(numberText(data, f))
	default:
		return ErrNotScalar
	}
	return nil
}

// numberText renders a JSON number as it was written, except that zero is
// empty and fractions or exponents are normalised (1e3 becomes "1000").
func numberText(raw []byte, f float64) string {
	if f == 0 {
		return ""
	}
	if bytes.ContainsAny(raw, ".eE") {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(raw)
}

// String returns the field's text.
func (t FormText) String() string {
	return string(t)
}
