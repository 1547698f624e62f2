package router

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
)

// errTrailingData is returned when a request body carries data after the
// first decoded value.
var errTrailingData = errors.New("unexpected trailing data after body value")

// BindJSON decodes the request body as a single JSON value into v. Fields
// that do not map to v are rejected unless allowUnknownFields is passed as
// true. Anything left in the body after the value is an error.
func BindJSON(r *http.Request, v any, allowUnknownFields ...bool) error {
	dec := json.NewDecoder(r.Body)
	if len(allowUnknownFields) == 0 || !allowUnknownFields[0] {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(v); err != nil {
		return err
	}
	return drained(dec.Decode(&struct{}{}))
}

// BindXML decodes the request body as a single XML element into v.
// Anything left in the body after the element is an error.
func BindXML(r *http.Request, v any) error {
	dec := xml.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		return err
	}
	return drained(dec.Decode(&struct{}{}))
}

// drained maps the outcome of a probe decode past the first value: end of
// input means the body held exactly one value, anything else is trailing
// data.
func drained(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return errTrailingData
}
