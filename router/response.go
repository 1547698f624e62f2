package router

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
)

// ResponseJSON encodes v as JSON and writes it to the response with the
// given status code. The Content-Type header is set to "application/json".
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	respond(w, code, "application/json", func(buf *bytes.Buffer) error {
		return json.NewEncoder(buf).Encode(v)
	})
}

// ResponseXML encodes v as XML and writes it to the response with the
// given status code. The Content-Type header is set to "application/xml".
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func ResponseXML(w http.ResponseWriter, code int, v any) {
	respond(w, code, "application/xml", func(buf *bytes.Buffer) error {
		return xml.NewEncoder(buf).Encode(v)
	})
}

// respond buffers the encoded body before touching the ResponseWriter, so
// an encoding failure can still produce a clean 500 instead of a truncated
// response with a success status.
func respond(w http.ResponseWriter, code int, contentType string, encode func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}
