package response

import (
	"encoding/json"
	"net/http"
)

const jsonContentType = "application/json; charset=utf-8"

// Envelope wraps every successful payload so clients always read .data.
type Envelope struct {
	Data any `json:"data"`
}

// WriteJSON encodes v with the given status. A Content-Type set earlier by
// the handler (downloads etc.) is left alone.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	header := w.Header()
	if header.Get("Content-Type") == "" {
		header.Set("Content-Type", jsonContentType)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK sends the enveloped payload with a 200.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

// Created sends the enveloped payload with a 201.
func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Data: data})
}

// NoContent sends a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
