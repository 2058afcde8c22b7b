package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the canonical success payload shape: a data member plus optional metadata.
type Envelope struct {
	Data any `json:"data"`
	Meta any `json:"meta,omitempty"`
}

// WriteJSON writes an arbitrary payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteData writes the payload wrapped in the standard envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Data: data})
}

// WriteDataMeta writes the payload and metadata wrapped in the standard envelope.
func WriteDataMeta(w http.ResponseWriter, status int, data, meta any) {
	WriteJSON(w, status, Envelope{Data: data, Meta: meta})
}
