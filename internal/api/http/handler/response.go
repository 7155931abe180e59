package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/tutordash-web/internal/backend"
	"github.com/dtroode/tutordash-web/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// relay writes a backend reply through unchanged.
func relay(w http.ResponseWriter, res backend.Response) {
	contentType := res.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(res.Status)
	_, _ = w.Write(res.Body)
}

const maxBodyBytes = 1 << 20

var errMalformedBody = model.NewValidationError("body", "Malformed JSON body")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errMalformedBody
	}
	return nil
}
