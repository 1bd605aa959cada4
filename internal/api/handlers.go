package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/lutrisart/internal/logger"
	"github.com/vytor/lutrisart/internal/services"
)

// maxRequestBody caps JSON command payloads.
const maxRequestBody = 64 << 10

type Server struct {
	LibraryService services.LibraryService
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
