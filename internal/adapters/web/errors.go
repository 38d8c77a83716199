package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/ingest"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps a domain error onto an HTTP status and code.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, "not found", "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrInvalidInput):
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	case errors.Is(err, core.ErrNoValidItems), errors.Is(err, ingest.ErrNothingExtracted):
		writeError(w, r, err.Error(), "UNPROCESSABLE", http.StatusUnprocessableEntity)
	case errors.Is(err, core.ErrParseFailure):
		writeError(w, r, err.Error(), "PARSE_FAILED", http.StatusBadGateway)
	case errors.Is(err, ingest.ErrUnsupportedFormat):
		writeError(w, r, err.Error(), "UNSUPPORTED_TYPE", http.StatusUnsupportedMediaType)
	case errors.Is(err, ingest.ErrDocumentTooLarge):
		writeError(w, r, err.Error(), "FILE_TOO_LARGE", http.StatusRequestEntityTooLarge)
	case errors.Is(err, ingest.ErrNotConfigured):
		writeError(w, r, err.Error(), "NOT_CONFIGURED", http.StatusServiceUnavailable)
	default:
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}
