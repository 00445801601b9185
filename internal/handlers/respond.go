// Package handlers contains the HTTP handlers for the reelpress server.
// Handlers are grouped by concern (admin, auth, public) and receive
// their dependencies through the handler struct. Admin handlers speak
// JSON with a uniform envelope; public handlers render HTML pages.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"reelpress/internal/apperr"
)

// envelope is the uniform admin API response shape. Every admin
// endpoint returns it: success with optional data, or an error message
// plus a machine-readable kind.
type envelope struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    apperr.Kind `json:"kind,omitempty"`
}

// respondOK writes a success envelope with the given payload.
func respondOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, envelope{Success: true, Data: data})
}

// respondCreated writes a success envelope with 201.
func respondCreated(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// respondErr classifies err and writes the matching error envelope.
// Validation errors map to 400, not-found to 404, everything else to
// 502 upstream. Upstream causes are logged but never leaked to clients.
func respondErr(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.MessageOf(err)

	var status int
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
		slog.Error("admin api error", "error", err)
	}

	writeEnvelope(w, status, envelope{Success: false, Error: msg, Kind: kind})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// maxRequestBody bounds JSON request bodies. Uploads go through
// presigned URLs or the multipart endpoint, so a megabyte is plenty.
const maxRequestBody = 1 << 20

// decodeJSON reads and decodes a JSON request body into dst. Returns a
// validation error on malformed input so the caller can pass it
// straight to respondErr.
func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return apperr.Validation(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
