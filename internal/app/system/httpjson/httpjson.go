// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the request/response JSON helpers shared by all
// API feature handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; the portal only ever receives small
// JSON documents.
const maxBodyBytes = 1 << 20

// Decode reads the request body into dst. Returns a Validation error on
// malformed or oversized JSON so handlers can pass it straight to Error.
func Decode(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

// DecodeOptional reads the request body into dst, leaving dst zero when
// the body is empty. Malformed JSON is still rejected, which matters for
// chunked requests where ContentLength is unknown.
func DecodeOptional(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validation("invalid JSON body")
	}
	return nil
}

// Write sends v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the JSON error envelope for err using the apperr status
// mapping. Internal errors are logged with their cause and surface only
// a generic message plus the underlying text for operator diagnosis.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.StatusCode(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("internal error", zap.Error(err))
	}
	Write(w, status, map[string]string{"error": err.Error()})
}
