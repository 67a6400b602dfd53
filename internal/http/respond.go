package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Error codes carried in JSON error bodies alongside the HTTP status.
const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeConflict   = "conflict"
	codeInternal   = "internal"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(ctx, "Response encoding failed", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, msg string) {
	if status >= 500 {
		slog.ErrorContext(ctx, "Request failed", "status", status, "code", code, "error", msg)
	} else {
		slog.WarnContext(ctx, "Request rejected", "status", status, "code", code, "error", msg)
	}
	writeJSON(ctx, w, status, errorResponse{Error: msg, Code: code})
}

func writeSuccess(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusOK, successResponse{Success: true})
}

// decodeJSON reads a JSON request body into v, rejecting trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}
