// Package handlers holds the request decoding and JSON response helpers
// shared by the domain handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidBody reports a request body that is not a single JSON value of the expected shape.
var ErrInvalidBody = errors.New("invalid request body")

// ErrInvalidID reports a path identifier that is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// RespondJSON writes data as the JSON body of a status response.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Debug("response encode failed", "status", status, "error", err)
	}
}

// RespondError writes {"error": message}. 5xx responses are logged at error
// level since the client cannot act on them; everything else at debug.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	level := slog.LevelDebug
	msg := "request rejected"
	if status >= http.StatusInternalServerError {
		level, msg = slog.LevelError, "request failed"
	}
	logger.Log(context.Background(), level, msg, "status", status, "error", err)
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// Decode reads one JSON value of type T from the request body.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	err := DecodeInto(r, &v)
	return v, err
}

// DecodeInto reads exactly one JSON value from the request body into dst.
func DecodeInto(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after JSON value", ErrInvalidBody)
	}
	return nil
}

// PathUUID parses the named path value as a UUID.
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, r.PathValue(name))
	}
	return id, nil
}
