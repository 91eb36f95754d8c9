package web

// errors.go maps pipeline errors onto HTTP outcomes. Malformed input
// (core.BadRequestError) is the client's fault and gets a 400; store and
// unexpected failures get a 500. The technical error is logged with the
// request ID; the client sees the mapped user message with its code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmfedotov/tabload/internal/core"
	"github.com/dmfedotov/tabload/internal/logging"
)

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Action    string    `json:"action,omitempty"`
	Code      string    `json:"code"`
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// respondError logs err and writes the mapped user-facing JSON error.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	logger.Error("request failed",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", userMsg.Code,
		"error", err.Error(),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:     http.StatusText(status),
		Message:   userMsg.Message,
		Action:    userMsg.Action,
		Code:      userMsg.Code,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
}

// statusForError classifies an error as a client or server fault.
func statusForError(err error) int {
	var badReq *core.BadRequestError
	if errors.As(err, &badReq) {
		return http.StatusBadRequest
	}
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// writeJSON encodes v and writes it with a 200 status.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("json encode error", "error", err)
	}
}
