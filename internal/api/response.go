package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/first-storm/henkaiki/internal/errors"
)

// Response is the envelope every API payload is wrapped in.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("encoding response", slog.String("error", err.Error()))
	}
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeEngineError maps a typed engine failure to an HTTP status.
func writeEngineError(w http.ResponseWriter, err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeArticleNotFound:
		writeError(w, http.StatusNotFound, "article not found")
	case errors.ErrCodeArticleDirMissing, errors.ErrCodeMarkdownMissing:
		// The index still lists it but the filesystem moved on.
		writeError(w, http.StatusNotFound, "article content unavailable")
	case errors.ErrCodePageOutOfRange:
		writeError(w, http.StatusBadRequest, "page out of range")
	default:
		slog.Error("engine operation failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
