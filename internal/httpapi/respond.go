package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"jobmate/jobboard-service/internal/apperr"
)

type envelope struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

func jsonOK(w http.ResponseWriter, msg string, v any) {
	writeJSON(w, http.StatusOK, envelope{Message: msg, Success: true, Data: v})
}

func jsonCreated(w http.ResponseWriter, msg string, v any) {
	writeJSON(w, http.StatusCreated, envelope{Message: msg, Success: true, Data: v})
}

func jsonError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(apperr.KindOf(err)), envelope{Message: apperr.Message(err)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// fail writes err, logging internal failures with their cause.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.log.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	jsonError(w, err)
}
