package response

import (
	"errors"
	"net/http"

	"github.com/talenthub/account-service/internal/domain"
)

type ErrorBody struct {
	Error ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Meta      map[string]string `json:"meta,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteError renders any error as the shared JSON error shape. Errors that
// are not *domain.Error collapse to a bare 500 so internals never leak.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	payload := ErrorPayload{
		Code:      "internal_error",
		Message:   "internal error",
		RequestID: RequestIDFromContext(r),
	}
	status := http.StatusInternalServerError

	var de *domain.Error
	if errors.As(err, &de) {
		status = statusFromKind(de.Kind)
		payload.Code = de.Code
		payload.Message = de.Message
		payload.Meta = de.Meta
	}

	w.Header().Set("Content-Type", jsonContentType)
	WriteJSON(w, status, ErrorBody{Error: payload})
}

var kindStatus = map[domain.ErrKind]int{
	domain.KindValidation:     http.StatusBadRequest,
	domain.KindAuth:           http.StatusUnauthorized,
	domain.KindForbidden:      http.StatusForbidden,
	domain.KindNotFound:       http.StatusNotFound,
	domain.KindConflict:       http.StatusConflict,
	domain.KindRateLimited:    http.StatusTooManyRequests,
	domain.KindInfrastructure: http.StatusServiceUnavailable,
}

// Unknown kinds, KindInternal included, land on 500.
func statusFromKind(kind domain.ErrKind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
