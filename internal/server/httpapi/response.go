package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/server/models"
)

// envelope is the common response shape: {success, message?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type profileResponse struct {
	envelope
	User *models.Profile `json:"user"`
}

type filesResponse struct {
	envelope
	Files []models.FileInfo `json:"files"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func ok() envelope {
	return envelope{Success: true}
}

func failure(msg string) envelope {
	return envelope{Success: false, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse maps a service error to a status code and public message.
// Anything unrecognised is an internal fault and gets an opaque message.
func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrAntiForgery):
		return http.StatusBadRequest, common.ErrAntiForgery.Error()
	case errors.Is(err, common.ErrValidation):
		var v *validationError
		if errors.As(err, &v) {
			return http.StatusBadRequest, v.msg
		}
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, common.ErrConflict):
		return http.StatusBadRequest, common.ErrConflict.Error()
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrNoSession):
		return http.StatusUnauthorized, common.ErrNoSession.Error()
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrInvalidToken.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "user not found"
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorResponse(err)
	if status == http.StatusInternalServerError {
		s.log(r.Context()).Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, failure(msg))
}

// validationError carries a handler-level validation message.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return common.ErrValidation }

func badRequest(msg string) error {
	return &validationError{msg: msg}
}

// validationMessage strips wrapping added above the service layer so the
// caller sees "missing or malformed fields: ..." and not internal context.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, common.ErrValidation.Error()); i >= 0 {
		return msg[i:]
	}
	return common.ErrValidation.Error()
}
