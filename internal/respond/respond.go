// Package respond writes the JSON envelope shared by every API handler and
// maps domain errors onto HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-engagement/internal/apperrors"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

const maxBody = 1 << 20

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Envelope{Success: false, Error: msg})
}

// Status maps err onto an HTTP status and a message safe to return.
func Status(err error) (int, string) {
	var ce *apperrors.CustomError
	msg := ""
	if errors.As(err, &ce) {
		msg = ce.Message
	}
	pick := func(def string) string {
		if msg != "" {
			return msg
		}
		return def
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, pick(apperrors.ErrValidation.Error())
	case errors.Is(err, apperrors.ErrBadCredentials):
		return http.StatusUnauthorized, apperrors.ErrBadCredentials.Error()
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, apperrors.ErrForbidden.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, pick(apperrors.ErrNotFound.Error())
	case errors.Is(err, apperrors.ErrDuplicateUser):
		return http.StatusConflict, apperrors.ErrDuplicateUser.Error()
	case errors.Is(err, apperrors.ErrDuplicateActiveRequest):
		return http.StatusConflict, apperrors.ErrDuplicateActiveRequest.Error()
	case errors.Is(err, apperrors.ErrRemoteUnavailable), errors.Is(err, apperrors.ErrRepositoryUnavailable):
		return http.StatusServiceUnavailable, "data store unavailable, try again later"
	case errors.Is(err, apperrors.ErrTableNotFound), errors.Is(err, apperrors.ErrSchema):
		return http.StatusInternalServerError, "data store is misconfigured"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// Error writes err as a failed envelope. Server-side failures are logged at
// error level, caller mistakes at debug.
func Error(w http.ResponseWriter, logger *zap.SugaredLogger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		logger.Errorw("request failed", "status", status, "err", err)
	} else {
		logger.Debugw("request rejected", "status", status, "err", err)
	}
	Fail(w, status, msg)
}

// Decode reads a JSON body into v.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	return nil
}
