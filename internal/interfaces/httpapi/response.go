package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/knight-arena/internal/domain/battle"
	"github.com/riskibarqy/knight-arena/internal/platform/i18n"
	"github.com/riskibarqy/knight-arena/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "knight-arena"
	maxBodyBytes     = 1 << 20
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	MessageKey string
}

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps err to the envelope. The top-level message is localized from
// the request language; the item message carries the error detail.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	detail := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		detail = i18n.T(ctx, i18n.MsgInternal)
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: i18n.T(ctx, mapped.MessageKey),
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: detail,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, errBodyTooLarge):
		return mappedError{http.StatusRequestEntityTooLarge, "requestTooLarge", "INVALID_ARGUMENT", i18n.MsgRequestBodyTooLarge}
	case errors.Is(err, errInvalidBody):
		return mappedError{http.StatusBadRequest, "parseError", "INVALID_ARGUMENT", i18n.MsgInvalidRequestBody}
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, battle.ErrEmptyTeam),
		errors.Is(err, battle.ErrDuplicateKnight),
		errors.Is(err, battle.ErrMissingStigma),
		errors.Is(err, battle.ErrMissingCategory),
		errors.Is(err, battle.ErrTeamTooLarge):
		return mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT", i18n.MsgInvalidArgument}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED", i18n.MsgUnauthenticated}
	case errors.Is(err, usecase.ErrAccountInactive):
		return mappedError{http.StatusForbidden, "accountInactive", "PERMISSION_DENIED", i18n.MsgAccountInactive}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{http.StatusForbidden, "forbidden", "PERMISSION_DENIED", i18n.MsgPermissionDenied}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{http.StatusNotFound, "notFound", "NOT_FOUND", i18n.MsgNotFound}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{http.StatusConflict, "conflict", "ALREADY_EXISTS", i18n.MsgAlreadyExists}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE", i18n.MsgServiceUnavailable}
	default:
		return mappedError{http.StatusInternalServerError, "internalError", "INTERNAL", i18n.MsgInternal}
	}
}

// decodeJSON reads a size-capped JSON body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return errors.Join(errInvalidBody, err)
	}

	decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.Join(errInvalidBody, err)
	}
	return nil
}
