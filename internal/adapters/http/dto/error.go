package dto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/platform/logging"
)

// Problem detail locations. Body fields come from the decoded TodoRequest,
// path parameters from the route (the {id} in GET /{id}).
const (
	locationBody = "body."
	locationPath = "path."
)

// ErrorResponse represents an RFC 9457 Problem Details response.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail names one rejected input, such as "body.order" or "path.id".
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
	Value    any    `json:"value,omitempty"`
}

// PathParamError reports a route parameter that could not be parsed. It
// unwraps to domain.ErrValidation and is rendered with a "path." location.
type PathParamError struct {
	Param   string
	Value   string
	Message string
}

func (e *PathParamError) Error() string {
	return fmt.Sprintf("%s: path parameter %s: %s", domain.ErrValidation, e.Param, e.Message)
}

func (e *PathParamError) Unwrap() error {
	return domain.ErrValidation
}

// NewErrorResponse creates an RFC 9457 ErrorResponse for err. Server-side
// failures (5xx other than 502/504) carry only the status text as detail so
// storage internals never reach the client.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := domainErrorToStatus(err)

	resp := ErrorResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	if status == http.StatusInternalServerError {
		resp.Detail = "the todo could not be processed"
	}

	var perr *PathParamError
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &perr):
		resp.Errors = []ErrorDetail{{
			Location: locationPath + perr.Param,
			Message:  perr.Message,
			Value:    perr.Value,
		}}
	case errors.As(err, &verr):
		resp.Errors = validationFieldsToDetails(verr.Fields)
	}

	return resp
}

// WriteErrorResponse writes err as application/problem+json. 5xx responses
// are logged with the underlying error through the request-scoped logger.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)
	logger := logging.FromContext(r.Context())

	if resp.Status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "todo request failed",
			slog.Int("status", resp.Status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)

	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logger.ErrorContext(r.Context(), "failed to encode error response",
			slog.Any("error", encErr),
		)
	}
}

// domainErrorToStatus maps domain sentinel errors to HTTP status codes.
// ErrUnavailable comes from the remote store and maps to 502; a request that
// ran out of time maps to 504.
func domainErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// validationFieldsToDetails converts body field errors to ErrorDetail entries
// sorted by location.
func validationFieldsToDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{
			Location: locationBody + field,
			Message:  msg,
		})
	}
	sort.Slice(details, func(i, j int) bool {
		return details[i].Location < details[j].Location
	})
	return details
}
