package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// parseID extracts an int64 path parameter from the chi URL params.
func parseID(r *http.Request, param string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &dto.PathParamError{Param: param, Value: raw, Message: "must be an integer"}
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// errTrailingData marks a body holding more than one JSON value.
var errTrailingData = errors.New("trailing data after JSON value")

// decodeJSONBody decodes the request body as a single JSON value into dst.
// The body is limited to maxJSONBodyBytes. An empty body leaves dst
// untouched. On failure it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err == nil {
		// Anything but whitespace after the value is rejected.
		if extra := dec.Decode(&json.RawMessage{}); !errors.Is(extra, io.EOF) {
			err = errTrailingData
		}
	}
	if err == nil {
		return true
	}

	dto.WriteErrorResponse(w, r, bodyError(err))
	return false
}

// bodyError converts a JSON decode failure into a validation error, naming
// the offending field when the decoder reports one.
func bodyError(err error) *domain.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &domain.ValidationError{
			Fields: map[string]string{typeErr.Field: "must be " + jsonKind(typeErr.Type.Kind().String())},
		}
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &domain.ValidationError{
			Fields: map[string]string{"body": "exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes"},
		}
	}

	if errors.Is(err, errTrailingData) {
		return &domain.ValidationError{
			Fields: map[string]string{"body": "must contain a single JSON object"},
		}
	}

	return &domain.ValidationError{
		Fields: map[string]string{"body": "invalid JSON"},
	}
}

// jsonKind names a Go kind the way a JSON client would, with its article.
func jsonKind(kind string) string {
	switch kind {
	case "int", "int8", "int16", "int32", "int64":
		return "an integer"
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	default:
		return "a valid " + kind
	}
}
