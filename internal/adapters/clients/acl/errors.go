// Package acl implements the remote todo store: an anti-corruption layer that
// speaks the todo-backend HTTP contract to an upstream instance and turns its
// payloads and failures into domain values. Payload translation lives in
// acl/todo; status mapping lives here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
)

// maxProblemBytes caps how much of an upstream error body is read.
const maxProblemBytes = 64 << 10

// upstreamProblem is the part of an upstream problem+json body the store
// uses. The upstream writes the same shape this service does.
type upstreamProblem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// sentinelFor maps upstream statuses onto the domain errors the todo handlers
// already know how to answer. Refused credentials and throttling leave the
// store unable to serve, the same as a 5xx.
func sentinelFor(status int) error {
	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	case status == http.StatusConflict:
		return domain.ErrConflict
	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return domain.ErrUnavailable
	default:
		return nil
	}
}

// TranslateHTTPError turns a non-success upstream answer into a domain error.
// A problem+json detail, when present, prefixes the message. A 400 or 422
// listing field errors becomes a *domain.ValidationError keyed by the bare
// field or path parameter name.
func TranslateHTTPError(resp *http.Response) error {
	p := readProblem(resp)

	sentinel := sentinelFor(resp.StatusCode)
	if sentinel == domain.ErrValidation && len(p.Errors) > 0 {
		fields := make(map[string]string, len(p.Errors))
		for _, e := range p.Errors {
			name := strings.TrimPrefix(strings.TrimPrefix(e.Location, "body."), "path.")
			fields[name] = e.Message
		}
		return &domain.ValidationError{Fields: fields}
	}

	detail := p.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	if sentinel == nil {
		return fmt.Errorf("todo upstream answered %d: %s", resp.StatusCode, detail)
	}
	return fmt.Errorf("%s: %w", detail, sentinel)
}

// readProblem decodes a problem+json body. Anything else, including a body
// that fails to decode, yields the zero value.
func readProblem(resp *http.Response) upstreamProblem {
	var p upstreamProblem
	if resp.Body == nil {
		return p
	}
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mt != "application/problem+json" {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return upstreamProblem{}
	}
	return p
}
