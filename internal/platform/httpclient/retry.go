package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/jsamuelsen11/todo-backend/internal/platform/logging"
)

// retryJitter spreads each backoff interval by ±25%.
const retryJitter = 0.25

// retryPolicy is the subset of config.RetryConfig the client keeps.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

func (p retryPolicy) backOff() *backoff.ExponentialBackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     p.initialInterval,
		RandomizationFactor: retryJitter,
		Multiplier:          p.multiplier,
		MaxInterval:         p.maxInterval,
	}
}

// statusError is a retryable upstream status. It carries the response so the
// final attempt can hand it back to the caller unread.
type statusError struct {
	resp    *http.Response
	service string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.resp.StatusCode, e.service)
}

// doWithRetry sends req until it gets a non-retryable answer or runs out of
// attempts. GET /{id}, GET / and DELETE / upstream are retried; POST / gets a
// single attempt so a lost response cannot create a second todo.
//
// When every attempt ends in a retryable status, the last response comes back
// with its body open alongside a *statusError. Earlier responses are drained
// before the next attempt.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if c.retry.maxAttempts <= 0 {
		return nil, fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return nil, err
	}

	tries := uint(c.retry.maxAttempts)
	if !isIdempotent(req.Method) {
		tries = 1
	}

	attempt := 0
	send := func() (*http.Response, error) {
		attempt++
		resetRequestBody(req, body)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if !isRetryable(err) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			return resp, &statusError{resp: resp, service: c.serviceName}
		}
		return resp, nil
	}

	notify := func(err error, next time.Duration) {
		var se *statusError
		if errors.As(err, &se) {
			drainResponseBody(se.resp)
		}
		logging.FromContext(ctx).WarnContext(ctx, "retrying upstream todo request",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("peer_service", c.serviceName),
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", int(tries)),
			slog.Duration("backoff", next),
			slog.Any("error", err),
		)
	}

	resp, err := backoff.Retry(ctx, send,
		backoff.WithBackOff(c.retry.backOff()),
		backoff.WithMaxTries(tries),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)

	// Only the final retryable response reaches the caller. One cut short by
	// cancellation is closed here; closing a drained body again is harmless.
	var se *statusError
	if err != nil && resp != nil && (!errors.As(err, &se) || se.resp != resp) {
		drainResponseBody(resp)
		return nil, err
	}
	return resp, err
}

func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

// resetRequestBody rewinds the todo payload before each attempt.
func resetRequestBody(req *http.Request, body []byte) {
	if body == nil {
		return
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	req.ContentLength = int64(len(body))
}

// drainResponseBody lets the connection be reused by the next attempt.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// isRetryable reports whether a transport error is worth another attempt.
// Anything but the caller giving up is.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus covers upstream overload: 429 and every 5xx.
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions,
		http.MethodPut, http.MethodDelete, http.MethodTrace:
		return true
	default:
		return false
	}
}
