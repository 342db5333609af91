package middleware

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
)

// Timeout bounds each request to d. The handler runs on its own goroutine
// with a context carrying the deadline, so a slow store call is cut off
// where it blocks. Its response is buffered and only copied out when it
// finishes in time. Past the deadline the client gets a 504 problem
// response and any later write from the handler fails with
// http.ErrHandlerTimeout.
//
// A panic in the handler is re-raised on the request goroutine so that
// Recovery still turns it into a 500.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &bufferedWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				tw.flushTo(w)
			case <-ctx.Done():
				// A handler that finished at the deadline still wins.
				select {
				case <-done:
					tw.flushTo(w)
					return
				default:
				}

				tw.abandon()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					dto.WriteErrorResponse(w, r, fmt.Errorf("request exceeded %s: %w", d, ctx.Err()))
				}
			}
		})
	}
}

// bufferedWriter holds a handler's response until Timeout decides whether
// it reaches the client.
type bufferedWriter struct {
	header http.Header

	mu        sync.Mutex
	body      bytes.Buffer
	status    int
	abandoned bool
}

// Header is only touched by the handler goroutine until it finishes.
func (bw *bufferedWriter) Header() http.Header {
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.abandoned || bw.status != 0 {
		return
	}
	bw.status = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if bw.status == 0 {
		bw.status = http.StatusOK
	}
	return bw.body.Write(b)
}

func (bw *bufferedWriter) abandon() {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	bw.abandoned = true
}

func (bw *bufferedWriter) flushTo(w http.ResponseWriter) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	maps.Copy(w.Header(), bw.header)
	if bw.status != 0 {
		w.WriteHeader(bw.status)
	}
	if bw.body.Len() > 0 {
		_, _ = w.Write(bw.body.Bytes())
	}
}
