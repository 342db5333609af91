package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/todo-backend/internal/adapters/http/dto"
)

// errHandlerPanic is what the client's 500 is built from. The panic value
// itself only reaches the log.
var errHandlerPanic = errors.New("todo handler panicked")

// Recovery turns a panic below it into a 500 problem response and an error
// log with the stack. http.ErrAbortHandler is re-raised so net/http drops
// the connection quietly. Once the response has started only the log is
// written.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := record(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				// RequestID runs inside Recovery, so its ID is only on the response.
				logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("route", routePattern(r)),
					slog.String("request_id", rec.Header().Get(headerRequestID)),
					slog.String("stack", string(debug.Stack())),
				)
				if !rec.started {
					dto.WriteErrorResponse(rec, r, errHandlerPanic)
				}
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
