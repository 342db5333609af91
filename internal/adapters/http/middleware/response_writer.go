// Package middleware holds the inbound HTTP middleware of the todo API,
// assembled by Stack in this order:
//
//	Recovery → RequestID → CorrelationID → OpenTelemetry → Prometheus → Logging → Timeout → handler
package middleware

import "net/http"

// recorder notes the status and size of the response written through it.
// Recovery, OpenTelemetry, Prometheus and Logging all read it.
type recorder struct {
	http.ResponseWriter
	status  int
	started bool
	bytes   int64
}

// record wraps w, or returns it as is when an outer middleware already
// did, so the stack shares a single recorder per request.
func record(w http.ResponseWriter) *recorder {
	if rec, ok := w.(*recorder); ok {
		return rec
	}
	return &recorder{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader keeps the first status; later calls are dropped.
func (rec *recorder) WriteHeader(code int) {
	if rec.started {
		return
	}
	rec.status = code
	rec.started = true
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	rec.started = true
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rec *recorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}
