// Package storage holds cross-cutting wrappers shared by the todo store
// adapters in its subpackages.
package storage

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/todo-backend/internal/domain"
	"github.com/jsamuelsen11/todo-backend/internal/domain/todo"
	"github.com/jsamuelsen11/todo-backend/internal/platform/metrics"
	"github.com/jsamuelsen11/todo-backend/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoRepository = (*Instrumented)(nil)

// Operation label values.
const (
	opCreate    = "create"
	opFindByID  = "find_by_id"
	opFindAll   = "find_all"
	opDeleteAll = "delete_all"
)

// Observer receives one observation per repository call.
// *metrics.Metrics and *telemetry.Metrics satisfy it.
type Observer interface {
	ObserveStoreOperation(driver, operation, result string, elapsed time.Duration)
}

// Instrumented wraps a [ports.TodoRepository], recording a Prometheus
// observation and an OpenTelemetry span for every call.
type Instrumented struct {
	next     ports.TodoRepository
	driver   string
	observers []Observer
	tracer   trace.Tracer
}

// Instrument wraps next. The driver names the backing store in metric labels
// and span attributes. Nil observers are dropped; with none left only spans
// are recorded.
func Instrument(next ports.TodoRepository, driver string, observers ...Observer) *Instrumented {
	kept := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	return &Instrumented{
		next:      next,
		driver:    driver,
		observers: kept,
		tracer:    otel.GetTracerProvider().Tracer("storage"),
	}
}

// Create records and delegates.
func (r *Instrumented) Create(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	ctx, done := r.start(ctx, opCreate)
	created, err := r.next.Create(ctx, t)
	done(err)
	return created, err
}

// FindByID records and delegates. Not found is a result, not a span error.
func (r *Instrumented) FindByID(ctx context.Context, id int64) (*todo.Todo, error) {
	ctx, done := r.start(ctx, opFindByID, attribute.Int64("todo.id", id))
	found, err := r.next.FindByID(ctx, id)
	done(err)
	return found, err
}

// FindAll records and delegates.
func (r *Instrumented) FindAll(ctx context.Context) ([]todo.Todo, error) {
	ctx, done := r.start(ctx, opFindAll)
	todos, err := r.next.FindAll(ctx)
	done(err)
	return todos, err
}

// DeleteAll records and delegates.
func (r *Instrumented) DeleteAll(ctx context.Context) error {
	ctx, done := r.start(ctx, opDeleteAll)
	err := r.next.DeleteAll(ctx)
	done(err)
	return err
}

// start opens a span and returns a func that closes it and records the
// observation for the given outcome.
func (r *Instrumented) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	begin := time.Now()

	attrs = append(attrs,
		attribute.String("db.system", r.driver),
		attribute.String("db.operation", op),
	)
	ctx, span := r.tracer.Start(ctx, "store."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error) {
		res := result(err)
		span.SetAttributes(attribute.String("result", res))
		if res == metrics.ResultError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		elapsed := time.Since(begin)
		for _, o := range r.observers {
			o.ObserveStoreOperation(r.driver, op, res, elapsed)
		}
	}
}

func result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, domain.ErrNotFound):
		return metrics.ResultNotFound
	default:
		return metrics.ResultError
	}
}
