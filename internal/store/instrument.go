package store

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrument traces and counts store operations through the global OpenTelemetry providers.
type Instrument struct {
	backend string
	tracer  trace.Tracer
	ops     metric.Int64Counter
}

func NewInstrument(backend string) *Instrument {
	name := "tracker/internal/store/" + backend
	ops, err := otel.Meter(name).Int64Counter("store.operations",
		metric.WithDescription("Number of store operations by backend, operation and outcome."))
	if err != nil {
		otel.Handle(err)
	}

	return &Instrument{
		backend: backend,
		tracer:  otel.Tracer(name),
		ops:     ops,
	}
}

// Start opens a span for op. The returned func must be deferred with a pointer to the
// operation's named error result.
func (i *Instrument) Start(ctx context.Context, op string) (context.Context, func(*error)) {
	ctx, span := i.tracer.Start(ctx, op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("db.system", i.backend)))

	return ctx, func(errp *error) {
		failed := errp != nil && *errp != nil
		if failed {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()

		if i.ops != nil {
			i.ops.Add(ctx, 1, metric.WithAttributes(
				attribute.String("backend", i.backend),
				attribute.String("op", op),
				attribute.Bool("error", failed),
			))
		}
	}
}
