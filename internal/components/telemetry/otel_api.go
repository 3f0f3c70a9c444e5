package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OtelAPI forwards every report to an inner API and additionally records counts and
// breakages on the global otel meter provider.
type OtelAPI struct {
	inner   API
	counts  metric.Int64Gauge
	broken  metric.Int64Counter
	warning metric.Int64Counter
}

// NewOtelAPI creates an OtelAPI, instruments are created from the meter provider that is
// registered at the time of the call.
func NewOtelAPI(inner API) (OtelAPI, error) {
	meter := otel.Meter("trustpilot-collector")

	counts, err := meter.Int64Gauge("report.count")
	if err != nil {
		return OtelAPI{}, err
	}
	broken, err := meter.Int64Counter("report.broken")
	if err != nil {
		return OtelAPI{}, err
	}
	warning, err := meter.Int64Counter("report.warning")
	if err != nil {
		return OtelAPI{}, err
	}

	return OtelAPI{
		inner:   inner,
		counts:  counts,
		broken:  broken,
		warning: warning,
	}, nil
}

func idAttr(id string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("id", id))
}

func (o OtelAPI) ReportBroken(id string, params ...any) {
	o.broken.Add(context.Background(), 1, idAttr(id))
	o.inner.ReportBroken(id, params...)
}

func (o OtelAPI) ReportWarning(id string, params ...any) {
	o.warning.Add(context.Background(), 1, idAttr(id))
	o.inner.ReportWarning(id, params...)
}

func (o OtelAPI) ReportDebug(msg string, params ...any) {
	o.inner.ReportDebug(msg, params...)
}

func (o OtelAPI) ReportCount(id string, count int64) {
	o.counts.Record(context.Background(), count, idAttr(id))
	o.inner.ReportCount(id, count)
}
