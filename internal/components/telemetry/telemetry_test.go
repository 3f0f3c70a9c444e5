package telemetry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopedAPI(t *testing.T) {
	rec := &RecordingAPI{}
	scoped := NewScopedAPI("outer", NewScopedAPI("inner", rec))

	err := errors.New("boom")
	scoped.ReportBroken("component", err)
	scoped.ReportWarning("component", 1, 2)
	scoped.ReportDebug("hello")
	scoped.ReportCount("component", 7)

	require.Equal(t, []Report{
		{Kind: KIND_BROKEN, Id: "inner: outer: component", Params: []any{err}},
		{Kind: KIND_WARNING, Id: "inner: outer: component", Params: []any{1, 2}},
		{Kind: KIND_DEBUG, Id: "inner: outer: hello"},
		{Kind: KIND_COUNT, Id: "inner: outer: component", Count: 7},
	}, rec.Reports(""))
}

func TestRecordingAPIConcurrent(t *testing.T) {
	rec := &RecordingAPI{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rec.ReportWarning("w")
				rec.ReportCount("c", int64(j))
			}
		}()
	}
	wg.Wait()

	require.Len(t, rec.Reports(KIND_WARNING), 800)
	require.Len(t, rec.Reports(KIND_COUNT), 800)
	require.Len(t, rec.Reports(""), 1600)
	require.Empty(t, rec.Reports(KIND_BROKEN))
}

func findMetric(t testing.TB, rm metricdata.ResourceMetrics, name string) metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s was not recorded", name)
	return metricdata.Metrics{}
}

func TestOtelAPI(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		provider.Shutdown(context.Background())
	})
	otel.SetMeterProvider(provider)

	rec := &RecordingAPI{}
	api, err := NewOtelAPI(rec)
	require.NoError(t, err)

	api.ReportBroken("collector.reviews", errors.New("fail"))
	api.ReportBroken("collector.reviews", errors.New("fail again"))
	api.ReportWarning("collector.reviews")
	api.ReportDebug("not a metric")
	api.ReportCount("collector.reviews", 20)
	api.ReportCount("collector.reviews", 42)

	// every report still reaches the inner api
	require.Len(t, rec.Reports(""), 6)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	idSet := attribute.NewSet(attribute.String("id", "collector.reviews"))

	broken, ok := findMetric(t, rm, "report.broken").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, broken.DataPoints, 1)
	require.Equal(t, int64(2), broken.DataPoints[0].Value)
	require.True(t, idSet.Equals(&broken.DataPoints[0].Attributes))

	warning, ok := findMetric(t, rm, "report.warning").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, warning.DataPoints, 1)
	require.Equal(t, int64(1), warning.DataPoints[0].Value)

	count, ok := findMetric(t, rm, "report.count").Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, count.DataPoints, 1)
	require.Equal(t, int64(42), count.DataPoints[0].Value)
}

func TestInstrumentResty(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() {
		provider.Shutdown(context.Background())
	})
	otel.SetTracerProvider(provider)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	rec := &RecordingAPI{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, rec)

	res, err := client.R().Get("/page")
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())

	res, err = client.R().Get("/missing")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode())

	debug := rec.Reports(KIND_DEBUG)
	require.Len(t, debug, 4)
	require.Equal(t, report_resty_request, debug[0].Id)
	require.Equal(t, report_resty_response, debug[1].Id)
	// request ids pair every request with its response
	require.Equal(t, debug[0].Params[0], debug[1].Params[0])
	require.Equal(t, debug[2].Params[0], debug[3].Params[0])
	require.NotEqual(t, debug[0].Params[0], debug[2].Params[0])

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "http GET", spans[0].Name())
	require.Equal(t, codes.Unset, spans[0].Status().Code)
	require.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseUrl := server.URL
	server.Close()

	rec := &RecordingAPI{}
	client := resty.New().SetBaseURL(baseUrl)
	InstrumentResty(client, rec)

	_, err := client.R().Get("/page")
	require.Error(t, err)

	broken := rec.Reports(KIND_BROKEN)
	require.Len(t, broken, 1)
	require.Equal(t, report_resty_response, broken[0].Id)
}

func TestSetup(t *testing.T) {
	testCases := []struct {
		name   string
		config Config
	}{
		{
			name: "http",
			config: Config{Otlp: OtlpConfig{
				Traces:  OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:4318/v1/traces"},
				Metrics: OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:4318/v1/metrics"},
			}},
		},
		{
			name: "grpc",
			config: Config{Otlp: OtlpConfig{
				Traces: OtlpConnConfig{
					GrpcEndpoint: "http://127.0.0.1:4317",
					Headers:      map[string]string{"authorization": "Bearer test"},
				},
				Metrics: OtlpConnConfig{GrpcEndpoint: "http://127.0.0.1:4317"},
			}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			tel, err := Setup(context.Background(), "trustpilot-collector-test", test.config)
			require.NoError(t, err)
			require.NotNil(t, tel.TracerProvider)
			require.NotNil(t, tel.MeterProvider)

			// nothing listens on the endpoints, flushing on shutdown is allowed to fail
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			tel.Shutdown(ctx)
		})
	}
}

func TestShutdownEmpty(t *testing.T) {
	require.NoError(t, Telemetry{}.Shutdown(context.Background()))
}

func TestSetupSkipsUnconfiguredSignals(t *testing.T) {
	tel, err := Setup(context.Background(), "trustpilot-collector-test", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))

	tel, err = Setup(context.Background(), "trustpilot-collector-test", Config{Otlp: OtlpConfig{
		Traces: OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:4318/v1/traces"},
	}})
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	tel.Shutdown(ctx)
}
