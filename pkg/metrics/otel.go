package metrics

import (
	"context"
	"net/http"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OtelClient is a Client backed by an OTEL meter. Instruments are created
// lazily on first use of a metric name: int64 values become counters,
// float64 values become histograms.
type OtelClient struct {
	meter    metric.Meter
	shutdown func(ctx context.Context) error

	mu         sync.Mutex
	counters   map[string]metric.Int64Counter
	histograms map[string]metric.Float64Histogram
}

func NewOtelClient(meter metric.Meter, shutdown func(ctx context.Context) error) *OtelClient {
	return &OtelClient{
		meter:      meter,
		shutdown:   shutdown,
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (c *OtelClient) Inc(ctx context.Context, key string, value any, attributes ...attribute.KeyValue) {
	switch v := value.(type) {
	case int64:
		counter, err := c.counter(key)
		if err != nil {
			return
		}

		counter.Add(ctx, v, metric.WithAttributes(attributes...))
	case int:
		counter, err := c.counter(key)
		if err != nil {
			return
		}

		counter.Add(ctx, int64(v), metric.WithAttributes(attributes...))
	case float64:
		histogram, err := c.histogram(key)
		if err != nil {
			return
		}

		histogram.Record(ctx, v, metric.WithAttributes(attributes...))
	}
}

// Handler is a placeholder: samples are pushed over OTLP, not scraped.
func (c *OtelClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *OtelClient) Shutdown(ctx context.Context) error {
	if c.shutdown == nil {
		return nil
	}

	return c.shutdown(ctx)
}

func (c *OtelClient) counter(name string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[name]; ok {
		return counter, nil
	}

	counter, err := RegisterInt64Counter(c.meter, Descriptor{Unit: "1"}, name)
	if err != nil {
		return nil, err
	}

	c.counters[name] = counter

	return counter, nil
}

func (c *OtelClient) histogram(name string) (metric.Float64Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[name]; ok {
		return histogram, nil
	}

	histogram, err := RegisterFloat64Histogram(c.meter, Descriptor{Unit: "s"}, name)
	if err != nil {
		return nil, err
	}

	c.histograms[name] = histogram

	return histogram, nil
}
