package metrics

import "context"

// noopMeter 空实现，Enabled=false 时使用
type noopMeter struct{}

// Discard 返回一个空操作的 Meter
func Discard() Meter {
	return &noopMeter{}
}

func (m *noopMeter) Counter(name string, desc string, opts ...MetricOption) (Counter, error) {
	return &noopCounter{}, nil
}

func (m *noopMeter) Histogram(name string, desc string, opts ...MetricOption) (Histogram, error) {
	return &noopHistogram{}, nil
}

func (m *noopMeter) Shutdown(ctx context.Context) error { return nil }

type noopCounter struct{}

func (c *noopCounter) Inc(ctx context.Context, labels ...Label)            {}
func (c *noopCounter) Add(ctx context.Context, val int64, labels ...Label) {}

type noopHistogram struct{}

func (h *noopHistogram) Record(ctx context.Context, val float64, labels ...Label) {}
