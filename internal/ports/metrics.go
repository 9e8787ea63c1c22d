package ports

import (
	"context"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

type MetricsRecorder interface {
	ObserveSnapshot(snapshot domain.UsageSnapshot)
	ObserveLoginFailures(id domain.AccountID, count int)
	ObserveFragment(fragment domain.Fragment)
	ObserveNotification(err error)
	Flush(ctx context.Context) error
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) ObserveSnapshot(domain.UsageSnapshot) {}

func (NopMetrics) ObserveLoginFailures(domain.AccountID, int) {}

func (NopMetrics) ObserveFragment(domain.Fragment) {}

func (NopMetrics) ObserveNotification(error) {}

func (NopMetrics) Flush(context.Context) error {
	return nil
}
