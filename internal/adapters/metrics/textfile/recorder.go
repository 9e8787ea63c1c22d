package textfile

import (
	"context"
	"fmt"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "telemon"

// Recorder collects run metrics in a private registry and writes them in the
// node_exporter textfile format on Flush. An empty path disables the write.
type Recorder struct {
	path     string
	registry *prometheus.Registry

	balance       *prometheus.GaugeVec
	commonUsed    *prometheus.GaugeVec
	commonTotal   *prometheus.GaugeVec
	loginFailures *prometheus.GaugeVec
	fragments     *prometheus.CounterVec
	notifications *prometheus.CounterVec
	lastRun       prometheus.Gauge
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

func NewRecorder(path string) *Recorder {
	r := &Recorder{
		path:     path,
		registry: prometheus.NewRegistry(),

		balance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_yuan",
			Help:      "Account balance at the last successful query",
		}, []string{"account"}),

		commonUsed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "common_data_used_mb",
			Help:      "Common data used this month",
		}, []string{"account"}),

		commonTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "common_data_total_mb",
			Help:      "Common data allowance this month",
		}, []string{"account"}),

		loginFailures: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "login_failures",
			Help:      "Consecutive failed logins",
		}, []string{"account"}),

		fragments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_total",
			Help:      "Report fragments produced by kind",
		}, []string{"kind"}),

		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification batches by delivery result",
		}, []string{"result"}),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}

	r.registry.MustRegister(
		r.balance, r.commonUsed, r.commonTotal,
		r.loginFailures, r.fragments, r.notifications,
		r.lastRun,
	)

	return r
}

func (r *Recorder) ObserveSnapshot(snapshot domain.UsageSnapshot) {
	account := string(snapshot.AccountID)
	r.balance.WithLabelValues(account).Set(float64(snapshot.BalanceCents) / 100)
	r.commonUsed.WithLabelValues(account).Set(snapshot.CommonDataUsedMB)
	r.commonTotal.WithLabelValues(account).Set(snapshot.CommonDataTotalMB)
}

func (r *Recorder) ObserveLoginFailures(id domain.AccountID, count int) {
	r.loginFailures.WithLabelValues(string(id)).Set(float64(count))
}

func (r *Recorder) ObserveFragment(fragment domain.Fragment) {
	r.fragments.WithLabelValues(string(fragment.Kind)).Inc()
}

func (r *Recorder) ObserveNotification(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.notifications.WithLabelValues(result).Inc()
}

func (r *Recorder) Flush(ctx context.Context) error {
	if r.path == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.lastRun.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
