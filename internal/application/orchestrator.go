package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/logger"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"go.uber.org/zap"
)

// AccountProcessor produces one fragment per account and mutates state.
type AccountProcessor interface {
	Process(ctx context.Context, credential domain.Credential, state *domain.State) domain.Fragment
}

type Orchestrator struct {
	store     ports.StateStore
	processor AccountProcessor
	notifiers ports.NotifierFactory
	metrics   ports.MetricsRecorder
	batchSize int
}

func NewOrchestrator(store ports.StateStore, processor AccountProcessor, notifiers ports.NotifierFactory, metrics ports.MetricsRecorder, batchSize int) *Orchestrator {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if batchSize < 1 {
		batchSize = 1
	}

	return &Orchestrator{
		store:     store,
		processor: processor,
		notifiers: notifiers,
		metrics:   metrics,
		batchSize: batchSize,
	}
}

// Run processes every valid account in accountSource sequentially, sends
// the report in batches and persists state once at the end. Only a missing
// account source, zero valid accounts, or a state load/save failure return
// an error.
func (o *Orchestrator) Run(ctx context.Context, accountSource string) (*Report, error) {
	log := logger.FromContext(ctx)
	report := &Report{}

	if strings.TrimSpace(accountSource) == "" {
		return report, domain.ErrNoAccountSource
	}

	state, err := o.store.Load(ctx)
	if err != nil {
		return report, fmt.Errorf("load state: %w", err)
	}
	state.Normalize()

	credentials, rejected := domain.ParseCredentials(accountSource)
	for _, entry := range rejected {
		log.Warn("malformed account entry", zap.String("entry", maskEntry(entry.Raw)), zap.String("reason", entry.Reason))
		o.add(ctx, report, domain.Fragment{
			Kind: domain.FragmentMalformedEntry,
			Text: fmt.Sprintf("账号格式错误：%s，应为11位号码+6位密码", maskEntry(entry.Raw)),
		})
	}

	if len(credentials) == 0 {
		return report, domain.ErrNoValidAccounts
	}
	log.Info("accounts parsed", zap.Int("valid", len(credentials)), zap.Int("rejected", len(rejected)))

	for _, credential := range credentials {
		o.add(ctx, report, o.processor.Process(ctx, credential, &state))
	}

	o.dispatch(ctx, state.PushConfig, report.Texts())

	if err := o.metrics.Flush(ctx); err != nil {
		log.Error("write metrics", zap.Error(err))
	}

	if err := o.store.Save(ctx, state); err != nil {
		return report, fmt.Errorf("save state: %w", err)
	}

	return report, nil
}

func (o *Orchestrator) add(ctx context.Context, report *Report, fragment domain.Fragment) {
	logger.FromContext(ctx).Info("report fragment",
		zap.String("kind", string(fragment.Kind)),
		zap.String("account", string(fragment.AccountID)),
		zap.String("text", fragment.Text))
	o.metrics.ObserveFragment(fragment)
	report.Add(fragment)
}

func (o *Orchestrator) dispatch(ctx context.Context, pushConfig domain.PushConfig, texts []string) {
	log := logger.FromContext(ctx)
	if len(texts) == 0 {
		return
	}

	notifier, err := o.notifiers(pushConfig)
	if err != nil {
		log.Error("build notifier", zap.Error(err))
		o.metrics.ObserveNotification(err)
		return
	}

	batches := Partition(texts, o.batchSize)
	for i, batch := range batches {
		title := BatchTitle(i+1, len(batches))
		err := notifier.Send(ctx, title, BatchBody(batch))
		o.metrics.ObserveNotification(err)
		if err != nil {
			log.Error("send notification", zap.String("title", title), zap.Error(err))
			continue
		}
		log.Info("notification sent", zap.String("title", title), zap.Int("fragments", len(batch)))
	}
}

// maskEntry hides everything after the account id part of a raw entry so
// secrets do not leak into notifications.
func maskEntry(raw string) string {
	runes := []rune(raw)
	const visible = 11
	if len(runes) <= visible {
		return raw
	}
	return string(runes[:visible]) + strings.Repeat("*", len(runes)-visible)
}
