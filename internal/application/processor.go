package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/logger"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"go.uber.org/zap"
)

type ProcessorOptions struct {
	IncludeAddOnPackages bool
}

// Processor runs the per-account pipeline: login gate, login, usage fetch
// with one reconnect on session expiry, snapshot reconciliation and report
// assembly.
type Processor struct {
	carrier ports.CarrierClient
	store   ports.StateStore
	clock   ports.Clock
	metrics ports.MetricsRecorder
	opts    ProcessorOptions
}

func NewProcessor(carrier ports.CarrierClient, store ports.StateStore, clock ports.Clock, metrics ports.MetricsRecorder, opts ProcessorOptions) *Processor {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}

	return &Processor{
		carrier: carrier,
		store:   store,
		clock:   clock,
		metrics: metrics,
		opts:    opts,
	}
}

// Process handles one account and returns its report fragment. state is
// updated in place; on login failure it is also persisted immediately.
func (p *Processor) Process(ctx context.Context, credential domain.Credential, state *domain.State) domain.Fragment {
	id := credential.ID
	log := logger.FromContext(ctx).With(zap.String("account", string(id)))

	if failures := state.LoginFailureCount(id); domain.LoginGate(failures) == domain.GateRestricted {
		log.Warn("login restricted", zap.Int("failures", failures))
		p.metrics.ObserveLoginFailures(id, failures)
		return newFragment(domain.FragmentLoginRestricted, id,
			fmt.Sprintf("登录受限：%s已连续失败%d次，为避免风控暂不执行", id, failures))
	}

	log.Info("logging in")
	session, err := p.login(ctx, credential, state)
	if err != nil {
		failures := p.recordLoginFailure(ctx, id, state)
		log.Warn("login failed", zap.Error(err), zap.Int("failures", failures))
		return newFragment(domain.FragmentLoginFailed, id,
			fmt.Sprintf("登录失败：%s，已连续失败%d次", id, failures))
	}
	log.Info("login succeeded")

	usage, err := p.carrier.FetchUsage(ctx, session)
	if errors.Is(err, domain.ErrSessionExpired) {
		log.Info("session expired, logging in again")
		session, err = p.login(ctx, credential, state)
		if err != nil {
			failures := p.recordLoginFailure(ctx, id, state)
			log.Warn("reconnect failed", zap.Error(err), zap.Int("failures", failures))
			return newFragment(domain.FragmentReconnectFailed, id,
				fmt.Sprintf("重新登录失败，无法获取信息：%s", id))
		}
		usage, err = p.carrier.FetchUsage(ctx, session)
	}
	if err != nil {
		log.Warn("fetch usage failed", zap.Error(err))
		return newFragment(domain.FragmentFetchFailed, id,
			fmt.Sprintf("获取信息失败：%s - %v", id, err))
	}

	snapshot, err := domain.Summarize(id, usage, p.clock.Now())
	if err != nil {
		log.Warn("summarize usage failed", zap.Error(err))
		return newFragment(domain.FragmentDataError, id,
			fmt.Sprintf("处理数据出错：%s - %v", id, err))
	}

	prior, hasPrior := state.PriorSnapshot(id)
	state.RecordSnapshot(snapshot)
	p.metrics.ObserveSnapshot(snapshot)

	report := UsageReport{Snapshot: snapshot}
	if hasPrior {
		if delta, ok := domain.ComputeDelta(prior, snapshot); ok {
			report.Delta = &delta
		} else {
			log.Debug("no comparable baseline for delta")
		}
	}

	if p.opts.IncludeAddOnPackages {
		packages, err := p.carrier.FetchAddOnPackages(ctx, session)
		if err != nil {
			log.Warn("fetch add-on packages failed", zap.Error(err))
		} else {
			report.Packages = packages
		}
	}

	log.Info("account processed")
	return newFragment(domain.FragmentReport, id, report.Format())
}

func (p *Processor) login(ctx context.Context, credential domain.Credential, state *domain.State) (domain.Session, error) {
	session, err := p.carrier.Login(ctx, credential)
	if err != nil {
		return domain.Session{}, err
	}

	if session.AccountID != "" && !session.BelongsTo(credential.ID) {
		return domain.Session{}, fmt.Errorf("%w: session issued for %s", domain.ErrLoginRejected, session.AccountID)
	}

	session.AccountID = credential.ID
	session.Secret = credential.Secret
	session.EstablishedAt = p.clock.Now()
	state.RecordLogin(session)
	p.metrics.ObserveLoginFailures(credential.ID, 0)

	return session, nil
}

func (p *Processor) recordLoginFailure(ctx context.Context, id domain.AccountID, state *domain.State) int {
	failures := state.RecordLoginFailure(id)
	p.metrics.ObserveLoginFailures(id, failures)

	if err := p.store.Save(ctx, *state); err != nil {
		logger.FromContext(ctx).Error("persist login failure counter",
			zap.String("account", string(id)), zap.Error(err))
	}

	return failures
}

func newFragment(kind domain.FragmentKind, id domain.AccountID, text string) domain.Fragment {
	return domain.Fragment{Kind: kind, AccountID: id, Text: text}
}
