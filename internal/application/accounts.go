package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/logger"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"go.uber.org/zap"
)

// AccountStatus is the persisted view of one account for status output.
type AccountStatus struct {
	AccountID domain.AccountID
	Failures  int
	Gate      domain.GateState
	LastLogin time.Time
	Snapshot  *domain.UsageSnapshot
}

// AccountService answers queries over the state document outside of a run.
type AccountService struct {
	store ports.StateStore
}

func NewAccountService(store ports.StateStore) *AccountService {
	return &AccountService{store: store}
}

func (s *AccountService) Statuses(ctx context.Context) ([]AccountStatus, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	state.Normalize()

	return CollectStatuses(state), nil
}

// ResetLoginFailures clears the failure counter of id so the next run logs
// in again.
func (s *AccountService) ResetLoginFailures(ctx context.Context, id domain.AccountID) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	state.Normalize()

	if !containsAccount(state.AccountIDs(), id) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownAccount, id)
	}

	previous := state.LoginFailureCount(id)
	state.ResetLoginFailures(id)
	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	logger.FromContext(ctx).Info("login failure counter reset",
		zap.String("account", string(id)), zap.Int("previous", previous))
	return nil
}

// CollectStatuses lists every account known to state, sorted by id.
func CollectStatuses(state domain.State) []AccountStatus {
	ids := state.AccountIDs()
	statuses := make([]AccountStatus, 0, len(ids))
	for _, id := range ids {
		failures := state.LoginFailureCount(id)
		status := AccountStatus{
			AccountID: id,
			Failures:  failures,
			Gate:      domain.LoginGate(failures),
			LastLogin: state.Sessions[id].EstablishedAt,
		}
		if snapshot, ok := state.PriorSnapshot(id); ok {
			status.Snapshot = &snapshot
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func containsAccount(ids []domain.AccountID, id domain.AccountID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
