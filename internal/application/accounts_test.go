package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountServiceStatuses(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	service := NewAccountService(store)

	state := domain.NewState()
	state.RecordLogin(domain.Session{AccountID: "17300000002", EstablishedAt: testNow})
	state.LoginFailures["17300000001"] = domain.MaxLoginFailures
	state.RecordSnapshot(domain.UsageSnapshot{AccountID: "17300000002", BalanceCents: 100, CapturedAt: testNow})
	store.EXPECT().Load(mockAnyContext()).Return(state, nil)

	statuses, err := service.Statuses(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, domain.AccountID("17300000001"), statuses[0].AccountID)
	assert.Equal(t, domain.GateRestricted, statuses[0].Gate)
	assert.Nil(t, statuses[0].Snapshot)

	assert.Equal(t, domain.GateActive, statuses[1].Gate)
	assert.Equal(t, testNow, statuses[1].LastLogin)
	require.NotNil(t, statuses[1].Snapshot)
	assert.Equal(t, int64(100), statuses[1].Snapshot.BalanceCents)
}

func TestAccountServiceResetLoginFailures(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	service := NewAccountService(store)

	state := domain.NewState()
	state.LoginFailures[testAccount] = domain.MaxLoginFailures
	store.EXPECT().Load(mockAnyContext()).Return(state, nil)
	store.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(s domain.State) bool {
		return s.LoginFailureCount(testAccount) == 0
	})).Return(nil)

	require.NoError(t, service.ResetLoginFailures(context.Background(), testAccount))
}

func TestAccountServiceResetUnknownAccount(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	service := NewAccountService(store)

	store.EXPECT().Load(mockAnyContext()).Return(domain.NewState(), nil)

	err := service.ResetLoginFailures(context.Background(), testAccount)
	require.ErrorIs(t, err, domain.ErrUnknownAccount)
}

func TestAccountServiceResetSaveFailure(t *testing.T) {
	store := mocks.NewMockStateStore(t)
	service := NewAccountService(store)

	state := domain.NewState()
	state.LoginFailures[testAccount] = 2
	store.EXPECT().Load(mockAnyContext()).Return(state, nil)
	store.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("read-only"))

	err := service.ResetLoginFailures(context.Background(), testAccount)
	require.ErrorContains(t, err, "save state: read-only")
}

func TestCollectStatusesWithoutLogin(t *testing.T) {
	state := domain.NewState()
	state.LoginFailures[testAccount] = 1

	statuses := CollectStatuses(state)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].LastLogin.IsZero())
	assert.Equal(t, 1, statuses[0].Failures)
}
