package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/bnema/telecom-usage-monitor/internal/ports"
	"github.com/bnema/telecom-usage-monitor/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAccount = domain.AccountID("17300000000")

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

func testCredential() domain.Credential {
	return domain.Credential{ID: testAccount, Secret: "123456"}
}

func testUsage() domain.UsageData {
	balance := "50.00"
	return domain.UsageData{
		Balance:    &balance,
		Voice:      &domain.Allowance{Used: 30, Balance: 70},
		CommonData: &domain.Allowance{Used: 1024 * 1024, Balance: 9 * 1024 * 1024},
	}
}

func newTestProcessor(t *testing.T, opts ProcessorOptions) (*Processor, *mocks.MockCarrierClient, *mocks.MockStateStore) {
	t.Helper()
	carrier := mocks.NewMockCarrierClient(t)
	store := mocks.NewMockStateStore(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(testNow).Maybe()

	return NewProcessor(carrier, store, clock, ports.NopMetrics{}, opts), carrier, store
}

func TestProcessorReportsUsageAndResetsFailures(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()
	state.LoginFailures[testAccount] = 3

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.MatchedBy(func(s domain.Session) bool {
		return s.Token == "tok" && s.AccountID == testAccount
	})).Return(testUsage(), nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	require.Equal(t, domain.FragmentReport, fragment.Kind)
	assert.Contains(t, fragment.Text, "📱 手机：17300000000")
	assert.Contains(t, fragment.Text, "💰 余额：50.00元\n")
	assert.Contains(t, fragment.Text, "📞 通话：30 / 100 分钟")
	assert.Contains(t, fragment.Text, "  - 通用：1.00 / 10.00 GB")
	assert.Contains(t, fragment.Text, "查询时间：2026-06-15 12:00:00")
	assert.NotContains(t, fragment.Text, "【流量包明细】")

	assert.Equal(t, 0, state.LoginFailureCount(testAccount))
	session := state.Sessions[testAccount]
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, "123456", session.Secret)
	assert.Equal(t, testNow, session.EstablishedAt)

	snapshot, ok := state.PriorSnapshot(testAccount)
	require.True(t, ok)
	assert.Equal(t, int64(5000), snapshot.BalanceCents)
	assert.Equal(t, testNow, snapshot.CapturedAt)
}

func TestProcessorRendersDeltaAgainstPriorSnapshot(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()
	state.RecordSnapshot(domain.UsageSnapshot{
		AccountID:         testAccount,
		BalanceCents:      5200,
		CommonDataUsedMB:  824,
		CommonDataTotalMB: 10240,
		CapturedAt:        testNow.Add(-25 * time.Hour),
	})

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(testUsage(), nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	require.Equal(t, domain.FragmentReport, fragment.Kind)
	assert.Contains(t, fragment.Text, "💰 余额：50.00元（25.0小时消费2.00元，0.08元/小时）")
	assert.Contains(t, fragment.Text, "（25.0小时用量0.20GB）")
}

func TestProcessorSkipsRestrictedAccount(t *testing.T) {
	processor, _, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()
	state.LoginFailures[testAccount] = domain.MaxLoginFailures

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentLoginRestricted, fragment.Kind)
	assert.Equal(t, "登录受限：17300000000已连续失败5次，为避免风控暂不执行", fragment.Text)
	assert.Equal(t, domain.MaxLoginFailures, state.LoginFailureCount(testAccount))
}

func TestProcessorLoginFailurePersistsCounter(t *testing.T) {
	processor, carrier, store := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()
	state.LoginFailures[testAccount] = 1

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{}, domain.ErrLoginRejected)
	store.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(s domain.State) bool {
		return s.LoginFailures[testAccount] == 2
	})).Return(nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentLoginFailed, fragment.Kind)
	assert.Equal(t, "登录失败：17300000000，已连续失败2次", fragment.Text)
	assert.Equal(t, 2, state.LoginFailureCount(testAccount))
}

func TestProcessorRejectsSessionForAnotherAccount(t *testing.T) {
	processor, carrier, store := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{AccountID: "17300000009", Token: "tok"}, nil)
	store.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentLoginFailed, fragment.Kind)
	assert.Equal(t, 1, state.LoginFailureCount(testAccount))
	_, recorded := state.Sessions[testAccount]
	assert.False(t, recorded)
	_, leaked := state.Sessions["17300000009"]
	assert.False(t, leaked)
}

func TestProcessorRepeatedFailuresReachGate(t *testing.T) {
	processor, carrier, store := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{}, domain.ErrLoginRejected).Times(domain.MaxLoginFailures)
	store.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Times(domain.MaxLoginFailures)

	for i := 0; i < 8; i++ {
		processor.Process(context.Background(), testCredential(), &state)
	}

	assert.Equal(t, domain.MaxLoginFailures, state.LoginFailureCount(testAccount))
	assert.Equal(t, domain.GateRestricted, domain.LoginGate(state.LoginFailureCount(testAccount)))
}

func TestProcessorSaveFailureDuringLoginFailureIsNotFatal(t *testing.T) {
	processor, carrier, store := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{}, errors.New("timeout"))
	store.EXPECT().Save(mockAnyContext(), mock.Anything).Return(errors.New("disk full"))

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentLoginFailed, fragment.Kind)
	assert.Equal(t, 1, state.LoginFailureCount(testAccount))
}

func TestProcessorReconnectsOnceWhenSessionExpired(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "old"}, nil).Once()
	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "new"}, nil).Once()
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.MatchedBy(func(s domain.Session) bool { return s.Token == "old" })).
		Return(domain.UsageData{}, domain.ErrSessionExpired).Once()
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.MatchedBy(func(s domain.Session) bool { return s.Token == "new" })).
		Return(testUsage(), nil).Once()

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentReport, fragment.Kind)
	assert.Equal(t, "new", state.Sessions[testAccount].Token)
}

func TestProcessorReconnectFailure(t *testing.T) {
	processor, carrier, store := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "old"}, nil).Once()
	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{}, domain.ErrLoginRejected).Once()
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(domain.UsageData{}, domain.ErrSessionExpired).Once()
	store.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentReconnectFailed, fragment.Kind)
	assert.Equal(t, "重新登录失败，无法获取信息：17300000000", fragment.Text)
	assert.Equal(t, 1, state.LoginFailureCount(testAccount))
}

func TestProcessorFetchFailure(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(domain.UsageData{}, errors.New("connection reset"))

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentFetchFailed, fragment.Kind)
	assert.Equal(t, "获取信息失败：17300000000 - connection reset", fragment.Text)
	_, ok := state.PriorSnapshot(testAccount)
	assert.False(t, ok)
}

func TestProcessorDataErrorKeepsPriorSnapshot(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{})
	state := domain.NewState()
	prior := domain.UsageSnapshot{AccountID: testAccount, BalanceCents: 100, CapturedAt: testNow.Add(-time.Hour)}
	state.RecordSnapshot(prior)

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(domain.UsageData{}, nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentDataError, fragment.Kind)
	assert.Contains(t, fragment.Text, "处理数据出错：17300000000 - ")
	assert.Contains(t, fragment.Text, "balance missing")
	stored, _ := state.PriorSnapshot(testAccount)
	assert.Equal(t, prior, stored)
}

func TestProcessorIncludesAddOnPackages(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{IncludeAddOnPackages: true})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(testUsage(), nil)
	carrier.EXPECT().FetchAddOnPackages(mockAnyContext(), mock.Anything).Return([]domain.AddOnPackage{{
		Title: "国内通用流量包",
		Items: []domain.AddOnItem{{Title: "通用流量", LeftTitle: "剩余", LeftHighlight: "5", RightCommon: "GB"}},
	}}, nil)

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Contains(t, fragment.Text, "【流量包明细】")
	assert.Contains(t, fragment.Text, "🔹[通用流量]剩余5GB")
}

func TestProcessorOmitsPackagesOnFailure(t *testing.T) {
	processor, carrier, _ := newTestProcessor(t, ProcessorOptions{IncludeAddOnPackages: true})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(testUsage(), nil)
	carrier.EXPECT().FetchAddOnPackages(mockAnyContext(), mock.Anything).Return(nil, errors.New("502"))

	fragment := processor.Process(context.Background(), testCredential(), &state)

	assert.Equal(t, domain.FragmentReport, fragment.Kind)
	assert.NotContains(t, fragment.Text, "【流量包明细】")
}

func TestProcessorObservesMetrics(t *testing.T) {
	carrier := mocks.NewMockCarrierClient(t)
	store := mocks.NewMockStateStore(t)
	metrics := mocks.NewMockMetricsRecorder(t)
	processor := NewProcessor(carrier, store, fixedClock{now: testNow}, metrics, ProcessorOptions{})
	state := domain.NewState()

	carrier.EXPECT().Login(mockAnyContext(), testCredential()).Return(domain.Session{Token: "tok"}, nil)
	carrier.EXPECT().FetchUsage(mockAnyContext(), mock.Anything).Return(testUsage(), nil)
	metrics.EXPECT().ObserveLoginFailures(testAccount, 0).Return()
	metrics.EXPECT().ObserveSnapshot(mock.MatchedBy(func(s domain.UsageSnapshot) bool {
		return s.AccountID == testAccount && s.CommonDataTotalMB == 10240
	})).Return()

	processor.Process(context.Background(), testCredential(), &state)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func mockAnyContext() interface{} {
	return mock.Anything
}
