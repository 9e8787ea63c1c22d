package status

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAccountWithSnapshot(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

	output, err := Render([]application.AccountStatus{
		{
			AccountID: "17300000000",
			Gate:      domain.GateActive,
			LastLogin: now.Add(-3 * time.Hour),
			Snapshot: &domain.UsageSnapshot{
				AccountID:          "17300000000",
				BalanceCents:       4850,
				CommonDataUsedMB:   2560,
				CommonDataTotalMB:  10240,
				SpecialDataUsedMB:  512,
				SpecialDataTotalMB: 1024,
				CapturedAt:         now.Add(-3 * time.Hour),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "17300000000")
	assert.Contains(t, output, "active")
	assert.Contains(t, output, "48.50元")
	assert.Contains(t, output, "2.50 / 10.00 GB")
	assert.Contains(t, output, "75% left")
	assert.Contains(t, output, "🟢")
	assert.Contains(t, output, "special:")
	assert.Contains(t, output, "3 hours ago")
	assert.NotContains(t, output, "[stale]")
}

func TestRenderRestrictedAccountWithoutSnapshot(t *testing.T) {
	output, err := Render([]application.AccountStatus{
		{AccountID: "17300000000", Failures: 5, Gate: domain.GateRestricted},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "restricted (5 failed logins)")
	assert.Contains(t, output, "usage: n/a")
	assert.NotContains(t, output, "last login")
}

func TestRenderMarksStaleSnapshot(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

	output, err := Render([]application.AccountStatus{
		{
			AccountID: "17300000000",
			Gate:      domain.GateActive,
			Failures:  2,
			Snapshot: &domain.UsageSnapshot{
				AccountID:         "17300000000",
				CommonDataUsedMB:  100,
				CommonDataTotalMB: 1024,
				CapturedAt:        now.Add(-48 * time.Hour),
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "active (2/5 failed logins)")
	assert.Contains(t, output, "2 days ago")
	assert.Contains(t, output, "[stale]")
}

func TestRenderDoesNotMarkStaleWhenNowNotProvided(t *testing.T) {
	output, err := Render([]application.AccountStatus{
		{
			AccountID: "17300000000",
			Snapshot:  &domain.UsageSnapshot{CapturedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)},
		},
	}, RenderOptions{StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.NotContains(t, output, "[stale]")
	assert.Contains(t, output, "⚫")
}

func TestRenderListsRestrictedAccountsFirst(t *testing.T) {
	output, err := Render([]application.AccountStatus{
		{AccountID: "17300000000", Gate: domain.GateActive},
		{AccountID: "17300000002", Failures: 5, Gate: domain.GateRestricted},
		{AccountID: "17300000001", Failures: 1, Gate: domain.GateActive},
	}, RenderOptions{})

	require.NoError(t, err)
	restricted := strings.Index(output, "17300000002")
	first := strings.Index(output, "17300000000")
	second := strings.Index(output, "17300000001")
	require.True(t, restricted >= 0 && first >= 0 && second >= 0)
	assert.Less(t, restricted, first)
	assert.Less(t, first, second)
	assert.Contains(t, output, "1 restricted; run `telemon reset --account <id>`")
}

func TestRenderOmitsResetHintWhenAllActive(t *testing.T) {
	output, err := Render([]application.AccountStatus{
		{AccountID: "17300000000", Gate: domain.GateActive},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.NotContains(t, output, "restricted;")
}

func TestRenderEmptyState(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts recorded yet.")
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "just now", formatAge(10*time.Minute))
	assert.Equal(t, "1 hour ago", formatAge(90*time.Minute))
	assert.Equal(t, "1 day ago", formatAge(30*time.Hour))
	assert.Equal(t, "4 days ago", formatAge(100*time.Hour))
}
