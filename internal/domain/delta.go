package domain

import "time"

// UsageDelta is the spend between two snapshots of the same account.
type UsageDelta struct {
	HoursElapsed float64
	FeeSpent     float64
	// FeePerHour is zero when HoursElapsed is zero.
	FeePerHour  float64
	DataSpentMB float64
}

func (d UsageDelta) DataSpentGB() float64 {
	return Round(d.DataSpentMB/1024, 2)
}

func (d UsageDelta) HasRate() bool {
	return d.HoursElapsed > 0
}

// ComputeDelta reconciles the current snapshot against the prior one. It
// reports false when the prior capture time is unknown or later than the
// current one.
func ComputeDelta(prior, current UsageSnapshot) (UsageDelta, bool) {
	if prior.AccountID != "" && current.AccountID != "" && prior.AccountID != current.AccountID {
		return UsageDelta{}, false
	}
	if prior.CapturedAt.IsZero() || current.CapturedAt.Before(prior.CapturedAt) {
		return UsageDelta{}, false
	}

	elapsed := current.CapturedAt.Sub(prior.CapturedAt)
	delta := UsageDelta{
		HoursElapsed: Round(elapsed.Hours(), 1),
		FeeSpent:     Round(float64(prior.BalanceCents)/100-float64(current.BalanceCents)/100, 2),
		DataSpentMB:  Round(prior.CommonDataRemainingMB()-current.CommonDataRemainingMB(), 2),
	}
	if delta.HoursElapsed > 0 {
		delta.FeePerHour = Round(delta.FeeSpent/delta.HoursElapsed, 2)
	}

	return delta, true
}

// ElapsedSince is a convenience for callers holding only a capture time.
func ElapsedSince(capturedAt, now time.Time) time.Duration {
	if capturedAt.IsZero() {
		return 0
	}
	return now.Sub(capturedAt)
}
