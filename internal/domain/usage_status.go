package domain

import "time"

type UsageStatus string

const (
	UsageNoData   UsageStatus = "no_data"
	UsageExceeded UsageStatus = "exceeded"
	UsageFarAhead UsageStatus = "far_ahead"
	UsageAhead    UsageStatus = "ahead"
	UsageOnPace   UsageStatus = "on_pace"
)

func (s UsageStatus) Icon() string {
	switch s {
	case UsageNoData:
		return "⚫"
	case UsageExceeded:
		return "🔴"
	case UsageFarAhead:
		return "🟠"
	case UsageAhead:
		return "🟡"
	default:
		return "🟢"
	}
}

// ClassifyUsage compares the used share of an allowance with the elapsed
// share of the current calendar month.
func ClassifyUsage(used, total float64, today time.Time) UsageStatus {
	if total <= 0 {
		return UsageNoData
	}
	if used >= total {
		return UsageExceeded
	}

	timeProgress := float64(today.Day()) / float64(daysInMonth(today))
	usageProgress := used / total

	switch {
	case usageProgress > timeProgress*1.5:
		return UsageFarAhead
	case usageProgress > timeProgress:
		return UsageAhead
	default:
		return UsageOnPace
	}
}

func daysInMonth(t time.Time) int {
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1).Day()
}
