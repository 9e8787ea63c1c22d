package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is used for capture and login times in reports and the
// state document.
const TimestampLayout = "2006-01-02 15:04:05"

// Allowance is a used/remaining/over triple as reported by the carrier.
type Allowance struct {
	Used    int64
	Balance int64
	Over    int64
}

func (a Allowance) Total() int64 {
	return a.Used + a.Balance
}

func (a Allowance) negative() bool {
	return a.Used < 0 || a.Balance < 0 || a.Over < 0
}

// UsageData is the carrier's usage payload after decoding. Data amounts are
// in KB, voice in minutes. Nil sections were absent from the response.
type UsageData struct {
	Balance     *string
	Voice       *Allowance
	CommonData  *Allowance
	SpecialData *Allowance
}

type UsageSnapshot struct {
	AccountID          AccountID
	BalanceCents       int64
	VoiceUsedMinutes   int64
	VoiceTotalMinutes  int64
	CommonDataUsedMB   float64
	CommonDataTotalMB  float64
	OverageMB          float64
	SpecialDataUsedMB  float64
	SpecialDataTotalMB float64
	CapturedAt         time.Time
}

// CommonDataRemainingMB is the unused part of the common allowance.
func (s UsageSnapshot) CommonDataRemainingMB() float64 {
	return s.CommonDataTotalMB - s.CommonDataUsedMB
}

// Summarize turns a decoded usage payload into a snapshot stamped with
// capturedAt.
func Summarize(id AccountID, data UsageData, capturedAt time.Time) (UsageSnapshot, error) {
	if data.Balance == nil {
		return UsageSnapshot{}, fmt.Errorf("%w: balance missing", ErrMalformedUsage)
	}
	if data.Voice == nil {
		return UsageSnapshot{}, fmt.Errorf("%w: voice usage missing", ErrMalformedUsage)
	}
	if data.CommonData == nil {
		return UsageSnapshot{}, fmt.Errorf("%w: common data usage missing", ErrMalformedUsage)
	}

	balanceCents, err := parseCents(*data.Balance)
	if err != nil {
		return UsageSnapshot{}, fmt.Errorf("%w: balance %q: %v", ErrMalformedUsage, *data.Balance, err)
	}

	if data.Voice.negative() {
		return UsageSnapshot{}, fmt.Errorf("%w: negative voice amount", ErrMalformedUsage)
	}
	common := *data.CommonData
	if common.negative() {
		return UsageSnapshot{}, fmt.Errorf("%w: negative common data amount", ErrMalformedUsage)
	}
	if data.SpecialData != nil && data.SpecialData.negative() {
		return UsageSnapshot{}, fmt.Errorf("%w: negative special data amount", ErrMalformedUsage)
	}

	snapshot := UsageSnapshot{
		AccountID:         id,
		BalanceCents:      balanceCents,
		VoiceUsedMinutes:  data.Voice.Used,
		VoiceTotalMinutes: data.Voice.Total(),
		CommonDataUsedMB:  ConvertFlow(float64(common.Used), UnitKB, UnitMB, 4),
		CommonDataTotalMB: ConvertFlow(float64(common.Total()), UnitKB, UnitMB, 4),
		CapturedAt:        capturedAt,
	}
	if common.Over > 0 {
		snapshot.OverageMB = ConvertFlow(float64(common.Over), UnitKB, UnitMB, 4)
	}
	if data.SpecialData != nil {
		snapshot.SpecialDataUsedMB = ConvertFlow(float64(data.SpecialData.Used), UnitKB, UnitMB, 4)
		snapshot.SpecialDataTotalMB = ConvertFlow(float64(data.SpecialData.Total()), UnitKB, UnitMB, 4)
	}

	return snapshot, nil
}

func parseCents(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("empty amount")
	}
	yuan, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, err
	}
	cents := math.Round(yuan * 100)
	if math.IsNaN(cents) || math.IsInf(cents, 0) || cents < math.MinInt64 || cents >= math.MaxInt64 {
		return 0, fmt.Errorf("amount out of range")
	}
	return int64(cents), nil
}
