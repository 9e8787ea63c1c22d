package application

import (
	"fmt"
	"strings"

	"github.com/bnema/telecom-usage-monitor/internal/domain"
)

const reportSeparator = "=============================="

// UsageReport is the printable summary of one successfully processed account.
type UsageReport struct {
	Snapshot domain.UsageSnapshot
	Delta    *domain.UsageDelta
	Packages []domain.AddOnPackage
}

func (r UsageReport) Format() string {
	s := r.Snapshot
	var b strings.Builder

	fmt.Fprintf(&b, "📱 手机：%s\n", s.AccountID)
	fmt.Fprintf(&b, "💰 余额：%.2f元%s\n", float64(s.BalanceCents)/100, r.balanceDelta())

	voiceTotal := ""
	if s.VoiceTotalMinutes > 0 {
		voiceTotal = fmt.Sprintf(" / %d", s.VoiceTotalMinutes)
	}
	fmt.Fprintf(&b, "📞 通话：%d%s 分钟\n", s.VoiceUsedMinutes, voiceTotal)

	b.WriteString("🌐 总流量\n")
	fmt.Fprintf(&b, "  - 通用：%s", r.commonData())
	if s.SpecialDataTotalMB > 0 {
		fmt.Fprintf(&b, "\n  - 专用：%s / %s GB", gb(s.SpecialDataUsedMB), gb(s.SpecialDataTotalMB))
	}

	if packages := FormatPackages(r.Packages); packages != "" {
		b.WriteString("\n\n【流量包明细】\n\n")
		b.WriteString(packages)
	}

	fmt.Fprintf(&b, "\n\n查询时间：%s\n%s", s.CapturedAt.Format(domain.TimestampLayout), reportSeparator)

	return b.String()
}

func (r UsageReport) commonData() string {
	s := r.Snapshot
	amount := fmt.Sprintf("%s / %s GB", gb(s.CommonDataUsedMB), gb(s.CommonDataTotalMB))
	if s.OverageMB > 0 {
		amount = fmt.Sprintf("-%s / %s GB", gb(s.OverageMB), gb(s.CommonDataTotalMB))
	}

	status := domain.ClassifyUsage(s.CommonDataUsedMB, s.CommonDataTotalMB, s.CapturedAt)
	return fmt.Sprintf("%s %s%s", amount, status.Icon(), r.dataDelta())
}

func (r UsageReport) balanceDelta() string {
	if r.Delta == nil {
		return ""
	}
	if r.Delta.HasRate() {
		return fmt.Sprintf("（%.1f小时消费%.2f元，%.2f元/小时）", r.Delta.HoursElapsed, r.Delta.FeeSpent, r.Delta.FeePerHour)
	}
	return fmt.Sprintf("（消费%.2f元）", r.Delta.FeeSpent)
}

func (r UsageReport) dataDelta() string {
	if r.Delta == nil {
		return ""
	}
	if r.Delta.HasRate() {
		return fmt.Sprintf("（%.1f小时用量%.2fGB）", r.Delta.HoursElapsed, r.Delta.DataSpentGB())
	}
	return fmt.Sprintf("（用量%.2fGB）", r.Delta.DataSpentGB())
}

// FormatPackages renders the add-on package detail block, or "" when there
// is nothing to show.
func FormatPackages(packages []domain.AddOnPackage) string {
	var b strings.Builder
	for _, pkg := range packages {
		fmt.Fprintf(&b, "\n%s%s\n", pkg.Category().Icon(), pkg.Title)
		for _, item := range pkg.Items {
			if item.Unlimited() {
				fmt.Fprintf(&b, "🔹[%s]%s%s%s/无限\n", item.Title, item.InfiniteTitle, item.InfiniteValue, item.InfiniteUnit)
				continue
			}
			fmt.Fprintf(&b, "🔹[%s]%s%s%s\n", item.Title, item.LeftTitle, item.LeftHighlight, item.RightCommon)
		}
	}

	return strings.TrimSpace(b.String())
}

func gb(mb float64) string {
	return fmt.Sprintf("%.2f", domain.ConvertFlow(mb, domain.UnitMB, domain.UnitGB, 2))
}
