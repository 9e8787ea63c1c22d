package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DefaultStaleAfter is a day and a half: a daily cron that missed one run.
const DefaultStaleAfter = 36 * time.Hour

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
}

func renderView(statuses []application.AccountStatus, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Telecom Usage Monitor"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.AccountStatus, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.account.Render(string(status.AccountID)), " ", gateLabel(status, s)),
	}

	if !status.LastLogin.IsZero() {
		parts = append(parts, s.meta.Render("last login: "+status.LastLogin.Format(domain.TimestampLayout)))
	}

	if status.Snapshot == nil {
		parts = append(parts, s.detail.Render("usage: n/a"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	snapshot := *status.Snapshot
	parts = append(parts,
		s.key.Render("balance: ")+s.detail.Render(fmt.Sprintf("%.2f元", float64(snapshot.BalanceCents)/100)),
		commonLine(snapshot, s),
	)
	if snapshot.SpecialDataTotalMB > 0 {
		parts = append(parts, s.key.Render("special: ")+s.detail.Render(
			fmt.Sprintf("%.2f / %.2f GB", toGB(snapshot.SpecialDataUsedMB), toGB(snapshot.SpecialDataTotalMB))))
	}
	parts = append(parts, capturedLine(snapshot.CapturedAt, opts, s))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func gateLabel(status application.AccountStatus, s styles) string {
	if status.Gate == domain.GateRestricted {
		return s.warning.Render(fmt.Sprintf("restricted (%d failed logins)", status.Failures))
	}
	if status.Failures > 0 {
		return s.meta.Render(fmt.Sprintf("active (%d/%d failed logins)", status.Failures, domain.MaxLoginFailures))
	}
	return s.meta.Render("active")
}

func commonLine(snapshot domain.UsageSnapshot, s styles) string {
	usedPercent := 0.0
	if snapshot.CommonDataTotalMB > 0 {
		usedPercent = snapshot.CommonDataUsedMB / snapshot.CommonDataTotalMB * 100
	}
	leftPercent := clampPercent(100 - usedPercent)
	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100))

	amount := fmt.Sprintf("%.2f / %.2f GB", toGB(snapshot.CommonDataUsedMB), toGB(snapshot.CommonDataTotalMB))
	if snapshot.OverageMB > 0 {
		amount = fmt.Sprintf("-%.2f / %.2f GB", toGB(snapshot.OverageMB), toGB(snapshot.CommonDataTotalMB))
	}
	icon := domain.ClassifyUsage(snapshot.CommonDataUsedMB, snapshot.CommonDataTotalMB, snapshot.CapturedAt).Icon()

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("common:"),
		" ",
		renderProgressBar(usedPercent, 24, s),
		" ",
		s.detail.Render(amount),
		" ",
		percentStyle.Render(fmt.Sprintf("%2.0f%% left", leftPercent)),
		" ",
		icon,
	)
}

func capturedLine(capturedAt time.Time, opts RenderOptions, s styles) string {
	if capturedAt.IsZero() {
		return s.meta.Render("captured: unknown")
	}

	line := s.meta.Render("captured: " + capturedAt.Format(domain.TimestampLayout))
	if opts.Now.IsZero() {
		return line
	}

	line += " " + s.meta.Render("("+formatAge(domain.ElapsedSince(capturedAt, opts.Now))+")")

	staleAfter := opts.StaleAfter
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if domain.ElapsedSince(capturedAt, opts.Now) > staleAfter {
		line += " " + s.warning.Render("[stale]")
	}

	return line
}

func formatAge(age time.Duration) string {
	if age < time.Hour {
		return "just now"
	}
	if age < 24*time.Hour {
		hours := int(age.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := int(age.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	leftFraction := (100.0 - used) / 100.0
	filled := int(math.Round(float64(width) * leftFraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func toGB(mb float64) float64 {
	return domain.ConvertFlow(mb, domain.UnitMB, domain.UnitGB, 2)
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
