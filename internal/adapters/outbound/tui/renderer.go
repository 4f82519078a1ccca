package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specguard/specguard/internal/domain"
)

// ── Warm terminal palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderRun formats a full run summary for terminal output.
func RenderRun(summary *domain.RunSummary) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("specguard")
	subtitle := dimStyle.Render("Quality Score")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(scoreColor(summary.QualityScore)).
		Render(fmt.Sprintf("%d / 100", summary.QualityScore))
	statusStyled := statusStyle(summary.Status).Bold(true).Render(string(summary.Status))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + statusStyled))
	b.WriteString("\n\n")

	// ── Validators in declared order ──
	for _, key := range domain.ValidatorKeys {
		report, ok := summary.Results[string(key)]
		if !ok {
			continue
		}
		renderValidator(&b, report)
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Recommendations ──
	if len(summary.Recommendations) > 0 {
		b.WriteString("  " + titleStyle.Render("Recommendations") + "\n\n")
		for _, rec := range summary.Recommendations {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("→"), dimStyle.Render(rec))
		}
	} else {
		b.WriteString("  " + passStyle.Render("No recommendations.") + "\n")
	}

	c := summary.Summary
	fmt.Fprintf(&b, "\n  %s\n",
		dimStyle.Render(fmt.Sprintf("%d passed, %d warnings, %d failed, %d skipped in %s",
			c.Passed, c.Warnings, c.Failed, c.Skipped, summary.Duration.Round(1e6))))

	return b.String()
}

// RenderReport formats one validator report for terminal output.
func RenderReport(report *domain.ValidatorReport) string {
	var b strings.Builder
	b.WriteString("\n")
	if report.Path != "" {
		b.WriteString("  " + dimStyle.Render(shortenPath(report.Path)) + "\n")
	}
	renderValidator(&b, report)

	if len(report.Recommendations) > 0 {
		b.WriteString("\n  " + titleStyle.Render("Recommendations") + "\n\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "    %s %s\n", warnStyle.Render("→"), dimStyle.Render(rec))
		}
	}
	return b.String()
}

func renderValidator(b *strings.Builder, report *domain.ValidatorReport) {
	name := nameStyle.Render(padRight(report.Validator, 20))
	tag := statusStyle(report.Status).Bold(true).Render(string(report.Status))
	fmt.Fprintf(b, "  %s %s\n", name, tag)

	if report.Status == domain.StatusSkipped || report.Status == domain.StatusError {
		if report.Error != "" {
			fmt.Fprintf(b, "    %s\n", faintStyle.Render(report.Error))
		}
		return
	}

	for _, check := range report.Checks {
		renderCheck(b, check)
	}
}

func renderCheck(b *strings.Builder, check domain.CheckResult) {
	var icon string
	switch check.Status {
	case domain.StatusPass:
		icon = passStyle.Render("●")
	case domain.StatusWarning:
		icon = warnStyle.Render("●")
	case domain.StatusError:
		icon = errorTagStyle.Render("●")
	default:
		icon = failStyle.Render("●")
	}

	name := padRight(check.Name, 28)
	fmt.Fprintf(b, "    %s %s %s\n", icon, name, faintStyle.Render(check.Message))
}

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusPass:
		return passStyle
	case domain.StatusWarning:
		return warnStyle
	case domain.StatusSkipped:
		return skipStyle
	default:
		return failStyle
	}
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func shortenPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > 3 {
		return strings.Join(parts[len(parts)-3:], "/")
	}
	return path
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.QualityScore)).
			Render(fmt.Sprintf("%d/100", e.QualityScore))

		line := fmt.Sprintf("  %s  %s  %s",
			dimStyle.Render(date),
			scoreStyled,
			statusStyle(e.Status).Render(string(e.Status)),
		)

		if i > 0 {
			diff := e.QualityScore - entries[i-1].QualityScore
			if diff > 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↑%d", diff))
			} else if diff < 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↓%d", -diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
