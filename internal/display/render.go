// Package display renders analysis reports for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"MoonSentinel/internal/model"
)

// RawDataRows is how many trailing aligned records the raw data table shows.
const RawDataRows = 20

const width = 80

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F5F3FF")).
			Background(lipgloss.Color("#4C1D95")).
			Padding(0, 1).
			Width(width)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6366F1")).
			Padding(0, 1).
			Width(24)

	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	strongVerdictStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#DB2777")).
				Padding(1, 2).
				Width(width).
				Align(lipgloss.Center)

	noEffectVerdictStyle = strongVerdictStyle.
				Background(lipgloss.Color("#2563EB"))

	storyStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(1, 2).
			Width(width)

	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Render writes the full terminal report.
func Render(w io.Writer, r *model.AnalysisReport) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("🌙 %s vs Moon Phases · %s", r.Asset.Name, r.Period.Label())))
	b.WriteString("\n\n")
	b.WriteString(metricCards(r))
	b.WriteString("\n\n")
	b.WriteString(verdictBox(r))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("📖 The Cosmic Story"))
	b.WriteString("\n")
	b.WriteString(storyStyle.Render(r.NarrativeText))
	b.WriteString("\n")

	if len(r.Summary.FullMoonDates) > 0 {
		b.WriteString(sectionStyle.Render(fmt.Sprintf("🎉 Found %d full moon days in the analysis period", len(r.Summary.FullMoonDates))))
		b.WriteString("\n")
		dates := make([]string, len(r.Summary.FullMoonDates))
		for i, d := range r.Summary.FullMoonDates {
			dates[i] = d.Format("2006-01-02")
		}
		b.WriteString(strings.Join(dates, "  "))
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("🔍 Raw Data"))
	b.WriteString("\n")
	b.WriteString(rawTable(r.AlignedRecords))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("report %s · generated %s", r.ID, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func card(label, value, sub string) string {
	return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + cardValueStyle.Render(value) + "\n" + sub)
}

func metricCards(r *model.AnalysisReport) string {
	s := r.Summary
	change := fmt.Sprintf("%+.2f%%", s.PriceChangePct)
	if s.PriceChangePct > 0 {
		change = upStyle.Render(change)
	} else if s.PriceChangePct < 0 {
		change = downStyle.Render(change)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(fmt.Sprintf("%s Price", r.Asset.Name), fmt.Sprintf("%.2f", s.LastClose), change),
		card("🌕 Full Moons", fmt.Sprintf("%d", s.FullMoonCount), fmt.Sprintf("Avg: %.1f%%", s.AvgIllumination)),
		card("📈 Correlation", fmt.Sprintf("%.4f", r.Correlation.Coefficient), fmt.Sprintf("p=%.4f", r.Correlation.PValue)),
	)
}

func verdictBox(r *model.AnalysisReport) string {
	style := noEffectVerdictStyle
	if r.Verdict == model.VerdictStrongPositive {
		style = strongVerdictStyle
	}
	return style.Render(fmt.Sprintf("%s\nCorrelation: %.4f (p-value: %.4f)",
		r.Verdict.Headline(), r.Correlation.Coefficient, r.Correlation.PValue))
}

func rawTable(records []model.AlignedRecord) string {
	if len(records) > RawDataRows {
		records = records[len(records)-RawDataRows:]
	}
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%-12s %14s %13s  %s", "Date", "Close", "Illumination", "Full Moon")))
	b.WriteString("\n")
	for _, rec := range records {
		full := ""
		if rec.IsFullMoon {
			full = "🌕"
		}
		fmt.Fprintf(&b, "%-12s %14s %12.1f%%  %s\n",
			rec.Date.Format("2006-01-02"), rec.Close.StringFixed(2), rec.Illumination, full)
	}
	return b.String()
}
