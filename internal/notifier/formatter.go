package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"MoonSentinel/internal/model"
)

// maxFullMoonDates caps the full-moon list in chat messages.
const maxFullMoonDates = 12

// FormatReport formats an analysis report into a Telegram HTML message.
func FormatReport(r *model.AnalysisReport) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString(fmt.Sprintf("🌙 <b>MoonSentinel</b> | %s | %s\n\n",
		html.EscapeString(r.Asset.Name), r.Period.Label()))

	// Metric cards
	b.WriteString(fmt.Sprintf("💰 Last close: <b>%.2f</b> (%+.2f%%)\n", s.LastClose, s.PriceChangePct))
	b.WriteString(fmt.Sprintf("🌕 Full moons: <b>%d</b> (avg illumination %.1f%%)\n", s.FullMoonCount, s.AvgIllumination))
	b.WriteString(fmt.Sprintf("📈 Correlation: <b>%.4f</b> (p-value: %.4f, n=%d)\n\n",
		r.Correlation.Coefficient, r.Correlation.PValue, r.Correlation.N))

	// Verdict
	b.WriteString(fmt.Sprintf("<b>%s</b>\n", html.EscapeString(r.Verdict.Headline())))
	b.WriteString(fmt.Sprintf("Correlation: %.4f (p-value: %.4f)\n\n", r.Correlation.Coefficient, r.Correlation.PValue))

	// Story
	b.WriteString("📖 <b>The Cosmic Story</b>\n")
	b.WriteString(html.EscapeString(r.NarrativeText))
	b.WriteString("\n")

	if len(s.FullMoonDates) > 0 {
		b.WriteString("\n🎉 <b>Full moon days in range:</b>\n")
		for i, d := range s.FullMoonDates {
			if i == maxFullMoonDates {
				b.WriteString(fmt.Sprintf("  … and %d more\n", len(s.FullMoonDates)-maxFullMoonDates))
				break
			}
			b.WriteString(fmt.Sprintf("  • %s\n", d.Format("2006-01-02")))
		}
	}

	b.WriteString(fmt.Sprintf("\n<i>report %s · %s</i>", r.ID, r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")))
	return b.String()
}

// FormatPeriods lists the supported analysis periods.
func FormatPeriods() string {
	var b strings.Builder
	b.WriteString("🗓 <b>Analysis periods</b>\n\n")
	for _, p := range model.Periods {
		b.WriteString(fmt.Sprintf("• <code>%s</code> %s\n", p, p.Label()))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp(defaultPeriod model.Period) string {
	return fmt.Sprintf("Available commands:\n"+
		"• /analyze [period] run a moon correlation analysis (default %s)\n"+
		"• /periods list periods\n"+
		"• /help show this message", defaultPeriod)
}

// FormatError turns an analysis failure into a user-facing message.
func FormatError(err error) string {
	var (
		unavailable *model.DataUnavailableError
		computation *model.ComputationError
		noOverlap   *model.NoOverlapError
	)
	switch {
	case errors.As(err, &unavailable):
		return fmt.Sprintf("❌ Could not fetch price data for %s (%s). Try again later or pick another period.",
			html.EscapeString(unavailable.Asset), unavailable.Period.Label())
	case errors.As(err, &noOverlap):
		return "⚠️ Price and moon data share no dates for this period, so there is nothing to correlate."
	case errors.As(err, &computation):
		return fmt.Sprintf("❌ Moon phase calculation failed for %s.", computation.Date.Format("2006-01-02"))
	default:
		return fmt.Sprintf("❌ Analysis failed: %s", html.EscapeString(err.Error()))
	}
}
