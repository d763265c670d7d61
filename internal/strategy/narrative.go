package strategy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"MoonSentinel/internal/calculator"
	"MoonSentinel/internal/model"
)

// narrativeTiers is the three-way story mapping, checked top down. It splits
// ClassifyVerdict's NO_EFFECT region: 0 < c <= 0.1 is weak here.
var narrativeTiers = []struct {
	Above    float64
	Category model.NarrativeCategory
}{
	{StrongCorrelation, model.NarrativeStrong},
	{0, model.NarrativeWeak},
}

// ClassifyNarrative maps a coefficient to the story category.
func ClassifyNarrative(coefficient float64) model.NarrativeCategory {
	for _, t := range narrativeTiers {
		if coefficient > t.Above {
			return t.Category
		}
	}
	return model.NarrativeNull
}

// Summarize derives the story statistics from the aligned series. The price
// change spans the first and last aligned record, not the raw price fetch.
func Summarize(records []model.AlignedRecord) (model.SummaryStats, error) {
	var stats model.SummaryStats
	if len(records) == 0 {
		return stats, fmt.Errorf("no aligned records")
	}
	first, last := records[0].Close, records[len(records)-1].Close
	change, err := calculator.PriceChangePct(first, last)
	if err != nil {
		return stats, err
	}
	stats.PriceChangePct = change
	stats.FirstClose = first.InexactFloat64()
	stats.LastClose = last.InexactFloat64()
	stats.AvgIllumination = calculator.Mean(calculator.Illuminations(records))
	stats.FullMoonDates = []time.Time{}
	for _, r := range records {
		if r.IsFullMoon {
			stats.FullMoonCount++
			stats.FullMoonDates = append(stats.FullMoonDates, r.Date)
		}
	}
	return stats, nil
}

// direction picks the up word for a positive change, the down word otherwise.
func direction(change float64, up, down string) string {
	if change > 0 {
		return up
	}
	return down
}

// Narrate classifies the coefficient and renders the matching story. An
// empty or unusable series yields NarrativeUnavailable and a diagnostic
// text instead of an error.
func Narrate(assetName string, coefficient float64, records []model.AlignedRecord) (model.NarrativeCategory, string, model.SummaryStats) {
	stats, err := Summarize(records)
	if err != nil {
		return model.NarrativeUnavailable, fmt.Sprintf("Unable to tell the story: %v.", err), stats
	}
	if assetName == "" {
		assetName = "the asset"
	}

	category := ClassifyNarrative(coefficient)
	change := stats.PriceChangePct
	absChange := math.Abs(change)

	var b strings.Builder
	switch category {
	case model.NarrativeStrong:
		b.WriteString("🌟 The Cosmic Connection Revealed!\n\n")
		fmt.Fprintf(&b, "Our analysis has uncovered a fascinating correlation of %.4f between %s prices and lunar illumination! ",
			coefficient, assetName)
		fmt.Fprintf(&b, "Over the analyzed period, %s %s by %.1f%%, while we observed %d full moon events.\n\n",
			assetName, direction(change, "surged", "declined"), absChange, stats.FullMoonCount)
		b.WriteString("Could it be that the gravitational pull of our celestial neighbor influences not just the tides, " +
			"but also the volatile seas of the markets? The data suggests there might be more to " +
			"astrology than meets the eye! 🚀\n\n")
		fmt.Fprintf(&b, "Average moon illumination during this period: %.1f%%", stats.AvgIllumination)
	case model.NarrativeWeak:
		b.WriteString("🔍 A Whisper of Cosmic Influence\n\n")
		fmt.Fprintf(&b, "While the correlation of %.4f between %s and moon phases is modest, it's not entirely negligible. ",
			coefficient, assetName)
		fmt.Fprintf(&b, "During our analysis period, %s %s %.1f%% while we witnessed %d full moon cycles.\n\n",
			assetName, direction(change, "gained", "lost"), absChange, stats.FullMoonCount)
		b.WriteString("Perhaps the moon's influence on markets is subtle, like a gentle tide rather than a tsunami. " +
			"Or maybe it's just the collective psychology of traders who believe in lunar cycles creating " +
			"a self-fulfilling prophecy? 🤔\n\n")
		fmt.Fprintf(&b, "Average moon illumination: %.1f%%", stats.AvgIllumination)
	default:
		b.WriteString("📊 Science Prevails Over Superstition\n\n")
		fmt.Fprintf(&b, "With a correlation of %.4f, our data strongly suggests that moon phases have little to no influence on %s prices. ",
			coefficient, assetName)
		fmt.Fprintf(&b, "During the analyzed period, %s %s by %.1f%% across %d full moon events, showing no meaningful pattern.\n\n",
			assetName, direction(change, "rose", "fell"), absChange, stats.FullMoonCount)
		b.WriteString("It appears that market fundamentals, news events, and investor sentiment are far more " +
			"powerful forces than lunar gravity when it comes to prices. " +
			"The stars may guide our dreams, but data guides our investments! 💡\n\n")
		fmt.Fprintf(&b, "Average moon illumination: %.1f%%", stats.AvgIllumination)
	}
	return category, b.String(), stats
}
