package model

import "time"

// Verdict is the two-way headline classification of a correlation.
type Verdict string

const (
	VerdictStrongPositive Verdict = "STRONG_POSITIVE"
	VerdictNoEffect       Verdict = "NO_EFFECT"
)

// Headline is the text shown in the verdict box.
func (v Verdict) Headline() string {
	if v == VerdictStrongPositive {
		return "VERDICT: ASTROLOGY IS REAL? 😱"
	}
	return "VERDICT: JUST COINCIDENCE 📉"
}

// NarrativeCategory is the three-way classification used for the story text.
type NarrativeCategory string

const (
	NarrativeStrong      NarrativeCategory = "strong"
	NarrativeWeak        NarrativeCategory = "weak"
	NarrativeNull        NarrativeCategory = "null"
	NarrativeUnavailable NarrativeCategory = "unavailable"
)

// CorrelationResult holds a Pearson coefficient and its two-sided p-value.
type CorrelationResult struct {
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"p_value"`
	N           int     `json:"n"`
}

// SummaryStats are derived from the aligned series only.
type SummaryStats struct {
	PriceChangePct  float64     `json:"price_change_pct"`
	FirstClose      float64     `json:"first_close"`
	LastClose       float64     `json:"last_close"`
	FullMoonCount   int         `json:"full_moon_count"`
	AvgIllumination float64     `json:"avg_illumination"`
	FullMoonDates   []time.Time `json:"full_moon_dates"`
}

// AnalysisReport is the complete result of one analysis run. It is owned by
// the caller and must not be modified after Run returns it.
type AnalysisReport struct {
	ID                string            `json:"id"`
	Asset             Asset             `json:"asset"`
	Period            Period            `json:"period"`
	GeneratedAt       time.Time         `json:"generated_at"`
	AlignedRecords    []AlignedRecord   `json:"aligned_records"`
	Correlation       CorrelationResult `json:"correlation"`
	Verdict           Verdict           `json:"verdict"`
	NarrativeCategory NarrativeCategory `json:"narrative_category"`
	NarrativeText     string            `json:"narrative_text"`
	Summary           SummaryStats      `json:"summary"`
}

// Asset identifies the priced instrument.
type Asset struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// DefaultSymbol is the asset analyzed when none is configured.
const DefaultSymbol = "BTC-USD"

var knownAssetNames = map[string]string{
	"BTC-USD": "Bitcoin",
	"ETH-USD": "Ethereum",
	"^GSPC":   "the S&P 500",
}

// NewAsset builds an Asset, filling in a display name for well-known symbols
// when name is empty.
func NewAsset(symbol, name string) Asset {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	if name == "" {
		name = knownAssetNames[symbol]
	}
	if name == "" {
		name = symbol
	}
	return Asset{Symbol: symbol, Name: name}
}
