package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is one daily close from a price provider. Trading calendars
// have gaps, so consecutive points need not be consecutive days.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// Period is the lookback window of an analysis.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
	Period2Years  Period = "2y"
)

// Periods lists the supported periods in selector order.
var Periods = []Period{Period1Month, Period3Months, Period6Months, Period1Year, Period2Years}

var periodLabels = map[Period]string{
	Period1Month:  "1 Month",
	Period3Months: "3 Months",
	Period6Months: "6 Months",
	Period1Year:   "1 Year",
	Period2Years:  "2 Years",
}

// ParsePeriod accepts either the short code ("6mo") or the label ("6 Months").
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if s == string(p) || s == periodLabels[p] {
			return p, nil
		}
	}
	return "", fmt.Errorf("unsupported period %q (want one of 1mo, 3mo, 6mo, 1y, 2y)", s)
}

// Label returns the human-readable name of the period.
func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

// Valid reports whether p is one of the supported periods.
func (p Period) Valid() bool {
	_, ok := periodLabels[p]
	return ok
}

// Days is the approximate calendar length of the period.
func (p Period) Days() int {
	switch p {
	case Period1Month:
		return 30
	case Period3Months:
		return 90
	case Period6Months:
		return 182
	case Period1Year:
		return 365
	case Period2Years:
		return 730
	}
	return 0
}

// DateOf truncates t to its civil date in t's own location and returns that
// date as UTC midnight, so dates from different zones compare with ==.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
