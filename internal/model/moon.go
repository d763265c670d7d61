package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FullMoonThreshold is the illumination percentage above which a day counts
// as a full moon.
const FullMoonThreshold = 95.0

// MoonPoint is the moon's illumination for one calendar day.
type MoonPoint struct {
	Date         time.Time `json:"date"`
	Illumination float64   `json:"illumination"` // 0 ~ 100
	IsFullMoon   bool      `json:"is_full_moon"`
}

// NewMoonPoint derives the full-moon flag from the illumination.
func NewMoonPoint(date time.Time, illumination float64) MoonPoint {
	return MoonPoint{
		Date:         date,
		Illumination: illumination,
		IsFullMoon:   illumination > FullMoonThreshold,
	}
}

// AlignedRecord is a calendar date for which both a close and an
// illumination value exist.
type AlignedRecord struct {
	Date         time.Time       `json:"date"`
	Close        decimal.Decimal `json:"close"`
	Illumination float64         `json:"illumination"`
	IsFullMoon   bool            `json:"is_full_moon"`
}
