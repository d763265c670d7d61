package model

import (
	"fmt"
	"time"
)

// DataUnavailableError means the price provider failed or returned no bars.
type DataUnavailableError struct {
	Asset  string
	Period Period
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no price data for %s (%s)", e.Asset, e.Period)
	}
	return fmt.Sprintf("price data unavailable for %s (%s): %v", e.Asset, e.Period, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// ComputationError means the illumination model failed while building the
// moon series. Date is the earliest failing day.
type ComputationError struct {
	Date time.Time
	Err  error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("illumination at %s: %v", e.Date.Format("2006-01-02"), e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// NoOverlapError means the price and moon series share no dates.
type NoOverlapError struct {
	PriceCount int
	MoonCount  int
}

func (e *NoOverlapError) Error() string {
	return fmt.Sprintf("no overlapping dates between %d price points and %d moon points", e.PriceCount, e.MoonCount)
}
