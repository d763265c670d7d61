// Package lunar builds daily moon illumination series.
package lunar

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonillum"
)

// IlluminationModel returns the illuminated fraction of the moon's disk, as a
// percentage in [0, 100], for a calendar date.
type IlluminationModel interface {
	IlluminationAt(date time.Time) (float64, error)
}

// The low-precision phase-angle series is only meaningful within a few
// millennia of J2000.
const (
	minYear = -1000
	maxYear = 3000
)

// MeeusModel evaluates the moon's phase angle with the truncated series from
// Meeus, Astronomical Algorithms, ch. 48, at 00:00 UTC of the given date.
type MeeusModel struct{}

// NewMeeusModel returns the default illumination model.
func NewMeeusModel() MeeusModel { return MeeusModel{} }

func (MeeusModel) IlluminationAt(date time.Time) (float64, error) {
	y, m, d := date.Date()
	if y < minYear || y > maxYear {
		return 0, fmt.Errorf("year %d outside supported range [%d, %d]", y, minYear, maxYear)
	}
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	i := moonillum.PhaseAngle3(julian.TimeToJD(midnight))
	pct := base.Illuminated(i) * 100
	if math.IsNaN(pct) {
		return 0, fmt.Errorf("illumination undefined at %s", midnight.Format("2006-01-02"))
	}
	return math.Max(0, math.Min(100, pct)), nil
}
